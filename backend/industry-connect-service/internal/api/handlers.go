package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/anaghasb/CC-phase2-integration/backend/industry-connect-service/internal/db"
	"github.com/anaghasb/CC-phase2-integration/backend/industry-connect-service/internal/models"
	"github.com/anaghasb/CC-phase2-integration/internal/logging"
	"github.com/gin-gonic/gin"
)

// Store is the persistence surface the handlers need. *db.Database implements it.
type Store interface {
	Health(ctx context.Context) error

	CreatePartner(ctx context.Context, req models.IndustryPartnerCreateRequest) (*models.IndustryPartner, error)
	ListPartners(ctx context.Context) ([]models.IndustryPartner, error)
	GetPartner(ctx context.Context, id int) (*models.IndustryPartner, error)
	UpdatePartner(ctx context.Context, id int, req models.IndustryPartnerUpdateRequest) (*models.IndustryPartner, error)
	DeletePartner(ctx context.Context, id int) error
	CreateUserLink(ctx context.Context, req models.UserIndustryLinkCreateRequest) (*models.UserIndustryLink, error)
	ListUserLinks(ctx context.Context) ([]models.UserIndustryLink, error)

	CreateEvent(ctx context.Context, req models.EventCreateRequest) (*models.Event, error)
	ListUpcomingEvents(ctx context.Context, now time.Time) ([]models.Event, error)
	GetEvent(ctx context.Context, id int) (*models.Event, error)
	CreateRegistration(ctx context.Context, req models.RegisterUserRequest) (*models.EventRegistration, error)
	ListRegistrations(ctx context.Context, eventID int) ([]models.EventRegistration, error)
	CreateFeedback(ctx context.Context, req models.FeedbackCreateRequest) (*models.EventFeedback, error)
}

// Handler holds the store and provides HTTP handlers
type Handler struct {
	store Store
	now   func() time.Time
}

// NewHandler creates a new handler instance
func NewHandler(store Store) *Handler {
	return &Handler{store: store, now: time.Now}
}

// requestTimeout bounds every store call made on behalf of a request.
const requestTimeout = 10 * time.Second

// Health handles readiness checks against the database
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Health(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": "industry-connect-service",
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "industry-connect-service",
		"timestamp": time.Now().UTC(),
	})
}

// pathID parses an integer path parameter, writing a 400 when it is not one.
// Ids that match no row are left to the store to report.
func pathID(c *gin.Context, name, label string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Detail: "Invalid " + label + " id"})
		return 0, false
	}
	return id, true
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, models.ErrorResponse{Detail: "Invalid request body: " + err.Error()})
}

// storeError maps repository errors onto a response. notFound is the detail
// used for db.ErrNotFound; anything else is a 500 with failure as detail.
func storeError(c *gin.Context, err error, notFound, failure string) {
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Detail: notFound})
		return
	}
	_ = c.Error(err)
	logging.LogKV("error", failure, map[string]interface{}{
		"error":      err.Error(),
		"request_id": c.GetString(logging.RequestIDKey),
	})
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{Detail: failure})
}
