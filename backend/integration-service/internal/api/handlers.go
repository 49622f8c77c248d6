package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/anaghasb/CC-phase2-integration/backend/integration-service/internal/clients"
	"github.com/anaghasb/CC-phase2-integration/backend/integration-service/internal/db"
	"github.com/anaghasb/CC-phase2-integration/backend/integration-service/internal/models"
	"github.com/anaghasb/CC-phase2-integration/internal/logging"
	"github.com/anaghasb/CC-phase2-integration/internal/metrics"
	"github.com/gin-gonic/gin"
)

// ProcessService is the part of the Process service the handlers read.
type ProcessService interface {
	ListProcesses(ctx context.Context) (json.RawMessage, error)
	GetProcess(ctx context.Context, id int) (json.RawMessage, error)
}

// PartnerService is the part of the Industry Connect service the handlers read.
type PartnerService interface {
	ListPartners(ctx context.Context) (json.RawMessage, error)
	GetPartner(ctx context.Context, id int) (json.RawMessage, error)
}

// LinkStore persists process-partner links. *db.Database implements it.
type LinkStore interface {
	Health(ctx context.Context) error
	CreateLink(ctx context.Context, processID, partnerID int) (*models.ProcessPartnerLink, error)
	ListLinksByPartner(ctx context.Context, partnerID int) ([]models.ProcessPartnerLink, error)
	ListLinksByProcess(ctx context.Context, processID int) ([]models.ProcessPartnerLink, error)
	DeleteLink(ctx context.Context, processID, partnerID int) error
}

// Handler holds the upstream clients and the link store
type Handler struct {
	processes ProcessService
	partners  PartnerService
	store     LinkStore
}

// NewHandler creates a new handler instance
func NewHandler(processes ProcessService, partners PartnerService, store LinkStore) *Handler {
	return &Handler{processes: processes, partners: partners, store: store}
}

// Health handles readiness checks against the link database
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Health(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": "integration-service",
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "integration-service",
		"timestamp": time.Now().UTC(),
	})
}

// ListProcesses handles GET /processes/
func (h *Handler) ListProcesses(c *gin.Context) {
	body, err := h.processes.ListProcesses(c.Request.Context())
	if err != nil {
		relayError(c, err, "Failed to fetch processes")
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}

// ListPartners handles GET /partners/
func (h *Handler) ListPartners(c *gin.Context) {
	body, err := h.partners.ListPartners(c.Request.Context())
	if err != nil {
		relayError(c, err, "Failed to fetch partners")
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}

// CreateLink handles POST /link/
// The process is checked before the partner, and both before the insert.
func (h *Handler) CreateLink(c *gin.Context) {
	var req models.LinkCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	processID, partnerID := *req.ProcessID, *req.PartnerID

	ctx := c.Request.Context()
	if _, err := h.processes.GetProcess(ctx, processID); err != nil {
		upstreamNotFound(c, err, "Process not found")
		return
	}
	if _, err := h.partners.GetPartner(ctx, partnerID); err != nil {
		upstreamNotFound(c, err, "Partner not found")
		return
	}

	link, err := h.store.CreateLink(ctx, processID, partnerID)
	if err != nil {
		storeError(c, err, "Failed to create link")
		return
	}
	c.JSON(http.StatusCreated, link)
}

// PartnerProcesses handles GET /partner/:id/processes
func (h *Handler) PartnerProcesses(c *gin.Context) {
	id, ok := pathID(c, "partner")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.partners.GetPartner(ctx, id); err != nil {
		upstreamNotFound(c, err, "Partner not found")
		return
	}

	links, err := h.store.ListLinksByPartner(ctx, id)
	if err != nil {
		storeError(c, err, "Failed to fetch links")
		return
	}

	processes := make([]json.RawMessage, 0, len(links))
	for _, l := range links {
		process, err := h.processes.GetProcess(ctx, l.ProcessID)
		if err != nil {
			skipLink(c, "process", l, err)
			continue
		}
		processes = append(processes, process)
	}
	c.JSON(http.StatusOK, processes)
}

// ProcessPartners handles GET /process/:id/partners
func (h *Handler) ProcessPartners(c *gin.Context) {
	id, ok := pathID(c, "process")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.processes.GetProcess(ctx, id); err != nil {
		upstreamNotFound(c, err, "Process not found")
		return
	}

	links, err := h.store.ListLinksByProcess(ctx, id)
	if err != nil {
		storeError(c, err, "Failed to fetch links")
		return
	}

	partners := make([]json.RawMessage, 0, len(links))
	for _, l := range links {
		partner, err := h.partners.GetPartner(ctx, l.PartnerID)
		if err != nil {
			skipLink(c, "industry", l, err)
			continue
		}
		partners = append(partners, partner)
	}
	c.JSON(http.StatusOK, partners)
}

// DeleteLink handles DELETE /link/?process_id=&partner_id=
// No upstream lookups are made.
func (h *Handler) DeleteLink(c *gin.Context) {
	var q models.LinkDeleteQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.store.DeleteLink(c.Request.Context(), *q.ProcessID, *q.PartnerID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Detail: "Link not found"})
			return
		}
		storeError(c, err, "Failed to remove link")
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Link removed successfully"})
}

func pathID(c *gin.Context, label string) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Detail: "Invalid " + label + " id"})
		return 0, false
	}
	return id, true
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, models.ErrorResponse{Detail: "Invalid request: " + err.Error()})
}

// relayError passes a non-200 upstream status through; unreachable upstreams become 502.
func relayError(c *gin.Context, err error, detail string) {
	_ = c.Error(err)
	status := http.StatusBadGateway
	var statusErr *clients.StatusError
	switch {
	case errors.Is(err, clients.ErrNotFound):
		status = http.StatusNotFound
	case errors.As(err, &statusErr):
		status = statusErr.StatusCode
	}
	c.JSON(status, models.ErrorResponse{Detail: detail})
}

// upstreamNotFound collapses any failed existence check into a 404.
func upstreamNotFound(c *gin.Context, err error, detail string) {
	_ = c.Error(err)
	c.JSON(http.StatusNotFound, models.ErrorResponse{Detail: detail})
}

func skipLink(c *gin.Context, upstream string, l models.ProcessPartnerLink, err error) {
	metrics.ObserveSkippedLink(upstream)
	logging.LogKV("info", "skipping unresolved link", map[string]interface{}{
		"link_id":    l.ID,
		"process_id": l.ProcessID,
		"partner_id": l.PartnerID,
		"error":      err.Error(),
		"request_id": c.GetString(logging.RequestIDKey),
	})
}

func storeError(c *gin.Context, err error, failure string) {
	_ = c.Error(err)
	logging.LogKV("error", failure, map[string]interface{}{
		"error":      err.Error(),
		"request_id": c.GetString(logging.RequestIDKey),
	})
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{Detail: failure})
}
