package api

import (
	"context"
	"net/http"

	"github.com/anaghasb/CC-phase2-integration/backend/industry-connect-service/internal/models"
	"github.com/gin-gonic/gin"
)

// CreateEvent handles POST /events/
func (h *Handler) CreateEvent(c *gin.Context) {
	var req models.EventCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	event, err := h.store.CreateEvent(ctx, req)
	if err != nil {
		storeError(c, err, "Event not found", "Failed to create event")
		return
	}
	c.JSON(http.StatusCreated, event)
}

// ListUpcomingEvents handles GET /events/
func (h *Handler) ListUpcomingEvents(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	events, err := h.store.ListUpcomingEvents(ctx, h.now())
	if err != nil {
		storeError(c, err, "Event not found", "Failed to fetch events")
		return
	}
	c.JSON(http.StatusOK, events)
}

// GetEvent handles GET /events/:id
func (h *Handler) GetEvent(c *gin.Context) {
	id, ok := pathID(c, "id", "event")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	event, err := h.store.GetEvent(ctx, id)
	if err != nil {
		storeError(c, err, "Event not found", "Failed to fetch event")
		return
	}
	c.JSON(http.StatusOK, event)
}

// RegisterUser handles POST /events/register/
// Neither the event nor its capacity is checked.
func (h *Handler) RegisterUser(c *gin.Context) {
	var req models.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if _, err := h.store.CreateRegistration(ctx, req); err != nil {
		storeError(c, err, "Event not found", "Failed to register user")
		return
	}
	c.JSON(http.StatusCreated, models.MessageResponse{Msg: "User registered successfully"})
}

// ListRegistrations handles GET /events/:id/registrations/
func (h *Handler) ListRegistrations(c *gin.Context) {
	id, ok := pathID(c, "id", "event")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	regs, err := h.store.ListRegistrations(ctx, id)
	if err != nil {
		storeError(c, err, "Event not found", "Failed to fetch registrations")
		return
	}
	c.JSON(http.StatusOK, regs)
}

// SubmitFeedback handles POST /events/feedback/
func (h *Handler) SubmitFeedback(c *gin.Context) {
	var req models.FeedbackCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if _, err := h.store.CreateFeedback(ctx, req); err != nil {
		storeError(c, err, "Event not found", "Failed to submit feedback")
		return
	}
	c.JSON(http.StatusCreated, models.MessageResponse{Msg: "Feedback submitted"})
}
