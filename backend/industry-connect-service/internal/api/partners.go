package api

import (
	"context"
	"net/http"

	"github.com/anaghasb/CC-phase2-integration/backend/industry-connect-service/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// CreatePartner handles POST /partners/
func (h *Handler) CreatePartner(c *gin.Context) {
	var req models.IndustryPartnerCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	partner, err := h.store.CreatePartner(ctx, req)
	if err != nil {
		storeError(c, err, "Partner not found", "Failed to create partner")
		return
	}
	c.JSON(http.StatusCreated, partner)
}

// ListPartners handles GET /partners/
func (h *Handler) ListPartners(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	partners, err := h.store.ListPartners(ctx)
	if err != nil {
		storeError(c, err, "Partner not found", "Failed to fetch partners")
		return
	}
	c.JSON(http.StatusOK, partners)
}

// GetPartner handles GET /partners/:id
func (h *Handler) GetPartner(c *gin.Context) {
	id, ok := pathID(c, "id", "partner")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	partner, err := h.store.GetPartner(ctx, id)
	if err != nil {
		storeError(c, err, "Partner not found", "Failed to fetch partner")
		return
	}
	c.JSON(http.StatusOK, partner)
}

// UpdatePartner handles PUT /partners/:id
// Body: any subset of the partner fields; absent fields keep their value.
func (h *Handler) UpdatePartner(c *gin.Context) {
	id, ok := pathID(c, "id", "partner")
	if !ok {
		return
	}

	var req models.IndustryPartnerUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if field := req.NullRequiredField(); field != "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Detail: field + " cannot be null"})
		return
	}
	if req.ContactEmail.Set {
		if err := validate.Var(req.ContactEmail.Value, "required,email"); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Detail: "contact_email must be a valid email address"})
			return
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	partner, err := h.store.UpdatePartner(ctx, id, req)
	if err != nil {
		storeError(c, err, "Partner not found", "Failed to update partner")
		return
	}
	c.JSON(http.StatusOK, partner)
}

// DeletePartner handles DELETE /partners/:id
func (h *Handler) DeletePartner(c *gin.Context) {
	id, ok := pathID(c, "id", "partner")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.store.DeletePartner(ctx, id); err != nil {
		storeError(c, err, "Partner not found", "Failed to delete partner")
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Partner deleted"})
}

// LinkUser handles POST /link/
// The partner must exist; user_id is not checked against any user system.
func (h *Handler) LinkUser(c *gin.Context) {
	var req models.UserIndustryLinkCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if _, err := h.store.GetPartner(ctx, *req.PartnerID); err != nil {
		storeError(c, err, "Partner not found", "Failed to link user")
		return
	}

	link, err := h.store.CreateUserLink(ctx, req)
	if err != nil {
		storeError(c, err, "Partner not found", "Failed to link user")
		return
	}
	c.JSON(http.StatusCreated, link)
}

// ListLinks handles GET /links/
func (h *Handler) ListLinks(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	links, err := h.store.ListUserLinks(ctx)
	if err != nil {
		storeError(c, err, "Link not found", "Failed to fetch links")
		return
	}
	c.JSON(http.StatusOK, links)
}
