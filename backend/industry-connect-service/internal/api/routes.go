package api

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the partner directory endpoints on r.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	// Partners
	r.POST("/partners/", h.CreatePartner)
	r.GET("/partners/", h.ListPartners)
	r.GET("/partners/:id", h.GetPartner)
	r.PUT("/partners/:id", h.UpdatePartner)
	r.DELETE("/partners/:id", h.DeletePartner)

	// User <-> partner links
	r.POST("/link/", h.LinkUser)
	r.GET("/links/", h.ListLinks)

	// Events
	r.POST("/events/", h.CreateEvent)
	r.GET("/events/", h.ListUpcomingEvents)
	r.GET("/events/:id", h.GetEvent)
	r.POST("/events/register/", h.RegisterUser)
	r.GET("/events/:id/registrations/", h.ListRegistrations)
	r.POST("/events/feedback/", h.SubmitFeedback)
}
