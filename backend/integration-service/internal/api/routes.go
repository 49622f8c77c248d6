package api

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the integration endpoints on r.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	// Relayed collections
	r.GET("/processes/", h.ListProcesses)
	r.GET("/partners/", h.ListPartners)

	// Process <-> partner links
	r.POST("/link/", h.CreateLink)
	r.DELETE("/link/", h.DeleteLink)
	r.GET("/partner/:id/processes", h.PartnerProcesses)
	r.GET("/process/:id/partners", h.ProcessPartners)
}
