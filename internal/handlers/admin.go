package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-api/internal/services"
)

type AdminHandler struct {
	admin *services.AdminService
	resp  *Responder
}

func NewAdminHandler(admin *services.AdminService, resp *Responder) *AdminHandler {
	return &AdminHandler{admin: admin, resp: resp}
}

func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.admin.Stats(c.Request.Context())
	if err != nil {
		h.resp.fail(c, err)
		return
	}
	h.resp.ok(c, http.StatusOK, stats)
}
