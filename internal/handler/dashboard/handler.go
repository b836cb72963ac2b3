package dashboard

import (
	"github.com/gin-gonic/gin"

	"github.com/clinicore/clinic-api/internal/service/dashboard"
	"github.com/clinicore/clinic-api/pkg/httputil"
)

type Handler struct {
	service dashboard.Servicer
}

func NewHandler(service dashboard.Servicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard/stats", h.Stats)
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, stats)
}
