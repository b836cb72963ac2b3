package responsible

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinicore/clinic-api/internal/middleware"
	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/service/responsible"
	"github.com/clinicore/clinic-api/internal/service/task"
	apperrors "github.com/clinicore/clinic-api/pkg/errors"
	"github.com/clinicore/clinic-api/pkg/httputil"
)

type Handler struct {
	service responsible.Servicer
	tasks   task.Servicer
}

func NewHandler(service responsible.Servicer, tasks task.Servicer) *Handler {
	return &Handler{
		service: service,
		tasks:   tasks,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	adminOnly := auth.RequireRole(model.RoleAdministrator)

	responsibles := r.Group("/responsibles")
	{
		responsibles.POST("", adminOnly, h.CreateResponsible)
		responsibles.GET("", h.ListResponsibles)
		responsibles.GET("/:id", h.GetResponsible)
		responsibles.PUT("/:id", adminOnly, h.UpdateResponsible)
		responsibles.DELETE("/:id", adminOnly, h.DeleteResponsible)
		responsibles.GET("/:id/tasks", h.ListTasks)
	}
}

func (h *Handler) CreateResponsible(c *gin.Context) {
	var req model.CreateResponsibleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	created, err := h.service.CreateResponsible(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, created)
}

func (h *Handler) ListResponsibles(c *gin.Context) {
	responsibles, err := h.service.ListResponsibles(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, responsibles)
}

func (h *Handler) GetResponsible(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid responsible id"))
		return
	}

	found, err := h.service.GetResponsible(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, found)
}

func (h *Handler) UpdateResponsible(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid responsible id"))
		return
	}

	var req model.UpdateResponsibleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	updated, err := h.service.UpdateResponsible(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, updated)
}

func (h *Handler) DeleteResponsible(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid responsible id"))
		return
	}

	if err := h.service.DeleteResponsible(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, "responsible deleted")
}

// ListTasks serves the responsible's tasks, optionally filtered by done
// state.
func (h *Handler) ListTasks(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid responsible id"))
		return
	}
	if _, err := h.service.GetResponsible(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	filters := &model.TaskFilters{ResponsibleID: &id}
	if raw := c.Query("done"); raw != "" {
		done, err := strconv.ParseBool(raw)
		if err != nil {
			httputil.RespondWithError(c, apperrors.Validation("invalid done filter"))
			return
		}
		filters.Done = &done
	}

	tasks, err := h.tasks.ListTasks(c.Request.Context(), filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, tasks)
}
