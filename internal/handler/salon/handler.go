package salon

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MrsLondon/vivahub-api/internal/handler"
	"github.com/MrsLondon/vivahub-api/internal/model"
	salonService "github.com/MrsLondon/vivahub-api/internal/service/salon"
	"github.com/MrsLondon/vivahub-api/pkg/httputil"
)

type Handler struct {
	service *salonService.Service
}

func NewHandler(service *salonService.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the public salon browsing endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	salons := rg.Group("/salons")
	{
		salons.GET("", h.ListSalons)
		salons.GET("/:id", h.GetSalon)
	}
}

// RegisterOwnerRoutes registers the endpoints for the business owner's own
// salon. The caller mounts them behind auth plus the business role gate.
func (h *Handler) RegisterOwnerRoutes(rg *gin.RouterGroup) {
	salon := rg.Group("/salon")
	{
		salon.POST("", h.CreateSalon)
		salon.GET("", h.GetOwnSalon)
		salon.PATCH("", h.UpdateSalon)
	}
}

func (h *Handler) ListSalons(c *gin.Context) {
	salons, err := h.service.ListSalons(c.Request.Context(), c.Query("city"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to list salons"})
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, salons)
}

func (h *Handler) GetSalon(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid salon ID"})
		return
	}

	detail, err := h.service.GetSalon(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "salon not found"})
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, detail)
}

func (h *Handler) CreateSalon(c *gin.Context) {
	var req model.CreateSalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	salon, err := h.service.CreateSalon(c.Request.Context(), handler.UserID(c), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusCreated, salon)
}

func (h *Handler) GetOwnSalon(c *gin.Context) {
	salon, err := h.service.GetOwnSalon(c.Request.Context(), handler.UserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "salon not found"})
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, salon)
}

func (h *Handler) UpdateSalon(c *gin.Context) {
	var req model.UpdateSalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	salon, err := h.service.UpdateSalon(c.Request.Context(), handler.UserID(c), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, salon)
}
