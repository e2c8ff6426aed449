package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MrsLondon/vivahub-api/internal/handler"
	"github.com/MrsLondon/vivahub-api/internal/model"
	catalogService "github.com/MrsLondon/vivahub-api/internal/service/catalog"
	"github.com/MrsLondon/vivahub-api/pkg/httputil"
)

type Handler struct {
	service *catalogService.Service
}

func NewHandler(service *catalogService.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the public catalog endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/search", h.Search)

	services := rg.Group("/services")
	{
		services.GET("/languages", h.ListLanguages)
		services.GET("/:id", h.GetService)
	}
}

// RegisterOwnerRoutes registers service management for business owners.
func (h *Handler) RegisterOwnerRoutes(rg *gin.RouterGroup) {
	services := rg.Group("/services")
	{
		services.POST("", h.CreateService)
		services.PATCH("/:id", h.UpdateService)
		services.DELETE("/:id", h.DeleteService)
	}
}

func (h *Handler) Search(c *gin.Context) {
	var filters model.ServiceSearchFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	results, err := h.service.Search(c.Request.Context(), &filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "search failed"})
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, results)
}

func (h *Handler) ListLanguages(c *gin.Context) {
	languages, err := h.service.ListLanguages(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to list languages"})
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, languages)
}

func (h *Handler) GetService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid service ID"})
		return
	}

	svc, err := h.service.GetService(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "service not found"})
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, svc)
}

func (h *Handler) CreateService(c *gin.Context) {
	var req model.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	svc, err := h.service.CreateService(c.Request.Context(), handler.UserID(c), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusCreated, svc)
}

func (h *Handler) UpdateService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid service ID"})
		return
	}

	var req model.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	svc, err := h.service.UpdateService(c.Request.Context(), handler.UserID(c), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, svc)
}

func (h *Handler) DeleteService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid service ID"})
		return
	}

	if err := h.service.DeleteService(c.Request.Context(), handler.UserID(c), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"message": "service deleted"})
}
