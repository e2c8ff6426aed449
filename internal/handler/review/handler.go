package review

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MrsLondon/vivahub-api/internal/handler"
	"github.com/MrsLondon/vivahub-api/internal/model"
	reviewService "github.com/MrsLondon/vivahub-api/internal/service/review"
	"github.com/MrsLondon/vivahub-api/pkg/httputil"
)

type Handler struct {
	service *reviewService.Service
}

func NewHandler(service *reviewService.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the public review listing.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reviews/salons/:id", h.ListSalonReviews)
}

// RegisterCustomerRoutes registers review creation for customers.
func (h *Handler) RegisterCustomerRoutes(rg *gin.RouterGroup) {
	rg.POST("/reviews", h.CreateReview)
}

func (h *Handler) ListSalonReviews(c *gin.Context) {
	salonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid salon ID"})
		return
	}

	reviews, err := h.service.ListSalonReviews(c.Request.Context(), salonID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to list reviews"})
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, reviews)
}

func (h *Handler) CreateReview(c *gin.Context) {
	var req model.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	review, err := h.service.CreateReview(c.Request.Context(), handler.UserID(c), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusCreated, review)
}
