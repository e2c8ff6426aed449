package booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MrsLondon/vivahub-api/internal/handler"
	"github.com/MrsLondon/vivahub-api/internal/model"
	bookingService "github.com/MrsLondon/vivahub-api/internal/service/booking"
	salonService "github.com/MrsLondon/vivahub-api/internal/service/salon"
	"github.com/MrsLondon/vivahub-api/pkg/httputil"
)

type Handler struct {
	service  *bookingService.Service
	salonSvc *salonService.Service
}

func NewHandler(service *bookingService.Service, salonSvc *salonService.Service) *Handler {
	return &Handler{service: service, salonSvc: salonSvc}
}

// RegisterRoutes registers the public availability endpoint.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/salons/:id/slots", h.GetAvailableSlots)
}

// RegisterCustomerRoutes registers booking endpoints for customers.
func (h *Handler) RegisterCustomerRoutes(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings")
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListMyBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.POST("/:id/cancel", h.CancelBooking)
	}
}

// RegisterOwnerRoutes registers booking management for business owners.
func (h *Handler) RegisterOwnerRoutes(rg *gin.RouterGroup) {
	bookings := rg.Group("/salon/bookings")
	{
		bookings.GET("", h.ListSalonBookings)
		bookings.PATCH("/:id/status", h.UpdateStatus)
		bookings.POST("/:id/cancel", h.CancelBooking)
	}
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req model.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	booking, err := h.service.CreateBooking(c.Request.Context(), handler.UserID(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, bookingService.ErrSlotTaken):
			c.JSON(http.StatusConflict, gin.H{"status": "error", "message": err.Error()})
		case errors.Is(err, bookingService.ErrPastAppointment):
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		}
		return
	}

	httputil.RespondWithSuccess(c, http.StatusCreated, booking)
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid booking ID"})
		return
	}

	booking, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "booking not found"})
		return
	}

	if booking.CustomerID != handler.UserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"status": "error", "message": "not your booking"})
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, booking)
}

func (h *Handler) ListMyBookings(c *gin.Context) {
	filters := &model.BookingFilters{CustomerID: handler.UserID(c)}
	if status := c.Query("status"); status != "" {
		filters.Status = model.BookingStatus(status)
	}

	bookings, err := h.service.ListBookings(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to list bookings"})
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, bookings)
}

func (h *Handler) ListSalonBookings(c *gin.Context) {
	salon, err := h.salonSvc.GetOwnSalon(c.Request.Context(), handler.UserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "salon not found"})
		return
	}

	filters := &model.BookingFilters{SalonID: salon.ID}
	if status := c.Query("status"); status != "" {
		filters.Status = model.BookingStatus(status)
	}
	if date := c.Query("date"); date != "" {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid date"})
			return
		}
		filters.StartDate = day
		filters.EndDate = day.Add(24 * time.Hour)
	}

	bookings, err := h.service.ListBookings(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to list bookings"})
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, bookings)
}

func (h *Handler) CancelBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid booking ID"})
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&body)

	if err := h.service.CancelBooking(c.Request.Context(), id, handler.UserID(c), body.Reason); err != nil {
		if errors.Is(err, bookingService.ErrNotCancellable) {
			c.JSON(http.StatusConflict, gin.H{"status": "error", "message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"message": "booking cancelled"})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid booking ID"})
		return
	}

	var req model.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "status is required"})
		return
	}

	booking, err := h.service.UpdateStatus(c.Request.Context(), id, handler.UserID(c), *req.Status)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"status": "error", "message": err.Error()})
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, booking)
}

func (h *Handler) GetAvailableSlots(c *gin.Context) {
	salonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid salon ID"})
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "date is required as YYYY-MM-DD"})
		return
	}

	slots, err := h.service.GetAvailableSlots(c.Request.Context(), salonID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to compute availability"})
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, slots)
}
