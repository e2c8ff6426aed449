package cart

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	cartStore "github.com/MrsLondon/vivahub-api/internal/cart"
	"github.com/MrsLondon/vivahub-api/internal/handler"
	"github.com/MrsLondon/vivahub-api/internal/model"
	catalogService "github.com/MrsLondon/vivahub-api/internal/service/catalog"
	checkoutService "github.com/MrsLondon/vivahub-api/internal/service/checkout"
	"github.com/MrsLondon/vivahub-api/pkg/httputil"
)

type Handler struct {
	carts       *cartStore.Store
	catalogSvc  *catalogService.Service
	checkoutSvc *checkoutService.Service
}

func NewHandler(carts *cartStore.Store, catalogSvc *catalogService.Service, checkoutSvc *checkoutService.Service) *Handler {
	return &Handler{carts: carts, catalogSvc: catalogSvc, checkoutSvc: checkoutSvc}
}

// RegisterRoutes registers cart endpoints for authenticated users.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	{
		cart.GET("", h.GetCart)
		cart.POST("/items", h.AddItem)
		cart.DELETE("/items/:serviceID", h.RemoveItem)
		cart.DELETE("", h.ClearCart)
	}
}

// RegisterCheckoutRoute mounts checkout behind optional auth so anonymous
// callers get the login redirect instead of a bare 401.
func (h *Handler) RegisterCheckoutRoute(rg *gin.RouterGroup) {
	rg.POST("/checkout", h.Checkout)
	rg.GET("/checkout/slots", h.ListSlots)
}

type addItemRequest struct {
	ServiceID uuid.UUID `json:"service_id" binding:"required"`
}

func (h *Handler) GetCart(c *gin.Context) {
	httputil.RespondWithSuccess(c, http.StatusOK, h.carts.Get(handler.UserID(c)))
}

// AddItem resolves the service and stores a snapshot of its name, price and
// duration. Adding a service already in the cart leaves the cart unchanged.
func (h *Handler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	svc, err := h.catalogSvc.GetService(c.Request.Context(), req.ServiceID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "service not found"})
		return
	}
	if svc.Status != model.ServiceStatusActive {
		c.JSON(http.StatusConflict, gin.H{"status": "error", "message": "service is not available"})
		return
	}

	cart := h.carts.Add(handler.UserID(c), model.CartItem{
		ServiceID: svc.ID,
		Name:      svc.Name,
		Price:     svc.Price,
		Duration:  svc.Duration,
	})

	httputil.RespondWithSuccess(c, http.StatusOK, cart)
}

func (h *Handler) RemoveItem(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("serviceID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid service ID"})
		return
	}

	cart := h.carts.Remove(handler.UserID(c), serviceID)
	httputil.RespondWithSuccess(c, http.StatusOK, cart)
}

func (h *Handler) ClearCart(c *gin.Context) {
	cart := h.carts.Clear(handler.UserID(c))
	httputil.RespondWithSuccess(c, http.StatusOK, cart)
}

// ListSlots returns the 12-hour time labels the booking form offers.
func (h *Handler) ListSlots(c *gin.Context) {
	httputil.RespondWithSuccess(c, http.StatusOK, checkoutService.Slots())
}

func (h *Handler) Checkout(c *gin.Context) {
	var req model.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	returnTo := c.Query("return_to")
	if returnTo == "" {
		returnTo = "/checkout"
	}

	result, err := h.checkoutSvc.Checkout(c.Request.Context(), handler.UserID(c), handler.UserRole(c), returnTo, &req)
	if err != nil {
		var loginErr *checkoutService.LoginRequiredError
		switch {
		case errors.As(err, &loginErr):
			httputil.RespondWithLoginRedirect(c, loginErr.Error(), loginErr.Redirect)
		case errors.Is(err, checkoutService.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		case errors.Is(err, checkoutService.ErrInFlight):
			c.JSON(http.StatusConflict, gin.H{"status": "error", "message": err.Error()})
		case errors.Is(err, checkoutService.ErrFanOut):
			c.JSON(http.StatusConflict, gin.H{"status": "error", "message": err.Error(), "data": result})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		}
		return
	}

	httputil.RespondWithSuccess(c, http.StatusCreated, result)
}
