package cart

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartStore "github.com/MrsLondon/vivahub-api/internal/cart"
	"github.com/MrsLondon/vivahub-api/internal/middleware"
	"github.com/MrsLondon/vivahub-api/internal/model"
)

func testRouter(t *testing.T, userID uuid.UUID) (*gin.Engine, *cartStore.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	carts := cartStore.NewStore(cartStore.DefaultConfig())
	h := NewHandler(carts, nil, nil)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextUserRole, model.UserRoleCustomer)
	})
	h.RegisterRoutes(&r.RouterGroup)
	h.RegisterCheckoutRoute(&r.RouterGroup)
	return r, carts
}

func TestGetCartEmpty(t *testing.T) {
	r, _ := testRouter(t, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status string     `json:"status"`
		Data   model.Cart `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, 0, resp.Data.Count)
	assert.Empty(t, resp.Data.Items)
}

func TestRemoveItemInvalidID(t *testing.T) {
	r, _ := testRouter(t, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/cart/items/not-a-uuid", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRemoveItemDropsOnlyThatService(t *testing.T) {
	userID := uuid.New()
	r, carts := testRouter(t, userID)

	keep := uuid.New()
	drop := uuid.New()
	carts.Add(userID, model.CartItem{ServiceID: keep, Name: "Haircut", Price: 30, Duration: 45})
	carts.Add(userID, model.CartItem{ServiceID: drop, Name: "Manicure", Price: 20, Duration: 30})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/cart/items/"+drop.String(), nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	cart := carts.Get(userID)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, keep, cart.Items[0].ServiceID)
	assert.Equal(t, 30.0, cart.TotalPrice)
}

func TestListSlots(t *testing.T) {
	r, _ := testRouter(t, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/checkout/slots", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 48)
	assert.Equal(t, "8:00 AM", resp.Data[0])
	assert.Equal(t, "7:45 PM", resp.Data[len(resp.Data)-1])
}
