package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrsLondon/vivahub-api/internal/cart"
	"github.com/MrsLondon/vivahub-api/internal/model"
	"github.com/MrsLondon/vivahub-api/pkg/logger"
	"github.com/MrsLondon/vivahub-api/pkg/metrics"
)

// Registering prometheus collectors twice panics, so the test binary shares
// one instance.
var testMetrics = metrics.NewMetrics("vivahub_checkout_test")

type fakeBookingCreator struct {
	mu      sync.Mutex
	created []uuid.UUID
	failFor map[uuid.UUID]error
	entered chan struct{}
	barrier chan struct{}
}

func (f *fakeBookingCreator) CreateBooking(_ context.Context, customerID uuid.UUID, req *model.CreateBookingRequest) (*model.Booking, error) {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.barrier != nil {
		<-f.barrier
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failFor[req.ServiceID]; ok {
		return nil, err
	}
	f.created = append(f.created, req.ServiceID)
	b := &model.Booking{
		CustomerID: customerID,
		ServiceID:  req.ServiceID,
		Status:     model.BookingStatusPending,
	}
	b.ID = uuid.New()
	return b, nil
}

func newTestService(creator *fakeBookingCreator) (*Service, *cart.Store) {
	carts := cart.NewStore(cart.DefaultConfig())
	return NewService(carts, creator, logger.NewLogger(nil), testMetrics), carts
}

func checkoutReq() *model.CheckoutRequest {
	return &model.CheckoutRequest{
		AppointmentDate: "2030-06-15",
		AppointmentTime: "1:00 PM",
	}
}

func TestCheckoutBooksEveryItemAndClearsCart(t *testing.T) {
	creator := &fakeBookingCreator{}
	svc, carts := newTestService(creator)
	userID := uuid.New()

	carts.Add(userID, model.CartItem{ServiceID: uuid.New(), Name: "Haircut", Price: 30, Duration: 45})
	carts.Add(userID, model.CartItem{ServiceID: uuid.New(), Name: "Manicure", Price: 25, Duration: 30})

	result, err := svc.Checkout(context.Background(), userID, model.UserRoleCustomer, "/checkout", checkoutReq())

	require.NoError(t, err)
	assert.Len(t, result.Bookings, 2)
	assert.Empty(t, result.FailedIDs)
	assert.Equal(t, 0, carts.Get(userID).Count, "cart should be cleared after a full success")

	for _, b := range result.Bookings {
		assert.Equal(t, userID, b.CustomerID)
	}
}

func TestCheckoutPartialFailureKeepsCart(t *testing.T) {
	failing := uuid.New()
	creator := &fakeBookingCreator{
		failFor: map[uuid.UUID]error{failing: errors.New("the selected time is no longer available")},
	}
	svc, carts := newTestService(creator)
	userID := uuid.New()

	carts.Add(userID, model.CartItem{ServiceID: uuid.New(), Name: "Haircut", Price: 30, Duration: 45})
	carts.Add(userID, model.CartItem{ServiceID: failing, Name: "Massage", Price: 60, Duration: 60})

	result, err := svc.Checkout(context.Background(), userID, model.UserRoleCustomer, "/checkout", checkoutReq())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFanOut)
	assert.Contains(t, err.Error(), "no longer available")
	assert.Equal(t, []uuid.UUID{failing}, result.FailedIDs)
	assert.Len(t, result.Bookings, 1)
	assert.Equal(t, 2, carts.Get(userID).Count, "cart must survive a failed checkout")
}

func TestCheckoutAnonymousGetsLoginRedirect(t *testing.T) {
	svc, _ := newTestService(&fakeBookingCreator{})

	_, err := svc.Checkout(context.Background(), uuid.Nil, "", "/salons/123?tab=book", checkoutReq())

	var loginErr *LoginRequiredError
	require.ErrorAs(t, err, &loginErr)
	assert.Equal(t, "/login?redirect=%2Fsalons%2F123%3Ftab%3Dbook", loginErr.Redirect)
}

func TestCheckoutBusinessRoleRejected(t *testing.T) {
	svc, carts := newTestService(&fakeBookingCreator{})
	userID := uuid.New()
	carts.Add(userID, model.CartItem{ServiceID: uuid.New(), Name: "Haircut", Price: 30, Duration: 45})

	_, err := svc.Checkout(context.Background(), userID, model.UserRoleBusiness, "/checkout", checkoutReq())

	var loginErr *LoginRequiredError
	require.ErrorAs(t, err, &loginErr)
	assert.Equal(t, 1, carts.Get(userID).Count)
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc, _ := newTestService(&fakeBookingCreator{})

	_, err := svc.Checkout(context.Background(), uuid.New(), model.UserRoleCustomer, "/checkout", checkoutReq())

	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutInvalidTimeRejectedBeforeFanOut(t *testing.T) {
	creator := &fakeBookingCreator{}
	svc, carts := newTestService(creator)
	userID := uuid.New()
	carts.Add(userID, model.CartItem{ServiceID: uuid.New(), Name: "Haircut", Price: 30, Duration: 45})

	_, err := svc.Checkout(context.Background(), userID, model.UserRoleCustomer, "/checkout", &model.CheckoutRequest{
		AppointmentDate: "2030-06-15",
		AppointmentTime: "25:00 PM",
	})

	require.Error(t, err)
	assert.Empty(t, creator.created, "no bookings should be attempted with a bad time")
	assert.Equal(t, 1, carts.Get(userID).Count)
}

func TestCheckoutRejectsConcurrentSubmit(t *testing.T) {
	barrier := make(chan struct{})
	entered := make(chan struct{}, 1)
	creator := &fakeBookingCreator{barrier: barrier, entered: entered}
	svc, carts := newTestService(creator)
	userID := uuid.New()
	carts.Add(userID, model.CartItem{ServiceID: uuid.New(), Name: "Haircut", Price: 30, Duration: 45})

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.Checkout(context.Background(), userID, model.UserRoleCustomer, "/checkout", checkoutReq())
		firstDone <- err
	}()

	// The first checkout holds the in-flight slot once its fan-out has
	// started, so a second submit must bounce.
	<-entered
	_, second := svc.Checkout(context.Background(), userID, model.UserRoleCustomer, "/checkout", checkoutReq())
	assert.ErrorIs(t, second, ErrInFlight)

	close(barrier)
	require.NoError(t, <-firstDone)
	assert.Equal(t, 0, carts.Get(userID).Count)
}
