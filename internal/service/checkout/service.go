// Package checkout turns a customer's cart into confirmed bookings: it
// gates on role, normalizes the appointment time, fans out one booking per
// cart item, and clears the cart only when every item booked.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/google/uuid"

	"github.com/MrsLondon/vivahub-api/internal/cart"
	"github.com/MrsLondon/vivahub-api/internal/model"
	"github.com/MrsLondon/vivahub-api/pkg/logger"
	"github.com/MrsLondon/vivahub-api/pkg/metrics"
)

// BookingCreator is the slice of the booking service checkout needs.
type BookingCreator interface {
	CreateBooking(ctx context.Context, customerID uuid.UUID, req *model.CreateBookingRequest) (*model.Booking, error)
}

var (
	ErrEmptyCart  = errors.New("cart is empty")
	ErrInFlight   = errors.New("a checkout is already in progress")
	ErrFanOut     = errors.New("some bookings could not be created")
	genericErrMsg = "could not complete your booking, please try again"
)

// LoginRequiredError is returned when an anonymous or business-role caller
// attempts checkout. Redirect carries the login path with the originating
// page encoded so the user lands back where they started.
type LoginRequiredError struct {
	Redirect string
}

func (e *LoginRequiredError) Error() string {
	return "login as a customer to book services"
}

// LoginRedirect builds the login path used by LoginRequiredError.
func LoginRedirect(returnTo string) string {
	return "/login?redirect=" + url.QueryEscape(returnTo)
}

type Service struct {
	carts      *cart.Store
	bookingSvc BookingCreator
	logger     *logger.Logger
	metrics    *metrics.Metrics

	mu       sync.Mutex
	inFlight map[uuid.UUID]bool
}

func NewService(carts *cart.Store, bookingSvc BookingCreator, log *logger.Logger, m *metrics.Metrics) *Service {
	return &Service{
		carts:      carts,
		bookingSvc: bookingSvc,
		logger:     log,
		metrics:    m,
		inFlight:   make(map[uuid.UUID]bool),
	}
}

type itemResult struct {
	serviceID uuid.UUID
	booking   *model.Booking
	err       error
}

// Checkout submits every cart item as a booking at the requested slot. The
// role gate runs first: only authenticated customers may proceed, everyone
// else gets a login redirect pointing back to returnTo. All items are
// submitted concurrently and joined; on any failure the cart is left intact
// so the customer can retry.
func (s *Service) Checkout(ctx context.Context, userID uuid.UUID, role, returnTo string, req *model.CheckoutRequest) (*model.CheckoutResult, error) {
	if userID == uuid.Nil || role != model.UserRoleCustomer {
		return nil, &LoginRequiredError{Redirect: LoginRedirect(returnTo)}
	}

	snapshot := s.carts.Get(userID)
	if snapshot.Count == 0 {
		return nil, ErrEmptyCart
	}

	if !s.begin(userID) {
		return nil, ErrInFlight
	}
	defer s.end(userID)

	s.metrics.CheckoutAttempts.Inc()
	s.metrics.CheckoutItemCount.Observe(float64(snapshot.Count))

	appointmentTime, err := To24Hour(req.AppointmentTime)
	if err != nil {
		return nil, err
	}

	results := make(chan itemResult, snapshot.Count)
	var wg sync.WaitGroup
	for _, item := range snapshot.Items {
		wg.Add(1)
		go func(item model.CartItem) {
			defer wg.Done()
			b, err := s.bookingSvc.CreateBooking(ctx, userID, &model.CreateBookingRequest{
				ServiceID:       item.ServiceID,
				AppointmentDate: req.AppointmentDate,
				AppointmentTime: appointmentTime,
				Notes:           req.Notes,
			})
			results <- itemResult{serviceID: item.ServiceID, booking: b, err: err}
		}(item)
	}
	wg.Wait()
	close(results)

	result := &model.CheckoutResult{}
	var firstErr error
	for r := range results {
		if r.err != nil {
			result.FailedIDs = append(result.FailedIDs, r.serviceID)
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		result.Bookings = append(result.Bookings, r.booking)
	}

	if firstErr != nil {
		s.metrics.CheckoutFailures.Inc()
		s.logger.Error(firstErr, "checkout fan-out failed",
			"user_id", userID.String(),
			"failed", len(result.FailedIDs),
			"succeeded", len(result.Bookings))
		return result, fmt.Errorf("%w: %s", ErrFanOut, failureMessage(firstErr))
	}

	s.carts.Clear(userID)
	return result, nil
}

func (s *Service) begin(userID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[userID] {
		return false
	}
	s.inFlight[userID] = true
	return true
}

func (s *Service) end(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, userID)
}

// failureMessage surfaces the first failing item's message, falling back to
// a generic string when the error has nothing presentable.
func failureMessage(err error) string {
	if err == nil || err.Error() == "" {
		return genericErrMsg
	}
	return err.Error()
}
