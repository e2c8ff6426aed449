package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrsLondon/vivahub-api/internal/model"
	"github.com/MrsLondon/vivahub-api/internal/repository"
	"github.com/MrsLondon/vivahub-api/pkg/metrics"
)

// Business rules for booking times
const (
	MaxAdvanceBooking = 90 * 24 * time.Hour
	SlotInterval      = 15 * time.Minute
)

var (
	ErrSlotTaken       = errors.New("the selected time is no longer available")
	ErrPastAppointment = errors.New("appointment cannot be scheduled in the past")
	ErrNotCancellable  = errors.New("booking can no longer be cancelled")
)

type Service struct {
	repo        repository.BookingRepository
	serviceRepo repository.ServiceRepository
	salonRepo   repository.SalonRepository
	userRepo    repository.UserRepository
	metrics     *metrics.Metrics
}

func NewService(
	repo repository.BookingRepository,
	serviceRepo repository.ServiceRepository,
	salonRepo repository.SalonRepository,
	userRepo repository.UserRepository,
	m *metrics.Metrics,
) *Service {
	return &Service{
		repo:        repo,
		serviceRepo: serviceRepo,
		salonRepo:   salonRepo,
		userRepo:    userRepo,
		metrics:     m,
	}
}

// CreateBooking books one service for a customer. The appointment end time
// is derived from the service duration, and the booking plus its
// booking.created event commit in one transaction.
func (s *Service) CreateBooking(ctx context.Context, customerID uuid.UUID, req *model.CreateBookingRequest) (*model.Booking, error) {
	svc, err := s.serviceRepo.Get(ctx, req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	if svc.Status != model.ServiceStatusActive {
		return nil, fmt.Errorf("service is not available")
	}

	start, err := ParseAppointment(req.AppointmentDate, req.AppointmentTime)
	if err != nil {
		return nil, err
	}
	end := start.Add(time.Duration(svc.Duration) * time.Minute)

	if err := s.validateAppointmentTime(start); err != nil {
		return nil, err
	}

	hasConflict, err := s.repo.CheckConflict(ctx, svc.SalonID, start, end, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check conflicts: %w", err)
	}
	if hasConflict {
		return nil, ErrSlotTaken
	}

	booking := &model.Booking{
		CustomerID: customerID,
		SalonID:    svc.SalonID,
		ServiceID:  svc.ID,
		StartTime:  start,
		EndTime:    end,
		Status:     model.BookingStatusPending,
		Notes:      req.Notes,
	}

	event, err := s.bookingEvent(ctx, model.EventBookingCreated, booking, svc)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateWithEvent(ctx, booking, event); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.metrics.BookingsCreated.WithLabelValues("api").Inc()
	return booking, nil
}

func (s *Service) GetBooking(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	booking, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

func (s *Service) ListBookings(ctx context.Context, filters *model.BookingFilters) ([]*model.Booking, error) {
	bookings, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (s *Service) CancelBooking(ctx context.Context, id, requesterID uuid.UUID, reason string) error {
	booking, err := s.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.CustomerID != requesterID {
		salon, err := s.salonRepo.Get(ctx, booking.SalonID)
		if err != nil || salon.OwnerID != requesterID {
			return fmt.Errorf("booking not found")
		}
	}

	if booking.Status == model.BookingStatusCancelled || booking.Status == model.BookingStatusCompleted {
		return ErrNotCancellable
	}

	booking.Status = model.BookingStatusCancelled
	booking.CancelReason = &reason

	if err := s.repo.Update(ctx, booking); err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	s.metrics.BookingsCancelled.Inc()
	return nil
}

// UpdateStatus moves a booking through its lifecycle; only the salon owner
// may confirm or complete.
func (s *Service) UpdateStatus(ctx context.Context, id, ownerID uuid.UUID, status model.BookingStatus) (*model.Booking, error) {
	booking, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	salon, err := s.salonRepo.Get(ctx, booking.SalonID)
	if err != nil {
		return nil, fmt.Errorf("failed to get salon: %w", err)
	}
	if salon.OwnerID != ownerID {
		return nil, fmt.Errorf("booking not found")
	}

	if !validTransition(booking.Status, status) {
		return nil, fmt.Errorf("cannot move booking from %s to %s", booking.Status, status)
	}

	booking.Status = status
	if err := s.repo.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}
	return booking, nil
}

// GetAvailableSlots returns the open appointment slots for a salon on a
// date, built from the salon's opening hours minus existing bookings.
func (s *Service) GetAvailableSlots(ctx context.Context, salonID uuid.UUID, date time.Time) ([]model.TimeSlot, error) {
	salon, err := s.salonRepo.Get(ctx, salonID)
	if err != nil {
		return nil, fmt.Errorf("failed to get salon: %w", err)
	}

	dayStart, err := atClock(date, salon.OpeningTime)
	if err != nil {
		return nil, fmt.Errorf("invalid opening time: %w", err)
	}
	dayEnd, err := atClock(date, salon.ClosingTime)
	if err != nil {
		return nil, fmt.Errorf("invalid closing time: %w", err)
	}

	bookings, err := s.repo.List(ctx, &model.BookingFilters{
		SalonID:   salonID,
		StartDate: dayStart,
		EndDate:   dayEnd,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	slots := generateTimeSlots(dayStart, dayEnd, SlotInterval)
	return filterAvailableSlots(slots, bookings), nil
}

func (s *Service) validateAppointmentTime(start time.Time) error {
	now := time.Now()
	if start.Before(now) {
		return ErrPastAppointment
	}
	if start.Sub(now) > MaxAdvanceBooking {
		return fmt.Errorf("appointment cannot be more than %d days in advance", int(MaxAdvanceBooking.Hours()/24))
	}
	return nil
}

func (s *Service) bookingEvent(ctx context.Context, eventType string, booking *model.Booking, svc *model.Service) (*model.OutboxEvent, error) {
	customer, err := s.userRepo.Get(ctx, booking.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	salon, err := s.salonRepo.Get(ctx, booking.SalonID)
	if err != nil {
		return nil, fmt.Errorf("failed to get salon: %w", err)
	}

	payload, err := json.Marshal(model.BookingEventPayload{
		BookingID:     booking.ID,
		CustomerID:    customer.ID,
		CustomerEmail: customer.Email,
		CustomerName:  customer.FullName(),
		SalonID:       salon.ID,
		SalonName:     salon.Name,
		ServiceName:   svc.Name,
		StartTime:     booking.StartTime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}

	return &model.OutboxEvent{EventType: eventType, Payload: payload}, nil
}

// ParseAppointment combines a "2006-01-02" date and a 24-hour "HH:MM" time
// into the appointment start time.
func ParseAppointment(date, clock string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid appointment date/time: %w", err)
	}
	return t, nil
}

func atClock(date time.Time, clock string) (time.Time, error) {
	return ParseAppointment(date.Format("2006-01-02"), clock)
}

func generateTimeSlots(start, end time.Time, interval time.Duration) []model.TimeSlot {
	var slots []model.TimeSlot
	for t := start; t.Before(end); t = t.Add(interval) {
		slots = append(slots, model.TimeSlot{
			Start: t,
			End:   t.Add(interval),
		})
	}
	return slots
}

func filterAvailableSlots(slots []model.TimeSlot, bookings []*model.Booking) []model.TimeSlot {
	var available []model.TimeSlot
	for _, slot := range slots {
		conflict := false
		for _, b := range bookings {
			if b.Status == model.BookingStatusCancelled {
				continue
			}
			if slot.Start.Before(b.EndTime) && slot.End.After(b.StartTime) {
				conflict = true
				break
			}
		}
		if !conflict {
			available = append(available, slot)
		}
	}
	return available
}

func validTransition(from, to model.BookingStatus) bool {
	switch from {
	case model.BookingStatusPending:
		return to == model.BookingStatusConfirmed || to == model.BookingStatusCancelled
	case model.BookingStatusConfirmed:
		return to == model.BookingStatusCompleted || to == model.BookingStatusCancelled
	default:
		return false
	}
}
