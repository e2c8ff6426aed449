package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrsLondon/vivahub-api/internal/model"
)

func day(clock string) time.Time {
	t, err := ParseAppointment("2030-06-15", clock)
	if err != nil {
		panic(err)
	}
	return t
}

func TestParseAppointment(t *testing.T) {
	got, err := ParseAppointment("2030-06-15", "13:30")
	require.NoError(t, err)
	assert.Equal(t, 13, got.Hour())
	assert.Equal(t, 30, got.Minute())
	assert.Equal(t, time.June, got.Month())

	_, err = ParseAppointment("2030-06-15", "1:00 PM")
	assert.Error(t, err)

	_, err = ParseAppointment("15/06/2030", "13:30")
	assert.Error(t, err)
}

func TestGenerateTimeSlots(t *testing.T) {
	slots := generateTimeSlots(day("09:00"), day("11:00"), SlotInterval)

	require.Len(t, slots, 8)
	assert.Equal(t, day("09:00"), slots[0].Start)
	assert.Equal(t, day("09:15"), slots[0].End)
	assert.Equal(t, day("10:45"), slots[len(slots)-1].Start)
	assert.Equal(t, day("11:00"), slots[len(slots)-1].End)
}

func TestFilterAvailableSlotsRemovesOverlaps(t *testing.T) {
	slots := generateTimeSlots(day("09:00"), day("12:00"), SlotInterval)

	bookings := []*model.Booking{
		{StartTime: day("10:00"), EndTime: day("10:45"), Status: model.BookingStatusConfirmed},
	}

	available := filterAvailableSlots(slots, bookings)

	for _, slot := range available {
		overlaps := slot.Start.Before(day("10:45")) && slot.End.After(day("10:00"))
		assert.False(t, overlaps, "slot %s-%s overlaps the booking", slot.Start, slot.End)
	}
	// Three quarter-hour slots are blocked out of twelve.
	assert.Len(t, available, 9)
}

func TestFilterAvailableSlotsIgnoresCancelled(t *testing.T) {
	slots := generateTimeSlots(day("09:00"), day("10:00"), SlotInterval)

	bookings := []*model.Booking{
		{StartTime: day("09:00"), EndTime: day("10:00"), Status: model.BookingStatusCancelled},
	}

	available := filterAvailableSlots(slots, bookings)
	assert.Len(t, available, len(slots), "cancelled bookings must not block slots")
}

func TestValidTransition(t *testing.T) {
	allowed := []struct{ from, to model.BookingStatus }{
		{model.BookingStatusPending, model.BookingStatusConfirmed},
		{model.BookingStatusPending, model.BookingStatusCancelled},
		{model.BookingStatusConfirmed, model.BookingStatusCompleted},
		{model.BookingStatusConfirmed, model.BookingStatusCancelled},
	}
	for _, tr := range allowed {
		assert.True(t, validTransition(tr.from, tr.to), "%s -> %s", tr.from, tr.to)
	}

	denied := []struct{ from, to model.BookingStatus }{
		{model.BookingStatusPending, model.BookingStatusCompleted},
		{model.BookingStatusCancelled, model.BookingStatusConfirmed},
		{model.BookingStatusCompleted, model.BookingStatusCancelled},
		{model.BookingStatusCompleted, model.BookingStatusPending},
	}
	for _, tr := range denied {
		assert.False(t, validTransition(tr.from, tr.to), "%s -> %s", tr.from, tr.to)
	}
}

func TestValidateAppointmentTime(t *testing.T) {
	svc := &Service{}

	assert.ErrorIs(t, svc.validateAppointmentTime(time.Now().Add(-time.Hour)), ErrPastAppointment)
	assert.NoError(t, svc.validateAppointmentTime(time.Now().Add(24*time.Hour)))
	assert.Error(t, svc.validateAppointmentTime(time.Now().Add(MaxAdvanceBooking+24*time.Hour)))
}
