package model

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

type Booking struct {
	Base
	CustomerID   uuid.UUID     `db:"customer_id" json:"customer_id"`
	SalonID      uuid.UUID     `db:"salon_id" json:"salon_id"`
	ServiceID    uuid.UUID     `db:"service_id" json:"service_id"`
	StartTime    time.Time     `db:"start_time" json:"start_time"`
	EndTime      time.Time     `db:"end_time" json:"end_time"`
	Status       BookingStatus `db:"status" json:"status"`
	Notes        string        `db:"notes" json:"notes,omitempty"`
	CancelReason *string       `db:"cancel_reason" json:"cancel_reason,omitempty"`
}

// CreateBookingRequest carries one appointment request. The time is the
// 24-hour "HH:MM" form; clients collecting a 12-hour time convert before
// submitting (the checkout flow does this server-side).
type CreateBookingRequest struct {
	ServiceID       uuid.UUID `json:"service_id" binding:"required"`
	AppointmentDate string    `json:"appointment_date" binding:"required"` // "2006-01-02"
	AppointmentTime string    `json:"appointment_time" binding:"required"` // "HH:MM"
	Notes           string    `json:"notes" binding:"max=1000"`
}

type UpdateBookingRequest struct {
	Status       *BookingStatus `json:"status" binding:"omitempty,oneof=pending confirmed cancelled completed"`
	Notes        *string        `json:"notes"`
	CancelReason *string        `json:"cancel_reason"`
}

type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type BookingFilters struct {
	SalonID    uuid.UUID
	CustomerID uuid.UUID
	ServiceID  uuid.UUID
	Status     BookingStatus
	StartDate  time.Time
	EndDate    time.Time
}
