package model

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one selected service held in a customer's cart. Item identity
// is the service id: adding a service that is already present is a no-op.
type CartItem struct {
	ServiceID uuid.UUID `json:"service_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Duration  int       `json:"duration"` // in minutes
}

// Cart is a snapshot of a customer's selected services, in insertion order,
// with aggregates folded from the current items.
type Cart struct {
	UserID        uuid.UUID  `json:"user_id"`
	Items         []CartItem `json:"items"`
	Count         int        `json:"count"`
	TotalPrice    float64    `json:"total_price"`
	TotalDuration int        `json:"total_duration"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CheckoutRequest converts the whole cart into bookings. The appointment
// time arrives in the 12-hour form the booking form collects.
type CheckoutRequest struct {
	AppointmentDate string `json:"appointment_date" binding:"required"` // "2006-01-02"
	AppointmentTime string `json:"appointment_time" binding:"required,timeslot"` // "H:MM AM/PM"
	Notes           string `json:"notes" binding:"max=1000"`
}

// CheckoutResult reports the settled fan-out. FailedIDs lets a client see
// which services did not book when Err is set; the cart is only cleared
// when every item succeeded.
type CheckoutResult struct {
	Bookings  []*Booking  `json:"bookings"`
	FailedIDs []uuid.UUID `json:"failed_ids,omitempty"`
}
