package model

import (
	"github.com/google/uuid"
)

// Salon status constants
const (
	SalonStatusActive   = "active"
	SalonStatusInactive = "inactive"
)

// Salon represents a business profile owned by a business user
type Salon struct {
	Base
	OwnerID     uuid.UUID `db:"owner_id" json:"owner_id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Address     string    `db:"address" json:"address"`
	City        string    `db:"city" json:"city"`
	Phone       string    `db:"phone" json:"phone"`
	Email       string    `db:"email" json:"email"`
	OpeningTime string    `db:"opening_time" json:"opening_time"` // "HH:MM", 24-hour
	ClosingTime string    `db:"closing_time" json:"closing_time"`
	Status      string    `db:"status" json:"status"`
}

// SalonDetail is a salon with its active services, as returned by the read API.
type SalonDetail struct {
	Salon
	Services []*Service `json:"services"`
}

type CreateSalonRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Address     string `json:"address" binding:"required"`
	City        string `json:"city" binding:"required"`
	Phone       string `json:"phone" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	OpeningTime string `json:"opening_time" binding:"required"`
	ClosingTime string `json:"closing_time" binding:"required"`
}

type UpdateSalonRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email" binding:"omitempty,email"`
	OpeningTime *string `json:"opening_time"`
	ClosingTime *string `json:"closing_time"`
	Status      *string `json:"status" binding:"omitempty,oneof=active inactive"`
}
