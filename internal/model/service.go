package model

import (
	"github.com/google/uuid"
)

// Service status constants
const (
	ServiceStatusActive   = "active"
	ServiceStatusInactive = "inactive"
)

// Service represents a bookable salon service
type Service struct {
	Base
	SalonID     uuid.UUID `db:"salon_id" json:"salon_id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Duration    int       `db:"duration" json:"duration"` // in minutes
	Price       float64   `db:"price" json:"price"`
	Language    string    `db:"language" json:"language"` // language spoken by the stylist
	Status      string    `db:"status" json:"status"`
}

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Duration    int     `json:"duration" binding:"required,min=15,max=480"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Language    string  `json:"language"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Duration    *int     `json:"duration" binding:"omitempty,min=15,max=480"`
	Price       *float64 `json:"price" binding:"omitempty,gt=0"`
	Language    *string  `json:"language"`
	Status      *string  `json:"status" binding:"omitempty,oneof=active inactive"`
}

// ServiceSearchFilters represents search parameters for the public catalog
type ServiceSearchFilters struct {
	Pagination
	Query    string    `form:"q"`
	Language string    `form:"language"`
	City     string    `form:"city"`
	MaxPrice float64   `form:"max_price"`
	SalonID  uuid.UUID `form:"salon_id"`
}

// ServiceSearchResult is a service joined with its salon for search listings.
type ServiceSearchResult struct {
	Service
	SalonName string `db:"salon_name" json:"salon_name"`
	SalonCity string `db:"salon_city" json:"salon_city"`
}
