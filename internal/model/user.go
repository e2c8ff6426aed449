package model

import (
	"time"
)

// User status constants
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
	UserStatusLocked   = "locked"
)

// User role constants. Customers book services, business users own a salon.
const (
	UserRoleCustomer = "customer"
	UserRoleBusiness = "business"
)

// User represents an account holder, either a customer or a salon owner
type User struct {
	Base
	Email            string     `json:"email" db:"email"`
	Password         string     `json:"password,omitempty" db:"-"`
	PasswordHash     string     `json:"-" db:"password_hash"`
	FirstName        string     `json:"first_name" db:"first_name"`
	LastName         string     `json:"last_name" db:"last_name"`
	Phone            *string    `json:"phone" db:"phone"`
	Role             string     `json:"role" db:"role"`
	Status           string     `json:"status" db:"status"`
	LastLoginAt      *time.Time `json:"last_login_at" db:"last_login_at"`
	LoginAttempts    int        `json:"-" db:"login_attempts"`
	LastLoginAttempt time.Time  `json:"-" db:"last_login_attempt"`
}

// FullName returns the displayable name for notifications and emails.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// UpdateProfileRequest represents profile update parameters
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
}
