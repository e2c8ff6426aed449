package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/MrsLondon/vivahub-api/internal/model"
)

// All repository interfaces in one file
type (
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
		Delete(ctx context.Context, id uuid.UUID) error
	}

	SalonRepository interface {
		Create(ctx context.Context, salon *model.Salon) error
		Get(ctx context.Context, id uuid.UUID) (*model.Salon, error)
		GetByOwner(ctx context.Context, ownerID uuid.UUID) (*model.Salon, error)
		Update(ctx context.Context, salon *model.Salon) error
		List(ctx context.Context, city string) ([]*model.Salon, error)
	}

	ServiceRepository interface {
		Create(ctx context.Context, service *model.Service) error
		Get(ctx context.Context, id uuid.UUID) (*model.Service, error)
		Update(ctx context.Context, service *model.Service) error
		Delete(ctx context.Context, id uuid.UUID) error
		ListBySalon(ctx context.Context, salonID uuid.UUID) ([]*model.Service, error)
		Search(ctx context.Context, filters *model.ServiceSearchFilters) ([]*model.ServiceSearchResult, error)
		ListLanguages(ctx context.Context) ([]string, error)
	}

	BookingRepository interface {
		CreateWithEvent(ctx context.Context, booking *model.Booking, event *model.OutboxEvent) error
		Get(ctx context.Context, id uuid.UUID) (*model.Booking, error)
		Update(ctx context.Context, booking *model.Booking) error
		List(ctx context.Context, filters *model.BookingFilters) ([]*model.Booking, error)
		CheckConflict(ctx context.Context, salonID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error)
		HasCompletedBooking(ctx context.Context, customerID, bookingID uuid.UUID) (bool, error)
	}

	ReviewRepository interface {
		Create(ctx context.Context, review *model.Review) error
		ListBySalon(ctx context.Context, salonID uuid.UUID) ([]*model.Review, error)
		GetSalonRating(ctx context.Context, salonID uuid.UUID) (*model.SalonRating, error)
		ExistsForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error)
	}

	TokenRepository interface {
		StoreRefreshToken(ctx context.Context, userID uuid.UUID, token string, expiry time.Time) error
		ValidateRefreshToken(ctx context.Context, token string) (uuid.UUID, error)
		RevokeRefreshToken(ctx context.Context, token string) error
		RevokeUserTokens(ctx context.Context, userID uuid.UUID) error
		StoreResetToken(ctx context.Context, userID uuid.UUID, token string, expiry time.Time) error
		ConsumeResetToken(ctx context.Context, token string) (uuid.UUID, error)
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		CreateTx(ctx context.Context, tx *sqlx.Tx, event *model.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errorMessage *string) error
		DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
	}
)
