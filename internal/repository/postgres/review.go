package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrsLondon/vivahub-api/internal/model"
)

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	query := `
		INSERT INTO reviews (
			id, booking_id, salon_id, customer_id, rating, comment,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	review.ID = uuid.New()
	review.CreatedAt = time.Now()
	review.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		review.ID,
		review.BookingID,
		review.SalonID,
		review.CustomerID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
		review.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *reviewRepository) ListBySalon(ctx context.Context, salonID uuid.UUID) ([]*model.Review, error) {
	query := `
		SELECT * FROM reviews
		WHERE salon_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
	`

	var reviews []*model.Review
	if err := r.db.SelectContext(ctx, &reviews, query, salonID); err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

func (r *reviewRepository) GetSalonRating(ctx context.Context, salonID uuid.UUID) (*model.SalonRating, error) {
	query := `
		SELECT salon_id, AVG(rating) AS average, COUNT(*) AS count
		FROM reviews
		WHERE salon_id = $1 AND deleted_at IS NULL
		GROUP BY salon_id
	`

	var rating model.SalonRating
	err := r.db.GetContext(ctx, &rating, query, salonID)
	if errors.Is(err, sql.ErrNoRows) {
		return &model.SalonRating{SalonID: salonID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get salon rating: %w", err)
	}
	return &rating, nil
}

func (r *reviewRepository) ExistsForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM reviews
			WHERE booking_id = $1 AND deleted_at IS NULL
		)
	`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, bookingID); err != nil {
		return false, fmt.Errorf("failed to check review existence: %w", err)
	}
	return exists, nil
}
