package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/MrsLondon/vivahub-api/internal/model"
)

// CreateWithEvent inserts the booking and its outbox event in one
// transaction so the event is never published for a booking that did not
// commit.
func (r *bookingRepository) CreateWithEvent(ctx context.Context, booking *model.Booking, event *model.OutboxEvent) error {
	query := `
		INSERT INTO bookings (
			id, customer_id, salon_id, service_id, start_time, end_time,
			status, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	booking.ID = uuid.New()
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = time.Now()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, query,
			booking.ID,
			booking.CustomerID,
			booking.SalonID,
			booking.ServiceID,
			booking.StartTime,
			booking.EndTime,
			booking.Status,
			booking.Notes,
			booking.CreatedAt,
			booking.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		if event != nil {
			eventQuery := `
				INSERT INTO outbox_events (
					id, event_type, payload, status, created_at, updated_at
				) VALUES ($1, $2, $3, $4, $5, $6)
			`
			event.ID = uuid.New()
			event.Status = model.OutboxStatusPending
			event.CreatedAt = time.Now()
			event.UpdatedAt = time.Now()

			if _, err := tx.ExecContext(ctx, eventQuery,
				event.ID,
				event.EventType,
				event.Payload,
				event.Status,
				event.CreatedAt,
				event.UpdatedAt,
			); err != nil {
				return fmt.Errorf("failed to create outbox event: %w", err)
			}
		}

		return nil
	})
}

func (r *bookingRepository) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	query := `
		SELECT * FROM bookings
		WHERE id = $1 AND deleted_at IS NULL
	`

	var booking model.Booking
	if err := r.db.GetContext(ctx, &booking, query, id); err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *model.Booking) error {
	query := `
		UPDATE bookings
		SET start_time = $1, end_time = $2, status = $3, notes = $4,
			cancel_reason = $5, updated_at = $6
		WHERE id = $7 AND deleted_at IS NULL
	`

	booking.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		booking.StartTime,
		booking.EndTime,
		booking.Status,
		booking.Notes,
		booking.CancelReason,
		booking.UpdatedAt,
		booking.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("booking not found")
	}

	return nil
}

func (r *bookingRepository) List(ctx context.Context, filters *model.BookingFilters) ([]*model.Booking, error) {
	query := `
		SELECT * FROM bookings
		WHERE deleted_at IS NULL
	`
	args := []interface{}{}
	argCount := 1

	if filters.SalonID != uuid.Nil {
		query += fmt.Sprintf(" AND salon_id = $%d", argCount)
		args = append(args, filters.SalonID)
		argCount++
	}

	if filters.CustomerID != uuid.Nil {
		query += fmt.Sprintf(" AND customer_id = $%d", argCount)
		args = append(args, filters.CustomerID)
		argCount++
	}

	if filters.ServiceID != uuid.Nil {
		query += fmt.Sprintf(" AND service_id = $%d", argCount)
		args = append(args, filters.ServiceID)
		argCount++
	}

	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, filters.Status)
		argCount++
	}

	if !filters.StartDate.IsZero() {
		query += fmt.Sprintf(" AND start_time >= $%d", argCount)
		args = append(args, filters.StartDate)
		argCount++
	}

	if !filters.EndDate.IsZero() {
		query += fmt.Sprintf(" AND end_time <= $%d", argCount)
		args = append(args, filters.EndDate)
		argCount++
	}

	query += " ORDER BY start_time ASC"

	var bookings []*model.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) CheckConflict(ctx context.Context, salonID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE salon_id = $1
			AND status NOT IN ('cancelled', 'completed')
			AND deleted_at IS NULL
			AND start_time < $3
			AND end_time > $2
	`
	args := []interface{}{salonID, start, end}

	if excludeID != nil {
		query += " AND id != $4"
		args = append(args, *excludeID)
	}

	query += ")"

	var hasConflict bool
	if err := r.db.GetContext(ctx, &hasConflict, query, args...); err != nil {
		return false, fmt.Errorf("failed to check conflicts: %w", err)
	}
	return hasConflict, nil
}

func (r *bookingRepository) HasCompletedBooking(ctx context.Context, customerID, bookingID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE id = $1
			AND customer_id = $2
			AND status = 'completed'
			AND deleted_at IS NULL
		)
	`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, bookingID, customerID); err != nil {
		return false, fmt.Errorf("failed to check completed booking: %w", err)
	}
	return exists, nil
}
