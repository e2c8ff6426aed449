package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrsLondon/vivahub-api/internal/model"
)

func (r *salonRepository) Create(ctx context.Context, salon *model.Salon) error {
	query := `
		INSERT INTO salons (
			id, owner_id, name, description, address, city, phone, email,
			opening_time, closing_time, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	salon.ID = uuid.New()
	salon.CreatedAt = time.Now()
	salon.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		salon.ID,
		salon.OwnerID,
		salon.Name,
		salon.Description,
		salon.Address,
		salon.City,
		salon.Phone,
		salon.Email,
		salon.OpeningTime,
		salon.ClosingTime,
		salon.Status,
		salon.CreatedAt,
		salon.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create salon: %w", err)
	}
	return nil
}

func (r *salonRepository) Get(ctx context.Context, id uuid.UUID) (*model.Salon, error) {
	query := `
		SELECT * FROM salons
		WHERE id = $1 AND deleted_at IS NULL
	`

	var salon model.Salon
	if err := r.db.GetContext(ctx, &salon, query, id); err != nil {
		return nil, fmt.Errorf("failed to get salon: %w", err)
	}

	return &salon, nil
}

func (r *salonRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*model.Salon, error) {
	query := `
		SELECT * FROM salons
		WHERE owner_id = $1 AND deleted_at IS NULL
	`

	var salon model.Salon
	if err := r.db.GetContext(ctx, &salon, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to get salon by owner: %w", err)
	}

	return &salon, nil
}

func (r *salonRepository) Update(ctx context.Context, salon *model.Salon) error {
	query := `
		UPDATE salons
		SET name = $1, description = $2, address = $3, city = $4, phone = $5,
			email = $6, opening_time = $7, closing_time = $8, status = $9,
			updated_at = $10
		WHERE id = $11 AND deleted_at IS NULL
	`

	salon.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		salon.Name,
		salon.Description,
		salon.Address,
		salon.City,
		salon.Phone,
		salon.Email,
		salon.OpeningTime,
		salon.ClosingTime,
		salon.Status,
		salon.UpdatedAt,
		salon.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update salon: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("salon not found")
	}

	return nil
}

func (r *salonRepository) List(ctx context.Context, city string) ([]*model.Salon, error) {
	query := `
		SELECT * FROM salons
		WHERE status = $1 AND deleted_at IS NULL
	`
	args := []interface{}{model.SalonStatusActive}

	if city != "" {
		query += " AND LOWER(city) = LOWER($2)"
		args = append(args, city)
	}

	query += " ORDER BY name ASC"

	var salons []*model.Salon
	if err := r.db.SelectContext(ctx, &salons, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list salons: %w", err)
	}
	return salons, nil
}
