package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrsLondon/vivahub-api/internal/model"
)

func (r *serviceRepository) Create(ctx context.Context, service *model.Service) error {
	query := `
		INSERT INTO services (
			id, salon_id, name, description, duration, price,
			language, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	service.ID = uuid.New()
	service.CreatedAt = time.Now()
	service.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		service.ID,
		service.SalonID,
		service.Name,
		service.Description,
		service.Duration,
		service.Price,
		service.Language,
		service.Status,
		service.CreatedAt,
		service.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *serviceRepository) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	query := `
		SELECT * FROM services
		WHERE id = $1 AND deleted_at IS NULL
	`

	var service model.Service
	if err := r.db.GetContext(ctx, &service, query, id); err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	return &service, nil
}

func (r *serviceRepository) Update(ctx context.Context, service *model.Service) error {
	query := `
		UPDATE services
		SET name = $1, description = $2, duration = $3, price = $4,
			language = $5, status = $6, updated_at = $7
		WHERE id = $8 AND deleted_at IS NULL
	`

	service.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		service.Name,
		service.Description,
		service.Duration,
		service.Price,
		service.Language,
		service.Status,
		service.UpdatedAt,
		service.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("service not found")
	}

	return nil
}

func (r *serviceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE services
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("service not found")
	}

	return nil
}

func (r *serviceRepository) ListBySalon(ctx context.Context, salonID uuid.UUID) ([]*model.Service, error) {
	query := `
		SELECT * FROM services
		WHERE salon_id = $1 AND deleted_at IS NULL
		ORDER BY name ASC
	`

	var services []*model.Service
	if err := r.db.SelectContext(ctx, &services, query, salonID); err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

func (r *serviceRepository) Search(ctx context.Context, filters *model.ServiceSearchFilters) ([]*model.ServiceSearchResult, error) {
	query := `
		SELECT s.*, sa.name AS salon_name, sa.city AS salon_city
		FROM services s
		JOIN salons sa ON sa.id = s.salon_id
		WHERE s.status = 'active' AND s.deleted_at IS NULL
		AND sa.status = 'active' AND sa.deleted_at IS NULL
	`
	args := []interface{}{}
	argCount := 1

	if filters.Query != "" {
		query += fmt.Sprintf(" AND (s.name ILIKE $%d OR s.description ILIKE $%d)", argCount, argCount)
		args = append(args, "%"+filters.Query+"%")
		argCount++
	}

	if filters.Language != "" {
		query += fmt.Sprintf(" AND LOWER(s.language) = LOWER($%d)", argCount)
		args = append(args, filters.Language)
		argCount++
	}

	if filters.City != "" {
		query += fmt.Sprintf(" AND LOWER(sa.city) = LOWER($%d)", argCount)
		args = append(args, filters.City)
		argCount++
	}

	if filters.MaxPrice > 0 {
		query += fmt.Sprintf(" AND s.price <= $%d", argCount)
		args = append(args, filters.MaxPrice)
		argCount++
	}

	if filters.SalonID != uuid.Nil {
		query += fmt.Sprintf(" AND s.salon_id = $%d", argCount)
		args = append(args, filters.SalonID)
		argCount++
	}

	query += " ORDER BY s.name ASC"

	limit := filters.PageSize
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	offset := 0
	if filters.Page > 1 {
		offset = (filters.Page - 1) * limit
	}
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, limit, offset)

	var results []*model.ServiceSearchResult
	if err := r.db.SelectContext(ctx, &results, query, args...); err != nil {
		return nil, fmt.Errorf("failed to search services: %w", err)
	}
	return results, nil
}

func (r *serviceRepository) ListLanguages(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT language FROM services
		WHERE language <> '' AND status = 'active' AND deleted_at IS NULL
		ORDER BY language ASC
	`

	var languages []string
	if err := r.db.SelectContext(ctx, &languages, query); err != nil {
		return nil, fmt.Errorf("failed to list languages: %w", err)
	}
	return languages, nil
}
