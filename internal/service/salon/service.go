package salon

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrsLondon/vivahub-api/internal/model"
	"github.com/MrsLondon/vivahub-api/internal/repository"
	apperrors "github.com/MrsLondon/vivahub-api/pkg/errors"
)

type Service struct {
	repo        repository.SalonRepository
	serviceRepo repository.ServiceRepository
}

func NewService(repo repository.SalonRepository, serviceRepo repository.ServiceRepository) *Service {
	return &Service{repo: repo, serviceRepo: serviceRepo}
}

func (s *Service) CreateSalon(ctx context.Context, ownerID uuid.UUID, req *model.CreateSalonRequest) (*model.Salon, error) {
	if existing, _ := s.repo.GetByOwner(ctx, ownerID); existing != nil {
		return nil, apperrors.Conflict("owner already has a salon", nil)
	}

	if err := validateOpeningHours(req.OpeningTime, req.ClosingTime); err != nil {
		return nil, err
	}

	salon := &model.Salon{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		Phone:       req.Phone,
		Email:       req.Email,
		OpeningTime: req.OpeningTime,
		ClosingTime: req.ClosingTime,
		Status:      model.SalonStatusActive,
	}

	if err := s.repo.Create(ctx, salon); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to create salon: %w", err))
	}
	return salon, nil
}

// validateOpeningHours checks the HH:MM opening window a salon advertises.
// Slot generation assumes closing comes after opening on the same day.
func validateOpeningHours(opening, closing string) error {
	opensAt, err := time.Parse("15:04", opening)
	if err != nil {
		return apperrors.BadRequest("opening_time must be HH:MM", err)
	}
	closesAt, err := time.Parse("15:04", closing)
	if err != nil {
		return apperrors.BadRequest("closing_time must be HH:MM", err)
	}
	if !closesAt.After(opensAt) {
		return apperrors.BadRequest("closing_time must be after opening_time", nil)
	}
	return nil
}

// GetSalon returns the salon with its active services, the shape the salon
// detail page consumes.
func (s *Service) GetSalon(ctx context.Context, id uuid.UUID) (*model.SalonDetail, error) {
	salon, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get salon: %w", err)
	}

	services, err := s.serviceRepo.ListBySalon(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list salon services: %w", err)
	}

	active := make([]*model.Service, 0, len(services))
	for _, svc := range services {
		if svc.Status == model.ServiceStatusActive {
			active = append(active, svc)
		}
	}

	return &model.SalonDetail{Salon: *salon, Services: active}, nil
}

func (s *Service) GetOwnSalon(ctx context.Context, ownerID uuid.UUID) (*model.Salon, error) {
	salon, err := s.repo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get salon: %w", err)
	}
	return salon, nil
}

func (s *Service) UpdateSalon(ctx context.Context, ownerID uuid.UUID, req *model.UpdateSalonRequest) (*model.Salon, error) {
	salon, err := s.repo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get salon: %w", err)
	}

	if req.Name != nil {
		salon.Name = *req.Name
	}
	if req.Description != nil {
		salon.Description = *req.Description
	}
	if req.Address != nil {
		salon.Address = *req.Address
	}
	if req.City != nil {
		salon.City = *req.City
	}
	if req.Phone != nil {
		salon.Phone = *req.Phone
	}
	if req.Email != nil {
		salon.Email = *req.Email
	}
	if req.OpeningTime != nil {
		salon.OpeningTime = *req.OpeningTime
	}
	if req.ClosingTime != nil {
		salon.ClosingTime = *req.ClosingTime
	}
	if req.Status != nil {
		salon.Status = *req.Status
	}

	if req.OpeningTime != nil || req.ClosingTime != nil {
		if err := validateOpeningHours(salon.OpeningTime, salon.ClosingTime); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, salon); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to update salon: %w", err))
	}
	return salon, nil
}

func (s *Service) ListSalons(ctx context.Context, city string) ([]*model.Salon, error) {
	salons, err := s.repo.List(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("failed to list salons: %w", err)
	}
	return salons, nil
}
