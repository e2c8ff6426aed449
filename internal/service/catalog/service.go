// Package catalog serves the public service listings that feed the booking
// cart, plus the owner-facing service management operations.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/MrsLondon/vivahub-api/internal/model"
	"github.com/MrsLondon/vivahub-api/internal/repository"
	apperrors "github.com/MrsLondon/vivahub-api/pkg/errors"
)

const (
	languagesCacheKey = "languages"
	readCacheTTL      = 5 * time.Minute
)

type Service struct {
	repo      repository.ServiceRepository
	salonRepo repository.SalonRepository
	cache     *cache.Cache
}

func NewService(repo repository.ServiceRepository, salonRepo repository.SalonRepository) *Service {
	return &Service{
		repo:      repo,
		salonRepo: salonRepo,
		cache:     cache.New(readCacheTTL, 10*time.Minute),
	}
}

func (s *Service) CreateService(ctx context.Context, ownerID uuid.UUID, req *model.CreateServiceRequest) (*model.Service, error) {
	salon, err := s.salonRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperrors.NotFound("salon", err)
	}

	service := &model.Service{
		SalonID:     salon.ID,
		Name:        req.Name,
		Description: req.Description,
		Duration:    req.Duration,
		Price:       req.Price,
		Language:    req.Language,
		Status:      model.ServiceStatusActive,
	}

	if err := s.repo.Create(ctx, service); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	s.cache.Flush()
	return service, nil
}

func (s *Service) UpdateService(ctx context.Context, ownerID, serviceID uuid.UUID, req *model.UpdateServiceRequest) (*model.Service, error) {
	service, err := s.ownedService(ctx, ownerID, serviceID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.Duration != nil {
		service.Duration = *req.Duration
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.Language != nil {
		service.Language = *req.Language
	}
	if req.Status != nil {
		service.Status = *req.Status
	}

	if err := s.repo.Update(ctx, service); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}

	s.cache.Flush()
	return service, nil
}

func (s *Service) DeleteService(ctx context.Context, ownerID, serviceID uuid.UUID) error {
	if _, err := s.ownedService(ctx, ownerID, serviceID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, serviceID); err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}

	s.cache.Flush()
	return nil
}

func (s *Service) GetService(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	service, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return service, nil
}

func (s *Service) ListSalonServices(ctx context.Context, salonID uuid.UUID) ([]*model.Service, error) {
	services, err := s.repo.ListBySalon(ctx, salonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

// Search runs the public service search. Results are cached briefly per
// filter combination; listings change rarely next to how often they are read.
func (s *Service) Search(ctx context.Context, filters *model.ServiceSearchFilters) ([]*model.ServiceSearchResult, error) {
	key := searchCacheKey(filters)
	if cached, found := s.cache.Get(key); found {
		return cached.([]*model.ServiceSearchResult), nil
	}

	results, err := s.repo.Search(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to search services: %w", err)
	}

	s.cache.Set(key, results, cache.DefaultExpiration)
	return results, nil
}

// ListLanguages returns the distinct languages spoken across active
// services, for the search filter dropdown.
func (s *Service) ListLanguages(ctx context.Context) ([]string, error) {
	if cached, found := s.cache.Get(languagesCacheKey); found {
		return cached.([]string), nil
	}

	languages, err := s.repo.ListLanguages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list languages: %w", err)
	}

	s.cache.Set(languagesCacheKey, languages, cache.DefaultExpiration)
	return languages, nil
}

func (s *Service) ownedService(ctx context.Context, ownerID, serviceID uuid.UUID) (*model.Service, error) {
	salon, err := s.salonRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperrors.NotFound("salon", err)
	}

	service, err := s.repo.Get(ctx, serviceID)
	if err != nil {
		return nil, apperrors.NotFound("service", err)
	}

	if service.SalonID != salon.ID {
		return nil, apperrors.Forbidden("service does not belong to your salon", nil)
	}
	return service, nil
}

func searchCacheKey(filters *model.ServiceSearchFilters) string {
	return strings.Join([]string{
		"search",
		filters.Query,
		filters.Language,
		filters.City,
		fmt.Sprintf("%.2f", filters.MaxPrice),
		filters.SalonID.String(),
		fmt.Sprintf("%d.%d", filters.Page, filters.PageSize),
	}, "|")
}
