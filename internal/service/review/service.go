package review

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrsLondon/vivahub-api/internal/model"
	"github.com/MrsLondon/vivahub-api/internal/repository"
	apperrors "github.com/MrsLondon/vivahub-api/pkg/errors"
)

type Service struct {
	repo        repository.ReviewRepository
	bookingRepo repository.BookingRepository
}

func NewService(repo repository.ReviewRepository, bookingRepo repository.BookingRepository) *Service {
	return &Service{repo: repo, bookingRepo: bookingRepo}
}

// CreateReview records a review for a completed booking. Only the customer
// who attended the booking may review it, and each booking gets at most one
// review.
func (s *Service) CreateReview(ctx context.Context, customerID uuid.UUID, req *model.CreateReviewRequest) (*model.Review, error) {
	completed, err := s.bookingRepo.HasCompletedBooking(ctx, customerID, req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to check booking: %w", err)
	}
	if !completed {
		return nil, apperrors.Forbidden("only completed bookings can be reviewed", nil)
	}

	exists, err := s.repo.ExistsForBooking(ctx, req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing review: %w", err)
	}
	if exists {
		return nil, apperrors.Conflict("booking already reviewed", nil)
	}

	booking, err := s.bookingRepo.Get(ctx, req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	review := &model.Review{
		BookingID:  req.BookingID,
		SalonID:    booking.SalonID,
		CustomerID: customerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return review, nil
}

// SalonReviews is the salon page payload: the reviews themselves plus the
// rating aggregate.
type SalonReviews struct {
	Reviews []*model.Review    `json:"reviews"`
	Rating  *model.SalonRating `json:"rating"`
}

func (s *Service) ListSalonReviews(ctx context.Context, salonID uuid.UUID) (*SalonReviews, error) {
	reviews, err := s.repo.ListBySalon(ctx, salonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	rating, err := s.repo.GetSalonRating(ctx, salonID)
	if err != nil {
		return nil, fmt.Errorf("failed to get salon rating: %w", err)
	}

	return &SalonReviews{Reviews: reviews, Rating: rating}, nil
}
