package postgres

import (
	"github.com/MrsLondon/vivahub-api/internal/repository"
)

type userRepository struct {
	BaseRepository
}

type salonRepository struct {
	BaseRepository
}

type serviceRepository struct {
	BaseRepository
}

type bookingRepository struct {
	BaseRepository
}

type reviewRepository struct {
	BaseRepository
}

func NewUserRepository(base BaseRepository) repository.UserRepository {
	return &userRepository{base}
}

func NewSalonRepository(base BaseRepository) repository.SalonRepository {
	return &salonRepository{base}
}

func NewServiceRepository(base BaseRepository) repository.ServiceRepository {
	return &serviceRepository{base}
}

func NewBookingRepository(base BaseRepository) repository.BookingRepository {
	return &bookingRepository{base}
}

func NewReviewRepository(base BaseRepository) repository.ReviewRepository {
	return &reviewRepository{base}
}
