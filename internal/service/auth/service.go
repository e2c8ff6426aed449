package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrsLondon/vivahub-api/internal/model"
	"github.com/MrsLondon/vivahub-api/internal/repository"
	"github.com/MrsLondon/vivahub-api/pkg/auth"
	"github.com/MrsLondon/vivahub-api/pkg/security"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account is locked, please try again later")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

const (
	maxLoginAttempts = 5
	lockoutDuration  = 15 * time.Minute
	resetTokenTTL    = time.Hour
)

type Service struct {
	userRepo   repository.UserRepository
	tokenRepo  repository.TokenRepository
	outboxRepo repository.OutboxRepository
	jwtSvc     auth.JWTService
	hasher     security.PasswordHasher
}

func NewService(
	userRepo repository.UserRepository,
	tokenRepo repository.TokenRepository,
	outboxRepo repository.OutboxRepository,
	jwtSvc auth.JWTService,
	hasher security.PasswordHasher,
) *Service {
	return &Service{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		outboxRepo: outboxRepo,
		jwtSvc:     jwtSvc,
		hasher:     hasher,
	}
}

func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.TokenResponse, error) {
	if existing, _ := s.userRepo.GetByEmail(ctx, req.Email); existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
		Status:       model.UserStatusActive,
	}
	if req.Phone != "" {
		user.Phone = &req.Phone
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Welcome email is sent by the worker off this event; registration does
	// not wait on SMTP.
	if payload, err := json.Marshal(map[string]string{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"name":    user.FullName(),
	}); err == nil {
		event := &model.OutboxEvent{EventType: model.EventUserRegistered, Payload: payload}
		if err := s.outboxRepo.Create(ctx, event); err != nil {
			return nil, fmt.Errorf("failed to record registration event: %w", err)
		}
	}

	return s.generateTokens(ctx, user)
}

func (s *Service) Login(ctx context.Context, email, password string) (*model.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.Status == model.UserStatusLocked {
		if time.Since(user.LastLoginAttempt) < lockoutDuration {
			return nil, ErrAccountLocked
		}
		user.Status = model.UserStatusActive
		user.LoginAttempts = 0
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		user.LoginAttempts++
		user.LastLoginAttempt = time.Now()

		if user.LoginAttempts >= maxLoginAttempts {
			user.Status = model.UserStatusLocked
		}

		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to update login attempts: %w", err)
		}

		return nil, ErrInvalidCredentials
	}

	user.LoginAttempts = 0
	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update login timestamp: %w", err)
	}

	return s.generateTokens(ctx, user)
}

func (s *Service) RefreshTokens(ctx context.Context, refreshToken string) (*model.TokenResponse, error) {
	claims, err := s.jwtSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	userID, err := s.tokenRepo.ValidateRefreshToken(ctx, refreshToken)
	if err != nil || userID != claims.UserID {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.tokenRepo.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return s.generateTokens(ctx, user)
}

func (s *Service) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.tokenRepo.RevokeUserTokens(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke tokens: %w", err)
	}
	return nil
}

// RequestPasswordReset issues a reset token and queues the reset email. It
// reports success for unknown emails so the endpoint does not leak which
// addresses are registered.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil
	}

	token, err := resetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	if err := s.tokenRepo.StoreResetToken(ctx, user.ID, token, time.Now().Add(resetTokenTTL)); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	payload, err := json.Marshal(map[string]string{
		"email": user.Email,
		"name":  user.FullName(),
		"token": token,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal reset payload: %w", err)
	}

	event := &model.OutboxEvent{EventType: model.EventPasswordReset, Payload: payload}
	if err := s.outboxRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("failed to record reset event: %w", err)
	}
	return nil
}

// ResetPassword spends a reset token, replaces the password and revokes every
// outstanding session.
func (s *Service) ResetPassword(ctx context.Context, token, password string) error {
	userID, err := s.tokenRepo.ConsumeResetToken(ctx, token)
	if err != nil {
		return ErrInvalidResetToken
	}

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = hash
	user.LoginAttempts = 0
	user.Status = model.UserStatusActive
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.tokenRepo.RevokeUserTokens(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	return nil
}

func resetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func (s *Service) ValidateToken(ctx context.Context, token string) (*model.TokenClaims, error) {
	return s.jwtSvc.ValidateToken(token)
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req *model.UpdateProfileRequest) (*model.User, error) {
	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *Service) generateTokens(ctx context.Context, user *model.User) (*model.TokenResponse, error) {
	accessToken, err := s.jwtSvc.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtSvc.GenerateRefreshToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	expiry := time.Now().Add(30 * 24 * time.Hour)
	if err := s.tokenRepo.StoreRefreshToken(ctx, user.ID, refreshToken, expiry); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	user.PasswordHash = ""
	return &model.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}
