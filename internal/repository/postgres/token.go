package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/MrsLondon/vivahub-api/internal/repository"
)

type tokenRepository struct {
	BaseRepository
}

func NewTokenRepository(base BaseRepository) repository.TokenRepository {
	return &tokenRepository{base}
}

func (r *tokenRepository) StoreRefreshToken(ctx context.Context, userID uuid.UUID, token string, expiry time.Time) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO user_tokens (user_id, token, type, expires_at, created_at)
			VALUES ($1, $2, 'refresh', $3, NOW())
			ON CONFLICT (user_id, type) DO UPDATE
			SET token = $2, expires_at = $3, revoked_at = NULL, updated_at = NOW()
		`
		_, err := tx.ExecContext(ctx, query, userID, token, expiry)
		return err
	})
}

func (r *tokenRepository) ValidateRefreshToken(ctx context.Context, token string) (uuid.UUID, error) {
	query := `
		SELECT user_id
		FROM user_tokens
		WHERE token = $1
		AND type = 'refresh'
		AND expires_at > NOW()
		AND revoked_at IS NULL
	`

	var userID uuid.UUID
	if err := r.GetDB().GetContext(ctx, &userID, query, token); err != nil {
		return uuid.Nil, fmt.Errorf("invalid or expired token")
	}

	return userID, nil
}

func (r *tokenRepository) RevokeRefreshToken(ctx context.Context, token string) error {
	query := `
		UPDATE user_tokens
		SET revoked_at = NOW()
		WHERE token = $1
		AND type = 'refresh'
		AND revoked_at IS NULL
	`

	result, err := r.GetDB().ExecContext(ctx, query, token)
	if err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("token not found or already revoked")
	}

	return nil
}

func (r *tokenRepository) StoreResetToken(ctx context.Context, userID uuid.UUID, token string, expiry time.Time) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO user_tokens (user_id, token, type, expires_at, created_at)
			VALUES ($1, $2, 'reset', $3, NOW())
			ON CONFLICT (user_id, type) DO UPDATE
			SET token = $2, expires_at = $3, revoked_at = NULL, updated_at = NOW()
		`
		_, err := tx.ExecContext(ctx, query, userID, token, expiry)
		return err
	})
}

// ConsumeResetToken validates and revokes a reset token in one statement so a
// token can be spent exactly once.
func (r *tokenRepository) ConsumeResetToken(ctx context.Context, token string) (uuid.UUID, error) {
	query := `
		UPDATE user_tokens
		SET revoked_at = NOW()
		WHERE token = $1
		AND type = 'reset'
		AND expires_at > NOW()
		AND revoked_at IS NULL
		RETURNING user_id
	`

	var userID uuid.UUID
	if err := r.GetDB().GetContext(ctx, &userID, query, token); err != nil {
		return uuid.Nil, fmt.Errorf("invalid or expired token")
	}
	return userID, nil
}

func (r *tokenRepository) RevokeUserTokens(ctx context.Context, userID uuid.UUID) error {
	query := `
		UPDATE user_tokens
		SET revoked_at = NOW()
		WHERE user_id = $1
		AND revoked_at IS NULL
	`

	if _, err := r.GetDB().ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to revoke user tokens: %w", err)
	}
	return nil
}
