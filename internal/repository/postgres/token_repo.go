package postgres

import (
	"context"
	"fmt"

	"github.com/fleetrent/fleetrent/internal/domain"
	"github.com/fleetrent/fleetrent/internal/repository"
)

// tokenRepository implements repository.TokenRepository for PostgreSQL.
type tokenRepository struct {
	db *DB
}

// NewTokenRepository creates a new PostgreSQL token repository.
func NewTokenRepository(db *DB) repository.TokenRepository {
	return &tokenRepository{db: db}
}

// Create stores a newly issued token.
func (r *tokenRepository) Create(ctx context.Context, token *domain.Token) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO tokens (key, user_id, created_at) VALUES ($1, $2, $3)`,
		token.Key, token.UserID, token.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create token: %w", err)
	}
	return nil
}

// GetByKey retrieves a token by its key.
func (r *tokenRepository) GetByKey(ctx context.Context, key string) (*domain.Token, error) {
	token := &domain.Token{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT key, user_id, created_at FROM tokens WHERE key = $1`, key,
	).Scan(&token.Key, &token.UserID, &token.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to get token: %w", err)
	}
	return token, nil
}

// GetByUserID retrieves the most recent token for a user.
func (r *tokenRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Token, error) {
	token := &domain.Token{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT key, user_id, created_at FROM tokens WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`,
		userID,
	).Scan(&token.Key, &token.UserID, &token.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to get token by user: %w", err)
	}
	return token, nil
}

// DeleteByKey revokes a token.
func (r *tokenRepository) DeleteByKey(ctx context.Context, key string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM tokens WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTokenNotFound
	}
	return nil
}

// DeleteByUserID revokes all tokens of a user.
func (r *tokenRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	if _, err := r.db.Pool.Exec(ctx, `DELETE FROM tokens WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete tokens for user: %w", err)
	}
	return nil
}

// Ensure tokenRepository implements repository.TokenRepository.
var _ repository.TokenRepository = (*tokenRepository)(nil)
