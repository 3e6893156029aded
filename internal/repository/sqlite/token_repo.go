package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/fleetrent/fleetrent/internal/domain"
	"github.com/fleetrent/fleetrent/internal/repository"
)

// tokenRepository implements repository.TokenRepository for SQLite.
type tokenRepository struct {
	db *DB
}

// NewTokenRepository creates a new SQLite token repository.
func NewTokenRepository(db *DB) repository.TokenRepository {
	return &tokenRepository{db: db}
}

// Create stores a newly issued token.
func (r *tokenRepository) Create(ctx context.Context, token *domain.Token) error {
	query := `INSERT INTO tokens (key, user_id, created_at) VALUES (?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		token.Key,
		token.UserID,
		token.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to create token: %w", err)
	}
	return nil
}

// GetByKey retrieves a token by its key.
func (r *tokenRepository) GetByKey(ctx context.Context, key string) (*domain.Token, error) {
	row := r.db.QueryRowContext(ctx, `SELECT key, user_id, created_at FROM tokens WHERE key = ?`, key)

	token := &domain.Token{}
	var createdAt string
	if err := row.Scan(&token.Key, &token.UserID, &createdAt); err != nil {
		if isNoRows(err) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to get token: %w", err)
	}
	token.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

	return token, nil
}

// GetByUserID retrieves the most recent token for a user.
func (r *tokenRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Token, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT key, user_id, created_at FROM tokens WHERE user_id = ? ORDER BY created_at DESC LIMIT 1`,
		userID,
	)

	token := &domain.Token{}
	var createdAt string
	if err := row.Scan(&token.Key, &token.UserID, &createdAt); err != nil {
		if isNoRows(err) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to get token by user: %w", err)
	}
	token.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

	return token, nil
}

// DeleteByKey revokes a token.
func (r *tokenRepository) DeleteByKey(ctx context.Context, key string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tokens WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrTokenNotFound
	}
	return nil
}

// DeleteByUserID revokes all tokens of a user.
func (r *tokenRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tokens WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to delete tokens for user: %w", err)
	}
	return nil
}

// Ensure tokenRepository implements repository.TokenRepository.
var _ repository.TokenRepository = (*tokenRepository)(nil)
