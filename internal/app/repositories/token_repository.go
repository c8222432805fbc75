package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Calabangata/Graduation-System/internal/db"
)

// Token error types
var (
	ErrTokenNotFound = errors.New("refresh token not found")
)

// RefreshToken is a stored opaque refresh token
type RefreshToken struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
}

// TokenRepository handles database operations for refresh tokens
type TokenRepository struct {
	pool *pgxpool.Pool
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(pool *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{pool: pool}
}

// Save stores a refresh token, replacing any previous token for the user
func (r *TokenRepository) Save(ctx context.Context, token *RefreshToken) error {
	if _, err := db.From(ctx, r.pool).Exec(ctx,
		`DELETE FROM refresh_tokens WHERE user_id = $1`, token.UserID); err != nil {
		return fmt.Errorf("error rotating refresh token: %w", err)
	}

	_, err := db.From(ctx, r.pool).Exec(ctx, `
		INSERT INTO refresh_tokens (token, user_id, expires_at)
		VALUES ($1, $2, $3)`, token.Token, token.UserID, token.ExpiresAt)
	if err != nil {
		return fmt.Errorf("error saving refresh token: %w", err)
	}

	return nil
}

// Get retrieves a refresh token
func (r *TokenRepository) Get(ctx context.Context, token string) (*RefreshToken, error) {
	var rt RefreshToken
	err := db.From(ctx, r.pool).QueryRow(ctx, `
		SELECT token, user_id, expires_at
		FROM refresh_tokens
		WHERE token = $1`, token).Scan(&rt.Token, &rt.UserID, &rt.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("error retrieving refresh token: %w", err)
	}

	return &rt, nil
}

// Delete removes a refresh token
func (r *TokenRepository) Delete(ctx context.Context, token string) error {
	_, err := db.From(ctx, r.pool).Exec(ctx,
		`DELETE FROM refresh_tokens WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("error deleting refresh token: %w", err)
	}
	return nil
}
