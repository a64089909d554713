// Package token implements the refresh token repository using PostgreSQL.
// Only SHA-256 hashes of refresh tokens are ever stored.
package token

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/resqbite/resqbite-backend/internal/adapter/postgres"
	"github.com/resqbite/resqbite-backend/internal/domain"
)

// Repo provides refresh token persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new refresh token repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const tokenColumns = `id, user_id, token_hash, expires_at, created_at, revoked_at`

const createSQL = `
INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + tokenColumns

const getByHashSQL = `
SELECT ` + tokenColumns + `
FROM refresh_tokens
WHERE token_hash = $1`

const revokeSQL = `
UPDATE refresh_tokens
SET revoked_at = $2
WHERE token_hash = $1 AND revoked_at IS NULL`

const revokeAllForUserSQL = `
UPDATE refresh_tokens
SET revoked_at = $2
WHERE user_id = $1 AND revoked_at IS NULL`

// Create stores a new refresh token hash.
func (r *Repo) Create(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (domain.RefreshToken, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	id := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)

	t, err := scanToken(querier.QueryRow(ctx, createSQL, id, userID, tokenHash, expiresAt, now))
	if err != nil {
		return domain.RefreshToken{}, postgres.MapError(err, "refresh token", id)
	}

	return t, nil
}

// GetByHash returns a refresh token by its hash.
func (r *Repo) GetByHash(ctx context.Context, tokenHash string) (domain.RefreshToken, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	t, err := scanToken(querier.QueryRow(ctx, getByHashSQL, tokenHash))
	if err != nil {
		return domain.RefreshToken{}, postgres.MapError(err, "refresh token", uuid.Nil)
	}

	return t, nil
}

// Revoke marks a single token revoked. Already-revoked or unknown tokens
// surface as domain.ErrNotFound.
func (r *Repo) Revoke(ctx context.Context, tokenHash string) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)

	tag, err := querier.Exec(ctx, revokeSQL, tokenHash, now)
	if err != nil {
		return postgres.MapError(err, "refresh token", uuid.Nil)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("refresh token: %w", domain.ErrNotFound)
	}

	return nil
}

// RevokeAllForUser revokes every live token belonging to a user.
func (r *Repo) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)

	if _, err := querier.Exec(ctx, revokeAllForUserSQL, userID, now); err != nil {
		return postgres.MapError(err, "refresh token", userID)
	}

	return nil
}

func scanToken(row pgx.Row) (domain.RefreshToken, error) {
	var t domain.RefreshToken

	err := row.Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.CreatedAt, &t.RevokedAt)
	if err != nil {
		return domain.RefreshToken{}, err
	}

	return t, nil
}
