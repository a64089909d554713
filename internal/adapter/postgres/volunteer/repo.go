// Package volunteer implements the Volunteer repository using PostgreSQL.
package volunteer

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

// Repo provides volunteer persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new volunteer repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const volunteerColumns = `id, user_id, name, phone, is_available, earnings,
       completed_deliveries, created_at, updated_at`

const createSQL = `
INSERT INTO volunteers (id, user_id, name, phone, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $5)
RETURNING ` + volunteerColumns

const getByIDSQL = `
SELECT ` + volunteerColumns + `
FROM volunteers
WHERE id = $1`

const getByUserIDSQL = `
SELECT ` + volunteerColumns + `
FROM volunteers
WHERE user_id = $1`

const setAvailabilitySQL = `
UPDATE volunteers
SET is_available = $2, updated_at = $3
WHERE id = $1`

const creditCompletionSQL = `
UPDATE volunteers
SET earnings = earnings + $2,
    completed_deliveries = completed_deliveries + 1,
    updated_at = $3
WHERE id = $1
RETURNING ` + volunteerColumns

// Create inserts a new volunteer profile.
func (r *Repo) Create(ctx context.Context, v domain.Volunteer) (domain.Volunteer, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}

	created, err := scanVolunteer(querier.QueryRow(ctx, createSQL,
		v.ID, v.UserID, v.Name, v.Phone, now))
	if err != nil {
		return domain.Volunteer{}, postgres.MapError(err, "volunteer", v.ID)
	}

	return created, nil
}

// GetByID returns a volunteer by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Volunteer, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	v, err := scanVolunteer(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return domain.Volunteer{}, postgres.MapError(err, "volunteer", id)
	}

	return v, nil
}

// GetByUserID returns the volunteer profile owned by a user.
func (r *Repo) GetByUserID(ctx context.Context, userID uuid.UUID) (domain.Volunteer, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	v, err := scanVolunteer(querier.QueryRow(ctx, getByUserIDSQL, userID))
	if err != nil {
		return domain.Volunteer{}, postgres.MapError(err, "volunteer", userID)
	}

	return v, nil
}

// SetAvailability flips the volunteer's availability flag.
func (r *Repo) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)

	tag, err := querier.Exec(ctx, setAvailabilitySQL, id, available, now)
	if err != nil {
		return postgres.MapError(err, "volunteer", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("volunteer %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// CreditCompletion adds payment to the volunteer's earnings and increments the
// completed delivery counter in a single UPDATE. Called exactly once per
// delivery, inside the transaction that marks it DELIVERED.
func (r *Repo) CreditCompletion(ctx context.Context, id uuid.UUID, payment float64) (domain.Volunteer, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)

	v, err := scanVolunteer(querier.QueryRow(ctx, creditCompletionSQL, id, payment, now))
	if err != nil {
		return domain.Volunteer{}, postgres.MapError(err, "volunteer", id)
	}

	return v, nil
}

func scanVolunteer(row pgx.Row) (domain.Volunteer, error) {
	var v domain.Volunteer

	err := row.Scan(&v.ID, &v.UserID, &v.Name, &v.Phone, &v.IsAvailable,
		&v.Earnings, &v.CompletedDeliveries, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return domain.Volunteer{}, err
	}

	return v, nil
}
