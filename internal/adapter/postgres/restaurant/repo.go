// Package restaurant implements the Restaurant repository using PostgreSQL.
package restaurant

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/resqbite/resqbite-backend/internal/adapter/postgres"
	"github.com/resqbite/resqbite-backend/internal/domain"
)

// Repo provides restaurant persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new restaurant repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const restaurantColumns = `id, user_id, name, address, phone, created_at, updated_at`

const createSQL = `
INSERT INTO restaurants (id, user_id, name, address, phone, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)
RETURNING ` + restaurantColumns

const getByIDSQL = `
SELECT ` + restaurantColumns + `
FROM restaurants
WHERE id = $1`

const getByUserIDSQL = `
SELECT ` + restaurantColumns + `
FROM restaurants
WHERE user_id = $1`

const updateContactSQL = `
UPDATE restaurants
SET name = $2, address = $3, phone = $4, updated_at = $5
WHERE id = $1
RETURNING ` + restaurantColumns

// Create inserts a new restaurant profile.
func (r *Repo) Create(ctx context.Context, rest domain.Restaurant) (domain.Restaurant, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)
	if rest.ID == uuid.Nil {
		rest.ID = uuid.New()
	}

	created, err := scanRestaurant(querier.QueryRow(ctx, createSQL,
		rest.ID, rest.UserID, rest.Name, rest.Address, rest.Phone, now))
	if err != nil {
		return domain.Restaurant{}, postgres.MapError(err, "restaurant", rest.ID)
	}

	return created, nil
}

// GetByID returns a restaurant by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Restaurant, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rest, err := scanRestaurant(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return domain.Restaurant{}, postgres.MapError(err, "restaurant", id)
	}

	return rest, nil
}

// GetByUserID returns the restaurant profile owned by a user.
func (r *Repo) GetByUserID(ctx context.Context, userID uuid.UUID) (domain.Restaurant, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rest, err := scanRestaurant(querier.QueryRow(ctx, getByUserIDSQL, userID))
	if err != nil {
		return domain.Restaurant{}, postgres.MapError(err, "restaurant", userID)
	}

	return rest, nil
}

// UpdateContact replaces the restaurant's contact fields.
func (r *Repo) UpdateContact(ctx context.Context, rest domain.Restaurant) (domain.Restaurant, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)

	updated, err := scanRestaurant(querier.QueryRow(ctx, updateContactSQL,
		rest.ID, rest.Name, rest.Address, rest.Phone, now))
	if err != nil {
		return domain.Restaurant{}, postgres.MapError(err, "restaurant", rest.ID)
	}

	return updated, nil
}

func scanRestaurant(row pgx.Row) (domain.Restaurant, error) {
	var rest domain.Restaurant

	err := row.Scan(&rest.ID, &rest.UserID, &rest.Name, &rest.Address, &rest.Phone,
		&rest.CreatedAt, &rest.UpdatedAt)
	if err != nil {
		return domain.Restaurant{}, err
	}

	return rest, nil
}
