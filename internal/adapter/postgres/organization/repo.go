// Package organization implements the Organization repository using PostgreSQL.
package organization

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/resqbite/resqbite-backend/internal/adapter/postgres"
	"github.com/resqbite/resqbite-backend/internal/domain"
)

// Repo provides organization persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new organization repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const organizationColumns = `id, user_id, name, address, phone, description, created_at, updated_at`

const createSQL = `
INSERT INTO organizations (id, user_id, name, address, phone, description, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
RETURNING ` + organizationColumns

const getByIDSQL = `
SELECT ` + organizationColumns + `
FROM organizations
WHERE id = $1`

const getByUserIDSQL = `
SELECT ` + organizationColumns + `
FROM organizations
WHERE user_id = $1`

const updateContactSQL = `
UPDATE organizations
SET name = $2, address = $3, phone = $4, description = $5, updated_at = $6
WHERE id = $1
RETURNING ` + organizationColumns

// Create inserts a new organization profile.
func (r *Repo) Create(ctx context.Context, org domain.Organization) (domain.Organization, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)
	if org.ID == uuid.Nil {
		org.ID = uuid.New()
	}

	created, err := scanOrganization(querier.QueryRow(ctx, createSQL,
		org.ID, org.UserID, org.Name, org.Address, org.Phone, org.Description, now))
	if err != nil {
		return domain.Organization{}, postgres.MapError(err, "organization", org.ID)
	}

	return created, nil
}

// GetByID returns an organization by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Organization, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	org, err := scanOrganization(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return domain.Organization{}, postgres.MapError(err, "organization", id)
	}

	return org, nil
}

// GetByUserID returns the organization profile owned by a user.
func (r *Repo) GetByUserID(ctx context.Context, userID uuid.UUID) (domain.Organization, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	org, err := scanOrganization(querier.QueryRow(ctx, getByUserIDSQL, userID))
	if err != nil {
		return domain.Organization{}, postgres.MapError(err, "organization", userID)
	}

	return org, nil
}

// UpdateContact replaces the organization's contact fields.
func (r *Repo) UpdateContact(ctx context.Context, org domain.Organization) (domain.Organization, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)

	updated, err := scanOrganization(querier.QueryRow(ctx, updateContactSQL,
		org.ID, org.Name, org.Address, org.Phone, org.Description, now))
	if err != nil {
		return domain.Organization{}, postgres.MapError(err, "organization", org.ID)
	}

	return updated, nil
}

func scanOrganization(row pgx.Row) (domain.Organization, error) {
	var org domain.Organization

	err := row.Scan(&org.ID, &org.UserID, &org.Name, &org.Address, &org.Phone,
		&org.Description, &org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		return domain.Organization{}, err
	}

	return org, nil
}
