// Package foodrequest implements the FoodRequest repository using PostgreSQL.
package foodrequest

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/resqbite/resqbite-backend/internal/adapter/postgres"
	"github.com/resqbite/resqbite-backend/internal/domain"
)

// ListFilter narrows ListActive results.
type ListFilter struct {
	Urgency *domain.UrgencyTier
	Limit   int
	Offset  int
}

// Repo provides food request persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new food request repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const requestColumns = `id, organization_id, food_types, quantity, urgency, notes, status,
       created_at, updated_at`

const createSQL = `
INSERT INTO food_requests (id, organization_id, food_types, quantity, urgency, notes, status,
                           created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
RETURNING ` + requestColumns

const getByIDSQL = `
SELECT ` + requestColumns + `
FROM food_requests
WHERE id = $1`

const listByOrganizationSQL = `
SELECT ` + requestColumns + `
FROM food_requests
WHERE organization_id = $1
ORDER BY created_at DESC`

const updateStatusSQL = `
UPDATE food_requests
SET status = $4, updated_at = $5
WHERE id = $1 AND organization_id = $2 AND status = $3`

// Create inserts a new food request and returns the persisted row.
func (r *Repo) Create(ctx context.Context, req domain.FoodRequest) (domain.FoodRequest, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}

	created, err := scanRequest(querier.QueryRow(ctx, createSQL,
		req.ID, req.OrganizationID, req.FoodTypes, req.Quantity, req.Urgency,
		req.Notes, req.Status, now))
	if err != nil {
		return domain.FoodRequest{}, postgres.MapError(err, "food request", req.ID)
	}

	return created, nil
}

// GetByID returns a food request by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.FoodRequest, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	req, err := scanRequest(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return domain.FoodRequest{}, postgres.MapError(err, "food request", id)
	}

	return req, nil
}

// ListActive returns ACTIVE requests across all organizations, most urgent
// first, then newest. An optional urgency filter narrows further.
func (r *Repo) ListActive(ctx context.Context, filter ListFilter) ([]domain.FoodRequest, error) {
	qb := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select(requestColumns).
		From("food_requests").
		Where(squirrel.Eq{"status": domain.RequestStatusActive}).
		OrderBy("CASE urgency WHEN 'HIGH' THEN 0 WHEN 'MEDIUM' THEN 1 ELSE 2 END", "created_at DESC")

	if filter.Urgency != nil {
		qb = qb.Where(squirrel.Eq{"urgency": *filter.Urgency})
	}
	if filter.Limit > 0 {
		qb = qb.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		qb = qb.Offset(uint64(filter.Offset))
	}

	sql, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list active food requests: %w", err)
	}
	defer rows.Close()

	return scanRequests(rows)
}

// ListByOrganization returns all requests posted by an organization, newest first.
func (r *Repo) ListByOrganization(ctx context.Context, organizationID uuid.UUID) ([]domain.FoodRequest, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByOrganizationSQL, organizationID)
	if err != nil {
		return nil, fmt.Errorf("list food requests: %w", err)
	}
	defer rows.Close()

	return scanRequests(rows)
}

// UpdateStatus moves a request out of ACTIVE, scoped to the owning
// organization. Zero rows affected surfaces as domain.ErrNotFound.
func (r *Repo) UpdateStatus(ctx context.Context, id, organizationID uuid.UUID, from, to domain.RequestStatus) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)

	tag, err := querier.Exec(ctx, updateStatusSQL, id, organizationID, from, to, now)
	if err != nil {
		return postgres.MapError(err, "food request", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("food request %s: %s -> %s: %w", id, from, to, domain.ErrNotFound)
	}

	return nil
}

func scanRequest(row pgx.Row) (domain.FoodRequest, error) {
	var req domain.FoodRequest
	var urgency, status string

	err := row.Scan(&req.ID, &req.OrganizationID, &req.FoodTypes, &req.Quantity,
		&urgency, &req.Notes, &status, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return domain.FoodRequest{}, err
	}

	req.Urgency = domain.UrgencyTier(urgency)
	req.Status = domain.RequestStatus(status)
	return req, nil
}

func scanRequests(rows pgx.Rows) ([]domain.FoodRequest, error) {
	var requests []domain.FoodRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan food request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate food requests: %w", err)
	}

	if requests == nil {
		requests = []domain.FoodRequest{}
	}

	return requests, nil
}
