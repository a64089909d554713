// Package delivery implements the Delivery repository using PostgreSQL.
// The claim and advance operations are single conditional UPDATEs so that
// concurrent volunteers race on the database row, not on application state.
package delivery

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

// ListFilter narrows ListForActor results.
type ListFilter struct {
	Status *domain.DeliveryStatus
	Limit  int
	Offset int
}

// Repo provides delivery persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new delivery repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const deliveryColumns = `id, food_item_id, food_item_name, quantity, restaurant_id,
       organization_id, volunteer_id, status, pickup_time, delivery_time, notes,
       distance_km, est_minutes, payment, created_at, updated_at`

const createSQL = `
INSERT INTO deliveries (id, food_item_id, food_item_name, quantity, restaurant_id,
                        organization_id, volunteer_id, status, notes,
                        distance_km, est_minutes, payment, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)
RETURNING ` + deliveryColumns

const getByIDSQL = `
SELECT ` + deliveryColumns + `
FROM deliveries
WHERE id = $1`

const listOpenSQL = `
SELECT ` + deliveryColumns + `
FROM deliveries
WHERE status = 'PENDING' AND volunteer_id IS NULL
ORDER BY created_at ASC`

const claimSQL = `
UPDATE deliveries
SET volunteer_id = $2, status = 'VOLUNTEER_ASSIGNED', updated_at = $3
WHERE id = $1 AND status = 'PENDING' AND volunteer_id IS NULL
RETURNING ` + deliveryColumns

const advanceSQL = `
UPDATE deliveries
SET status = $4,
    pickup_time = COALESCE($5, pickup_time),
    delivery_time = COALESCE($6, delivery_time),
    updated_at = $7
WHERE id = $1 AND status = $3 AND volunteer_id = $2
RETURNING ` + deliveryColumns

// Create inserts a new delivery and returns the persisted row.
func (r *Repo) Create(ctx context.Context, d domain.Delivery) (domain.Delivery, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}

	row := querier.QueryRow(ctx, createSQL,
		d.ID, d.FoodItemID, d.FoodItemName, d.Quantity, d.RestaurantID,
		d.OrganizationID, d.VolunteerID, d.Status, d.Notes,
		d.DistanceKm, d.EstMinutes, d.Payment, now)

	created, err := scanDelivery(row)
	if err != nil {
		return domain.Delivery{}, postgres.MapError(err, "delivery", d.ID)
	}

	return created, nil
}

// GetByID returns a delivery by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Delivery, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	d, err := scanDelivery(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return domain.Delivery{}, postgres.MapError(err, "delivery", id)
	}

	return d, nil
}

// ListOpen returns all claimable deliveries, oldest first.
func (r *Repo) ListOpen(ctx context.Context) ([]domain.Delivery, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listOpenSQL)
	if err != nil {
		return nil, fmt.Errorf("list open deliveries: %w", err)
	}
	defer rows.Close()

	return scanDeliveries(rows)
}

// ListForActor returns deliveries visible to the actor: a restaurant sees its
// outgoing donations, an organization its incoming ones, a volunteer the jobs
// assigned to it. An optional status filter narrows further.
func (r *Repo) ListForActor(ctx context.Context, actor domain.Actor, filter ListFilter) ([]domain.Delivery, error) {
	var partyColumn string
	switch actor.Role {
	case domain.RoleRestaurant:
		partyColumn = "restaurant_id"
	case domain.RoleOrganization:
		partyColumn = "organization_id"
	case domain.RoleVolunteer:
		partyColumn = "volunteer_id"
	default:
		return nil, fmt.Errorf("unknown role %q: %w", actor.Role, domain.ErrValidation)
	}

	qb := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select(deliveryColumns).
		From("deliveries").
		Where(squirrel.Eq{partyColumn: actor.PartyID}).
		OrderBy("created_at DESC")

	if filter.Status != nil {
		qb = qb.Where(squirrel.Eq{"status": *filter.Status})
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
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()

	return scanDeliveries(rows)
}

// Claim atomically assigns a volunteer to an open delivery. The UPDATE is
// conditional on status PENDING and no volunteer attached, so exactly one of
// several concurrent claimers wins. A zero-row result surfaces as
// domain.ErrNotFound; the caller re-fetches to tell "gone" from "lost the race".
func (r *Repo) Claim(ctx context.Context, deliveryID, volunteerID uuid.UUID) (domain.Delivery, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)

	d, err := scanDelivery(querier.QueryRow(ctx, claimSQL, deliveryID, volunteerID, now))
	if err != nil {
		return domain.Delivery{}, postgres.MapError(err, "delivery", deliveryID)
	}

	return d, nil
}

// AdvanceStatus moves a delivery from one status to the next with a single
// conditional UPDATE keyed on (id, current status, volunteer). PickupTime is
// stamped when reaching PICKED_UP, DeliveryTime when reaching DELIVERED;
// COALESCE keeps already-set timestamps untouched. A zero-row result surfaces
// as domain.ErrNotFound for the caller to classify against a fresh read.
func (r *Repo) AdvanceStatus(ctx context.Context, deliveryID, volunteerID uuid.UUID, from, to domain.DeliveryStatus) (domain.Delivery, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)

	var pickupTime, deliveryTime *time.Time
	switch to {
	case domain.DeliveryStatusPickedUp:
		pickupTime = &now
	case domain.DeliveryStatusDelivered:
		deliveryTime = &now
	}

	d, err := scanDelivery(querier.QueryRow(ctx, advanceSQL,
		deliveryID, volunteerID, from, to, pickupTime, deliveryTime, now))
	if err != nil {
		return domain.Delivery{}, postgres.MapError(err, "delivery", deliveryID)
	}

	return d, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanDelivery(row pgx.Row) (domain.Delivery, error) {
	var d domain.Delivery
	var status string

	err := row.Scan(&d.ID, &d.FoodItemID, &d.FoodItemName, &d.Quantity, &d.RestaurantID,
		&d.OrganizationID, &d.VolunteerID, &status, &d.PickupTime, &d.DeliveryTime,
		&d.Notes, &d.DistanceKm, &d.EstMinutes, &d.Payment, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return domain.Delivery{}, err
	}

	d.Status = domain.DeliveryStatus(status)
	return d, nil
}

func scanDeliveries(rows pgx.Rows) ([]domain.Delivery, error) {
	var deliveries []domain.Delivery
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		deliveries = append(deliveries, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deliveries: %w", err)
	}

	if deliveries == nil {
		deliveries = []domain.Delivery{}
	}

	return deliveries, nil
}
