// Package fooditem implements the FoodItem repository using PostgreSQL.
// The quality assessment is stored as a jsonb document alongside the row.
package fooditem

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/resqbite/resqbite-backend/internal/adapter/postgres"
	"github.com/resqbite/resqbite-backend/internal/domain"
)

// Repo provides food item persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new food item repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const foodItemColumns = `id, restaurant_id, name, description, quantity, unit, category,
       prepared_at, expires_at, image_url, assessment, status, created_at, updated_at`

const createSQL = `
INSERT INTO food_items (id, restaurant_id, name, description, quantity, unit, category,
                        prepared_at, expires_at, image_url, assessment, status,
                        created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)
RETURNING ` + foodItemColumns

const getByIDSQL = `
SELECT ` + foodItemColumns + `
FROM food_items
WHERE id = $1`

const listByRestaurantSQL = `
SELECT ` + foodItemColumns + `
FROM food_items
WHERE restaurant_id = $1
ORDER BY created_at DESC`

const listAvailableSQL = `
SELECT ` + foodItemColumns + `
FROM food_items
WHERE status = 'AVAILABLE' AND expires_at > $1
ORDER BY expires_at ASC`

const updateStatusSQL = `
UPDATE food_items
SET status = $3, updated_at = $4
WHERE id = $1 AND status = $2`

// Create inserts a new food item and returns the persisted row.
func (r *Repo) Create(ctx context.Context, item domain.FoodItem) (domain.FoodItem, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}

	assessment, err := marshalAssessment(item.Assessment)
	if err != nil {
		return domain.FoodItem{}, fmt.Errorf("food item %s: %w", item.ID, err)
	}

	row := querier.QueryRow(ctx, createSQL,
		item.ID, item.RestaurantID, item.Name, item.Description, item.Quantity,
		item.Unit, item.Category, item.PreparedAt, item.ExpiresAt, item.ImageURL,
		assessment, item.Status, now)

	created, err := scanFoodItem(row)
	if err != nil {
		return domain.FoodItem{}, postgres.MapError(err, "food item", item.ID)
	}

	return created, nil
}

// GetByID returns a food item by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.FoodItem, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	item, err := scanFoodItem(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return domain.FoodItem{}, postgres.MapError(err, "food item", id)
	}

	return item, nil
}

// ListByRestaurant returns all items posted by a restaurant, newest first.
func (r *Repo) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]domain.FoodItem, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByRestaurantSQL, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list food items: %w", err)
	}
	defer rows.Close()

	return scanFoodItems(rows)
}

// ListAvailable returns unexpired AVAILABLE items, soonest-expiring first.
func (r *Repo) ListAvailable(ctx context.Context, now time.Time) ([]domain.FoodItem, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listAvailableSQL, now)
	if err != nil {
		return nil, fmt.Errorf("list available food items: %w", err)
	}
	defer rows.Close()

	return scanFoodItems(rows)
}

// UpdateStatus moves an item from one status to another with a conditional
// UPDATE. Zero rows affected surfaces as domain.ErrNotFound, which the caller
// classifies: the item is gone, or it already left the expected status.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.FoodItemStatus) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)

	tag, err := querier.Exec(ctx, updateStatusSQL, id, from, to, now)
	if err != nil {
		return postgres.MapError(err, "food item", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("food item %s: %s -> %s: %w", id, from, to, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func marshalAssessment(a *domain.QualityAssessment) ([]byte, error) {
	if a == nil {
		return nil, nil
	}
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal assessment: %w", err)
	}
	return data, nil
}

func scanFoodItem(row pgx.Row) (domain.FoodItem, error) {
	var item domain.FoodItem
	var status string
	var assessment []byte

	err := row.Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Description,
		&item.Quantity, &item.Unit, &item.Category, &item.PreparedAt, &item.ExpiresAt,
		&item.ImageURL, &assessment, &status, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return domain.FoodItem{}, err
	}

	item.Status = domain.FoodItemStatus(status)

	if len(assessment) > 0 {
		var a domain.QualityAssessment
		if err := json.Unmarshal(assessment, &a); err != nil {
			return domain.FoodItem{}, fmt.Errorf("unmarshal assessment: %w", err)
		}
		item.Assessment = &a
	}

	return item, nil
}

func scanFoodItems(rows pgx.Rows) ([]domain.FoodItem, error) {
	var items []domain.FoodItem
	for rows.Next() {
		item, err := scanFoodItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan food item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate food items: %w", err)
	}

	if items == nil {
		items = []domain.FoodItem{}
	}

	return items, nil
}
