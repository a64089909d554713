// Package notification implements the Notification repository using PostgreSQL.
package notification

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

// Repo provides notification persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new notification repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const notificationColumns = `id, user_id, type, title, message, is_read, delivery_id, created_at`

const insertSQL = `
INSERT INTO notifications (id, user_id, type, title, message, is_read, delivery_id, created_at)
VALUES ($1, $2, $3, $4, $5, false, $6, $7)`

const listByUserSQL = `
SELECT ` + notificationColumns + `
FROM notifications
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2`

const countUnreadSQL = `
SELECT count(*) FROM notifications WHERE user_id = $1 AND is_read = false`

const markReadSQL = `
UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2`

const markAllReadSQL = `
UPDATE notifications SET is_read = true WHERE user_id = $1 AND is_read = false`

const clearAllSQL = `
DELETE FROM notifications WHERE user_id = $1`

// CreateBatch inserts a set of notifications in a single pgx batch round trip.
// Intended to run inside the transaction of the transition that produced them.
func (r *Repo) CreateBatch(ctx context.Context, notifications []domain.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)

	batch := &pgx.Batch{}
	for _, n := range notifications {
		id := n.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		createdAt := n.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		batch.Queue(insertSQL, id, n.UserID, n.Type, n.Title, n.Message, n.DeliveryID, createdAt)
	}

	results := querier.SendBatch(ctx, batch)
	defer results.Close()

	for range notifications {
		if _, err := results.Exec(); err != nil {
			return postgres.MapError(err, "notification", uuid.Nil)
		}
	}

	return nil
}

// ListByUser returns the user's notifications, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByUserSQL, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var typ string
		if err := rows.Scan(&n.ID, &n.UserID, &typ, &n.Title, &n.Message,
			&n.IsRead, &n.DeliveryID, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		n.Type = domain.NotificationType(typ)
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notifications: %w", err)
	}

	if notifications == nil {
		notifications = []domain.Notification{}
	}

	return notifications, nil
}

// CountUnread returns the number of unread notifications for a user.
func (r *Repo) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countUnreadSQL, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}

	return count, nil
}

// MarkRead flips one notification to read. The user scope makes the operation
// a no-op on someone else's notification, surfaced as domain.ErrNotFound.
func (r *Repo) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, markReadSQL, id, userID)
	if err != nil {
		return postgres.MapError(err, "notification", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("notification %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// MarkAllRead flips all of a user's unread notifications to read.
func (r *Repo) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, markAllReadSQL, userID); err != nil {
		return postgres.MapError(err, "notification", userID)
	}

	return nil
}

// ClearAll deletes every notification belonging to a user.
func (r *Repo) ClearAll(ctx context.Context, userID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, clearAllSQL, userID); err != nil {
		return postgres.MapError(err, "notification", userID)
	}

	return nil
}
