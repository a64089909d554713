// Package notification exposes the per-user notification feed. Records are
// only ever created by the delivery lifecycle; this service covers reading
// and acknowledging them.
package notification

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/resqbite/resqbite-backend/internal/domain"
	"github.com/resqbite/resqbite-backend/pkg/ctxutil"
)

const defaultListLimit = 50

type notificationRepo interface {
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	ClearAll(ctx context.Context, userID uuid.UUID) error
}

// Service implements the notification feed use cases.
type Service struct {
	notifications notificationRepo
	log           *slog.Logger
}

// NewService creates a new notification service.
func NewService(log *slog.Logger, notifications notificationRepo) *Service {
	return &Service{
		notifications: notifications,
		log:           log.With("service", "notification"),
	}
}

func requireUser(ctx context.Context) (uuid.UUID, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return userID, nil
}

// List returns the caller's feed, newest first. A non-positive limit falls
// back to the default page size.
func (s *Service) List(ctx context.Context, limit int) ([]domain.Notification, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 200 {
		limit = defaultListLimit
	}
	return s.notifications.ListByUser(ctx, userID, limit)
}

// CountUnread returns how many of the caller's notifications are unread.
func (s *Service) CountUnread(ctx context.Context) (int, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return 0, err
	}
	return s.notifications.CountUnread(ctx, userID)
}

// MarkRead flags one of the caller's notifications as read. A notification
// that is not the caller's reports ErrNotFound.
func (s *Service) MarkRead(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}
	return s.notifications.MarkRead(ctx, id, userID)
}

// MarkAllRead flags the caller's whole feed as read.
func (s *Service) MarkAllRead(ctx context.Context) error {
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}
	return s.notifications.MarkAllRead(ctx, userID)
}

// ClearAll deletes the caller's whole feed.
func (s *Service) ClearAll(ctx context.Context) error {
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}
	if err := s.notifications.ClearAll(ctx, userID); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "notifications cleared", slog.String("user_id", userID.String()))
	return nil
}
