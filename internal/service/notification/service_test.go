package notification

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/resqbite/resqbite-backend/internal/domain"
	"github.com/resqbite/resqbite-backend/pkg/ctxutil"
)

type notificationRepoMock struct {
	ListByUserFunc  func(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error)
	CountUnreadFunc func(ctx context.Context, userID uuid.UUID) (int, error)
	MarkReadFunc    func(ctx context.Context, id, userID uuid.UUID) error
	MarkAllReadFunc func(ctx context.Context, userID uuid.UUID) error
	ClearAllFunc    func(ctx context.Context, userID uuid.UUID) error
}

func (m *notificationRepoMock) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error) {
	if m.ListByUserFunc == nil {
		panic("notificationRepoMock.ListByUserFunc is nil")
	}
	return m.ListByUserFunc(ctx, userID, limit)
}

func (m *notificationRepoMock) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	if m.CountUnreadFunc == nil {
		panic("notificationRepoMock.CountUnreadFunc is nil")
	}
	return m.CountUnreadFunc(ctx, userID)
}

func (m *notificationRepoMock) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	if m.MarkReadFunc == nil {
		panic("notificationRepoMock.MarkReadFunc is nil")
	}
	return m.MarkReadFunc(ctx, id, userID)
}

func (m *notificationRepoMock) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if m.MarkAllReadFunc == nil {
		panic("notificationRepoMock.MarkAllReadFunc is nil")
	}
	return m.MarkAllReadFunc(ctx, userID)
}

func (m *notificationRepoMock) ClearAll(ctx context.Context, userID uuid.UUID) error {
	if m.ClearAllFunc == nil {
		panic("notificationRepoMock.ClearAllFunc is nil")
	}
	return m.ClearAllFunc(ctx, userID)
}

func newService(repo *notificationRepoMock) *Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(log, repo)
}

func userCtx(userID uuid.UUID) context.Context {
	return ctxutil.WithUserID(context.Background(), userID)
}

func TestService_List_DefaultsLimit(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	var gotLimit int
	repo := &notificationRepoMock{
		ListByUserFunc: func(ctx context.Context, id uuid.UUID, limit int) ([]domain.Notification, error) {
			if id != userID {
				t.Errorf("listed for %s, want %s", id, userID)
			}
			gotLimit = limit
			return []domain.Notification{}, nil
		},
	}
	svc := newService(repo)

	if _, err := svc.List(userCtx(userID), 0); err != nil {
		t.Fatalf("list: %v", err)
	}
	if gotLimit != defaultListLimit {
		t.Errorf("limit: got %d, want %d", gotLimit, defaultListLimit)
	}

	if _, err := svc.List(userCtx(userID), 1000); err != nil {
		t.Fatalf("list: %v", err)
	}
	if gotLimit != defaultListLimit {
		t.Errorf("oversized limit must fall back, got %d", gotLimit)
	}
}

func TestService_List_Unauthenticated(t *testing.T) {
	t.Parallel()

	svc := newService(&notificationRepoMock{})
	if _, err := svc.List(context.Background(), 10); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
}

func TestService_MarkRead_ScopedToCaller(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	notifID := uuid.New()
	repo := &notificationRepoMock{
		MarkReadFunc: func(ctx context.Context, id, uid uuid.UUID) error {
			if id != notifID || uid != userID {
				t.Errorf("mark read (%s, %s), want (%s, %s)", id, uid, notifID, userID)
			}
			return nil
		},
	}
	svc := newService(repo)

	if err := svc.MarkRead(userCtx(userID), notifID); err != nil {
		t.Fatalf("mark read: %v", err)
	}
}

func TestService_MarkRead_ForeignNotification(t *testing.T) {
	t.Parallel()

	repo := &notificationRepoMock{
		MarkReadFunc: func(ctx context.Context, id, uid uuid.UUID) error {
			return domain.ErrNotFound
		},
	}
	svc := newService(repo)

	if err := svc.MarkRead(userCtx(uuid.New()), uuid.New()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestService_CountUnread(t *testing.T) {
	t.Parallel()

	repo := &notificationRepoMock{
		CountUnreadFunc: func(ctx context.Context, userID uuid.UUID) (int, error) {
			return 7, nil
		},
	}
	svc := newService(repo)

	n, err := svc.CountUnread(userCtx(uuid.New()))
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 7 {
		t.Errorf("count: got %d, want 7", n)
	}
}

func TestService_ClearAll(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	cleared := false
	repo := &notificationRepoMock{
		ClearAllFunc: func(ctx context.Context, uid uuid.UUID) error {
			cleared = uid == userID
			return nil
		},
	}
	svc := newService(repo)

	if err := svc.ClearAll(userCtx(userID)); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if !cleared {
		t.Error("clear must target the calling user")
	}
}
