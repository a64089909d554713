package delivery

import (
	"context"
	"sync"

	"github.com/google/uuid"

	deliveryrepo "github.com/resqbite/resqbite-backend/internal/adapter/postgres/delivery"
	"github.com/resqbite/resqbite-backend/internal/domain"
)

var (
	_ deliveryRepo     = &deliveryRepoMock{}
	_ foodItemRepo     = &foodItemRepoMock{}
	_ volunteerRepo    = &volunteerRepoMock{}
	_ restaurantRepo   = &restaurantRepoMock{}
	_ organizationRepo = &organizationRepoMock{}
	_ notificationRepo = &notificationRepoMock{}
	_ txManager        = &txManagerMock{}
)

type deliveryRepoMock struct {
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (domain.Delivery, error)
	ListOpenFunc      func(ctx context.Context) ([]domain.Delivery, error)
	ListForActorFunc  func(ctx context.Context, actor domain.Actor, filter deliveryrepo.ListFilter) ([]domain.Delivery, error)
	ClaimFunc         func(ctx context.Context, deliveryID, volunteerID uuid.UUID) (domain.Delivery, error)
	AdvanceStatusFunc func(ctx context.Context, deliveryID, volunteerID uuid.UUID, from, to domain.DeliveryStatus) (domain.Delivery, error)
}

func (m *deliveryRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.Delivery, error) {
	if m.GetByIDFunc == nil {
		panic("deliveryRepoMock.GetByIDFunc is nil")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *deliveryRepoMock) ListOpen(ctx context.Context) ([]domain.Delivery, error) {
	if m.ListOpenFunc == nil {
		panic("deliveryRepoMock.ListOpenFunc is nil")
	}
	return m.ListOpenFunc(ctx)
}

func (m *deliveryRepoMock) ListForActor(ctx context.Context, actor domain.Actor, filter deliveryrepo.ListFilter) ([]domain.Delivery, error) {
	if m.ListForActorFunc == nil {
		panic("deliveryRepoMock.ListForActorFunc is nil")
	}
	return m.ListForActorFunc(ctx, actor, filter)
}

func (m *deliveryRepoMock) Claim(ctx context.Context, deliveryID, volunteerID uuid.UUID) (domain.Delivery, error) {
	if m.ClaimFunc == nil {
		panic("deliveryRepoMock.ClaimFunc is nil")
	}
	return m.ClaimFunc(ctx, deliveryID, volunteerID)
}

func (m *deliveryRepoMock) AdvanceStatus(ctx context.Context, deliveryID, volunteerID uuid.UUID, from, to domain.DeliveryStatus) (domain.Delivery, error) {
	if m.AdvanceStatusFunc == nil {
		panic("deliveryRepoMock.AdvanceStatusFunc is nil")
	}
	return m.AdvanceStatusFunc(ctx, deliveryID, volunteerID, from, to)
}

type foodItemRepoMock struct {
	UpdateStatusFunc func(ctx context.Context, id uuid.UUID, from, to domain.FoodItemStatus) error

	mu    sync.Mutex
	calls []struct {
		ID       uuid.UUID
		From, To domain.FoodItemStatus
	}
}

func (m *foodItemRepoMock) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.FoodItemStatus) error {
	if m.UpdateStatusFunc == nil {
		panic("foodItemRepoMock.UpdateStatusFunc is nil")
	}
	m.mu.Lock()
	m.calls = append(m.calls, struct {
		ID       uuid.UUID
		From, To domain.FoodItemStatus
	}{id, from, to})
	m.mu.Unlock()
	return m.UpdateStatusFunc(ctx, id, from, to)
}

func (m *foodItemRepoMock) UpdateStatusCalls() []struct {
	ID       uuid.UUID
	From, To domain.FoodItemStatus
} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type volunteerRepoMock struct {
	GetByUserIDFunc      func(ctx context.Context, userID uuid.UUID) (domain.Volunteer, error)
	CreditCompletionFunc func(ctx context.Context, id uuid.UUID, payment float64) (domain.Volunteer, error)

	mu          sync.Mutex
	creditCalls []struct {
		ID      uuid.UUID
		Payment float64
	}
}

func (m *volunteerRepoMock) GetByUserID(ctx context.Context, userID uuid.UUID) (domain.Volunteer, error) {
	if m.GetByUserIDFunc == nil {
		panic("volunteerRepoMock.GetByUserIDFunc is nil")
	}
	return m.GetByUserIDFunc(ctx, userID)
}

func (m *volunteerRepoMock) CreditCompletion(ctx context.Context, id uuid.UUID, payment float64) (domain.Volunteer, error) {
	if m.CreditCompletionFunc == nil {
		panic("volunteerRepoMock.CreditCompletionFunc is nil")
	}
	m.mu.Lock()
	m.creditCalls = append(m.creditCalls, struct {
		ID      uuid.UUID
		Payment float64
	}{id, payment})
	m.mu.Unlock()
	return m.CreditCompletionFunc(ctx, id, payment)
}

func (m *volunteerRepoMock) CreditCompletionCalls() []struct {
	ID      uuid.UUID
	Payment float64
} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creditCalls
}

type restaurantRepoMock struct {
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (domain.Restaurant, error)
	GetByUserIDFunc func(ctx context.Context, userID uuid.UUID) (domain.Restaurant, error)
}

func (m *restaurantRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.Restaurant, error) {
	if m.GetByIDFunc == nil {
		panic("restaurantRepoMock.GetByIDFunc is nil")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *restaurantRepoMock) GetByUserID(ctx context.Context, userID uuid.UUID) (domain.Restaurant, error) {
	if m.GetByUserIDFunc == nil {
		panic("restaurantRepoMock.GetByUserIDFunc is nil")
	}
	return m.GetByUserIDFunc(ctx, userID)
}

type organizationRepoMock struct {
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (domain.Organization, error)
	GetByUserIDFunc func(ctx context.Context, userID uuid.UUID) (domain.Organization, error)
}

func (m *organizationRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.Organization, error) {
	if m.GetByIDFunc == nil {
		panic("organizationRepoMock.GetByIDFunc is nil")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *organizationRepoMock) GetByUserID(ctx context.Context, userID uuid.UUID) (domain.Organization, error) {
	if m.GetByUserIDFunc == nil {
		panic("organizationRepoMock.GetByUserIDFunc is nil")
	}
	return m.GetByUserIDFunc(ctx, userID)
}

type notificationRepoMock struct {
	CreateBatchFunc func(ctx context.Context, notifications []domain.Notification) error

	mu      sync.Mutex
	batches [][]domain.Notification
}

func (m *notificationRepoMock) CreateBatch(ctx context.Context, notifications []domain.Notification) error {
	if m.CreateBatchFunc == nil {
		panic("notificationRepoMock.CreateBatchFunc is nil")
	}
	m.mu.Lock()
	m.batches = append(m.batches, notifications)
	m.mu.Unlock()
	return m.CreateBatchFunc(ctx, notifications)
}

func (m *notificationRepoMock) CreateBatchCalls() [][]domain.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.batches
}

// txManagerMock runs the callback directly; there is no real transaction.
type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc != nil {
		return m.RunInTxFunc(ctx, fn)
	}
	return fn(ctx)
}
