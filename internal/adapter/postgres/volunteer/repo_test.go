package volunteer_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/resqbite/resqbite-backend/internal/adapter/postgres/testhelper"
	"github.com/resqbite/resqbite-backend/internal/adapter/postgres/volunteer"
	"github.com/resqbite/resqbite-backend/internal/domain"
)

func seedUser(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, email, password_hash, role, created_at, updated_at)
		 VALUES ($1, $2, 'x', 'volunteer', now(), now())`,
		id, fmt.Sprintf("vol-%s@example.com", id))
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return id
}

func TestRepo_CreateAndGet(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := volunteer.New(pool)
	userID := seedUser(t, pool)

	created, err := repo.Create(context.Background(), domain.Volunteer{
		UserID: userID,
		Name:   "Sam Courier",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !created.IsAvailable {
		t.Error("new volunteer must default to available")
	}
	if created.Earnings != 0 || created.CompletedDeliveries != 0 {
		t.Error("new volunteer must start with zero earnings and deliveries")
	}

	byUser, err := repo.GetByUserID(context.Background(), userID)
	if err != nil {
		t.Fatalf("get by user: %v", err)
	}
	if byUser.ID != created.ID {
		t.Errorf("get by user: got %v, want %v", byUser.ID, created.ID)
	}
}

func TestRepo_CreditCompletion_Accumulates(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := volunteer.New(pool)

	created, err := repo.Create(context.Background(), domain.Volunteer{
		UserID: seedUser(t, pool),
		Name:   "Sam Courier",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	first, err := repo.CreditCompletion(context.Background(), created.ID, 10.00)
	if err != nil {
		t.Fatalf("first credit: %v", err)
	}
	if first.Earnings != 10.00 || first.CompletedDeliveries != 1 {
		t.Errorf("after first credit: earnings=%v deliveries=%d", first.Earnings, first.CompletedDeliveries)
	}

	second, err := repo.CreditCompletion(context.Background(), created.ID, 7.50)
	if err != nil {
		t.Fatalf("second credit: %v", err)
	}
	if second.Earnings != 17.50 || second.CompletedDeliveries != 2 {
		t.Errorf("after second credit: earnings=%v deliveries=%d", second.Earnings, second.CompletedDeliveries)
	}
}

func TestRepo_SetAvailability(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := volunteer.New(pool)

	created, err := repo.Create(context.Background(), domain.Volunteer{
		UserID: seedUser(t, pool),
		Name:   "Sam Courier",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.SetAvailability(context.Background(), created.ID, false); err != nil {
		t.Fatalf("set availability: %v", err)
	}

	got, err := repo.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.IsAvailable {
		t.Error("availability must be off")
	}

	if err := repo.SetAvailability(context.Background(), uuid.New(), false); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown volunteer: want ErrNotFound, got %v", err)
	}
}
