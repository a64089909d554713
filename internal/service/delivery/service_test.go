package delivery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/resqbite/resqbite-backend/internal/domain"
	"github.com/resqbite/resqbite-backend/pkg/ctxutil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fixture bundles one consistent world: a delivery, its parties, and mocks
// pre-wired for the happy path. Tests override individual funcs.
type fixture struct {
	deliveries    *deliveryRepoMock
	foodItems     *foodItemRepoMock
	volunteers    *volunteerRepoMock
	restaurants   *restaurantRepoMock
	organizations *organizationRepoMock
	notifications *notificationRepoMock
	tx            *txManagerMock

	volunteer    domain.Volunteer
	restaurant   domain.Restaurant
	organization domain.Organization
	delivery     domain.Delivery
}

func newFixture(status domain.DeliveryStatus) *fixture {
	f := &fixture{
		volunteer: domain.Volunteer{
			ID:       uuid.New(),
			UserID:   uuid.New(),
			Name:     "Sam Courier",
			Earnings: 10.00,
		},
		restaurant: domain.Restaurant{
			ID:     uuid.New(),
			UserID: uuid.New(),
			Name:   "Test Kitchen",
		},
		organization: domain.Organization{
			ID:     uuid.New(),
			UserID: uuid.New(),
			Name:   "Test Shelter",
		},
	}

	itemID := uuid.New()
	f.delivery = domain.Delivery{
		ID:             uuid.New(),
		FoodItemID:     &itemID,
		FoodItemName:   "Vegetable Curry",
		Quantity:       "5 trays",
		RestaurantID:   f.restaurant.ID,
		OrganizationID: f.organization.ID,
		Status:         status,
		DistanceKm:     3.2,
		EstMinutes:     25,
		Payment:        7.50,
	}
	if status != domain.DeliveryStatusPending {
		volID := f.volunteer.ID
		f.delivery.VolunteerID = &volID
	}

	f.deliveries = &deliveryRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.Delivery, error) {
			if id != f.delivery.ID {
				return domain.Delivery{}, domain.ErrNotFound
			}
			return f.delivery, nil
		},
		ClaimFunc: func(ctx context.Context, deliveryID, volunteerID uuid.UUID) (domain.Delivery, error) {
			claimed := f.delivery
			claimed.Status = domain.DeliveryStatusVolunteerAssigned
			claimed.VolunteerID = &volunteerID
			return claimed, nil
		},
		AdvanceStatusFunc: func(ctx context.Context, deliveryID, volunteerID uuid.UUID, from, to domain.DeliveryStatus) (domain.Delivery, error) {
			advanced := f.delivery
			advanced.Status = to
			return advanced, nil
		},
	}
	f.foodItems = &foodItemRepoMock{
		UpdateStatusFunc: func(ctx context.Context, id uuid.UUID, from, to domain.FoodItemStatus) error {
			return nil
		},
	}
	f.volunteers = &volunteerRepoMock{
		GetByUserIDFunc: func(ctx context.Context, userID uuid.UUID) (domain.Volunteer, error) {
			if userID != f.volunteer.UserID {
				return domain.Volunteer{}, domain.ErrNotFound
			}
			return f.volunteer, nil
		},
		CreditCompletionFunc: func(ctx context.Context, id uuid.UUID, payment float64) (domain.Volunteer, error) {
			credited := f.volunteer
			credited.Earnings += payment
			credited.CompletedDeliveries++
			return credited, nil
		},
	}
	f.restaurants = &restaurantRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.Restaurant, error) {
			return f.restaurant, nil
		},
	}
	f.organizations = &organizationRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.Organization, error) {
			return f.organization, nil
		},
	}
	f.notifications = &notificationRepoMock{
		CreateBatchFunc: func(ctx context.Context, notifications []domain.Notification) error {
			return nil
		},
	}
	f.tx = &txManagerMock{}

	return f
}

func (f *fixture) service() *Service {
	return NewService(discardLogger(), f.deliveries, f.foodItems, f.volunteers,
		f.restaurants, f.organizations, f.notifications, f.tx)
}

func (f *fixture) volunteerCtx() context.Context {
	ctx := ctxutil.WithUserID(context.Background(), f.volunteer.UserID)
	return ctxutil.WithRole(ctx, string(domain.RoleVolunteer))
}

// ---------------------------------------------------------------------------
// Claim
// ---------------------------------------------------------------------------

func TestService_Claim_Success(t *testing.T) {
	t.Parallel()

	f := newFixture(domain.DeliveryStatusPending)
	svc := f.service()

	claimed, err := svc.Claim(f.volunteerCtx(), f.delivery.ID)
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if claimed.Status != domain.DeliveryStatusVolunteerAssigned {
		t.Errorf("status: got %s, want VOLUNTEER_ASSIGNED", claimed.Status)
	}
	if claimed.VolunteerID == nil || *claimed.VolunteerID != f.volunteer.ID {
		t.Error("claimed delivery must carry the claimer's id")
	}

	batches := f.notifications.CreateBatchCalls()
	if len(batches) != 1 || len(batches[0]) != 2 {
		t.Fatalf("fan-out: got %d batches, want 1 batch of 2 drafts", len(batches))
	}
	for _, n := range batches[0] {
		if n.Type != domain.NotificationTypeVolunteerAssigned {
			t.Errorf("draft type: got %s", n.Type)
		}
	}
}

func TestService_Claim_Unauthenticated(t *testing.T) {
	t.Parallel()

	f := newFixture(domain.DeliveryStatusPending)
	svc := f.service()

	_, err := svc.Claim(context.Background(), f.delivery.ID)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
}

func TestService_Claim_WrongRole(t *testing.T) {
	t.Parallel()

	f := newFixture(domain.DeliveryStatusPending)
	svc := f.service()

	ctx := ctxutil.WithUserID(context.Background(), f.restaurant.UserID)
	ctx = ctxutil.WithRole(ctx, string(domain.RoleRestaurant))

	_, err := svc.Claim(ctx, f.delivery.ID)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}
}

func TestService_Claim_LostRace(t *testing.T) {
	t.Parallel()

	f := newFixture(domain.DeliveryStatusPending)

	// conditional update hits zero rows; re-read shows another volunteer won
	otherVol := uuid.New()
	f.deliveries.ClaimFunc = func(ctx context.Context, deliveryID, volunteerID uuid.UUID) (domain.Delivery, error) {
		return domain.Delivery{}, fmt.Errorf("delivery %s: %w", deliveryID, domain.ErrNotFound)
	}
	f.deliveries.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (domain.Delivery, error) {
		taken := f.delivery
		taken.Status = domain.DeliveryStatusVolunteerAssigned
		taken.VolunteerID = &otherVol
		return taken, nil
	}

	svc := f.service()

	_, err := svc.Claim(f.volunteerCtx(), f.delivery.ID)
	if !errors.Is(err, domain.ErrAlreadyClaimed) {
		t.Fatalf("want ErrAlreadyClaimed, got %v", err)
	}
	if len(f.notifications.CreateBatchCalls()) != 0 {
		t.Error("a lost claim must not fan out")
	}
}

func TestService_Claim_DeliveryGone(t *testing.T) {
	t.Parallel()

	f := newFixture(domain.DeliveryStatusPending)
	f.deliveries.ClaimFunc = func(ctx context.Context, deliveryID, volunteerID uuid.UUID) (domain.Delivery, error) {
		return domain.Delivery{}, domain.ErrNotFound
	}
	f.deliveries.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (domain.Delivery, error) {
		return domain.Delivery{}, domain.ErrNotFound
	}

	svc := f.service()

	_, err := svc.Claim(f.volunteerCtx(), f.delivery.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Advance
// ---------------------------------------------------------------------------

func TestService_Advance_PickedUp_MirrorsFoodItem(t *testing.T) {
	t.Parallel()

	f := newFixture(domain.DeliveryStatusVolunteerAssigned)
	svc := f.service()

	advanced, err := svc.Advance(f.volunteerCtx(), f.delivery.ID, domain.DeliveryStatusPickedUp)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if advanced.Status != domain.DeliveryStatusPickedUp {
		t.Errorf("status: got %s", advanced.Status)
	}

	mirrors := f.foodItems.UpdateStatusCalls()
	if len(mirrors) != 1 {
		t.Fatalf("mirror calls: got %d, want 1", len(mirrors))
	}
	if mirrors[0].From != domain.FoodItemStatusMatched || mirrors[0].To != domain.FoodItemStatusPickedUp {
		t.Errorf("mirror: got %s -> %s", mirrors[0].From, mirrors[0].To)
	}

	if len(f.volunteers.CreditCompletionCalls()) != 0 {
		t.Error("non-terminal transition must not credit earnings")
	}
}

func TestService_Advance_InTransit_NoSideEffects(t *testing.T) {
	t.Parallel()

	f := newFixture(domain.DeliveryStatusPickedUp)
	svc := f.service()

	_, err := svc.Advance(f.volunteerCtx(), f.delivery.ID, domain.DeliveryStatusInTransit)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}

	if len(f.foodItems.UpdateStatusCalls()) != 0 {
		t.Error("IN_TRANSIT must not touch the food item")
	}
	if len(f.notifications.CreateBatchCalls()) != 0 {
		t.Error("IN_TRANSIT must not fan out")
	}
	if len(f.volunteers.CreditCompletionCalls()) != 0 {
		t.Error("IN_TRANSIT must not credit earnings")
	}
}

func TestService_Advance_Delivered_CreditsOnce(t *testing.T) {
	t.Parallel()

	f := newFixture(domain.DeliveryStatusInTransit)
	svc := f.service()

	_, err := svc.Advance(f.volunteerCtx(), f.delivery.ID, domain.DeliveryStatusDelivered)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}

	credits := f.volunteers.CreditCompletionCalls()
	if len(credits) != 1 {
		t.Fatalf("credit calls: got %d, want exactly 1", len(credits))
	}
	if credits[0].Payment != 7.50 {
		t.Errorf("credited payment: got %v, want 7.50", credits[0].Payment)
	}

	mirrors := f.foodItems.UpdateStatusCalls()
	if len(mirrors) != 1 || mirrors[0].To != domain.FoodItemStatusDelivered {
		t.Fatalf("mirror: got %v", mirrors)
	}

	batches := f.notifications.CreateBatchCalls()
	if len(batches) != 1 || len(batches[0]) != 2 {
		t.Fatalf("fan-out: got %v batches", len(batches))
	}
	var volunteerNotified bool
	for _, n := range batches[0] {
		if n.UserID == f.volunteer.UserID {
			volunteerNotified = true
			if !strings.Contains(n.Message, "7.50") {
				t.Errorf("volunteer draft must contain payment, got %q", n.Message)
			}
		}
	}
	if !volunteerNotified {
		t.Error("delivered must notify the volunteer")
	}
}

func TestService_Advance_Redundant_NoDoubleCredit(t *testing.T) {
	t.Parallel()

	// delivery is already DELIVERED; a redundant invocation must fail the
	// precondition check and never reach the side effects
	f := newFixture(domain.DeliveryStatusDelivered)
	svc := f.service()

	_, err := svc.Advance(f.volunteerCtx(), f.delivery.ID, domain.DeliveryStatusDelivered)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition, got %v", err)
	}
	if len(f.volunteers.CreditCompletionCalls()) != 0 {
		t.Error("redundant invocation must not credit again")
	}
	if len(f.notifications.CreateBatchCalls()) != 0 {
		t.Error("redundant invocation must not fan out again")
	}
}

func TestService_Advance_RacedUpdate_NoSideEffects(t *testing.T) {
	t.Parallel()

	// precondition read passes, but the conditional UPDATE loses a race
	f := newFixture(domain.DeliveryStatusInTransit)
	f.deliveries.AdvanceStatusFunc = func(ctx context.Context, deliveryID, volunteerID uuid.UUID, from, to domain.DeliveryStatus) (domain.Delivery, error) {
		return domain.Delivery{}, fmt.Errorf("delivery %s: %w", deliveryID, domain.ErrNotFound)
	}

	svc := f.service()

	_, err := svc.Advance(f.volunteerCtx(), f.delivery.ID, domain.DeliveryStatusDelivered)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition, got %v", err)
	}
	if len(f.volunteers.CreditCompletionCalls()) != 0 {
		t.Error("a raced advance must not credit")
	}
}

func TestService_Advance_SkipStep(t *testing.T) {
	t.Parallel()

	f := newFixture(domain.DeliveryStatusVolunteerAssigned)
	svc := f.service()

	_, err := svc.Advance(f.volunteerCtx(), f.delivery.ID, domain.DeliveryStatusDelivered)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition, got %v", err)
	}
}

func TestService_Advance_WrongVolunteer(t *testing.T) {
	t.Parallel()

	f := newFixture(domain.DeliveryStatusVolunteerAssigned)

	stranger := domain.Volunteer{ID: uuid.New(), UserID: uuid.New(), Name: "Stranger"}
	f.volunteers.GetByUserIDFunc = func(ctx context.Context, userID uuid.UUID) (domain.Volunteer, error) {
		return stranger, nil
	}

	svc := f.service()

	ctx := ctxutil.WithUserID(context.Background(), stranger.UserID)
	ctx = ctxutil.WithRole(ctx, string(domain.RoleVolunteer))

	_, err := svc.Advance(ctx, f.delivery.ID, domain.DeliveryStatusPickedUp)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition, got %v", err)
	}
}

func TestService_Advance_ToPendingRejected(t *testing.T) {
	t.Parallel()

	f := newFixture(domain.DeliveryStatusVolunteerAssigned)
	svc := f.service()

	_, err := svc.Advance(f.volunteerCtx(), f.delivery.ID, domain.DeliveryStatusPending)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
}

func TestService_Advance_MissingFoodItemTolerated(t *testing.T) {
	t.Parallel()

	f := newFixture(domain.DeliveryStatusVolunteerAssigned)
	f.foodItems.UpdateStatusFunc = func(ctx context.Context, id uuid.UUID, from, to domain.FoodItemStatus) error {
		return fmt.Errorf("food item %s: %w", id, domain.ErrNotFound)
	}

	svc := f.service()

	_, err := svc.Advance(f.volunteerCtx(), f.delivery.ID, domain.DeliveryStatusPickedUp)
	if err != nil {
		t.Fatalf("a vanished food item must not block the transition: %v", err)
	}
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

func TestService_ListOpen_VolunteerOnly(t *testing.T) {
	t.Parallel()

	f := newFixture(domain.DeliveryStatusPending)
	f.deliveries.ListOpenFunc = func(ctx context.Context) ([]domain.Delivery, error) {
		return []domain.Delivery{f.delivery}, nil
	}

	svc := f.service()

	open, err := svc.ListOpen(f.volunteerCtx())
	if err != nil {
		t.Fatalf("list open: %v", err)
	}
	if len(open) != 1 {
		t.Errorf("got %d deliveries, want 1", len(open))
	}

	ctx := ctxutil.WithUserID(context.Background(), f.restaurant.UserID)
	ctx = ctxutil.WithRole(ctx, string(domain.RoleRestaurant))
	if _, err := svc.ListOpen(ctx); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("restaurant listing open pool: want ErrForbidden, got %v", err)
	}
}

func TestService_Get_Visibility(t *testing.T) {
	t.Parallel()

	f := newFixture(domain.DeliveryStatusVolunteerAssigned)
	f.restaurants.GetByUserIDFunc = func(ctx context.Context, userID uuid.UUID) (domain.Restaurant, error) {
		return f.restaurant, nil
	}

	svc := f.service()

	// owning restaurant sees it
	ctx := ctxutil.WithUserID(context.Background(), f.restaurant.UserID)
	ctx = ctxutil.WithRole(ctx, string(domain.RoleRestaurant))
	if _, err := svc.Get(ctx, f.delivery.ID); err != nil {
		t.Fatalf("restaurant get: %v", err)
	}

	// an unassigned volunteer cannot see a claimed delivery
	stranger := domain.Volunteer{ID: uuid.New(), UserID: uuid.New()}
	f.volunteers.GetByUserIDFunc = func(ctx context.Context, userID uuid.UUID) (domain.Volunteer, error) {
		return stranger, nil
	}
	strangerCtx := ctxutil.WithUserID(context.Background(), stranger.UserID)
	strangerCtx = ctxutil.WithRole(strangerCtx, string(domain.RoleVolunteer))
	if _, err := svc.Get(strangerCtx, f.delivery.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("stranger get: want ErrNotFound, got %v", err)
	}
}
