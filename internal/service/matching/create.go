package matching

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/resqbite/resqbite-backend/internal/domain"
	"github.com/resqbite/resqbite-backend/internal/service/notify"
	"github.com/resqbite/resqbite-backend/pkg/ctxutil"
)

// CreateDeliveryInput holds the parameters for matching a food item to an
// organization.
type CreateDeliveryInput struct {
	FoodItemID     uuid.UUID
	OrganizationID uuid.UUID
	VolunteerID    *uuid.UUID
	Notes          *string
}

// Validate checks all fields and collects all errors.
func (i *CreateDeliveryInput) Validate() error {
	var errs []domain.FieldError

	if i.FoodItemID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "food_item_id", Message: "required"})
	}
	if i.OrganizationID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "organization_id", Message: "required"})
	}
	if i.VolunteerID != nil && *i.VolunteerID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "volunteer_id", Message: "must be a valid id when present"})
	}
	if i.Notes != nil && len(*i.Notes) > 1000 {
		errs = append(errs, domain.FieldError{Field: "notes", Message: "max 1000 characters"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// CreateDelivery matches an AVAILABLE food item to an organization, creating
// the delivery that will carry it. With a volunteer attached the delivery
// starts VOLUNTEER_ASSIGNED and skips the open pool; without one it starts
// PENDING and waits to be claimed.
//
// The delivery INSERT and the item's AVAILABLE to MATCHED update are two
// separate commits. If the second fails after the first succeeded, the
// committed delivery is returned together with a *domain.PartialCommitError
// naming both rows, and RetryFoodItemUpdate re-attempts only the dependent
// write. Collapsing the two into one transaction would hide the item update
// behind the INSERT's latency for every creation; the split keeps creation
// fast and makes the rare inconsistency explicit and repairable.
func (s *Service) CreateDelivery(ctx context.Context, input CreateDeliveryInput) (domain.Delivery, error) {
	if err := input.Validate(); err != nil {
		return domain.Delivery{}, err
	}

	rest, err := s.requireRestaurant(ctx)
	if err != nil {
		return domain.Delivery{}, err
	}

	item, err := s.foodItems.GetByID(ctx, input.FoodItemID)
	if err != nil {
		return domain.Delivery{}, err
	}
	if item.RestaurantID != rest.ID {
		return domain.Delivery{}, fmt.Errorf("food item %s belongs to another restaurant: %w",
			item.ID, domain.ErrForbidden)
	}
	if item.Status != domain.FoodItemStatusAvailable {
		return domain.Delivery{}, fmt.Errorf("food item %s is %s: %w",
			item.ID, item.Status, domain.ErrConflict)
	}
	if item.IsExpired(time.Now()) {
		return domain.Delivery{}, fmt.Errorf("food item %s expired at %s: %w",
			item.ID, item.ExpiresAt.Format(time.RFC3339), domain.ErrConflict)
	}

	org, err := s.organizations.GetByID(ctx, input.OrganizationID)
	if err != nil {
		return domain.Delivery{}, err
	}

	var vol *domain.Volunteer
	if input.VolunteerID != nil {
		v, vErr := s.volunteers.GetByID(ctx, *input.VolunteerID)
		if vErr != nil {
			return domain.Delivery{}, vErr
		}
		if !v.IsAvailable {
			return domain.Delivery{}, fmt.Errorf("volunteer %s is not available: %w",
				v.ID, domain.ErrConflict)
		}
		vol = &v
	}

	est := s.estimator.Estimate()

	itemID := item.ID
	d := domain.Delivery{
		FoodItemID:     &itemID,
		FoodItemName:   item.Name,
		Quantity:       item.Quantity,
		RestaurantID:   rest.ID,
		OrganizationID: org.ID,
		Status:         domain.InitialStatus(vol != nil),
		Notes:          input.Notes,
		DistanceKm:     est.DistanceKm,
		EstMinutes:     est.EstMinutes,
		Payment:        est.Payment,
	}
	if vol != nil {
		volID := vol.ID
		d.VolunteerID = &volID
	}

	// first commit: the delivery row
	created, err := s.deliveries.Create(ctx, d)
	if err != nil {
		return domain.Delivery{}, fmt.Errorf("create delivery: %w", err)
	}

	// second commit: the dependent food item update
	if err := s.foodItems.UpdateStatus(ctx, item.ID, domain.FoodItemStatusAvailable, domain.FoodItemStatusMatched); err != nil {
		s.log.ErrorContext(ctx, "food item match update failed after delivery commit",
			slog.String("delivery_id", created.ID.String()),
			slog.String("food_item_id", item.ID.String()),
			slog.String("error", err.Error()),
		)
		return created, &domain.PartialCommitError{
			DeliveryID: created.ID,
			FoodItemID: item.ID,
			Cause:      err,
		}
	}

	s.fanOutCreation(ctx, created, rest, org, vol)

	s.log.InfoContext(ctx, "delivery created",
		slog.String("delivery_id", created.ID.String()),
		slog.String("status", created.Status.String()),
	)

	return created, nil
}

// fanOutCreation persists the creation notifications. Failures are logged,
// not returned: notification records are polled, and a missing toast is
// cheaper than unwinding two committed writes.
func (s *Service) fanOutCreation(ctx context.Context, d domain.Delivery, rest domain.Restaurant, org domain.Organization, vol *domain.Volunteer) {
	fc := notify.FanoutContext{
		RestaurantUserID:   rest.UserID,
		OrganizationUserID: org.UserID,
		RestaurantName:     rest.Name,
		OrganizationName:   org.Name,
	}
	if vol != nil {
		userID := vol.UserID
		fc.VolunteerUserID = &userID
		fc.VolunteerName = vol.Name
	}

	drafts := notify.Fanout(d, domain.TransitionCreated, fc)
	if vol != nil {
		drafts = append(drafts, notify.Fanout(d, domain.TransitionVolunteerAssigned, fc)...)
	}

	if err := s.notifications.CreateBatch(ctx, drafts); err != nil {
		s.log.WarnContext(ctx, "creation fan-out failed",
			slog.String("delivery_id", d.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}

func (s *Service) requireRestaurant(ctx context.Context) (domain.Restaurant, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Restaurant{}, domain.ErrUnauthorized
	}
	if domain.Role(ctxutil.RoleFromCtx(ctx)) != domain.RoleRestaurant {
		return domain.Restaurant{}, domain.ErrForbidden
	}
	return s.restaurants.GetByUserID(ctx, userID)
}

// RetryFoodItemUpdate re-attempts the dependent write of a partial commit.
// Idempotent: an item that already reached MATCHED reports success.
func (s *Service) RetryFoodItemUpdate(ctx context.Context, deliveryID uuid.UUID) error {
	if deliveryID == uuid.Nil {
		return domain.NewValidationError("delivery_id", "required")
	}

	rest, err := s.requireRestaurant(ctx)
	if err != nil {
		return err
	}

	d, err := s.deliveries.GetByID(ctx, deliveryID)
	if err != nil {
		return err
	}
	if d.RestaurantID != rest.ID {
		return fmt.Errorf("delivery %s: %w", deliveryID, domain.ErrNotFound)
	}
	if d.FoodItemID == nil {
		return fmt.Errorf("delivery %s has no food item reference: %w", deliveryID, domain.ErrConflict)
	}

	err = s.foodItems.UpdateStatus(ctx, *d.FoodItemID, domain.FoodItemStatusAvailable, domain.FoodItemStatusMatched)
	if err == nil {
		s.log.InfoContext(ctx, "partial commit repaired",
			slog.String("delivery_id", deliveryID.String()),
			slog.String("food_item_id", d.FoodItemID.String()),
		)
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("retry food item update: %w", err)
	}

	// zero rows: either the item is gone or it already left AVAILABLE
	item, getErr := s.foodItems.GetByID(ctx, *d.FoodItemID)
	if getErr != nil {
		return getErr
	}
	if item.Status == domain.FoodItemStatusAvailable {
		return fmt.Errorf("retry food item update: %w", err)
	}

	// already matched (or further along); nothing left to repair
	return nil
}
