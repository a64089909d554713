package delivery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/resqbite/resqbite-backend/internal/domain"
	"github.com/resqbite/resqbite-backend/internal/service/notify"
)

// Advance moves a delivery exactly one step forward in its lifecycle on
// behalf of the assigned volunteer. The transition and all of its side
// effects commit in one transaction:
//
//   - the conditional status UPDATE keyed on (id, current status, volunteer)
//   - the food item status mirror on PICKED_UP and DELIVERED
//   - the volunteer earnings credit and completion count on DELIVERED
//   - the notification fan-out for the reached status
//
// Because the side effects only run after the conditional UPDATE touched a
// row, a redundant or raced invocation can never fire them twice.
func (s *Service) Advance(ctx context.Context, deliveryID uuid.UUID, to domain.DeliveryStatus) (domain.Delivery, error) {
	if err := validateAdvanceInput(deliveryID, to); err != nil {
		return domain.Delivery{}, err
	}

	vol, err := s.requireVolunteer(ctx)
	if err != nil {
		return domain.Delivery{}, fmt.Errorf("resolve volunteer: %w", err)
	}

	current, err := s.deliveries.GetByID(ctx, deliveryID)
	if err != nil {
		return domain.Delivery{}, err
	}

	actor := domain.Actor{UserID: vol.UserID, Role: domain.RoleVolunteer, PartyID: vol.ID}
	if err := current.ValidateAdvance(actor, to); err != nil {
		return domain.Delivery{}, err
	}

	var updated domain.Delivery

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var advErr error
		updated, advErr = s.deliveries.AdvanceStatus(txCtx, deliveryID, vol.ID, current.Status, to)
		if advErr != nil {
			return advErr
		}

		if mirror, ok := domain.MirroredFoodItemStatus(to); ok && updated.FoodItemID != nil {
			if mErr := s.mirrorFoodItem(txCtx, *updated.FoodItemID, mirror); mErr != nil {
				return mErr
			}
		}

		if to == domain.DeliveryStatusDelivered {
			credited, cErr := s.volunteers.CreditCompletion(txCtx, vol.ID, updated.Payment)
			if cErr != nil {
				return fmt.Errorf("credit volunteer: %w", cErr)
			}
			vol = credited
		}

		kind, ok := domain.KindForStatus(to)
		if !ok {
			return nil
		}

		fc, fcErr := s.fanoutContext(txCtx, updated, &vol)
		if fcErr != nil {
			return fmt.Errorf("fanout context: %w", fcErr)
		}

		drafts := notify.Fanout(updated, kind, fc)
		if nErr := s.notifications.CreateBatch(txCtx, drafts); nErr != nil {
			return fmt.Errorf("persist notifications: %w", nErr)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Delivery{}, s.classifyFailedAdvance(ctx, deliveryID, current.Status)
		}
		return domain.Delivery{}, err
	}

	s.log.InfoContext(ctx, "delivery advanced",
		slog.String("delivery_id", deliveryID.String()),
		slog.String("from", current.Status.String()),
		slog.String("to", to.String()),
	)

	return updated, nil
}

func validateAdvanceInput(deliveryID uuid.UUID, to domain.DeliveryStatus) error {
	var errs []domain.FieldError

	if deliveryID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "delivery_id", Message: "required"})
	}
	if !to.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	} else if to == domain.DeliveryStatusPending || to == domain.DeliveryStatusVolunteerAssigned {
		errs = append(errs, domain.FieldError{Field: "status", Message: "not reachable by advancing"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// mirrorFoodItem shadows a delivery transition onto the food item row. A
// vanished item is tolerated: the delivery keeps its denormalized snapshot.
func (s *Service) mirrorFoodItem(ctx context.Context, itemID uuid.UUID, to domain.FoodItemStatus) error {
	var from domain.FoodItemStatus
	switch to {
	case domain.FoodItemStatusPickedUp:
		from = domain.FoodItemStatusMatched
	case domain.FoodItemStatusDelivered:
		from = domain.FoodItemStatusPickedUp
	default:
		return nil
	}

	if err := s.foodItems.UpdateStatus(ctx, itemID, from, to); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.Warn("food item mirror skipped", slog.String("food_item_id", itemID.String()))
			return nil
		}
		return fmt.Errorf("mirror food item: %w", err)
	}

	return nil
}

// classifyFailedAdvance re-reads after a zero-row conditional UPDATE. The row
// either disappeared or changed under us between the precondition read and
// the write; the fresh status names the losing condition.
func (s *Service) classifyFailedAdvance(ctx context.Context, deliveryID uuid.UUID, from domain.DeliveryStatus) error {
	fresh, err := s.deliveries.GetByID(ctx, deliveryID)
	if err != nil {
		return err
	}
	return fmt.Errorf("delivery %s is %s, not %s: %w", deliveryID, fresh.Status, from, domain.ErrInvalidTransition)
}
