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

// Claim assigns the calling volunteer to an open delivery. The database does
// the arbitration: a conditional UPDATE succeeds for exactly one concurrent
// claimer. Losers get domain.ErrAlreadyClaimed after an authoritative
// re-fetch; a delivery that never existed stays domain.ErrNotFound.
func (s *Service) Claim(ctx context.Context, deliveryID uuid.UUID) (domain.Delivery, error) {
	if deliveryID == uuid.Nil {
		return domain.Delivery{}, domain.NewValidationError("delivery_id", "required")
	}

	vol, err := s.requireVolunteer(ctx)
	if err != nil {
		return domain.Delivery{}, fmt.Errorf("resolve volunteer: %w", err)
	}

	var claimed domain.Delivery

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var claimErr error
		claimed, claimErr = s.deliveries.Claim(txCtx, deliveryID, vol.ID)
		if claimErr != nil {
			return claimErr
		}

		fc, fcErr := s.fanoutContext(txCtx, claimed, &vol)
		if fcErr != nil {
			return fmt.Errorf("fanout context: %w", fcErr)
		}

		drafts := notify.Fanout(claimed, domain.TransitionVolunteerAssigned, fc)
		if nErr := s.notifications.CreateBatch(txCtx, drafts); nErr != nil {
			return fmt.Errorf("persist notifications: %w", nErr)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Delivery{}, s.classifyFailedClaim(ctx, deliveryID)
		}
		return domain.Delivery{}, err
	}

	s.log.InfoContext(ctx, "delivery claimed",
		slog.String("delivery_id", claimed.ID.String()),
		slog.String("volunteer_id", vol.ID.String()),
	)

	return claimed, nil
}

// classifyFailedClaim tells "gone" from "lost the race" with a fresh read.
func (s *Service) classifyFailedClaim(ctx context.Context, deliveryID uuid.UUID) error {
	current, err := s.deliveries.GetByID(ctx, deliveryID)
	if err != nil {
		return err
	}
	if !current.IsClaimable() {
		return fmt.Errorf("delivery %s is %s: %w", deliveryID, current.Status, domain.ErrAlreadyClaimed)
	}
	// claimable again on re-read; the caller may simply retry
	return fmt.Errorf("delivery %s: claim lost a race: %w", deliveryID, domain.ErrAlreadyClaimed)
}
