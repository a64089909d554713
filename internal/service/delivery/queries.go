package delivery

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	deliveryrepo "github.com/resqbite/resqbite-backend/internal/adapter/postgres/delivery"
	"github.com/resqbite/resqbite-backend/internal/domain"
	"github.com/resqbite/resqbite-backend/pkg/ctxutil"
)

// ListInput holds the parameters for listing an actor's deliveries.
type ListInput struct {
	Status *domain.DeliveryStatus
	Limit  int
	Offset int
}

// Validate checks all fields and collects all errors.
func (i *ListInput) Validate() error {
	var errs []domain.FieldError

	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	}
	if i.Limit < 0 || i.Limit > 200 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 200"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// resolveActor maps the authenticated user to their marketplace party.
func (s *Service) resolveActor(ctx context.Context) (domain.Actor, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Actor{}, domain.ErrUnauthorized
	}

	role := domain.Role(ctxutil.RoleFromCtx(ctx))

	var partyID uuid.UUID
	switch role {
	case domain.RoleRestaurant:
		rest, err := s.restaurants.GetByUserID(ctx, userID)
		if err != nil {
			return domain.Actor{}, fmt.Errorf("resolve restaurant: %w", err)
		}
		partyID = rest.ID
	case domain.RoleOrganization:
		org, err := s.organizations.GetByUserID(ctx, userID)
		if err != nil {
			return domain.Actor{}, fmt.Errorf("resolve organization: %w", err)
		}
		partyID = org.ID
	case domain.RoleVolunteer:
		vol, err := s.volunteers.GetByUserID(ctx, userID)
		if err != nil {
			return domain.Actor{}, fmt.Errorf("resolve volunteer: %w", err)
		}
		partyID = vol.ID
	default:
		return domain.Actor{}, domain.ErrForbidden
	}

	return domain.Actor{UserID: userID, Role: role, PartyID: partyID}, nil
}

// Get returns a single delivery, enforcing row-level visibility: a party
// sees its own deliveries, and any volunteer may inspect a claimable one.
func (s *Service) Get(ctx context.Context, deliveryID uuid.UUID) (domain.Delivery, error) {
	if deliveryID == uuid.Nil {
		return domain.Delivery{}, domain.NewValidationError("delivery_id", "required")
	}

	actor, err := s.resolveActor(ctx)
	if err != nil {
		return domain.Delivery{}, err
	}

	d, err := s.deliveries.GetByID(ctx, deliveryID)
	if err != nil {
		return domain.Delivery{}, err
	}

	if !visibleTo(&d, actor) {
		// hide existence from outsiders
		return domain.Delivery{}, fmt.Errorf("delivery %s: %w", deliveryID, domain.ErrNotFound)
	}

	return d, nil
}

func visibleTo(d *domain.Delivery, actor domain.Actor) bool {
	switch actor.Role {
	case domain.RoleRestaurant:
		return d.RestaurantID == actor.PartyID
	case domain.RoleOrganization:
		return d.OrganizationID == actor.PartyID
	case domain.RoleVolunteer:
		if d.VolunteerID != nil && *d.VolunteerID == actor.PartyID {
			return true
		}
		return d.IsClaimable()
	}
	return false
}

// List returns the calling party's deliveries, newest first.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.Delivery, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	actor, err := s.resolveActor(ctx)
	if err != nil {
		return nil, err
	}

	return s.deliveries.ListForActor(ctx, actor, deliveryrepo.ListFilter{
		Status: input.Status,
		Limit:  input.Limit,
		Offset: input.Offset,
	})
}

// ListOpen returns the claimable pool. Volunteer-only: the open pool is the
// one cross-party read the claim flow needs.
func (s *Service) ListOpen(ctx context.Context) ([]domain.Delivery, error) {
	if _, err := s.requireVolunteer(ctx); err != nil {
		return nil, err
	}

	return s.deliveries.ListOpen(ctx)
}
