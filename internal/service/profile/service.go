// Package profile exposes the caller's own account: the user row plus the
// role-specific party row. Volunteers additionally toggle their availability
// here, which gates direct assignment at matching time.
package profile

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/resqbite/resqbite-backend/internal/domain"
	"github.com/resqbite/resqbite-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
}

type restaurantRepo interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (domain.Restaurant, error)
	UpdateContact(ctx context.Context, rest domain.Restaurant) (domain.Restaurant, error)
}

type organizationRepo interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (domain.Organization, error)
	UpdateContact(ctx context.Context, org domain.Organization) (domain.Organization, error)
}

type volunteerRepo interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (domain.Volunteer, error)
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Profile is a user together with its role-specific party row. Exactly one
// of the party pointers is set, matching User.Role.
type Profile struct {
	User         domain.User
	Restaurant   *domain.Restaurant
	Organization *domain.Organization
	Volunteer    *domain.Volunteer
}

// Service implements the profile use cases.
type Service struct {
	users         userRepo
	restaurants   restaurantRepo
	organizations organizationRepo
	volunteers    volunteerRepo
	log           *slog.Logger
}

// NewService creates a new profile service.
func NewService(
	log *slog.Logger,
	users userRepo,
	restaurants restaurantRepo,
	organizations organizationRepo,
	volunteers volunteerRepo,
) *Service {
	return &Service{
		users:         users,
		restaurants:   restaurants,
		organizations: organizations,
		volunteers:    volunteers,
		log:           log.With("service", "profile"),
	}
}

// Me returns the caller's user row and party row.
func (s *Service) Me(ctx context.Context) (Profile, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return Profile{}, domain.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return Profile{}, err
	}

	p := Profile{User: user}
	switch user.Role {
	case domain.RoleRestaurant:
		rest, err := s.restaurants.GetByUserID(ctx, userID)
		if err != nil {
			return Profile{}, err
		}
		p.Restaurant = &rest
	case domain.RoleOrganization:
		org, err := s.organizations.GetByUserID(ctx, userID)
		if err != nil {
			return Profile{}, err
		}
		p.Organization = &org
	case domain.RoleVolunteer:
		vol, err := s.volunteers.GetByUserID(ctx, userID)
		if err != nil {
			return Profile{}, err
		}
		p.Volunteer = &vol
	default:
		return Profile{}, fmt.Errorf("user %s has unknown role %q: %w", userID, user.Role, domain.ErrConflict)
	}

	return p, nil
}

// UpdateContactInput holds the editable contact fields. Description only
// applies to organizations.
type UpdateContactInput struct {
	Name        string
	Address     string
	Phone       *string
	Description *string
}

// Validate checks all fields and collects all errors.
func (i *UpdateContactInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if strings.TrimSpace(i.Address) == "" {
		errs = append(errs, domain.FieldError{Field: "address", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateContact replaces the calling restaurant's or organization's contact
// fields. Volunteers have no contact card beyond phone and report
// ErrForbidden here.
func (s *Service) UpdateContact(ctx context.Context, input UpdateContactInput) (Profile, error) {
	if err := input.Validate(); err != nil {
		return Profile{}, err
	}

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return Profile{}, domain.ErrUnauthorized
	}

	switch domain.Role(ctxutil.RoleFromCtx(ctx)) {
	case domain.RoleRestaurant:
		rest, err := s.restaurants.GetByUserID(ctx, userID)
		if err != nil {
			return Profile{}, err
		}
		rest.Name = input.Name
		rest.Address = input.Address
		rest.Phone = input.Phone
		updated, err := s.restaurants.UpdateContact(ctx, rest)
		if err != nil {
			return Profile{}, err
		}
		return Profile{Restaurant: &updated}, nil
	case domain.RoleOrganization:
		org, err := s.organizations.GetByUserID(ctx, userID)
		if err != nil {
			return Profile{}, err
		}
		org.Name = input.Name
		org.Address = input.Address
		org.Phone = input.Phone
		org.Description = input.Description
		updated, err := s.organizations.UpdateContact(ctx, org)
		if err != nil {
			return Profile{}, err
		}
		return Profile{Organization: &updated}, nil
	default:
		return Profile{}, domain.ErrForbidden
	}
}

// SetAvailability toggles the calling volunteer's availability flag.
func (s *Service) SetAvailability(ctx context.Context, available bool) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if domain.Role(ctxutil.RoleFromCtx(ctx)) != domain.RoleVolunteer {
		return domain.ErrForbidden
	}

	vol, err := s.volunteers.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.volunteers.SetAvailability(ctx, vol.ID, available); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "volunteer availability changed",
		slog.String("volunteer_id", vol.ID.String()),
		slog.Bool("available", available),
	)

	return nil
}
