// Package request manages the standing food requests organizations post for
// restaurants to browse. Requests signal need; they never enter the delivery
// state machine.
package request

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	requestrepo "github.com/resqbite/resqbite-backend/internal/adapter/postgres/foodrequest"
	"github.com/resqbite/resqbite-backend/internal/domain"
	"github.com/resqbite/resqbite-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type requestRepo interface {
	Create(ctx context.Context, req domain.FoodRequest) (domain.FoodRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.FoodRequest, error)
	ListActive(ctx context.Context, filter requestrepo.ListFilter) ([]domain.FoodRequest, error)
	ListByOrganization(ctx context.Context, organizationID uuid.UUID) ([]domain.FoodRequest, error)
	UpdateStatus(ctx context.Context, id, organizationID uuid.UUID, from, to domain.RequestStatus) error
}

type organizationRepo interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (domain.Organization, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the food request use cases.
type Service struct {
	requests      requestRepo
	organizations organizationRepo
	log           *slog.Logger
}

// NewService creates a new food request service.
func NewService(log *slog.Logger, requests requestRepo, organizations organizationRepo) *Service {
	return &Service{
		requests:      requests,
		organizations: organizations,
		log:           log.With("service", "request"),
	}
}

func (s *Service) requireOrganization(ctx context.Context) (domain.Organization, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Organization{}, domain.ErrUnauthorized
	}
	if domain.Role(ctxutil.RoleFromCtx(ctx)) != domain.RoleOrganization {
		return domain.Organization{}, domain.ErrForbidden
	}
	return s.organizations.GetByUserID(ctx, userID)
}

// CreateInput holds the parameters for posting a food request.
type CreateInput struct {
	FoodTypes []string
	Quantity  string
	Urgency   domain.UrgencyTier
	Notes     *string
}

// Validate checks all fields and collects all errors.
func (i *CreateInput) Validate() error {
	var errs []domain.FieldError

	if len(i.FoodTypes) == 0 {
		errs = append(errs, domain.FieldError{Field: "food_types", Message: "at least one required"})
	}
	for _, t := range i.FoodTypes {
		if strings.TrimSpace(t) == "" {
			errs = append(errs, domain.FieldError{Field: "food_types", Message: "entries must not be empty"})
			break
		}
	}
	if strings.TrimSpace(i.Quantity) == "" {
		errs = append(errs, domain.FieldError{Field: "quantity", Message: "required"})
	}
	if !i.Urgency.IsValid() {
		errs = append(errs, domain.FieldError{Field: "urgency", Message: "must be LOW, MEDIUM or HIGH"})
	}
	if i.Notes != nil && len(*i.Notes) > 1000 {
		errs = append(errs, domain.FieldError{Field: "notes", Message: "max 1000 characters"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Create posts a new ACTIVE request for the calling organization.
func (s *Service) Create(ctx context.Context, input CreateInput) (domain.FoodRequest, error) {
	if err := input.Validate(); err != nil {
		return domain.FoodRequest{}, err
	}

	org, err := s.requireOrganization(ctx)
	if err != nil {
		return domain.FoodRequest{}, err
	}

	req := domain.FoodRequest{
		OrganizationID: org.ID,
		FoodTypes:      input.FoodTypes,
		Quantity:       input.Quantity,
		Urgency:        input.Urgency,
		Notes:          input.Notes,
		Status:         domain.RequestStatusActive,
	}

	created, err := s.requests.Create(ctx, req)
	if err != nil {
		return domain.FoodRequest{}, fmt.Errorf("create food request: %w", err)
	}

	s.log.InfoContext(ctx, "food request posted",
		slog.String("request_id", created.ID.String()),
		slog.String("urgency", created.Urgency.String()),
	)

	return created, nil
}

// ListInput narrows the active request listing.
type ListInput struct {
	Urgency *domain.UrgencyTier
	Limit   int
	Offset  int
}

// Validate checks all fields and collects all errors.
func (i *ListInput) Validate() error {
	var errs []domain.FieldError

	if i.Urgency != nil && !i.Urgency.IsValid() {
		errs = append(errs, domain.FieldError{Field: "urgency", Message: "must be LOW, MEDIUM or HIGH"})
	}
	if i.Limit < 0 || i.Limit > 200 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 200"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ListActive returns the board of open requests, most urgent first. Any
// authenticated actor may browse it; restaurants use it to decide where to
// send donations.
func (s *Service) ListActive(ctx context.Context, input ListInput) ([]domain.FoodRequest, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	return s.requests.ListActive(ctx, requestrepo.ListFilter{
		Urgency: input.Urgency,
		Limit:   input.Limit,
		Offset:  input.Offset,
	})
}

// ListMine returns every request the calling organization has posted.
func (s *Service) ListMine(ctx context.Context) ([]domain.FoodRequest, error) {
	org, err := s.requireOrganization(ctx)
	if err != nil {
		return nil, err
	}
	return s.requests.ListByOrganization(ctx, org.ID)
}

// Fulfill closes an ACTIVE request as satisfied. Owner only; a request that
// is not ACTIVE anymore (or not the caller's) reports ErrNotFound from the
// conditional update.
func (s *Service) Fulfill(ctx context.Context, id uuid.UUID) error {
	return s.close(ctx, id, domain.RequestStatusFulfilled)
}

// Cancel withdraws an ACTIVE request. Owner only.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) error {
	return s.close(ctx, id, domain.RequestStatusCancelled)
}

func (s *Service) close(ctx context.Context, id uuid.UUID, to domain.RequestStatus) error {
	if id == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}

	org, err := s.requireOrganization(ctx)
	if err != nil {
		return err
	}

	if err := s.requests.UpdateStatus(ctx, id, org.ID, domain.RequestStatusActive, to); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "food request closed",
		slog.String("request_id", id.String()),
		slog.String("status", to.String()),
	)

	return nil
}
