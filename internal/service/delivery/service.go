// Package delivery implements the delivery lifecycle engine: role-gated
// status transitions, their side effects (food item mirroring, volunteer
// earnings credit, notification fan-out) and the open-pool claim flow.
package delivery

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	deliveryrepo "github.com/resqbite/resqbite-backend/internal/adapter/postgres/delivery"
	"github.com/resqbite/resqbite-backend/internal/domain"
	"github.com/resqbite/resqbite-backend/internal/service/notify"
	"github.com/resqbite/resqbite-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type deliveryRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Delivery, error)
	ListOpen(ctx context.Context) ([]domain.Delivery, error)
	ListForActor(ctx context.Context, actor domain.Actor, filter deliveryrepo.ListFilter) ([]domain.Delivery, error)
	Claim(ctx context.Context, deliveryID, volunteerID uuid.UUID) (domain.Delivery, error)
	AdvanceStatus(ctx context.Context, deliveryID, volunteerID uuid.UUID, from, to domain.DeliveryStatus) (domain.Delivery, error)
}

type foodItemRepo interface {
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.FoodItemStatus) error
}

type volunteerRepo interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (domain.Volunteer, error)
	CreditCompletion(ctx context.Context, id uuid.UUID, payment float64) (domain.Volunteer, error)
}

type restaurantRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Restaurant, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (domain.Restaurant, error)
}

type organizationRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Organization, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (domain.Organization, error)
}

type notificationRepo interface {
	CreateBatch(ctx context.Context, notifications []domain.Notification) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the delivery lifecycle business logic.
type Service struct {
	deliveries    deliveryRepo
	foodItems     foodItemRepo
	volunteers    volunteerRepo
	restaurants   restaurantRepo
	organizations organizationRepo
	notifications notificationRepo
	tx            txManager
	log           *slog.Logger
}

// NewService creates a new delivery lifecycle service.
func NewService(
	log *slog.Logger,
	deliveries deliveryRepo,
	foodItems foodItemRepo,
	volunteers volunteerRepo,
	restaurants restaurantRepo,
	organizations organizationRepo,
	notifications notificationRepo,
	tx txManager,
) *Service {
	return &Service{
		deliveries:    deliveries,
		foodItems:     foodItems,
		volunteers:    volunteers,
		restaurants:   restaurants,
		organizations: organizations,
		notifications: notifications,
		tx:            tx,
		log:           log.With("service", "delivery"),
	}
}

// requireVolunteer resolves the calling user to their volunteer profile.
func (s *Service) requireVolunteer(ctx context.Context) (domain.Volunteer, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Volunteer{}, domain.ErrUnauthorized
	}
	if domain.Role(ctxutil.RoleFromCtx(ctx)) != domain.RoleVolunteer {
		return domain.Volunteer{}, domain.ErrForbidden
	}
	return s.volunteers.GetByUserID(ctx, userID)
}

// fanoutContext assembles the recipient IDs and display names the
// notification templates need for one delivery.
func (s *Service) fanoutContext(ctx context.Context, d domain.Delivery, vol *domain.Volunteer) (notify.FanoutContext, error) {
	rest, err := s.restaurants.GetByID(ctx, d.RestaurantID)
	if err != nil {
		return notify.FanoutContext{}, err
	}
	org, err := s.organizations.GetByID(ctx, d.OrganizationID)
	if err != nil {
		return notify.FanoutContext{}, err
	}

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

	return fc, nil
}
