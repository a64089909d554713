// Package matching creates deliveries out of food items: the restaurant picks
// an organization (and optionally a volunteer), the service snapshots the item
// into a new delivery and marks the item MATCHED. The two writes are separate
// commits on purpose; see CreateDelivery.
package matching

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/resqbite/resqbite-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type deliveryRepo interface {
	Create(ctx context.Context, d domain.Delivery) (domain.Delivery, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Delivery, error)
}

type foodItemRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.FoodItem, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.FoodItemStatus) error
}

type volunteerRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Volunteer, error)
}

type restaurantRepo interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (domain.Restaurant, error)
}

type organizationRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Organization, error)
}

type notificationRepo interface {
	CreateBatch(ctx context.Context, notifications []domain.Notification) error
}

// Estimator generates the display-only distance/time/payment figures a new
// delivery is stamped with. Injectable so tests are deterministic.
type Estimator interface {
	Estimate() domain.Estimate
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the matching flow.
type Service struct {
	deliveries    deliveryRepo
	foodItems     foodItemRepo
	volunteers    volunteerRepo
	restaurants   restaurantRepo
	organizations organizationRepo
	notifications notificationRepo
	estimator     Estimator
	log           *slog.Logger
}

// NewService creates a new matching service.
func NewService(
	log *slog.Logger,
	deliveries deliveryRepo,
	foodItems foodItemRepo,
	volunteers volunteerRepo,
	restaurants restaurantRepo,
	organizations organizationRepo,
	notifications notificationRepo,
	estimator Estimator,
) *Service {
	return &Service{
		deliveries:    deliveries,
		foodItems:     foodItems,
		volunteers:    volunteers,
		restaurants:   restaurants,
		organizations: organizations,
		notifications: notifications,
		estimator:     estimator,
		log:           log.With("service", "matching"),
	}
}
