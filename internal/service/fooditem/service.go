// Package fooditem manages the donation catalog: restaurants post items,
// optionally passing photos through the quality assessor, and organizations
// browse what is still available. Status changes past AVAILABLE belong to the
// matching and delivery services, not here.
package fooditem

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/resqbite/resqbite-backend/internal/domain"
	"github.com/resqbite/resqbite-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type foodItemRepo interface {
	Create(ctx context.Context, item domain.FoodItem) (domain.FoodItem, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.FoodItem, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]domain.FoodItem, error)
	ListAvailable(ctx context.Context, now time.Time) ([]domain.FoodItem, error)
}

type restaurantRepo interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (domain.Restaurant, error)
}

type assessorClient interface {
	Assess(ctx context.Context, imageBase64 string) (domain.QualityAssessment, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the food item use cases.
type Service struct {
	foodItems   foodItemRepo
	restaurants restaurantRepo
	assessor    assessorClient
	log         *slog.Logger
}

// NewService creates a new food item service.
func NewService(
	log *slog.Logger,
	foodItems foodItemRepo,
	restaurants restaurantRepo,
	assessor assessorClient,
) *Service {
	return &Service{
		foodItems:   foodItems,
		restaurants: restaurants,
		assessor:    assessor,
		log:         log.With("service", "fooditem"),
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
