package fooditem

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/resqbite/resqbite-backend/internal/domain"
	"github.com/resqbite/resqbite-backend/pkg/ctxutil"
)

// Get returns a single food item. Any authenticated actor may look one up;
// organizations need it to inspect a donation before requesting a match.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.FoodItem, error) {
	if id == uuid.Nil {
		return domain.FoodItem{}, domain.NewValidationError("id", "required")
	}
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return domain.FoodItem{}, domain.ErrUnauthorized
	}
	return s.foodItems.GetByID(ctx, id)
}

// ListAvailable returns the unexpired AVAILABLE catalog, soonest-expiring
// first.
func (s *Service) ListAvailable(ctx context.Context) ([]domain.FoodItem, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	return s.foodItems.ListAvailable(ctx, time.Now())
}

// ListMine returns every item the calling restaurant has posted, regardless
// of status.
func (s *Service) ListMine(ctx context.Context) ([]domain.FoodItem, error) {
	rest, err := s.requireRestaurant(ctx)
	if err != nil {
		return nil, err
	}
	return s.foodItems.ListByRestaurant(ctx, rest.ID)
}
