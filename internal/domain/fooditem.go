package domain

import (
	"time"

	"github.com/google/uuid"
)

// FoodItem is a donation posted by a restaurant. Its status is mutated only
// by the delivery lifecycle engine once a delivery exists for it.
type FoodItem struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
	Name         string
	Description  *string
	Quantity     string
	Unit         string
	Category     string
	PreparedAt   time.Time
	ExpiresAt    time.Time
	ImageURL     *string
	Assessment   *QualityAssessment
	Status       FoodItemStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsExpired reports whether the item's expiry timestamp has passed.
func (f *FoodItem) IsExpired(now time.Time) bool {
	return f.ExpiresAt.Before(now)
}
