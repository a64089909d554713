package domain

import (
	"time"

	"github.com/google/uuid"
)

// FoodRequest is a standing signal from an organization that restaurants
// browse. It is independent of the delivery state machine.
type FoodRequest struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	FoodTypes      []string
	Quantity       string
	Urgency        UrgencyTier
	Notes          *string
	Status         RequestStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
