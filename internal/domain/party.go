package domain

import (
	"time"

	"github.com/google/uuid"
)

// Restaurant is a food donor profile.
type Restaurant struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Address   string
	Phone     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Organization is a shelter or food bank receiving donations.
type Organization struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Address     string
	Phone       *string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Volunteer is a delivery courier.
//
// Earnings is monotonically non-decreasing and CompletedDeliveries is
// incremented exactly once per delivery reaching DELIVERED; the two fields
// are only ever mutated together by that single transition and never
// adjusted retroactively.
type Volunteer struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	Name                string
	Phone               *string
	IsAvailable         bool
	Earnings            float64
	CompletedDeliveries int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
