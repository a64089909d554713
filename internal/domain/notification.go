package domain

import (
	"time"

	"github.com/google/uuid"
)

// Notification is a persisted message produced by a lifecycle transition.
// After creation only the read flag may change; clearing is a bulk store
// operation scoped to a user.
type Notification struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Type       NotificationType
	Title      string
	Message    string
	IsRead     bool
	DeliveryID *uuid.UUID
	CreatedAt  time.Time
}
