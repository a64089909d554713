package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Delivery tracks one food item's journey from a restaurant to an
// organization, optionally via a volunteer courier.
//
// FoodItemID is nullable: if the item record is later removed, the delivery
// keeps the denormalized FoodItemName/Quantity snapshot. DistanceKm,
// EstMinutes and Payment are generated once at creation and never recomputed.
type Delivery struct {
	ID             uuid.UUID
	FoodItemID     *uuid.UUID
	FoodItemName   string
	Quantity       string
	RestaurantID   uuid.UUID
	OrganizationID uuid.UUID
	VolunteerID    *uuid.UUID
	Status         DeliveryStatus
	PickupTime     *time.Time
	DeliveryTime   *time.Time
	Notes          *string
	DistanceKm     float64
	EstMinutes     int
	Payment        float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// InitialStatus returns the status a new delivery starts in. A delivery
// created with a volunteer already attached skips PENDING entirely; the
// state set available to an instance depends on how it was created.
func InitialStatus(hasVolunteer bool) DeliveryStatus {
	if hasVolunteer {
		return DeliveryStatusVolunteerAssigned
	}
	return DeliveryStatusPending
}

// HasVolunteer reports whether a courier is attached.
func (d *Delivery) HasVolunteer() bool { return d.VolunteerID != nil }

// IsClaimable reports whether the delivery sits in the open pool: pending
// with no volunteer attached.
func (d *Delivery) IsClaimable() bool {
	return d.Status == DeliveryStatusPending && d.VolunteerID == nil
}

// ValidateAdvance checks that the actor may move the delivery from its
// current status to the requested one. Only the assigned volunteer may
// advance, only by exactly one step, never backward. The PENDING →
// VOLUNTEER_ASSIGNED step is the claim operation and is not an advance.
func (d *Delivery) ValidateAdvance(actor Actor, to DeliveryStatus) error {
	if actor.Role != RoleVolunteer {
		return fmt.Errorf("role %s may not advance deliveries: %w", actor.Role, ErrInvalidTransition)
	}
	if d.VolunteerID == nil || *d.VolunteerID != actor.PartyID {
		return fmt.Errorf("volunteer %s is not assigned to delivery %s: %w",
			actor.PartyID, d.ID, ErrInvalidTransition)
	}
	next, ok := d.Status.Next()
	if !ok || next != to || d.Status == DeliveryStatusPending {
		return fmt.Errorf("delivery %s: %s -> %s: %w", d.ID, d.Status, to, ErrInvalidTransition)
	}
	return nil
}

// TransitionKind names a lifecycle event for notification fan-out.
type TransitionKind string

const (
	TransitionCreated           TransitionKind = "created"
	TransitionVolunteerAssigned TransitionKind = "volunteer_assigned"
	TransitionPickedUp          TransitionKind = "picked_up"
	TransitionDelivered         TransitionKind = "delivered"
)

// KindForStatus maps a reached status to its transition kind.
// PENDING has no kind: creation-as-open-request fires no transition event.
func KindForStatus(s DeliveryStatus) (TransitionKind, bool) {
	switch s {
	case DeliveryStatusVolunteerAssigned:
		return TransitionVolunteerAssigned, true
	case DeliveryStatusPickedUp:
		return TransitionPickedUp, true
	case DeliveryStatusDelivered:
		return TransitionDelivered, true
	}
	return "", false
}

// MirroredFoodItemStatus returns the food item status that shadows a
// delivery status, if the step mutates the item at all.
func MirroredFoodItemStatus(s DeliveryStatus) (FoodItemStatus, bool) {
	switch s {
	case DeliveryStatusPickedUp:
		return FoodItemStatusPickedUp, true
	case DeliveryStatusDelivered:
		return FoodItemStatusDelivered, true
	}
	return "", false
}

// Estimate holds the display-only figures generated once at creation.
type Estimate struct {
	DistanceKm float64
	EstMinutes int
	Payment    float64
}
