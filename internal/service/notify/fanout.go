// Package notify derives notification drafts from delivery lifecycle
// transitions. Fanout is pure: no I/O, deterministic for a given snapshot and
// kind except for the generated identities. Persistence belongs to the caller.
package notify

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/resqbite/resqbite-backend/internal/domain"
)

// FanoutContext carries the recipient user IDs and display names the message
// templates interpolate. The delivery row itself only holds party IDs.
type FanoutContext struct {
	RestaurantUserID   uuid.UUID
	OrganizationUserID uuid.UUID
	VolunteerUserID    *uuid.UUID

	RestaurantName   string
	OrganizationName string
	VolunteerName    string
}

// Fanout computes the notification drafts for one lifecycle transition.
//
//   - created: the organization learns a donation is incoming. Fired once at
//     creation regardless of whether a volunteer was attached.
//   - volunteer_assigned: restaurant and organization learn who the courier
//     is, by name, for which item.
//   - picked_up: restaurant and organization learn the item left the kitchen.
//   - delivered: the restaurant learns the donation arrived; the volunteer
//     learns the payment amount.
//
// Unknown kinds produce an empty list.
func Fanout(d domain.Delivery, kind domain.TransitionKind, fc FanoutContext) []domain.Notification {
	var drafts []domain.Notification

	draft := func(userID uuid.UUID, typ domain.NotificationType, title, message string) {
		deliveryID := d.ID
		drafts = append(drafts, domain.Notification{
			ID:         uuid.New(),
			UserID:     userID,
			Type:       typ,
			Title:      title,
			Message:    message,
			DeliveryID: &deliveryID,
		})
	}

	switch kind {
	case domain.TransitionCreated:
		draft(fc.OrganizationUserID, domain.NotificationTypeDeliveryCreated,
			"Incoming donation",
			fmt.Sprintf("%s is sending you %s (%s).",
				fc.RestaurantName, d.FoodItemName, d.Quantity))

	case domain.TransitionVolunteerAssigned:
		draft(fc.RestaurantUserID, domain.NotificationTypeVolunteerAssigned,
			"Volunteer assigned",
			fmt.Sprintf("%s will pick up %s.", fc.VolunteerName, d.FoodItemName))
		draft(fc.OrganizationUserID, domain.NotificationTypeVolunteerAssigned,
			"Volunteer assigned",
			fmt.Sprintf("%s will deliver %s from %s.",
				fc.VolunteerName, d.FoodItemName, fc.RestaurantName))

	case domain.TransitionPickedUp:
		draft(fc.RestaurantUserID, domain.NotificationTypePickedUp,
			"Donation picked up",
			fmt.Sprintf("%s has been picked up for delivery to %s.",
				d.FoodItemName, fc.OrganizationName))
		draft(fc.OrganizationUserID, domain.NotificationTypePickedUp,
			"Donation on the way",
			fmt.Sprintf("%s has been picked up from %s.",
				d.FoodItemName, fc.RestaurantName))

	case domain.TransitionDelivered:
		draft(fc.RestaurantUserID, domain.NotificationTypeDelivered,
			"Donation delivered",
			fmt.Sprintf("%s was delivered to %s. Thank you for donating!",
				d.FoodItemName, fc.OrganizationName))
		if fc.VolunteerUserID != nil {
			draft(*fc.VolunteerUserID, domain.NotificationTypeDelivered,
				"Delivery complete",
				fmt.Sprintf("You delivered %s and earned $%.2f.",
					d.FoodItemName, d.Payment))
		}
	}

	return drafts
}
