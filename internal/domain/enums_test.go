package domain

import "testing"

func TestRole_IsValid(t *testing.T) {
	valid := []Role{RoleRestaurant, RoleOrganization, RoleVolunteer}
	for _, r := range valid {
		if !r.IsValid() {
			t.Errorf("%s should be valid", r)
		}
	}
	if Role("admin").IsValid() {
		t.Error("admin should be invalid")
	}
	if Role("").IsValid() {
		t.Error("empty role should be invalid")
	}
}

func TestDeliveryStatus_IsValid(t *testing.T) {
	valid := []DeliveryStatus{
		DeliveryStatusPending, DeliveryStatusVolunteerAssigned,
		DeliveryStatusPickedUp, DeliveryStatusInTransit, DeliveryStatusDelivered,
	}
	for _, s := range valid {
		if !s.IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if DeliveryStatus("CANCELLED").IsValid() {
		t.Error("CANCELLED should be invalid: deliveries are never destroyed")
	}
}

func TestDeliveryStatus_IsTerminal(t *testing.T) {
	if !DeliveryStatusDelivered.IsTerminal() {
		t.Error("DELIVERED is terminal")
	}
	for _, s := range []DeliveryStatus{
		DeliveryStatusPending, DeliveryStatusVolunteerAssigned,
		DeliveryStatusPickedUp, DeliveryStatusInTransit,
	} {
		if s.IsTerminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestFoodItemStatus_IsValid(t *testing.T) {
	valid := []FoodItemStatus{
		FoodItemStatusAvailable, FoodItemStatusMatched,
		FoodItemStatusPickedUp, FoodItemStatusDelivered,
	}
	for _, s := range valid {
		if !s.IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if FoodItemStatus("EXPIRED").IsValid() {
		t.Error("EXPIRED should be invalid")
	}
}

func TestRequestStatus_IsValid(t *testing.T) {
	for _, s := range []RequestStatus{RequestStatusActive, RequestStatusFulfilled, RequestStatusCancelled} {
		if !s.IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if RequestStatus("DONE").IsValid() {
		t.Error("DONE should be invalid")
	}
}

func TestUrgencyTier_IsValid(t *testing.T) {
	for _, u := range []UrgencyTier{UrgencyLow, UrgencyMedium, UrgencyHigh} {
		if !u.IsValid() {
			t.Errorf("%s should be valid", u)
		}
	}
	if UrgencyTier("CRITICAL").IsValid() {
		t.Error("CRITICAL should be invalid")
	}
}

func TestNotificationType_IsValid(t *testing.T) {
	for _, n := range []NotificationType{
		NotificationTypeDeliveryCreated, NotificationTypeVolunteerAssigned,
		NotificationTypePickedUp, NotificationTypeDelivered,
	} {
		if !n.IsValid() {
			t.Errorf("%s should be valid", n)
		}
	}
	if NotificationType("IN_TRANSIT").IsValid() {
		t.Error("IN_TRANSIT is not a notification type: that step fires none")
	}
}

func TestQualityRating_IsValid(t *testing.T) {
	for _, r := range []QualityRating{QualityRatingExcellent, QualityRatingGood, QualityRatingFair, QualityRatingPoor} {
		if !r.IsValid() {
			t.Errorf("%s should be valid", r)
		}
	}
	if QualityRating("Terrible").IsValid() {
		t.Error("Terrible should be invalid")
	}
}
