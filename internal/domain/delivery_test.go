package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestInitialStatus(t *testing.T) {
	if got := InitialStatus(true); got != DeliveryStatusVolunteerAssigned {
		t.Errorf("with volunteer: got %s, want VOLUNTEER_ASSIGNED", got)
	}
	if got := InitialStatus(false); got != DeliveryStatusPending {
		t.Errorf("without volunteer: got %s, want PENDING", got)
	}
}

func TestDeliveryStatus_Next(t *testing.T) {
	tests := []struct {
		from   DeliveryStatus
		want   DeliveryStatus
		wantOK bool
	}{
		{DeliveryStatusPending, DeliveryStatusVolunteerAssigned, true},
		{DeliveryStatusVolunteerAssigned, DeliveryStatusPickedUp, true},
		{DeliveryStatusPickedUp, DeliveryStatusInTransit, true},
		{DeliveryStatusInTransit, DeliveryStatusDelivered, true},
		{DeliveryStatusDelivered, "", false},
		{DeliveryStatus("BOGUS"), "", false},
	}

	for _, tt := range tests {
		got, ok := tt.from.Next()
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("Next(%s): got (%s, %v), want (%s, %v)", tt.from, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestDeliveryStatus_Rank_Ordered(t *testing.T) {
	order := []DeliveryStatus{
		DeliveryStatusPending,
		DeliveryStatusVolunteerAssigned,
		DeliveryStatusPickedUp,
		DeliveryStatusInTransit,
		DeliveryStatusDelivered,
	}
	for i, s := range order {
		if s.Rank() != i {
			t.Errorf("Rank(%s): got %d, want %d", s, s.Rank(), i)
		}
	}
	if DeliveryStatus("BOGUS").Rank() != -1 {
		t.Error("Rank of unknown status should be -1")
	}
}

func TestDelivery_ValidateAdvance(t *testing.T) {
	volunteerID := uuid.New()
	otherVolunteerID := uuid.New()

	assigned := func(status DeliveryStatus) *Delivery {
		return &Delivery{
			ID:          uuid.New(),
			VolunteerID: &volunteerID,
			Status:      status,
		}
	}

	volunteer := Actor{UserID: uuid.New(), Role: RoleVolunteer, PartyID: volunteerID}

	tests := []struct {
		name    string
		d       *Delivery
		actor   Actor
		to      DeliveryStatus
		wantErr bool
	}{
		{"assigned to picked_up", assigned(DeliveryStatusVolunteerAssigned), volunteer, DeliveryStatusPickedUp, false},
		{"picked_up to in_transit", assigned(DeliveryStatusPickedUp), volunteer, DeliveryStatusInTransit, false},
		{"in_transit to delivered", assigned(DeliveryStatusInTransit), volunteer, DeliveryStatusDelivered, false},
		{"skip forward", assigned(DeliveryStatusVolunteerAssigned), volunteer, DeliveryStatusInTransit, true},
		{"backward", assigned(DeliveryStatusInTransit), volunteer, DeliveryStatusPickedUp, true},
		{"already delivered", assigned(DeliveryStatusDelivered), volunteer, DeliveryStatusDelivered, true},
		{"pending is claim not advance", &Delivery{Status: DeliveryStatusPending, VolunteerID: &volunteerID}, volunteer, DeliveryStatusVolunteerAssigned, true},
		{"wrong volunteer", assigned(DeliveryStatusVolunteerAssigned), Actor{Role: RoleVolunteer, PartyID: otherVolunteerID}, DeliveryStatusPickedUp, true},
		{"no volunteer attached", &Delivery{Status: DeliveryStatusVolunteerAssigned}, volunteer, DeliveryStatusPickedUp, true},
		{"restaurant may not advance", assigned(DeliveryStatusVolunteerAssigned), Actor{Role: RoleRestaurant, PartyID: volunteerID}, DeliveryStatusPickedUp, true},
		{"organization may not advance", assigned(DeliveryStatusVolunteerAssigned), Actor{Role: RoleOrganization, PartyID: volunteerID}, DeliveryStatusPickedUp, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.d.ValidateAdvance(tt.actor, tt.to)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTransition) {
					t.Errorf("got %v, want ErrInvalidTransition", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestDelivery_IsClaimable(t *testing.T) {
	v := uuid.New()
	tests := []struct {
		name string
		d    Delivery
		want bool
	}{
		{"pending unassigned", Delivery{Status: DeliveryStatusPending}, true},
		{"pending with volunteer", Delivery{Status: DeliveryStatusPending, VolunteerID: &v}, false},
		{"assigned", Delivery{Status: DeliveryStatusVolunteerAssigned}, false},
		{"delivered", Delivery{Status: DeliveryStatusDelivered}, false},
	}
	for _, tt := range tests {
		if got := tt.d.IsClaimable(); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestKindForStatus(t *testing.T) {
	tests := []struct {
		s      DeliveryStatus
		want   TransitionKind
		wantOK bool
	}{
		{DeliveryStatusVolunteerAssigned, TransitionVolunteerAssigned, true},
		{DeliveryStatusPickedUp, TransitionPickedUp, true},
		{DeliveryStatusDelivered, TransitionDelivered, true},
		{DeliveryStatusPending, "", false},
		{DeliveryStatusInTransit, "", false},
	}
	for _, tt := range tests {
		got, ok := KindForStatus(tt.s)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("KindForStatus(%s): got (%s, %v), want (%s, %v)", tt.s, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestMirroredFoodItemStatus(t *testing.T) {
	if s, ok := MirroredFoodItemStatus(DeliveryStatusPickedUp); !ok || s != FoodItemStatusPickedUp {
		t.Errorf("picked_up: got (%s, %v)", s, ok)
	}
	if s, ok := MirroredFoodItemStatus(DeliveryStatusDelivered); !ok || s != FoodItemStatusDelivered {
		t.Errorf("delivered: got (%s, %v)", s, ok)
	}
	if _, ok := MirroredFoodItemStatus(DeliveryStatusInTransit); ok {
		t.Error("in_transit should not mirror to the food item")
	}
	if _, ok := MirroredFoodItemStatus(DeliveryStatusVolunteerAssigned); ok {
		t.Error("volunteer_assigned should not mirror to the food item")
	}
}
