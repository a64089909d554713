package domain

// Role identifies which side of the marketplace a user acts for.
type Role string

const (
	RoleRestaurant   Role = "restaurant"
	RoleOrganization Role = "organization"
	RoleVolunteer    Role = "volunteer"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleRestaurant, RoleOrganization, RoleVolunteer:
		return true
	}
	return false
}

// DeliveryStatus is the delivery lifecycle state.
// PENDING is only reachable by deliveries created without a volunteer.
type DeliveryStatus string

const (
	DeliveryStatusPending           DeliveryStatus = "PENDING"
	DeliveryStatusVolunteerAssigned DeliveryStatus = "VOLUNTEER_ASSIGNED"
	DeliveryStatusPickedUp          DeliveryStatus = "PICKED_UP"
	DeliveryStatusInTransit         DeliveryStatus = "IN_TRANSIT"
	DeliveryStatusDelivered         DeliveryStatus = "DELIVERED"
)

func (s DeliveryStatus) String() string { return string(s) }

func (s DeliveryStatus) IsValid() bool {
	switch s {
	case DeliveryStatusPending, DeliveryStatusVolunteerAssigned,
		DeliveryStatusPickedUp, DeliveryStatusInTransit, DeliveryStatusDelivered:
		return true
	}
	return false
}

// IsTerminal reports whether the status ends the lifecycle.
func (s DeliveryStatus) IsTerminal() bool { return s == DeliveryStatusDelivered }

// deliveryStatusRank orders the lifecycle sequence. Transitions may only move
// one rank forward, never backward and never skipping.
var deliveryStatusRank = map[DeliveryStatus]int{
	DeliveryStatusPending:           0,
	DeliveryStatusVolunteerAssigned: 1,
	DeliveryStatusPickedUp:          2,
	DeliveryStatusInTransit:         3,
	DeliveryStatusDelivered:         4,
}

// Rank returns the position of the status in the lifecycle order,
// or -1 for an unknown status.
func (s DeliveryStatus) Rank() int {
	r, ok := deliveryStatusRank[s]
	if !ok {
		return -1
	}
	return r
}

// Next returns the immediate successor status. ok is false for the terminal
// status and for unknown values.
func (s DeliveryStatus) Next() (DeliveryStatus, bool) {
	switch s {
	case DeliveryStatusPending:
		return DeliveryStatusVolunteerAssigned, true
	case DeliveryStatusVolunteerAssigned:
		return DeliveryStatusPickedUp, true
	case DeliveryStatusPickedUp:
		return DeliveryStatusInTransit, true
	case DeliveryStatusInTransit:
		return DeliveryStatusDelivered, true
	}
	return "", false
}

// FoodItemStatus mirrors the associated delivery's progress.
type FoodItemStatus string

const (
	FoodItemStatusAvailable FoodItemStatus = "AVAILABLE"
	FoodItemStatusMatched   FoodItemStatus = "MATCHED"
	FoodItemStatusPickedUp  FoodItemStatus = "PICKED_UP"
	FoodItemStatusDelivered FoodItemStatus = "DELIVERED"
)

func (s FoodItemStatus) String() string { return string(s) }

func (s FoodItemStatus) IsValid() bool {
	switch s {
	case FoodItemStatusAvailable, FoodItemStatusMatched,
		FoodItemStatusPickedUp, FoodItemStatusDelivered:
		return true
	}
	return false
}

// RequestStatus is the standing state of a food request.
type RequestStatus string

const (
	RequestStatusActive    RequestStatus = "ACTIVE"
	RequestStatusFulfilled RequestStatus = "FULFILLED"
	RequestStatusCancelled RequestStatus = "CANCELLED"
)

func (s RequestStatus) String() string { return string(s) }

func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusActive, RequestStatusFulfilled, RequestStatusCancelled:
		return true
	}
	return false
}

// UrgencyTier ranks how quickly an organization needs a request fulfilled.
type UrgencyTier string

const (
	UrgencyLow    UrgencyTier = "LOW"
	UrgencyMedium UrgencyTier = "MEDIUM"
	UrgencyHigh   UrgencyTier = "HIGH"
)

func (u UrgencyTier) String() string { return string(u) }

func (u UrgencyTier) IsValid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	}
	return false
}

// NotificationType tags a notification with the lifecycle event that
// produced it. The set is closed; notifications are only ever created as a
// side effect of a lifecycle transition.
type NotificationType string

const (
	NotificationTypeDeliveryCreated   NotificationType = "DELIVERY_CREATED"
	NotificationTypeVolunteerAssigned NotificationType = "VOLUNTEER_ASSIGNED"
	NotificationTypePickedUp          NotificationType = "PICKED_UP"
	NotificationTypeDelivered         NotificationType = "DELIVERED"
)

func (t NotificationType) String() string { return string(t) }

func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationTypeDeliveryCreated, NotificationTypeVolunteerAssigned,
		NotificationTypePickedUp, NotificationTypeDelivered:
		return true
	}
	return false
}

// QualityRating is the coarse verdict of the quality assessor.
type QualityRating string

const (
	QualityRatingExcellent QualityRating = "Excellent"
	QualityRatingGood      QualityRating = "Good"
	QualityRatingFair      QualityRating = "Fair"
	QualityRatingPoor      QualityRating = "Poor"
)

func (r QualityRating) String() string { return string(r) }

func (r QualityRating) IsValid() bool {
	switch r {
	case QualityRatingExcellent, QualityRatingGood, QualityRatingFair, QualityRatingPoor:
		return true
	}
	return false
}
