package rest

import (
	"time"

	"github.com/resqbite/resqbite-backend/internal/domain"
)

type deliveryResponse struct {
	ID             string     `json:"id"`
	FoodItemID     *string    `json:"foodItemId,omitempty"`
	FoodItemName   string     `json:"foodItemName"`
	Quantity       string     `json:"quantity"`
	RestaurantID   string     `json:"restaurantId"`
	OrganizationID string     `json:"organizationId"`
	VolunteerID    *string    `json:"volunteerId,omitempty"`
	Status         string     `json:"status"`
	PickupTime     *time.Time `json:"pickupTime,omitempty"`
	DeliveryTime   *time.Time `json:"deliveryTime,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
	DistanceKm     float64    `json:"distanceKm"`
	EstMinutes     int        `json:"estMinutes"`
	Payment        float64    `json:"payment"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func toDeliveryResponse(d domain.Delivery) deliveryResponse {
	resp := deliveryResponse{
		ID:             d.ID.String(),
		FoodItemName:   d.FoodItemName,
		Quantity:       d.Quantity,
		RestaurantID:   d.RestaurantID.String(),
		OrganizationID: d.OrganizationID.String(),
		Status:         d.Status.String(),
		PickupTime:     d.PickupTime,
		DeliveryTime:   d.DeliveryTime,
		Notes:          d.Notes,
		DistanceKm:     d.DistanceKm,
		EstMinutes:     d.EstMinutes,
		Payment:        d.Payment,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
	if d.FoodItemID != nil {
		s := d.FoodItemID.String()
		resp.FoodItemID = &s
	}
	if d.VolunteerID != nil {
		s := d.VolunteerID.String()
		resp.VolunteerID = &s
	}
	return resp
}

func toDeliveryResponses(ds []domain.Delivery) []deliveryResponse {
	out := make([]deliveryResponse, 0, len(ds))
	for _, d := range ds {
		out = append(out, toDeliveryResponse(d))
	}
	return out
}

type foodItemResponse struct {
	ID           string                    `json:"id"`
	RestaurantID string                    `json:"restaurantId"`
	Name         string                    `json:"name"`
	Description  *string                   `json:"description,omitempty"`
	Quantity     string                    `json:"quantity"`
	Unit         string                    `json:"unit"`
	Category     string                    `json:"category"`
	PreparedAt   time.Time                 `json:"preparedAt"`
	ExpiresAt    time.Time                 `json:"expiresAt"`
	ImageURL     *string                   `json:"imageUrl,omitempty"`
	Assessment   *domain.QualityAssessment `json:"assessment,omitempty"`
	Status       string                    `json:"status"`
	CreatedAt    time.Time                 `json:"createdAt"`
	UpdatedAt    time.Time                 `json:"updatedAt"`
}

func toFoodItemResponse(f domain.FoodItem) foodItemResponse {
	return foodItemResponse{
		ID:           f.ID.String(),
		RestaurantID: f.RestaurantID.String(),
		Name:         f.Name,
		Description:  f.Description,
		Quantity:     f.Quantity,
		Unit:         f.Unit,
		Category:     f.Category,
		PreparedAt:   f.PreparedAt,
		ExpiresAt:    f.ExpiresAt,
		ImageURL:     f.ImageURL,
		Assessment:   f.Assessment,
		Status:       f.Status.String(),
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

func toFoodItemResponses(fs []domain.FoodItem) []foodItemResponse {
	out := make([]foodItemResponse, 0, len(fs))
	for _, f := range fs {
		out = append(out, toFoodItemResponse(f))
	}
	return out
}

type foodRequestResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organizationId"`
	FoodTypes      []string  `json:"foodTypes"`
	Quantity       string    `json:"quantity"`
	Urgency        string    `json:"urgency"`
	Notes          *string   `json:"notes,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func toFoodRequestResponse(r domain.FoodRequest) foodRequestResponse {
	return foodRequestResponse{
		ID:             r.ID.String(),
		OrganizationID: r.OrganizationID.String(),
		FoodTypes:      r.FoodTypes,
		Quantity:       r.Quantity,
		Urgency:        r.Urgency.String(),
		Notes:          r.Notes,
		Status:         r.Status.String(),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func toFoodRequestResponses(rs []domain.FoodRequest) []foodRequestResponse {
	out := make([]foodRequestResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, toFoodRequestResponse(r))
	}
	return out
}

type notificationResponse struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	IsRead     bool      `json:"isRead"`
	DeliveryID *string   `json:"deliveryId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toNotificationResponse(n domain.Notification) notificationResponse {
	resp := notificationResponse{
		ID:        n.ID.String(),
		Type:      n.Type.String(),
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
	if n.DeliveryID != nil {
		s := n.DeliveryID.String()
		resp.DeliveryID = &s
	}
	return resp
}

func toNotificationResponses(ns []domain.Notification) []notificationResponse {
	out := make([]notificationResponse, 0, len(ns))
	for _, n := range ns {
		out = append(out, toNotificationResponse(n))
	}
	return out
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{ID: u.ID.String(), Email: u.Email, Role: u.Role.String()}
}

type restaurantResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Phone   *string `json:"phone,omitempty"`
}

func toRestaurantResponse(r domain.Restaurant) restaurantResponse {
	return restaurantResponse{ID: r.ID.String(), Name: r.Name, Address: r.Address, Phone: r.Phone}
}

type organizationResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Phone       *string `json:"phone,omitempty"`
	Description *string `json:"description,omitempty"`
}

func toOrganizationResponse(o domain.Organization) organizationResponse {
	return organizationResponse{
		ID: o.ID.String(), Name: o.Name, Address: o.Address,
		Phone: o.Phone, Description: o.Description,
	}
}

type volunteerResponse struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Phone               *string `json:"phone,omitempty"`
	IsAvailable         bool    `json:"isAvailable"`
	Earnings            float64 `json:"earnings"`
	CompletedDeliveries int     `json:"completedDeliveries"`
}

func toVolunteerResponse(v domain.Volunteer) volunteerResponse {
	return volunteerResponse{
		ID: v.ID.String(), Name: v.Name, Phone: v.Phone,
		IsAvailable: v.IsAvailable, Earnings: v.Earnings,
		CompletedDeliveries: v.CompletedDeliveries,
	}
}
