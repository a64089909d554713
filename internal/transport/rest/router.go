package rest

import "net/http"

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth         *AuthHandler
	Delivery     *DeliveryHandler
	FoodItem     *FoodItemHandler
	Request      *RequestHandler
	Notification *NotificationHandler
	Profile      *ProfileHandler
	Health       *HealthHandler
}

// NewRouter mounts all REST routes on a ServeMux. Authentication is enforced
// by the services, not the router; the auth middleware only populates the
// context.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)

	mux.HandleFunc("POST /api/v1/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/v1/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/v1/auth/refresh", h.Auth.Refresh)
	mux.HandleFunc("POST /api/v1/auth/logout", h.Auth.Logout)

	mux.HandleFunc("GET /api/v1/me", h.Profile.Me)
	mux.HandleFunc("PATCH /api/v1/me", h.Profile.UpdateContact)
	mux.HandleFunc("POST /api/v1/me/availability", h.Profile.SetAvailability)

	mux.HandleFunc("POST /api/v1/food-items", h.FoodItem.Create)
	mux.HandleFunc("GET /api/v1/food-items", h.FoodItem.ListMine)
	mux.HandleFunc("GET /api/v1/food-items/available", h.FoodItem.ListAvailable)
	mux.HandleFunc("GET /api/v1/food-items/{id}", h.FoodItem.Get)
	mux.HandleFunc("POST /api/v1/assess-food-quality", h.FoodItem.Assess)

	mux.HandleFunc("POST /api/v1/deliveries", h.Delivery.Create)
	mux.HandleFunc("GET /api/v1/deliveries", h.Delivery.List)
	mux.HandleFunc("GET /api/v1/deliveries/open", h.Delivery.ListOpen)
	mux.HandleFunc("GET /api/v1/deliveries/{id}", h.Delivery.Get)
	mux.HandleFunc("POST /api/v1/deliveries/{id}/claim", h.Delivery.Claim)
	mux.HandleFunc("POST /api/v1/deliveries/{id}/advance", h.Delivery.Advance)
	mux.HandleFunc("POST /api/v1/deliveries/{id}/retry-food-item", h.Delivery.RetryFoodItem)

	mux.HandleFunc("POST /api/v1/requests", h.Request.Create)
	mux.HandleFunc("GET /api/v1/requests", h.Request.ListMine)
	mux.HandleFunc("GET /api/v1/requests/active", h.Request.ListActive)
	mux.HandleFunc("POST /api/v1/requests/{id}/fulfill", h.Request.Fulfill)
	mux.HandleFunc("POST /api/v1/requests/{id}/cancel", h.Request.Cancel)

	mux.HandleFunc("GET /api/v1/notifications", h.Notification.List)
	mux.HandleFunc("GET /api/v1/notifications/unread-count", h.Notification.UnreadCount)
	mux.HandleFunc("POST /api/v1/notifications/{id}/read", h.Notification.MarkRead)
	mux.HandleFunc("POST /api/v1/notifications/read-all", h.Notification.MarkAllRead)
	mux.HandleFunc("DELETE /api/v1/notifications", h.Notification.ClearAll)

	return mux
}
