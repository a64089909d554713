package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/resqbite/resqbite-backend/internal/domain"
	"github.com/resqbite/resqbite-backend/internal/service/delivery"
	"github.com/resqbite/resqbite-backend/internal/service/matching"
)

// lifecycleService is the delivery state machine surface.
type lifecycleService interface {
	Get(ctx context.Context, deliveryID uuid.UUID) (domain.Delivery, error)
	List(ctx context.Context, input delivery.ListInput) ([]domain.Delivery, error)
	ListOpen(ctx context.Context) ([]domain.Delivery, error)
	Claim(ctx context.Context, deliveryID uuid.UUID) (domain.Delivery, error)
	Advance(ctx context.Context, deliveryID uuid.UUID, to domain.DeliveryStatus) (domain.Delivery, error)
}

// matchingService covers delivery creation and the partial commit repair.
type matchingService interface {
	CreateDelivery(ctx context.Context, input matching.CreateDeliveryInput) (domain.Delivery, error)
	RetryFoodItemUpdate(ctx context.Context, deliveryID uuid.UUID) error
}

// DeliveryHandler serves delivery REST endpoints.
type DeliveryHandler struct {
	lifecycle lifecycleService
	matching  matchingService
	log       *slog.Logger
}

// NewDeliveryHandler creates a DeliveryHandler.
func NewDeliveryHandler(lifecycle lifecycleService, matching matchingService, logger *slog.Logger) *DeliveryHandler {
	return &DeliveryHandler{
		lifecycle: lifecycle,
		matching:  matching,
		log:       logger.With("handler", "delivery"),
	}
}

type createDeliveryRequest struct {
	FoodItemID     string  `json:"foodItemId"`
	OrganizationID string  `json:"organizationId"`
	VolunteerID    *string `json:"volunteerId,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

type advanceRequest struct {
	Status string `json:"status"`
}

// Create handles POST /deliveries. On a partial commit the response is 207
// with the committed delivery and the coordinates for the retry endpoint.
func (h *DeliveryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createDeliveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := matching.CreateDeliveryInput{Notes: req.Notes}
	var err error
	if input.FoodItemID, err = uuid.Parse(req.FoodItemID); err != nil {
		writeError(w, http.StatusBadRequest, "invalid foodItemId")
		return
	}
	if input.OrganizationID, err = uuid.Parse(req.OrganizationID); err != nil {
		writeError(w, http.StatusBadRequest, "invalid organizationId")
		return
	}
	if req.VolunteerID != nil {
		volID, err := uuid.Parse(*req.VolunteerID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid volunteerId")
			return
		}
		input.VolunteerID = &volID
	}

	created, err := h.matching.CreateDelivery(r.Context(), input)
	if err != nil {
		var pce *domain.PartialCommitError
		if errors.As(err, &pce) {
			writeJSON(w, http.StatusMultiStatus, partialCommitResponse{
				Error:      "delivery created but food item update failed",
				DeliveryID: pce.DeliveryID.String(),
				FoodItemID: pce.FoodItemID.String(),
				Delivery:   toDeliveryResponse(created),
				RetryPath:  "/api/v1/deliveries/" + pce.DeliveryID.String() + "/retry-food-item",
			})
			return
		}
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toDeliveryResponse(created))
}

// List handles GET /deliveries. Results are scoped to the caller's party.
func (h *DeliveryHandler) List(w http.ResponseWriter, r *http.Request) {
	var input delivery.ListInput

	if s := r.URL.Query().Get("status"); s != "" {
		status := domain.DeliveryStatus(s)
		input.Status = &status
	}
	if s := r.URL.Query().Get("limit"); s != "" {
		input.Limit, _ = strconv.Atoi(s)
	}
	if s := r.URL.Query().Get("offset"); s != "" {
		input.Offset, _ = strconv.Atoi(s)
	}

	deliveries, err := h.lifecycle.List(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toDeliveryResponses(deliveries))
}

// ListOpen handles GET /deliveries/open, the claimable pool for volunteers.
func (h *DeliveryHandler) ListOpen(w http.ResponseWriter, r *http.Request) {
	deliveries, err := h.lifecycle.ListOpen(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toDeliveryResponses(deliveries))
}

// Get handles GET /deliveries/{id}.
func (h *DeliveryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	d, err := h.lifecycle.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toDeliveryResponse(d))
}

// Claim handles POST /deliveries/{id}/claim.
func (h *DeliveryHandler) Claim(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	d, err := h.lifecycle.Claim(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toDeliveryResponse(d))
}

// Advance handles POST /deliveries/{id}/advance.
func (h *DeliveryHandler) Advance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req advanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := h.lifecycle.Advance(r.Context(), id, domain.DeliveryStatus(req.Status))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toDeliveryResponse(d))
}

// RetryFoodItem handles POST /deliveries/{id}/retry-food-item.
func (h *DeliveryHandler) RetryFoodItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.matching.RetryFoodItemUpdate(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "repaired"})
}

// pathUUID parses a UUID path value, writing a 400 on failure.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
