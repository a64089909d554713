package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/resqbite/resqbite-backend/internal/domain"
	"github.com/resqbite/resqbite-backend/internal/service/request"
)

// requestService defines the minimal interface needed by RequestHandler.
type requestService interface {
	Create(ctx context.Context, input request.CreateInput) (domain.FoodRequest, error)
	ListActive(ctx context.Context, input request.ListInput) ([]domain.FoodRequest, error)
	ListMine(ctx context.Context) ([]domain.FoodRequest, error)
	Fulfill(ctx context.Context, id uuid.UUID) error
	Cancel(ctx context.Context, id uuid.UUID) error
}

// RequestHandler serves food request REST endpoints.
type RequestHandler struct {
	svc requestService
	log *slog.Logger
}

// NewRequestHandler creates a RequestHandler.
func NewRequestHandler(svc requestService, logger *slog.Logger) *RequestHandler {
	return &RequestHandler{svc: svc, log: logger.With("handler", "request")}
}

type createRequestRequest struct {
	FoodTypes []string `json:"foodTypes"`
	Quantity  string   `json:"quantity"`
	Urgency   string   `json:"urgency"`
	Notes     *string  `json:"notes,omitempty"`
}

// Create handles POST /requests.
func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.Create(r.Context(), request.CreateInput{
		FoodTypes: req.FoodTypes,
		Quantity:  req.Quantity,
		Urgency:   domain.UrgencyTier(req.Urgency),
		Notes:     req.Notes,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toFoodRequestResponse(created))
}

// ListActive handles GET /requests/active.
func (h *RequestHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	var input request.ListInput

	if s := r.URL.Query().Get("urgency"); s != "" {
		urgency := domain.UrgencyTier(s)
		input.Urgency = &urgency
	}
	if s := r.URL.Query().Get("limit"); s != "" {
		input.Limit, _ = strconv.Atoi(s)
	}
	if s := r.URL.Query().Get("offset"); s != "" {
		input.Offset, _ = strconv.Atoi(s)
	}

	requests, err := h.svc.ListActive(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toFoodRequestResponses(requests))
}

// ListMine handles GET /requests.
func (h *RequestHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	requests, err := h.svc.ListMine(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toFoodRequestResponses(requests))
}

// Fulfill handles POST /requests/{id}/fulfill.
func (h *RequestHandler) Fulfill(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Fulfill(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "fulfilled"})
}

// Cancel handles POST /requests/{id}/cancel.
func (h *RequestHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Cancel(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}
