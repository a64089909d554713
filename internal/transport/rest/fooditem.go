package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/resqbite/resqbite-backend/internal/domain"
	"github.com/resqbite/resqbite-backend/internal/service/fooditem"
)

// foodItemService defines the minimal interface needed by FoodItemHandler.
type foodItemService interface {
	Create(ctx context.Context, input fooditem.CreateInput) (domain.FoodItem, error)
	Get(ctx context.Context, id uuid.UUID) (domain.FoodItem, error)
	ListAvailable(ctx context.Context) ([]domain.FoodItem, error)
	ListMine(ctx context.Context) ([]domain.FoodItem, error)
	AssessImage(ctx context.Context, imageBase64 string) (domain.QualityAssessment, error)
}

// FoodItemHandler serves food item REST endpoints.
type FoodItemHandler struct {
	svc foodItemService
	log *slog.Logger
}

// NewFoodItemHandler creates a FoodItemHandler.
func NewFoodItemHandler(svc foodItemService, logger *slog.Logger) *FoodItemHandler {
	return &FoodItemHandler{svc: svc, log: logger.With("handler", "fooditem")}
}

type createFoodItemRequest struct {
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Quantity    string    `json:"quantity"`
	Unit        string    `json:"unit"`
	Category    string    `json:"category"`
	PreparedAt  time.Time `json:"preparedAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	ImageBase64 *string   `json:"imageBase64,omitempty"`
}

type assessRequest struct {
	ImageBase64 string `json:"imageBase64"`
}

// Create handles POST /food-items.
func (h *FoodItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createFoodItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.Create(r.Context(), fooditem.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		Category:    req.Category,
		PreparedAt:  req.PreparedAt,
		ExpiresAt:   req.ExpiresAt,
		ImageURL:    req.ImageURL,
		ImageBase64: req.ImageBase64,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toFoodItemResponse(created))
}

// ListAvailable handles GET /food-items/available.
func (h *FoodItemHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListAvailable(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toFoodItemResponses(items))
}

// ListMine handles GET /food-items.
func (h *FoodItemHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListMine(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toFoodItemResponses(items))
}

// Get handles GET /food-items/{id}.
func (h *FoodItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	item, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toFoodItemResponse(item))
}

// Assess handles POST /assess-food-quality, the stateless scoring endpoint.
// Nothing is persisted; the verdict goes straight back to the caller.
func (h *FoodItemHandler) Assess(w http.ResponseWriter, r *http.Request) {
	var req assessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	assessment, err := h.svc.AssessImage(r.Context(), req.ImageBase64)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, assessment)
}
