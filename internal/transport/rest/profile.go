package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/resqbite/resqbite-backend/internal/service/profile"
)

// profileService defines the minimal interface needed by ProfileHandler.
type profileService interface {
	Me(ctx context.Context) (profile.Profile, error)
	UpdateContact(ctx context.Context, input profile.UpdateContactInput) (profile.Profile, error)
	SetAvailability(ctx context.Context, available bool) error
}

// ProfileHandler serves the caller's own profile endpoints.
type ProfileHandler struct {
	svc profileService
	log *slog.Logger
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(svc profileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{svc: svc, log: logger.With("handler", "profile")}
}

type profileResponse struct {
	User         userResponse          `json:"user"`
	Restaurant   *restaurantResponse   `json:"restaurant,omitempty"`
	Organization *organizationResponse `json:"organization,omitempty"`
	Volunteer    *volunteerResponse    `json:"volunteer,omitempty"`
}

func toProfileResponse(p profile.Profile) profileResponse {
	resp := profileResponse{User: toUserResponse(p.User)}
	if p.Restaurant != nil {
		r := toRestaurantResponse(*p.Restaurant)
		resp.Restaurant = &r
	}
	if p.Organization != nil {
		o := toOrganizationResponse(*p.Organization)
		resp.Organization = &o
	}
	if p.Volunteer != nil {
		v := toVolunteerResponse(*p.Volunteer)
		resp.Volunteer = &v
	}
	return resp
}

type updateContactRequest struct {
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Phone       *string `json:"phone,omitempty"`
	Description *string `json:"description,omitempty"`
}

type availabilityRequest struct {
	Available bool `json:"available"`
}

// Me handles GET /me.
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Me(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(p))
}

// UpdateContact handles PATCH /me.
func (h *ProfileHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	var req updateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.svc.UpdateContact(r.Context(), profile.UpdateContactInput{
		Name:        req.Name,
		Address:     req.Address,
		Phone:       req.Phone,
		Description: req.Description,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(p))
}

// SetAvailability handles POST /me/availability.
func (h *ProfileHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	var req availabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.SetAvailability(r.Context(), req.Available); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"available": req.Available})
}
