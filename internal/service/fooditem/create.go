package fooditem

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/resqbite/resqbite-backend/internal/domain"
	"github.com/resqbite/resqbite-backend/pkg/ctxutil"
)

// CreateInput holds the parameters for posting a donation.
type CreateInput struct {
	Name        string
	Description *string
	Quantity    string
	Unit        string
	Category    string
	PreparedAt  time.Time
	ExpiresAt   time.Time
	ImageURL    *string
	// ImageBase64, when set, is submitted to the quality assessor before the
	// item is created. A not-food verdict aborts the creation.
	ImageBase64 *string
}

// Validate checks all fields and collects all errors.
func (i *CreateInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if len(i.Name) > 200 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "max 200 characters"})
	}
	if strings.TrimSpace(i.Quantity) == "" {
		errs = append(errs, domain.FieldError{Field: "quantity", Message: "required"})
	}
	if strings.TrimSpace(i.Unit) == "" {
		errs = append(errs, domain.FieldError{Field: "unit", Message: "required"})
	}
	if strings.TrimSpace(i.Category) == "" {
		errs = append(errs, domain.FieldError{Field: "category", Message: "required"})
	}
	if i.PreparedAt.IsZero() {
		errs = append(errs, domain.FieldError{Field: "prepared_at", Message: "required"})
	}
	if i.ExpiresAt.IsZero() {
		errs = append(errs, domain.FieldError{Field: "expires_at", Message: "required"})
	} else {
		if !i.PreparedAt.IsZero() && !i.ExpiresAt.After(i.PreparedAt) {
			errs = append(errs, domain.FieldError{Field: "expires_at", Message: "must be after prepared_at"})
		}
		if i.ExpiresAt.Before(time.Now()) {
			errs = append(errs, domain.FieldError{Field: "expires_at", Message: "must be in the future"})
		}
	}
	if i.ImageBase64 != nil && strings.TrimSpace(*i.ImageBase64) == "" {
		errs = append(errs, domain.FieldError{Field: "image_base64", Message: "must not be empty when present"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Create posts a new donation as AVAILABLE. When a photo is attached, the
// assessor runs first and its verdict is stored with the item; ErrNotFood
// aborts the creation entirely, and any other assessor failure propagates so
// the restaurant can retry or resubmit without the photo.
func (s *Service) Create(ctx context.Context, input CreateInput) (domain.FoodItem, error) {
	if err := input.Validate(); err != nil {
		return domain.FoodItem{}, err
	}

	rest, err := s.requireRestaurant(ctx)
	if err != nil {
		return domain.FoodItem{}, err
	}

	var assessment *domain.QualityAssessment
	if input.ImageBase64 != nil {
		a, err := s.assessor.Assess(ctx, *input.ImageBase64)
		if err != nil {
			return domain.FoodItem{}, fmt.Errorf("assess food photo: %w", err)
		}
		assessment = &a
	}

	item := domain.FoodItem{
		RestaurantID: rest.ID,
		Name:         input.Name,
		Description:  input.Description,
		Quantity:     input.Quantity,
		Unit:         input.Unit,
		Category:     input.Category,
		PreparedAt:   input.PreparedAt,
		ExpiresAt:    input.ExpiresAt,
		ImageURL:     input.ImageURL,
		Assessment:   assessment,
		Status:       domain.FoodItemStatusAvailable,
	}

	created, err := s.foodItems.Create(ctx, item)
	if err != nil {
		return domain.FoodItem{}, fmt.Errorf("create food item: %w", err)
	}

	s.log.InfoContext(ctx, "food item posted",
		slog.String("food_item_id", created.ID.String()),
		slog.String("restaurant_id", rest.ID.String()),
		slog.Bool("assessed", assessment != nil),
	)

	return created, nil
}

// AssessImage scores a photo without touching storage. It backs the stateless
// scoring endpoint restaurants use to preview a verdict before posting.
func (s *Service) AssessImage(ctx context.Context, imageBase64 string) (domain.QualityAssessment, error) {
	if strings.TrimSpace(imageBase64) == "" {
		return domain.QualityAssessment{}, domain.NewValidationError("image_base64", "required")
	}
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return domain.QualityAssessment{}, domain.ErrUnauthorized
	}
	return s.assessor.Assess(ctx, imageBase64)
}
