package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
)

func TestValidationError_SingleField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("organization_id", "required")

	if got := err.Error(); got != "validation: organization_id: required" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
}

func TestValidationError_MultipleFields(t *testing.T) {
	t.Parallel()

	err := NewValidationErrors([]FieldError{
		{Field: "name", Message: "required"},
		{Field: "quantity", Message: "required"},
	})

	if got := err.Error(); got != "validation: 2 errors" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
	if len(err.Errors) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(err.Errors))
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		ErrNotFound, ErrAlreadyExists, ErrValidation,
		ErrUnauthorized, ErrForbidden, ErrConflict,
		ErrInvalidTransition, ErrAlreadyClaimed, ErrPartialCommit,
		ErrUpstreamUnavailable, ErrMalformedUpstream, ErrNotFood,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel errors %d and %d should not match", i, j)
			}
		}
	}
}

func TestPartialCommitError(t *testing.T) {
	t.Parallel()

	deliveryID := uuid.New()
	foodItemID := uuid.New()
	cause := errors.New("connection reset")

	err := &PartialCommitError{
		DeliveryID: deliveryID,
		FoodItemID: foodItemID,
		Cause:      cause,
	}

	if !errors.Is(err, ErrPartialCommit) {
		t.Fatal("errors.Is(err, ErrPartialCommit) = false")
	}
	if errors.Is(err, ErrInvalidTransition) {
		t.Fatal("PartialCommitError should not match ErrInvalidTransition")
	}

	// The retry path extracts the coordinates with errors.As.
	wrapped := fmt.Errorf("create delivery: %w", err)
	var pce *PartialCommitError
	if !errors.As(wrapped, &pce) {
		t.Fatal("errors.As should find PartialCommitError through wrapping")
	}
	if pce.DeliveryID != deliveryID || pce.FoodItemID != foodItemID {
		t.Fatalf("coordinates lost: %+v", pce)
	}
}
