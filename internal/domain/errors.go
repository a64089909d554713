package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")

	// ErrInvalidTransition is returned when a delivery status change violates
	// a precondition: wrong role, wrong current status, or a volunteer
	// identity mismatch. State is left untouched.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrAlreadyClaimed is returned to a volunteer who lost the claim race on
	// a pending delivery. The caller must re-fetch to see the new assignee.
	ErrAlreadyClaimed = errors.New("delivery already claimed")

	// ErrPartialCommit marks the delivery-created-but-food-item-not-matched
	// state. Use PartialCommitError to carry the retry coordinates.
	ErrPartialCommit = errors.New("partial commit")

	// ErrUpstreamUnavailable covers quality assessor transport failures,
	// rate limiting, and quota exhaustion.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrMalformedUpstream is returned when the quality assessor responded
	// with HTTP 200 but the body could not be parsed.
	ErrMalformedUpstream = errors.New("malformed upstream response")

	// ErrNotFood is returned when the quality assessor rejects an upload as
	// not depicting food. No food item record is created.
	ErrNotFood = errors.New("image is not food")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// PartialCommitError reports that a delivery row was committed but the
// dependent food item status update failed. It carries both identities so the
// retry path can re-attempt only the food item write.
type PartialCommitError struct {
	DeliveryID uuid.UUID
	FoodItemID uuid.UUID
	Cause      error
}

func (e *PartialCommitError) Error() string {
	return fmt.Sprintf("delivery %s committed but food item %s update failed: %v",
		e.DeliveryID, e.FoodItemID, e.Cause)
}

func (e *PartialCommitError) Unwrap() error { return ErrPartialCommit }
