package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"hostelhub/internal/model"
)

var (
	// ErrNotFound is returned when a listing, user, booking or review does not exist
	ErrNotFound = errors.New("not found")
	// ErrInvalidTransition is returned for a booking or verification status change that is not allowed
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrForbidden is returned when the acting user's role may not perform the operation
	ErrForbidden = errors.New("forbidden")
	// ErrUnavailable is returned when a room type has no free rooms
	ErrUnavailable = errors.New("no rooms available")
	// ErrAlreadyReviewed is returned when a user reviews the same listing twice
	ErrAlreadyReviewed = errors.New("listing already reviewed by this user")
	// ErrInvalidCredentials is returned for an unknown email or a wrong password
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError carries the per-field messages of a rejected form
type ValidationError struct {
	Fields model.ValidationErrors
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}

// asValidationError returns nil when errs is empty
func asValidationError(errs model.ValidationErrors) error {
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: errs}
}
