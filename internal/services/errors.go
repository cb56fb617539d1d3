package services

import (
	"errors"

	apperrors "github.com/SAP-F-2025/survey-service/internal/errors"
	"github.com/SAP-F-2025/survey-service/internal/repositories"
)

// ===== COMMON SERVICE ERRORS =====

var (
	ErrValidationFailed = errors.New("validation failed")
	ErrStoreUnavailable = errors.New("survey store unavailable")

	// Submission errors
	ErrDuplicateSession = errors.New("a response was already submitted for this session")

	// Export errors
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrExportFailed      = errors.New("export failed")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// ===== ERROR HELPERS =====

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) || errors.Is(err, ErrUnsupportedFormat) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

// IsConflict checks if error represents a duplicate submission
func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicateSession) || repositories.IsConstraintViolation(err)
}

// IsUnavailable checks if error represents a store outage
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable) || repositories.IsStoreUnavailable(err)
}
