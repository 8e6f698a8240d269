package response

import (
	"errors"
	"net/http"

	"github.com/timeqr/timeqr-backend-go/internal/domain/employee"
	"github.com/timeqr/timeqr-backend-go/internal/domain/justification"
	"github.com/timeqr/timeqr-backend-go/internal/domain/report"
	"github.com/timeqr/timeqr-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmployeeAlreadyInactive):
		Conflict(w, "Employee is already inactive")

	// Justification domain errors
	case errors.Is(err, justification.ErrJustificationNotFound):
		NotFound(w, "Justification not found")

	// Report domain errors
	case errors.Is(err, report.ErrInvalidRange):
		BadRequest(w, "Invalid date range", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
