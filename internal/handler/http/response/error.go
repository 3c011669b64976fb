package response

import (
	"errors"
	"net/http"

	"github.com/andina-labs/asistencia-backend-go/internal/domain/attendance"
	"github.com/andina-labs/asistencia-backend-go/internal/domain/history"
	"github.com/andina-labs/asistencia-backend-go/internal/pkg/validator"
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
	// Attendance domain errors
	case errors.Is(err, attendance.ErrNoIngestRows):
		BadRequest(w, "No parsable attendance rows in the uploaded files", nil)

	// History domain errors
	case errors.Is(err, history.ErrRecordNotFound):
		NotFound(w, "History record not found")
	case errors.Is(err, history.ErrUnavailable):
		ServiceUnavailable(w, "History storage is not available")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
