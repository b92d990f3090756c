package handler

import (
	"errors"
	"log/slog"

	"github.com/forgo/voyage/api/internal/model"
	"github.com/forgo/voyage/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	switch {
	// ===== Authentication Errors → 401 =====
	case errors.Is(err, service.ErrInvalidCredentials):
		return model.NewUnauthorizedError(err.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user")
	case errors.Is(err, service.ErrItineraryNotFound):
		return model.NewNotFoundError("itinerary")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrEmailAlreadyExists):
		return model.NewConflictError(err.Error())

	// ===== Malformed Input → 400 =====
	case errors.Is(err, service.ErrInvalidItineraryID):
		return model.NewBadRequestError(err.Error())

	// ===== Validation Errors → 400 =====
	case errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrPasswordRequired),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrPasswordTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "credentials", Message: err.Error()}})
	case errors.Is(err, service.ErrTitleRequired):
		return model.NewValidationError([]model.FieldError{{Field: "title", Message: err.Error()}})
	case errors.Is(err, service.ErrDestinationRequired):
		return model.NewValidationError([]model.FieldError{{Field: "destination", Message: err.Error()}})
	case errors.Is(err, service.ErrInvalidStartDate):
		return model.NewValidationError([]model.FieldError{{Field: "start_date", Message: err.Error()}})
	case errors.Is(err, service.ErrInvalidEndDate):
		return model.NewValidationError([]model.FieldError{{Field: "end_date", Message: err.Error()}})
	case errors.Is(err, service.ErrEmptyUpdate):
		return model.NewValidationError([]model.FieldError{{Field: "body", Message: err.Error()}})

	// ===== Default → 500 =====
	default:
		slog.Error("unhandled service error", slog.String("error", err.Error()))
		return model.NewInternalError("")
	}
}
