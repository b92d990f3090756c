package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Authentication Errors =====
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong    = errors.New("password must be at most 128 characters")
	ErrInvalidEmail       = errors.New("invalid email format")
)

// ===== Itinerary Errors =====
var (
	ErrItineraryNotFound   = errors.New("itinerary not found")
	ErrInvalidItineraryID  = errors.New("invalid itinerary id")
	ErrTitleRequired       = errors.New("title must be at least 3 characters")
	ErrDestinationRequired = errors.New("destination is required")
	ErrInvalidStartDate    = errors.New("start date is required and must be a valid date")
	ErrInvalidEndDate      = errors.New("end date is required and must be a valid date")
	ErrEmptyUpdate         = errors.New("update must include at least one field")
)
