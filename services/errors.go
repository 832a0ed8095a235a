package services

import "errors"

// Shared errors used across services and the HTTP error mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business-rule errors
	ErrValidationFailed       = errors.New("validation failed")
	ErrPasswordTooShort       = errors.New("password is too short")
	ErrHouseNameRequired      = errors.New("house name is required")
	ErrSportNameRequired      = errors.New("sport name is required")
	ErrEventNameRequired      = errors.New("event name is required")
	ErrNegativePoints         = errors.New("point table values must be non-negative")
	ErrInvalidAge             = errors.New("participant age must be positive")
	ErrHouseQuotaExceeded     = errors.New("house quota for this sport exceeded")
	ErrEventNotOpen           = errors.New("event is completed or cancelled and cannot change enrollment")
	ErrNoPositionsAssigned    = errors.New("no participant was assigned a position")
	ErrInvalidPosition        = errors.New("position must be a positive integer")
	ErrParticipantNotOnRoster = errors.New("participant is not enrolled in this event")
	ErrInvalidStatusChange    = errors.New("invalid event status transition")

	// Conflicts
	ErrHouseNameConflict  = errors.New("house name already exists")
	ErrSportNameConflict  = errors.New("sport name already exists")
	ErrEnrollmentConflict = errors.New("participant is already enrolled in this event")
	ErrEmailConflict      = errors.New("email address is already in use")

	// Authentication and authorization
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")

	// Entity not-found variants (more context than the generic ErrNotFound)
	ErrUserNotFound        = errors.New("user not found")
	ErrHouseNotFound       = errors.New("house not found")
	ErrSportNotFound       = errors.New("sport not found")
	ErrEventNotFound       = errors.New("event not found")
	ErrParticipantNotFound = errors.New("participant not found")

	// Referential conflicts on delete
	ErrHouseInUse       = errors.New("house is in use and cannot be deleted")
	ErrSportInUse       = errors.New("sport is in use and cannot be deleted")
	ErrEventInUse       = errors.New("event has recorded data and cannot be deleted")
	ErrParticipantInUse = errors.New("participant has recorded results; deactivate instead of deleting")
)
