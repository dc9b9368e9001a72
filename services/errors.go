package services

import "errors"

// Shared errors used across services and by the HTTP error mapping.
var (
	// Validation
	ErrValidationFailed   = errors.New("validation failed")
	ErrUsernameTooShort   = errors.New("username must be at least 3 characters")
	ErrPasswordTooShort   = errors.New("password must be at least 3 characters")
	ErrInvalidRank        = errors.New("invalid rank")
	ErrInvalidWinningTeam = errors.New("winning team must be 1 or 2")
	ErrInvalidPoints      = errors.New("invalid points amount")
	ErrInvalidSettings    = errors.New("settings values must be positive")

	// State preconditions
	ErrRegistrationNotOpen     = errors.New("event registration is not open")
	ErrEventFull               = errors.New("event is full")
	ErrNotRegistered           = errors.New("user is not registered for this event")
	ErrNotAParticipant         = errors.New("user does not play in this match")
	ErrResultPending           = errors.New("result reported, waiting for confirmation")
	ErrInvalidStatusTransition = errors.New("invalid event status transition")

	// Conflicts
	ErrUsernameTaken         = errors.New("username is already taken")
	ErrAlreadyRegistered     = errors.New("user is already registered for this event")
	ErrResultAlreadyRecorded = errors.New("match result is already recorded")

	// Not found
	ErrUserNotFound  = errors.New("user not found")
	ErrEventNotFound = errors.New("event not found")
	ErrMatchNotFound = errors.New("match not found")

	// Auth
	ErrInvalidCredentials = errors.New("invalid username or password")

	// Persistence
	ErrPersistenceFailed = errors.New("failed to persist changes")
)
