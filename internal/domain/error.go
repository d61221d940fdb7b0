package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound             = errors.New("entity not found")
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrUnknownTimezone      = errors.New("timezone not present in tz database")
	ErrDirectoryUnavailable = errors.New("user directory unavailable")
	ErrAlreadyDelivered     = errors.New("notification already delivered today")
	ErrWeatherUnavailable   = errors.New("weather provider unavailable")
	ErrTickInProgress       = errors.New("previous notification tick still running")
)
