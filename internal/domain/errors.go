package domain

import "errors"

// MissingIDMessage is shown when an update is submitted for an event without id
const MissingIDMessage = "Event ID is required for update"

var (
	// ErrMissingID is returned when an update is attempted without an event id
	ErrMissingID = errors.New("event id is required for update")
	// ErrValidation wraps struct validation failures
	ErrValidation = errors.New("validation failed")
)
