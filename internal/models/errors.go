package models

import "errors"

var (
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("resource not found")

	// ErrDayOutOfRange is returned when an action or request targets a day
	// index the itinerary does not have.
	ErrDayOutOfRange = errors.New("day index out of range")

	// ErrDestinationNotFound is returned when a destination id or position
	// does not match any destination currently held in state.
	ErrDestinationNotFound = errors.New("destination not found")

	// ErrUnknownAction is returned by a reducer handed an action outside its vocabulary.
	ErrUnknownAction = errors.New("unknown action")

	// ErrNoPlaceSelected is returned when a destination is added before any
	// place has been looked up.
	ErrNoPlaceSelected = errors.New("no place selected")

	// ErrInvalidMode is returned for a transportation mode the routes service does not know.
	ErrInvalidMode = errors.New("invalid transportation mode")
)

// ErrorResponse is the JSON body returned by the local API on failure.
type ErrorResponse struct {
	Message string `json:"message"`
}
