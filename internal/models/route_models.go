package models

import "time"

// TransportationMode is how a route between two destinations is travelled.
type TransportationMode string

const (
	ModeDriving   TransportationMode = "DRIVING"
	ModeWalking   TransportationMode = "WALKING"
	ModeBicycling TransportationMode = "BICYCLING"
	ModeTransit   TransportationMode = "TRANSIT"
)

// DefaultMode is used when a route is created without an explicit mode.
const DefaultMode = ModeDriving

// Valid reports whether m is one of the modes the routes service accepts.
func (m TransportationMode) Valid() bool {
	switch m {
	case ModeDriving, ModeWalking, ModeBicycling, ModeTransit:
		return true
	}
	return false
}

// PlacePair is an adjacency between two consecutive destinations of a day,
// keyed by place record ids.
type PlacePair struct {
	OriginID      int `json:"originId"`
	DestinationID int `json:"destinationId"`
}

// Route is a transportation link between two consecutive destinations.
type Route struct {
	ID                 int                `json:"id"`
	ItineraryID        int                `json:"itineraryId"`
	Date               time.Time          `json:"date"`
	TransportationMode TransportationMode `json:"transportationMode"`
	OriginID           int                `json:"originId"`
	DestinationID      int                `json:"destinationId"`
	DistanceMeters     int                `json:"distanceMeters,omitempty"`
	DurationSeconds    int                `json:"durationSeconds,omitempty"`
	Polyline           string             `json:"polyline,omitempty"`
}

// TransportationModeRequest is the body of PATCH /api/routes/:routeId.
type TransportationModeRequest struct {
	TransportationMode TransportationMode `json:"transportationMode" validate:"required,oneof=DRIVING WALKING BICYCLING TRANSIT"`
}
