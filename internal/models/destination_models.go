package models

import "time"

// Destination is a place visited on a given day at a given date-time.
// The place fields are flattened into the record.
type Destination struct {
	Place
	DestinationID int       `json:"destinationId"`
	Date          time.Time `json:"date"`
}

// DestinationRecord is the destination shape served by the itinerary service.
type DestinationRecord struct {
	ID          int       `json:"id"`
	ItineraryID int       `json:"itineraryId"`
	Date        time.Time `json:"date"`
	PlaceID     int       `json:"placeId"`
	Place       Place     `json:"Place"`
}

// Flatten converts a service record into the in-memory destination shape.
func (r DestinationRecord) Flatten() Destination {
	return Destination{
		Place:         r.Place,
		DestinationID: r.ID,
		Date:          r.Date,
	}
}

// Days holds the destinations of an itinerary, one ordered slice per day.
type Days [][]Destination

// Clone copies the outer slice and every day slice.
func (d Days) Clone() Days {
	if d == nil {
		return nil
	}
	out := make(Days, len(d))
	for i, day := range d {
		out[i] = append([]Destination{}, day...)
	}
	return out
}

// Find returns the position of the destination with the given id.
func (d Days) Find(destinationID int) (day, order int, ok bool) {
	for i, byDay := range d {
		for j, dest := range byDay {
			if dest.DestinationID == destinationID {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// AddDestinationRequest is the body of POST /api/destinations.
type AddDestinationRequest struct {
	Day      *int      `json:"day" validate:"required,min=0"`
	Datetime time.Time `json:"datetime" validate:"required"`
}

// ChangeDestinationTimeRequest is the body of PATCH /api/destinations/:destinationId.
type ChangeDestinationTimeRequest struct {
	Datetime time.Time `json:"datetime" validate:"required"`
}
