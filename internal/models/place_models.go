package models

// Place is a point-of-interest record independent of any itinerary.
type Place struct {
	ID      int     `json:"id"`      // remote place record id
	PlaceID string  `json:"placeId"` // maps provider identifier
	Name    string  `json:"name"`
	Address string  `json:"address,omitempty"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Rating  float64 `json:"rating,omitempty"`
}

// PlaceInfo caches attributes of the place currently being searched or added.
type PlaceInfo map[string]any

// PlaceLookupRequest is the body of a place search on the local API.
type PlaceLookupRequest struct {
	PlaceID string `json:"placeId" validate:"required"`
}
