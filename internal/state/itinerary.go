package state

import (
	"fmt"

	"trip-planner/internal/models"
)

// ItineraryAction is implemented by every Itinerary transition.
type ItineraryAction interface {
	itineraryAction()
}

// SetItinerary replaces the itinerary wholesale.
type SetItinerary struct {
	Itinerary models.Itinerary
}

func (SetItinerary) itineraryAction() {}

// ReduceItinerary is the Itinerary reducer. The stored value never shares
// memory with the payload.
func ReduceItinerary(state models.Itinerary, action ItineraryAction) (models.Itinerary, error) {
	switch a := action.(type) {
	case SetItinerary:
		return a.Itinerary.Clone(), nil
	}
	return state, fmt.Errorf("itinerary %T: %w", action, models.ErrUnknownAction)
}
