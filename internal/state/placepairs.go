package state

import (
	"fmt"

	"trip-planner/internal/models"
)

// PlacePairsAction is implemented by every PlacePairs transition.
type PlacePairsAction interface {
	placePairsAction()
}

// SetPlacePairs recomputes every pair from the given destinations.
type SetPlacePairs struct {
	Days models.Days
}

func (SetPlacePairs) placePairsAction() {}

// ReducePlacePairs is the PlacePairs reducer.
func ReducePlacePairs(state [][]models.PlacePair, action PlacePairsAction) ([][]models.PlacePair, error) {
	switch a := action.(type) {
	case SetPlacePairs:
		return PlacePairsOf(a.Days), nil
	}
	return state, fmt.Errorf("placePairs %T: %w", action, models.ErrUnknownAction)
}

// PlacePairsOf pairs each destination with the next one of the same day.
// A day with fewer than two destinations yields an empty slice.
func PlacePairsOf(days models.Days) [][]models.PlacePair {
	pairs := make([][]models.PlacePair, len(days))
	for day, byDay := range days {
		pairs[day] = []models.PlacePair{}
		for order := 0; order+1 < len(byDay); order++ {
			pairs[day] = append(pairs[day], models.PlacePair{
				OriginID:      byDay[order].ID,
				DestinationID: byDay[order+1].ID,
			})
		}
	}
	return pairs
}
