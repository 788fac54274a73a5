package state

import (
	"fmt"
	"slices"
	"time"

	"trip-planner/internal/models"
)

// DestinationsAction is implemented by every Destinations transition.
type DestinationsAction interface {
	destinationsAction()
}

// SetDestinations replaces every day wholesale.
type SetDestinations struct {
	Days models.Days
}

// AddDestination inserts a place into a day, keeping the day ordered by time.
type AddDestination struct {
	Day           int
	Date          time.Time
	DestinationID int
	Place         models.Place
}

// ChangeDestinationTime moves a destination, wherever it is, to a new time.
type ChangeDestinationTime struct {
	DestinationID int
	Datetime      time.Time
}

// DeleteDestination removes the destination at Order within day DayIndex.
type DeleteDestination struct {
	DayIndex int
	Order    int
}

func (SetDestinations) destinationsAction()       {}
func (AddDestination) destinationsAction()        {}
func (ChangeDestinationTime) destinationsAction() {}
func (DeleteDestination) destinationsAction()     {}

// ReduceDestinations is the Destinations reducer. Every accepted action
// returns fresh day slices; rejected actions return state unchanged.
func ReduceDestinations(state models.Days, action DestinationsAction) (models.Days, error) {
	switch a := action.(type) {
	case SetDestinations:
		return a.Days.Clone(), nil

	case AddDestination:
		if a.Day < 0 || a.Day >= len(state) {
			return state, fmt.Errorf("add destination to day %d of %d: %w", a.Day, len(state), models.ErrDayOutOfRange)
		}
		next := state.Clone()
		byDay := next[a.Day]
		at := insertionIndex(byDay, a.Date)
		dest := models.Destination{Place: a.Place, DestinationID: a.DestinationID, Date: a.Date}
		next[a.Day] = slices.Insert(byDay, at, dest)
		return next, nil

	case ChangeDestinationTime:
		day, order, ok := state.Find(a.DestinationID)
		if !ok {
			return state, fmt.Errorf("change time of destination %d: %w", a.DestinationID, models.ErrDestinationNotFound)
		}
		next := state.Clone()
		next[day][order].Date = a.Datetime
		sortDay(next[day])
		return next, nil

	case DeleteDestination:
		if a.DayIndex < 0 || a.DayIndex >= len(state) {
			return state, fmt.Errorf("delete from day %d of %d: %w", a.DayIndex, len(state), models.ErrDayOutOfRange)
		}
		if a.Order < 0 || a.Order >= len(state[a.DayIndex]) {
			return state, fmt.Errorf("delete position %d of day %d: %w", a.Order, a.DayIndex, models.ErrDestinationNotFound)
		}
		next := state.Clone()
		next[a.DayIndex] = slices.Delete(next[a.DayIndex], a.Order, a.Order+1)
		return next, nil
	}
	return state, fmt.Errorf("destinations %T: %w", action, models.ErrUnknownAction)
}

// insertionIndex is the first position whose time is after t, so a new entry
// lands after every entry at or before its own time.
func insertionIndex(byDay []models.Destination, t time.Time) int {
	for i, d := range byDay {
		if d.Date.After(t) {
			return i
		}
	}
	return len(byDay)
}

// sortDay orders a day by time; equal times keep their relative order.
func sortDay(byDay []models.Destination) {
	slices.SortStableFunc(byDay, func(a, b models.Destination) int {
		return a.Date.Compare(b.Date)
	})
}

// SortDays orders every day of days in place.
func SortDays(days models.Days) {
	for _, byDay := range days {
		sortDay(byDay)
	}
}
