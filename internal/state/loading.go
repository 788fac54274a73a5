package state

import (
	"fmt"

	"trip-planner/internal/models"
)

// LoadingAction toggles the global loading flag.
type LoadingAction int

const (
	SetTrue LoadingAction = iota + 1
	SetFalse
)

func (a LoadingAction) String() string {
	switch a {
	case SetTrue:
		return "SET_TRUE"
	case SetFalse:
		return "SET_FALSE"
	}
	return fmt.Sprintf("LoadingAction(%d)", int(a))
}

// ReduceLoading is the IsLoading reducer.
func ReduceLoading(state bool, action LoadingAction) (bool, error) {
	switch action {
	case SetTrue:
		return true, nil
	case SetFalse:
		return false, nil
	}
	return state, fmt.Errorf("isLoading %s: %w", action, models.ErrUnknownAction)
}
