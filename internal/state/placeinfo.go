package state

import (
	"fmt"
	"maps"

	"trip-planner/internal/models"

	"github.com/go-viper/mapstructure/v2"
)

// PlaceInfoAction is implemented by every PlaceInfo transition.
type PlaceInfoAction interface {
	placeInfoAction()
}

// SetPlaceInfo merges Fields over the cached place attributes.
type SetPlaceInfo struct {
	Fields models.PlaceInfo
}

// DeletePlaceInfo clears the cache.
type DeletePlaceInfo struct{}

func (SetPlaceInfo) placeInfoAction()    {}
func (DeletePlaceInfo) placeInfoAction() {}

// ReducePlaceInfo is the PlaceInfo reducer.
func ReducePlaceInfo(state models.PlaceInfo, action PlaceInfoAction) (models.PlaceInfo, error) {
	switch a := action.(type) {
	case SetPlaceInfo:
		next := make(models.PlaceInfo, len(state)+len(a.Fields))
		maps.Copy(next, state)
		maps.Copy(next, a.Fields)
		return next, nil
	case DeletePlaceInfo:
		return models.PlaceInfo{}, nil
	}
	return state, fmt.Errorf("placeInfo %T: %w", action, models.ErrUnknownAction)
}

// PlaceInfoOf flattens a place into cache fields keyed by JSON name.
func PlaceInfoOf(place models.Place) (models.PlaceInfo, error) {
	info := models.PlaceInfo{}
	if err := decode(place, &info); err != nil {
		return nil, fmt.Errorf("state.PlaceInfoOf: %w", err)
	}
	return info, nil
}

// PlaceFromInfo reads the cached fields back into a place. An empty cache
// reports models.ErrNoPlaceSelected.
func PlaceFromInfo(info models.PlaceInfo) (models.Place, error) {
	var place models.Place
	if len(info) == 0 {
		return place, models.ErrNoPlaceSelected
	}
	if err := decode(info, &place); err != nil {
		return place, fmt.Errorf("state.PlaceFromInfo: %w", err)
	}
	return place, nil
}

func decode(in, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(in)
}
