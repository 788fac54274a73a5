// Package state holds the itinerary editor's five state slices: the loading
// flag, the itinerary, its destinations by day, the derived place pairs and
// the place-search cache. Each slice is a pubsub container driven by a pure
// reducer; Store bundles them for the code that renders or syncs them.
package state

import (
	"maps"

	"trip-planner/internal/models"
	"trip-planner/internal/pubsub"

	"github.com/labstack/gommon/log"
)

type (
	LoadingContainer      = pubsub.Container[bool, LoadingAction]
	ItineraryContainer    = pubsub.Container[models.Itinerary, ItineraryAction]
	DestinationsContainer = pubsub.Container[models.Days, DestinationsAction]
	PlacePairsContainer   = pubsub.Container[[][]models.PlacePair, PlacePairsAction]
	PlaceInfoContainer    = pubsub.Container[models.PlaceInfo, PlaceInfoAction]
)

// Store is one scope of editor state.
type Store struct {
	IsLoading    *LoadingContainer
	Itinerary    *ItineraryContainer
	Destinations *DestinationsContainer
	PlacePairs   *PlacePairsContainer
	PlaceInfo    *PlaceInfoContainer

	owned []func()
}

// NewStore creates a root scope with the editor's initial values.
func NewStore() *Store {
	s := &Store{
		IsLoading:    pubsub.New("isLoading", true, ReduceLoading),
		Itinerary:    pubsub.New("itinerary", models.Itinerary{}, ReduceItinerary),
		Destinations: pubsub.New("destinations", models.Days{}, ReduceDestinations),
		PlacePairs:   pubsub.New("placePairs", [][]models.PlacePair{}, ReducePlacePairs),
		PlaceInfo:    pubsub.New("placeInfo", models.PlaceInfo{}, ReducePlaceInfo),
	}
	s.owned = []func(){
		s.IsLoading.Close, s.Itinerary.Close, s.Destinations.Close, s.PlacePairs.Close, s.PlaceInfo.Close,
	}
	return s
}

// SetLogger routes every container's logs to l.
func (s *Store) SetLogger(l *log.Logger) {
	s.IsLoading.SetLogger(l)
	s.Itinerary.SetLogger(l)
	s.Destinations.SetLogger(l)
	s.PlacePairs.SetLogger(l)
	s.PlaceInfo.SetLogger(l)
}

// ScopeOption injects an overriding value into a nested scope.
type ScopeOption func(parent, child *Store)

func WithLoading(v bool) ScopeOption {
	return func(p, c *Store) {
		c.IsLoading = p.IsLoading.Override(v)
		c.owned = append(c.owned, c.IsLoading.Close)
	}
}

func WithItinerary(it models.Itinerary) ScopeOption {
	return func(p, c *Store) {
		c.Itinerary = p.Itinerary.Override(it.Clone())
		c.owned = append(c.owned, c.Itinerary.Close)
	}
}

func WithDestinations(days models.Days) ScopeOption {
	return func(p, c *Store) {
		c.Destinations = p.Destinations.Override(days.Clone())
		c.owned = append(c.owned, c.Destinations.Close)
	}
}

func WithPlacePairs(days models.Days) ScopeOption {
	return func(p, c *Store) {
		c.PlacePairs = p.PlacePairs.Override(PlacePairsOf(days))
		c.owned = append(c.owned, c.PlacePairs.Close)
	}
}

func WithPlaceInfo(info models.PlaceInfo) ScopeOption {
	return func(p, c *Store) {
		c.PlaceInfo = p.PlaceInfo.Override(maps.Clone(info))
		c.owned = append(c.owned, c.PlaceInfo.Close)
	}
}

// Nested opens a child scope. Slices named by opts get their own container
// seeded with the injected value; every other slice is shared with s.
func (s *Store) Nested(opts ...ScopeOption) *Store {
	child := &Store{
		IsLoading:    s.IsLoading,
		Itinerary:    s.Itinerary,
		Destinations: s.Destinations,
		PlacePairs:   s.PlacePairs,
		PlaceInfo:    s.PlaceInfo,
	}
	for _, opt := range opts {
		opt(s, child)
	}
	return child
}

// Close closes the containers this scope created. Shared parent containers
// stay open.
func (s *Store) Close() {
	for _, closeFn := range s.owned {
		closeFn()
	}
}

// Snapshot is every slice's value at one moment.
type Snapshot struct {
	IsLoading    bool                 `json:"isLoading"`
	Itinerary    models.Itinerary     `json:"itinerary"`
	Destinations models.Days          `json:"destinations"`
	PlacePairs   [][]models.PlacePair `json:"placePairs"`
	PlaceInfo    models.PlaceInfo     `json:"placeInfo"`
}

// Snapshot reads every slice.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		IsLoading:    s.IsLoading.Get(),
		Itinerary:    s.Itinerary.Get(),
		Destinations: s.Destinations.Get(),
		PlacePairs:   s.PlacePairs.Get(),
		PlaceInfo:    s.PlaceInfo.Get(),
	}
}
