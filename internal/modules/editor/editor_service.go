package editor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trip-planner/internal/models"
	"trip-planner/internal/state"

	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
)

// dayFetchLimit bounds concurrent per-day destination requests during a load.
const dayFetchLimit = 4

// RemoteClient is the subset of the itinerary service the editor drives.
// *remote.Client implements it.
type RemoteClient interface {
	GetItinerary(ctx context.Context, id int) (*models.Itinerary, error)
	GetDestinations(ctx context.Context, itineraryID int, date time.Time) ([]models.DestinationRecord, error)
	PostMaps(ctx context.Context, placeID string) (*models.Place, error)
	PostDestinations(ctx context.Context, itineraryID int, datetime time.Time, placeID int) (*models.DestinationRecord, error)
	PatchDestinations(ctx context.Context, destinationID int, datetime time.Time) error
	DeleteDestinations(ctx context.Context, destinationID int) error
	GetRoutes(ctx context.Context, itineraryID, originID, destinationID int) (*models.Route, error)
	PostRoutes(ctx context.Context, itineraryID int, date time.Time, mode models.TransportationMode, originID, destinationID int) (*models.Route, error)
	PatchRoutes(ctx context.Context, routeID int, mode models.TransportationMode) error
}

// ServiceInterface defines the editor workflows: each one talks to the
// itinerary service and feeds the result into the state store.
type ServiceInterface interface {
	Store() *state.Store
	LoadItinerary(ctx context.Context, id int) error
	SearchPlace(ctx context.Context, placeID string) (*models.Place, error)
	ClearPlaceInfo() error
	AddDestination(ctx context.Context, day int, datetime time.Time) (*models.Destination, error)
	ChangeDestinationTime(ctx context.Context, destinationID int, datetime time.Time) error
	DeleteDestination(ctx context.Context, dayIndex, order int) error
	DayRoutes(ctx context.Context, day int) ([]*models.Route, error)
	SetTransportationMode(ctx context.Context, routeID int, mode models.TransportationMode) error
}

// Service implements ServiceInterface.
type Service struct {
	remote RemoteClient
	store  *state.Store
	logger *log.Logger
}

// NewService creates an editor service over store.
func NewService(remote RemoteClient, store *state.Store) *Service {
	return &Service{
		remote: remote,
		store:  store,
		logger: log.New("editor"),
	}
}

// SetLogger replaces the service logger.
func (s *Service) SetLogger(l *log.Logger) { s.logger = l }

// Store returns the state the service writes to.
func (s *Service) Store() *state.Store { return s.store }

// LoadItinerary replaces every slice with the itinerary's current remote
// state. A day whose destinations cannot be fetched is left empty. The
// loading flag is cleared whatever the outcome.
func (s *Service) LoadItinerary(ctx context.Context, id int) error {
	if err := s.store.IsLoading.Dispatch(state.SetTrue); err != nil {
		return fmt.Errorf("service.LoadItinerary: %w", err)
	}
	defer func() {
		if err := s.store.IsLoading.Dispatch(state.SetFalse); err != nil {
			s.logger.Errorf("service.LoadItinerary: clear loading: %v", err)
		}
	}()

	it, err := s.remote.GetItinerary(ctx, id)
	if err != nil {
		return fmt.Errorf("service.LoadItinerary: %w", err)
	}
	if err := s.store.Itinerary.Dispatch(state.SetItinerary{Itinerary: *it}); err != nil {
		return fmt.Errorf("service.LoadItinerary: %w", err)
	}

	dates := it.Dates()
	days := make(models.Days, len(dates))

	var g errgroup.Group
	g.SetLimit(dayFetchLimit)
	for i, date := range dates {
		days[i] = []models.Destination{}
		g.Go(func() error {
			records, err := s.remote.GetDestinations(ctx, it.ID, date)
			if err != nil {
				s.logger.Warnf("service.LoadItinerary: day %d (%s) left empty: %v", i, date.Format(models.DateLayout), err)
				return nil
			}
			byDay := make([]models.Destination, 0, len(records))
			for _, r := range records {
				byDay = append(byDay, r.Flatten())
			}
			days[i] = byDay
			return nil
		})
	}
	_ = g.Wait()

	state.SortDays(days)
	if err := s.store.Destinations.Dispatch(state.SetDestinations{Days: days}); err != nil {
		return fmt.Errorf("service.LoadItinerary: %w", err)
	}
	return s.refreshPairs("LoadItinerary")
}

// SearchPlace looks a place up and caches it as the place being added.
func (s *Service) SearchPlace(ctx context.Context, placeID string) (*models.Place, error) {
	place, err := s.remote.PostMaps(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("service.SearchPlace: %w", err)
	}
	info, err := state.PlaceInfoOf(*place)
	if err != nil {
		return nil, fmt.Errorf("service.SearchPlace: %w", err)
	}
	if err := s.store.PlaceInfo.Dispatch(state.SetPlaceInfo{Fields: info}); err != nil {
		return nil, fmt.Errorf("service.SearchPlace: %w", err)
	}
	return place, nil
}

// ClearPlaceInfo forgets the cached place.
func (s *Service) ClearPlaceInfo() error {
	return s.store.PlaceInfo.Dispatch(state.DeletePlaceInfo{})
}

// AddDestination adds the cached place to day at datetime.
func (s *Service) AddDestination(ctx context.Context, day int, datetime time.Time) (*models.Destination, error) {
	place, err := state.PlaceFromInfo(s.store.PlaceInfo.Get())
	if err != nil {
		return nil, fmt.Errorf("service.AddDestination: %w", err)
	}
	if days := s.store.Destinations.Get(); day < 0 || day >= len(days) {
		return nil, fmt.Errorf("service.AddDestination: day %d: %w", day, models.ErrDayOutOfRange)
	}

	it := s.store.Itinerary.Get()
	rec, err := s.remote.PostDestinations(ctx, it.ID, datetime, place.ID)
	if err != nil {
		return nil, fmt.Errorf("service.AddDestination: %w", err)
	}
	date := rec.Date
	if date.IsZero() {
		date = datetime
	}

	action := state.AddDestination{Day: day, Date: date, DestinationID: rec.ID, Place: place}
	if err := s.store.Destinations.Dispatch(action); err != nil {
		return nil, fmt.Errorf("service.AddDestination: %w", err)
	}
	if err := s.refreshPairs("AddDestination"); err != nil {
		return nil, err
	}
	if err := s.ClearPlaceInfo(); err != nil {
		s.logger.Errorf("service.AddDestination: clear place info: %v", err)
	}

	return &models.Destination{Place: place, DestinationID: rec.ID, Date: date}, nil
}

// ChangeDestinationTime moves a destination to datetime, reordering its day.
func (s *Service) ChangeDestinationTime(ctx context.Context, destinationID int, datetime time.Time) error {
	if _, _, ok := s.store.Destinations.Get().Find(destinationID); !ok {
		return fmt.Errorf("service.ChangeDestinationTime: %d: %w", destinationID, models.ErrDestinationNotFound)
	}
	if err := s.remote.PatchDestinations(ctx, destinationID, datetime); err != nil {
		return fmt.Errorf("service.ChangeDestinationTime: %w", err)
	}
	action := state.ChangeDestinationTime{DestinationID: destinationID, Datetime: datetime}
	if err := s.store.Destinations.Dispatch(action); err != nil {
		return fmt.Errorf("service.ChangeDestinationTime: %w", err)
	}
	return s.refreshPairs("ChangeDestinationTime")
}

// DeleteDestination removes the destination at order within day dayIndex.
func (s *Service) DeleteDestination(ctx context.Context, dayIndex, order int) error {
	days := s.store.Destinations.Get()
	if dayIndex < 0 || dayIndex >= len(days) {
		return fmt.Errorf("service.DeleteDestination: day %d: %w", dayIndex, models.ErrDayOutOfRange)
	}
	if order < 0 || order >= len(days[dayIndex]) {
		return fmt.Errorf("service.DeleteDestination: position %d: %w", order, models.ErrDestinationNotFound)
	}

	target := days[dayIndex][order]
	if err := s.remote.DeleteDestinations(ctx, target.DestinationID); err != nil {
		return fmt.Errorf("service.DeleteDestination: %w", err)
	}

	// The day may have changed while the remote call was in flight.
	day, at, ok := s.store.Destinations.Get().Find(target.DestinationID)
	if !ok {
		return fmt.Errorf("service.DeleteDestination: %d: %w", target.DestinationID, models.ErrDestinationNotFound)
	}
	if err := s.store.Destinations.Dispatch(state.DeleteDestination{DayIndex: day, Order: at}); err != nil {
		return fmt.Errorf("service.DeleteDestination: %w", err)
	}
	return s.refreshPairs("DeleteDestination")
}

// DayRoutes returns the route for every consecutive pair of day, creating
// missing ones with the default mode.
func (s *Service) DayRoutes(ctx context.Context, day int) ([]*models.Route, error) {
	pairs := s.store.PlacePairs.Get()
	if day < 0 || day >= len(pairs) {
		return nil, fmt.Errorf("service.DayRoutes: day %d: %w", day, models.ErrDayOutOfRange)
	}

	it := s.store.Itinerary.Get()
	var date time.Time
	if dates := it.Dates(); day < len(dates) {
		date = dates[day]
	}

	routes := make([]*models.Route, 0, len(pairs[day]))
	for _, p := range pairs[day] {
		route, err := s.remote.GetRoutes(ctx, it.ID, p.OriginID, p.DestinationID)
		if errors.Is(err, models.ErrNotFound) {
			route, err = s.remote.PostRoutes(ctx, it.ID, date, models.DefaultMode, p.OriginID, p.DestinationID)
		}
		if err != nil {
			return nil, fmt.Errorf("service.DayRoutes: %d -> %d: %w", p.OriginID, p.DestinationID, err)
		}
		routes = append(routes, route)
	}
	return routes, nil
}

// SetTransportationMode changes how a route is travelled.
func (s *Service) SetTransportationMode(ctx context.Context, routeID int, mode models.TransportationMode) error {
	if !mode.Valid() {
		return fmt.Errorf("service.SetTransportationMode: %q: %w", mode, models.ErrInvalidMode)
	}
	if err := s.remote.PatchRoutes(ctx, routeID, mode); err != nil {
		return fmt.Errorf("service.SetTransportationMode: %w", err)
	}
	return nil
}

func (s *Service) refreshPairs(op string) error {
	days := s.store.Destinations.Get()
	if err := s.store.PlacePairs.Dispatch(state.SetPlacePairs{Days: days}); err != nil {
		return fmt.Errorf("service.%s: refresh pairs: %w", op, err)
	}
	return nil
}

var _ ServiceInterface = (*Service)(nil)
