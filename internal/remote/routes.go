package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"trip-planner/internal/models"
)

type postRouteBody struct {
	ItineraryID        int                       `json:"itineraryId"`
	Date               time.Time                 `json:"date"`
	TransportationMode models.TransportationMode `json:"transportationMode"`
	OriginID           int                       `json:"originId"`
	DestinationID      int                       `json:"destinationId"`
}

type patchRouteBody struct {
	RouteID            int                       `json:"routeId"`
	TransportationMode models.TransportationMode `json:"transportationMode"`
}

// GetRoutes fetches the route between two places of an itinerary.
func (c *Client) GetRoutes(ctx context.Context, itineraryID, originID, destinationID int) (*models.Route, error) {
	q := url.Values{}
	q.Set("itineraryId", strconv.Itoa(itineraryID))
	q.Set("originId", strconv.Itoa(originID))
	q.Set("destinationId", strconv.Itoa(destinationID))

	var env envelope[models.Route]
	if err := c.do(ctx, http.MethodGet, "/routes", q, nil, &env); err != nil {
		return nil, c.fail("GetRoutes", err)
	}
	return &env.Data, nil
}

// PostRoutes creates a route between two places travelled with mode.
func (c *Client) PostRoutes(ctx context.Context, itineraryID int, date time.Time, mode models.TransportationMode, originID, destinationID int) (*models.Route, error) {
	body := postRouteBody{
		ItineraryID:        itineraryID,
		Date:               date,
		TransportationMode: mode,
		OriginID:           originID,
		DestinationID:      destinationID,
	}

	var env envelope[models.Route]
	if err := c.do(ctx, http.MethodPost, "/routes", nil, body, &env); err != nil {
		return nil, c.fail("PostRoutes", err)
	}
	return &env.Data, nil
}

// PatchRoutes changes the transportation mode of a route.
func (c *Client) PatchRoutes(ctx context.Context, routeID int, mode models.TransportationMode) error {
	body := patchRouteBody{RouteID: routeID, TransportationMode: mode}
	if err := c.do(ctx, http.MethodPatch, "/routes", nil, body, nil); err != nil {
		return c.fail("PatchRoutes", err)
	}
	return nil
}
