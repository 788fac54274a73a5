package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"trip-planner/internal/models"
)

type postDestinationBody struct {
	ItineraryID int       `json:"itineraryId"`
	Date        time.Time `json:"date"`
	PlaceID     int       `json:"placeId"`
}

type patchDestinationBody struct {
	DestinationID int       `json:"destinationId"`
	Date          time.Time `json:"date"`
}

// GetDestinations lists the destinations of an itinerary on one calendar day.
func (c *Client) GetDestinations(ctx context.Context, itineraryID int, date time.Time) ([]models.DestinationRecord, error) {
	q := url.Values{}
	q.Set("itineraryId", strconv.Itoa(itineraryID))
	q.Set("date", date.Format(models.DateLayout))

	var env envelope[[]models.DestinationRecord]
	if err := c.do(ctx, http.MethodGet, "/destinations", q, nil, &env); err != nil {
		return nil, c.fail("GetDestinations", err)
	}
	return env.Data, nil
}

// PostDestinations adds a place to an itinerary at datetime and returns the
// created record with its assigned id.
func (c *Client) PostDestinations(ctx context.Context, itineraryID int, datetime time.Time, placeID int) (*models.DestinationRecord, error) {
	body := postDestinationBody{ItineraryID: itineraryID, Date: datetime, PlaceID: placeID}

	var env envelope[models.DestinationRecord]
	if err := c.do(ctx, http.MethodPost, "/destinations", nil, body, &env); err != nil {
		return nil, c.fail("PostDestinations", err)
	}
	return &env.Data, nil
}

// PatchDestinations moves a destination to a new date-time.
func (c *Client) PatchDestinations(ctx context.Context, destinationID int, datetime time.Time) error {
	body := patchDestinationBody{DestinationID: destinationID, Date: datetime}
	if err := c.do(ctx, http.MethodPatch, "/destinations", nil, body, nil); err != nil {
		return c.fail("PatchDestinations", err)
	}
	return nil
}

// DeleteDestinations removes a destination.
func (c *Client) DeleteDestinations(ctx context.Context, destinationID int) error {
	if err := c.do(ctx, http.MethodDelete, "/destinations/"+strconv.Itoa(destinationID), nil, nil, nil); err != nil {
		return c.fail("DeleteDestinations", err)
	}
	return nil
}
