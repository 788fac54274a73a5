package remote

import (
	"context"
	"net/http"
	"strconv"

	"trip-planner/internal/models"
)

// GetItinerary fetches the itinerary with the given id.
func (c *Client) GetItinerary(ctx context.Context, id int) (*models.Itinerary, error) {
	var env envelope[models.Itinerary]
	if err := c.do(ctx, http.MethodGet, "/itineraries/"+strconv.Itoa(id), nil, nil, &env); err != nil {
		return nil, c.fail("GetItinerary", err)
	}
	return &env.Data, nil
}
