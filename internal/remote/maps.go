package remote

import (
	"context"
	"net/http"

	"trip-planner/internal/models"
)

// PostMaps registers or looks up a place by its maps provider id.
func (c *Client) PostMaps(ctx context.Context, placeID string) (*models.Place, error) {
	body := struct {
		PlaceID string `json:"placeId"`
	}{PlaceID: placeID}

	var env envelope[models.Place]
	if err := c.do(ctx, http.MethodPost, "/maps", nil, body, &env); err != nil {
		return nil, c.fail("PostMaps", err)
	}
	return &env.Data, nil
}
