package editor

import (
	"errors"
	"net/http"
	"strconv"

	"trip-planner/internal/models"
	"trip-planner/internal/remote"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	service      ServiceInterface
	validate     *validator.Validate // For request body validation
	clientOrigin string
}

// NewHandler creates the editor handler. clientOrigin is the UI origin
// allowed to open the state stream from another host.
func NewHandler(service ServiceInterface, clientOrigin string) *Handler {
	return &Handler{
		service:      service,
		validate:     validator.New(),
		clientOrigin: clientOrigin,
	}
}

// GetState handles GET /api/state.
func (h *Handler) GetState(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.Store().Snapshot())
}

// LoadItinerary handles POST /api/itineraries/:itineraryId/load.
func (h *Handler) LoadItinerary(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("itineraryId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid itinerary ID"})
	}

	if err := h.service.LoadItinerary(c.Request().Context(), id); err != nil {
		return h.fail(c, "Handler.LoadItinerary", "Failed to load itinerary", err)
	}
	return c.JSON(http.StatusOK, h.service.Store().Snapshot())
}

// SearchPlace handles POST /api/places/search.
func (h *Handler) SearchPlace(c echo.Context) error {
	var req models.PlaceLookupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	place, err := h.service.SearchPlace(c.Request().Context(), req.PlaceID)
	if err != nil {
		return h.fail(c, "Handler.SearchPlace", "Failed to look up place", err)
	}
	return c.JSON(http.StatusOK, place)
}

// ClearPlaceInfo handles DELETE /api/places/search.
func (h *Handler) ClearPlaceInfo(c echo.Context) error {
	if err := h.service.ClearPlaceInfo(); err != nil {
		return h.fail(c, "Handler.ClearPlaceInfo", "Failed to clear place", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AddDestination handles POST /api/destinations.
func (h *Handler) AddDestination(c echo.Context) error {
	var req models.AddDestinationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	dest, err := h.service.AddDestination(c.Request().Context(), *req.Day, req.Datetime)
	if err != nil {
		return h.fail(c, "Handler.AddDestination", "Failed to add destination", err)
	}
	return c.JSON(http.StatusCreated, dest)
}

// ChangeDestinationTime handles PATCH /api/destinations/:destinationId.
func (h *Handler) ChangeDestinationTime(c echo.Context) error {
	destinationID, err := strconv.Atoi(c.Param("destinationId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid destination ID"})
	}

	var req models.ChangeDestinationTimeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	if err := h.service.ChangeDestinationTime(c.Request().Context(), destinationID, req.Datetime); err != nil {
		return h.fail(c, "Handler.ChangeDestinationTime", "Failed to change destination time", err)
	}
	return c.JSON(http.StatusOK, h.service.Store().Destinations.Get())
}

// DeleteDestination handles DELETE /api/days/:dayIndex/destinations/:order.
func (h *Handler) DeleteDestination(c echo.Context) error {
	dayIndex, err := strconv.Atoi(c.Param("dayIndex"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid day index"})
	}
	order, err := strconv.Atoi(c.Param("order"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid destination position"})
	}

	if err := h.service.DeleteDestination(c.Request().Context(), dayIndex, order); err != nil {
		return h.fail(c, "Handler.DeleteDestination", "Failed to delete destination", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetDayRoutes handles GET /api/days/:dayIndex/routes.
func (h *Handler) GetDayRoutes(c echo.Context) error {
	day, err := strconv.Atoi(c.Param("dayIndex"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid day index"})
	}

	routes, err := h.service.DayRoutes(c.Request().Context(), day)
	if err != nil {
		return h.fail(c, "Handler.GetDayRoutes", "Failed to get routes", err)
	}
	return c.JSON(http.StatusOK, routes)
}

// UpdateTransportationMode handles PATCH /api/routes/:routeId.
func (h *Handler) UpdateTransportationMode(c echo.Context) error {
	routeID, err := strconv.Atoi(c.Param("routeId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid route ID"})
	}

	var req models.TransportationModeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	if err := h.service.SetTransportationMode(c.Request().Context(), routeID, req.TransportationMode); err != nil {
		return h.fail(c, "Handler.UpdateTransportationMode", "Failed to update route", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// fail maps service errors onto a status and a generic message.
func (h *Handler) fail(c echo.Context, op, message string, err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrDestinationNotFound):
		return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: err.Error()})
	case errors.Is(err, models.ErrDayOutOfRange), errors.Is(err, models.ErrInvalidMode):
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: err.Error()})
	case errors.Is(err, models.ErrNoPlaceSelected):
		return c.JSON(http.StatusConflict, models.ErrorResponse{Message: "Search for a place before adding it"})
	}

	c.Logger().Error(op+": ", err)
	var se *remote.StatusError
	if errors.As(err, &se) {
		return c.JSON(http.StatusBadGateway, models.ErrorResponse{Message: message})
	}
	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: message})
}

// RegisterRoutes attaches the editor endpoints to g.
func RegisterRoutes(g *echo.Group, h *Handler) {
	g.GET("/state", h.GetState)
	g.GET("/state/stream", h.StreamState)
	g.POST("/itineraries/:itineraryId/load", h.LoadItinerary)
	g.POST("/places/search", h.SearchPlace)
	g.DELETE("/places/search", h.ClearPlaceInfo)
	g.POST("/destinations", h.AddDestination)
	g.PATCH("/destinations/:destinationId", h.ChangeDestinationTime)
	g.DELETE("/days/:dayIndex/destinations/:order", h.DeleteDestination)
	g.GET("/days/:dayIndex/routes", h.GetDayRoutes)
	g.PATCH("/routes/:routeId", h.UpdateTransportationMode)
}
