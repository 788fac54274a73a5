package editor

import (
	"context"
	"net/http"
	"net/url"

	"trip-planner/internal/pubsub"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// frame is one state change pushed over the stream.
type frame struct {
	Slice string `json:"slice"`
	Value any    `json:"value"`
}

func (h *Handler) upgrader() *websocket.Upgrader {
	return &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || (h.clientOrigin != "" && origin == h.clientOrigin) {
				return true
			}
			u, err := url.Parse(origin)
			return err == nil && u.Host == r.Host
		},
	}
}

// StreamState upgrades to a WebSocket and pushes every slice's value, first
// the current one and then each change, until the client goes away.
func (h *Handler) StreamState(c echo.Context) error {
	conn, err := h.upgrader().Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	// Reads only detect the peer closing.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	store := h.service.Store()
	frames := make(chan frame, 16)
	go pipe(ctx, store.IsLoading, frames)
	go pipe(ctx, store.Itinerary, frames)
	go pipe(ctx, store.Destinations, frames)
	go pipe(ctx, store.PlacePairs, frames)
	go pipe(ctx, store.PlaceInfo, frames)

	for {
		select {
		case <-ctx.Done():
			return nil
		case f := <-frames:
			if err := conn.WriteJSON(f); err != nil {
				c.Logger().Debugf("Handler.StreamState: write: %v", err)
				return nil
			}
		}
	}
}

func pipe[S, A any](ctx context.Context, c *pubsub.Container[S, A], out chan<- frame) {
	for v := range c.Watch(ctx) {
		select {
		case out <- frame{Slice: c.Name(), Value: v}:
		case <-ctx.Done():
			return
		}
	}
}
