package editor

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"trip-planner/internal/models"
	"trip-planner/internal/state"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

func newTestEcho(t *testing.T) (*echo.Echo, *Service, *fakeRemote) {
	t.Helper()
	svc, fr := newTestService(t)

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetOutput(io.Discard)
	RegisterRoutes(e.Group("/api"), NewHandler(svc, "http://localhost:5173"))
	return e, svc, fr
}

func doRequest(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHandler_GetState(t *testing.T) {
	e, _, _ := newTestEcho(t)

	rec := doRequest(e, http.MethodGet, "/api/state", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var snap state.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !snap.IsLoading {
		t.Error("isLoading = false before any load")
	}
}

func TestHandler_LoadItinerary(t *testing.T) {
	e, _, _ := newTestEcho(t)

	tests := []struct {
		name string
		path string
		want int
	}{
		{"loads", "/api/itineraries/7/load", http.StatusOK},
		{"invalid id", "/api/itineraries/abc/load", http.StatusBadRequest},
		{"unknown itinerary", "/api/itineraries/99/load", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(e, http.MethodPost, tt.path, "")
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}

	rec := doRequest(e, http.MethodGet, "/api/state", "")
	var snap state.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.IsLoading || len(snap.Destinations) != 3 || len(snap.PlacePairs) != 3 {
		t.Errorf("snapshot after load = %+v", snap)
	}
}

func TestHandler_DestinationWorkflow(t *testing.T) {
	e, svc, fr := newTestEcho(t)
	if rec := doRequest(e, http.MethodPost, "/api/itineraries/7/load", ""); rec.Code != http.StatusOK {
		t.Fatalf("load status = %d", rec.Code)
	}

	steps := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"add before search", http.MethodPost, "/api/destinations", `{"day":0,"datetime":"2024-03-01T10:30:00Z"}`, http.StatusConflict},
		{"search without place id", http.MethodPost, "/api/places/search", `{}`, http.StatusBadRequest},
		{"search", http.MethodPost, "/api/places/search", `{"placeId":"ChIJ-market"}`, http.StatusOK},
		{"add without day", http.MethodPost, "/api/destinations", `{"datetime":"2024-03-01T10:30:00Z"}`, http.StatusBadRequest},
		{"add past the last day", http.MethodPost, "/api/destinations", `{"day":9,"datetime":"2024-03-01T10:30:00Z"}`, http.StatusBadRequest},
		{"add", http.MethodPost, "/api/destinations", `{"day":0,"datetime":"2024-03-01T10:30:00Z"}`, http.StatusCreated},
		{"move unknown destination", http.MethodPatch, "/api/destinations/999", `{"datetime":"2024-03-01T08:00:00Z"}`, http.StatusNotFound},
		{"move", http.MethodPatch, "/api/destinations/21", `{"datetime":"2024-03-01T08:00:00Z"}`, http.StatusOK},
		{"delete bad day", http.MethodDelete, "/api/days/5/destinations/0", "", http.StatusBadRequest},
		{"delete", http.MethodDelete, "/api/days/0/destinations/0", "", http.StatusNoContent},
	}
	for _, s := range steps {
		rec := doRequest(e, s.method, s.path, s.body)
		if rec.Code != s.want {
			t.Fatalf("%s: status = %d, want %d: %s", s.name, rec.Code, s.want, rec.Body.String())
		}
	}

	// 21 moved to 08:00 and was then deleted from the front of the day.
	if ids := destinationIDs(svc.Store().Destinations.Get()[0]); !equalInts(ids, []int{20, 101}) {
		t.Errorf("day 1 = %v, want [20 101]", ids)
	}
	if len(fr.deleted) != 1 || fr.deleted[0] != 21 {
		t.Errorf("deleted = %v, want [21]", fr.deleted)
	}
}

func TestHandler_Routes(t *testing.T) {
	e, _, fr := newTestEcho(t)
	doRequest(e, http.MethodPost, "/api/itineraries/7/load", "")

	rec := doRequest(e, http.MethodGet, "/api/days/0/routes", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var routes []models.Route
	if err := json.Unmarshal(rec.Body.Bytes(), &routes); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(routes) != 1 || routes[0].TransportationMode != models.ModeDriving {
		t.Fatalf("routes = %+v", routes)
	}

	if rec := doRequest(e, http.MethodPatch, "/api/routes/101", `{"transportationMode":"TELEPORT"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("invalid mode status = %d, want 400", rec.Code)
	}
	if rec := doRequest(e, http.MethodPatch, "/api/routes/101", `{"transportationMode":"WALKING"}`); rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if fr.patchedRoutes[101] != models.ModeWalking {
		t.Errorf("patched routes = %v", fr.patchedRoutes)
	}
}

func TestHandler_RemoteFailure(t *testing.T) {
	e, _, fr := newTestEcho(t)
	doRequest(e, http.MethodPost, "/api/itineraries/7/load", "")
	doRequest(e, http.MethodPost, "/api/places/search", `{"placeId":"ChIJ-market"}`)
	fr.failPost = statusError(http.MethodPost, "/destinations", http.StatusServiceUnavailable)

	rec := doRequest(e, http.MethodPost, "/api/destinations", `{"day":0,"datetime":"2024-03-01T10:30:00Z"}`)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	var body models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body.Message != "Failed to add destination" {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestHandler_StreamState(t *testing.T) {
	e, svc, _ := newTestEcho(t)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/state/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	type received struct {
		Slice string          `json:"slice"`
		Value json.RawMessage `json:"value"`
	}

	seen := map[string]bool{}
	for len(seen) < 5 {
		var f received
		if err := conn.ReadJSON(&f); err != nil {
			t.Fatalf("ReadJSON() error = %v", err)
		}
		seen[f.Slice] = true
	}
	for _, name := range []string{"isLoading", "itinerary", "destinations", "placePairs", "placeInfo"} {
		if !seen[name] {
			t.Errorf("no initial frame for %s", name)
		}
	}

	if _, err := svc.SearchPlace(context.Background(), "ChIJ-market"); err != nil {
		t.Fatalf("SearchPlace() error = %v", err)
	}
	for {
		var f received
		if err := conn.ReadJSON(&f); err != nil {
			t.Fatalf("ReadJSON() error = %v", err)
		}
		if f.Slice != "placeInfo" {
			continue
		}
		var info models.PlaceInfo
		if err := json.Unmarshal(f.Value, &info); err != nil {
			t.Fatalf("decode placeInfo: %v", err)
		}
		if info["name"] == "Dihua Street" {
			return
		}
	}
}

func TestHandler_StreamRejectsForeignOrigin(t *testing.T) {
	e, _, _ := newTestEcho(t)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/state/stream"
	header := http.Header{"Origin": []string{"http://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	if err == nil {
		t.Fatal("Dial() succeeded from a foreign origin")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Errorf("response = %+v, want 403", resp)
	}
}
