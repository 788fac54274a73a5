package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestItinerary_KeepsUnmodelledFields(t *testing.T) {
	in := `{"id":7,"title":"Taipei","startDate":"2024-03-01T00:00:00Z","endDate":"2024-03-02T00:00:00Z",` +
		`"budget":{"currency":"TWD","amount":12000},"isPublic":true}`

	var it Itinerary
	if err := json.Unmarshal([]byte(in), &it); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if it.ID != 7 || it.Title != "Taipei" || it.DayCount() != 2 {
		t.Errorf("Itinerary = %+v", it)
	}
	if len(it.Extra) != 2 {
		t.Fatalf("Extra = %v, want budget and isPublic", it.Extra)
	}

	out, err := json.Marshal(it.Clone())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var back map[string]any
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	budget, ok := back["budget"].(map[string]any)
	if !ok || budget["currency"] != "TWD" || budget["amount"] != float64(12000) {
		t.Errorf("budget = %v, want it written back", back["budget"])
	}
	if back["isPublic"] != true || back["title"] != "Taipei" || back["id"] != float64(7) {
		t.Errorf("marshalled = %s", out)
	}
}

func TestItinerary_WithoutExtraMarshalsPlainFields(t *testing.T) {
	it := Itinerary{ID: 1, Title: "Day trip", StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}

	out, err := json.Marshal(it)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var back Itinerary
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back.Extra != nil || back.ID != 1 || back.Title != "Day trip" {
		t.Errorf("round trip = %+v", back)
	}
}

func TestItinerary_CloneCopiesExtra(t *testing.T) {
	it := Itinerary{Tags: []string{"food"}, Extra: map[string]json.RawMessage{"isPublic": json.RawMessage("true")}}
	c := it.Clone()
	c.Tags[0] = "museums"
	c.Extra["isPublic"] = json.RawMessage("false")

	if it.Tags[0] != "food" || string(it.Extra["isPublic"]) != "true" {
		t.Errorf("Clone() shares state with the original: %+v", it)
	}
}
