package models

import (
	"encoding/json"
	"maps"
	"time"
)

// DateLayout is the calendar-day format used by the itinerary service in query strings.
const DateLayout = "2006-01-02"

// Itinerary is a trip plan spanning one or more days. Fields the planner
// does not model are kept in Extra and written back out unchanged.
type Itinerary struct {
	ID          int       `json:"id"`
	UserID      int       `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Tags        []string  `json:"tags,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// itineraryFields has Itinerary's fields without its JSON methods.
type itineraryFields Itinerary

var itineraryKeys = []string{"id", "userId", "title", "description", "startDate", "endDate", "tags"}

// UnmarshalJSON decodes the modelled fields and keeps every other key in Extra.
func (it *Itinerary) UnmarshalJSON(b []byte) error {
	var fields itineraryFields
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	for _, k := range itineraryKeys {
		delete(raw, k)
	}
	*it = Itinerary(fields)
	it.Extra = nil
	if len(raw) > 0 {
		it.Extra = raw
	}
	return nil
}

// MarshalJSON encodes the modelled fields merged with Extra.
func (it Itinerary) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal(itineraryFields(it))
	if err != nil || len(it.Extra) == 0 {
		return b, err
	}
	out := map[string]json.RawMessage{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	for k, v := range it.Extra {
		if _, ok := out[k]; !ok {
			out[k] = v
		}
	}
	return json.Marshal(out)
}

// Clone returns a deep copy of the itinerary.
func (it Itinerary) Clone() Itinerary {
	out := it
	if it.Tags != nil {
		out.Tags = append([]string(nil), it.Tags...)
	}
	out.Extra = maps.Clone(it.Extra)
	return out
}

// Dates lists every calendar day of the itinerary, StartDate to EndDate inclusive.
func (it Itinerary) Dates() []time.Time {
	if it.StartDate.IsZero() || it.EndDate.IsZero() {
		return nil
	}
	start := truncateDay(it.StartDate)
	end := truncateDay(it.EndDate)

	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// DayCount is the number of days the itinerary spans.
func (it Itinerary) DayCount() int {
	return len(it.Dates())
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
