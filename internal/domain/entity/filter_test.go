package entity

import (
	"encoding/json"
	"testing"
)

func TestFilterSpec_UnmarshalTupleRange(t *testing.T) {
	raw := `{
		"search_id": "abc",
		"max_price": 500,
		"departure_time_range": ["2026-09-01 06:00", "2026-09-01 12:00"],
		"sort_by": "price",
		"sort_order": "desc"
	}`

	var spec FilterSpec
	if err := json.Unmarshal([]byte(raw), &spec); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if spec.MaxPrice == nil || *spec.MaxPrice != 500 {
		t.Errorf("MaxPrice = %v", spec.MaxPrice)
	}
	if spec.DepartureTimeRange.Start != "2026-09-01 06:00" || spec.DepartureTimeRange.End != "2026-09-01 12:00" {
		t.Errorf("range = %+v", spec.DepartureTimeRange)
	}
	if !spec.Descending() {
		t.Error("desc order should report Descending")
	}
	if err := spec.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestTimeRange_RejectsWrongArity(t *testing.T) {
	var spec FilterSpec
	err := json.Unmarshal([]byte(`{"search_id":"x","departure_time_range":["only-one"]}`), &spec)
	if err == nil {
		t.Error("one-element range should fail to unmarshal")
	}
}

func TestTimeRange_ContainsInclusive(t *testing.T) {
	tr := TimeRange{Start: "08:00", End: "10:00"}
	for _, tt := range []struct {
		time string
		want bool
	}{
		{"08:00", true},
		{"09:30", true},
		{"10:00", true},
		{"07:59", false},
		{"10:01", false},
	} {
		if got := tr.Contains(tt.time); got != tt.want {
			t.Errorf("Contains(%q) = %v, want %v", tt.time, got, tt.want)
		}
	}
}

func TestFilterSpec_Validate(t *testing.T) {
	negative := -1
	for name, spec := range map[string]FilterSpec{
		"missing search id": {},
		"bad sort field":    {SearchID: "x", SortBy: "color"},
		"bad sort order":    {SearchID: "x", SortOrder: "up"},
		"half-open range":   {SearchID: "x", DepartureTimeRange: &TimeRange{Start: "08:00"}},
		"negative stops":    {SearchID: "x", MaxStops: &negative},
	} {
		if err := spec.Validate(); err == nil {
			t.Errorf("%s: expected a validation error", name)
		}
	}

	valid := FilterSpec{SearchID: "x", SortBy: SortByDuration}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid spec rejected: %v", err)
	}
}

func TestFlightOption_RecomputeEndpoints(t *testing.T) {
	f := FlightOption{
		Segments: []Segment{
			{
				DepartureAirport: AirportTerminal{Name: "O'Hare", ID: "ORD", Time: "08:00"},
				ArrivalAirport:   AirportTerminal{Name: "Dallas", ID: "DFW", Time: "10:30"},
			},
			{
				DepartureAirport: AirportTerminal{Name: "Dallas", ID: "DFW", Time: "12:00"},
				ArrivalAirport:   AirportTerminal{Name: "LAX", ID: "LAX", Time: "13:45"},
			},
		},
		// stale views that must be overwritten
		Departure: Endpoint{Time: "stale"},
		Arrival:   Endpoint{Time: "stale"},
	}

	f.RecomputeEndpoints()

	if f.Departure.Airport.ID != "ORD" || f.Departure.Time != "08:00" {
		t.Errorf("Departure = %+v", f.Departure)
	}
	if f.Arrival.Airport.ID != "LAX" || f.Arrival.Time != "13:45" {
		t.Errorf("Arrival = %+v", f.Arrival)
	}
}

func TestProviderResponse_AllItinerariesOrder(t *testing.T) {
	resp := ProviderResponse{
		BestFlights:  []RawItinerary{{Type: "best-1"}, {Type: "best-2"}},
		OtherFlights: []RawItinerary{{Type: "other-1"}},
	}
	all := resp.AllItineraries()
	if len(all) != 3 {
		t.Fatalf("got %d itineraries, want 3", len(all))
	}
	if all[0].Type != "best-1" || all[1].Type != "best-2" || all[2].Type != "other-1" {
		t.Errorf("order = %s, %s, %s", all[0].Type, all[1].Type, all[2].Type)
	}
}
