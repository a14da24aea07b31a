// internal/domain/entity/filter.go
package entity

import (
	"encoding/json"
	"fmt"
)

// Sortable fields and orders accepted by FilterSpec
const (
	SortByPrice         = "price"
	SortByDuration      = "duration"
	SortByDepartureTime = "departure_time"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// TimeRange is an inclusive [start, end] window over the provider's
// departure time strings. It marshals as a two-element array to match
// the tuple shape callers send.
type TimeRange struct {
	Start string
	End   string
}

// UnmarshalJSON accepts the ["start", "end"] tuple form
func (tr *TimeRange) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("departure_time_range must be an array of two strings: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("departure_time_range must have exactly 2 elements, got %d", len(pair))
	}
	tr.Start = pair[0]
	tr.End = pair[1]
	return nil
}

// MarshalJSON emits the tuple form
func (tr TimeRange) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{tr.Start, tr.End})
}

// Contains reports whether t falls inside the window, inclusive.
// Provider time strings compare correctly as plain strings.
func (tr TimeRange) Contains(t string) bool {
	return tr.Start <= t && t <= tr.End
}

// FilterSpec is the typed filter/sort request over a stored search.
// Every criterion is optional; the active ones apply as a conjunction.
type FilterSpec struct {
	SearchID           string     `json:"search_id"`
	MaxPrice           *float64   `json:"max_price,omitempty"`
	MaxDuration        *int       `json:"max_duration,omitempty"`
	MaxStops           *int       `json:"max_stops,omitempty"`
	PreferredAirlines  []string   `json:"preferred_airlines,omitempty"`
	DepartureTimeRange *TimeRange `json:"departure_time_range,omitempty"`
	SortBy             string     `json:"sort_by,omitempty"`
	SortOrder          string     `json:"sort_order,omitempty"`
}

// Validate checks the spec once at the boundary so the predicate loop
// never has to deal with malformed input.
func (s *FilterSpec) Validate() error {
	if s.SearchID == "" {
		return fmt.Errorf("search_id is required")
	}
	switch s.SortBy {
	case "", SortByPrice, SortByDuration, SortByDepartureTime:
	default:
		return fmt.Errorf("sort_by must be one of price, duration, departure_time; got %q", s.SortBy)
	}
	switch s.SortOrder {
	case "", SortAsc, SortDesc:
	default:
		return fmt.Errorf("sort_order must be asc or desc; got %q", s.SortOrder)
	}
	if s.DepartureTimeRange != nil {
		if s.DepartureTimeRange.Start == "" || s.DepartureTimeRange.End == "" {
			return fmt.Errorf("departure_time_range requires both start and end")
		}
	}
	if s.MaxStops != nil && *s.MaxStops < 0 {
		return fmt.Errorf("max_stops must not be negative")
	}
	return nil
}

// Descending reports whether the sort direction is descending;
// ascending is the default.
func (s *FilterSpec) Descending() bool {
	return s.SortOrder == SortDesc
}

// FilterResult is the filtered/sorted view over one stored search
type FilterResult struct {
	FilteredCount int            `json:"filtered_count"`
	TotalCount    int            `json:"total_count"`
	Flights       []FlightOption `json:"flights"`
}
