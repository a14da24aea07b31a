package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"flightsearch-service/internal/domain/entity"
)

// ErrSearchNotFound means the search identifier has no stored record,
// because it never existed or because the sweep removed it
var ErrSearchNotFound = errors.New("no search results found for the provided search ID")

// ErrAirportLookupDisabled means no airport reference table is wired
var ErrAirportLookupDisabled = errors.New("airport lookup is not configured")

// FilterFlights loads the stored record for spec.SearchID and returns a
// filtered, optionally sorted view over it. The stored record itself is
// never modified. All active criteria must hold for a flight to
// survive; the predicates are independent so evaluation order does not
// matter.
func (e *SearchEngine) FilterFlights(ctx context.Context, spec *entity.FilterSpec) (*entity.FilterResult, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}

	record, found, err := e.resultRepo.Get(ctx, spec.SearchID)
	if err != nil {
		e.metrics.IncError("filter")
		return nil, fmt.Errorf("failed to load search results: %w", err)
	}
	if !found {
		return nil, ErrSearchNotFound
	}

	filtered := make([]entity.FlightOption, 0, len(record.Flights))
	for _, flight := range record.Flights {
		if !matches(flight, spec) {
			continue
		}
		filtered = append(filtered, flight)
	}

	sortFlights(filtered, spec)

	e.metrics.IncFilters()
	e.logger.Info("Filtered search results",
		"searchId", spec.SearchID,
		"total", len(record.Flights),
		"filtered", len(filtered))

	return &entity.FilterResult{
		FilteredCount: len(filtered),
		TotalCount:    len(record.Flights),
		Flights:       filtered,
	}, nil
}

// matches applies the conjunction of all active criteria
func matches(flight entity.FlightOption, spec *entity.FilterSpec) bool {
	if spec.MaxPrice != nil && flight.Price > *spec.MaxPrice {
		return false
	}
	if spec.MaxDuration != nil && flight.TotalDuration > *spec.MaxDuration {
		return false
	}
	if spec.MaxStops != nil && flight.Stops > *spec.MaxStops {
		return false
	}
	// nil means the criterion is absent; an explicitly empty list is
	// active and excludes every flight.
	if spec.PreferredAirlines != nil && !hasPreferredAirline(flight, spec.PreferredAirlines) {
		return false
	}
	if spec.DepartureTimeRange != nil && !spec.DepartureTimeRange.Contains(flight.Departure.Time) {
		return false
	}
	return true
}

// hasPreferredAirline reports whether any segment is operated by one of
// the preferred airlines. Membership only; order carries no weight.
func hasPreferredAirline(flight entity.FlightOption, preferred []string) bool {
	set := make(map[string]struct{}, len(preferred))
	for _, airline := range preferred {
		set[airline] = struct{}{}
	}
	for _, segment := range flight.Segments {
		if _, ok := set[segment.Airline]; ok {
			return true
		}
	}
	return false
}

// sortFlights stable-sorts in place by the requested field. Stability
// matters: prices and durations tie often and ties must keep their
// original relative order.
func sortFlights(flights []entity.FlightOption, spec *entity.FilterSpec) {
	if spec.SortBy == "" {
		return
	}

	var less func(a, b entity.FlightOption) bool
	switch spec.SortBy {
	case entity.SortByPrice:
		less = func(a, b entity.FlightOption) bool { return a.Price < b.Price }
	case entity.SortByDuration:
		less = func(a, b entity.FlightOption) bool { return a.TotalDuration < b.TotalDuration }
	case entity.SortByDepartureTime:
		less = func(a, b entity.FlightOption) bool { return a.Departure.Time < b.Departure.Time }
	default:
		return
	}

	if spec.Descending() {
		asc := less
		less = func(a, b entity.FlightOption) bool { return asc(b, a) }
	}

	sort.SliceStable(flights, func(i, j int) bool { return less(flights[i], flights[j]) })
}
