package utils

import (
	"fmt"
	"time"

	"flightsearch-service/internal/domain/entity"
	"flightsearch-service/pkg/logger"

	"github.com/google/uuid"
)

// MissingAirportPolicy decides what happens when a provider segment
// lacks one of the required airport fields (name, id, time).
type MissingAirportPolicy string

const (
	// SkipFlight drops only the itinerary containing the bad segment
	SkipFlight MissingAirportPolicy = "skip-flight"
	// FailSearch aborts the whole transform with an error
	FailSearch MissingAirportPolicy = "fail-search"
	// DropAll keeps the search but discards every flight in it
	DropAll MissingAirportPolicy = "drop-all"
)

// ParseMissingAirportPolicy maps a config string onto a policy,
// falling back to SkipFlight for anything unrecognized.
func ParseMissingAirportPolicy(s string) MissingAirportPolicy {
	switch MissingAirportPolicy(s) {
	case SkipFlight, FailSearch, DropAll:
		return MissingAirportPolicy(s)
	default:
		return SkipFlight
	}
}

// FlightTransformer normalizes raw provider payloads into SearchRecords
type FlightTransformer struct {
	policy MissingAirportPolicy
	logger logger.Logger
}

// NewFlightTransformer creates a new flight transformer
func NewFlightTransformer(policy MissingAirportPolicy, logger logger.Logger) *FlightTransformer {
	return &FlightTransformer{
		policy: policy,
		logger: logger,
	}
}

// Transform converts a provider response into a normalized SearchRecord
// with a fresh search identifier. Preferred itineraries come first, then
// the others, in provider order. Itineraries without segments are
// dropped. Segments missing a required airport field are handled per
// the configured policy.
func (t *FlightTransformer) Transform(raw *entity.ProviderResponse, params entity.SearchParams) (*entity.SearchRecord, error) {
	record := &entity.SearchRecord{
		SearchID:     uuid.NewString(),
		Timestamp:    time.Now(),
		SearchParams: params,
		Flights:      []entity.FlightOption{},
		Status:       "success",
	}

	for _, itinerary := range raw.AllItineraries() {
		if len(itinerary.Flights) == 0 {
			continue
		}

		flight, err := t.buildFlight(itinerary, params)
		if err != nil {
			switch t.policy {
			case FailSearch:
				return nil, err
			case DropAll:
				t.logger.Warn("Discarding all flights for this search", "error", err)
				record.Flights = []entity.FlightOption{}
				return record, nil
			default:
				t.logger.Warn("Skipping flight with invalid segment", "error", err)
				continue
			}
		}

		record.Flights = append(record.Flights, *flight)
	}

	return record, nil
}

// buildFlight normalizes one itinerary
func (t *FlightTransformer) buildFlight(itinerary entity.RawItinerary, params entity.SearchParams) (*entity.FlightOption, error) {
	segments := make([]entity.Segment, 0, len(itinerary.Flights))
	for i, raw := range itinerary.Flights {
		departure, err := requireAirport(raw.DepartureAirport)
		if err != nil {
			return nil, fmt.Errorf("segment %d departure airport: %w", i, err)
		}
		arrival, err := requireAirport(raw.ArrivalAirport)
		if err != nil {
			return nil, fmt.Errorf("segment %d arrival airport: %w", i, err)
		}

		segments = append(segments, entity.Segment{
			Airline:                 raw.Airline,
			FlightNumber:            raw.FlightNumber,
			Airplane:                raw.Airplane,
			TravelClass:             raw.TravelClass,
			DepartureAirport:        departure,
			ArrivalAirport:          arrival,
			Duration:                NumberToInt(raw.Duration),
			AirlineLogo:             raw.AirlineLogo,
			Legroom:                 raw.Legroom,
			Overnight:               raw.Overnight,
			PlaneAndCrewBy:          raw.PlaneAndCrewBy,
			OftenDelayedByOver30Min: raw.OftenDelayedByOver30Min,
		})
	}

	currency := params.Currency
	if currency == "" {
		currency = "USD"
	}

	flight := &entity.FlightOption{
		Price:         NumberToFloat(itinerary.Price),
		Currency:      currency,
		TotalDuration: NumberToInt(itinerary.TotalDuration),
		// Stops is always derived from the segment count, never read
		// from the provider.
		Stops:           len(segments) - 1,
		Type:            itinerary.Type,
		AirlineLogo:     itinerary.AirlineLogo,
		Segments:        segments,
		CarbonEmissions: itinerary.CarbonEmissions,
	}
	flight.RecomputeEndpoints()

	return flight, nil
}

// requireAirport validates the three fields every segment endpoint must
// carry; anything else in the payload may default, these may not.
func requireAirport(raw *entity.RawAirport) (entity.AirportTerminal, error) {
	if raw == nil {
		return entity.AirportTerminal{}, fmt.Errorf("airport object is missing")
	}
	if raw.Name == nil {
		return entity.AirportTerminal{}, fmt.Errorf("required field 'name' is missing")
	}
	if raw.ID == nil {
		return entity.AirportTerminal{}, fmt.Errorf("required field 'id' is missing")
	}
	if raw.Time == nil {
		return entity.AirportTerminal{}, fmt.Errorf("required field 'time' is missing")
	}
	return entity.AirportTerminal{Name: *raw.Name, ID: *raw.ID, Time: *raw.Time}, nil
}
