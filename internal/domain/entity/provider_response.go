// internal/domain/entity/provider_response.go
package entity

import (
	"encoding/json"
)

// RawAirport is a provider-side airport object. Name, ID and Time are
// pointers because their absence is meaningful: a segment without all
// three is invalid, everything else in the payload may default.
type RawAirport struct {
	Name *string `json:"name"`
	ID   *string `json:"id"`
	Time *string `json:"time"`
}

// RawSegment is one flight leg as the provider reports it
type RawSegment struct {
	Airline                 string      `json:"airline"`
	FlightNumber            string      `json:"flight_number"`
	Airplane                string      `json:"airplane"`
	TravelClass             string      `json:"travel_class"`
	DepartureAirport        *RawAirport `json:"departure_airport"`
	ArrivalAirport          *RawAirport `json:"arrival_airport"`
	Duration                json.Number `json:"duration"`
	AirlineLogo             string      `json:"airline_logo"`
	Legroom                 string      `json:"legroom"`
	Overnight               bool        `json:"overnight"`
	PlaneAndCrewBy          string      `json:"plane_and_crew_by"`
	OftenDelayedByOver30Min bool        `json:"often_delayed_by_over_30_min"`
}

// RawItinerary is one travel option in the provider payload. Price and
// TotalDuration stay json.Number so absent or odd values coerce to zero
// instead of failing the decode.
type RawItinerary struct {
	Flights         []RawSegment           `json:"flights"`
	Price           json.Number            `json:"price"`
	TotalDuration   json.Number            `json:"total_duration"`
	Type            string                 `json:"type"`
	AirlineLogo     string                 `json:"airline_logo"`
	CarbonEmissions map[string]interface{} `json:"carbon_emissions"`
}

// ProviderResponse is the SerpAPI Google Flights payload surface this
// service consumes. Error carries a provider-embedded failure message.
type ProviderResponse struct {
	Error        string         `json:"error,omitempty"`
	BestFlights  []RawItinerary `json:"best_flights"`
	OtherFlights []RawItinerary `json:"other_flights"`
}

// AllItineraries concatenates the preferred and other lists, preferred
// first, preserving provider ordering within each list.
func (r *ProviderResponse) AllItineraries() []RawItinerary {
	all := make([]RawItinerary, 0, len(r.BestFlights)+len(r.OtherFlights))
	all = append(all, r.BestFlights...)
	all = append(all, r.OtherFlights...)
	return all
}
