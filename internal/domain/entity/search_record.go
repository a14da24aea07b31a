// internal/domain/entity/search_record.go
package entity

import (
	"time"
)

// AirportTerminal is one side of a flight segment: the airport plus the
// local departure or arrival time string as the provider reports it.
type AirportTerminal struct {
	Name string `json:"name" bson:"name"`
	ID   string `json:"id" bson:"id"`
	Time string `json:"time" bson:"time"`
}

// Segment is one physical flight leg within an itinerary
type Segment struct {
	Airline                 string          `json:"airline" bson:"airline"`
	FlightNumber            string          `json:"flight_number" bson:"flightNumber"`
	Airplane                string          `json:"airplane" bson:"airplane"`
	TravelClass             string          `json:"travel_class" bson:"travelClass"`
	DepartureAirport        AirportTerminal `json:"departure_airport" bson:"departureAirport"`
	ArrivalAirport          AirportTerminal `json:"arrival_airport" bson:"arrivalAirport"`
	Duration                int             `json:"duration" bson:"duration"`
	AirlineLogo             string          `json:"airline_logo" bson:"airlineLogo"`
	Legroom                 string          `json:"legroom" bson:"legroom"`
	Overnight               bool            `json:"overnight" bson:"overnight"`
	PlaneAndCrewBy          string          `json:"plane_and_crew_by" bson:"planeAndCrewBy"`
	OftenDelayedByOver30Min bool            `json:"often_delayed_by_over_30_min" bson:"oftenDelayedByOver30Min"`
}

// Endpoint is a convenience view of where an itinerary starts or ends
type Endpoint struct {
	Airport AirportTerminal `json:"airport" bson:"airport"`
	Time    string          `json:"time" bson:"time"`
}

// FlightOption is one bookable itinerary made of one or more segments
// in chronological order. Departure and Arrival are derived from the
// first and last segment; RecomputeEndpoints is the only writer.
type FlightOption struct {
	Price           float64                `json:"price" bson:"price"`
	Currency        string                 `json:"currency" bson:"currency"`
	TotalDuration   int                    `json:"total_duration" bson:"totalDuration"`
	Stops           int                    `json:"stops" bson:"stops"`
	Type            string                 `json:"type" bson:"type"`
	AirlineLogo     string                 `json:"airline_logo" bson:"airlineLogo"`
	Segments        []Segment              `json:"segments" bson:"segments"`
	CarbonEmissions map[string]interface{} `json:"carbon_emissions" bson:"carbonEmissions"`
	Departure       Endpoint               `json:"departure" bson:"departure"`
	Arrival         Endpoint               `json:"arrival" bson:"arrival"`
}

// RecomputeEndpoints refreshes the derived Departure and Arrival views
// from the segment list. Callers must invoke it after building or
// loading a flight so the views can never drift from the segments.
func (f *FlightOption) RecomputeEndpoints() {
	if len(f.Segments) == 0 {
		return
	}
	first := f.Segments[0]
	last := f.Segments[len(f.Segments)-1]
	f.Departure = Endpoint{Airport: first.DepartureAirport, Time: first.DepartureAirport.Time}
	f.Arrival = Endpoint{Airport: last.ArrivalAirport, Time: last.ArrivalAirport.Time}
}

// SearchParams echoes the request that produced a search
type SearchParams struct {
	DepartureID  string `json:"departure_id" bson:"departureId"`
	ArrivalID    string `json:"arrival_id" bson:"arrivalId"`
	OutboundDate string `json:"outbound_date" bson:"outboundDate"`
	ReturnDate   string `json:"return_date,omitempty" bson:"returnDate,omitempty"`
	Currency     string `json:"currency" bson:"currency"`
	Type         int    `json:"type" bson:"type"`
}

// SearchRecord is the normalized result set of one search invocation.
// It is created once, stored under SearchID and never mutated.
type SearchRecord struct {
	SearchID     string         `json:"search_id" bson:"searchId"`
	Timestamp    time.Time      `json:"timestamp" bson:"timestamp"`
	SearchParams SearchParams   `json:"search_params" bson:"searchParams"`
	Flights      []FlightOption `json:"flights" bson:"flights"`
	Status       string         `json:"status" bson:"status"`
}

// RecomputeEndpoints re-derives every flight's endpoint views
func (r *SearchRecord) RecomputeEndpoints() {
	for i := range r.Flights {
		r.Flights[i].RecomputeEndpoints()
	}
}

// StoredSearch is the persisted document shape: the record wrapped
// with the storage timestamp the sweep uses for expiry.
type StoredSearch struct {
	Timestamp time.Time    `json:"timestamp" bson:"timestamp"`
	Results   SearchRecord `json:"results" bson:"results"`
}

// SearchResponse is what the search tool returns to the caller
type SearchResponse struct {
	Status       string `json:"status"`
	SearchID     string `json:"search_id,omitempty"`
	FlightsCount int    `json:"flights_count,omitempty"`
	Currency     string `json:"currency,omitempty"`
	Error        string `json:"error,omitempty"`
}
