// internal/domain/repository/flight_provider.go
package repository

import (
	"context"

	"flightsearch-service/internal/domain/entity"
)

// FlightProvider is the external flight-search API
type FlightProvider interface {
	// Search runs one provider query. A provider-embedded error field
	// or a transport failure both surface as an error; the response is
	// only returned when the provider answered with itineraries.
	Search(ctx context.Context, params entity.SearchParams) (*entity.ProviderResponse, error)
}
