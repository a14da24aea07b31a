// internal/domain/repository/airport_repository.go
package repository

import (
	"context"
	"errors"

	"flightsearch-service/internal/domain/entity"
)

// ErrAirportNotFound means the reference table has no row for the code.
// Implementations map their driver's not-found error onto it so callers
// can tell an unknown code from a backend failure.
var ErrAirportNotFound = errors.New("airport not found")

// AirportRepository looks up airport reference data by IATA code
type AirportRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.Airport, error)
}
