// internal/domain/repository/search_result_repository.go
package repository

import (
	"context"
	"time"

	"flightsearch-service/internal/domain/entity"
)

// SearchResultRepository stores one normalized search record per
// search identifier. Records are written once and only removed by the
// expiry sweep; there is no update path.
type SearchResultRepository interface {
	// Save persists the record under searchID, overwriting any
	// existing document with that identifier.
	Save(ctx context.Context, searchID string, record *entity.SearchRecord) error

	// Get returns the record for searchID. The second return value is
	// false when no record exists; that is not an error.
	Get(ctx context.Context, searchID string) (*entity.SearchRecord, bool, error)

	// Sweep deletes every stored record older than maxAge and returns
	// how many were removed. Per-record failures must not abort the
	// sweep.
	Sweep(ctx context.Context, maxAge time.Duration) (int, error)
}
