package usecase

import (
	"context"
	"time"

	"flightsearch-service/internal/domain/entity"
	"flightsearch-service/internal/domain/repository"
	"flightsearch-service/pkg/logger"
	"flightsearch-service/pkg/metrics"
	"flightsearch-service/pkg/utils"
)

// Trip types the provider distinguishes
const (
	tripTypeRoundTrip = 1
	tripTypeOneWay    = 2
)

// SearchEngine runs flight searches and filters over their stored
// results. It is wired once at startup and shared by every tool call.
type SearchEngine struct {
	provider    repository.FlightProvider
	resultRepo  repository.SearchResultRepository
	airportRepo repository.AirportRepository
	transformer *utils.FlightTransformer
	metrics     *metrics.Metrics
	logger      logger.Logger
	apiKey      string
}

// NewSearchEngine creates a new search engine. airportRepo and metrics
// may be nil; airport enrichment and instrumentation are optional.
func NewSearchEngine(
	provider repository.FlightProvider,
	resultRepo repository.SearchResultRepository,
	airportRepo repository.AirportRepository,
	transformer *utils.FlightTransformer,
	metrics *metrics.Metrics,
	logger logger.Logger,
	apiKey string,
) *SearchEngine {
	return &SearchEngine{
		provider:    provider,
		resultRepo:  resultRepo,
		airportRepo: airportRepo,
		transformer: transformer,
		metrics:     metrics,
		logger:      logger,
		apiKey:      apiKey,
	}
}

// SearchFlights queries the provider, normalizes the payload and stores
// the result set under a fresh search identifier. Failures come back as
// a structured error response, never as a panic or a bare error; either
// the whole search succeeds and is stored, or nothing is stored.
func (e *SearchEngine) SearchFlights(ctx context.Context, departureID, arrivalID, outboundDate, returnDate, currency string) *entity.SearchResponse {
	if e.apiKey == "" {
		return &entity.SearchResponse{
			Status: "error",
			Error:  "SERPAPI_KEY environment variable is not set",
		}
	}

	if currency == "" {
		currency = "USD"
	}

	tripType := tripTypeOneWay
	if returnDate != "" {
		tripType = tripTypeRoundTrip
	}

	params := entity.SearchParams{
		DepartureID:  departureID,
		ArrivalID:    arrivalID,
		OutboundDate: outboundDate,
		ReturnDate:   returnDate,
		Currency:     currency,
		Type:         tripType,
	}

	start := time.Now()
	raw, err := e.provider.Search(ctx, params)
	e.metrics.ObserveProviderLatency(time.Since(start))
	if err != nil {
		e.metrics.IncError("provider")
		e.logger.Error("Provider search failed", "error", err)
		return &entity.SearchResponse{
			Status: "error",
			Error:  "Search failed: " + err.Error(),
		}
	}

	record, err := e.transformer.Transform(raw, params)
	if err != nil {
		e.metrics.IncError("transform")
		e.logger.Error("Failed to normalize provider response", "error", err)
		return &entity.SearchResponse{
			Status: "error",
			Error:  "Search failed: " + err.Error(),
		}
	}

	if err := e.resultRepo.Save(ctx, record.SearchID, record); err != nil {
		e.metrics.IncError("store")
		e.logger.Error("Failed to store search record", "searchId", record.SearchID, "error", err)
		return &entity.SearchResponse{
			Status: "error",
			Error:  "Search failed: " + err.Error(),
		}
	}

	e.metrics.IncSearches()
	e.metrics.AddFlightsNormalized(len(record.Flights))
	e.logger.Info("Search completed",
		"searchId", record.SearchID,
		"flights", len(record.Flights),
		"departure", departureID,
		"arrival", arrivalID)

	return &entity.SearchResponse{
		Status:       "success",
		SearchID:     record.SearchID,
		FlightsCount: len(record.Flights),
		Currency:     currency,
	}
}

// LookupAirport returns reference data for an IATA code. Unknown codes
// surface as repository.ErrAirportNotFound; a missing reference table
// as ErrAirportLookupDisabled.
func (e *SearchEngine) LookupAirport(ctx context.Context, code string) (*entity.Airport, error) {
	if e.airportRepo == nil {
		return nil, ErrAirportLookupDisabled
	}
	return e.airportRepo.GetByCode(ctx, code)
}

// SweepExpired removes stored searches older than maxAge
func (e *SearchEngine) SweepExpired(ctx context.Context, maxAge time.Duration) (int, error) {
	deleted, err := e.resultRepo.Sweep(ctx, maxAge)
	if err != nil {
		e.metrics.IncError("sweep")
		return 0, err
	}
	e.metrics.AddRecordsSwept(deleted)
	if deleted > 0 {
		e.logger.Info("Swept expired search records", "deleted", deleted)
	}
	return deleted, nil
}
