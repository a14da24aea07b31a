package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"flightsearch-service/internal/domain/entity"
	"flightsearch-service/internal/domain/repository"
	"flightsearch-service/pkg/logger"
)

const defaultSerpAPIBaseURL = "https://serpapi.com/search"

// SerpAPIFlightProvider queries the SerpAPI Google Flights engine
type SerpAPIFlightProvider struct {
	logger  logger.Logger
	apiKey  string
	baseURL string
	gl      string
	hl      string
	client  *http.Client
}

// NewSerpAPIFlightProvider creates a new SerpAPI flight provider. The
// timeout bounds every provider round trip; callers can tighten it
// further through the request context.
func NewSerpAPIFlightProvider(apiKey, gl, hl string, timeout time.Duration, logger logger.Logger) repository.FlightProvider {
	return &SerpAPIFlightProvider{
		logger:  logger,
		apiKey:  apiKey,
		baseURL: defaultSerpAPIBaseURL,
		gl:      gl,
		hl:      hl,
		client:  &http.Client{Timeout: timeout},
	}
}

// Search runs one Google Flights query
func (p *SerpAPIFlightProvider) Search(ctx context.Context, params entity.SearchParams) (*entity.ProviderResponse, error) {
	query := url.Values{}
	query.Set("engine", "google_flights")
	query.Set("api_key", p.apiKey)
	query.Set("hl", p.hl)
	query.Set("gl", p.gl)
	query.Set("departure_id", params.DepartureID)
	query.Set("arrival_id", params.ArrivalID)
	query.Set("outbound_date", params.OutboundDate)
	if params.ReturnDate != "" {
		query.Set("return_date", params.ReturnDate)
	}
	query.Set("currency", params.Currency)
	query.Set("type", strconv.Itoa(params.Type))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider request: %w", err)
	}

	p.logger.Info("Searching flights",
		"departure", params.DepartureID,
		"arrival", params.ArrivalID,
		"outboundDate", params.OutboundDate)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	var payload entity.ProviderResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode provider response: %w", err)
	}

	// SerpAPI reports failures in-band; surface the message verbatim.
	if payload.Error != "" {
		return nil, fmt.Errorf("API Error: %s", payload.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	return &payload, nil
}
