package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"flightsearch-service/internal/domain/entity"
	"flightsearch-service/internal/domain/repository"
	storeRepo "flightsearch-service/internal/interface/repository"
	"flightsearch-service/internal/usecase"
	"flightsearch-service/pkg/logger"
	"flightsearch-service/pkg/utils"
)

type cannedProvider struct {
	response *entity.ProviderResponse
}

func (p *cannedProvider) Search(ctx context.Context, params entity.SearchParams) (*entity.ProviderResponse, error) {
	return p.response, nil
}

type fakeAirportRepo struct {
	airports map[string]*entity.Airport
	err      error
}

func (r *fakeAirportRepo) GetByCode(ctx context.Context, code string) (*entity.Airport, error) {
	if r.err != nil {
		return nil, r.err
	}
	if airport, ok := r.airports[strings.ToUpper(code)]; ok {
		return airport, nil
	}
	return nil, repository.ErrAirportNotFound
}

func strPtr(s string) *string { return &s }

func twoSegmentResponse() *entity.ProviderResponse {
	segment := func(from, to, depart, arrive string) entity.RawSegment {
		return entity.RawSegment{
			Airline:          "United",
			DepartureAirport: &entity.RawAirport{Name: strPtr(from), ID: strPtr(from), Time: strPtr(depart)},
			ArrivalAirport:   &entity.RawAirport{Name: strPtr(to), ID: strPtr(to), Time: strPtr(arrive)},
		}
	}
	return &entity.ProviderResponse{
		BestFlights: []entity.RawItinerary{
			{
				Flights: []entity.RawSegment{
					segment("ORD", "DFW", "2026-09-01 08:00", "2026-09-01 10:30"),
					segment("DFW", "LAX", "2026-09-01 12:00", "2026-09-01 13:45"),
				},
				Price:         json.Number("350"),
				TotalDuration: json.Number("345"),
			},
		},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return newTestServerWithAirports(t, nil)
}

func newTestServerWithAirports(t *testing.T, airports repository.AirportRepository) *Server {
	t.Helper()
	log := logger.NewNopLogger()
	store, err := storeRepo.NewFileSearchResultRepository(t.TempDir(), log)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	transformer := utils.NewFlightTransformer(utils.SkipFlight, log)
	engine := usecase.NewSearchEngine(&cannedProvider{response: twoSegmentResponse()}, store, airports, transformer, nil, log, "test-key")
	return NewServer(engine, 5*time.Second, log)
}

// rpc sends one request through the stdio loop and decodes the response
func rpc(t *testing.T, srv *Server, method string, params map[string]any) rpcResponse {
	t.Helper()
	req := rpcRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params}
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	var out bytes.Buffer
	if err := srv.Serve(context.Background(), strings.NewReader(string(data)), &out); err != nil {
		t.Fatalf("Serve failed: %v", err)
	}

	var resp rpcResponse
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", out.String(), err)
	}
	return resp
}

func callTool(t *testing.T, srv *Server, name string, args map[string]any) rpcResponse {
	t.Helper()
	return rpc(t, srv, "tools/call", map[string]any{"name": name, "arguments": args})
}

func TestServer_ToolsList(t *testing.T) {
	srv := newTestServer(t)

	resp := rpc(t, srv, "tools/list", nil)
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}
	tools, ok := resp.Result["tools"].([]any)
	if !ok || len(tools) != 3 {
		t.Fatalf("expected 3 tools, got %v", resp.Result["tools"])
	}
}

func TestServer_SearchThenFilter(t *testing.T) {
	srv := newTestServer(t)

	search := callTool(t, srv, "search_flights", map[string]any{
		"departure_id":  "ORD",
		"arrival_id":    "LAX",
		"outbound_date": "2026-09-01",
	})
	if search.Error != nil {
		t.Fatalf("search error: %v", search.Error)
	}
	if search.Result["status"] != "success" {
		t.Fatalf("search result = %v", search.Result)
	}
	if search.Result["flights_count"].(float64) != 1 {
		t.Errorf("flights_count = %v, want 1", search.Result["flights_count"])
	}
	searchID, _ := search.Result["search_id"].(string)
	if searchID == "" {
		t.Fatal("search_id missing from result")
	}

	filter := callTool(t, srv, "filter_flights", map[string]any{
		"search_id": searchID,
		"max_stops": 0,
	})
	if filter.Error != nil {
		t.Fatalf("filter error: %v", filter.Error)
	}
	if filter.Result["filtered_count"].(float64) != 0 {
		t.Errorf("filtered_count = %v, want 0", filter.Result["filtered_count"])
	}
	if filter.Result["total_count"].(float64) != 1 {
		t.Errorf("total_count = %v, want 1", filter.Result["total_count"])
	}
}

func TestServer_FilterUnknownSearchID(t *testing.T) {
	srv := newTestServer(t)

	resp := callTool(t, srv, "filter_flights", map[string]any{"search_id": "missing"})
	if resp.Error != nil {
		t.Fatalf("lookup misses are results, not rpc errors: %v", resp.Error)
	}
	if resp.Result["status"] != "error" {
		t.Fatalf("result = %v", resp.Result)
	}
	if resp.Result["error"] != "No search results found for the provided search ID" {
		t.Errorf("error message = %v", resp.Result["error"])
	}
}

func TestServer_SearchMissingArguments(t *testing.T) {
	srv := newTestServer(t)

	resp := callTool(t, srv, "search_flights", map[string]any{"departure_id": "ORD"})
	if resp.Error == nil {
		t.Fatal("expected an rpc error for missing required arguments")
	}
}

func TestServer_UnknownTool(t *testing.T) {
	srv := newTestServer(t)

	resp := callTool(t, srv, "book_hotel", nil)
	if resp.Error == nil {
		t.Fatal("expected an rpc error for an unknown tool")
	}
}

func TestServer_PromptsRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	list := rpc(t, srv, "prompts/list", nil)
	if list.Error != nil {
		t.Fatalf("prompts/list error: %v", list.Error)
	}
	prompts, ok := list.Result["prompts"].([]any)
	if !ok || len(prompts) != 1 {
		t.Fatalf("expected 1 prompt, got %v", list.Result["prompts"])
	}

	get := rpc(t, srv, "prompts/get", map[string]any{"name": "flight_booking_assistant"})
	if get.Error != nil {
		t.Fatalf("prompts/get error: %v", get.Error)
	}
	text, _ := get.Result["prompt"].(string)
	if !strings.Contains(text, "flight booking assistant") {
		t.Errorf("prompt text looks wrong: %.80s", text)
	}
}

func TestServer_UnknownMethod(t *testing.T) {
	srv := newTestServer(t)

	resp := rpc(t, srv, "resources/list", nil)
	if resp.Error == nil {
		t.Fatal("expected an rpc error for an unknown method")
	}
}

func TestServer_MalformedFrameSkipped(t *testing.T) {
	srv := newTestServer(t)

	// A bad frame must be skipped, not re-read forever; the request
	// after it still gets served and Serve still reaches EOF.
	input := "{not json}\n" + `{"jsonrpc":"2.0","id":7,"method":"tools/list"}` + "\n"
	var out bytes.Buffer

	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(context.Background(), strings.NewReader(input), &out)
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve failed: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return; a malformed frame must not stall the loop")
	}

	var resp rpcResponse
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", out.String(), err)
	}
	if tools, ok := resp.Result["tools"].([]any); !ok || len(tools) != 3 {
		t.Errorf("request after the malformed frame was not served: %v", resp.Result)
	}
}

func TestServer_LookupAirport(t *testing.T) {
	srv := newTestServerWithAirports(t, &fakeAirportRepo{
		airports: map[string]*entity.Airport{
			"ORD": {Code: "ORD", AirportName: "O'Hare International", CityName: "Chicago", CountryName: "United States", TzName: "America/Chicago"},
		},
	})

	resp := callTool(t, srv, "lookup_airport", map[string]any{"code": "ord"})
	if resp.Error != nil {
		t.Fatalf("lookup error: %v", resp.Error)
	}
	if resp.Result["name"] != "O'Hare International" || resp.Result["timezone"] != "America/Chicago" {
		t.Errorf("result = %v", resp.Result)
	}
}

func TestServer_LookupAirportUnknownCode(t *testing.T) {
	srv := newTestServerWithAirports(t, &fakeAirportRepo{})

	resp := callTool(t, srv, "lookup_airport", map[string]any{"code": "ZZZ"})
	if resp.Error != nil {
		t.Fatalf("unknown codes are results, not rpc errors: %v", resp.Error)
	}
	if resp.Result["status"] != "error" {
		t.Fatalf("result = %v", resp.Result)
	}
	if resp.Result["error"] != `No airport found for code "ZZZ"` {
		t.Errorf("error message = %v", resp.Result["error"])
	}
}

func TestServer_LookupAirportBackendFailure(t *testing.T) {
	srv := newTestServerWithAirports(t, &fakeAirportRepo{err: errors.New("connection refused")})

	resp := callTool(t, srv, "lookup_airport", map[string]any{"code": "ORD"})
	if resp.Error == nil {
		t.Fatal("a lookup backend failure must surface as an rpc error, not a not-found result")
	}
}

func TestServer_LookupAirportDisabled(t *testing.T) {
	srv := newTestServer(t)

	resp := callTool(t, srv, "lookup_airport", map[string]any{"code": "ORD"})
	if resp.Error == nil {
		t.Fatal("expected an rpc error when no reference table is configured")
	}
}
