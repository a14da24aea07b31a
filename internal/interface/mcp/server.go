// Package mcp is the stdio JSON-RPC boundary of the service. Tools
// stay thin: argument coercion and response shaping happen here, all
// behavior lives in the usecase layer.
package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"flightsearch-service/internal/domain/entity"
	"flightsearch-service/internal/domain/repository"
	"flightsearch-service/internal/usecase"
	"flightsearch-service/pkg/logger"
	"flightsearch-service/pkg/utils"
	"flightsearch-service/templates"
)

// rpcRequest is one incoming JSON-RPC message
type rpcRequest struct {
	JSONRPC string                 `json:"jsonrpc"`
	ID      any                    `json:"id"`
	Method  string                 `json:"method"`
	Params  map[string]interface{} `json:"params"`
}

type rpcResponse struct {
	JSONRPC string                 `json:"jsonrpc"`
	ID      any                    `json:"id"`
	Result  map[string]interface{} `json:"result,omitempty"`
	Error   *rpcError              `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ToolDesc describes a single MCP tool, including input schema
type ToolDesc struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"input_schema"`
}

// PromptDesc describes a prompt surfaced via prompts/list
type PromptDesc struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Server serves the flight tools over stdio JSON-RPC
type Server struct {
	engine      *usecase.SearchEngine
	logger      logger.Logger
	callTimeout time.Duration

	tools   []ToolDesc
	prompts []PromptDesc
}

// NewServer wires the MCP boundary once
func NewServer(engine *usecase.SearchEngine, callTimeout time.Duration, logger logger.Logger) *Server {
	s := &Server{
		engine:      engine,
		logger:      logger,
		callTimeout: callTimeout,
	}
	s.initTools()
	return s
}

// initTools defines schemas and descriptions surfaced to MCP clients
func (s *Server) initTools() {
	s.tools = []ToolDesc{
		{
			Name:        "search_flights",
			Description: "Search for flights between two airports and store the results under a search ID.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"departure_id":  map[string]any{"type": "string", "description": "Departure airport IATA code"},
					"arrival_id":    map[string]any{"type": "string", "description": "Arrival airport IATA code"},
					"outbound_date": map[string]any{"type": "string", "description": "Departure date, YYYY-MM-DD"},
					"return_date":   map[string]any{"type": "string", "description": "Return date for round trips, YYYY-MM-DD"},
					"currency":      map[string]any{"type": "string", "description": "Currency code for pricing"},
				},
				"required": []string{"departure_id", "arrival_id", "outbound_date"},
			},
		},
		{
			Name:        "filter_flights",
			Description: "Filter and sort previously stored flight search results.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"search_id":            map[string]any{"type": "string"},
					"max_price":            map[string]any{"type": "number"},
					"max_duration":         map[string]any{"type": "integer", "description": "Maximum total duration in minutes"},
					"max_stops":            map[string]any{"type": "integer", "minimum": 0},
					"preferred_airlines":   map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"departure_time_range": map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "minItems": 2, "maxItems": 2},
					"sort_by":              map[string]any{"type": "string", "enum": []string{"price", "duration", "departure_time"}},
					"sort_order":           map[string]any{"type": "string", "enum": []string{"asc", "desc"}},
				},
				"required": []string{"search_id"},
			},
		},
		{
			Name:        "lookup_airport",
			Description: "Look up airport name, city and timezone by IATA code.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"code": map[string]any{"type": "string", "description": "IATA airport code"},
				},
				"required": []string{"code"},
			},
		},
	}
	s.prompts = []PromptDesc{
		{
			Name:        templates.FlightBookingAssistantPrompt,
			Description: "Behavior and guidelines for the flight booking assistant.",
		},
	}
}

// callTool dispatches to handler functions
func (s *Server) callTool(ctx context.Context, name string, args map[string]any) (map[string]any, error) {
	switch name {
	case "search_flights":
		return s.tSearchFlights(ctx, args)
	case "filter_flights":
		return s.tFilterFlights(ctx, args)
	case "lookup_airport":
		return s.tLookupAirport(ctx, args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// tSearchFlights runs a flight search. Operational failures come back
// as a structured result, not a JSON-RPC error, so the model can relay
// them to the user.
func (s *Server) tSearchFlights(ctx context.Context, args map[string]any) (map[string]any, error) {
	departureID := utils.Str(args["departure_id"])
	arrivalID := utils.Str(args["arrival_id"])
	outboundDate := utils.Str(args["outbound_date"])
	if departureID == "" || arrivalID == "" || outboundDate == "" {
		return nil, errors.New("departure_id, arrival_id and outbound_date are required")
	}
	returnDate := utils.Str(args["return_date"])
	currency := utils.Str(args["currency"])

	resp := s.engine.SearchFlights(ctx, departureID, arrivalID, outboundDate, returnDate, currency)
	return toMap(resp)
}

// tFilterFlights filters a stored result set
func (s *Server) tFilterFlights(ctx context.Context, args map[string]any) (map[string]any, error) {
	// Round-trip through JSON to get boundary validation from the
	// typed spec instead of hand-checking a loose map.
	data, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("invalid filter arguments: %w", err)
	}
	var spec entity.FilterSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("invalid filter arguments: %w", err)
	}

	result, err := s.engine.FilterFlights(ctx, &spec)
	if err != nil {
		if errors.Is(err, usecase.ErrSearchNotFound) {
			return map[string]any{
				"status": "error",
				"error":  "No search results found for the provided search ID",
			}, nil
		}
		return nil, err
	}
	return toMap(result)
}

// tLookupAirport resolves an IATA code against the reference table
func (s *Server) tLookupAirport(ctx context.Context, args map[string]any) (map[string]any, error) {
	code := utils.Str(args["code"])
	if code == "" {
		return nil, errors.New("code is required")
	}

	airport, err := s.engine.LookupAirport(ctx, code)
	if err != nil {
		// Only an unknown code is a tool-level result; a lookup
		// backend failure surfaces as an error.
		if errors.Is(err, repository.ErrAirportNotFound) {
			return map[string]any{
				"status": "error",
				"error":  fmt.Sprintf("No airport found for code %q", code),
			}, nil
		}
		return nil, err
	}
	return map[string]any{
		"code":     airport.Code,
		"name":     airport.AirportName,
		"city":     airport.CityName,
		"country":  airport.CountryName,
		"timezone": airport.TzName,
	}, nil
}

// getPrompt returns the named prompt text
func (s *Server) getPrompt(name string) (map[string]any, error) {
	switch name {
	case templates.FlightBookingAssistantPrompt:
		return map[string]any{
			"name":   name,
			"prompt": templates.FlightBookingAssistant,
		}, nil
	default:
		return nil, fmt.Errorf("unknown prompt: %s", name)
	}
}

func writeResponse(w io.Writer, id any, result map[string]interface{}, err error) {
	resp := rpcResponse{JSONRPC: "2.0", ID: id}
	if err != nil {
		resp.Error = &rpcError{Code: -32000, Message: err.Error()}
	} else {
		resp.Result = result
	}
	enc := json.NewEncoder(w)
	_ = enc.Encode(resp)
}

// toMap converts a response struct into the generic result shape
func toMap(v interface{}) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Serve runs the stdio JSON-RPC loop until the reader is exhausted.
// Requests are newline-delimited frames; a malformed frame is logged
// and skipped so one bad line never stalls the stream.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	// Result sets run large; lift the default token limit.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var req rpcRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.Warn("Skipping malformed request", "error", err)
			continue
		}

		switch req.Method {
		case "tools/list":
			writeResponse(out, req.ID, map[string]any{"tools": s.tools}, nil)

		case "tools/call":
			name := utils.Str(req.Params["name"])
			args, _ := req.Params["arguments"].(map[string]any)
			if args == nil {
				args = map[string]any{}
			}

			// Per-call timeout so one stuck provider request cannot
			// wedge the loop.
			callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
			result, err := s.callTool(callCtx, name, args)
			cancel()
			writeResponse(out, req.ID, result, err)

		case "prompts/list":
			writeResponse(out, req.ID, map[string]any{"prompts": s.prompts}, nil)

		case "prompts/get":
			name := utils.Str(req.Params["name"])
			result, err := s.getPrompt(name)
			writeResponse(out, req.ID, result, err)

		default:
			writeResponse(out, req.ID, nil, fmt.Errorf("unknown method: %s", req.Method))
		}
	}
	return scanner.Err()
}
