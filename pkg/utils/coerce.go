package utils

import (
	"encoding/json"
)

// Coercion helpers for loosely typed JSON values: provider payload
// numbers and MCP tool arguments decoded into map[string]any.

// Str returns v as a string, or "" when it is not one
func Str(v interface{}) string {
	s, _ := v.(string)
	return s
}

// NumberToFloat coerces a json.Number to float64, defaulting to 0 for
// absent or unparseable values
func NumberToFloat(n json.Number) float64 {
	f, err := n.Float64()
	if err != nil {
		return 0
	}
	return f
}

// NumberToInt coerces a json.Number to int, defaulting to 0. Values
// sent as floats are truncated.
func NumberToInt(n json.Number) int {
	if i, err := n.Int64(); err == nil {
		return int(i)
	}
	if f, err := n.Float64(); err == nil {
		return int(f)
	}
	return 0
}
