package utils

import (
	"encoding/json"
	"testing"
)

func TestStr(t *testing.T) {
	if Str("hello") != "hello" {
		t.Error("string should pass through")
	}
	if Str(42) != "" || Str(nil) != "" {
		t.Error("non-strings should coerce to empty")
	}
}

func TestNumberCoercion(t *testing.T) {
	if NumberToFloat(json.Number("350.5")) != 350.5 {
		t.Error("float should parse")
	}
	if NumberToFloat(json.Number("")) != 0 {
		t.Error("empty number should default to 0")
	}
	if NumberToInt(json.Number("345")) != 345 {
		t.Error("int should parse")
	}
	if NumberToInt(json.Number("345.9")) != 345 {
		t.Error("float number should truncate to int")
	}
	if NumberToInt(json.Number("")) != 0 {
		t.Error("empty number should default to 0")
	}
}
