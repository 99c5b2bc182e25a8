package engine

import (
	"errors"
	"testing"
)

func TestValidateArgsAcceptsValidInput(t *testing.T) {
	tool := Tool{
		Name:       "add_activity",
		SchemaJSON: `{"type":"object","properties":{"session_id":{"type":"string"},"date":{"type":"string"}},"required":["session_id","date"]}`,
	}

	err := tool.ValidateArgs(map[string]any{"session_id": "trip-1", "date": "2025-06-01"})
	if err != nil {
		t.Fatalf("ValidateArgs failed: %v", err)
	}
}

func TestValidateArgsRejectsMissingRequired(t *testing.T) {
	tool := Tool{
		Name:       "add_activity",
		SchemaJSON: `{"type":"object","properties":{"session_id":{"type":"string"}},"required":["session_id"]}`,
	}

	err := tool.ValidateArgs(map[string]any{})
	var valErr *ToolValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("Expected ToolValidationError, got %v", err)
	}
	if valErr.ToolName != "add_activity" {
		t.Errorf("Expected tool name in error, got %q", valErr.ToolName)
	}
}

func TestValidateArgsRejectsWrongType(t *testing.T) {
	tool := Tool{
		Name:       "start_itinerary",
		SchemaJSON: `{"type":"object","properties":{"num_travelers":{"type":"integer"}}}`,
	}

	err := tool.ValidateArgs(map[string]any{"num_travelers": "two"})
	var valErr *ToolValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("Expected ToolValidationError, got %v", err)
	}
}

func TestSchemasCoversAllTools(t *testing.T) {
	reg := ToolRegistry{
		"a": {Name: "a", Description: "first", SchemaJSON: `{"type":"object"}`, Retryable: true},
		"b": {Name: "b", Description: "second", SchemaJSON: `{"type":"object"}`},
	}

	schemas := reg.Schemas()
	if len(schemas) != 2 {
		t.Fatalf("Expected 2 schemas, got %d", len(schemas))
	}
	seen := map[string]bool{}
	for _, s := range schemas {
		seen[s.Name] = true
	}
	if !seen["a"] || !seen["b"] {
		t.Errorf("Expected both tools in schemas, got %v", seen)
	}
}
