// Package trip exposes the itinerary store operations as agent tools.
// Each tool validates its loosely-typed arguments, delegates to the
// store, and returns a compact JSON result.
package trip

import (
	"encoding/json"
	"fmt"
)

// stringArg extracts a required non-empty string argument.
func stringArg(args map[string]any, key string) (string, error) {
	s, ok := args[key].(string)
	if !ok || s == "" {
		return "", fmt.Errorf("%s must be a non-empty string", key)
	}
	return s, nil
}

// optString extracts an optional string argument, empty when absent.
func optString(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

// optNumber extracts an optional numeric argument in the shapes JSON
// decoding produces.
func optNumber(args map[string]any, key string) (float64, bool) {
	switch n := args[key].(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

// marshal renders a tool result as compact JSON.
func marshal(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
