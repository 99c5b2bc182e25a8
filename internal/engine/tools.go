package engine

import (
	"context"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

type ToolFunc func(ctx context.Context, args map[string]any) (string, error)

type Tool struct {
	Name        string
	Description string
	SchemaJSON  string
	Fn          ToolFunc
	Retryable   bool // true for tools safe to re-run after a transient failure
}

// ValidateArgs validates the provided arguments against the tool's JSON schema.
func (t Tool) ValidateArgs(args map[string]any) error {
	schemaLoader := gojsonschema.NewStringLoader(t.SchemaJSON)
	documentLoader := gojsonschema.NewGoLoader(args)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	if !result.Valid() {
		var errorMsgs []string
		for _, err := range result.Errors() {
			errorMsgs = append(errorMsgs, err.String())
		}
		return &ToolValidationError{
			ToolName: t.Name,
			Errors:   errorMsgs,
		}
	}

	return nil
}

type ToolRegistry map[string]Tool

func (r ToolRegistry) Schemas() []ToolSchema {
	s := make([]ToolSchema, 0, len(r))
	for _, t := range r {
		s = append(s, ToolSchema{
			Name:        t.Name,
			Description: t.Description,
			JSONSchema:  t.SchemaJSON,
			Retryable:   t.Retryable,
		})
	}
	return s
}
