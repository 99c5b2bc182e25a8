// Package reasoning holds meta tools that shape the agent's process
// rather than touching trip data.
package reasoning

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/ChamsBouzaiene/voyager/internal/engine"
)

// thinkImpl logs the reasoning so the user can follow the plan taking shape.
func thinkImpl(reasoning string) (string, error) {
	log.Printf("🧠 Agent reasoning: %s", reasoning)

	result := map[string]any{
		"status": "noted",
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return "", err
	}
	return string(resultJSON), nil
}

// NewThinkTool creates an engine.Tool that records the agent's
// reasoning and makes its decision-making visible to the user.
func NewThinkTool() engine.Tool {
	return engine.Tool{
		Name: "think",
		Description: `Record your reasoning and thought process. Use this to make your thinking transparent.

When to use:
- After understanding the trip request, explain your high-level plan
- Before selecting a flight, hotel, or activity, explain your choice criteria
- When search results conflict with stored preferences, note the trade-off
- When revising an itinerary, explain what changes and what stays

Example:
think({"reasoning": "Traveler wants a 3-day budget trip to Paris. I'll search round-trip flights first, cap the hotel at the stored max_hotel_budget, then fill each day with one cultural activity and an indoor backup."})

Your reasoning will be logged and visible to the user, helping them understand your approach.`,
		SchemaJSON: `{"type":"object","properties":{"reasoning":{"type":"string","description":"Your reasoning, thought process, or plan. Be specific about what you understand, what you'll do, and why."}},"required":["reasoning"]}`,
		Fn: func(ctx context.Context, args map[string]any) (string, error) {
			reasoning, ok := args["reasoning"].(string)
			if !ok || reasoning == "" {
				return "", fmt.Errorf("reasoning must be a non-empty string")
			}
			return thinkImpl(reasoning)
		},
		Retryable: true, // thinking is idempotent
	}
}
