package trip

import (
	"context"
	"fmt"

	"github.com/ChamsBouzaiene/voyager/internal/engine"
	"github.com/ChamsBouzaiene/voyager/internal/itinerary"
)

// NewSummarizeBudgetTool creates an engine.Tool that recomputes the
// session totals from day data, applying any caller overrides. Grand
// total and per-person are always derived, never overridden.
func NewSummarizeBudgetTool(store *itinerary.Store) engine.Tool {
	return engine.Tool{
		Name:        "summarize_budget",
		Description: "Compute totals for flights, accommodation, and activities, with optional overrides. Overrides persist as the new baseline for later calls.",
		SchemaJSON:  `{"type":"object","properties":{"session_id":{"type":"string","description":"Itinerary session id"},"overrides":{"type":"object","properties":{"flights_total":{"type":"number"},"activities_total":{"type":"number"},"accommodation_total":{"type":"number"}},"additionalProperties":false}},"required":["session_id"]}`,
		Fn: func(ctx context.Context, args map[string]any) (string, error) {
			sessionID, err := stringArg(args, "session_id")
			if err != nil {
				return "", err
			}

			var overrides itinerary.BudgetOverrides
			if raw, present := args["overrides"]; present && raw != nil {
				obj, ok := raw.(map[string]any)
				if !ok {
					return "", fmt.Errorf("overrides must be an object")
				}
				if n, ok := optNumber(obj, "flights_total"); ok {
					overrides.FlightsTotal = &n
				}
				if n, ok := optNumber(obj, "accommodation_total"); ok {
					overrides.AccommodationTotal = &n
				}
				if n, ok := optNumber(obj, "activities_total"); ok {
					overrides.ActivitiesTotal = &n
				}
			}

			totals, err := store.SummarizeBudget(ctx, sessionID, overrides)
			if err != nil {
				return "", err
			}

			return marshal(map[string]any{
				"status":       "ok",
				"itinerary_id": sessionID,
				"totals":       totals,
			})
		},
		Retryable: true, // recomputation is deterministic for unchanged data
	}
}

// NewFinalizeItineraryTool creates an engine.Tool that stamps the
// session as finalized and mints a confirmation id. It does not lock
// the itinerary; later mutations still apply.
func NewFinalizeItineraryTool(store *itinerary.Store) engine.Tool {
	return engine.Tool{
		Name:        "finalize_itinerary",
		Description: "Mark the itinerary as finalized and return a confirmation id.",
		SchemaJSON:  `{"type":"object","properties":{"session_id":{"type":"string","description":"Itinerary session id"}},"required":["session_id"]}`,
		Fn: func(ctx context.Context, args map[string]any) (string, error) {
			sessionID, err := stringArg(args, "session_id")
			if err != nil {
				return "", err
			}

			confirmation, err := store.Finalize(ctx, sessionID)
			if err != nil {
				return "", err
			}

			return marshal(map[string]any{
				"status":       confirmation.Status,
				"itinerary_id": sessionID,
				"confirmation": confirmation.ConfirmationID,
				"finalized_at": confirmation.FinalizedAt,
			})
		},
		Retryable: false, // each call mints a fresh confirmation id
	}
}
