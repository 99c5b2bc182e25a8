package trip

import (
	"context"

	"github.com/ChamsBouzaiene/voyager/internal/engine"
	"github.com/ChamsBouzaiene/voyager/internal/itinerary"
)

// NewGetItineraryTool creates an engine.Tool that returns the full
// current itinerary document.
func NewGetItineraryTool(store *itinerary.Store) engine.Tool {
	return engine.Tool{
		Name:        "get_itinerary",
		Description: "Get the current itinerary document for a session, including days, preferences, and any computed totals.",
		SchemaJSON:  `{"type":"object","properties":{"session_id":{"type":"string","description":"Itinerary session id"}},"required":["session_id"]}`,
		Fn: func(ctx context.Context, args map[string]any) (string, error) {
			sessionID, err := stringArg(args, "session_id")
			if err != nil {
				return "", err
			}

			session, err := store.Get(ctx, sessionID)
			if err != nil {
				return "", err
			}
			return marshal(session)
		},
		Retryable: true,
	}
}
