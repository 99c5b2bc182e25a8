package trip

import (
	"context"
	"fmt"

	"github.com/ChamsBouzaiene/voyager/internal/engine"
	"github.com/ChamsBouzaiene/voyager/internal/itinerary"
)

// NewUpdatePreferencesTool creates an engine.Tool that shallow-merges a
// preference patch into the session. Absent keys keep their previous
// values.
func NewUpdatePreferencesTool(store *itinerary.Store) engine.Tool {
	return engine.Tool{
		Name:        "update_preferences",
		Description: "Update user preferences for the current itinerary session. Only the provided keys change; earlier values survive.",
		SchemaJSON:  `{"type":"object","properties":{"session_id":{"type":"string","description":"Itinerary session id"},"preferences":{"type":"object","properties":{"vegetarian":{"type":"boolean","description":"Whether travelers prefer vegetarian options"},"accessibility":{"type":"boolean","description":"Require accessibility-friendly options"},"travel_style":{"type":"string","enum":["budget","standard","luxury","family"],"description":"Overall travel style"},"max_hotel_budget":{"type":"number","description":"Max hotel budget per night"},"notes":{"type":"string","description":"Freeform preference notes"}},"additionalProperties":false}},"required":["session_id","preferences"]}`,
		Fn: func(ctx context.Context, args map[string]any) (string, error) {
			sessionID, err := stringArg(args, "session_id")
			if err != nil {
				return "", err
			}
			rawPrefs, ok := args["preferences"].(map[string]any)
			if !ok {
				return "", fmt.Errorf("preferences must be an object")
			}

			patch, err := itinerary.PreferencesFromArgs(rawPrefs)
			if err != nil {
				return "", err
			}

			merged, err := store.UpdatePreferences(ctx, sessionID, patch)
			if err != nil {
				return "", err
			}

			return marshal(map[string]any{
				"status":       "ok",
				"itinerary_id": sessionID,
				"preferences":  merged,
			})
		},
		Retryable: true, // merging the same patch twice is a no-op
	}
}
