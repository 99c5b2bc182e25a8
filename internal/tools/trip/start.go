package trip

import (
	"context"
	"fmt"

	"github.com/ChamsBouzaiene/voyager/internal/engine"
	"github.com/ChamsBouzaiene/voyager/internal/itinerary"
)

// NewStartItineraryTool creates an engine.Tool that opens a fresh
// planning session. Re-using an existing session id resets it.
func NewStartItineraryTool(store *itinerary.Store) engine.Tool {
	return engine.Tool{
		Name:        "start_itinerary",
		Description: "Start or reset an itinerary session with dates, destinations, and traveler info. Calling it again with the same session_id replaces the previous itinerary entirely.",
		SchemaJSON:  `{"type":"object","properties":{"session_id":{"type":"string","description":"Unique session or itinerary id"},"origin":{"type":"string","description":"Origin city or airport"},"destinations":{"type":"array","items":{"type":"string"},"minItems":1,"description":"Destination city/cities"},"start_date":{"type":"string","description":"Trip start date YYYY-MM-DD"},"end_date":{"type":"string","description":"Trip end date YYYY-MM-DD"},"num_travelers":{"type":"number","description":"Number of travelers (default 1)"},"currency":{"type":"string","description":"Currency code (e.g. USD, INR); default USD"}},"required":["session_id","origin","destinations","start_date","end_date"]}`,
		Fn: func(ctx context.Context, args map[string]any) (string, error) {
			sessionID, err := stringArg(args, "session_id")
			if err != nil {
				return "", err
			}
			origin, err := stringArg(args, "origin")
			if err != nil {
				return "", err
			}

			rawDests, ok := args["destinations"].([]any)
			if !ok || len(rawDests) == 0 {
				return "", fmt.Errorf("destinations must be a non-empty array of strings")
			}
			destinations := make([]string, 0, len(rawDests))
			for _, raw := range rawDests {
				s, ok := raw.(string)
				if !ok || s == "" {
					return "", fmt.Errorf("destinations must contain only non-empty strings")
				}
				destinations = append(destinations, s)
			}

			startDate, err := stringArg(args, "start_date")
			if err != nil {
				return "", err
			}
			endDate, err := stringArg(args, "end_date")
			if err != nil {
				return "", err
			}

			numTravelers := 1
			if n, ok := optNumber(args, "num_travelers"); ok && n > 0 {
				numTravelers = int(n)
			}

			days, err := store.Create(ctx, itinerary.CreateParams{
				ID:           sessionID,
				Origin:       origin,
				Destinations: destinations,
				StartDate:    startDate,
				EndDate:      endDate,
				NumTravelers: numTravelers,
				Currency:     optString(args, "currency"),
			})
			if err != nil {
				return "", err
			}

			return marshal(map[string]any{
				"status":       "ok",
				"itinerary_id": sessionID,
				"days":         days,
			})
		},
		Retryable: true, // re-creating with identical params yields the same state
	}
}
