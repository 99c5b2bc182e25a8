package flights

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ChamsBouzaiene/voyager/internal/engine"
)

// NewSearchFlightsTool creates an engine.Tool that searches one-way or
// round-trip flights. Providing return_date makes the search round-trip.
func NewSearchFlightsTool(client *Client) engine.Tool {
	return engine.Tool{
		Name:        "search_flights",
		Description: "Search for flights between two airports. Include return_date for a round trip; omit it for one-way. Returns priced offers with carriers, durations, and connections.",
		SchemaJSON:  `{"type":"object","properties":{"origin":{"type":"string","description":"Origin airport IATA code, e.g. JFK"},"destination":{"type":"string","description":"Destination airport IATA code, e.g. CDG"},"departure_date":{"type":"string","description":"Departure date YYYY-MM-DD"},"return_date":{"type":"string","description":"Return date YYYY-MM-DD for round trips"},"cabin_class":{"type":"string","enum":["economy","premium_economy","business","first"],"description":"Cabin class, default economy"},"adults":{"type":"number","description":"Number of adult passengers, default 1"},"max_connections":{"type":"number","description":"Maximum connections per slice (0 for non-stop only)"},"departure_time_from":{"type":"string","description":"Earliest departure time HH:MM"},"departure_time_to":{"type":"string","description":"Latest departure time HH:MM"}},"required":["origin","destination","departure_date"]}`,
		Fn: func(ctx context.Context, args map[string]any) (string, error) {
			origin, ok := args["origin"].(string)
			if !ok || origin == "" {
				return "", fmt.Errorf("origin must be a non-empty string")
			}
			destination, ok := args["destination"].(string)
			if !ok || destination == "" {
				return "", fmt.Errorf("destination must be a non-empty string")
			}
			departureDate, ok := args["departure_date"].(string)
			if !ok || departureDate == "" {
				return "", fmt.Errorf("departure_date must be a non-empty string")
			}

			departFrom, _ := args["departure_time_from"].(string)
			departTo, _ := args["departure_time_to"].(string)

			slices := []Slice{NewSlice(origin, destination, departureDate, departFrom, departTo)}
			if returnDate, _ := args["return_date"].(string); returnDate != "" {
				slices = append(slices, NewSlice(destination, origin, returnDate, departFrom, departTo))
			}

			cabinClass, _ := args["cabin_class"].(string)
			if cabinClass == "" {
				cabinClass = "economy"
			}

			adults := 1
			if n, ok := args["adults"].(float64); ok && n > 0 {
				adults = int(n)
			}

			var maxConnections *int
			if n, ok := args["max_connections"].(float64); ok {
				mc := int(n)
				maxConnections = &mc
			}

			result, err := client.CreateOfferRequest(ctx, SearchParams{
				Slices:         slices,
				CabinClass:     cabinClass,
				Adults:         adults,
				MaxConnections: maxConnections,
			})
			if err != nil {
				return "", fmt.Errorf("flight search failed: %w", err)
			}

			out, err := json.Marshal(result)
			if err != nil {
				return "", err
			}
			return string(out), nil
		},
		Retryable: true, // read-only search
	}
}

// NewOfferDetailsTool creates an engine.Tool that fetches the full
// record for one flight offer.
func NewOfferDetailsTool(client *Client) engine.Tool {
	return engine.Tool{
		Name:        "get_offer_details",
		Description: "Get detailed information about a specific flight offer by its offer_id from a previous search.",
		SchemaJSON:  `{"type":"object","properties":{"offer_id":{"type":"string","description":"Duffel offer id, e.g. off_..."}},"required":["offer_id"]}`,
		Fn: func(ctx context.Context, args map[string]any) (string, error) {
			offerID, ok := args["offer_id"].(string)
			if !ok || offerID == "" {
				return "", fmt.Errorf("offer_id must be a non-empty string")
			}

			raw, err := client.GetOffer(ctx, offerID)
			if err != nil {
				return "", fmt.Errorf("failed to get offer details: %w", err)
			}
			return string(raw), nil
		},
		Retryable: true,
	}
}
