package trip

import (
	"context"

	"github.com/ChamsBouzaiene/voyager/internal/engine"
	"github.com/ChamsBouzaiene/voyager/internal/itinerary"
)

// NewSetAccommodationTool creates an engine.Tool that sets the hotel
// for one date, replacing any previous record for that day.
func NewSetAccommodationTool(store *itinerary.Store) engine.Tool {
	return engine.Tool{
		Name:        "set_accommodation",
		Description: "Set accommodation (hotel) for a specific date. Replaces any accommodation already recorded for that day.",
		SchemaJSON:  `{"type":"object","properties":{"session_id":{"type":"string","description":"Itinerary session id"},"date":{"type":"string","description":"YYYY-MM-DD"},"hotel_name":{"type":"string"},"price_per_night":{"type":"object","properties":{"amount":{"type":"number"},"currency":{"type":"string"}},"required":["amount","currency"]}},"required":["session_id","date","hotel_name"]}`,
		Fn: func(ctx context.Context, args map[string]any) (string, error) {
			sessionID, err := stringArg(args, "session_id")
			if err != nil {
				return "", err
			}
			date, err := stringArg(args, "date")
			if err != nil {
				return "", err
			}
			hotelName, err := stringArg(args, "hotel_name")
			if err != nil {
				return "", err
			}

			var price *itinerary.Price
			if raw, present := args["price_per_night"]; present && raw != nil {
				price, err = itinerary.PriceFromArgs("price_per_night", raw)
				if err != nil {
					return "", err
				}
			}

			accommodation, err := store.SetAccommodation(ctx, sessionID, date, hotelName, price)
			if err != nil {
				return "", err
			}

			return marshal(map[string]any{
				"status":        "ok",
				"itinerary_id":  sessionID,
				"date":          date,
				"accommodation": accommodation,
			})
		},
		Retryable: true, // full replacement, safe to repeat
	}
}
