package hotels

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ChamsBouzaiene/voyager/internal/engine"
)

// NewSearchHotelsTool creates an engine.Tool that searches hotels for a
// location and date range.
func NewSearchHotelsTool(client *Client) engine.Tool {
	return engine.Tool{
		Name:        "search_hotels",
		Description: "Search for hotels and accommodation by location and dates. Returns priced properties with ratings, amenities, and a property_token for follow-up.",
		SchemaJSON:  `{"type":"object","properties":{"location":{"type":"string","description":"City, area, or landmark to search near"},"check_in_date":{"type":"string","description":"Check-in date YYYY-MM-DD"},"check_out_date":{"type":"string","description":"Check-out date YYYY-MM-DD"},"adults":{"type":"number","description":"Number of adults, default 2"},"children":{"type":"number","description":"Number of children"},"rooms":{"type":"number","description":"Number of rooms"},"currency":{"type":"string","description":"Currency code, default USD"},"sort_by":{"type":"string","enum":["price_low","price_high","rating","distance","deals"],"description":"Sort order for results"},"hotel_class":{"type":"number","description":"Star rating filter (2-5)"},"max_price":{"type":"number","description":"Maximum price per night"},"min_rating":{"type":"number","description":"Minimum guest rating (1-5)"},"free_cancellation":{"type":"boolean","description":"Only properties with free cancellation"},"vacation_rentals":{"type":"boolean","description":"Search vacation rentals instead of hotels"}},"required":["location","check_in_date","check_out_date"]}`,
		Fn: func(ctx context.Context, args map[string]any) (string, error) {
			location, ok := args["location"].(string)
			if !ok || location == "" {
				return "", fmt.Errorf("location must be a non-empty string")
			}
			checkIn, ok := args["check_in_date"].(string)
			if !ok || checkIn == "" {
				return "", fmt.Errorf("check_in_date must be a non-empty string")
			}
			checkOut, ok := args["check_out_date"].(string)
			if !ok || checkOut == "" {
				return "", fmt.Errorf("check_out_date must be a non-empty string")
			}

			params := SearchParams{
				Location:     location,
				CheckInDate:  checkIn,
				CheckOutDate: checkOut,
				Adults:       2,
			}
			if n, ok := args["adults"].(float64); ok && n > 0 {
				params.Adults = int(n)
			}
			if n, ok := args["children"].(float64); ok {
				params.Children = int(n)
			}
			if n, ok := args["rooms"].(float64); ok {
				params.Rooms = int(n)
			}
			if s, ok := args["currency"].(string); ok {
				params.Currency = s
			}
			if s, ok := args["sort_by"].(string); ok {
				params.SortBy = s
			}
			if n, ok := args["hotel_class"].(float64); ok {
				params.HotelClass = int(n)
			}
			if n, ok := args["max_price"].(float64); ok {
				params.MaxPrice = n
			}
			if n, ok := args["min_rating"].(float64); ok {
				params.MinRating = n
			}
			if b, ok := args["free_cancellation"].(bool); ok {
				params.FreeCancellation = b
			}
			if b, ok := args["vacation_rentals"].(bool); ok {
				params.VacationRentals = b
			}

			result, err := client.Search(ctx, params)
			if err != nil {
				return "", fmt.Errorf("hotel search failed: %w", err)
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
