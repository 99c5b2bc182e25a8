package activities

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/ChamsBouzaiene/voyager/internal/engine"
)

// NewSearchActivitiesTool creates an engine.Tool that searches things
// to do by location and category, annotated with current weather when
// a weather key is configured.
func NewSearchActivitiesTool(client *Client) engine.Tool {
	return engine.Tool{
		Name:        "search_activities",
		Description: "Search for activities and things to do by location and category. Results include ratings, prices where known, and whether current weather suits outdoor plans.",
		SchemaJSON:  `{"type":"object","properties":{"location":{"type":"string","description":"Location for activity search (city, address, landmark, e.g. 'Paris', 'Central Park New York')"},"category":{"type":"string","enum":["attractions","tours","outdoor","entertainment","cultural","family","food","all"],"description":"Activity category filter, default all"}},"required":["location"]}`,
		Fn: func(ctx context.Context, args map[string]any) (string, error) {
			location, ok := args["location"].(string)
			if !ok || location == "" {
				return "", fmt.Errorf("location must be a non-empty string")
			}
			category, _ := args["category"].(string)

			// Weather is advisory; a failed lookup never blocks the search.
			weather, _ := client.GetWeather(ctx, location)

			resp, err := client.SearchActivities(ctx, SearchParams{
				Location: location,
				Category: category,
			})
			if err != nil {
				return "", fmt.Errorf("activity search failed: %w", err)
			}

			out, err := json.Marshal(FormatSearchResult(resp, weather))
			if err != nil {
				return "", err
			}
			return string(out), nil
		},
		Retryable: true, // read-only search
	}
}

// NewWeatherTool creates an engine.Tool that reports current conditions
// for a location with an outdoor-activity assessment.
func NewWeatherTool(client *Client) engine.Tool {
	return engine.Tool{
		Name:        "get_weather",
		Description: "Get current weather for a location with an assessment of whether outdoor activities are advisable.",
		SchemaJSON:  `{"type":"object","properties":{"location":{"type":"string","description":"Location to check weather for"}},"required":["location"]}`,
		Fn: func(ctx context.Context, args map[string]any) (string, error) {
			location, ok := args["location"].(string)
			if !ok || location == "" {
				return "", fmt.Errorf("location must be a non-empty string")
			}

			weather, err := client.GetWeather(ctx, location)
			if err != nil {
				return "", fmt.Errorf("weather lookup failed: %w", err)
			}
			if weather == nil {
				out, err := json.Marshal(map[string]any{
					"location":          location,
					"weather_available": false,
					"message":           "Weather information not available, plan an indoor backup per day",
				})
				return string(out), err
			}

			result := map[string]any{
				"location": location,
				"current_weather": map[string]any{
					"condition":   weather.Condition().Description,
					"temperature": fmt.Sprintf("%d°C", int(math.Round(weather.Main.Temp))),
					"feels_like":  fmt.Sprintf("%d°C", int(math.Round(weather.Main.FeelsLike))),
					"humidity":    fmt.Sprintf("%d%%", weather.Main.Humidity),
					"wind_speed":  fmt.Sprintf("%g m/s", weather.Wind.Speed),
				},
				"outdoor_activities": AssessOutdoor(weather),
			}

			out, err := json.Marshal(result)
			if err != nil {
				return "", err
			}
			return string(out), nil
		},
		Retryable: true,
	}
}
