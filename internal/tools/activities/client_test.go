package activities

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const localFixture = `{
  "search_metadata": {"id": "srch_77"},
  "search_parameters": {"q": "museums cultural sites Paris"},
  "local_results": [
    {
      "title": "Louvre Museum",
      "description": "World's largest art museum",
      "rating": 4.7,
      "reviews": 250000,
      "price": {"value": 17, "currency": "EUR", "description": "per adult"},
      "address": "Rue de Rivoli, 75001 Paris",
      "categories": ["Museum", "Art"]
    }
  ],
  "places_results": [
    {"title": "Musée d'Orsay", "rating": 4.6}
  ]
}`

const rainyWeatherFixture = `{
  "weather": [{"main": "Rain", "description": "light rain"}],
  "main": {"temp": 14.6, "feels_like": 13.9, "humidity": 88},
  "wind": {"speed": 4.2},
  "name": "Paris"
}`

const clearWeatherFixture = `{
  "weather": [{"main": "Clear", "description": "clear sky"}],
  "main": {"temp": 22.3, "feels_like": 21.8, "humidity": 40},
  "wind": {"speed": 3.0},
  "name": "Paris"
}`

func newTestClient(t *testing.T, search, weather http.HandlerFunc) *Client {
	t.Helper()
	client := NewClient("serp-key", "weather-key")

	var searchURL, weatherURL string
	if search != nil {
		server := httptest.NewServer(search)
		t.Cleanup(server.Close)
		searchURL = server.URL
	}
	if weather != nil {
		server := httptest.NewServer(weather)
		t.Cleanup(server.Close)
		weatherURL = server.URL
	}
	client.SetBaseURLs(searchURL, weatherURL)
	return client
}

func TestSearchActivitiesBuildsCategoryQuery(t *testing.T) {
	var query map[string]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = map[string]string{}
		for key, vals := range r.URL.Query() {
			query[key] = vals[0]
		}
		w.Write([]byte(localFixture))
	}, nil)

	resp, err := client.SearchActivities(context.Background(), SearchParams{
		Location: "Paris",
		Category: "cultural",
	})
	if err != nil {
		t.Fatalf("SearchActivities failed: %v", err)
	}

	if query["engine"] != "google_local" {
		t.Errorf("Expected google_local engine, got %q", query["engine"])
	}
	if query["q"] != "museums cultural sites Paris" {
		t.Errorf("Unexpected query text: %q", query["q"])
	}
	if query["location"] != "Paris" {
		t.Errorf("Unexpected location: %q", query["location"])
	}
	if len(resp.LocalResults) != 1 || len(resp.PlacesResults) != 1 {
		t.Errorf("Unexpected results: %+v", resp)
	}
}

func TestSearchActivitiesUnknownCategoryFallsBack(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if q := r.URL.Query().Get("q"); q != "things to do Paris" {
			t.Errorf("Expected fallback query, got %q", q)
		}
		w.Write([]byte(localFixture))
	}, nil)

	if _, err := client.SearchActivities(context.Background(), SearchParams{Location: "Paris"}); err != nil {
		t.Fatalf("SearchActivities failed: %v", err)
	}
}

func TestFormatSearchResultMergesAndAnnotates(t *testing.T) {
	var resp SearchResponse
	if err := json.Unmarshal([]byte(localFixture), &resp); err != nil {
		t.Fatalf("Bad fixture: %v", err)
	}
	var weather Weather
	if err := json.Unmarshal([]byte(rainyWeatherFixture), &weather); err != nil {
		t.Fatalf("Bad fixture: %v", err)
	}

	result := FormatSearchResult(&resp, &weather)

	if result.SearchID != "srch_77" || result.TotalResults != 2 {
		t.Fatalf("Unexpected result: %+v", result)
	}
	if result.WeatherInfo == nil || result.WeatherInfo.SuitableForOutdoor {
		t.Errorf("Expected rain to rule out outdoor, got %+v", result.WeatherInfo)
	}
	if result.WeatherInfo.Temperature != 15 {
		t.Errorf("Expected rounded temperature 15, got %d", result.WeatherInfo.Temperature)
	}
	if len(result.WeatherInfo.Recommendations) == 0 {
		t.Error("Expected indoor recommendations in bad weather")
	}

	louvre := result.Activities[0]
	if louvre.Price == nil || louvre.Price.Amount != 17 || louvre.Price.Currency != "EUR" {
		t.Errorf("Unexpected price: %+v", louvre.Price)
	}
	if louvre.WeatherSuitable {
		t.Error("Expected weather_suitable false in rain")
	}
}

func TestFormatSearchResultWithoutWeather(t *testing.T) {
	var resp SearchResponse
	json.Unmarshal([]byte(localFixture), &resp)

	result := FormatSearchResult(&resp, nil)
	if result.WeatherInfo != nil {
		t.Errorf("Expected no weather info, got %+v", result.WeatherInfo)
	}
	if !result.Activities[0].WeatherSuitable {
		t.Error("Expected weather_suitable true when weather unknown")
	}
}

func TestGetWeatherWithoutKeyReturnsNil(t *testing.T) {
	client := NewClient("serp-key", "")
	weather, err := client.GetWeather(context.Background(), "Paris")
	if weather != nil || err != nil {
		t.Fatalf("Expected nil weather without key, got %v / %v", weather, err)
	}
}

func TestAssessOutdoor(t *testing.T) {
	var rainy Weather
	json.Unmarshal([]byte(rainyWeatherFixture), &rainy)
	if got := AssessOutdoor(&rainy); got.Suitable || len(got.Alternatives) == 0 {
		t.Errorf("Expected rain to be unsuitable, got %+v", got)
	}

	var clear Weather
	json.Unmarshal([]byte(clearWeatherFixture), &clear)
	if got := AssessOutdoor(&clear); !got.Suitable {
		t.Errorf("Expected clear sky to be suitable, got %+v", got)
	}

	windy := clear
	windy.Wind.Speed = 12
	if got := AssessOutdoor(&windy); got.Suitable || !strings.Contains(got.Reason, "wind") {
		t.Errorf("Expected high wind to be unsuitable, got %+v", got)
	}

	cold := clear
	cold.Main.Temp = -5
	if got := AssessOutdoor(&cold); got.Suitable {
		t.Errorf("Expected freezing temp to be unsuitable, got %+v", got)
	}
}

func TestSearchActivitiesToolEmbedsWeather(t *testing.T) {
	client := newTestClient(t,
		func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(localFixture)) },
		func(w http.ResponseWriter, r *http.Request) {
			if q := r.URL.Query().Get("units"); q != "metric" {
				t.Errorf("Expected metric units, got %q", q)
			}
			w.Write([]byte(rainyWeatherFixture))
		})

	tool := NewSearchActivitiesTool(client)
	args := map[string]any{"location": "Paris", "category": "cultural"}
	if err := tool.ValidateArgs(args); err != nil {
		t.Fatalf("Args rejected: %v", err)
	}

	out, err := tool.Fn(context.Background(), args)
	if err != nil {
		t.Fatalf("search_activities failed: %v", err)
	}

	var result SearchResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("Tool returned invalid JSON: %v", err)
	}
	if result.WeatherInfo == nil || result.WeatherInfo.Condition != "light rain" {
		t.Errorf("Expected weather info in result, got %+v", result.WeatherInfo)
	}
}

func TestWeatherTool(t *testing.T) {
	client := newTestClient(t, nil, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(clearWeatherFixture))
	})

	tool := NewWeatherTool(client)
	out, err := tool.Fn(context.Background(), map[string]any{"location": "Paris"})
	if err != nil {
		t.Fatalf("get_weather failed: %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("Tool returned invalid JSON: %v", err)
	}
	current, ok := result["current_weather"].(map[string]any)
	if !ok || current["temperature"] != "22°C" {
		t.Errorf("Unexpected weather payload: %v", result)
	}
	outdoor, ok := result["outdoor_activities"].(map[string]any)
	if !ok || outdoor["recommended"] != true {
		t.Errorf("Expected outdoor recommended, got %v", result)
	}
}

func TestWeatherToolWithoutKey(t *testing.T) {
	client := NewClient("serp-key", "")
	tool := NewWeatherTool(client)

	out, err := tool.Fn(context.Background(), map[string]any{"location": "Paris"})
	if err != nil {
		t.Fatalf("get_weather failed: %v", err)
	}
	if !strings.Contains(out, `"weather_available":false`) {
		t.Errorf("Expected unavailable marker, got %q", out)
	}
}
