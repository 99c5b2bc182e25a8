// Package activities searches local attractions via SerpAPI and checks
// current weather via OpenWeather so the agent can prefer indoor or
// outdoor plans.
package activities

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultSearchBaseURL  = "https://serpapi.com/search.json"
	defaultWeatherBaseURL = "https://api.openweathermap.org/data/2.5/weather"
)

// categoryQueries maps activity categories to google_local query text.
var categoryQueries = map[string]string{
	"attractions":   "attractions things to do",
	"tours":         "tours experiences",
	"outdoor":       "outdoor activities parks",
	"entertainment": "entertainment shows events",
	"cultural":      "museums cultural sites",
	"family":        "family activities kids",
	"food":          "restaurants food tours",
}

// badWeatherConditions are the OpenWeather main-condition values that
// rule out outdoor plans.
var badWeatherConditions = map[string]bool{
	"thunderstorm": true,
	"rain":         true,
	"snow":         true,
}

// Client queries SerpAPI for local results and OpenWeather for current
// conditions. The weather key is optional; without it weather lookups
// report unavailable instead of failing searches.
type Client struct {
	apiKey         string
	weatherAPIKey  string
	searchBaseURL  string
	weatherBaseURL string
	http           *http.Client
}

// NewClient creates an activity search client.
func NewClient(apiKey, weatherAPIKey string) *Client {
	return &Client{
		apiKey:         apiKey,
		weatherAPIKey:  weatherAPIKey,
		searchBaseURL:  defaultSearchBaseURL,
		weatherBaseURL: defaultWeatherBaseURL,
		http:           &http.Client{Timeout: 30 * time.Second},
	}
}

// SetBaseURLs overrides the API endpoints; tests point them at local servers.
func (c *Client) SetBaseURLs(search, weather string) {
	if search != "" {
		c.searchBaseURL = search
	}
	if weather != "" {
		c.weatherBaseURL = weather
	}
}

// SearchParams are the inputs to SearchActivities.
type SearchParams struct {
	Location string
	Category string
}

// Wire types for the slice of the SerpAPI response we consume.
type SearchResponse struct {
	SearchMetadata struct {
		ID string `json:"id"`
	} `json:"search_metadata"`
	SearchParameters struct {
		Q string `json:"q"`
	} `json:"search_parameters"`
	LocalResults  []activityResult `json:"local_results"`
	PlacesResults []activityResult `json:"places_results"`
	Error         string           `json:"error"`
}

type resultPrice struct {
	Value       float64 `json:"value"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`
}

type activityResult struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Rating      float64      `json:"rating"`
	Reviews     int          `json:"reviews"`
	Price       *resultPrice `json:"price"`
	Address     string       `json:"address"`
	Categories  []string     `json:"categories"`
	Website     string       `json:"website"`
	Phone       string       `json:"phone"`
}

// Weather is the subset of the OpenWeather current-conditions response
// the planner uses.
type Weather struct {
	Conditions []WeatherCondition `json:"weather"`
	Main       struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Name string `json:"name"`
}

// WeatherCondition is one reported condition, e.g. Rain / light rain.
type WeatherCondition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

// Condition returns the primary condition, zero-valued when absent.
func (w *Weather) Condition() WeatherCondition {
	if len(w.Conditions) == 0 {
		return WeatherCondition{}
	}
	return w.Conditions[0]
}

// OutdoorSuitable reports whether current conditions support outdoor
// activities.
func (w *Weather) OutdoorSuitable() bool {
	return !badWeatherConditions[strings.ToLower(w.Condition().Main)]
}

// SearchActivities queries the google_local engine with a query derived
// from the category.
func (c *Client) SearchActivities(ctx context.Context, params SearchParams) (*SearchResponse, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("SerpAPI key is required; set SERPAPI_API_KEY")
	}

	queryText, ok := categoryQueries[params.Category]
	if !ok {
		queryText = "things to do"
	}

	q := url.Values{}
	q.Set("engine", "google_local")
	q.Set("q", queryText+" "+params.Location)
	q.Set("location", params.Location)
	q.Set("gl", "us")
	q.Set("hl", "en")
	q.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchBaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("activity search request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read activity search response: %w", err)
	}

	var decoded SearchResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode activity search response: %w", err)
	}
	if decoded.Error != "" {
		return nil, fmt.Errorf("SerpAPI activity search failed: %s", decoded.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("SerpAPI activity search failed with status %d", resp.StatusCode)
	}
	return &decoded, nil
}

// GetWeather fetches current conditions for a location in metric units.
// Returns (nil, nil) when no weather API key is configured.
func (c *Client) GetWeather(ctx context.Context, location string) (*Weather, error) {
	if c.weatherAPIKey == "" {
		return nil, nil
	}

	q := url.Values{}
	q.Set("q", location)
	q.Set("appid", c.weatherAPIKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.weatherBaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather request failed with status %d", resp.StatusCode)
	}

	var weather Weather
	if err := json.NewDecoder(resp.Body).Decode(&weather); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}
	return &weather, nil
}

// WeatherInfo is the condensed weather summary embedded in search results.
type WeatherInfo struct {
	Condition          string   `json:"condition"`
	Temperature        int      `json:"temperature"`
	SuitableForOutdoor bool     `json:"suitable_for_outdoor"`
	Recommendations    []string `json:"recommendations,omitempty"`
}

// ActivityPrice is a priced entry in formatted results.
type ActivityPrice struct {
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Description string  `json:"description,omitempty"`
}

// Activity is the condensed per-result view returned to the agent.
type Activity struct {
	Title           string         `json:"title"`
	Description     string         `json:"description,omitempty"`
	Rating          float64        `json:"rating,omitempty"`
	Reviews         int            `json:"reviews,omitempty"`
	Price           *ActivityPrice `json:"price,omitempty"`
	Address         string         `json:"address,omitempty"`
	Categories      []string       `json:"categories,omitempty"`
	Website         string         `json:"website,omitempty"`
	Phone           string         `json:"phone,omitempty"`
	WeatherSuitable bool           `json:"weather_suitable"`
}

// SearchResult is the formatted outcome of an activity search.
type SearchResult struct {
	SearchID     string       `json:"search_id"`
	Location     string       `json:"location"`
	WeatherInfo  *WeatherInfo `json:"weather_info,omitempty"`
	Activities   []Activity   `json:"activities"`
	TotalResults int          `json:"total_results"`
}

// FormatSearchResult merges local and places results and annotates them
// with weather suitability when weather data is present.
func FormatSearchResult(resp *SearchResponse, weather *Weather) *SearchResult {
	result := &SearchResult{
		SearchID:   resp.SearchMetadata.ID,
		Location:   resp.SearchParameters.Q,
		Activities: []Activity{},
	}

	outdoorOK := true
	if weather != nil {
		outdoorOK = weather.OutdoorSuitable()
		info := &WeatherInfo{
			Condition:          weather.Condition().Description,
			Temperature:        int(math.Round(weather.Main.Temp)),
			SuitableForOutdoor: outdoorOK,
		}
		if !outdoorOK {
			info.Recommendations = []string{
				"Consider indoor activities",
				"Museums and galleries",
				"Shopping centers",
				"Restaurants",
			}
		}
		result.WeatherInfo = info
	}

	all := append(append([]activityResult{}, resp.LocalResults...), resp.PlacesResults...)
	for _, item := range all {
		activity := Activity{
			Title:           item.Title,
			Description:     item.Description,
			Rating:          item.Rating,
			Reviews:         item.Reviews,
			Address:         item.Address,
			Categories:      item.Categories,
			Website:         item.Website,
			Phone:           item.Phone,
			WeatherSuitable: outdoorOK,
		}
		if item.Price != nil {
			activity.Price = &ActivityPrice{
				Amount:      item.Price.Value,
				Currency:    item.Price.Currency,
				Description: item.Price.Description,
			}
		}
		result.Activities = append(result.Activities, activity)
	}

	result.TotalResults = len(result.Activities)
	return result
}

// OutdoorAssessment explains whether outdoor activities fit current
// conditions and what to do instead.
type OutdoorAssessment struct {
	Suitable     bool     `json:"recommended"`
	Reason       string   `json:"reason,omitempty"`
	Alternatives []string `json:"alternatives,omitempty"`
}

// AssessOutdoor ports the weather gate for outdoor plans: storms, rain,
// snow, temperature extremes, and high wind all push indoors.
func AssessOutdoor(weather *Weather) OutdoorAssessment {
	if !weather.OutdoorSuitable() {
		return OutdoorAssessment{
			Reason:       fmt.Sprintf("Not recommended due to %s", weather.Condition().Description),
			Alternatives: []string{"Museums", "Indoor attractions", "Shopping", "Restaurants"},
		}
	}
	if weather.Main.Temp < 0 {
		return OutdoorAssessment{
			Reason:       "Very cold weather, outdoor activities may be uncomfortable",
			Alternatives: []string{"Indoor activities", "Museums", "Shopping centers"},
		}
	}
	if weather.Main.Temp > 35 {
		return OutdoorAssessment{
			Reason:       "Very hot weather, outdoor activities may be uncomfortable",
			Alternatives: []string{"Indoor attractions", "Air-conditioned venues", "Water activities"},
		}
	}
	if weather.Wind.Speed > 10 {
		return OutdoorAssessment{
			Reason:       "High winds may affect outdoor activities",
			Alternatives: []string{"Indoor activities", "Sheltered attractions"},
		}
	}
	return OutdoorAssessment{Suitable: true}
}
