// Package hotels searches Google Hotels via SerpAPI and exposes the
// results as an agent tool.
package hotels

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://serpapi.com/search.json"

// sortModes maps friendly sort names to the numeric codes the
// google_hotels engine expects.
var sortModes = map[string]string{
	"price_low":  "3",
	"price_high": "4",
	"rating":     "8",
	"distance":   "1",
	"deals":      "13",
}

// Client is a SerpAPI google_hotels client.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a hotel search client authenticated with the given key.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SetBaseURL overrides the API endpoint; tests point it at a local server.
func (c *Client) SetBaseURL(u string) { c.baseURL = u }

// SearchParams are the inputs to Search.
type SearchParams struct {
	Location         string
	CheckInDate      string
	CheckOutDate     string
	Adults           int
	Children         int
	Rooms            int
	Currency         string
	SortBy           string
	HotelClass       int
	MaxPrice         float64
	MinRating        float64
	FreeCancellation bool
	VacationRentals  bool
}

// Wire types for the slice of the SerpAPI response we consume.
type searchResponse struct {
	SearchMetadata struct {
		ID string `json:"id"`
	} `json:"search_metadata"`
	SearchParameters struct {
		Q            string `json:"q"`
		CheckInDate  string `json:"check_in_date"`
		CheckOutDate string `json:"check_out_date"`
		Adults       int    `json:"adults"`
		Children     int    `json:"children"`
		Currency     string `json:"currency"`
	} `json:"search_parameters"`
	Properties []property `json:"properties"`
	Error      string     `json:"error"`
}

type rateInfo struct {
	ExtractedLowest          float64 `json:"extracted_lowest"`
	ExtractedBeforeTaxesFees float64 `json:"extracted_before_taxes_fees"`
}

type property struct {
	Name                string    `json:"name"`
	Type                string    `json:"type"`
	Rating              float64   `json:"rating"`
	Reviews             int       `json:"reviews"`
	ExtractedHotelClass int       `json:"extracted_hotel_class"`
	RatePerNight        *rateInfo `json:"rate_per_night"`
	TotalRate           *rateInfo `json:"total_rate"`
	Amenities           []string  `json:"amenities"`
	PropertyToken       string    `json:"property_token"`
}

// PriceInfo is a resolved rate in the search currency.
type PriceInfo struct {
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	BeforeTaxes float64 `json:"before_taxes"`
}

// Hotel is the condensed per-property view returned to the agent.
type Hotel struct {
	Name          string     `json:"name"`
	Type          string     `json:"type,omitempty"`
	Rating        float64    `json:"rating,omitempty"`
	Reviews       int        `json:"reviews,omitempty"`
	HotelClass    int        `json:"hotel_class,omitempty"`
	PricePerNight *PriceInfo `json:"price_per_night,omitempty"`
	TotalPrice    *PriceInfo `json:"total_price,omitempty"`
	Amenities     []string   `json:"amenities,omitempty"`
	PropertyToken string     `json:"property_token,omitempty"`
}

// SearchResult is the formatted outcome of a hotel search.
type SearchResult struct {
	SearchID string `json:"search_id"`
	Location string `json:"location"`
	Dates    struct {
		CheckIn  string `json:"check_in"`
		CheckOut string `json:"check_out"`
	} `json:"dates"`
	Guests struct {
		Adults   int `json:"adults"`
		Children int `json:"children,omitempty"`
	} `json:"guests"`
	Hotels       []Hotel `json:"hotels"`
	TotalResults int     `json:"total_results"`
}

// Search queries the google_hotels engine and formats the properties.
func (c *Client) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("SerpAPI key is required; set SERPAPI_API_KEY")
	}

	currency := params.Currency
	if currency == "" {
		currency = "USD"
	}

	q := url.Values{}
	q.Set("engine", "google_hotels")
	q.Set("q", params.Location)
	q.Set("check_in_date", params.CheckInDate)
	q.Set("check_out_date", params.CheckOutDate)
	q.Set("adults", strconv.Itoa(params.Adults))
	q.Set("currency", currency)
	q.Set("gl", "us")
	q.Set("hl", "en")
	q.Set("api_key", c.apiKey)

	if params.Children > 0 {
		q.Set("children", strconv.Itoa(params.Children))
	}
	if params.Rooms > 1 {
		q.Set("rooms", strconv.Itoa(params.Rooms))
	}
	if code, ok := sortModes[params.SortBy]; ok {
		q.Set("sort_by", code)
	}
	if params.HotelClass > 0 {
		q.Set("hotel_class", strconv.Itoa(params.HotelClass))
	}
	if params.MaxPrice > 0 {
		q.Set("max_price", strconv.FormatFloat(params.MaxPrice, 'f', -1, 64))
	}
	if params.MinRating > 0 {
		q.Set("min_rating", strconv.FormatFloat(params.MinRating, 'f', -1, 64))
	}
	if params.FreeCancellation {
		q.Set("free_cancellation", "true")
	}
	if params.VacationRentals {
		q.Set("vacation_rentals", "true")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hotel search request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read hotel search response: %w", err)
	}

	var decoded searchResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode hotel search response: %w", err)
	}
	if decoded.Error != "" {
		return nil, fmt.Errorf("SerpAPI hotels search failed: %s", decoded.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("SerpAPI hotels search failed with status %d", resp.StatusCode)
	}

	return formatSearchResult(decoded), nil
}

func formatSearchResult(resp searchResponse) *SearchResult {
	result := &SearchResult{
		SearchID: resp.SearchMetadata.ID,
		Location: resp.SearchParameters.Q,
		Hotels:   []Hotel{},
	}
	result.Dates.CheckIn = resp.SearchParameters.CheckInDate
	result.Dates.CheckOut = resp.SearchParameters.CheckOutDate
	result.Guests.Adults = resp.SearchParameters.Adults
	result.Guests.Children = resp.SearchParameters.Children

	currency := resp.SearchParameters.Currency

	for _, prop := range resp.Properties {
		hotel := Hotel{
			Name:          prop.Name,
			Type:          prop.Type,
			Rating:        prop.Rating,
			Reviews:       prop.Reviews,
			HotelClass:    prop.ExtractedHotelClass,
			Amenities:     prop.Amenities,
			PropertyToken: prop.PropertyToken,
		}
		if prop.RatePerNight != nil {
			hotel.PricePerNight = priceInfo(prop.RatePerNight, currency)
		}
		if prop.TotalRate != nil {
			hotel.TotalPrice = priceInfo(prop.TotalRate, currency)
		}
		result.Hotels = append(result.Hotels, hotel)
	}

	result.TotalResults = len(result.Hotels)
	return result
}

func priceInfo(rate *rateInfo, currency string) *PriceInfo {
	beforeTaxes := rate.ExtractedBeforeTaxesFees
	if beforeTaxes == 0 {
		beforeTaxes = rate.ExtractedLowest
	}
	return &PriceInfo{
		Amount:      rate.ExtractedLowest,
		Currency:    currency,
		BeforeTaxes: beforeTaxes,
	}
}
