package hotels

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const hotelsFixture = `{
  "search_metadata": {"id": "srch_42"},
  "search_parameters": {
    "q": "Paris",
    "check_in_date": "2025-06-01",
    "check_out_date": "2025-06-03",
    "adults": 2,
    "currency": "USD"
  },
  "properties": [
    {
      "name": "Hotel Lutetia",
      "type": "hotel",
      "rating": 4.7,
      "reviews": 1812,
      "extracted_hotel_class": 5,
      "rate_per_night": {"extracted_lowest": 850, "extracted_before_taxes_fees": 780},
      "total_rate": {"extracted_lowest": 1700},
      "amenities": ["Spa", "Pool", "Free Wi-Fi"],
      "property_token": "tok_abc"
    },
    {
      "name": "Ibis Budget Montmartre",
      "type": "hotel",
      "rating": 3.9,
      "reviews": 540,
      "rate_per_night": {"extracted_lowest": 95}
    }
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient("test-key")
	client.SetBaseURL(server.URL)
	return client
}

func TestSearchBuildsQueryAndFormats(t *testing.T) {
	var query map[string]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = map[string]string{}
		for key, vals := range r.URL.Query() {
			query[key] = vals[0]
		}
		w.Write([]byte(hotelsFixture))
	})

	result, err := client.Search(context.Background(), SearchParams{
		Location:     "Paris",
		CheckInDate:  "2025-06-01",
		CheckOutDate: "2025-06-03",
		Adults:       2,
		SortBy:       "price_low",
		MinRating:    4,
	})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if query["engine"] != "google_hotels" || query["q"] != "Paris" {
		t.Errorf("Unexpected query: %v", query)
	}
	if query["sort_by"] != "3" {
		t.Errorf("Expected sort_by=3 for price_low, got %q", query["sort_by"])
	}
	if query["min_rating"] != "4" {
		t.Errorf("Expected min_rating=4, got %q", query["min_rating"])
	}
	if query["currency"] != "USD" || query["gl"] != "us" || query["hl"] != "en" {
		t.Errorf("Expected default locale params, got %v", query)
	}
	if _, present := query["children"]; present {
		t.Error("children should be omitted when zero")
	}

	if result.SearchID != "srch_42" || result.TotalResults != 2 {
		t.Fatalf("Unexpected result: %+v", result)
	}
	if result.Dates.CheckIn != "2025-06-01" || result.Guests.Adults != 2 {
		t.Errorf("Unexpected echo of search parameters: %+v", result)
	}

	luxury := result.Hotels[0]
	if luxury.HotelClass != 5 || luxury.PropertyToken != "tok_abc" {
		t.Errorf("Unexpected hotel: %+v", luxury)
	}
	if luxury.PricePerNight == nil || luxury.PricePerNight.Amount != 850 || luxury.PricePerNight.BeforeTaxes != 780 {
		t.Errorf("Unexpected nightly rate: %+v", luxury.PricePerNight)
	}
	if luxury.TotalPrice == nil || luxury.TotalPrice.BeforeTaxes != 1700 {
		t.Errorf("Expected before_taxes fallback to lowest, got %+v", luxury.TotalPrice)
	}

	budget := result.Hotels[1]
	if budget.TotalPrice != nil {
		t.Errorf("Expected no total price, got %+v", budget.TotalPrice)
	}
	if budget.PricePerNight.Currency != "USD" {
		t.Errorf("Expected currency from search parameters, got %q", budget.PricePerNight.Currency)
	}
}

func TestSearchSurfacesAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "Missing query parameter"}`))
	})

	_, err := client.Search(context.Background(), SearchParams{
		Location:     "Paris",
		CheckInDate:  "2025-06-01",
		CheckOutDate: "2025-06-03",
		Adults:       2,
	})
	if err == nil || !strings.Contains(err.Error(), "Missing query parameter") {
		t.Fatalf("Expected API error message, got %v", err)
	}
}

func TestSearchHotelsTool(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("hotel_class"); got != "4" {
			t.Errorf("Expected hotel_class=4, got %q", got)
		}
		w.Write([]byte(hotelsFixture))
	})

	tool := NewSearchHotelsTool(client)
	args := map[string]any{
		"location":       "Paris",
		"check_in_date":  "2025-06-01",
		"check_out_date": "2025-06-03",
		"hotel_class":    float64(4),
	}
	if err := tool.ValidateArgs(args); err != nil {
		t.Fatalf("Args rejected: %v", err)
	}

	out, err := tool.Fn(context.Background(), args)
	if err != nil {
		t.Fatalf("search_hotels failed: %v", err)
	}

	var result SearchResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("Tool returned invalid JSON: %v", err)
	}
	if len(result.Hotels) != 2 {
		t.Errorf("Expected 2 hotels, got %d", len(result.Hotels))
	}
}
