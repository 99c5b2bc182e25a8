// Package flights wraps the Duffel offer-request API behind agent
// tools for one-way and round-trip searches.
package flights

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://api.duffel.com"
	apiVersion     = "v2"
	// supplierTimeoutMillis bounds how long Duffel waits on airline
	// suppliers before returning partial results.
	supplierTimeoutMillis = 15000
	// maxOffers caps how many offers a search reports back to the agent.
	maxOffers = 50
)

// Client is a minimal Duffel API client covering offer search.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a Duffel client authenticated with the given key.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SetBaseURL overrides the API endpoint; tests point it at a local server.
func (c *Client) SetBaseURL(u string) { c.baseURL = u }

// TimeWindow bounds departure or arrival times within a day.
type TimeWindow struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Slice is one directional leg of a requested journey.
type Slice struct {
	Origin        string     `json:"origin"`
	Destination   string     `json:"destination"`
	DepartureDate string     `json:"departure_date"`
	DepartureTime TimeWindow `json:"departure_time"`
	ArrivalTime   TimeWindow `json:"arrival_time"`
}

// NewSlice builds a slice with full-day time windows unless the
// departure window is narrowed.
func NewSlice(origin, destination, date, departFrom, departTo string) Slice {
	if departFrom == "" {
		departFrom = "00:00"
	}
	if departTo == "" {
		departTo = "23:59"
	}
	return Slice{
		Origin:        origin,
		Destination:   destination,
		DepartureDate: date,
		DepartureTime: TimeWindow{From: departFrom, To: departTo},
		ArrivalTime:   TimeWindow{From: "00:00", To: "23:59"},
	}
}

// SearchParams are the inputs to CreateOfferRequest.
type SearchParams struct {
	Slices          []Slice
	CabinClass      string
	Adults          int
	MaxConnections  *int
	SupplierTimeout int
}

type passenger struct {
	Type string `json:"type"`
}

type offerRequestBody struct {
	Slices          []Slice     `json:"slices"`
	CabinClass      string      `json:"cabin_class"`
	Passengers      []passenger `json:"passengers"`
	ReturnOffers    bool        `json:"return_offers"`
	SupplierTimeout int         `json:"supplier_timeout"`
	MaxConnections  *int        `json:"max_connections,omitempty"`
}

// Wire types for the slice of the Duffel response we consume.
type apiPlace struct {
	IATACode string `json:"iata_code"`
}

type apiCarrier struct {
	Name string `json:"name"`
}

type apiSegment struct {
	DepartingAt      string     `json:"departing_at"`
	ArrivingAt       string     `json:"arriving_at"`
	Duration         string     `json:"duration"`
	Destination      apiPlace   `json:"destination"`
	MarketingCarrier apiCarrier `json:"marketing_carrier"`
}

type apiSlice struct {
	Origin      apiPlace     `json:"origin"`
	Destination apiPlace     `json:"destination"`
	Duration    string       `json:"duration"`
	Segments    []apiSegment `json:"segments"`
}

type apiOffer struct {
	ID            string     `json:"id"`
	TotalAmount   string     `json:"total_amount"`
	TotalCurrency string     `json:"total_currency"`
	Slices        []apiSlice `json:"slices"`
}

type offerRequestData struct {
	ID     string     `json:"id"`
	Offers []apiOffer `json:"offers"`
}

type apiErrorBody struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Money is a decimal amount as the API reports it, with its currency.
type Money struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// Connection describes one layover within a slice.
type Connection struct {
	Airport   string `json:"airport"`
	Arrival   string `json:"arrival"`
	Departure string `json:"departure"`
	Duration  string `json:"duration"`
}

// SliceSummary is the condensed per-leg view returned to the agent.
type SliceSummary struct {
	Origin           string       `json:"origin"`
	Destination      string       `json:"destination"`
	Departure        string       `json:"departure"`
	Arrival          string       `json:"arrival"`
	Duration         string       `json:"duration"`
	Carrier          string       `json:"carrier"`
	Stops            int          `json:"stops"`
	StopsDescription string       `json:"stops_description"`
	Connections      []Connection `json:"connections"`
}

// Offer is one priced flight option.
type Offer struct {
	OfferID string         `json:"offer_id"`
	Price   Money          `json:"price"`
	Slices  []SliceSummary `json:"slices"`
}

// SearchResult is the formatted outcome of an offer request.
type SearchResult struct {
	RequestID string  `json:"request_id"`
	Offers    []Offer `json:"offers"`
}

// CreateOfferRequest posts an offer request and returns the formatted
// offers, capped at maxOffers.
func (c *Client) CreateOfferRequest(ctx context.Context, params SearchParams) (*SearchResult, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("Duffel API key is required; set DUFFEL_API_KEY")
	}

	adults := params.Adults
	if adults <= 0 {
		adults = 1
	}
	passengers := make([]passenger, adults)
	for i := range passengers {
		passengers[i] = passenger{Type: "adult"}
	}

	timeout := params.SupplierTimeout
	if timeout <= 0 {
		timeout = supplierTimeoutMillis
	}

	body := struct {
		Data offerRequestBody `json:"data"`
	}{Data: offerRequestBody{
		Slices:          params.Slices,
		CabinClass:      params.CabinClass,
		Passengers:      passengers,
		ReturnOffers:    true,
		SupplierTimeout: timeout,
		MaxConnections:  params.MaxConnections,
	}}

	var data offerRequestData
	if err := c.do(ctx, http.MethodPost, "/air/offer_requests", body, &data); err != nil {
		return nil, err
	}
	return formatOffers(data), nil
}

// GetOffer fetches the full raw document for one offer id.
func (c *Client) GetOffer(ctx context.Context, offerID string) (json.RawMessage, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("Duffel API key is required; set DUFFEL_API_KEY")
	}

	var data json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/air/offers/"+offerID, nil, &data); err != nil {
		return nil, err
	}
	return data, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode duffel request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Duffel-Version", apiVersion)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("duffel request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read duffel response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiErrorBody
		message := http.StatusText(resp.StatusCode)
		if json.Unmarshal(raw, &apiErr) == nil && len(apiErr.Errors) > 0 {
			message = apiErr.Errors[0].Message
		}
		return fmt.Errorf("duffel API error (%d): %s", resp.StatusCode, message)
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("failed to decode duffel response: %w", err)
	}
	return json.Unmarshal(envelope.Data, out)
}

func formatOffers(data offerRequestData) *SearchResult {
	result := &SearchResult{RequestID: data.ID, Offers: []Offer{}}

	offers := data.Offers
	if len(offers) > maxOffers {
		offers = offers[:maxOffers]
	}

	for _, offer := range offers {
		formatted := Offer{
			OfferID: offer.ID,
			Price:   Money{Amount: offer.TotalAmount, Currency: offer.TotalCurrency},
			Slices:  []SliceSummary{},
		}

		for _, slice := range offer.Slices {
			segments := slice.Segments
			if len(segments) == 0 {
				continue
			}

			carrier := segments[0].MarketingCarrier.Name
			if carrier == "" {
				carrier = "Unknown"
			}

			summary := SliceSummary{
				Origin:           slice.Origin.IATACode,
				Destination:      slice.Destination.IATACode,
				Departure:        segments[0].DepartingAt,
				Arrival:          segments[len(segments)-1].ArrivingAt,
				Duration:         slice.Duration,
				Carrier:          carrier,
				Stops:            len(segments) - 1,
				StopsDescription: stopsDescription(len(segments) - 1),
				Connections:      []Connection{},
			}

			for i := 0; i < len(segments)-1; i++ {
				summary.Connections = append(summary.Connections, Connection{
					Airport:   segments[i].Destination.IATACode,
					Arrival:   segments[i].ArrivingAt,
					Departure: segments[i+1].DepartingAt,
					Duration:  segments[i+1].Duration,
				})
			}

			formatted.Slices = append(formatted.Slices, summary)
		}

		result.Offers = append(result.Offers, formatted)
	}

	return result
}

func stopsDescription(stops int) string {
	switch {
	case stops <= 0:
		return "Non-stop"
	case stops == 1:
		return "1 stop"
	default:
		return fmt.Sprintf("%d stops", stops)
	}
}
