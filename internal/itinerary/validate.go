package itinerary

import (
	"fmt"
	"strings"
)

// PreferencesFromArgs converts a loosely-typed preferences payload into
// a typed patch, rejecting unknown fields, wrong types, and travel
// styles outside the closed set. Validation happens before any merge
// so a failed update leaves the stored document unchanged.
func PreferencesFromArgs(args map[string]any) (Preferences, error) {
	var p Preferences
	for key, raw := range args {
		switch key {
		case "vegetarian":
			b, ok := raw.(bool)
			if !ok {
				return Preferences{}, &ValidationError{Field: "vegetarian", Reason: "must be a boolean"}
			}
			p.Vegetarian = &b
		case "accessibility":
			b, ok := raw.(bool)
			if !ok {
				return Preferences{}, &ValidationError{Field: "accessibility", Reason: "must be a boolean"}
			}
			p.Accessibility = &b
		case "travel_style":
			s, ok := raw.(string)
			if !ok {
				return Preferences{}, &ValidationError{Field: "travel_style", Reason: "must be a string"}
			}
			if !validTravelStyle(s) {
				return Preferences{}, &ValidationError{
					Field:  "travel_style",
					Reason: fmt.Sprintf("%q is not one of %s", s, strings.Join(TravelStyles, ", ")),
				}
			}
			p.TravelStyle = &s
		case "max_hotel_budget":
			n, ok := asNumber(raw)
			if !ok {
				return Preferences{}, &ValidationError{Field: "max_hotel_budget", Reason: "must be a number"}
			}
			p.MaxHotelBudget = &n
		case "notes":
			s, ok := raw.(string)
			if !ok {
				return Preferences{}, &ValidationError{Field: "notes", Reason: "must be a string"}
			}
			p.Notes = &s
		default:
			return Preferences{}, &ValidationError{Field: key, Reason: "unknown preference field"}
		}
	}
	return p, nil
}

// ActivityFromArgs converts a loosely-typed activity payload into a
// typed ActivityItem. Title is required; price, when present, needs
// both amount and currency.
func ActivityFromArgs(args map[string]any) (ActivityItem, error) {
	var a ActivityItem

	title, ok := args["title"].(string)
	if !ok || title == "" {
		return ActivityItem{}, &ValidationError{Field: "activity.title", Reason: "required and must be a non-empty string"}
	}
	a.Title = title

	if raw, present := args["time"]; present {
		s, ok := raw.(string)
		if !ok {
			return ActivityItem{}, &ValidationError{Field: "activity.time", Reason: "must be a string"}
		}
		a.Time = s
	}
	if raw, present := args["details"]; present {
		s, ok := raw.(string)
		if !ok {
			return ActivityItem{}, &ValidationError{Field: "activity.details", Reason: "must be a string"}
		}
		a.Details = s
	}
	if raw, present := args["price"]; present && raw != nil {
		price, err := priceFromArgs("activity.price", raw)
		if err != nil {
			return ActivityItem{}, err
		}
		a.Price = price
	}
	return a, nil
}

// PriceFromArgs validates an optional {amount, currency} record.
func PriceFromArgs(field string, raw any) (*Price, error) {
	return priceFromArgs(field, raw)
}

func priceFromArgs(field string, raw any) (*Price, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, &ValidationError{Field: field, Reason: "must be an object with amount and currency"}
	}
	amount, ok := asNumber(obj["amount"])
	if !ok {
		return nil, &ValidationError{Field: field + ".amount", Reason: "required and must be a number"}
	}
	currency, ok := obj["currency"].(string)
	if !ok || currency == "" {
		return nil, &ValidationError{Field: field + ".currency", Reason: "required and must be a non-empty string"}
	}
	return &Price{Amount: amount, Currency: currency}, nil
}

func validTravelStyle(s string) bool {
	for _, style := range TravelStyles {
		if s == style {
			return true
		}
	}
	return false
}

// asNumber accepts the numeric shapes JSON decoding produces.
func asNumber(raw any) (float64, bool) {
	switch n := raw.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
