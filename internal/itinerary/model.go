// Package itinerary implements the per-session trip itinerary document
// store: a fixed-schema, day-bucketed document persisted as a whole on
// every mutation.
package itinerary

import "time"

// DateLayout is the calendar date format used throughout the store.
// Dates carry no time component and are compared as exact strings.
const DateLayout = "2006-01-02"

// Period is one of the three fixed time-of-day buckets within a day.
type Period string

const (
	PeriodMorning   Period = "morning"
	PeriodAfternoon Period = "afternoon"
	PeriodEvening   Period = "evening"
	// PeriodAll is accepted by bulk removal to target every bucket.
	PeriodAll Period = "all"
)

// Periods lists the three real buckets in day order.
var Periods = []Period{PeriodMorning, PeriodAfternoon, PeriodEvening}

// Valid reports whether p names a real bucket (not "all").
func (p Period) Valid() bool {
	switch p {
	case PeriodMorning, PeriodAfternoon, PeriodEvening:
		return true
	}
	return false
}

// Price is an amount in a free-text currency code.
type Price struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// ActivityItem is a single scheduled entry within a day period.
// Title is the only field used for matching during bulk removal.
type ActivityItem struct {
	Title   string `json:"title"`
	Time    string `json:"time"` // free-text, e.g. "09:00" or "09:00-11:00"
	Price   *Price `json:"price,omitempty"`
	Details string `json:"details,omitempty"`
}

// Accommodation is the at-most-one hotel record for a day. Setting it
// again replaces the previous value entirely.
type Accommodation struct {
	HotelName     string `json:"hotel_name"`
	PricePerNight *Price `json:"price_per_night,omitempty"`
}

// DayPlan holds one calendar date's three activity buckets and its
// optional accommodation. Days are created once at session start and
// never added or removed afterwards.
type DayPlan struct {
	Date          string         `json:"date"`
	Morning       []ActivityItem `json:"morning"`
	Afternoon     []ActivityItem `json:"afternoon"`
	Evening       []ActivityItem `json:"evening"`
	Accommodation *Accommodation `json:"accommodation,omitempty"`
}

// Bucket returns the activity slice for the named period.
func (d *DayPlan) Bucket(p Period) []ActivityItem {
	switch p {
	case PeriodMorning:
		return d.Morning
	case PeriodAfternoon:
		return d.Afternoon
	case PeriodEvening:
		return d.Evening
	}
	return nil
}

// SetBucket replaces the activity slice for the named period.
func (d *DayPlan) SetBucket(p Period, items []ActivityItem) {
	switch p {
	case PeriodMorning:
		d.Morning = items
	case PeriodAfternoon:
		d.Afternoon = items
	case PeriodEvening:
		d.Evening = items
	}
}

// TravelStyle is the closed set of accepted travel_style values.
var TravelStyles = []string{"budget", "standard", "luxury", "family"}

// Preferences is the sparse trip-level preference record. Pointer
// fields distinguish "not set" from zero values so partial updates can
// shallow-merge without clobbering earlier keys.
type Preferences struct {
	Vegetarian     *bool    `json:"vegetarian,omitempty"`
	Accessibility  *bool    `json:"accessibility,omitempty"`
	TravelStyle    *string  `json:"travel_style,omitempty"`
	MaxHotelBudget *float64 `json:"max_hotel_budget,omitempty"`
	Notes          *string  `json:"notes,omitempty"`
}

// Merge applies the set fields of patch on top of p. Absent fields in
// the patch leave previous values untouched.
func (p *Preferences) Merge(patch Preferences) {
	if patch.Vegetarian != nil {
		p.Vegetarian = patch.Vegetarian
	}
	if patch.Accessibility != nil {
		p.Accessibility = patch.Accessibility
	}
	if patch.TravelStyle != nil {
		p.TravelStyle = patch.TravelStyle
	}
	if patch.MaxHotelBudget != nil {
		p.MaxHotelBudget = patch.MaxHotelBudget
	}
	if patch.Notes != nil {
		p.Notes = patch.Notes
	}
}

// BudgetSummary holds the derived totals. It is recomputed from the
// day data on each summarize call, never incrementally tracked.
type BudgetSummary struct {
	FlightsTotal       float64 `json:"flights_total"`
	AccommodationTotal float64 `json:"accommodation_total"`
	ActivitiesTotal    float64 `json:"activities_total"`
	GrandTotal         float64 `json:"grand_total"`
	PerPerson          float64 `json:"per_person"`
}

// Session is the root aggregate for one trip-planning conversation,
// keyed by a caller-supplied id.
type Session struct {
	ID           string         `json:"id"`
	Origin       string         `json:"origin"`
	Destinations []string       `json:"destinations"`
	StartDate    string         `json:"start_date"`
	EndDate      string         `json:"end_date"`
	NumTravelers int            `json:"num_travelers"`
	Currency     string         `json:"currency"`
	Preferences  Preferences    `json:"preferences"`
	Days         []DayPlan      `json:"days"`
	Totals       *BudgetSummary `json:"totals,omitempty"`
	FinalizedAt  *time.Time     `json:"finalized_at,omitempty"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// Day returns the plan for the exact date, or nil if the date is
// outside the session's fixed range.
func (s *Session) Day(date string) *DayPlan {
	for i := range s.Days {
		if s.Days[i].Date == date {
			return &s.Days[i]
		}
	}
	return nil
}

// Finalized reports whether the session has been finalized at least once.
func (s *Session) Finalized() bool {
	return s.FinalizedAt != nil
}
