package itinerary

import (
	"fmt"
	"time"
)

// ExpandDateRange produces every calendar date from start to end
// inclusive, in order. Arithmetic is done in UTC so daylight-saving
// transitions cannot drop or duplicate a date. Used only at session
// creation to seed the fixed day sequence.
func ExpandDateRange(start, end string) ([]string, error) {
	startT, err := time.ParseInLocation(DateLayout, start, time.UTC)
	if err != nil {
		return nil, &ValidationError{Field: "start_date", Reason: fmt.Sprintf("not a calendar date: %q", start)}
	}
	endT, err := time.ParseInLocation(DateLayout, end, time.UTC)
	if err != nil {
		return nil, &ValidationError{Field: "end_date", Reason: fmt.Sprintf("not a calendar date: %q", end)}
	}
	if endT.Before(startT) {
		return nil, &InvalidRangeError{Start: start, End: end}
	}

	var dates []string
	for d := startT; !d.After(endT); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateLayout))
	}
	return dates, nil
}

// newDays seeds one empty DayPlan per date, each with three empty
// period buckets and no accommodation.
func newDays(dates []string) []DayPlan {
	days := make([]DayPlan, 0, len(dates))
	for _, date := range dates {
		days = append(days, DayPlan{
			Date:      date,
			Morning:   []ActivityItem{},
			Afternoon: []ActivityItem{},
			Evening:   []ActivityItem{},
		})
	}
	return days
}
