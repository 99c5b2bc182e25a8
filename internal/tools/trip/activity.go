package trip

import (
	"context"
	"fmt"

	"github.com/ChamsBouzaiene/voyager/internal/engine"
	"github.com/ChamsBouzaiene/voyager/internal/itinerary"
)

// NewAddActivityTool creates an engine.Tool that appends an activity to
// one period of one day. Duplicates are permitted; the store never
// deduplicates.
func NewAddActivityTool(store *itinerary.Store) engine.Tool {
	return engine.Tool{
		Name:        "add_activity",
		Description: "Add an activity to a specific day and period (morning/afternoon/evening).",
		SchemaJSON:  `{"type":"object","properties":{"session_id":{"type":"string","description":"Itinerary session id"},"date":{"type":"string","description":"YYYY-MM-DD for the day to update"},"period":{"type":"string","enum":["morning","afternoon","evening"],"description":"Which part of the day"},"activity":{"type":"object","properties":{"title":{"type":"string"},"time":{"type":"string","description":"Start time or time window, e.g. '09:00' or '09:00-11:00'"},"price":{"type":"object","properties":{"amount":{"type":"number"},"currency":{"type":"string"}},"required":["amount","currency"]},"details":{"type":"string"}},"required":["title"]}},"required":["session_id","date","period","activity"]}`,
		Fn: func(ctx context.Context, args map[string]any) (string, error) {
			sessionID, err := stringArg(args, "session_id")
			if err != nil {
				return "", err
			}
			date, err := stringArg(args, "date")
			if err != nil {
				return "", err
			}
			period, err := stringArg(args, "period")
			if err != nil {
				return "", err
			}
			rawActivity, ok := args["activity"].(map[string]any)
			if !ok {
				return "", fmt.Errorf("activity must be an object")
			}

			activity, err := itinerary.ActivityFromArgs(rawActivity)
			if err != nil {
				return "", err
			}

			count, err := store.AddActivity(ctx, sessionID, date, itinerary.Period(period), activity)
			if err != nil {
				return "", err
			}

			return marshal(map[string]any{
				"status":       "ok",
				"itinerary_id": sessionID,
				"date":         date,
				"period":       period,
				"count":        count,
			})
		},
		Retryable: false, // a retry would append the activity again
	}
}

// NewRemoveActivitiesTool creates an engine.Tool that bulk-deletes
// activities by date, period, and title substring. Re-running the same
// call removes nothing further.
func NewRemoveActivitiesTool(store *itinerary.Store) engine.Tool {
	return engine.Tool{
		Name:        "remove_activities",
		Description: "Remove activities from the itinerary by date, period, and/or title substring. Omitting date targets every day; omitting period or passing 'all' targets every period; omitting title_contains matches every activity.",
		SchemaJSON:  `{"type":"object","properties":{"session_id":{"type":"string","description":"Itinerary session id"},"date":{"type":"string","description":"YYYY-MM-DD to target a specific day. If omitted, applies across all days."},"period":{"type":"string","enum":["morning","afternoon","evening","all"],"description":"Period to target. Defaults to all periods."},"title_contains":{"type":"string","description":"Case-insensitive substring to match activity titles for removal."}},"required":["session_id"]}`,
		Fn: func(ctx context.Context, args map[string]any) (string, error) {
			sessionID, err := stringArg(args, "session_id")
			if err != nil {
				return "", err
			}

			filter := itinerary.RemoveFilter{
				Date:          optString(args, "date"),
				Period:        itinerary.Period(optString(args, "period")),
				TitleContains: optString(args, "title_contains"),
			}

			result, err := store.RemoveActivities(ctx, sessionID, filter)
			if err != nil {
				return "", err
			}

			period := filter.Period
			if period == "" {
				period = itinerary.PeriodAll
			}
			return marshal(map[string]any{
				"status":       "ok",
				"itinerary_id": sessionID,
				"date":         filter.Date,
				"period":       period,
				"title_filter": filter.TitleContains,
				"removed":      result.Removed,
				"remaining":    result.Remaining,
			})
		},
		Retryable: true, // removal is idempotent
	}
}
