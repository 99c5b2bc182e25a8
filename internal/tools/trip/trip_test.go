package trip

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ChamsBouzaiene/voyager/internal/engine"
	"github.com/ChamsBouzaiene/voyager/internal/itinerary"
)

func newTestStore(t *testing.T) *itinerary.Store {
	t.Helper()
	repo, err := itinerary.NewFileRepository(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileRepository failed: %v", err)
	}
	store := itinerary.NewStore(repo)
	t.Cleanup(func() { store.Close() })
	return store
}

func call(t *testing.T, tool engine.Tool, args map[string]any) map[string]any {
	t.Helper()
	if err := tool.ValidateArgs(args); err != nil {
		t.Fatalf("%s args rejected: %v", tool.Name, err)
	}
	out, err := tool.Fn(context.Background(), args)
	if err != nil {
		t.Fatalf("%s failed: %v", tool.Name, err)
	}
	var result map[string]any
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("%s returned invalid JSON %q: %v", tool.Name, out, err)
	}
	return result
}

func startSession(t *testing.T, store *itinerary.Store, id string) {
	t.Helper()
	result := call(t, NewStartItineraryTool(store), map[string]any{
		"session_id":    id,
		"origin":        "NYC",
		"destinations":  []any{"Paris"},
		"start_date":    "2025-06-01",
		"end_date":      "2025-06-03",
		"num_travelers": float64(2),
	})
	if result["days"] != float64(3) {
		t.Fatalf("Expected 3 days, got %v", result["days"])
	}
}

func TestStartItineraryCreatesDays(t *testing.T) {
	store := newTestStore(t)
	startSession(t, store, "trip-1")

	session, err := store.Get(context.Background(), "trip-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if session.NumTravelers != 2 || session.Currency != "USD" {
		t.Errorf("Unexpected session fields: travelers=%d currency=%q", session.NumTravelers, session.Currency)
	}
}

func TestStartItineraryRejectsEmptyDestinations(t *testing.T) {
	store := newTestStore(t)
	tool := NewStartItineraryTool(store)
	_, err := tool.Fn(context.Background(), map[string]any{
		"session_id":   "trip-1",
		"origin":       "NYC",
		"destinations": []any{},
		"start_date":   "2025-06-01",
		"end_date":     "2025-06-03",
	})
	if err == nil {
		t.Fatal("Expected error for empty destinations")
	}
}

func TestAddActivityRoundTrip(t *testing.T) {
	store := newTestStore(t)
	startSession(t, store, "trip-1")

	result := call(t, NewAddActivityTool(store), map[string]any{
		"session_id": "trip-1",
		"date":       "2025-06-02",
		"period":     "morning",
		"activity": map[string]any{
			"title": "Louvre",
			"time":  "09:00",
			"price": map[string]any{"amount": float64(20), "currency": "EUR"},
		},
	})
	if result["count"] != float64(1) {
		t.Errorf("Expected count 1, got %v", result["count"])
	}

	session, _ := store.Get(context.Background(), "trip-1")
	day := session.Day("2025-06-02")
	if len(day.Morning) != 1 || day.Morning[0].Title != "Louvre" {
		t.Errorf("Activity not persisted: %+v", day.Morning)
	}
}

func TestAddActivityUnknownDate(t *testing.T) {
	store := newTestStore(t)
	startSession(t, store, "trip-1")

	tool := NewAddActivityTool(store)
	_, err := tool.Fn(context.Background(), map[string]any{
		"session_id": "trip-1",
		"date":       "2025-07-01",
		"period":     "morning",
		"activity":   map[string]any{"title": "Louvre"},
	})
	if err == nil || !strings.Contains(err.Error(), "2025-07-01") {
		t.Fatalf("Expected date-not-found error, got %v", err)
	}
}

func TestUpdatePreferencesMergesPatch(t *testing.T) {
	store := newTestStore(t)
	startSession(t, store, "trip-1")

	call(t, NewUpdatePreferencesTool(store), map[string]any{
		"session_id":  "trip-1",
		"preferences": map[string]any{"vegetarian": true},
	})
	result := call(t, NewUpdatePreferencesTool(store), map[string]any{
		"session_id":  "trip-1",
		"preferences": map[string]any{"travel_style": "luxury"},
	})

	prefs, ok := result["preferences"].(map[string]any)
	if !ok {
		t.Fatalf("Expected preferences object, got %v", result["preferences"])
	}
	if prefs["vegetarian"] != true || prefs["travel_style"] != "luxury" {
		t.Errorf("Expected merged preferences, got %v", prefs)
	}
}

func TestUpdatePreferencesRejectsUnknownField(t *testing.T) {
	store := newTestStore(t)
	startSession(t, store, "trip-1")

	tool := NewUpdatePreferencesTool(store)
	_, err := tool.Fn(context.Background(), map[string]any{
		"session_id":  "trip-1",
		"preferences": map[string]any{"favorite_color": "blue"},
	})
	if err == nil {
		t.Fatal("Expected error for unknown preference field")
	}
}

func TestSetAccommodationReplaces(t *testing.T) {
	store := newTestStore(t)
	startSession(t, store, "trip-1")

	call(t, NewSetAccommodationTool(store), map[string]any{
		"session_id":      "trip-1",
		"date":            "2025-06-01",
		"hotel_name":      "Hotel A",
		"price_per_night": map[string]any{"amount": float64(100), "currency": "USD"},
	})
	result := call(t, NewSetAccommodationTool(store), map[string]any{
		"session_id": "trip-1",
		"date":       "2025-06-01",
		"hotel_name": "Hotel B",
	})

	acc, ok := result["accommodation"].(map[string]any)
	if !ok {
		t.Fatalf("Expected accommodation object, got %v", result["accommodation"])
	}
	if acc["hotel_name"] != "Hotel B" {
		t.Errorf("Expected replacement hotel, got %v", acc)
	}
	if _, hasPrice := acc["price_per_night"]; hasPrice {
		t.Errorf("Expected price dropped on replacement, got %v", acc)
	}
}

func TestRemoveActivitiesIdempotent(t *testing.T) {
	store := newTestStore(t)
	startSession(t, store, "trip-1")

	add := NewAddActivityTool(store)
	call(t, add, map[string]any{
		"session_id": "trip-1", "date": "2025-06-01", "period": "morning",
		"activity": map[string]any{"title": "Louvre Museum"},
	})
	call(t, add, map[string]any{
		"session_id": "trip-1", "date": "2025-06-01", "period": "morning",
		"activity": map[string]any{"title": "Seine Cruise"},
	})

	remove := NewRemoveActivitiesTool(store)
	args := map[string]any{
		"session_id":     "trip-1",
		"date":           "2025-06-01",
		"title_contains": "louvre",
	}
	first := call(t, remove, args)
	if first["removed"] != float64(1) || first["remaining"] != float64(1) {
		t.Errorf("Expected removed=1 remaining=1, got %v", first)
	}

	second := call(t, remove, args)
	if second["removed"] != float64(0) || second["remaining"] != float64(1) {
		t.Errorf("Expected idempotent re-run, got %v", second)
	}
}

func TestGetItineraryReturnsDocument(t *testing.T) {
	store := newTestStore(t)
	startSession(t, store, "trip-1")

	result := call(t, NewGetItineraryTool(store), map[string]any{"session_id": "trip-1"})
	if result["id"] != "trip-1" {
		t.Errorf("Expected document id, got %v", result["id"])
	}
	days, ok := result["days"].([]any)
	if !ok || len(days) != 3 {
		t.Errorf("Expected 3 days in document, got %v", result["days"])
	}
}

func TestSummarizeBudgetWithOverrides(t *testing.T) {
	store := newTestStore(t)
	startSession(t, store, "trip-1")

	call(t, NewAddActivityTool(store), map[string]any{
		"session_id": "trip-1", "date": "2025-06-01", "period": "afternoon",
		"activity": map[string]any{
			"title": "Walking tour",
			"price": map[string]any{"amount": float64(30), "currency": "USD"},
		},
	})
	call(t, NewSetAccommodationTool(store), map[string]any{
		"session_id": "trip-1", "date": "2025-06-01", "hotel_name": "Hotel A",
		"price_per_night": map[string]any{"amount": float64(100), "currency": "USD"},
	})
	call(t, NewSetAccommodationTool(store), map[string]any{
		"session_id": "trip-1", "date": "2025-06-02", "hotel_name": "Hotel A",
		"price_per_night": map[string]any{"amount": float64(100), "currency": "USD"},
	})
	call(t, NewSetAccommodationTool(store), map[string]any{
		"session_id": "trip-1", "date": "2025-06-03", "hotel_name": "Hotel A",
		"price_per_night": map[string]any{"amount": float64(100), "currency": "USD"},
	})

	result := call(t, NewSummarizeBudgetTool(store), map[string]any{
		"session_id": "trip-1",
		"overrides":  map[string]any{"flights_total": float64(500)},
	})

	totals, ok := result["totals"].(map[string]any)
	if !ok {
		t.Fatalf("Expected totals object, got %v", result["totals"])
	}
	// Last day counts as checkout, so only two hotel nights.
	if totals["accommodation_total"] != float64(200) {
		t.Errorf("Expected accommodation_total 200, got %v", totals["accommodation_total"])
	}
	if totals["activities_total"] != float64(30) {
		t.Errorf("Expected activities_total 30, got %v", totals["activities_total"])
	}
	if totals["grand_total"] != float64(730) {
		t.Errorf("Expected grand_total 730, got %v", totals["grand_total"])
	}
	if totals["per_person"] != float64(365) {
		t.Errorf("Expected per_person 365, got %v", totals["per_person"])
	}
}

func TestFinalizeItineraryMintsConfirmation(t *testing.T) {
	store := newTestStore(t)
	startSession(t, store, "trip-1")

	result := call(t, NewFinalizeItineraryTool(store), map[string]any{"session_id": "trip-1"})
	if result["status"] != "finalized" {
		t.Errorf("Expected finalized status, got %v", result["status"])
	}
	confirmation, _ := result["confirmation"].(string)
	if !strings.HasPrefix(confirmation, "trip-1-") {
		t.Errorf("Expected confirmation prefixed with session id, got %q", confirmation)
	}
}

func TestToolsRejectUnknownSession(t *testing.T) {
	store := newTestStore(t)

	tools := []engine.Tool{
		NewGetItineraryTool(store),
		NewSummarizeBudgetTool(store),
		NewFinalizeItineraryTool(store),
		NewRemoveActivitiesTool(store),
	}
	for _, tool := range tools {
		_, err := tool.Fn(context.Background(), map[string]any{"session_id": "missing"})
		if !itinerary.IsNotFound(err) {
			t.Errorf("%s: expected not-found error, got %v", tool.Name, err)
		}
	}
}
