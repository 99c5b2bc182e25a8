package itinerary

import (
	"context"
	"testing"
)

func TestSummarizeBudgetChecksOutLastDay(t *testing.T) {
	store := newTestStore(t)
	createTestSession(t, store, "trip-budget")
	ctx := context.Background()

	for _, date := range []string{"2025-06-01", "2025-06-02", "2025-06-03"} {
		if _, err := store.SetAccommodation(ctx, "trip-budget", date, "Hotel Lumiere", &Price{Amount: 100, Currency: "USD"}); err != nil {
			t.Fatalf("SetAccommodation failed: %v", err)
		}
	}

	totals, err := store.SummarizeBudget(ctx, "trip-budget", BudgetOverrides{})
	if err != nil {
		t.Fatalf("SummarizeBudget failed: %v", err)
	}
	// Three days, two nights: the checkout day contributes nothing.
	if totals.AccommodationTotal != 200 {
		t.Errorf("Expected accommodation_total 200, got %v", totals.AccommodationTotal)
	}
}

func TestSummarizeBudgetSumsAllPeriods(t *testing.T) {
	store := newTestStore(t)
	createTestSession(t, store, "trip-budget-acts")
	ctx := context.Background()

	adds := []struct {
		date   string
		period Period
		amount float64
	}{
		{"2025-06-01", PeriodMorning, 20},
		{"2025-06-01", PeriodEvening, 35},
		{"2025-06-02", PeriodAfternoon, 15},
	}
	for _, a := range adds {
		item := ActivityItem{Title: "Activity", Price: &Price{Amount: a.amount, Currency: "USD"}}
		if _, err := store.AddActivity(ctx, "trip-budget-acts", a.date, a.period, item); err != nil {
			t.Fatalf("AddActivity failed: %v", err)
		}
	}
	// Unpriced activities contribute nothing
	if _, err := store.AddActivity(ctx, "trip-budget-acts", "2025-06-03", PeriodMorning, ActivityItem{Title: "Free walk"}); err != nil {
		t.Fatalf("AddActivity failed: %v", err)
	}

	totals, err := store.SummarizeBudget(ctx, "trip-budget-acts", BudgetOverrides{})
	if err != nil {
		t.Fatalf("SummarizeBudget failed: %v", err)
	}
	if totals.ActivitiesTotal != 70 {
		t.Errorf("Expected activities_total 70, got %v", totals.ActivitiesTotal)
	}
	if totals.GrandTotal != 70 {
		t.Errorf("Expected grand_total 70, got %v", totals.GrandTotal)
	}
	if totals.PerPerson != 35 {
		t.Errorf("Expected per_person 35 for 2 travelers, got %v", totals.PerPerson)
	}
}

func TestSummarizeBudgetPerPersonFallback(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Create(ctx, CreateParams{
		ID:           "trip-solo",
		Destinations: []string{"Lisbon"},
		StartDate:    "2025-06-01",
		EndDate:      "2025-06-02",
		NumTravelers: 0,
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	flights := 400.0
	totals, err := store.SummarizeBudget(ctx, "trip-solo", BudgetOverrides{FlightsTotal: &flights})
	if err != nil {
		t.Fatalf("SummarizeBudget failed: %v", err)
	}
	if totals.PerPerson != totals.GrandTotal {
		t.Errorf("Expected per_person to fall back to grand_total with zero travelers, got %v vs %v", totals.PerPerson, totals.GrandTotal)
	}
}

func TestSummarizeBudgetFlightsBaseline(t *testing.T) {
	store := newTestStore(t)
	createTestSession(t, store, "trip-flights")
	ctx := context.Background()

	flights := 500.0
	totals, err := store.SummarizeBudget(ctx, "trip-flights", BudgetOverrides{FlightsTotal: &flights})
	if err != nil {
		t.Fatalf("SummarizeBudget failed: %v", err)
	}
	if totals.FlightsTotal != 500 {
		t.Errorf("Expected flights_total 500, got %v", totals.FlightsTotal)
	}

	// A later summarize without an override keeps the stored baseline.
	totals, err = store.SummarizeBudget(ctx, "trip-flights", BudgetOverrides{})
	if err != nil {
		t.Fatalf("SummarizeBudget failed: %v", err)
	}
	if totals.FlightsTotal != 500 {
		t.Errorf("Expected baseline flights_total 500 to persist, got %v", totals.FlightsTotal)
	}

	// And an explicit override replaces it.
	updated := 620.0
	totals, err = store.SummarizeBudget(ctx, "trip-flights", BudgetOverrides{FlightsTotal: &updated})
	if err != nil {
		t.Fatalf("SummarizeBudget failed: %v", err)
	}
	if totals.FlightsTotal != 620 {
		t.Errorf("Expected flights_total 620 after override, got %v", totals.FlightsTotal)
	}
}

func TestSummarizeBudgetOverridesBeatComputed(t *testing.T) {
	store := newTestStore(t)
	createTestSession(t, store, "trip-override")
	ctx := context.Background()

	if _, err := store.SetAccommodation(ctx, "trip-override", "2025-06-01", "Hotel Lumiere", &Price{Amount: 100, Currency: "USD"}); err != nil {
		t.Fatalf("SetAccommodation failed: %v", err)
	}

	accommodation := 999.0
	totals, err := store.SummarizeBudget(ctx, "trip-override", BudgetOverrides{AccommodationTotal: &accommodation})
	if err != nil {
		t.Fatalf("SummarizeBudget failed: %v", err)
	}
	if totals.AccommodationTotal != 999 {
		t.Errorf("Expected override 999 to beat computed total, got %v", totals.AccommodationTotal)
	}
	if totals.GrandTotal != 999 {
		t.Errorf("Expected grand_total derived from overridden parts, got %v", totals.GrandTotal)
	}
}

func TestBudgetEndToEnd(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Create(ctx, CreateParams{
		ID:           "trip-e2e",
		Origin:       "NYC",
		Destinations: []string{"Paris"},
		StartDate:    "2025-06-01",
		EndDate:      "2025-06-04",
		NumTravelers: 2,
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	item := ActivityItem{Title: "Louvre Museum", Time: "09:00", Price: &Price{Amount: 20, Currency: "USD"}}
	if _, err := store.AddActivity(ctx, "trip-e2e", "2025-06-02", PeriodMorning, item); err != nil {
		t.Fatalf("AddActivity failed: %v", err)
	}
	for _, date := range []string{"2025-06-01", "2025-06-02", "2025-06-03", "2025-06-04"} {
		if _, err := store.SetAccommodation(ctx, "trip-e2e", date, "Hotel Lumiere", &Price{Amount: 100, Currency: "USD"}); err != nil {
			t.Fatalf("SetAccommodation failed: %v", err)
		}
	}

	totals, err := store.SummarizeBudget(ctx, "trip-e2e", BudgetOverrides{})
	if err != nil {
		t.Fatalf("SummarizeBudget failed: %v", err)
	}
	if totals.AccommodationTotal != 300 {
		t.Errorf("Expected accommodation_total 300, got %v", totals.AccommodationTotal)
	}
	if totals.ActivitiesTotal != 20 {
		t.Errorf("Expected activities_total 20, got %v", totals.ActivitiesTotal)
	}
	if totals.GrandTotal != 320 {
		t.Errorf("Expected grand_total 320, got %v", totals.GrandTotal)
	}
	if totals.PerPerson != 160 {
		t.Errorf("Expected per_person 160, got %v", totals.PerPerson)
	}

	session, err := store.Get(ctx, "trip-e2e")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if session.Totals == nil || session.Totals.GrandTotal != 320 {
		t.Errorf("Expected totals persisted on the document")
	}
}
