package itinerary

// computeBudget derives the budget summary from current day data and
// caller overrides. Recomputing from source of truth on every call
// avoids drift between incremental counters and actual content; the
// O(days × activities) walk is cheap at itinerary scale.
func computeBudget(session *Session, overrides BudgetOverrides) BudgetSummary {
	var activitiesTotal float64
	for i := range session.Days {
		day := &session.Days[i]
		for _, p := range Periods {
			for _, act := range day.Bucket(p) {
				if act.Price != nil {
					activitiesTotal += act.Price.Amount
				}
			}
		}
	}

	// Checkout-day rule: the last day of the trip is excluded because
	// no additional night is stayed.
	var accommodationTotal float64
	for i := 0; i < len(session.Days)-1; i++ {
		acc := session.Days[i].Accommodation
		if acc != nil && acc.PricePerNight != nil {
			accommodationTotal += acc.PricePerNight.Amount
		}
	}

	// Flights are never derived locally: the override wins, else the
	// previously stored baseline, else zero.
	var flightsTotal float64
	if session.Totals != nil {
		flightsTotal = session.Totals.FlightsTotal
	}
	if overrides.FlightsTotal != nil {
		flightsTotal = *overrides.FlightsTotal
	}
	if overrides.AccommodationTotal != nil {
		accommodationTotal = *overrides.AccommodationTotal
	}
	if overrides.ActivitiesTotal != nil {
		activitiesTotal = *overrides.ActivitiesTotal
	}

	grandTotal := flightsTotal + accommodationTotal + activitiesTotal
	perPerson := grandTotal
	if session.NumTravelers > 0 {
		perPerson = grandTotal / float64(session.NumTravelers)
	}

	return BudgetSummary{
		FlightsTotal:       flightsTotal,
		AccommodationTotal: accommodationTotal,
		ActivitiesTotal:    activitiesTotal,
		GrandTotal:         grandTotal,
		PerPerson:          perPerson,
	}
}
