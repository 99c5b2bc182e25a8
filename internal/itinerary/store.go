package itinerary

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// Store owns the canonical itinerary documents. Every mutation is a
// full load / modify / persist of one session's document, guarded by a
// per-session mutex so interleaved callers cannot lose updates. The
// in-process cache in front of the repository only advances after a
// successful durable write, preserving last-known-good state when
// storage fails.
type Store struct {
	repo  Repository
	cache *gocache.Cache
	locks sync.Map // session id -> *sync.Mutex
}

// NewStore wraps a repository with the session cache.
func NewStore(repo Repository) *Store {
	return &Store{
		repo:  repo,
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

// CreateParams are the inputs to Create.
type CreateParams struct {
	ID           string
	Origin       string
	Destinations []string
	StartDate    string
	EndDate      string
	NumTravelers int
	Currency     string
}

// RemoveFilter selects activities for bulk removal. A zero Date
// targets every day; a zero or "all" Period targets every bucket; a
// zero TitleContains matches every title.
type RemoveFilter struct {
	Date          string
	Period        Period
	TitleContains string
}

// RemoveResult reports the effect of a bulk removal.
type RemoveResult struct {
	Removed   int
	Remaining int
}

// BudgetOverrides are caller-supplied totals that take precedence over
// computed values for one summarize call and persist as the new
// baseline.
type BudgetOverrides struct {
	FlightsTotal       *float64
	AccommodationTotal *float64
	ActivitiesTotal    *float64
}

// Confirmation is the terminal acknowledgment minted by Finalize.
type Confirmation struct {
	Status         string    `json:"status"`
	ConfirmationID string    `json:"confirmation"`
	FinalizedAt    time.Time `json:"finalized_at"`
}

func (s *Store) lock(id string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// load resolves the session cache-first, falling back to durable
// storage and populating the cache on fallback. Callers must hold the
// session lock.
func (s *Store) load(ctx context.Context, id string) (*Session, error) {
	if cached, ok := s.cache.Get(id); ok {
		return cached.(*Session), nil
	}
	session, err := s.repo.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(id, session, gocache.NoExpiration)
	return session, nil
}

// persist stamps the mutation time and writes the complete document to
// durable storage before updating the cache. Callers must hold the
// session lock.
func (s *Store) persist(ctx context.Context, session *Session) error {
	session.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, session); err != nil {
		// Evict so the next load re-reads the last durable state
		// instead of serving the unpersisted mutation.
		s.cache.Delete(session.ID)
		return err
	}
	s.cache.Set(session.ID, session, gocache.NoExpiration)
	return nil
}

// Create builds the full day sequence for the range and persists a
// fresh document. Re-invoking with an existing id overwrites the
// previous session entirely; callers must treat it as a reset.
// Returns the number of day entries created.
func (s *Store) Create(ctx context.Context, params CreateParams) (int, error) {
	if params.ID == "" {
		return 0, &ValidationError{Field: "session_id", Reason: "required"}
	}
	if len(params.Destinations) == 0 {
		return 0, &ValidationError{Field: "destinations", Reason: "at least one destination is required"}
	}

	dates, err := ExpandDateRange(params.StartDate, params.EndDate)
	if err != nil {
		return 0, err
	}

	currency := params.Currency
	if currency == "" {
		currency = "USD"
	}

	session := &Session{
		ID:           params.ID,
		Origin:       params.Origin,
		Destinations: params.Destinations,
		StartDate:    params.StartDate,
		EndDate:      params.EndDate,
		NumTravelers: params.NumTravelers,
		Currency:     currency,
		Days:         newDays(dates),
	}

	mu := s.lock(params.ID)
	mu.Lock()
	defer mu.Unlock()

	if err := s.persist(ctx, session); err != nil {
		return 0, err
	}
	return len(session.Days), nil
}

// UpdatePreferences shallow-merges an already-validated patch into the
// session's preferences. Later keys overwrite same-named earlier keys;
// absent keys leave previous values untouched.
func (s *Store) UpdatePreferences(ctx context.Context, id string, patch Preferences) (Preferences, error) {
	mu := s.lock(id)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.load(ctx, id)
	if err != nil {
		return Preferences{}, err
	}

	session.Preferences.Merge(patch)
	if err := s.persist(ctx, session); err != nil {
		return Preferences{}, err
	}
	return session.Preferences, nil
}

// AddActivity appends the activity to the named period of the exact
// date. No ordering, no collision check; duplicates are permitted.
// Returns the new count for that period.
func (s *Store) AddActivity(ctx context.Context, id, date string, period Period, activity ActivityItem) (int, error) {
	if !period.Valid() {
		return 0, &ValidationError{Field: "period", Reason: fmt.Sprintf("%q is not one of morning, afternoon, evening", period)}
	}

	mu := s.lock(id)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.load(ctx, id)
	if err != nil {
		return 0, err
	}
	day := session.Day(date)
	if day == nil {
		return 0, &DateNotFoundError{Date: date}
	}

	day.SetBucket(period, append(day.Bucket(period), activity))
	if err := s.persist(ctx, session); err != nil {
		return 0, err
	}
	return len(day.Bucket(period)), nil
}

// SetAccommodation replaces the day's accommodation record entirely.
// No history is retained.
func (s *Store) SetAccommodation(ctx context.Context, id, date, hotelName string, pricePerNight *Price) (*Accommodation, error) {
	if hotelName == "" {
		return nil, &ValidationError{Field: "hotel_name", Reason: "required"}
	}

	mu := s.lock(id)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	day := session.Day(date)
	if day == nil {
		return nil, &DateNotFoundError{Date: date}
	}

	day.Accommodation = &Accommodation{HotelName: hotelName, PricePerNight: pricePerNight}
	if err := s.persist(ctx, session); err != nil {
		return nil, err
	}
	return day.Accommodation, nil
}

// Get returns a deep copy of the full current document so callers
// cannot mutate cached state behind the store's back.
func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	mu := s.lock(id)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return cloneSession(session), nil
}

// RemoveActivities bulk-deletes every activity in the selected
// day×period set whose title contains the filter substring
// (case-insensitive; empty filter matches everything). Re-running the
// identical call is a no-op: removed drops to zero and remaining is
// unchanged.
func (s *Store) RemoveActivities(ctx context.Context, id string, filter RemoveFilter) (RemoveResult, error) {
	periods := Periods
	if filter.Period != "" && filter.Period != PeriodAll {
		if !filter.Period.Valid() {
			return RemoveResult{}, &ValidationError{Field: "period", Reason: fmt.Sprintf("%q is not one of morning, afternoon, evening, all", filter.Period)}
		}
		periods = []Period{filter.Period}
	}

	mu := s.lock(id)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.load(ctx, id)
	if err != nil {
		return RemoveResult{}, err
	}

	var targets []*DayPlan
	if filter.Date == "" {
		for i := range session.Days {
			targets = append(targets, &session.Days[i])
		}
	} else {
		day := session.Day(filter.Date)
		if day == nil {
			return RemoveResult{}, &DateNotFoundError{Date: filter.Date}
		}
		targets = []*DayPlan{day}
	}

	needle := strings.ToLower(filter.TitleContains)
	var result RemoveResult
	for _, day := range targets {
		for _, p := range periods {
			bucket := day.Bucket(p)
			kept := bucket[:0]
			for _, act := range bucket {
				if needle != "" && !strings.Contains(strings.ToLower(act.Title), needle) {
					kept = append(kept, act)
				}
			}
			result.Removed += len(bucket) - len(kept)
			result.Remaining += len(kept)
			day.SetBucket(p, kept)
		}
	}

	if err := s.persist(ctx, session); err != nil {
		return RemoveResult{}, err
	}
	return result, nil
}

// SummarizeBudget recomputes accommodation and activity totals from
// the day data, applies any overrides, and persists the result as the
// session's totals. Grand total and per-person are always derived
// fresh, never overridden.
func (s *Store) SummarizeBudget(ctx context.Context, id string, overrides BudgetOverrides) (BudgetSummary, error) {
	mu := s.lock(id)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.load(ctx, id)
	if err != nil {
		return BudgetSummary{}, err
	}

	totals := computeBudget(session, overrides)
	session.Totals = &totals
	if err := s.persist(ctx, session); err != nil {
		return BudgetSummary{}, err
	}
	return totals, nil
}

// Finalize mints a unique confirmation token for the session and
// stamps the document. It is a terminal acknowledgment, not a
// lock: the store still accepts mutations afterwards, and a second
// call mints a fresh token without changing itinerary content.
func (s *Store) Finalize(ctx context.Context, id string) (Confirmation, error) {
	mu := s.lock(id)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.load(ctx, id)
	if err != nil {
		return Confirmation{}, err
	}

	now := time.Now().UTC()
	session.FinalizedAt = &now
	if err := s.persist(ctx, session); err != nil {
		return Confirmation{}, err
	}

	return Confirmation{
		Status:         "finalized",
		ConfirmationID: fmt.Sprintf("%s-%s", id, uuid.NewString()),
		FinalizedAt:    now,
	}, nil
}

// Close releases the underlying repository.
func (s *Store) Close() error {
	return s.repo.Close()
}

// cloneSession deep-copies a session document.
func cloneSession(s *Session) *Session {
	out := *s
	out.Destinations = append([]string(nil), s.Destinations...)
	out.Days = make([]DayPlan, len(s.Days))
	for i := range s.Days {
		out.Days[i] = cloneDay(&s.Days[i])
	}
	if s.Totals != nil {
		totals := *s.Totals
		out.Totals = &totals
	}
	if s.FinalizedAt != nil {
		finalized := *s.FinalizedAt
		out.FinalizedAt = &finalized
	}
	return &out
}

func cloneDay(d *DayPlan) DayPlan {
	out := *d
	out.Morning = cloneActivities(d.Morning)
	out.Afternoon = cloneActivities(d.Afternoon)
	out.Evening = cloneActivities(d.Evening)
	if d.Accommodation != nil {
		acc := *d.Accommodation
		if d.Accommodation.PricePerNight != nil {
			price := *d.Accommodation.PricePerNight
			acc.PricePerNight = &price
		}
		out.Accommodation = &acc
	}
	return out
}

func cloneActivities(items []ActivityItem) []ActivityItem {
	out := make([]ActivityItem, len(items))
	for i, item := range items {
		out[i] = item
		if item.Price != nil {
			price := *item.Price
			out[i].Price = &price
		}
	}
	return out
}
