package engine

// ToolSet specifies which categories of tools to include in the registry.
type ToolSet struct {
	Trip       bool // start_itinerary, add_activity, set_accommodation, ...
	Flights    bool // search_flights
	Hotels     bool // search_hotels
	Activities bool // search_activities, get_weather
	Meta       bool // think (reasoning and thought process)
}

// DefaultToolSet enables every category.
func DefaultToolSet() ToolSet {
	return ToolSet{Trip: true, Flights: true, Hotels: true, Activities: true, Meta: true}
}
