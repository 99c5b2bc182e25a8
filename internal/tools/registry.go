// Package tools assembles the agent's tool registry from the itinerary
// store and the external search clients.
package tools

import (
	"github.com/ChamsBouzaiene/voyager/internal/engine"
	"github.com/ChamsBouzaiene/voyager/internal/itinerary"
	"github.com/ChamsBouzaiene/voyager/internal/tools/activities"
	"github.com/ChamsBouzaiene/voyager/internal/tools/flights"
	"github.com/ChamsBouzaiene/voyager/internal/tools/hotels"
	"github.com/ChamsBouzaiene/voyager/internal/tools/reasoning"
	"github.com/ChamsBouzaiene/voyager/internal/tools/trip"
)

// Clients bundles the external search clients. A nil client disables
// its category even when the ToolSet enables it, so the agent can run
// with whatever API keys are configured.
type Clients struct {
	Flights    *flights.Client
	Hotels     *hotels.Client
	Activities *activities.Client
}

// NewToolRegistry creates a new engine.ToolRegistry based on the
// provided ToolSet.
func NewToolRegistry(store *itinerary.Store, clients Clients, set engine.ToolSet) (engine.ToolRegistry, error) {
	reg := make(engine.ToolRegistry)

	if set.Trip {
		reg["start_itinerary"] = trip.NewStartItineraryTool(store)
		reg["update_preferences"] = trip.NewUpdatePreferencesTool(store)
		reg["add_activity"] = trip.NewAddActivityTool(store)
		reg["set_accommodation"] = trip.NewSetAccommodationTool(store)
		reg["get_itinerary"] = trip.NewGetItineraryTool(store)
		reg["remove_activities"] = trip.NewRemoveActivitiesTool(store)
		reg["summarize_budget"] = trip.NewSummarizeBudgetTool(store)
		reg["finalize_itinerary"] = trip.NewFinalizeItineraryTool(store)
	}

	if set.Flights && clients.Flights != nil {
		reg["search_flights"] = flights.NewSearchFlightsTool(clients.Flights)
		reg["get_offer_details"] = flights.NewOfferDetailsTool(clients.Flights)
	}

	if set.Hotels && clients.Hotels != nil {
		reg["search_hotels"] = hotels.NewSearchHotelsTool(clients.Hotels)
	}

	if set.Activities && clients.Activities != nil {
		reg["search_activities"] = activities.NewSearchActivitiesTool(clients.Activities)
		reg["get_weather"] = activities.NewWeatherTool(clients.Activities)
	}

	if set.Meta {
		reg["think"] = reasoning.NewThinkTool()
	}

	return reg, nil
}
