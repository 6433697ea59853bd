// README: Outbound planning request model and preference option pools.
package planner

import (
	"math/rand"

	"wayfarer/internal/types"
)

const (
	ModeDayOut      = "day-out"
	ModeTripPlanner = "trip-planner"
)

// Preferences mirrors the preference chips the client submits.
type Preferences struct {
	Mode          string   `json:"mode"`
	Days          []string `json:"days"`
	BudgetRanges  []string `json:"budget_ranges"`
	AreaTypes     []string `json:"area_types"`
	ActivityTypes []string `json:"activity_types"`
}

// Payload is the outbound request. Immutable once sent; refinement produces a
// replacement payload via Refine.
type Payload struct {
	Mode         string      `json:"mode"`
	UserPrompt   string      `json:"user_prompt"`
	UserLocation types.Point `json:"user_location"`
	Preferences  Preferences `json:"preferences"`
}

// Refine returns the next payload for a re-evaluation round, appending the
// refinement text to the original prompt.
func (p Payload) Refine(refinement string) Payload {
	next := p
	next.UserPrompt = p.UserPrompt + "\n\nUser update / refinement: " + refinement
	return next
}

// Option pools offered to clients; trip-planner mode shows them shuffled.
var (
	AreaTypeOptions = []string{
		"Mountains", "Beaches", "Cities", "Countryside",
		"Historical", "Lakes", "Forests", "Deserts",
	}
	ActivityTypeOptions = []string{
		"Hiking", "Chilling", "Museums", "Nightlife",
		"Food tours", "Shopping", "Adventure sports",
		"Photography spots", "Local culture",
	}
)

// ShuffledOptions returns a shuffled copy of an option pool.
func ShuffledOptions(pool []string) []string {
	out := make([]string, len(pool))
	copy(out, pool)
	rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
