// README: Trip record aggregate and identifier generation.
package trip

import (
	"math/rand"
	"strconv"
	"time"

	"wayfarer/internal/modules/response"
	"wayfarer/internal/planner"
	"wayfarer/internal/types"
)

type Mode string

const (
	ModeDayOut      Mode = "day-out"
	ModeTripPlanner Mode = "trip-planner"
)

// TripRecord is one completed request/response round. Identity is the ID;
// like/dislike rewrites the record in place.
type TripRecord struct {
	ID        types.ID           `json:"id"`
	Mode      Mode               `json:"mode"`
	Prompt    string             `json:"prompt"`
	Payload   planner.Payload    `json:"payload"`
	Response  response.FinalData `json:"response"`
	CreatedAt time.Time          `json:"createdAt"`
	Liked     bool               `json:"liked"`
}

// NewID derives a unique identifier from the current time plus a short random
// base36 suffix.
func NewID(now time.Time) types.ID {
	suffix := strconv.FormatInt(rand.Int63n(36*36*36*36*36*36), 36)
	for len(suffix) < 6 {
		suffix = "0" + suffix
	}
	return types.ID(strconv.FormatInt(now.UnixMilli(), 10) + "-" + suffix)
}
