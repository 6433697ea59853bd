// README: Current-round state; replaces the ambient globals of earlier builds.
package session

import (
	"errors"
	"sync"

	"wayfarer/internal/modules/response"
	"wayfarer/internal/planner"
	"wayfarer/internal/types"
)

var (
	// ErrRoundInFlight guards against overlapping submit/re-evaluate rounds
	// corrupting the current pair: the action stays disabled until settled.
	ErrRoundInFlight = errors.New("session: a round is already in flight")
	ErrNoCurrentTrip = errors.New("session: no current trip to refine")
)

// Session holds the current payload/response pair and trip identity. All
// mutation happens under the lock since the HTTP layer is concurrent.
type Session struct {
	mu            sync.Mutex
	busy          bool
	lastPayload   *planner.Payload
	lastResponse  *response.FinalData
	currentTripID types.ID
}

func New() *Session {
	return &Session{}
}

// Begin claims the round slot. Callers must End when the round settles.
func (s *Session) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrRoundInFlight
	}
	s.busy = true
	return nil
}

func (s *Session) End() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

// SetCurrent records the settled pair for the round.
func (s *Session) SetCurrent(payload planner.Payload, resp response.FinalData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastPayload = &payload
	s.lastResponse = &resp
}

func (s *Session) SetTripID(id types.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentTripID = id
}

func (s *Session) TripID() types.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentTripID
}

// Current returns the last settled pair, or false before any round completed.
func (s *Session) Current() (planner.Payload, response.FinalData, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastPayload == nil {
		return planner.Payload{}, response.FinalData{}, false
	}
	var resp response.FinalData
	if s.lastResponse != nil {
		resp = *s.lastResponse
	}
	return *s.lastPayload, resp, true
}

// Refine derives the next payload for a re-evaluation round and installs it as
// the new "last" payload.
func (s *Session) Refine(refinement string) (planner.Payload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastPayload == nil {
		return planner.Payload{}, ErrNoCurrentTrip
	}
	next := s.lastPayload.Refine(refinement)
	s.lastPayload = &next
	return next, nil
}
