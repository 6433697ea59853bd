// README: Assistant orchestrates a planning round: planner call, response
// normalization, rendering, location extraction, map state, history append.
package service

import (
	"context"
	"errors"
	"log"
	"time"

	"wayfarer/internal/modules/geo"
	"wayfarer/internal/modules/mapview"
	"wayfarer/internal/modules/render"
	"wayfarer/internal/modules/response"
	"wayfarer/internal/modules/share"
	"wayfarer/internal/modules/trip"
	"wayfarer/internal/planner"
	"wayfarer/internal/session"
	"wayfarer/internal/types"
)

// PlanError is a planning-service error reply. The round never settled: the
// session pair and trip history stay untouched, and the message is meant for
// the user.
type PlanError struct {
	Message string
}

func (e *PlanError) Error() string {
	return "planner: " + e.Message
}

// RoundView is everything a client needs to display a settled round.
type RoundView struct {
	TripID      types.ID           `json:"trip_id,omitempty"`
	FinalData   response.FinalData `json:"final_data"`
	ParseNotice bool               `json:"parse_notice"`
	HTML        string             `json:"html"`
	Points      []geo.GeoPoint     `json:"points"`
	Map         *mapview.State     `json:"map,omitempty"`
}

type Assistant struct {
	planner   planner.Planner
	extractor *geo.Extractor
	history   *trip.Service
	session   *session.Session
}

func NewAssistant(p planner.Planner, extractor *geo.Extractor, history *trip.Service, sess *session.Session) *Assistant {
	return &Assistant{planner: p, extractor: extractor, history: history, session: sess}
}

// Plan runs a full round for a fresh prompt and appends the trip record.
func (a *Assistant) Plan(ctx context.Context, payload planner.Payload) (*RoundView, error) {
	if err := a.session.Begin(); err != nil {
		return nil, err
	}
	defer a.session.End()

	view, err := a.runRound(ctx, payload)
	if err != nil {
		return nil, err
	}

	rec := trip.TripRecord{
		ID:        trip.NewID(time.Now()),
		Mode:      trip.Mode(payload.Mode),
		Prompt:    payload.UserPrompt,
		Payload:   payload,
		Response:  view.FinalData,
		CreatedAt: time.Now().UTC(),
	}
	if err := a.history.Append(ctx, rec); err != nil {
		// History is best-effort; the round itself already settled.
		log.Printf("trip history append failed: %v", err)
	} else {
		view.TripID = rec.ID
		a.session.SetTripID(rec.ID)
	}

	return view, nil
}

// ReEvaluate reruns the current trip with a refinement appended to the prompt.
// No new history record: the round identity stays with the first response.
func (a *Assistant) ReEvaluate(ctx context.Context, refinement string) (*RoundView, error) {
	if err := a.session.Begin(); err != nil {
		return nil, err
	}
	defer a.session.End()

	payload, err := a.session.Refine(refinement)
	if err != nil {
		return nil, err
	}

	view, err := a.runRound(ctx, payload)
	if err != nil {
		return nil, err
	}
	view.TripID = a.session.TripID()
	return view, nil
}

// runRound performs the planner call and derives the view. The session's
// current pair is updated only after the reply settles.
func (a *Assistant) runRound(ctx context.Context, payload planner.Payload) (*RoundView, error) {
	raw, err := a.planner.Plan(ctx, payload)
	if err != nil {
		return nil, err
	}

	// Error replies abort before the pair is installed, so the previous
	// round stays current and nothing reaches history.
	if msg, ok := response.ServiceError(raw); ok {
		return nil, &PlanError{Message: msg}
	}

	final, notice := response.Normalize(raw)
	a.session.SetCurrent(payload, final)

	view := a.deriveView(final, notice)

	// Async geocoding only when nothing was embedded, per shape.
	if len(view.Points) == 0 {
		bias := payload.UserLocation
		pts, err := a.extractor.ExtractAsync(ctx, final, &bias)
		if err != nil {
			return nil, err
		}
		view.Points = pts
	}

	user := payload.UserLocation
	view.Map = mapview.Build(view.Points, &user)
	return view, nil
}

// Replay reconstructs the view for a stored record. Rendering and synchronous
// extraction are pure functions of the stored FinalData, so playback matches
// the original round; async geocoding is deliberately not replayed.
func (a *Assistant) Replay(ctx context.Context, id types.ID) (*RoundView, *trip.TripRecord, error) {
	rec, err := a.history.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	a.session.SetCurrent(rec.Payload, rec.Response)
	a.session.SetTripID(rec.ID)

	view := a.deriveView(rec.Response, false)
	view.TripID = rec.ID
	if len(view.Points) > 0 {
		user := rec.Payload.UserLocation
		view.Map = mapview.Build(view.Points, &user)
	}
	return view, rec, nil
}

// ShareToken encodes the current pair for link-based sharing.
func (a *Assistant) ShareToken() (string, error) {
	payload, resp, ok := a.session.Current()
	if !ok {
		return "", session.ErrNoCurrentTrip
	}
	return share.Encode(payload, resp)
}

// Restore rebuilds state from a share token. Decode failures leave the
// default empty state: the caller logs and carries on.
func (a *Assistant) Restore(ctx context.Context, token string) (*RoundView, error) {
	env, err := share.Decode(token)
	if err != nil {
		return nil, err
	}

	a.session.SetCurrent(env.Payload, env.Response)
	a.session.SetTripID("")

	view := a.deriveView(env.Response, false)

	// Shared plain-text trips may still carry geocodable place names.
	if len(view.Points) == 0 && env.Response.IsText() {
		bias := env.Payload.UserLocation
		pts, err := a.extractor.ExtractAsync(ctx, env.Response, &bias)
		if err != nil {
			return nil, err
		}
		view.Points = pts
	}

	if len(view.Points) > 0 {
		user := env.Payload.UserLocation
		view.Map = mapview.Build(view.Points, &user)
	}
	return view, nil
}

// deriveView renders markup (with the plain-text and pretty-print fallbacks)
// and runs synchronous extraction.
func (a *Assistant) deriveView(final response.FinalData, notice bool) *RoundView {
	html, ok := render.Render(final)
	if !ok {
		if final.IsText() {
			html = render.RenderText(final.Text)
		} else {
			html = render.RenderJSON(final.Raw)
		}
	}

	return &RoundView{
		FinalData:   final,
		ParseNotice: notice,
		HTML:        html,
		Points:      a.extractor.ExtractSync(final),
	}
}

// IsBusy reports whether another round is currently in flight.
func IsBusy(err error) bool {
	return errors.Is(err, session.ErrRoundInFlight)
}
