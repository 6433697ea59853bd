package planner

import "context"

// Planner produces a raw planning reply for a payload. The reply is untyped:
// depending on the backend it may be a JSON object, an array wrapping an
// object, or plain text. Implementations return an error only for transport
// failures; unparseable bodies come back as a value carrying the parse-error
// marker so the round can degrade instead of aborting.
type Planner interface {
	Plan(ctx context.Context, payload Payload) (any, error)
}
