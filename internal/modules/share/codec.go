// README: Reversible share-token codec for a payload/response pair.
package share

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"wayfarer/internal/modules/response"
	"wayfarer/internal/planner"
)

// ErrDecode wraps every decode failure so callers can log and skip restoration
// without inspecting causes.
var ErrDecode = errors.New("share: invalid token")

// Envelope is what a share token carries.
type Envelope struct {
	Payload  planner.Payload    `json:"payload"`
	Response response.FinalData `json:"response"`
}

// Encode packs the pair into a URL-safe token suitable for a query parameter.
func Encode(payload planner.Payload, resp response.FinalData) (string, error) {
	b, err := json.Marshal(Envelope{Payload: payload, Response: resp})
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Decode unpacks a token. Legacy tokens that hold a bare payload (no "payload"
// sub-field) are accepted by treating the whole object as the payload.
func Decode(token string) (Envelope, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		// Tolerate padded tokens from older encoders.
		raw, err = base64.URLEncoding.DecodeString(token)
		if err != nil {
			return Envelope{}, fmt.Errorf("%w: %v", ErrDecode, err)
		}
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	if _, hasPayload := probe["payload"]; !hasPayload {
		var payload planner.Payload
		if err := json.Unmarshal(raw, &payload); err != nil {
			return Envelope{}, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		return Envelope{Payload: payload}, nil
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return env, nil
}
