// README: Reduces the planning service's loose reply shapes to FinalData.
package response

// Field names the transport layer uses to flag an unparseable body. The raw
// text rides along so the user still sees something useful.
const (
	ParseErrorField = "_parseError"
	RawTextField    = "_raw"
)

// Normalize reduces a raw planning reply to FinalData. The reply may be a bare
// object, an array wrapping an object with a nested response.body, a plain
// string, or an object carrying a parse-error marker. Total over any input:
// absent fields are treated as absent, never as errors.
//
// The second return reports whether a parse-error marker was seen, so callers
// can surface a notice before showing the degraded text.
func Normalize(raw any) (FinalData, bool) {
	candidate := raw

	if seq, ok := raw.([]any); ok {
		candidate = seq
		if body, ok := nestedBody(seq); ok {
			candidate = body
		}
	}

	if obj, ok := candidate.(map[string]any); ok {
		if _, marked := obj[ParseErrorField]; marked {
			if text, ok := obj[RawTextField].(string); ok && text != "" {
				return Text(text), true
			}
			return Structured(obj), true
		}
	}

	return Classify(candidate), false
}

// ServiceError reports a service-level error reply: an object whose "error"
// field holds a non-empty message. The same transport unwrapping as Normalize
// applies, so an array-wrapped error body is still recognized. Error replies
// never become the current trip.
func ServiceError(raw any) (string, bool) {
	candidate := raw
	if seq, ok := raw.([]any); ok {
		if body, ok := nestedBody(seq); ok {
			candidate = body
		}
	}
	obj, ok := candidate.(map[string]any)
	if !ok {
		return "", false
	}
	msg, ok := obj["error"].(string)
	if !ok || msg == "" {
		return "", false
	}
	return msg, true
}

// nestedBody digs out seq[0].response.body. Presence of the key is what
// matters; a null body still counts as present.
func nestedBody(seq []any) (any, bool) {
	if len(seq) == 0 {
		return nil, false
	}
	first, ok := seq[0].(map[string]any)
	if !ok {
		return nil, false
	}
	resp, ok := first["response"].(map[string]any)
	if !ok {
		return nil, false
	}
	body, ok := resp["body"]
	return body, ok
}
