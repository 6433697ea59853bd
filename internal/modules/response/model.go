// README: FinalData sum type; the canonical reduction of a planning-service reply.
package response

import "encoding/json"

type Kind int

const (
	// KindOpaque holds shapes we cannot interpret (arrays, numbers, null).
	// Renderers fall back to pretty-printing, extractors yield nothing.
	KindOpaque Kind = iota
	KindStructured
	KindText
)

// FinalData is the canonical value every downstream component consumes.
// Once a raw reply is reduced, nobody re-inspects the transport shape.
type FinalData struct {
	Kind   Kind
	Object map[string]any
	Text   string
	Raw    any
}

func Structured(obj map[string]any) FinalData {
	return FinalData{Kind: KindStructured, Object: obj, Raw: obj}
}

func Text(s string) FinalData {
	return FinalData{Kind: KindText, Text: s, Raw: s}
}

func Opaque(v any) FinalData {
	return FinalData{Kind: KindOpaque, Raw: v}
}

func (d FinalData) IsStructured() bool { return d.Kind == KindStructured }
func (d FinalData) IsText() bool       { return d.Kind == KindText }

// Seq returns the named field as a slice when the data is structured and the
// field holds one.
func (d FinalData) Seq(field string) ([]any, bool) {
	if d.Kind != KindStructured {
		return nil, false
	}
	seq, ok := d.Object[field].([]any)
	return seq, ok
}

// MarshalJSON writes the underlying value so stored records and share tokens
// carry plain JSON, not the union wrapper.
func (d FinalData) MarshalJSON() ([]byte, error) {
	switch d.Kind {
	case KindStructured:
		return json.Marshal(d.Object)
	case KindText:
		return json.Marshal(d.Text)
	default:
		return json.Marshal(d.Raw)
	}
}

// UnmarshalJSON classifies plain JSON back into the union, so a record loaded
// from history behaves exactly like the round that produced it.
func (d *FinalData) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*d = Classify(v)
	return nil
}

// Classify wraps an already-decoded JSON value in the union.
func Classify(v any) FinalData {
	switch t := v.(type) {
	case map[string]any:
		return Structured(t)
	case string:
		return Text(t)
	default:
		return Opaque(v)
	}
}
