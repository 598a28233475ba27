package domain

import (
	"encoding/json"
	"strconv"
)

// Payload is a loosely-typed key/value document as returned by the external
// source system. All field access goes through the typed accessors below so
// the rest of the pipeline never touches raw type assertions; absent or
// malformed fields degrade to documented zero values.
type Payload map[string]any

// String returns the field as a string, or "" if absent.
// Numeric values are formatted, everything else is ignored.
func (p Payload) String(key string) string {
	switch v := p[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

// StringOr returns the field as a string, or def if absent or empty.
func (p Payload) StringOr(key, def string) string {
	if s := p.String(key); s != "" {
		return s
	}
	return def
}

// Float returns the field as a float64 and whether it was present and numeric.
// String-encoded decimals (the source system's usual encoding) are parsed.
func (p Payload) Float(key string) (float64, bool) {
	switch v := p[key].(type) {
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Int returns the field as an int and whether it was present and numeric.
func (p Payload) Int(key string) (int, bool) {
	f, ok := p.Float(key)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// Sub returns a nested payload and whether the field held one.
func (p Payload) Sub(key string) (Payload, bool) {
	switch v := p[key].(type) {
	case map[string]any:
		return Payload(v), true
	case Payload:
		return v, true
	default:
		return nil, false
	}
}

// List returns the field as a slice of payloads and whether the field held a
// well-formed list. Entries that are not objects are dropped.
func (p Payload) List(key string) ([]Payload, bool) {
	raw, ok := p[key].([]any)
	if !ok {
		return nil, false
	}
	out := make([]Payload, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			out = append(out, Payload(m))
		}
	}
	return out, true
}

// Has reports whether the field is present at all.
func (p Payload) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// JSON renders the payload for raw-blob persistence. A payload that cannot
// marshal degrades to "{}" rather than failing the sync.
func (p Payload) JSON() string {
	if p == nil {
		return "{}"
	}
	data, err := json.Marshal(p)
	if err != nil {
		return "{}"
	}
	return string(data)
}
