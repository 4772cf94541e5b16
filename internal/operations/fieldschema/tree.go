package fieldschema

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// freezeKey is the reserved key carrying the countdown freeze map inside a
// step's serialized top-level value map. It is stripped on parse so the
// engine never confuses it with a field id.
const freezeKey = "__countdown_freeze__"

// Envelope is a step's stored answers plus the countdown freeze map that is
// persisted alongside them.
type Envelope struct {
	Values map[string]any
	Freeze FreezeMap
}

// ParseEnvelope decodes a stored value document. Malformed or absent input
// yields an empty envelope, never an error.
func ParseEnvelope(raw []byte) Envelope {
	env := Envelope{Values: map[string]any{}, Freeze: FreezeMap{}}
	if len(raw) == 0 {
		return env
	}

	var values map[string]any
	if err := json.Unmarshal(raw, &values); err != nil || values == nil {
		return env
	}

	if rawFreeze, ok := values[freezeKey].(map[string]any); ok {
		for path, stamp := range rawFreeze {
			str, ok := stamp.(string)
			if !ok {
				continue
			}
			at, err := time.Parse(time.RFC3339, str)
			if err != nil {
				continue
			}
			env.Freeze[path] = at
		}
	}
	delete(values, freezeKey)
	env.Values = values

	return env
}

// Marshal serializes the envelope back to its storage form, re-embedding
// the freeze map under the reserved key.
func (e Envelope) Marshal() ([]byte, error) {
	out := make(map[string]any, len(e.Values)+1)
	for k, v := range e.Values {
		out[k] = v
	}
	if len(e.Freeze) > 0 {
		stamps := make(map[string]string, len(e.Freeze))
		for path, at := range e.Freeze {
			stamps[path] = at.UTC().Format(time.RFC3339)
		}
		out[freezeKey] = stamps
	}

	return json.Marshal(out)
}

// Lookup resolves a path against a value tree. A tree whose shape does not
// match the path yields no value rather than an error.
func Lookup(tree any, p Path) (any, bool) {
	node := tree
	for _, segment := range p {
		switch t := node.(type) {
		case map[string]any:
			child, ok := t[segment]
			if !ok {
				return nil, false
			}
			node = child
		case []any:
			i, err := strconv.Atoi(segment)
			if err != nil || i < 0 || i >= len(t) {
				return nil, false
			}
			node = t[i]
		default:
			return nil, false
		}
	}

	return node, true
}

func cloneTree(node any) any {
	switch t := node.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, v := range t {
			out[k] = cloneTree(v)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, v := range t {
			out[i] = cloneTree(v)
		}
		return out
	default:
		return t
	}
}

var truthyStrings = map[string]bool{
	"1":    true,
	"true": true,
	"yes":  true,
	"on":   true,
}

// Truthy reports whether a stored value counts as true. Strings match the
// fixed set case-insensitively; anything else is false, which degrades
// silently to "no value".
func Truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return truthyStrings[strings.ToLower(strings.TrimSpace(t))]
	case float64:
		return t == 1
	default:
		return false
	}
}

// leafString renders a leaf value for presence checks: the trimmed string,
// or a decimal rendering for numbers. Non-leaf shapes render empty.
func leafString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}

// ParseDateValue accepts the formats date fields are stored in.
func ParseDateValue(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
