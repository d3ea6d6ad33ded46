package advisor

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Coerced is the outcome of coercing a loosely typed field into a number.
// Defaulted is set whenever the stated value could not be used, with Reason
// describing the substitution so callers can audit it. The numeric result is
// always usable either way.
type Coerced struct {
	Value     float64
	Defaulted bool
	Reason    string
}

// Coerce converts a raw record field into a float64, falling back to def on
// anything it cannot interpret. Accepted forms: numeric types, numeric
// strings, and the legacy single-key wrapper object around a numeric value
// (e.g. {"$numberLong": "50000"}).
func Coerce(v any, def float64) Coerced {
	switch t := v.(type) {
	case nil:
		return Coerced{Value: def, Defaulted: true, Reason: "missing"}
	case float64:
		return Coerced{Value: t}
	case float32:
		return Coerced{Value: float64(t)}
	case int:
		return Coerced{Value: float64(t)}
	case int64:
		return Coerced{Value: float64(t)}
	case bool:
		if t {
			return Coerced{Value: 1}
		}
		return Coerced{Value: 0}
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Coerced{Value: def, Defaulted: true, Reason: "unparseable number"}
		}
		return Coerced{Value: f}
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return Coerced{Value: def, Defaulted: true, Reason: fmt.Sprintf("non-numeric string %q", t)}
		}
		return Coerced{Value: f}
	case map[string]any:
		// Legacy export wrapper: a single-key object holding the number.
		if len(t) != 1 {
			return Coerced{Value: def, Defaulted: true, Reason: "ambiguous wrapper"}
		}
		for _, inner := range t {
			c := Coerce(inner, def)
			if c.Defaulted {
				return Coerced{Value: def, Defaulted: true, Reason: "wrapper: " + c.Reason}
			}
			return c
		}
		return Coerced{Value: def, Defaulted: true, Reason: "empty wrapper"}
	default:
		return Coerced{Value: def, Defaulted: true, Reason: fmt.Sprintf("unsupported type %T", v)}
	}
}

// Truthy mirrors the loose boolean interpretation applied to flag fields in
// raw records: absent, zero, empty string and empty collections are false.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case float32:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	case map[string]any:
		return len(t) > 0
	case []any:
		return len(t) > 0
	default:
		return true
	}
}
