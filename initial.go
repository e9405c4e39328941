package formkit

import "github.com/reoring/formkit/internal/value"

// InitialValue derives a field's starting value. An explicit initial value is
// returned verbatim, nil included. Otherwise the kind's canonical default is
// used: "" for string, email, date, url and enum; 0 for number; false for
// boolean; an empty []any for array; an empty map for object.
//
// The second result is false only for unsupported kinds without an explicit
// value, which have no default at all.
func InitialValue(d Descriptor) (any, bool) {
	if d.HasInitial {
		return value.Clone(d.InitialValue), true
	}
	switch d.Kind {
	case KindString, KindEmail, KindDate, KindURL, KindEnum:
		return "", true
	case KindNumber:
		return float64(0), true
	case KindBoolean:
		return false, true
	case KindArray:
		return []any{}, true
	case KindObject:
		return map[string]any{}, true
	default:
		return nil, false
	}
}
