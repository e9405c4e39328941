// Package value holds reflection helpers shared by the compiler and the form
// controller: shape classification, numeric comparison, deep copy.
package value

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
)

// IsNumber reports whether v is a Go integer, float, or json.Number holding a
// valid number. NaN is not a number here.
func IsNumber(v any) bool {
	f, ok := ToFloat64(v)
	return ok && !math.IsNaN(f)
}

// ToFloat64 converts any numeric value to float64.
func ToFloat64(v any) (float64, bool) {
	if n, ok := v.(json.Number); ok {
		f, err := strconv.ParseFloat(string(n), 64)
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	switch {
	case !rv.IsValid():
		return 0, false
	case isIntLike(rv.Kind()):
		return float64(toInt64(rv)), true
	case isUintLike(rv.Kind()):
		return float64(rv.Uint()), true
	case isFloatLike(rv.Kind()):
		return rv.Float(), true
	default:
		return 0, false
	}
}

// IsSequence reports whether v is a slice or array. A typed nil slice counts
// as an empty sequence.
func IsSequence(v any) bool {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return false
	}
	return rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array
}

// Elements returns the elements of a sequence.
func Elements(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// Record returns v as a string-keyed map when it is one.
func Record(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, t != nil
	case nil:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	if rv.IsNil() {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	it := rv.MapRange()
	for it.Next() {
		out[it.Key().String()] = it.Value().Interface()
	}
	return out, true
}

// Equal compares two field values structurally. Numbers compare by value
// across Go numeric types, so int 18 equals float64 18.
func Equal(a, b any) bool {
	if fa, ok := ToFloat64(a); ok {
		fb, ok := ToFloat64(b)
		return ok && fa == fb
	}
	if IsSequence(a) {
		if !IsSequence(b) {
			return false
		}
		ea, eb := Elements(a), Elements(b)
		if len(ea) != len(eb) {
			return false
		}
		for i := range ea {
			if !Equal(ea[i], eb[i]) {
				return false
			}
		}
		return true
	}
	if ra, ok := Record(a); ok {
		rb, ok := Record(b)
		if !ok || len(ra) != len(rb) {
			return false
		}
		for k, va := range ra {
			vb, ok := rb[k]
			if !ok || !Equal(va, vb) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

// Clone deep-copies v. Slices, arrays and maps are copied at every level;
// nil slices and maps stay nil. Other values are returned as is.
func Clone(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case map[string]any:
		if t == nil {
			return t
		}
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = Clone(vv)
		}
		return out
	case []any:
		if t == nil {
			return t
		}
		out := make([]any, len(t))
		for i := range t {
			out[i] = Clone(t[i])
		}
		return out
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out.Index(i).Set(cloneValue(rv.Index(i)))
		}
		return out.Interface()
	case reflect.Array:
		out := reflect.New(rv.Type()).Elem()
		for i := 0; i < rv.Len(); i++ {
			out.Index(i).Set(cloneValue(rv.Index(i)))
		}
		return out.Interface()
	case reflect.Map:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		it := rv.MapRange()
		for it.Next() {
			out.SetMapIndex(it.Key(), cloneValue(it.Value()))
		}
		return out.Interface()
	default:
		return v
	}
}

// cloneValue clones an element and converts it back to the element type.
func cloneValue(el reflect.Value) reflect.Value {
	c := Clone(el.Interface())
	if c == nil {
		return reflect.Zero(el.Type())
	}
	return reflect.ValueOf(c)
}

func isIntLike(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUintLike(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isFloatLike(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func toInt64(v reflect.Value) int64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	default:
		return 0
	}
}
