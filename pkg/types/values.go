package types

import (
	"math"
	"reflect"
	"time"
)

// toFloat converts a raw numeric param value to float64. Booleans and
// non-numeric values are rejected.
func toFloat(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

// isNumber reports whether v is an integer or float kind.
func isNumber(v any) bool {
	_, ok := toFloat(v)
	return ok
}

// valueEqual compares two raw values structurally. Numbers compare by value
// regardless of kind, so int 10 equals float64 10, and NaN equals NaN. Slices
// and arrays compare element-wise, maps compare by key set and per-key value,
// and anything else falls back to reflect.DeepEqual.
func valueEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if isNumber(a) || isNumber(b) {
		fa, okA := toFloat(a)
		fb, okB := toFloat(b)
		if !okA || !okB {
			return false
		}
		if ia, okIA := exactInt(a); okIA {
			if ib, okIB := exactInt(b); okIB {
				return ia == ib
			}
		}
		return floatEqual(fa, fb)
	}

	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}

	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch ra.Kind() {
	case reflect.Slice, reflect.Array:
		if rb.Kind() != reflect.Slice && rb.Kind() != reflect.Array {
			return false
		}
		if ra.Len() != rb.Len() {
			return false
		}
		for i := 0; i < ra.Len(); i++ {
			if !valueEqual(ra.Index(i).Interface(), rb.Index(i).Interface()) {
				return false
			}
		}
		return true
	case reflect.Map:
		if rb.Kind() != reflect.Map || ra.Len() != rb.Len() {
			return false
		}
		if ra.Type().Key().Kind() != reflect.String || rb.Type().Key().Kind() != reflect.String {
			return reflect.DeepEqual(a, b)
		}
		for _, k := range ra.MapKeys() {
			vb := rb.MapIndex(reflect.ValueOf(k.String()).Convert(rb.Type().Key()))
			if !vb.IsValid() {
				return false
			}
			if !valueEqual(ra.MapIndex(k).Interface(), vb.Interface()) {
				return false
			}
		}
		return true
	case reflect.String:
		return rb.Kind() == reflect.String && ra.String() == rb.String()
	case reflect.Bool:
		return rb.Kind() == reflect.Bool && ra.Bool() == rb.Bool()
	default:
		return reflect.DeepEqual(a, b)
	}
}

// exactInt returns v as int64 when v is an integer kind, or a float holding
// an integral value that fits in int64.
func exactInt(v any) (int64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, false
		}
		return int64(f), true
	default:
		return 0, false
	}
}

// attrsEqual compares two string-keyed mappings of raw values.
func attrsEqual(a, b map[string]any) bool {
	if len(a) != len(b) {
		return false
	}
	for k, va := range a {
		vb, ok := b[k]
		if !ok || !valueEqual(va, vb) {
			return false
		}
	}
	return true
}

// cloneValue deep-copies slices and string-keyed maps of raw values. Scalars
// are returned as is.
func cloneValue(v any) any {
	switch x := v.(type) {
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = cloneValue(e)
		}
		return out
	case map[string]any:
		return cloneAttrs(x)
	default:
		return v
	}
}

func cloneAttrs(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}
