// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tokens

import (
	"encoding/json"
	"math"
	"reflect"
	"sort"
)

// TokenMap maps a dot-delimited token key (e.g. "color.primary") to its
// value: a string, a float64, or a structured value (map or slice).
type TokenMap map[string]any

// Keys returns the map's keys in ascending order.
func (m TokenMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a structural deep copy of m. It behaves like a JSON
// round-trip: numbers become float64, NaN and infinities become nil, and values
// with no JSON form (funcs, channels, complex numbers) are dropped from maps
// and turned into nil inside slices. A nil map clones to an empty one.
func Clone(m TokenMap) TokenMap {
	out := make(TokenMap, len(m))
	for k, v := range m {
		if c, ok := cloneValue(v); ok {
			out[k] = c
		}
	}
	return out
}

// cloneValue copies v. The bool is false when v has no JSON representation.
func cloneValue(v any) (any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, true
	case string, bool:
		return t, true
	case float64:
		return finite(t), true
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			if c, ok := cloneValue(e); ok {
				out[k] = c
			}
		}
		return out, true
	case TokenMap:
		return cloneValue(map[string]any(t))
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i], _ = cloneValue(e)
		}
		return out, true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32:
		return finite(rv.Float()), true
	case reflect.Func, reflect.Chan, reflect.Complex64, reflect.Complex128, reflect.UnsafePointer:
		return nil, false
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, true
		}
		return cloneValue(rv.Elem().Interface())
	}

	// Anything else (structs, typed maps and slices) goes through encoding/json
	// so the snapshot only ever holds plain JSON shapes.
	b, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, false
	}
	return out, true
}

func finite(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}
