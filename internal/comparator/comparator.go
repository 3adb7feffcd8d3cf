// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package comparator

import (
	"encoding/json"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

var hexColorRegex = regexp.MustCompile(`(?i)^#?([a-f\d]{2})([a-f\d]{2})([a-f\d]{2})$`)

// maxColorDistance is the diagonal of the RGB cube, 255·√3. It is written as
// a single square root so that black vs white divides to exactly 1.
var maxColorDistance = math.Sqrt(3 * 255 * 255)

// RGB is a color with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// ParseHexColor parses "#RRGGBB" (the "#" is optional, case-insensitive). The
// bool is false when s does not match.
func ParseHexColor(s string) (RGB, bool) {
	m := hexColorRegex.FindStringSubmatch(s)
	if m == nil {
		return RGB{}, false
	}

	var ch [3]uint8
	for i := range ch {
		v, _ := strconv.ParseUint(m[i+1], 16, 8)
		ch[i] = uint8(v)
	}
	return RGB{R: ch[0], G: ch[1], B: ch[2]}, true
}

// ColorDistance is the Euclidean RGB distance between two hex colors scaled to
// [0,1]. Strings that do not parse count as black.
func ColorDistance(c1, c2 string) float64 {
	a, _ := ParseHexColor(c1)
	b, _ := ParseHexColor(c2)

	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)

	return math.Sqrt(dr*dr+dg*dg+db*db) / maxColorDistance
}

// Distance returns how different two values of the same token are, from 0
// (identical) to 1.
//
//   - numbers: |a-b| / max(a, b, 1)
//   - strings starting with "#": ColorDistance
//   - other strings: 0 if equal, else 1
//   - objects (maps, slices): 0 if their JSON encodings match, else 1
//   - anything else, including mismatched types: 0 if StrictEqual, else 1
//
// The numeric rule is not a true metric for negative or very large values and
// can exceed 1 when either number is negative.
//
// A leading "#" alone selects the color rule. Malformed colors such as "#abc"
// read as black, so two different malformed colors are 0 apart and a
// malformed color is as far from a real one as black is.
func Distance(a, b any) float64 {
	if fa, ok := number(a); ok {
		if fb, ok := number(b); ok {
			return math.Abs(fa-fb) / math.Max(math.Max(fa, fb), 1)
		}
	}

	if sa, ok := a.(string); ok {
		if sb, ok := b.(string); ok {
			if strings.HasPrefix(sa, "#") && strings.HasPrefix(sb, "#") {
				return ColorDistance(sa, sb)
			}
			return boolDistance(sa == sb)
		}
	}

	if isObject(a) && isObject(b) {
		ja, errA := json.Marshal(a)
		jb, errB := json.Marshal(b)
		if errA == nil && errB == nil {
			return boolDistance(string(ja) == string(jb))
		}
	}

	return boolDistance(StrictEqual(a, b))
}

// StrictEqual reports whether a and b are the same value: primitives compare by
// value (all numeric types as float64), maps and slices by identity. Two
// distinct maps with equal contents are not StrictEqual.
func StrictEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if fa, ok := number(a); ok {
		fb, ok := number(b)
		return ok && fa == fb
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Kind() != vb.Kind() {
		return false
	}

	switch va.Kind() {
	case reflect.Map:
		return va.Type() == vb.Type() && va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Type() == vb.Type() && va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	case reflect.Func:
		return false
	}

	if !va.Type().Comparable() || va.Type() != vb.Type() {
		return false
	}
	return a == b
}

func number(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case int32:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint64:
		return float64(t), true
	case uint32:
		return float64(t), true
	}
	return 0, false
}

func isObject(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Struct:
		return true
	}
	return false
}

func boolDistance(equal bool) float64 {
	if equal {
		return 0
	}
	return 1
}
