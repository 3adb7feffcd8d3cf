// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package comparator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in     string
		want   RGB
		wantOK bool
	}{
		{"#ff0000", RGB{255, 0, 0}, true},
		{"#00FF7f", RGB{0, 255, 127}, true},
		{"0000ff", RGB{0, 0, 255}, true},
		{"#fff", RGB{}, false},
		{"#gg0000", RGB{}, false},
		{"#ff000000", RGB{}, false},
		{"red", RGB{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseHexColor(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColorDistance(t *testing.T) {
	assert.Equal(t, 1.0, ColorDistance("#000000", "#FFFFFF"))
	assert.Equal(t, 1.0, ColorDistance("#ffffff", "#000000"))
	assert.Equal(t, 0.0, ColorDistance("#123456", "#123456"))
	assert.Equal(t, 0.0, ColorDistance("#abcdef", "#ABCDEF"))

	// A single saturated channel is 1/√3 of the diagonal.
	assert.InDelta(t, 1/math.Sqrt(3), ColorDistance("#ff0000", "#000000"), 1e-12)

	// Malformed colors count as black.
	assert.Equal(t, 0.0, ColorDistance("#nope", "#000000"))
	assert.Equal(t, 1.0, ColorDistance("#fff", "#ffffff"))
}

func TestColorDistance_Symmetric(t *testing.T) {
	colors := []string{"#000000", "#ffffff", "#ff0000", "#0055ff", "#00aa88", "#808080", "#bad"}
	for _, c1 := range colors {
		for _, c2 := range colors {
			d1 := ColorDistance(c1, c2)
			d2 := ColorDistance(c2, c1)
			assert.Equal(t, d1, d2, "%s vs %s", c1, c2)
			assert.GreaterOrEqual(t, d1, 0.0)
			assert.LessOrEqual(t, d1, 1.0)
		}
	}
}

func TestDistance(t *testing.T) {
	obj1 := map[string]any{"x": 1.0, "y": 2.0}
	obj2 := map[string]any{"y": 2.0, "x": 1.0}
	obj3 := map[string]any{"x": 1.0, "y": 3.0}

	tests := []struct {
		name string
		a, b any
		want float64
	}{
		{"equal numbers", 8.0, 8.0, 0},
		{"numbers relative to max", 8.0, 16.0, 0.5},
		{"small numbers use floor of one", 0.0, 0.5, 0.5},
		{"zeros", 0.0, 0.0, 0},
		{"int and float", 4, 4.0, 0},
		{"negative numbers exceed one", -5.0, -10.0, 5},
		{"black vs white", "#000000", "#ffffff", 1},
		{"same color", "#ff0000", "#FF0000", 0},
		{"equal strings", "Inter", "Inter", 0},
		{"different strings", "Inter", "Roboto", 1},
		{"color vs plain string", "#ff0000", "red", 1},
		{"malformed colors both read as black", "#abc", "#def", 0},
		{"malformed color vs black", "#zzzzzz", "#000000", 0},
		{"malformed color vs white", "#abc", "#ffffff", 1},
		{"equal objects", obj1, obj2, 0},
		{"different objects", obj1, obj3, 1},
		{"equal arrays", []any{1.0, 2.0}, []any{1.0, 2.0}, 0},
		{"number vs string", 4.0, "4", 1},
		{"nil vs nil", nil, nil, 0},
		{"nil vs value", nil, "x", 1},
		{"nil vs object", nil, obj1, 1},
		{"equal bools", true, true, 0},
		{"different bools", true, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Distance(tt.a, tt.b), 1e-12)
		})
	}
}

func TestStrictEqual(t *testing.T) {
	obj := map[string]any{"x": 1.0}
	arr := []any{1.0}

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"same string", "a", "a", true},
		{"different string", "a", "b", false},
		{"int vs float", 1, 1.0, true},
		{"NaN", math.NaN(), math.NaN(), false},
		{"nil", nil, nil, true},
		{"nil vs zero", nil, 0.0, false},
		{"same map", obj, obj, true},
		{"equal but distinct maps", obj, map[string]any{"x": 1.0}, false},
		{"same slice", arr, arr, true},
		{"equal but distinct slices", arr, []any{1.0}, false},
		{"string vs number", "1", 1.0, false},
		{"bools", false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StrictEqual(tt.a, tt.b))
		})
	}
}
