// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package tokens

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeys_Sorted(t *testing.T) {
	m := TokenMap{"spacing.md": 8.0, "color.primary": "#fff", "font.size": 14.0}
	assert.Equal(t, []string{"color.primary", "font.size", "spacing.md"}, m.Keys())
	assert.Empty(t, TokenMap(nil).Keys())
}

func TestClone_IsIndependent(t *testing.T) {
	orig := TokenMap{
		"color.primary": "#ff0000",
		"shadow.card":   map[string]any{"blur": 4.0, "offsets": []any{1.0, 2.0}},
	}

	c := Clone(orig)
	require.Equal(t, orig, c)

	orig["color.primary"] = "#00ff00"
	orig["shadow.card"].(map[string]any)["blur"] = 8.0
	orig["shadow.card"].(map[string]any)["offsets"].([]any)[0] = 9.0

	assert.Equal(t, "#ff0000", c["color.primary"])
	assert.Equal(t, 4.0, c["shadow.card"].(map[string]any)["blur"])
	assert.Equal(t, 1.0, c["shadow.card"].(map[string]any)["offsets"].([]any)[0])
}

func TestClone_JSONSemantics(t *testing.T) {
	type pad struct {
		Top int `json:"top"`
	}

	orig := TokenMap{
		"int":     3,
		"uint":    uint8(7),
		"float32": float32(1.5),
		"nan":     math.NaN(),
		"inf":     math.Inf(1),
		"func":    func() {},
		"chan":    make(chan int),
		"nil":     nil,
		"bool":    true,
		"struct":  pad{Top: 2},
		"strs":    []string{"a", "b"},
		"nested":  map[string]any{"drop": func() {}, "keep": 1},
		"list":    []any{func() {}, "x"},
	}

	c := Clone(orig)

	assert.Equal(t, 3.0, c["int"])
	assert.Equal(t, 7.0, c["uint"])
	assert.Equal(t, 1.5, c["float32"])
	assert.Nil(t, c["nan"])
	assert.Nil(t, c["inf"])
	assert.NotContains(t, c, "func")
	assert.NotContains(t, c, "chan")
	assert.Contains(t, c, "nil")
	assert.Equal(t, true, c["bool"])
	assert.Equal(t, map[string]any{"top": 2.0}, c["struct"])
	assert.Equal(t, []any{"a", "b"}, c["strs"])
	assert.Equal(t, map[string]any{"keep": 1.0}, c["nested"])
	assert.Equal(t, []any{nil, "x"}, c["list"])
}

func TestClone_Nil(t *testing.T) {
	c := Clone(nil)
	assert.NotNil(t, c)
	assert.Empty(t, c)
}

func TestLoad_Formats(t *testing.T) {
	tests := []struct {
		name string
		file string
		want TokenMap
	}{
		{
			name: "json with $value leaves",
			file: "brand.tokens.json",
			want: TokenMap{
				"color.primary":   "#0055FF",
				"color.secondary": "#00AA88",
				"spacing.sm":      4.0,
				"spacing.md":      8.0,
				"shadow.card":     map[string]any{"x": 0.0, "y": 2.0, "blur": 4.0, "color": "#00000033"},
				"font.family":     "Inter",
			},
		},
		{
			name: "yaml",
			file: "brand.tokens.yaml",
			want: TokenMap{
				"color.primary":   "#0055FF",
				"color.secondary": "#00AA88",
				"spacing.sm":      4.0,
				"spacing.md":      8.0,
				"font.family":     "Inter",
			},
		},
		{
			name: "hcl with blocks and functions",
			file: "brand.tokens.hcl",
			want: TokenMap{
				"font":             map[string]any{"family": "Inter"},
				"color.primary":    "#0055ff",
				"color.secondary":  "#00AA88",
				"spacing.scale.sm": 4.0,
				"spacing.scale.md": 8.0,
				"gap":              []any{4.0, 8.0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(filepath.Join("testdata", tt.file))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "missing.json"))
	assert.Error(t, err)

	_, err = ParseJSON([]byte(`{"color": `))
	assert.Error(t, err)

	_, err = ParseJSON([]byte(`["not", "an", "object"]`))
	assert.Error(t, err)

	_, err = ParseYAML([]byte("color: [unclosed"))
	assert.Error(t, err)

	_, err = ParseHCL([]byte(`color {`), "bad.hcl")
	assert.Error(t, err)

	_, err = ParseHCL([]byte(`size = unknown_var`), "bad.hcl")
	assert.Error(t, err)
}

func TestParseJSON_FlatKeys(t *testing.T) {
	got, err := ParseJSON([]byte(`{"color.primary":"#fff","spacing.md":8,"flag":null}`))
	require.NoError(t, err)
	assert.Equal(t, TokenMap{"color.primary": "#fff", "spacing.md": 8.0, "flag": nil}, got)
}

func TestDiscover(t *testing.T) {
	root := filepath.Join("testdata", "tree")

	files, err := Discover(root, "")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "brand.tokens.json"),
		filepath.Join(root, "docs", "design-tokens.yaml"),
		filepath.Join(root, "web", "tokens.json"),
	}, files)

	files, err = Discover(root, "web/*.json")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "web", "tokens.json")}, files)

	_, err = Discover(root, "[")
	assert.Error(t, err)
}

func TestNameFromPath(t *testing.T) {
	tests := map[string]string{
		"web/brand.tokens.json":     "brand",
		"web/tokens.json":           "web",
		"docs/design-tokens.yaml":   "docs",
		"marketing.yaml":            "marketing",
		"/abs/path/site.tokens.hcl": "site",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, NameFromPath(in))
		})
	}
}
