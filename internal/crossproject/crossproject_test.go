// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package crossproject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/tokctl/internal/tokens"
)

func TestCompare(t *testing.T) {
	t.Parallel()
	current := tokens.TokenMap{
		"color.primary": "#ff0000",
		"spacing.sm":    4.0,
		"font.body":     "Inter",
	}
	projects := []Project{
		{Name: "same", Tokens: tokens.TokenMap{"color.primary": "#ff0000", "spacing.sm": 4.0, "font.body": "Inter"}},
		{Name: "drift", Tokens: tokens.TokenMap{"color.primary": "#ff0000", "spacing.sm": 8.0, "gap.lg": 24.0}},
		{Name: "empty", Tokens: tokens.TokenMap{}},
	}

	got := Compare(current, projects)
	require.Len(t, got, 3)

	same := got[0]
	assert.Equal(t, "same", same.ProjectName)
	assert.Equal(t, []string{"color.primary", "font.body", "spacing.sm"}, same.CommonTokens)
	assert.Empty(t, same.ValueDifferences)
	assert.InDelta(t, 100.0, same.ConsistencyScore, 1e-9)

	drift := got[1]
	assert.Equal(t, []string{"color.primary", "spacing.sm"}, drift.CommonTokens)
	assert.Equal(t, []string{"font.body"}, drift.UniqueToCurrent)
	assert.Equal(t, []string{"gap.lg"}, drift.UniqueToProject)
	require.Len(t, drift.ValueDifferences, 1)
	assert.Equal(t, "spacing.sm", drift.ValueDifferences[0].Key)
	assert.InDelta(t, 0.5, drift.ValueDifferences[0].Difference, 1e-9)
	// 2/4*100 - 2/4*50 - 1/2*30 = 50 - 25 - 15
	assert.InDelta(t, 10.0, drift.ConsistencyScore, 1e-9)

	empty := got[2]
	assert.Equal(t, []string{"color.primary", "font.body", "spacing.sm"}, empty.UniqueToCurrent)
	assert.Equal(t, 0.0, empty.ConsistencyScore)
}

func TestCompareColorDistance(t *testing.T) {
	t.Parallel()
	got := Compare(
		tokens.TokenMap{"color.bg": "#000000"},
		[]Project{{Name: "p", Tokens: tokens.TokenMap{"color.bg": "#ffffff"}}},
	)
	require.Len(t, got[0].ValueDifferences, 1)
	assert.InDelta(t, 1.0, got[0].ValueDifferences[0].Difference, 1e-9)
	// 100 - 0 - 30
	assert.InDelta(t, 70.0, got[0].ConsistencyScore, 1e-9)
}

func TestCompareNullValues(t *testing.T) {
	t.Parallel()
	current, err := tokens.ParseJSON([]byte(`{"a":null}`))
	require.NoError(t, err)

	got := Compare(current, []Project{{Name: "p", Tokens: tokens.TokenMap{"a": "x"}}})
	assert.Equal(t, []string{"a"}, got[0].CommonTokens)
	require.Len(t, got[0].ValueDifferences, 1)
	assert.Nil(t, got[0].ValueDifferences[0].CurrentValue)
	assert.InDelta(t, 1.0, got[0].ValueDifferences[0].Difference, 1e-9)
	// 100 - 0 - 30
	assert.InDelta(t, 70.0, got[0].ConsistencyScore, 1e-9)

	got = Compare(tokens.TokenMap{"a": nil}, []Project{{Name: "p", Tokens: tokens.TokenMap{"a": nil}}})
	assert.Empty(t, got[0].ValueDifferences)
	assert.InDelta(t, 100.0, got[0].ConsistencyScore, 1e-9)
}

func TestCompareNoProjects(t *testing.T) {
	t.Parallel()
	assert.Empty(t, Compare(tokens.TokenMap{"a": 1.0}, nil))
}

func TestScore(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name                            string
		common, uCurrent, uProject, dif int
		want                            float64
	}{
		{"empty union", 0, 0, 0, 0, 0},
		{"all common", 5, 0, 0, 0, 100},
		{"all unique", 0, 3, 2, 0, 0},
		{"clamped low", 1, 5, 5, 1, 0},
		{"half", 2, 1, 1, 0, 25},
		{"differences", 4, 0, 0, 2, 85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, Score(tt.common, tt.uCurrent, tt.uProject, tt.dif), 1e-9)
		})
	}
}

func TestByScore(t *testing.T) {
	t.Parallel()
	cs := []Comparison{
		{ProjectName: "a", ConsistencyScore: 10},
		{ProjectName: "b", ConsistencyScore: 90},
		{ProjectName: "c", ConsistencyScore: 10},
	}
	ByScore(cs)
	assert.Equal(t, "b", cs[0].ProjectName)
	assert.Equal(t, "a", cs[1].ProjectName)
	assert.Equal(t, "c", cs[2].ProjectName)
}
