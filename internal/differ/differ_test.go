// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package differ

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/tokctl/internal/category"
	"github.com/tfctl/tokctl/internal/slot"
	"github.com/tfctl/tokctl/internal/store"
	"github.com/tfctl/tokctl/internal/tokens"
)

func keys(changes []Change) []string {
	out := []string{}
	for _, c := range changes {
		out = append(out, c.Key)
	}
	return out
}

func TestDiff(t *testing.T) {
	t.Parallel()
	before := tokens.TokenMap{
		"color.primary": "#ff0000",
		"spacing.sm":    4.0,
		"font.family":   "Inter",
		"gap.lg":        24.0,
	}
	after := tokens.TokenMap{
		"color.primary":  "#00ff00",
		"spacing.sm":     4.0,
		"font.family":    "Inter",
		"shadow.card":    "0 1px 2px",
		"elevation.high": map[string]any{"y": 8.0},
	}

	r := Diff(before, after)
	assert.Equal(t, []string{"elevation.high", "shadow.card"}, keys(r.Added))
	assert.Equal(t, []string{"gap.lg"}, keys(r.Removed))
	assert.Equal(t, []string{"color.primary"}, keys(r.Modified))

	mod := r.Modified[0]
	assert.Equal(t, Modified, mod.Type)
	assert.Equal(t, "#ff0000", mod.OldValue)
	assert.Equal(t, "#00ff00", mod.NewValue)
	assert.Equal(t, category.Color, mod.Category)
	assert.Equal(t, category.High, mod.Impact)

	assert.Equal(t, category.Shadow, r.Added[0].Category)
	assert.Equal(t, category.High, r.Added[0].Impact)
	assert.Equal(t, category.Medium, r.Added[1].Impact)

	rem := r.Removed[0]
	assert.Equal(t, category.Spacing, rem.Category)
	assert.Equal(t, 24.0, rem.OldValue)
	assert.Nil(t, rem.NewValue)

	s := Summarize(r)
	assert.Equal(t, Summary{Added: 2, Removed: 1, Modified: 1, TotalChanges: 4}, s)
	assert.Equal(t, []string{"color.primary", "elevation.high", "gap.lg", "shadow.card"}, keys(r.All()))
}

func TestDiffIdenticalAndEmpty(t *testing.T) {
	t.Parallel()
	m := tokens.TokenMap{"color.primary": "#fff", "spacing.sm": 4.0}
	r := Diff(m, m)
	assert.Equal(t, 0, Summarize(r).TotalChanges)

	r = Diff(nil, nil)
	assert.Empty(t, r.Added)
	assert.NotNil(t, r.Added)
}

func TestDiffObjectsCompareByIdentity(t *testing.T) {
	t.Parallel()
	shared := map[string]any{"x": 1.0}
	r := Diff(tokens.TokenMap{"shadow.a": shared}, tokens.TokenMap{"shadow.a": shared})
	assert.Empty(t, r.Modified)

	r = Diff(
		tokens.TokenMap{"shadow.a": map[string]any{"x": 1.0}},
		tokens.TokenMap{"shadow.a": map[string]any{"x": 1.0}},
	)
	assert.Equal(t, []string{"shadow.a"}, keys(r.Modified))
}

func TestDiffTypeChange(t *testing.T) {
	t.Parallel()
	r := Diff(tokens.TokenMap{"spacing.sm": 4.0}, tokens.TokenMap{"spacing.sm": "4px"})
	require.Len(t, r.Modified, 1)
	assert.Equal(t, category.Medium, r.Modified[0].Impact)
}

func newStore(t *testing.T) (*store.Store, store.TokenVersion, store.TokenVersion) {
	t.Helper()
	now := time.UnixMilli(1700000000000)
	s := store.New(slot.NewMemory(), store.WithClock(func() time.Time {
		now = now.Add(time.Second)
		return now
	}))
	v1 := s.Save(tokens.TokenMap{"color.primary": "#ff0000"}, "one", "")
	v2 := s.Save(tokens.TokenMap{"color.primary": "#ff0000", "spacing.sm": 4}, "two", "")
	return s, v1, v2
}

func TestCompareVersions(t *testing.T) {
	t.Parallel()
	s, v1, v2 := newStore(t)

	c := CompareVersions(s, v1.ID, v2.ID)
	require.NotNil(t, c)
	assert.Equal(t, "one", c.Version1.Name)
	assert.Equal(t, "two", c.Version2.Name)
	assert.Equal(t, []string{"spacing.sm"}, keys(c.Added))
	assert.Equal(t, 1, c.Summary.TotalChanges)

	assert.Nil(t, CompareVersions(s, v1.ID, "missing"))
	assert.Nil(t, CompareVersions(s, "missing", v2.ID))
}

func TestCompareWithLatest(t *testing.T) {
	t.Parallel()
	s, _, v2 := newStore(t)

	c := CompareWithLatest(s, tokens.TokenMap{"spacing.sm": 8.0})
	require.NotNil(t, c)
	assert.Equal(t, v2.ID, c.Version1.ID)
	assert.Equal(t, CurrentID, c.Version2.ID)
	assert.Equal(t, CurrentName, c.Version2.Name)
	assert.Equal(t, []string{"color.primary"}, keys(c.Removed))
	assert.Equal(t, []string{"spacing.sm"}, keys(c.Modified))

	assert.Nil(t, CompareWithLatest(store.New(slot.NewMemory()), tokens.TokenMap{}))
}

func TestDetail(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	changed, err := Detail(
		tokens.TokenMap{"color.primary": "#ff0000", "gap.lg": 24.0},
		tokens.TokenMap{"color.primary": "#00ff00", "spacing.sm": 4.0},
		&buf, false,
	)
	require.NoError(t, err)
	assert.True(t, changed)
	out := buf.String()
	assert.Contains(t, out, "color.primary")
	assert.Contains(t, out, "#00ff00")
	assert.Contains(t, out, "gap.lg")
	assert.Contains(t, out, "spacing.sm")

	buf.Reset()
	changed, err = Detail(
		tokens.TokenMap{"shadow.a": map[string]any{"x": 1.0}},
		tokens.TokenMap{"shadow.a": map[string]any{"x": 1.0}},
		&buf, false,
	)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Empty(t, buf.String())
}
