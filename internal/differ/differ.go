// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/tfctl/tokctl/internal/category"
	"github.com/tfctl/tokctl/internal/comparator"
	"github.com/tfctl/tokctl/internal/log"
	"github.com/tfctl/tokctl/internal/store"
	"github.com/tfctl/tokctl/internal/tokens"
)

// ChangeType says how a key changed between two snapshots.
type ChangeType string

const (
	Added    ChangeType = "added"
	Removed  ChangeType = "removed"
	Modified ChangeType = "modified"
)

// CurrentID and CurrentName identify the synthetic version built from the
// live token map.
const (
	CurrentID   = "current"
	CurrentName = "Current"
)

// Change is one key-level difference.
type Change struct {
	Key      string            `json:"key"`
	Type     ChangeType        `json:"type"`
	OldValue any               `json:"oldValue,omitempty"`
	NewValue any               `json:"newValue,omitempty"`
	Category category.Category `json:"category"`
	Impact   category.Impact   `json:"impact"`
}

// Result groups changes by type. Each slice is sorted by key.
type Result struct {
	Added    []Change `json:"added"`
	Removed  []Change `json:"removed"`
	Modified []Change `json:"modified"`
}

// Summary counts the changes in a Result.
type Summary struct {
	Added        int `json:"added"`
	Removed      int `json:"removed"`
	Modified     int `json:"modified"`
	TotalChanges int `json:"totalChanges"`
}

// VersionComparison is a Result between two named versions.
type VersionComparison struct {
	Version1 store.TokenVersion `json:"version1"`
	Version2 store.TokenVersion `json:"version2"`
	Result
	Summary Summary `json:"summary"`
}

// Diff compares before and after key by key. A key present on both sides is
// modified when the values are not strictly equal; objects compare by
// identity, so equal but distinct objects count as modified.
func Diff(before, after tokens.TokenMap) Result {
	r := Result{
		Added:    []Change{},
		Removed:  []Change{},
		Modified: []Change{},
	}

	for _, k := range after.Keys() {
		nv := after[k]
		ov, ok := before[k]
		switch {
		case !ok:
			r.Added = append(r.Added, Change{
				Key:      k,
				Type:     Added,
				NewValue: nv,
				Category: category.Of(k),
				Impact:   category.ImpactOf(nv),
			})
		case !comparator.StrictEqual(ov, nv):
			r.Modified = append(r.Modified, Change{
				Key:      k,
				Type:     Modified,
				OldValue: ov,
				NewValue: nv,
				Category: category.Of(k),
				Impact:   category.ImpactOf(nv),
			})
		}
	}

	for _, k := range before.Keys() {
		if _, ok := after[k]; ok {
			continue
		}
		ov := before[k]
		r.Removed = append(r.Removed, Change{
			Key:      k,
			Type:     Removed,
			OldValue: ov,
			Category: category.Of(k),
			Impact:   category.ImpactOf(ov),
		})
	}

	log.Debugf("diff: added=%d removed=%d modified=%d", len(r.Added), len(r.Removed), len(r.Modified))
	return r
}

// Summarize counts r. The total is unweighted.
func Summarize(r Result) Summary {
	return Summary{
		Added:        len(r.Added),
		Removed:      len(r.Removed),
		Modified:     len(r.Modified),
		TotalChanges: len(r.Added) + len(r.Removed) + len(r.Modified),
	}
}

// All returns every change in r, sorted by key.
func (r Result) All() []Change {
	out := make([]Change, 0, len(r.Added)+len(r.Removed)+len(r.Modified))
	out = append(out, r.Added...)
	out = append(out, r.Removed...)
	out = append(out, r.Modified...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Source is what CompareVersions and CompareWithLatest read from.
type Source interface {
	Version(id string) (store.TokenVersion, bool)
	Latest() (store.TokenVersion, bool)
}

// CompareVersions diffs the versions id1 (before) and id2 (after). It returns
// nil when either id is unknown.
func CompareVersions(src Source, id1, id2 string) *VersionComparison {
	v1, ok := src.Version(id1)
	if !ok {
		log.Debugf("compare: unknown version %s", id1)
		return nil
	}
	v2, ok := src.Version(id2)
	if !ok {
		log.Debugf("compare: unknown version %s", id2)
		return nil
	}
	return Compare(v1, v2)
}

// CompareWithLatest diffs the most recently saved version against live. It
// returns nil when nothing has been saved.
func CompareWithLatest(src Source, live tokens.TokenMap) *VersionComparison {
	latest, ok := src.Latest()
	if !ok {
		return nil
	}
	return Compare(latest, Current(live, time.Now()))
}

// Current wraps live as the synthetic "Current" version.
func Current(live tokens.TokenMap, now time.Time) store.TokenVersion {
	return store.TokenVersion{
		ID:        CurrentID,
		Name:      CurrentName,
		Timestamp: now.UnixMilli(),
		Tokens:    live,
	}
}

// Compare diffs two versions that need not come from a store, such as token
// files resolved on the command line.
func Compare(v1, v2 store.TokenVersion) *VersionComparison {
	r := Diff(v1.Tokens, v2.Tokens)
	return &VersionComparison{
		Version1: v1,
		Version2: v2,
		Result:   r,
		Summary:  Summarize(r),
	}
}

// Detail writes a structural delta of before and after to w and reports
// whether anything differed. Unlike Diff it compares values by content.
func Detail(before, after tokens.TokenMap, w io.Writer, color bool) (bool, error) {
	left, err := jsonObject(before)
	if err != nil {
		return false, err
	}
	right, err := jsonObject(after)
	if err != nil {
		return false, err
	}

	delta := gojsondiff.New().CompareObjects(left, right)
	if !delta.Modified() {
		return false, nil
	}

	config := formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       color,
	}

	out, err := formatter.NewAsciiFormatter(left, config).Format(delta)
	if err != nil {
		return true, fmt.Errorf("failed to format delta: %w", err)
	}

	_, err = fmt.Fprint(w, out)
	return true, err
}

// jsonObject converts m into the plain JSON shapes gojsondiff walks.
func jsonObject(m tokens.TokenMap) (map[string]any, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tokens: %w", err)
	}
	out := map[string]any{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("failed to decode tokens: %w", err)
	}
	return out, nil
}
