// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"strings"
	"time"

	"github.com/tfctl/tokctl/internal/category"
	"github.com/tfctl/tokctl/internal/differ"
	"github.com/tfctl/tokctl/internal/store"
	"github.com/tfctl/tokctl/internal/tokens"
)

// versionRow is a saved version as a JSON:API resource. Tokens is the token
// count; the map itself is only in export.
type versionRow struct {
	ID          string `jsonapi:"primary,versions"`
	Name        string `jsonapi:"attr,name"`
	Timestamp   int64  `jsonapi:"attr,timestamp"`
	Created     string `jsonapi:"attr,created"`
	Tokens      int    `jsonapi:"attr,tokens"`
	Description string `jsonapi:"attr,description,omitempty"`
}

var versionAttrs = []string{"id,name,tokens,created,!timestamp,!description"}

func newVersionRow(v store.TokenVersion) *versionRow {
	return &versionRow{
		ID:          v.ID,
		Name:        v.Name,
		Timestamp:   v.Timestamp,
		Created:     v.Time().UTC().Format(time.RFC3339),
		Tokens:      len(v.Tokens),
		Description: v.Description,
	}
}

func newVersionRows(vs []store.TokenVersion) []*versionRow {
	rows := make([]*versionRow, 0, len(vs))
	for _, v := range vs {
		rows = append(rows, newVersionRow(v))
	}
	return rows
}

// tokenRow is one token of a version.
type tokenRow struct {
	Key      string            `json:"key"`
	Value    any               `json:"value"`
	Category category.Category `json:"category"`
	Impact   category.Impact   `json:"impact"`
}

var tokenAttrs = []string{"key,value,category,!impact"}

func newTokenRows(m tokens.TokenMap) []tokenRow {
	rows := make([]tokenRow, 0, len(m))
	for _, k := range m.Keys() {
		rows = append(rows, tokenRow{
			Key:      k,
			Value:    m[k],
			Category: category.Of(k),
			Impact:   category.ImpactOf(m[k]),
		})
	}
	return rows
}

// changeRow is one change of a comparison.
type changeRow struct {
	Key      string            `json:"key"`
	Type     differ.ChangeType `json:"type"`
	Category category.Category `json:"category"`
	Impact   category.Impact   `json:"impact"`
	Old      any               `json:"old"`
	New      any               `json:"new"`
}

var changeAttrs = []string{"type,key,old,new,category,impact"}

func newChangeRows(r differ.Result) []changeRow {
	all := r.All()
	rows := make([]changeRow, 0, len(all))
	for _, c := range all {
		rows = append(rows, changeRow{
			Key:      c.Key,
			Type:     c.Type,
			Category: c.Category,
			Impact:   c.Impact,
			Old:      c.OldValue,
			New:      c.NewValue,
		})
	}
	return rows
}

// chopKeys replaces the leading key segments shared by every row with "..".
// At least two segments of every key are kept.
func chopKeys(rows []tokenRow) {
	if len(rows) == 0 {
		return
	}

	split := make([][]string, len(rows))
	shortest := -1
	for i, r := range rows {
		split[i] = strings.Split(r.Key, ".")
		if shortest < 0 || len(split[i]) < shortest {
			shortest = len(split[i])
		}
	}

	common := 0
	for common < shortest-2 {
		seg := split[0][common]
		same := true
		for _, s := range split[1:] {
			if s[common] != seg {
				same = false
				break
			}
		}
		if !same {
			break
		}
		common++
	}
	if common == 0 {
		return
	}

	for i := range rows {
		rows[i].Key = ".." + strings.Join(split[i][common:], ".")
	}
}
