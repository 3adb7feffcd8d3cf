// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputValidator(t *testing.T) {
	for _, v := range []string{"text", "json", "raw", "yaml"} {
		assert.NoError(t, OutputValidator(v), v)
	}
	assert.Error(t, OutputValidator("xml"))
	assert.Error(t, OutputValidator(""))
}

func TestProjectValidator(t *testing.T) {
	tests := []struct {
		value string
		ok    bool
	}{
		{"web=../web/tokens.json", true},
		{"web = tokens.yaml", true},
		{"web", false},
		{"=tokens.json", false},
		{"web=", false},
		{"  =  ", false},
	}
	for _, tt := range tests {
		err := FlagValidators(tt.value, ProjectValidator)
		if tt.ok {
			assert.NoError(t, err, tt.value)
		} else {
			assert.Error(t, err, tt.value)
		}
	}
}

func TestChopKeys(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want []string
	}{
		{
			name: "shared prefix",
			keys: []string{"color.brand.primary", "color.brand.accent"},
			want: []string{"..brand.primary", "..brand.accent"},
		},
		{
			name: "deep shared prefix keeps two segments",
			keys: []string{"a.b.c.d.e", "a.b.c.x.y"},
			want: []string{"..d.e", "..x.y"},
		},
		{
			name: "nothing shared",
			keys: []string{"color.primary", "spacing.sm"},
			want: []string{"color.primary", "spacing.sm"},
		},
		{
			name: "too short to chop",
			keys: []string{"color.primary", "color.accent"},
			want: []string{"color.primary", "color.accent"},
		},
		{
			name: "single row",
			keys: []string{"a.b.c.d"},
			want: []string{"..c.d"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := make([]tokenRow, len(tt.keys))
			for i, k := range tt.keys {
				rows[i] = tokenRow{Key: k}
			}
			chopKeys(rows)
			got := make([]string, len(rows))
			for i, r := range rows {
				got[i] = r.Key
			}
			assert.Equal(t, tt.want, got)
		})
	}

	chopKeys(nil)
}
