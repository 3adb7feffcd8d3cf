// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package category classifies token keys and values.
package category

import "strings"

// Category is the semantic group a token key belongs to.
type Category string

const (
	Color      Category = "color"
	Spacing    Category = "spacing"
	Typography Category = "typography"
	Shadow     Category = "shadow"
	Other      Category = "other"
)

// Impact rates how visible a change to a token value is likely to be.
type Impact string

const (
	High   Impact = "high"
	Medium Impact = "medium"
	Low    Impact = "low"
)

// prefixes is checked in order; the first match wins.
var prefixes = []struct {
	prefix   string
	category Category
}{
	{"color.", Color},
	{"spacing.", Spacing},
	{"gap.", Spacing},
	{"typography.", Typography},
	{"font.", Typography},
	{"shadow.", Shadow},
	{"elevation.", Shadow},
}

// Of maps a token key to its category by prefix.
func Of(key string) Category {
	for _, p := range prefixes {
		if strings.HasPrefix(key, p.prefix) {
			return p.category
		}
	}
	return Other
}

// ImpactOf rates a token value. Hex colors and structured values are High,
// everything else Medium. Low is never produced.
func ImpactOf(v any) Impact {
	switch t := v.(type) {
	case string:
		if strings.HasPrefix(t, "#") {
			return High
		}
	case map[string]any:
		if t != nil {
			return High
		}
	case []any:
		if t != nil {
			return High
		}
	}
	return Medium
}
