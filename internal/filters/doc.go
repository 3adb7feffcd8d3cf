// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters selects rows of command output.
//
// Filters are key-operator-target expressions joined by a delimiter (comma by
// default, TOKCTL_FILTER_DELIM to override). Keys name output columns (see the
// attrs package). Every filter must pass for a row to be kept.
//
// Operators, each negatable with a leading !:
//
//   - = : exact match
//   - ~ : case-insensitive match
//   - ^ : prefix
//   - < > : less or greater than, numeric when both sides are numbers
//   - @ : substring, or membership for list and object values
//   - / : regular expression
//
// Examples:
//
//   - "category=color" : color tokens only
//   - "key^spacing." : keys under spacing
//   - "impact!=high" : everything that is not high impact
//   - "difference>0.25" : large value differences
//   - "name/^release-" : versions whose name matches the pattern
package filters
