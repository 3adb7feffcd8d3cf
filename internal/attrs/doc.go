// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package attrs parses --attrs specs into the list of columns a command
// emits, along with the per-column transforms applied at output time.
//
// A spec is a comma separated list of key:output:transform entries. Only the
// key is required. A leading ! on the key keeps the column available for
// filtering and sorting but drops it from output, and the key * carries a
// transform that is prepended to every column.
//
// Transforms:
//
//   - t : render a timestamp in local time
//   - T : render a timestamp relative to now ("3 minutes ago")
//   - u, l : upper or lower case
//   - N : truncate to N characters
//   - -N : elide the middle to fit N characters
package attrs
