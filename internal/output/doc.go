// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output provides the filtering, sorting and emission pipeline every
// command uses to present results as text tables, JSON, YAML or raw payloads.
package output
