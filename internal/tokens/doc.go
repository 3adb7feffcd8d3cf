// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package tokens defines the flat design-token map shared by every other
// package, the structural clone used to snapshot it, and loaders that read
// token files (JSON, YAML, HCL) into a flat map keyed by dot-delimited paths.
package tokens
