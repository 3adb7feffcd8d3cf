// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package store keeps a bounded history of token snapshots and persists it
// to a slot.
package store
