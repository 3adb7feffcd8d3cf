// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package resolve turns user supplied version specs into stored versions.
// Given a newest-first list of versions, it can find specific versions by
// relative position, id, id prefix or name. A spec naming an existing token
// file resolves to a synthetic version loaded from that file.
package resolve
