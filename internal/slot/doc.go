// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package slot provides the single durable key/value slot the version store
// persists its history into. Implementations cover a local file, process
// memory, an S3 object, and a passphrase-sealed wrapper around any of them.
package slot
