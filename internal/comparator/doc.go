// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package comparator measures how far apart two token values are. Distance
// dispatches on the value types (numbers, hex colors, plain strings, objects)
// and always lands in [0,1] for the shapes tokens normally take. StrictEqual is
// the change-detection equality used by the diff engine.
package comparator
