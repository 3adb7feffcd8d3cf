// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/tfctl/tokctl/internal/config"
	"github.com/tfctl/tokctl/internal/store"
)

// Meta contains runtime metadata shared by commands. It carries CLI arguments,
// loaded configuration, context and the starting working directory.
//
// Store is normally nil and opened by each command from its store flags. Tests
// and embedding hosts set it to inject an already loaded store.
type Meta struct {
	Args        []string
	Config      config.Type
	Context     context.Context
	StartingDir string
	Store       *store.Store
}
