// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/tokctl/internal/meta"
)

// CommandBuilder constructs a cli.Command for tokctl subcommands using a
// consistent pattern. The builder wires metadata, adds the tldr, schema and
// global output flags, optionally adds the store flags, and sets up
// validators. Commands that read or write history set NeedsStore so the store
// is opened in Before and available from GetMeta.
type CommandBuilder struct {
	Name       string
	Usage      string
	UsageText  string
	Flags      []cli.Flag
	Action     func(context.Context, *cli.Command) error
	Meta       meta.Meta
	NeedsStore bool
	// NoOutput drops the global output flags from commands that only write
	// files or change the store.
	NoOutput bool
}

// Build returns a configured cli.Command from the builder.
func (cb *CommandBuilder) Build() *cli.Command {
	flags := append([]cli.Flag{tldrFlag}, cb.Flags...)
	if !cb.NoOutput {
		flags = append(flags, schemaFlag)
		flags = append(flags, NewGlobalFlags(cb.Name, cb.Meta.Config.Source)...)
	}
	if cb.NeedsStore {
		flags = append(flags, NewStoreFlags(cb.Meta.Config.Source)...)
	}

	return &cli.Command{
		Name:      cb.Name,
		Usage:     cb.Usage,
		UsageText: cb.UsageText,
		Metadata: map[string]any{
			"meta": cb.Meta,
		},
		Flags: flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if err := GlobalFlagsValidator(ctx, c); err != nil {
				return ctx, err
			}
			if cb.NeedsStore && !c.Bool("tldr") {
				if _, err := OpenStore(ctx, c); err != nil {
					return ctx, err
				}
			}
			return ctx, nil
		},
		Action: cb.Action,
	}
}
