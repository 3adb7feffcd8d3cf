// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/tokctl/internal/config"
	"github.com/tfctl/tokctl/internal/log"
	"github.com/tfctl/tokctl/internal/meta"
)

// InitApp loads the config for the invoked subcommand and returns the root
// command.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, _ := os.Getwd()

	// The arg[1] immediately following the binary (arg[0]) is the tokctl
	// subcommand and also represents the namespace key to be used when
	// retrieving config values. arg[1] could be -h/--help, so ignore it if it
	// appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}
	config.Config.Namespace = ns

	// A missing config file is normal.
	cfg, err := config.Load()
	if err != nil {
		log.Debugf("config not loaded: %v", err)
	}

	return NewApp(meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		StartingDir: sd,
	}), nil
}

// NewApp returns the root command with every subcommand wired to m.
func NewApp(m meta.Meta) *cli.Command {
	app := &cli.Command{
		Name:  "tokctl",
		Usage: "Design token version history and drift analysis",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "tokctl version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		saveCommandBuilder(m),
		lsCommandBuilder(m),
		showCommandBuilder(m),
		rmCommandBuilder(m),
		diffCommandBuilder(m),
		latestCommandBuilder(m),
		projectsCommandBuilder(m),
		exportCommandBuilder(m),
		importCommandBuilder(m),
		clearCommandBuilder(m),
		completionCommandBuilder(m),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app
}
