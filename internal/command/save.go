// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/tokctl/internal/log"
	"github.com/tfctl/tokctl/internal/meta"
	"github.com/tfctl/tokctl/internal/tokens"
)

// saveCommandAction snapshots a token file into the history.
func saveCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &ActionRunner[*versionRow]{
		CommandName:  "save",
		SchemaType:   reflect.TypeOf(versionRow{}),
		DefaultAttrs: versionAttrs,
		EmitFn:       EmitJSONAPISlice,
		FetchFn: func(ctx context.Context, cmd *cli.Command) ([]*versionRow, error) {
			if cmd.Args().Len() != 1 {
				return nil, errors.New("save needs exactly one token file")
			}
			path := cmd.Args().First()

			live, err := tokens.Load(path)
			if err != nil {
				return nil, fmt.Errorf("failed to load %s: %w", path, err)
			}

			st, err := storeOf(cmd)
			if err != nil {
				return nil, err
			}

			v := st.Save(live, cmd.String("name"), cmd.String("description"))
			log.Debugf("saved version: id=%s tokens=%d", v.ID, len(v.Tokens))
			return []*versionRow{newVersionRow(v)}, nil
		},
	}
	return runner.Run(ctx, cmd)
}

// saveCommandBuilder constructs the cli.Command for "save".
func saveCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "save",
		Usage:     "save a token file as a new version",
		UsageText: "tokctl save <file> [--name NAME] [--description TEXT] [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "version name, \"Version N\" when omitted",
			},
			&cli.StringFlag{
				Name:    "description",
				Aliases: []string{"d"},
				Usage:   "free-form version description",
			},
		},
		Action:     saveCommandAction,
		Meta:       meta,
		NeedsStore: true,
	}).Build()
}
