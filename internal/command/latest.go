// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/tokctl/internal/meta"
	"github.com/tfctl/tokctl/internal/store"
	"github.com/tfctl/tokctl/internal/tokens"
)

// latestCommandAction shows the newest version or, given a token file,
// what changed in the file since that version was saved.
func latestCommandAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() > 1 {
		return errors.New("latest takes at most one token file")
	}

	path := cmd.Args().First()
	if cmd.Bool("watch") && path == "" {
		return errors.New("--watch needs a token file")
	}

	if path != "" {
		if ShortCircuitTLDR(ctx, cmd, "latest") {
			return nil
		}
		if DumpSchemaIfRequested(cmd, reflect.TypeOf(changeRow{})) {
			return nil
		}
		st, err := storeOf(cmd)
		if err != nil {
			return err
		}
		cmp, err := latestComparison(st, path)
		if err != nil {
			return err
		}
		if err := emitComparison(cmd, cmp); err != nil {
			return err
		}
		if !cmd.Bool("watch") {
			return nil
		}
		return watchLatest(ctx, cmd, st, path)
	}

	runner := &ActionRunner[*versionRow]{
		CommandName:  "latest",
		SchemaType:   reflect.TypeOf(versionRow{}),
		DefaultAttrs: versionAttrs,
		EmitFn:       EmitJSONAPISlice,
		FetchFn: func(ctx context.Context, cmd *cli.Command) ([]*versionRow, error) {
			st, err := storeOf(cmd)
			if err != nil {
				return nil, err
			}
			v, ok := st.Latest()
			if !ok {
				return nil, errors.New("no versions saved yet")
			}
			return []*versionRow{newVersionRow(v)}, nil
		},
	}
	return runner.Run(ctx, cmd)
}

// watchLatest re-emits the comparison each time path is saved. A file that
// fails to parse mid-edit is reported and the watch carries on.
func watchLatest(ctx context.Context, cmd *cli.Command, st *store.Store, path string) error {
	fmt.Fprintf(ErrWriter(cmd), "watching %s, ctrl+c to stop\n", path)
	return tokens.Watch(ctx, path, tokens.DefaultDebounce, func() error {
		cmp, err := latestComparison(st, path)
		if err != nil {
			fmt.Fprintln(ErrWriter(cmd), err)
			return nil
		}
		return emitComparison(cmd, cmp)
	})
}

// latestCommandBuilder constructs the cli.Command for "latest".
func latestCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "latest",
		Usage:     "show the newest version, or compare a token file to it",
		UsageText: "tokctl latest [file] [options]",
		Flags: []cli.Flag{
			detailFlag(),
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "re-run the comparison whenever the token file changes",
			},
		},
		Action:     latestCommandAction,
		Meta:       meta,
		NeedsStore: true,
	}).Build()
}
