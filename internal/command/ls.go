// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/tokctl/internal/meta"
)

// lsCommandAction lists saved versions, newest first.
func lsCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &ActionRunner[*versionRow]{
		CommandName:  "ls",
		SchemaType:   reflect.TypeOf(versionRow{}),
		DefaultAttrs: versionAttrs,
		EmitFn:       EmitJSONAPISlice,
		FetchFn: func(ctx context.Context, cmd *cli.Command) ([]*versionRow, error) {
			st, err := storeOf(cmd)
			if err != nil {
				return nil, err
			}
			return newVersionRows(st.Versions()), nil
		},
	}
	return runner.Run(ctx, cmd)
}

// lsCommandBuilder constructs the cli.Command for "ls".
func lsCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:       "ls",
		Usage:      "list saved versions",
		UsageText:  "tokctl ls [options]",
		Action:     lsCommandAction,
		Meta:       meta,
		NeedsStore: true,
	}).Build()
}
