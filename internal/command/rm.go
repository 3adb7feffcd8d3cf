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
	"github.com/tfctl/tokctl/internal/resolve"
)

// rmCommandAction deletes versions and lists what was removed. Specs that
// match nothing are reported and skipped.
func rmCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &ActionRunner[*versionRow]{
		CommandName:  "rm",
		SchemaType:   reflect.TypeOf(versionRow{}),
		DefaultAttrs: versionAttrs,
		EmitFn:       EmitJSONAPISlice,
		FetchFn: func(ctx context.Context, cmd *cli.Command) ([]*versionRow, error) {
			if cmd.Args().Len() == 0 {
				return nil, errors.New("rm needs at least one version")
			}

			st, err := storeOf(cmd)
			if err != nil {
				return nil, err
			}

			removed := []*versionRow{}
			for _, spec := range cmd.Args().Slice() {
				vs, err := resolve.Resolve(st.Versions(), spec)
				if errors.Is(err, resolve.ErrNotFound) {
					fmt.Fprintf(ErrWriter(cmd), "rm: %v\n", err)
					continue
				}
				if err != nil {
					return nil, err
				}

				// File specs resolve to versions that were never stored.
				v, ok := st.Version(vs[0].ID)
				if !ok {
					fmt.Fprintf(ErrWriter(cmd), "rm: %s is not a saved version\n", spec)
					continue
				}
				st.Delete(v.ID)
				removed = append(removed, newVersionRow(v))
			}
			return removed, nil
		},
	}
	return runner.Run(ctx, cmd)
}

// rmCommandBuilder constructs the cli.Command for "rm".
func rmCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:       "rm",
		Usage:      "delete saved versions",
		UsageText:  "tokctl rm <version>... [options]",
		Action:     rmCommandAction,
		Meta:       meta,
		NeedsStore: true,
	}).Build()
}
