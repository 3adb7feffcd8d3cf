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
	"github.com/tfctl/tokctl/internal/store"
)

// showCommandAction lists the tokens of one version, the latest by default.
func showCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := NewActionRunner("show", reflect.TypeOf(tokenRow{}), tokenAttrs,
		func(ctx context.Context, cmd *cli.Command) ([]tokenRow, error) {
			if cmd.Args().Len() > 1 {
				return nil, errors.New("show takes at most one version")
			}

			v, err := resolveOne(cmd, cmd.Args().First())
			if err != nil {
				return nil, err
			}

			if cmd.Bool("titles") {
				cmd.Metadata["header"] = fmt.Sprintf("%s  %s  %s",
					v.Name, v.ID, v.Time().UTC().Format("2006-01-02 15:04:05Z"))
			}

			rows := newTokenRows(v.Tokens)
			if cmd.Bool("chop") {
				chopKeys(rows)
			}
			return rows, nil
		})
	return runner.Run(ctx, cmd)
}

// resolveOne resolves spec, or the latest version when spec is empty.
func resolveOne(cmd *cli.Command, spec string) (store.TokenVersion, error) {
	st, err := storeOf(cmd)
	if err != nil {
		return store.TokenVersion{}, err
	}

	var specs []string
	if spec != "" {
		specs = append(specs, spec)
	}

	vs, err := resolve.Resolve(st.Versions(), specs...)
	if errors.Is(err, resolve.ErrNotFound) && spec == "" {
		return store.TokenVersion{}, errors.New("no versions saved yet")
	}
	if err != nil {
		return store.TokenVersion{}, err
	}
	return vs[0], nil
}

// showCommandBuilder constructs the cli.Command for "show".
func showCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "show",
		Usage:     "show the tokens of a version",
		UsageText: "tokctl show [version|file] [options]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "chop",
				Usage: "chop the key prefix shared by all tokens",
				Value: false,
			},
		},
		Action:     showCommandAction,
		Meta:       meta,
		NeedsStore: true,
	}).Build()
}
