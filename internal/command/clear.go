// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/tokctl/internal/meta"
)

// clearCommandAction drops every version and the persisted history.
func clearCommandAction(ctx context.Context, cmd *cli.Command) error {
	if ShortCircuitTLDR(ctx, cmd, "clear") {
		return nil
	}
	if !cmd.Bool("force") {
		return errors.New("clear deletes all saved versions; rerun with --force")
	}

	st, err := storeOf(cmd)
	if err != nil {
		return err
	}

	n := st.Len()
	st.Clear()
	fmt.Fprintf(Writer(cmd), "cleared %d versions\n", n)
	return nil
}

// clearCommandBuilder constructs the cli.Command for "clear".
func clearCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "clear",
		Usage:     "delete all saved versions",
		UsageText: "tokctl clear --force [options]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "confirm deleting the whole history",
				Value: false,
			},
		},
		Action:     clearCommandAction,
		Meta:       meta,
		NeedsStore: true,
		NoOutput:   true,
	}).Build()
}
