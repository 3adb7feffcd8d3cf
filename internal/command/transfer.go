// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/tokctl/internal/log"
	"github.com/tfctl/tokctl/internal/meta"
)

// exportCommandAction writes the whole history as JSON to stdout or --file.
func exportCommandAction(ctx context.Context, cmd *cli.Command) error {
	if ShortCircuitTLDR(ctx, cmd, "export") {
		return nil
	}

	st, err := storeOf(cmd)
	if err != nil {
		return err
	}

	data, err := st.Export()
	if err != nil {
		return fmt.Errorf("failed to export versions: %w", err)
	}

	path := cmd.String("file")
	if path == "" || path == "-" {
		_, err = fmt.Fprintln(Writer(cmd), data)
		return err
	}

	if err := os.WriteFile(path, []byte(data+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	log.Infof("exported %d versions to %s", st.Len(), path)
	return nil
}

// importCommandAction replaces the history with a previously exported file.
func importCommandAction(ctx context.Context, cmd *cli.Command) error {
	if ShortCircuitTLDR(ctx, cmd, "import") {
		return nil
	}
	if cmd.Args().Len() != 1 {
		return errors.New("import needs exactly one file, or - for stdin")
	}

	st, err := storeOf(cmd)
	if err != nil {
		return err
	}

	var data []byte
	if path := cmd.Args().First(); path == "-" {
		r := io.Reader(os.Stdin)
		if root := cmd.Root(); root != nil && root.Reader != nil {
			r = root.Reader
		}
		data, err = io.ReadAll(r)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read import: %w", err)
	}

	if err := st.Import(string(data)); err != nil {
		return fmt.Errorf("import rejected: %w", err)
	}

	fmt.Fprintf(Writer(cmd), "imported %d versions\n", st.Len())
	return nil
}

// exportCommandBuilder constructs the cli.Command for "export".
func exportCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "export",
		Usage:     "export the version history as JSON",
		UsageText: "tokctl export [-f FILE] [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "write to FILE instead of stdout",
			},
		},
		Action:     exportCommandAction,
		Meta:       meta,
		NeedsStore: true,
		NoOutput:   true,
	}).Build()
}

// importCommandBuilder constructs the cli.Command for "import".
func importCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:       "import",
		Usage:      "replace the version history with an exported file",
		UsageText:  "tokctl import <file|-> [options]",
		Action:     importCommandAction,
		Meta:       meta,
		NeedsStore: true,
		NoOutput:   true,
	}).Build()
}
