// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"sort"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/tfctl/tokctl/internal/differ"
	"github.com/tfctl/tokctl/internal/log"
	"github.com/tfctl/tokctl/internal/meta"
	"github.com/tfctl/tokctl/internal/resolve"
	"github.com/tfctl/tokctl/internal/store"
	"github.com/tfctl/tokctl/internal/tokens"
)

// comparisonPayload is what diff emits. --output raw shows all of it; the
// other formats render the flattened changes.
type comparisonPayload struct {
	*differ.VersionComparison
	Changes []changeRow `json:"changes"`
}

// selectVersions is swapped out by tests.
var selectVersions = differ.SelectVersions

// diffCommandAction compares two versions. With no arguments it compares the
// two newest, with one it compares a version to the newest or a token file to
// the newest, and with two it compares them in order. Token files may stand
// in for versions anywhere.
func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	if ShortCircuitTLDR(ctx, cmd, "diff") {
		return nil
	}
	if DumpSchemaIfRequested(cmd, reflect.TypeOf(changeRow{})) {
		return nil
	}

	st, err := storeOf(cmd)
	if err != nil {
		return err
	}

	var cmp *differ.VersionComparison
	if cmd.Bool("pick") {
		if cmd.Args().Len() > 0 {
			return errors.New("--pick takes no versions")
		}
		cmp, err = pickComparison(st)
	} else {
		cmp, err = argComparison(st, cmd.Args().Slice())
	}
	if err != nil {
		return err
	}
	if cmp == nil {
		return nil
	}

	return emitComparison(cmd, cmp)
}

// argComparison builds the comparison the positional arguments ask for.
func argComparison(st *store.Store, args []string) (*differ.VersionComparison, error) {
	switch len(args) {
	case 0:
		vs, err := resolve.Resolve(st.Versions(), "~1", "~0")
		if errors.Is(err, resolve.ErrNotFound) {
			return nil, errors.New("diff needs at least two saved versions")
		}
		if err != nil {
			return nil, err
		}
		return differ.CompareVersions(st, vs[0].ID, vs[1].ID), nil

	case 1:
		if isFile(args[0]) {
			return latestComparison(st, args[0])
		}
		vs, err := resolve.Resolve(st.Versions(), args[0], "~0")
		if err != nil {
			return nil, err
		}
		return compareResolved(st, vs[0], vs[1]), nil

	case 2:
		vs, err := resolve.Resolve(st.Versions(), args...)
		if err != nil {
			return nil, err
		}
		return compareResolved(st, vs[0], vs[1]), nil
	}

	return nil, fmt.Errorf("diff takes at most two versions, got %d", len(args))
}

// latestComparison compares the token file at path to the newest version.
func latestComparison(st *store.Store, path string) (*differ.VersionComparison, error) {
	live, err := tokens.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	cmp := differ.CompareWithLatest(st, live)
	if cmp == nil {
		return nil, errors.New("no versions saved yet")
	}
	return cmp, nil
}

// compareResolved prefers the store's view of stored versions and compares
// anything else directly.
func compareResolved(st *store.Store, v1, v2 store.TokenVersion) *differ.VersionComparison {
	_, ok1 := st.Version(v1.ID)
	_, ok2 := st.Version(v2.ID)
	if ok1 && ok2 {
		return differ.CompareVersions(st, v1.ID, v2.ID)
	}
	return differ.Compare(v1, v2)
}

// pickComparison lets the user choose two versions interactively. The older
// one is the "before" side. A cancelled picker yields nil.
func pickComparison(st *store.Store) (*differ.VersionComparison, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("--pick needs a terminal")
	}
	if st.Len() < 2 {
		return nil, errors.New("diff needs at least two saved versions")
	}

	picked, err := selectVersions(st.Versions())
	if err != nil {
		return nil, err
	}
	if len(picked) != 2 {
		log.Debug("version picker cancelled")
		return nil, nil
	}

	sort.SliceStable(picked, func(i, j int) bool { return picked[i].Timestamp < picked[j].Timestamp })
	return differ.CompareVersions(st, picked[0].ID, picked[1].ID), nil
}

// emitComparison renders cmp as a change table, or as a structural delta with
// --detail.
func emitComparison(cmd *cli.Command, cmp *differ.VersionComparison) error {
	if cmd.Bool("detail") {
		changed, err := differ.Detail(cmp.Version1.Tokens, cmp.Version2.Tokens, Writer(cmd), cmd.Bool("color"))
		if err != nil {
			return err
		}
		if !changed {
			fmt.Fprintln(Writer(cmd), "no differences")
		}
		return nil
	}

	al, err := BuildAttrs(cmd, changeAttrs...)
	if err != nil {
		return err
	}

	if cmd.Bool("titles") {
		cmd.Metadata["header"] = fmt.Sprintf("%s (%s) -> %s (%s)",
			cmp.Version1.Name, cmp.Version1.ID, cmp.Version2.Name, cmp.Version2.ID)
	}
	cmd.Metadata["footer"] = summaryLine(cmp.Summary)

	return EmitJSONMember(comparisonPayload{
		VersionComparison: cmp,
		Changes:           newChangeRows(cmp.Result),
	}, "changes", al, cmd)
}

func summaryLine(s differ.Summary) string {
	if s.TotalChanges == 0 {
		return "no changes"
	}
	return fmt.Sprintf("%d added, %d removed, %d modified", s.Added, s.Removed, s.Modified)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// diffCommandBuilder constructs the cli.Command for "diff".
func diffCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "diff",
		Usage:     "compare two versions",
		UsageText: "tokctl diff [before] [after] [options]",
		Flags: []cli.Flag{
			detailFlag(),
			&cli.BoolFlag{
				Name:  "pick",
				Usage: "choose the versions interactively",
				Value: false,
			},
		},
		Action:     diffCommandAction,
		Meta:       meta,
		NeedsStore: true,
	}).Build()
}

func detailFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:  "detail",
		Usage: "show a structural delta of the token values",
		Value: false,
	}
}
