// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/tfctl/tokctl/internal/config"
	"github.com/tfctl/tokctl/internal/crossproject"
	"github.com/tfctl/tokctl/internal/log"
	"github.com/tfctl/tokctl/internal/meta"
	"github.com/tfctl/tokctl/internal/tokens"
)

// maxProjectLoads bounds concurrent token file loads.
const maxProjectLoads = 8

// projectRow is one reference project's consistency with the current tokens.
type projectRow struct {
	Project         string  `json:"project"`
	Score           float64 `json:"score"`
	Common          int     `json:"common"`
	Differences     int     `json:"differences"`
	UniqueToCurrent int     `json:"uniqueToCurrent"`
	UniqueToProject int     `json:"uniqueToProject"`
}

var projectAttrs = []string{"project,score,common,differences,uniqueToCurrent:onlyCurrent,uniqueToProject:onlyProject"}

// differenceRow is a shared key whose values disagree.
type differenceRow struct {
	Project    string  `json:"project"`
	Key        string  `json:"key"`
	Current    any     `json:"current"`
	Reference  any     `json:"reference"`
	Difference float64 `json:"difference"`
}

var differenceAttrs = []string{"project,key,current,reference,difference"}

// projectsCommandAction scores reference projects against a version or token
// file, best match first. --differences lists the disagreeing values instead.
func projectsCommandAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() > 1 {
		return errors.New("projects takes at most one version or token file")
	}

	compare := func(ctx context.Context, cmd *cli.Command) ([]crossproject.Comparison, error) {
		current, err := resolveOne(cmd, cmd.Args().First())
		if err != nil {
			return nil, err
		}

		refs, err := projectRefs(cmd, current.ID)
		if err != nil {
			return nil, err
		}
		if len(refs) == 0 {
			return nil, errors.New("no reference projects: use --project, --root or the projects config key")
		}

		projects, err := loadProjects(ctx, refs)
		if err != nil {
			return nil, err
		}

		cs := crossproject.Compare(current.Tokens, projects)
		crossproject.ByScore(cs)
		return cs, nil
	}

	if cmd.Bool("differences") {
		return NewActionRunner("projects", reflect.TypeOf(differenceRow{}), differenceAttrs,
			func(ctx context.Context, cmd *cli.Command) ([]differenceRow, error) {
				cs, err := compare(ctx, cmd)
				if err != nil {
					return nil, err
				}
				rows := []differenceRow{}
				for _, c := range cs {
					for _, d := range c.ValueDifferences {
						rows = append(rows, differenceRow{
							Project:    c.ProjectName,
							Key:        d.Key,
							Current:    d.CurrentValue,
							Reference:  d.ProjectValue,
							Difference: round(d.Difference, 3),
						})
					}
				}
				return rows, nil
			}).Run(ctx, cmd)
	}

	return NewActionRunner("projects", reflect.TypeOf(projectRow{}), projectAttrs,
		func(ctx context.Context, cmd *cli.Command) ([]projectRow, error) {
			cs, err := compare(ctx, cmd)
			if err != nil {
				return nil, err
			}
			rows := make([]projectRow, 0, len(cs))
			for _, c := range cs {
				rows = append(rows, projectRow{
					Project:         c.ProjectName,
					Score:           round(c.ConsistencyScore, 1),
					Common:          len(c.CommonTokens),
					Differences:     len(c.ValueDifferences),
					UniqueToCurrent: len(c.UniqueToCurrent),
					UniqueToProject: len(c.UniqueToProject),
				})
			}
			return rows, nil
		}).Run(ctx, cmd)
}

// projectRefs gathers reference projects from the config file, --project and
// discovery under --root. The file the current tokens came from is skipped.
func projectRefs(cmd *cli.Command, currentPath string) ([]config.Project, error) {
	var refs []config.Project
	seen := map[string]bool{}
	if abs, err := filepath.Abs(currentPath); err == nil {
		seen[abs] = true
	}

	add := func(p config.Project) {
		abs, err := filepath.Abs(p.Path)
		if err != nil {
			abs = p.Path
		}
		if seen[abs] {
			log.Debugf("project skipped: name=%s path=%s", p.Name, p.Path)
			return
		}
		seen[abs] = true
		refs = append(refs, p)
	}

	configured, err := config.GetProjects()
	if err != nil {
		return nil, fmt.Errorf("invalid projects config: %w", err)
	}
	for _, p := range configured {
		add(p)
	}

	for _, spec := range cmd.StringSlice("project") {
		if err := FlagValidators(spec, ProjectValidator); err != nil {
			return nil, err
		}
		name, path, _ := strings.Cut(spec, "=")
		add(config.Project{Name: strings.TrimSpace(name), Path: strings.TrimSpace(path)})
	}

	root, glob := cmd.String("root"), cmd.String("glob")
	if root != "" || glob != "" {
		if root == "" {
			root = "."
		}
		files, err := tokens.Discover(root, glob)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			add(config.Project{Name: tokens.NameFromPath(f), Path: f})
		}
	}

	return refs, nil
}

// loadProjects loads the reference token files concurrently, keeping the
// order of refs.
func loadProjects(ctx context.Context, refs []config.Project) ([]crossproject.Project, error) {
	out := make([]crossproject.Project, len(refs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxProjectLoads)
	for i, ref := range refs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := tokens.Load(ref.Path)
			if err != nil {
				return fmt.Errorf("project %s: %w", ref.Name, err)
			}
			out[i] = crossproject.Project{Name: ref.Name, Tokens: m}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

func round(f float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(f*p) / p
}

// projectsCommandBuilder constructs the cli.Command for "projects".
func projectsCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "projects",
		Usage:     "score token consistency against reference projects",
		UsageText: "tokctl projects [version|file] [--project NAME=PATH]... [--root DIR] [--glob PATTERN] [options]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "project",
				Aliases: []string{"P"},
				Usage:   "reference project as name=path, repeatable",
			},
			&cli.StringFlag{
				Name:  "root",
				Usage: "discover reference token files under this directory",
			},
			&cli.StringFlag{
				Name:  "glob",
				Usage: "doublestar pattern for discovery, relative to --root",
			},
			&cli.BoolFlag{
				Name:  "differences",
				Usage: "list the values that differ instead of scores",
				Value: false,
			},
		},
		Action:     projectsCommandAction,
		Meta:       meta,
		NeedsStore: true,
	}).Build()
}
