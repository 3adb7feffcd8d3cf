// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/tokctl/internal/command"
	"github.com/tfctl/tokctl/internal/meta"
	"github.com/tfctl/tokctl/internal/version"
)

// Extras holds the hand-written parts of the docs that the command tree does
// not know: descriptions, examples and notes, keyed by subcommand.
type Extras struct {
	Subcommands []Extra `yaml:"subcommands"`
}

type Extra struct {
	ID          string    `yaml:"id"`
	Description string    `yaml:"description"`
	Examples    []Example `yaml:"examples"`
	Notes       []string  `yaml:"notes,omitempty"`
}

type Subcommand struct {
	ID          string
	Short       string
	Description string
	Usage       string
	Flags       []Flag
	Examples    []Example
	Notes       []string
}

type Flag struct {
	ID          string
	Syntax      string
	Description string
	Default     string
}

type Example struct {
	Command     string `yaml:"command"`
	Description string `yaml:"description"`
}

type TemplateData struct {
	Subcommand
	Date    string
	Version string
	IDUpper string
}

type Outputs struct {
	Template string
	Folder   string
	Prefix   string
	Suffix   string
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: docsgen <docs-dir>")
		os.Exit(1)
	}
	docs := os.Args[1]

	data, err := os.ReadFile(filepath.Join(docs, "templates", "tokctl.yaml"))
	if err != nil {
		panic(err)
	}
	var extras Extras
	if err := yaml.Unmarshal(data, &extras); err != nil {
		panic(err)
	}

	types := []Outputs{
		{Template: "tokctl.md.tmpl", Folder: "commands", Suffix: ".md"},
		{Template: "tokctl.man.tmpl", Folder: "man/share/man1", Prefix: "tokctl-", Suffix: ".1"},
		{Template: "tokctl.tldr.tmpl", Folder: "tldr", Prefix: "tokctl-", Suffix: ".md"},
	}

	app := command.NewApp(meta.Meta{})
	for _, sub := range buildSubcommands(app, extras) {
		metadata := TemplateData{
			Subcommand: sub,
			Date:       time.Now().Format("January 2, 2006"),
			Version:    version.Version,
			IDUpper:    strings.ToUpper(sub.ID),
		}

		for _, t := range types {
			folder := filepath.Join(docs, t.Folder)
			if err := os.MkdirAll(folder, 0755); err != nil {
				panic(err)
			}

			target := filepath.Join(folder, t.Prefix+sub.ID+t.Suffix)
			fmt.Println("Generating", target)
			if err := render(filepath.Join(docs, "templates", t.Template), target, metadata); err != nil {
				panic(err)
			}
		}
	}
}

func render(tmplPath string, target string, data TemplateData) error {
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		return err
	}

	file, err := os.Create(target)
	if err != nil {
		return err
	}
	defer file.Close()

	return tmpl.Execute(file, data)
}

// buildSubcommands walks the live command tree so flag docs never drift from
// the binary, then merges in the hand-written extras.
func buildSubcommands(app *cli.Command, extras Extras) []Subcommand {
	byID := map[string]Extra{}
	for _, e := range extras.Subcommands {
		byID[e.ID] = e
	}

	var subs []Subcommand
	for _, cmd := range app.Commands {
		extra := byID[cmd.Name]
		sub := Subcommand{
			ID:          cmd.Name,
			Short:       cmd.Usage,
			Description: extra.Description,
			Usage:       cmd.UsageText,
			Examples:    extra.Examples,
			Notes:       extra.Notes,
		}
		if sub.Usage == "" {
			sub.Usage = "tokctl " + cmd.Name
		}

		for _, f := range cmd.Flags {
			if v, ok := f.(cli.VisibleFlag); ok && !v.IsVisible() {
				continue
			}
			sub.Flags = append(sub.Flags, docFlag(f))
		}
		sort.Slice(sub.Flags, func(i, j int) bool {
			return sub.Flags[i].ID < sub.Flags[j].ID
		})

		subs = append(subs, sub)
	}

	return subs
}

func docFlag(f cli.Flag) Flag {
	names := f.Names()
	out := Flag{ID: names[0]}

	var parts []string
	for _, n := range names {
		if len(n) == 1 {
			parts = append(parts, "-"+n)
		} else {
			parts = append(parts, "--"+n)
		}
	}
	out.Syntax = strings.Join(parts, ", ")

	if d, ok := f.(cli.DocGenerationFlag); ok {
		out.Description = d.GetUsage()
		if d.TakesValue() {
			out.Syntax += " <value>"
			out.Default = strings.Trim(d.GetValue(), `"`)
		}
	}

	return out
}
