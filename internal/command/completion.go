// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/tokctl/internal/meta"
)

const bashCompletionScript = `# bash completion for tokctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_tokctl()
{
  local cur prev cmd
  COMPREPLY=()
  _get_comp_words_by_ref -n : cur prev

  if [[ ${COMP_CWORD} -eq 1 ]]; then
    COMPREPLY=( $(compgen -W "save ls show rm diff latest projects export import clear completion --help --version" -- "$cur") )
    return 0
  fi

  cmd=${COMP_WORDS[1]}
  local common="--attrs -a --color -c --filter -f --local -l --output -o --schema --sort -s --titles -t --tldr"
  local store="--store-dir --s3-bucket --s3-key --s3-region --s3-profile --ephemeral --passphrase -p --seal"

  case "$cmd" in
    save)
      local opts="$common $store --name -n --description -d"
      ;;
    show)
      local opts="$common $store --chop"
      ;;
    diff)
      local opts="$common $store --detail --pick"
      ;;
    latest)
      local opts="$common $store --detail"
      ;;
    projects)
      local opts="$common $store --project -P --root --glob --differences"
      ;;
    export)
      local opts="$store --file -f --tldr"
      ;;
    import)
      local opts="$store --tldr"
      ;;
    clear)
      local opts="$store --force --tldr"
      ;;
    completion)
      COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
      return 0
      ;;
    *)
      local opts="$common $store"
      ;;
  esac

  if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
    COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
    return 0
  fi
  if [[ "$prev" == "--store-dir" || "$prev" == "--root" ]]; then
    COMPREPLY=( $(compgen -o dirnames -- "$cur") )
    return 0
  fi

  if [[ "$cur" == -* ]]; then
    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
  fi

  # Positionals are versions or token files; offer files.
  COMPREPLY=( $(compgen -f -- "$cur") )
  return 0
}

complete -F _tokctl tokctl
`

const zshCompletionScript = `#compdef tokctl

_tokctl() {
  local -a cmds
  cmds=(
    'save:save a token file as a new version'
    'ls:list saved versions'
    'show:show the tokens of a version'
    'rm:delete saved versions'
    'diff:compare two versions'
    'latest:show the newest version, or compare a token file to it'
    'projects:score token consistency against reference projects'
    'export:export the version history as JSON'
    'import:replace the version history with an exported file'
    'clear:delete all saved versions'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-l --local)'{-l,--local}'[show local timestamps]'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '--schema[dump schema]'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--tldr[show tldr page]'
  )

  local -a store
  store=(
  '--store-dir[history directory]:directory:_directories'
  '--s3-bucket[S3 bucket]:bucket'
  '--s3-key[S3 object key]:key'
  '--s3-region[AWS region]:region'
  '--s3-profile[AWS profile]:profile'
  '--ephemeral[in-memory history]'
  '(-p --passphrase)'{-p,--passphrase}'[store passphrase]:passphrase'
  '--seal[encrypt the store]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'tokctl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    save)
      _arguments -C $common $store \
        '(-n --name)'{-n,--name}'[version name]:name' \
        '(-d --description)'{-d,--description}'[version description]:description' \
        '1:token file:_files'
      ;;
    show)
      _arguments -C $common $store \
        '--chop[chop shared key prefix]' \
        '::version:_files'
      ;;
    diff)
      _arguments -C $common $store \
        '--detail[structural delta]' \
        '--pick[choose versions interactively]' \
        '::before:_files' '::after:_files'
      ;;
    latest)
      _arguments -C $common $store \
        '--detail[structural delta]' \
        '::token file:_files'
      ;;
    projects)
      _arguments -C $common $store \
        '*'{-P,--project}'[reference project name=path]:project' \
        '--root[discovery root]:directory:_directories' \
        '--glob[discovery pattern]:pattern' \
        '--differences[list differing values]' \
        '::version:_files'
      ;;
    export)
      _arguments -C $store '(-f --file)'{-f,--file}'[output file]:file:_files'
      ;;
    import)
      _arguments -C $store '1:export file:_files'
      ;;
    clear)
      _arguments -C $store '--force[confirm]'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common '*:file:_files'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _tokctl tokctl
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	w := Writer(cmd)
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		// Try to detect from SHELL or print usage.
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(w, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(w, bashCompletionScript)
		default:
			fmt.Fprintln(ErrWriter(cmd), "usage: tokctl completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "tokctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
