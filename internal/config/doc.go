// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for tokctl's user
// configuration. The configuration is a YAML document located via
// TOKCTL_CFG_FILE or in the user's configuration directory, typically:
//   - Linux: $XDG_CONFIG_HOME/tokctl.yaml or $HOME/.config/tokctl.yaml
//   - macOS: $HOME/Library/Application Support/tokctl.yaml
//   - Windows: %APPDATA%/tokctl.yaml
//
// A typical file:
//
//	store:
//	  dir: ~/.local/share/tokctl
//	colors:
//	  title: "#f6be00"
//	projects:
//	  marketing: ../marketing/tokens.json
//	diff:
//	  output: json
package config
