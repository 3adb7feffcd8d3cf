// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

// DefaultS3Key is the object key used when only a bucket is given.
const DefaultS3Key = "tokctl/token-versions.json"

var (
	schemaFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "schema",
		Usage:       "dump the schema",
		HideDefault: true,
	}

	tldrFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}
)

// NewGlobalFlags returns the output flags every reporting command shares.
// params[0] is the command namespace and params[1] the config file; when both
// are given, attrs, output and sort may also come from the config file, with
// "<ns>.<flag>" preferred over "<flag>".
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	attrsFlag := &cli.StringFlag{
		Name:    "attrs",
		Aliases: []string{"a"},
		Usage:   "comma-separated list of attributes to include in results",
	}
	outputFlag := &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output format",
		Value:   "text",
		Validator: func(value string) error {
			return FlagValidators(value, OutputValidator)
		},
	}
	sortFlag := &cli.StringFlag{
		Name:    "sort",
		Aliases: []string{"s"},
		Usage:   "comma-separated list of attributes to sort the results by",
	}

	if len(params) == 2 && params[1] != "" {
		attrsFlag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], attrsFlag)
		outputFlag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], outputFlag)
		sortFlag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], sortFlag)
	}

	flags = []cli.Flag{
		attrsFlag,
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("TOKCTL_FILTER"),
			),
		},
		&cli.BoolFlag{
			Name:    "local",
			Aliases: []string{"l"},
			Usage:   "show local timestamps",
			Value:   false,
		},
		outputFlag,
		sortFlag,
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
	}

	return
}

// NewStoreFlags returns the flags that select and unlock the version store.
// Values may come from the environment or from the store section of the
// config file at cfgFile:
//
//	store:
//	  dir: /srv/tokctl
//	  seal: true
//	  s3:
//	    bucket: design-system-history
//	    key: web/token-versions.json
//	    region: us-east-2
//	    profile: design
func NewStoreFlags(cfgFile string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "store-dir",
			Usage:   "directory holding the version history file",
			Sources: configChain(cfgFile, "store.dir", cli.EnvVar("TOKCTL_STORE_DIR")),
		},
		&cli.StringFlag{
			Name:    "s3-bucket",
			Usage:   "keep the version history in this S3 bucket",
			Sources: configChain(cfgFile, "store.s3.bucket", cli.EnvVar("TOKCTL_S3_BUCKET")),
		},
		&cli.StringFlag{
			Name:    "s3-key",
			Usage:   "object key of the version history in --s3-bucket",
			Value:   DefaultS3Key,
			Sources: configChain(cfgFile, "store.s3.key", cli.EnvVar("TOKCTL_S3_KEY")),
		},
		&cli.StringFlag{
			Name:  "s3-region",
			Usage: "AWS region of --s3-bucket",
			Sources: configChain(cfgFile, "store.s3.region",
				cli.EnvVar("TOKCTL_S3_REGION"), cli.EnvVar("AWS_REGION")),
		},
		&cli.StringFlag{
			Name:  "s3-profile",
			Usage: "AWS shared config profile for --s3-bucket",
			Sources: configChain(cfgFile, "store.s3.profile",
				cli.EnvVar("TOKCTL_S3_PROFILE"), cli.EnvVar("AWS_PROFILE")),
		},
		&cli.BoolFlag{
			Name:  "ephemeral",
			Usage: "keep history in memory for this run only",
			Value: false,
		},
		&cli.StringFlag{
			Name:    "passphrase",
			Aliases: []string{"p"},
			Usage:   "passphrase of a sealed store",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("TOKCTL_PASSPHRASE"),
			),
		},
		&cli.BoolFlag{
			Name:    "seal",
			Usage:   "encrypt the store, prompting for a passphrase if none is set",
			Sources: configChain(cfgFile, "store.seal", cli.EnvVar("TOKCTL_SEAL")),
		},
	}
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}

// configChain builds a source chain of the given sources followed by key in
// the config file, if there is one.
func configChain(path string, key string, sources ...cli.ValueSource) cli.ValueSourceChain {
	chain := cli.NewValueSourceChain(sources...)
	if path != "" {
		chain.Chain = append(chain.Chain, yaml.YAML(key, altsrc.StringSourcer(path)))
	}
	return chain
}

// pathHas reports whether target is an executable on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
