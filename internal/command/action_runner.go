// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/tokctl/internal/attrs"
	"github.com/tfctl/tokctl/internal/log"
)

// ActionRunner[T] encapsulates the common action pattern for subcommands
// that emit rows. It handles the meta lookup, short-circuit checks, attrs
// and output emission, with row production provided by FetchFn.
type ActionRunner[T any] struct {
	CommandName  string
	SchemaType   reflect.Type
	DefaultAttrs []string
	FetchFn      func(context.Context, *cli.Command) ([]T, error)
	// EmitFn renders the rows. Nil means plain JSON rows.
	EmitFn func(any, attrs.AttrList, *cli.Command) error
}

// Run executes the action with the provided context and command.
func (ar *ActionRunner[T]) Run(
	ctx context.Context,
	cmd *cli.Command,
) error {
	m := GetMeta(cmd)
	if len(m.Args) > 1 {
		log.Debugf("Executing action for %v", m.Args[1:])
	}

	if ShortCircuitTLDR(ctx, cmd, ar.CommandName) {
		return nil
	}
	if DumpSchemaIfRequested(cmd, ar.SchemaType) {
		return nil
	}

	al, err := BuildAttrs(cmd, ar.DefaultAttrs...)
	if err != nil {
		return err
	}
	log.Debugf("attrs: %s", al.String())

	results, err := ar.FetchFn(ctx, cmd)
	if err != nil {
		return err
	}

	emit := ar.EmitFn
	if emit == nil {
		emit = EmitJSONSlice
	}
	return emit(results, al, cmd)
}

// NewActionRunner creates an ActionRunner that emits plain JSON rows.
func NewActionRunner[T any](
	commandName string,
	schemaType reflect.Type,
	defaultAttrs []string,
	fetchFn func(context.Context, *cli.Command) ([]T, error),
) *ActionRunner[T] {
	return &ActionRunner[T]{
		CommandName:  commandName,
		SchemaType:   schemaType,
		DefaultAttrs: defaultAttrs,
		FetchFn:      fetchFn,
	}
}
