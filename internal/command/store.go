// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/tokctl/internal/log"
	"github.com/tfctl/tokctl/internal/slot"
	"github.com/tfctl/tokctl/internal/store"
)

// OpenStore returns the command's version store, opening and loading it from
// the store flags on first use. A store injected through meta.Meta is used
// as is.
func OpenStore(ctx context.Context, cmd *cli.Command) (*store.Store, error) {
	m := GetMeta(cmd)
	if m.Store != nil {
		return m.Store, nil
	}

	s, err := NewSlot(ctx, cmd)
	if err != nil {
		return nil, err
	}

	// Refuse to run against history we cannot read, since the next save
	// would replace it.
	if err := slot.Probe(s); err != nil {
		return nil, err
	}
	if _, sealed := s.(*slot.Sealed); !sealed {
		if raw, err := s.Read(); err == nil && slot.IsSealed(raw) {
			return nil, fmt.Errorf("%s is sealed: set --passphrase or TOKCTL_PASSPHRASE", s)
		}
	}

	st := store.New(s)
	st.Load()
	log.Debugf("store opened: slot=%s versions=%d", s, st.Len())

	m.Store = st
	if cmd.Metadata == nil {
		cmd.Metadata = map[string]any{}
	}
	cmd.Metadata["meta"] = m

	return st, nil
}

// NewSlot builds the slot selected by the store flags: memory for
// --ephemeral, S3 when a bucket is set, a local file otherwise. A passphrase,
// or --seal, wraps it in a sealed slot.
func NewSlot(ctx context.Context, cmd *cli.Command) (slot.Slot, error) {
	var s slot.Slot

	switch {
	case cmd.Bool("ephemeral"):
		s = slot.NewMemory()

	case cmd.String("s3-bucket") != "":
		var opts []slot.S3Option
		if p := cmd.String("s3-profile"); p != "" {
			opts = append(opts, slot.WithProfile(p))
		}
		if r := cmd.String("s3-region"); r != "" {
			opts = append(opts, slot.WithRegion(r))
		}
		key := cmd.String("s3-key")
		if key == "" {
			key = DefaultS3Key
		}
		s3, err := slot.NewS3(ctx, cmd.String("s3-bucket"), key, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to open s3 store: %w", err)
		}
		s = s3

	default:
		f, err := slot.NewFile(cmd.String("store-dir"), slot.Key)
		if err != nil {
			return nil, fmt.Errorf("failed to open file store: %w", err)
		}
		s = f
	}

	passphrase := cmd.String("passphrase")
	if passphrase == "" && cmd.Bool("seal") {
		p, err := slot.PromptPassphrase()
		if err != nil {
			return nil, err
		}
		passphrase = p
	}
	if passphrase != "" {
		s = &slot.Sealed{Inner: s, Passphrase: passphrase}
	}

	return s, nil
}

// storeOf returns the store opened in Before.
func storeOf(cmd *cli.Command) (*store.Store, error) {
	if st := GetMeta(cmd).Store; st != nil {
		return st, nil
	}
	return nil, errors.New("version store is not open")
}
