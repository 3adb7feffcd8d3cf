// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/tokctl/internal/meta"
	"github.com/tfctl/tokctl/internal/slot"
	"github.com/tfctl/tokctl/internal/store"
	"github.com/tfctl/tokctl/internal/tokens"
)

// withStoreFlags runs fn inside a command carrying the store flags.
func withStoreFlags(t *testing.T, args []string, fn func(context.Context, *cli.Command) error) error {
	t.Helper()
	cmd := &cli.Command{
		Name:     "test",
		Flags:    NewStoreFlags(""),
		Metadata: map[string]any{"meta": meta.Meta{}},
		Action:   fn,
	}
	return cmd.Run(context.Background(), append([]string{"test"}, args...))
}

func TestNewSlot(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name  string
		args  []string
		check func(*testing.T, slot.Slot)
	}{
		{
			name: "ephemeral",
			args: []string{"--ephemeral"},
			check: func(t *testing.T, s slot.Slot) {
				assert.IsType(t, &slot.Memory{}, s)
			},
		},
		{
			name: "file under store-dir",
			args: []string{"--store-dir", dir},
			check: func(t *testing.T, s slot.Slot) {
				f, ok := s.(*slot.File)
				require.True(t, ok)
				assert.Equal(t, dir, f.Dir)
				assert.Equal(t, slot.Key, f.Key)
			},
		},
		{
			name: "passphrase seals",
			args: []string{"--ephemeral", "--passphrase", "hunter2"},
			check: func(t *testing.T, s slot.Slot) {
				sealed, ok := s.(*slot.Sealed)
				require.True(t, ok)
				assert.Equal(t, "hunter2", sealed.Passphrase)
				assert.IsType(t, &slot.Memory{}, sealed.Inner)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TOKCTL_PASSPHRASE", "")
			err := withStoreFlags(t, tt.args, func(ctx context.Context, cmd *cli.Command) error {
				s, err := NewSlot(ctx, cmd)
				require.NoError(t, err)
				tt.check(t, s)
				return nil
			})
			require.NoError(t, err)
		})
	}
}

func TestNewSlotPassphraseFromEnv(t *testing.T) {
	t.Setenv("TOKCTL_PASSPHRASE", "from-env")
	err := withStoreFlags(t, []string{"--ephemeral"}, func(ctx context.Context, cmd *cli.Command) error {
		s, err := NewSlot(ctx, cmd)
		require.NoError(t, err)
		sealed, ok := s.(*slot.Sealed)
		require.True(t, ok)
		assert.Equal(t, "from-env", sealed.Passphrase)
		return nil
	})
	require.NoError(t, err)
}

func TestOpenStore(t *testing.T) {
	t.Setenv("TOKCTL_PASSPHRASE", "")
	dir := t.TempDir()

	// Seed a plain history on disk.
	f, err := slot.NewFile(dir, slot.Key)
	require.NoError(t, err)
	seed := store.New(f)
	seed.Save(tokens.TokenMap{"color.primary": "#336699"}, "seed", "")

	err = withStoreFlags(t, []string{"--store-dir", dir}, func(ctx context.Context, cmd *cli.Command) error {
		st, err := OpenStore(ctx, cmd)
		require.NoError(t, err)
		assert.Equal(t, 1, st.Len())

		// The opened store is kept in meta for the action.
		again, err := storeOf(cmd)
		require.NoError(t, err)
		assert.Same(t, st, again)
		return nil
	})
	require.NoError(t, err)
}

func TestOpenStoreInjected(t *testing.T) {
	injected := store.New(slot.NewMemory())
	cmd := &cli.Command{Metadata: map[string]any{"meta": meta.Meta{Store: injected}}}

	st, err := OpenStore(context.Background(), cmd)
	require.NoError(t, err)
	assert.Same(t, injected, st)
}

func TestOpenStoreSealed(t *testing.T) {
	t.Setenv("TOKCTL_PASSPHRASE", "")
	dir := t.TempDir()

	f, err := slot.NewFile(dir, slot.Key)
	require.NoError(t, err)
	sealed := &slot.Sealed{Inner: f, Passphrase: "hunter2", Iterations: 1000}
	store.New(sealed).Save(tokens.TokenMap{"a": 1.0}, "secret", "")

	tests := []struct {
		name    string
		args    []string
		wantErr string
		wantLen int
	}{
		{name: "no passphrase", args: []string{"--store-dir", dir}, wantErr: "is sealed"},
		{name: "wrong passphrase", args: []string{"--store-dir", dir, "--passphrase", "nope"}, wantErr: "cannot read"},
		{name: "right passphrase", args: []string{"--store-dir", dir, "--passphrase", "hunter2"}, wantLen: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := withStoreFlags(t, tt.args, func(ctx context.Context, cmd *cli.Command) error {
				st, err := OpenStore(ctx, cmd)
				if tt.wantErr != "" {
					assert.ErrorContains(t, err, tt.wantErr)
					return nil
				}
				require.NoError(t, err)
				assert.Equal(t, tt.wantLen, st.Len())
				return nil
			})
			require.NoError(t, err)
		})
	}

	// The sealed history is untouched by the failed opens.
	raw, err := f.Read()
	require.NoError(t, err)
	assert.True(t, slot.IsSealed(raw))
	assert.FileExists(t, filepath.Join(dir, filepath.Base(f.Path)))
}

func TestEphemeralAndBucketConflict(t *testing.T) {
	_, _, err := runApp(t, nil, "ls", "--ephemeral", "--s3-bucket", "b")
	assert.ErrorContains(t, err, "mutually exclusive")
}
