// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package tokens

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// touchUntil rewrites path until done is closed, since the watcher may not be
// registered yet when the first write lands.
func touchUntil(t *testing.T, path string, done <-chan struct{}) {
	t.Helper()
	go func() {
		tick := time.NewTicker(50 * time.Millisecond)
		defer tick.Stop()
		for {
			select {
			case <-done:
				return
			case <-tick.C:
				_ = os.WriteFile(path, []byte(`{"color":{"primary":"#000"}}`), 0o600)
			}
		}
	}()
}

func TestWatch_StopsOnCallbackError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tokens.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o600))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	errStop := errors.New("stop")
	done := make(chan struct{})
	defer close(done)
	touchUntil(t, path, done)

	calls := 0
	err := Watch(ctx, path, 10*time.Millisecond, func() error {
		calls++
		m, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "#000", m["color.primary"])
		return errStop
	})

	assert.ErrorIs(t, err, errStop)
	assert.Equal(t, 1, calls)
}

func TestWatch_IgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tokens.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o600))

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	defer close(done)
	touchUntil(t, filepath.Join(dir, "other.json"), done)

	err := Watch(ctx, path, 10*time.Millisecond, func() error {
		t.Error("callback fired for a sibling file")
		return nil
	})
	assert.NoError(t, err)
}

func TestWatch_MissingDir(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "tokens.json"), 0, func() error { return nil })
	assert.ErrorContains(t, err, "failed to watch")
}
