// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package slot

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenSlot fails every read with a fixed error.
type brokenSlot struct{ err error }

func (b brokenSlot) Read() ([]byte, error) { return nil, b.err }
func (b brokenSlot) Write([]byte) error    { return b.err }
func (b brokenSlot) Remove() error         { return b.err }
func (b brokenSlot) String() string        { return "broken" }

func TestMemory(t *testing.T) {
	t.Parallel()
	m := NewMemory()

	_, err := m.Read()
	assert.ErrorIs(t, err, ErrEmpty)

	require.NoError(t, m.Write([]byte(`[]`)))
	got, err := m.Read()
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)

	// Callers mutating the returned slice must not reach the stored copy.
	got[0] = 'x'
	again, _ := m.Read()
	assert.Equal(t, []byte(`[]`), again)

	require.NoError(t, m.Remove())
	_, err = m.Read()
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestNewMemorySeeded(t *testing.T) {
	t.Parallel()
	m := NewMemory([]byte(`[1]`))
	got, err := m.Read()
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(got))
	assert.Equal(t, "memory", m.String())
}

func TestProbe(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		slot    Slot
		wantErr bool
	}{
		{"empty", NewMemory(), false},
		{"populated", NewMemory([]byte(`[]`)), false},
		{"broken", brokenSlot{err: errors.New("boom")}, true},
		{"broken empty", brokenSlot{err: ErrEmpty}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := Probe(tt.slot)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "cannot read broken")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
