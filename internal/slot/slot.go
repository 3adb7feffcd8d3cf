// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package slot

import (
	"errors"
	"fmt"
)

// Key is the namespaced name of the version history slot.
const Key = "tokctl:token-versions"

// ErrEmpty is returned by Read when nothing has been stored yet.
var ErrEmpty = errors.New("slot is empty")

// Slot stores one opaque document.
type Slot interface {
	// Read returns the stored document or ErrEmpty.
	Read() ([]byte, error)
	// Write replaces the stored document.
	Write(data []byte) error
	// Remove deletes the stored document. Removing an empty slot is not an
	// error.
	Remove() error
	String() string
}

// Probe checks that s can be read. An empty slot is fine; anything else that
// stops a read (bad credentials, wrong passphrase, unreachable bucket) is
// returned so callers can refuse to start rather than overwrite history they
// could not see.
func Probe(s Slot) error {
	if _, err := s.Read(); err != nil && !errors.Is(err, ErrEmpty) {
		return fmt.Errorf("cannot read %s: %w", s, err)
	}
	return nil
}

// Memory is an in-process slot.
type Memory struct {
	data []byte
}

// NewMemory returns an empty Memory slot, optionally seeded with data.
func NewMemory(seed ...[]byte) *Memory {
	m := &Memory{}
	if len(seed) > 0 && seed[0] != nil {
		m.data = append([]byte(nil), seed[0]...)
	}
	return m
}

func (m *Memory) Read() ([]byte, error) {
	if m.data == nil {
		return nil, ErrEmpty
	}
	return append([]byte(nil), m.data...), nil
}

func (m *Memory) Write(data []byte) error {
	m.data = append([]byte{}, data...)
	return nil
}

func (m *Memory) Remove() error {
	m.data = nil
	return nil
}

func (m *Memory) String() string {
	return "memory"
}
