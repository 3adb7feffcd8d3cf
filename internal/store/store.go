// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/tfctl/tokctl/internal/log"
	"github.com/tfctl/tokctl/internal/slot"
	"github.com/tfctl/tokctl/internal/tokens"
)

// MaxVersions is the history capacity. Saving past it evicts the oldest
// version by insertion order.
const MaxVersions = 50

// ErrInvalidFormat is returned by Import for data that is not a version list.
var ErrInvalidFormat = errors.New("invalid version data format")

// TokenVersion is one saved snapshot. It is never mutated after creation.
type TokenVersion struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Timestamp   int64           `json:"timestamp"`
	Tokens      tokens.TokenMap `json:"tokens"`
	Description string          `json:"description,omitempty"`
}

// Time returns the snapshot time.
func (v TokenVersion) Time() time.Time {
	return time.UnixMilli(v.Timestamp)
}

// Store owns the version list. It is not safe for concurrent use.
type Store struct {
	slot     slot.Slot
	versions []TokenVersion
	now      func() time.Time

	// lastMillis and seq make ids unique within one millisecond.
	lastMillis int64
	seq        int
}

// Option customizes a Store.
type Option func(*Store)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns an empty store backed by s. Call Load to restore history.
func New(s slot.Slot, opts ...Option) *Store {
	st := &Store{slot: s, now: time.Now}
	for _, opt := range opts {
		opt(st)
	}
	return st
}

// Load replaces the in-memory list with what the slot holds. Absent or
// malformed data leaves the store empty.
func (s *Store) Load() {
	s.versions = nil

	data, err := s.slot.Read()
	if errors.Is(err, slot.ErrEmpty) {
		log.Debugf("store load: %s is empty", s.slot)
		return
	}
	if err != nil {
		log.WithError(err).Warnf("store load: %s unreadable, starting empty", s.slot)
		return
	}

	versions, err := decode(data)
	if err != nil {
		log.WithError(err).Warnf("store load: %s is malformed, starting empty", s.slot)
		return
	}
	s.versions = trim(versions)
	log.Debugf("store load: %d versions from %s", len(s.versions), s.slot)
}

// Save snapshots m and appends it to the history.
func (s *Store) Save(m tokens.TokenMap, name string, description string) TokenVersion {
	if name == "" {
		name = fmt.Sprintf("Version %d", len(s.versions)+1)
	}

	now := s.now().UnixMilli()
	v := TokenVersion{
		ID:          s.nextID(now),
		Name:        name,
		Timestamp:   now,
		Tokens:      tokens.Clone(m),
		Description: description,
	}

	s.versions = append(s.versions, v)
	if len(s.versions) > MaxVersions {
		log.Debugf("store save: evicting %s", s.versions[0].ID)
		s.versions = s.versions[1:]
	}
	s.persist()

	return v
}

// Versions returns a copy of the history, newest first. Versions with equal
// timestamps keep their insertion order.
func (s *Store) Versions() []TokenVersion {
	out := make([]TokenVersion, len(s.versions))
	copy(out, s.versions)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp > out[j].Timestamp
	})
	return out
}

// Version looks up a version by id.
func (s *Store) Version(id string) (TokenVersion, bool) {
	for _, v := range s.versions {
		if v.ID == id {
			return v, true
		}
	}
	return TokenVersion{}, false
}

// Latest returns the most recently inserted version.
func (s *Store) Latest() (TokenVersion, bool) {
	if len(s.versions) == 0 {
		return TokenVersion{}, false
	}
	return s.versions[len(s.versions)-1], true
}

// Len is the number of stored versions.
func (s *Store) Len() int {
	return len(s.versions)
}

// Delete removes the version with id. The store is persisted either way.
func (s *Store) Delete(id string) {
	kept := s.versions[:0:0]
	for _, v := range s.versions {
		if v.ID != id {
			kept = append(kept, v)
		}
	}
	s.versions = kept
	s.persist()
}

// Export renders the history, in insertion order, as indented JSON.
func (s *Store) Export() (string, error) {
	versions := s.versions
	if versions == nil {
		versions = []TokenVersion{}
	}
	b, err := json.MarshalIndent(versions, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to export versions: %w", err)
	}
	return string(b), nil
}

// Import replaces the history with data, a JSON array as produced by Export.
// On error the current history is left untouched.
func (s *Store) Import(data string) error {
	versions, err := decode([]byte(data))
	if err != nil {
		log.Debugf("store import: %v", err)
		return ErrInvalidFormat
	}

	for i := range versions {
		versions[i].Tokens = tokens.Clone(versions[i].Tokens)
	}

	s.versions = trim(versions)
	s.persist()
	return nil
}

// Clear empties the history and removes the persisted slot.
func (s *Store) Clear() {
	s.versions = nil
	if err := s.slot.Remove(); err != nil {
		log.WithError(err).Warnf("store clear: failed to remove %s", s.slot)
	}
}

func (s *Store) persist() {
	versions := s.versions
	if versions == nil {
		versions = []TokenVersion{}
	}

	b, err := json.Marshal(versions)
	if err != nil {
		log.WithError(err).Warn("store persist: failed to encode versions")
		return
	}
	if err := s.slot.Write(b); err != nil {
		log.WithError(err).Warnf("store persist: failed to write %s", s.slot)
	}
}

func (s *Store) nextID(millis int64) string {
	if millis == s.lastMillis {
		s.seq++
	} else {
		s.lastMillis = millis
		s.seq = 0
	}

	for {
		id := fmt.Sprintf("version-%d-%d", millis, s.seq)
		if _, taken := s.Version(id); !taken {
			return id
		}
		s.seq++
	}
}

// decode parses a JSON version list. null and non-arrays are rejected.
func decode(data []byte) ([]TokenVersion, error) {
	var versions []TokenVersion
	if err := json.Unmarshal(data, &versions); err != nil {
		return nil, err
	}
	if versions == nil {
		return nil, errors.New("version list is null")
	}
	return versions, nil
}

// trim keeps the newest MaxVersions by insertion order.
func trim(versions []TokenVersion) []TokenVersion {
	if n := len(versions); n > MaxVersions {
		log.Warnf("store: %d versions exceed capacity, keeping the newest %d", n, MaxVersions)
		return versions[n-MaxVersions:]
	}
	return versions
}
