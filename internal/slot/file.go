// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package slot

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tfctl/tokctl/internal/log"
)

// File is a slot backed by one file beneath a base directory. The file name is
// derived from the slot key so several keys can share a directory.
type File struct {
	Dir  string
	Key  string
	Path string
}

// DefaultDir resolves the base store directory.
// Precedence:
//  1. TOKCTL_STORE_DIR, if set and non-empty
//  2. os.UserConfigDir()/tokctl
//
// Returns ("", false) if a base cannot be resolved.
func DefaultDir() (string, bool) {
	if d, ok := os.LookupEnv("TOKCTL_STORE_DIR"); ok && d != "" {
		return d, true
	}
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "tokctl"), true
	}
	return "", false
}

// NewFile returns a File slot for key under dir. An empty dir uses
// DefaultDir.
func NewFile(dir string, key string) (*File, error) {
	if dir == "" {
		d, ok := DefaultDir()
		if !ok {
			return nil, errors.New("no store directory could be resolved")
		}
		dir = d
	}
	return &File{
		Dir:  dir,
		Key:  key,
		Path: filepath.Join(dir, encodeKey(key)+".json"),
	}, nil
}

func (f *File) Read() ([]byte, error) {
	b, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, ErrEmpty
	}
	log.Debugf("slot read: key=%s path=%s", f.Key, f.Path)
	return b, nil
}

// Write stores data, creating the directory as needed. The file is replaced
// atomically so a failed write never truncates existing history.
func (f *File) Write(data []byte) error {
	if err := os.MkdirAll(f.Dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	tmp, err := os.CreateTemp(f.Dir, ".tokctl-*")
	if err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil { //nolint:mnd
		tmp.Close()
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}

	log.Debugf("slot write: key=%s bytes=%d", f.Key, len(data))
	return nil
}

func (f *File) Remove() error {
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove store file: %w", err)
	}
	log.Debugf("slot removed: key=%s", f.Key)
	return nil
}

func (f *File) String() string {
	return "file:" + f.Path
}

// encodeKey hashes the clear-text key into a stable file name.
func encodeKey(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}
