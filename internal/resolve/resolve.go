// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package resolve

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tfctl/tokctl/internal/store"
	"github.com/tfctl/tokctl/internal/tokens"
)

// ErrNotFound is returned for specs that match no version.
var ErrNotFound = errors.New("version not found")

// Resolve takes the stored versions, newest first, plus specs and returns
// the matching versions in spec order. With no specs it returns the newest.
func Resolve(versions []store.TokenVersion, specs ...string) ([]store.TokenVersion, error) {
	var result = []store.TokenVersion{}

	// A spec could be -
	//   ~N      - the N-th most recent, ~0 being the newest.
	//   latest  - same as ~0.
	//   -N, 0   - same as ~N.
	//   file    - a token file, loaded as a synthetic version.
	//   id      - exact id, then exact name, then id prefix.
	if len(specs) == 0 {
		specs = []string{"~0"}
	}

	for _, spec := range specs {
		v, err := resolveSpec(spec, versions)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}

	return result, nil
}

func resolveSpec(spec string, versions []store.TokenVersion) (store.TokenVersion, error) {
	switch {
	case strings.HasPrefix(spec, "~"):
		return resolveRelativeSpec(spec[1:], spec, versions)

	case strings.EqualFold(spec, "latest"):
		return resolveRelativeSpec("0", spec, versions)

	case isNumeric(spec) && !strings.HasPrefix(spec, "+"):
		i, _ := strconv.Atoi(spec)
		if i > 0 {
			// Positive numbers are not positions; they may still be names.
			return resolveIDSpec(spec, versions)
		}
		return resolveRelativeSpec(strconv.Itoa(-i), spec, versions)

	case isFilePath(spec):
		return resolveFileSpec(spec)

	default:
		return resolveIDSpec(spec, versions)
	}
}

// resolveRelativeSpec handles ~N and its aliases.
func resolveRelativeSpec(n string, spec string, versions []store.TokenVersion) (store.TokenVersion, error) {
	index, err := strconv.Atoi(n)
	if err != nil {
		return store.TokenVersion{}, fmt.Errorf("invalid relative spec: %s", spec)
	}

	if index < 0 || index > len(versions)-1 {
		return store.TokenVersion{}, fmt.Errorf("%w: index %d out of range for %d versions", ErrNotFound, index, len(versions))
	}

	return versions[index], nil
}

// resolveFileSpec loads a token file as a version whose id is the path.
func resolveFileSpec(spec string) (store.TokenVersion, error) {
	m, err := tokens.Load(spec)
	if err != nil {
		return store.TokenVersion{}, err
	}

	var ts int64
	if info, err := os.Stat(spec); err == nil {
		ts = info.ModTime().UnixMilli()
	}

	return store.TokenVersion{
		ID:        spec,
		Name:      tokens.NameFromPath(spec),
		Timestamp: ts,
		Tokens:    m,
	}, nil
}

// resolveIDSpec tries exact id, exact name and then a unique id prefix.
func resolveIDSpec(spec string, versions []store.TokenVersion) (store.TokenVersion, error) {
	for _, v := range versions {
		if v.ID == spec {
			return v, nil
		}
	}

	for _, v := range versions {
		if v.Name == spec {
			return v, nil
		}
	}

	var matches []store.TokenVersion
	for _, v := range versions {
		if strings.HasPrefix(v.ID, spec) {
			matches = append(matches, v)
		}
	}
	switch len(matches) {
	case 0:
		return store.TokenVersion{}, fmt.Errorf("%w: %s", ErrNotFound, spec)
	case 1:
		return matches[0], nil
	}

	// An ambiguous prefix names no single version.
	return store.TokenVersion{}, fmt.Errorf("%w: ambiguous version prefix %q matches %d versions",
		ErrNotFound, spec, len(matches))
}

func isNumeric(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

func isFilePath(s string) bool {
	info, err := os.Stat(s)
	return err == nil && !info.IsDir()
}
