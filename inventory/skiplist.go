// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package inventory

import (
	"fmt"
	"strings"

	fgerrors "github.com/fgfleet/fgfleet/errors"
	"github.com/fgfleet/fgfleet/utils"
)

// SkipList holds words; devices whose key contains any of them are not processed.
type SkipList []string

// LoadSkipList reads a skip list file with one word per line.
// Blank lines and lines starting with # are ignored.
func LoadSkipList(path string) (SkipList, error) {
	if path == "" {
		return nil, nil
	}

	p, err := utils.ResolvePath(path)
	if err != nil {
		return nil, err
	}

	if !utils.FileExists(p) {
		return nil, fmt.Errorf("%w: skip list %s", fgerrors.ErrFileNotFound, p)
	}

	return utils.FileLines(p, "#")
}

// Match returns the first word of the list contained in key.
func (s SkipList) Match(key string) (string, bool) {
	for _, w := range s {
		if w != "" && strings.Contains(key, w) {
			return w, true
		}
	}
	return "", false
}
