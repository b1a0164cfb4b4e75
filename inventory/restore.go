// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package inventory

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/fgfleet/fgfleet/constants"
	fgerrors "github.com/fgfleet/fgfleet/errors"
	"github.com/fgfleet/fgfleet/types"
)

// backupDatePattern matches the date tag written with constants.BackupDateLayout.
const backupDatePattern = `\d{4}-\d{2}-\d{2}-\d{6}_`

// FindRestoreFile returns the configuration file of dev in dir.
//
// A file whose name without extension equals the device name (or key) wins.
// Otherwise only a dated backup of the device is accepted:
// {date}-{time}_{name}[{tags suffix}].conf. More than one dated backup is an
// ErrValidation. Files that merely contain the name, such as "fg-1.conf" for
// device "fg", are never chosen: without a dated backup they make the lookup an
// ErrValidation instead of an ErrFileNotFound.
func FindRestoreFile(dir string, dev *types.Device, tags Tags) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("%w: backup directory %s: %v", fgerrors.ErrFileNotFound, dir, err)
	}

	idents := []string{dev.Name}
	if dev.Key != dev.Name {
		idents = append(idents, dev.Key)
	}

	dated := datedBackupRe(idents, tags)

	var matches, others []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != constants.ConfigFileExt {
			continue
		}

		stem := strings.TrimSuffix(e.Name(), constants.ConfigFileExt)
		p := filepath.Join(dir, e.Name())

		for _, id := range idents {
			if stem == id {
				return p, nil
			}
		}

		if dated.MatchString(stem) {
			matches = append(matches, p)
			continue
		}

		for _, id := range idents {
			if containsDelimited(stem, id) {
				others = append(others, p)
				break
			}
		}
	}

	switch {
	case len(matches) == 1:
		return matches[0], nil
	case len(matches) > 1:
		return "", fmt.Errorf("%w: configuration file for %s is ambiguous: %s", fgerrors.ErrValidation,
			dev.Key, strings.Join(matches, ", "))
	case len(others) > 0:
		return "", fmt.Errorf("%w: no backup named after %s in %s, refusing similar names: %s",
			fgerrors.ErrValidation, dev.Key, dir, strings.Join(others, ", "))
	}

	return "", fmt.Errorf("%w: no configuration file for %s in %s", fgerrors.ErrFileNotFound, dev.Key, dir)
}

// datedBackupRe matches the stem of a dated backup of any of idents, with or without
// the tags suffix.
func datedBackupRe(idents []string, tags Tags) *regexp.Regexp {
	quoted := make([]string, 0, len(idents))
	for _, id := range idents {
		quoted = append(quoted, regexp.QuoteMeta(id))
	}

	pattern := "^" + backupDatePattern + "(?:" + strings.Join(quoted, "|") + ")"
	if s := tags.Suffix(); s != "" {
		pattern += "(?:" + regexp.QuoteMeta(s) + ")?"
	}

	return regexp.MustCompile(pattern + "$")
}

// containsDelimited reports whether id occurs in s with no letter or digit
// directly before or after it.
func containsDelimited(s, id string) bool {
	if id == "" {
		return false
	}

	for off := 0; off <= len(s)-len(id); {
		i := strings.Index(s[off:], id)
		if i < 0 {
			return false
		}
		i += off

		end := i + len(id)
		if (i == 0 || !isAlnum(s[i-1])) && (end == len(s) || !isAlnum(s[end])) {
			return true
		}

		off = i + 1
	}

	return false
}

func isAlnum(b byte) bool {
	r := rune(b)
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
