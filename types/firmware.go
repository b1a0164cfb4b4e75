// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package types

import (
	"fmt"
	"regexp"
	"strings"

	gover "github.com/hashicorp/go-version"

	fgerrors "github.com/fgfleet/fgfleet/errors"
)

// accepted ranges of a requested firmware version, inclusive.
const (
	minMajor = 6
	maxMajor = 7
	minMinor = 0
	maxMinor = 4
	minPatch = 0
	maxPatch = 20
)

var firmwareVersionRe = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// FirmwareVersion is a major.minor.patch firmware release.
type FirmwareVersion struct {
	Major int
	Minor int
	Patch int
}

// ParseFirmwareVersion parses a version as reported by a device, e.g. "v7.2.6".
// No range checks are applied.
func ParseFirmwareVersion(s string) (FirmwareVersion, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	if !firmwareVersionRe.MatchString(s) {
		return FirmwareVersion{}, fmt.Errorf("%w: version %q is not in major.minor.patch form",
			fgerrors.ErrValidation, s)
	}

	v, err := gover.NewVersion(s)
	if err != nil {
		return FirmwareVersion{}, fmt.Errorf("%w: %v", fgerrors.ErrValidation, err)
	}

	seg := v.Segments()

	return FirmwareVersion{Major: seg[0], Minor: seg[1], Patch: seg[2]}, nil
}

// ValidateFirmwareVersion parses a requested version and checks it against the
// supported release ranges.
func ValidateFirmwareVersion(s string) (FirmwareVersion, error) {
	if strings.HasPrefix(strings.TrimSpace(s), "v") {
		return FirmwareVersion{}, fmt.Errorf("%w: version %q must not carry a prefix",
			fgerrors.ErrValidation, s)
	}

	v, err := ParseFirmwareVersion(s)
	if err != nil {
		return FirmwareVersion{}, err
	}

	switch {
	case v.Major < minMajor || v.Major > maxMajor:
		return FirmwareVersion{}, fmt.Errorf("%w: version %q: major must be in range %d-%d",
			fgerrors.ErrValidation, s, minMajor, maxMajor)
	case v.Minor < minMinor || v.Minor > maxMinor:
		return FirmwareVersion{}, fmt.Errorf("%w: version %q: minor must be in range %d-%d",
			fgerrors.ErrValidation, s, minMinor, maxMinor)
	case v.Patch < minPatch || v.Patch > maxPatch:
		return FirmwareVersion{}, fmt.Errorf("%w: version %q: patch must be in range %d-%d",
			fgerrors.ErrValidation, s, minPatch, maxPatch)
	}

	return v, nil
}

func (v FirmwareVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Equal reports whether both versions name the same release.
func (v FirmwareVersion) Equal(o FirmwareVersion) bool {
	return v.semver().Equal(o.semver())
}

// Matches reports whether the given release triple equals v.
func (v FirmwareVersion) Matches(major, minor, patch int) bool {
	return v.Major == major && v.Minor == minor && v.Patch == patch
}

func (v FirmwareVersion) semver() *gover.Version {
	return gover.Must(gover.NewVersion(v.String()))
}
