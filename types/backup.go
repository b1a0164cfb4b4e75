// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package types

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/fgfleet/fgfleet/constants"
	fgerrors "github.com/fgfleet/fgfleet/errors"
)

// BackupArtifact names a configuration backup file:
// {Dir}/{DateTag}{DeviceName}{Tag}.conf.
type BackupArtifact struct {
	Dir        string
	DateTag    string
	DeviceName string
	Tag        string
}

// FileName returns the base name of the backup file.
func (b *BackupArtifact) FileName() string {
	return b.DateTag + b.DeviceName + b.Tag + constants.ConfigFileExt
}

// Path returns the full path of the backup file.
func (b *BackupArtifact) Path() string {
	return filepath.Join(b.Dir, b.FileName())
}

// ValidateConfig checks that content looks like an exported configuration.
func ValidateConfig(content []byte) error {
	if !bytes.HasPrefix(content, []byte(constants.ConfigMarker)) {
		return fmt.Errorf("%w: backup content does not start with %q, file may not be a valid config",
			fgerrors.ErrValidation, constants.ConfigMarker)
	}

	return nil
}
