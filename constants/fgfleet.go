// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package constants

import "time"

const (
	FGFleet = "fgfleet"

	// DefaultAPITimeout is the per-call timeout of the REST transport.
	DefaultAPITimeout = 30 * time.Second
	// DefaultUploadTimeout is used for the single firmware upload call.
	DefaultUploadTimeout = 600 * time.Second

	DefaultSSHPort   = 22
	DefaultHTTPSPort = 443

	// SuperAdminProfile is the built-in maximal access profile; it can not be deleted
	// on the device and is therefore never checked or created.
	SuperAdminProfile = "super_admin"
	DefaultVDOM       = "root"

	// APIKeyLength is the length of a generated REST API token.
	APIKeyLength = 30
	// APIKeyMarker precedes the token in the output of the key generation command.
	APIKeyMarker = "New API key:"

	// ConfigMarker is the leading marker of a valid configuration backup.
	ConfigMarker = "#config-version"
	// ConfigFileExt is the extension of configuration backup files.
	ConfigFileExt = ".conf"
	// BackupDateLayout is the time layout of the date tag of backup files and directories.
	BackupDateLayout = "2006-01-02-150405"

	// OrigFileSuffix is appended to the inventory file copy kept before it is rewritten.
	OrigFileSuffix = ".orig"
)

const (
	NotApplicable = "N/A"
)

const (
	FormatJSON  = "json"
	FormatTable = "table"
)

const (
	PermissionsFileDefault = 0o644
	PermissionsDirDefault  = 0o755
	PermissionsSecretFile  = 0o600
)
