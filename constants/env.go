// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package constants

const (
	// EnvInventory an env var containing the default inventory file path.
	EnvInventory = "FGFLEET_INVENTORY"

	// EnvShellDriver an env var selecting the shell driver when the flag is not set.
	EnvShellDriver = "FGFLEET_SHELL_DRIVER"
)
