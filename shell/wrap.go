// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package shell

import (
	"strings"

	"github.com/fgfleet/fgfleet/types"
)

const (
	globalContextEnter = "config global"
	contextExit        = "end"
)

// Wrap brackets command with the global context enter and exit commands
// when the device runs multiple contexts. The result depends on mode only.
func Wrap(command string, mode types.OperatingMode) string {
	if mode != types.ModeMultiContext {
		return command
	}

	if !strings.HasSuffix(command, "\n") {
		command += "\n"
	}

	return globalContextEnter + "\n" + command + contextExit + "\n"
}
