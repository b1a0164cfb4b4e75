// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package shell

import (
	"fmt"
	"strings"

	"github.com/fgfleet/fgfleet/constants"
	fgerrors "github.com/fgfleet/fgfleet/errors"
	"github.com/fgfleet/fgfleet/types"
)

// tokenLineOffset returns the distance between the marker line and the line carrying
// the token. The global context bracket echoes one extra line in multi-context mode.
func tokenLineOffset(mode types.OperatingMode) int {
	if mode == types.ModeMultiContext {
		return 2
	}
	return 1
}

// ExtractToken returns the API token from the output of the key generation command.
//
// The token is the last whitespace separated field of the line found at a fixed,
// mode dependent offset below the first line containing the key marker.
// A missing marker is an ErrParse, anything other than a token of
// exactly constants.APIKeyLength characters is an ErrValidation.
func ExtractToken(output string, mode types.OperatingMode) (string, error) {
	lines := strings.Split(strings.ReplaceAll(output, "\r\n", "\n"), "\n")

	marker := -1
	for i, l := range lines {
		if strings.Contains(l, constants.APIKeyMarker) {
			marker = i
			break
		}
	}

	if marker < 0 {
		return "", fmt.Errorf("%w: marker %q not found in command output",
			fgerrors.ErrParse, constants.APIKeyMarker)
	}

	idx := marker + tokenLineOffset(mode)
	if idx >= len(lines) {
		return "", fmt.Errorf("%w: no token line %d lines below the marker",
			fgerrors.ErrValidation, tokenLineOffset(mode))
	}

	fields := strings.Fields(lines[idx])
	if len(fields) == 0 {
		return "", fmt.Errorf("%w: token line is empty", fgerrors.ErrValidation)
	}

	token := fields[len(fields)-1]
	if len(token) != constants.APIKeyLength {
		return "", fmt.Errorf("%w: token has %d characters, expected %d",
			fgerrors.ErrValidation, len(token), constants.APIKeyLength)
	}

	return token, nil
}
