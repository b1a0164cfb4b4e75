// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package utils

import (
	"strings"
	"unicode"

	"golang.org/x/term"
)

// IsTerminal reports whether fd is an interactive terminal.
func IsTerminal(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// StripNonPrintChars drops the characters of s a terminal would not print,
// such as the escape sequences of arrow keys in an operator's answer.
func StripNonPrintChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, s)
}
