// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package types

import (
	"time"

	"github.com/fgfleet/fgfleet/constants"
)

// RunConfig holds the settings of one fleet run. It is built once from the command line
// and passed by value to the components, which never modify it.
type RunConfig struct {
	// APITimeout is the default per-call timeout of REST requests.
	APITimeout time.Duration
	// UploadTimeout replaces APITimeout for the firmware upload call.
	UploadTimeout time.Duration
	// ShellDriver selects the shell transport implementation.
	ShellDriver string
	SSHPort     int
	HTTPSPort   int
	// Insecure disables TLS certificate verification of the REST transport.
	Insecure bool
	// Debug enables request/response logging of the transports.
	Debug bool
}

// DefaultRunConfig returns a RunConfig populated with default values.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		APITimeout:    constants.DefaultAPITimeout,
		UploadTimeout: constants.DefaultUploadTimeout,
		ShellDriver:   "ssh",
		SSHPort:       constants.DefaultSSHPort,
		HTTPSPort:     constants.DefaultHTTPSPort,
		Insecure:      true,
	}
}
