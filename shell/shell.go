// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

// Package shell drives the command line of a device over SSH.
package shell

import (
	"context"
	"fmt"
	"time"

	fgerrors "github.com/fgfleet/fgfleet/errors"
)

// Shell driver names.
const (
	DriverSSH     = "ssh"
	DriverScrapli = "scrapli"
)

const (
	defaultDialTimeout    = 10 * time.Second
	defaultCommandTimeout = 60 * time.Second
	defaultDialAttempts   = 3
)

// Shell is a command line session to a single device.
// The shell transport authenticates with login and password only.
type Shell interface {
	// Open establishes the session.
	Open(ctx context.Context) error
	// Run executes a (possibly multi-line) command block and returns its full output.
	Run(ctx context.Context, command string) (string, error)
	// Close tears down the session.
	Close() error
}

// Config holds the connection parameters of a shell session.
type Config struct {
	Host           string
	Port           int
	Username       string
	Password       string
	DialTimeout    time.Duration
	CommandTimeout time.Duration
	// DialAttempts is the number of connection attempts before giving up.
	DialAttempts uint64
}

func (c *Config) setDefaults() {
	if c.Port == 0 {
		c.Port = 22
	}
	if c.DialTimeout == 0 {
		c.DialTimeout = defaultDialTimeout
	}
	if c.CommandTimeout == 0 {
		c.CommandTimeout = defaultCommandTimeout
	}
	if c.DialAttempts == 0 {
		c.DialAttempts = defaultDialAttempts
	}
}

// New returns a Shell implemented by the named driver.
func New(driver string, cfg Config) (Shell, error) {
	if cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("%w: %s: shell transport requires login and password",
			fgerrors.ErrConfiguration, cfg.Host)
	}

	cfg.setDefaults()

	switch driver {
	case DriverSSH, "":
		return NewSSH(cfg), nil
	case DriverScrapli:
		return NewScrapli(cfg), nil
	}

	return nil, fmt.Errorf("%w: unknown shell driver %q, supported drivers: %s, %s",
		fgerrors.ErrIncorrectInput, driver, DriverSSH, DriverScrapli)
}
