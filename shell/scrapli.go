// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package shell

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/scrapli/scrapligo/driver/generic"
	"github.com/scrapli/scrapligo/driver/options"
	scraplilogging "github.com/scrapli/scrapligo/logging"
	"github.com/scrapli/scrapligo/transport"
	"github.com/scrapli/scrapligo/util"
	log "github.com/sirupsen/logrus"

	fgerrors "github.com/fgfleet/fgfleet/errors"
)

// fortiOSPromptPattern matches the CLI prompt in both the top level ("FGT01 # ")
// and inside configuration blocks ("FGT01 (api-user) # ").
var fortiOSPromptPattern = regexp.MustCompile(`(?im)^[\w.\-]{1,35}( \([\w.\-]+\))? [#$]\s?$`)

// Scrapli drives an interactive CLI session with scrapligo, sending a command
// block line by line and stitching every line and its output back together.
type Scrapli struct {
	cfg    Config
	driver *generic.Driver
}

// NewScrapli returns a scrapligo backed shell for cfg.
func NewScrapli(cfg Config) *Scrapli {
	cfg.setDefaults()
	return &Scrapli{cfg: cfg}
}

// Open opens the interactive session. The dial and login are bounded by the
// configured dial timeout.
func (s *Scrapli) Open(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.DialTimeout)
	defer cancel()

	li, err := scraplilogging.NewInstance(
		scraplilogging.WithLevel("debug"),
		scraplilogging.WithLogger(log.Debugln))
	if err != nil {
		return err
	}

	opts := []util.Option{
		options.WithAuthNoStrictKey(),
		options.WithAuthUsername(s.cfg.Username),
		options.WithAuthPassword(s.cfg.Password),
		options.WithPort(s.cfg.Port),
		options.WithTransportType(transport.StandardTransport),
		options.WithTimeoutOps(s.cfg.CommandTimeout),
		options.WithPromptPattern(fortiOSPromptPattern),
		options.WithLogger(li),
	}

	d, err := generic.NewDriver(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", fgerrors.ErrConnection, s.cfg.Host, err)
	}

	done := make(chan error, 1)
	go func() { done <- d.Open() }()

	select {
	case <-ctx.Done():
		go d.Close() //nolint:errcheck
		return fmt.Errorf("%w: %s: %v", fgerrors.ErrConnection, s.cfg.Host, ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("%w: %s: %v", fgerrors.ErrConnection, s.cfg.Host, err)
		}
	}

	s.driver = d

	return nil
}

// Run sends every non-empty line of command and returns the combined output.
func (s *Scrapli) Run(ctx context.Context, command string) (string, error) {
	if s.driver == nil {
		return "", fmt.Errorf("%w: %s: scrapli session is not open", fgerrors.ErrConnection, s.cfg.Host)
	}

	var lines []string
	for _, l := range strings.Split(command, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	mr, err := s.driver.SendCommands(lines)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", fgerrors.ErrConnection, s.cfg.Host, err)
	}

	if mr.Failed != nil {
		log.Debugf("%s: some commands reported failures: %v", s.cfg.Host, mr.Failed)
	}

	var sb strings.Builder
	for _, r := range mr.Responses {
		sb.WriteString(r.Input)
		sb.WriteString("\n")
		sb.WriteString(r.Result)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// Close closes the interactive session.
func (s *Scrapli) Close() error {
	if s.driver == nil {
		return nil
	}
	err := s.driver.Close()
	s.driver = nil
	return err
}
