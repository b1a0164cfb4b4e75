// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package shell

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"

	fgerrors "github.com/fgfleet/fgfleet/errors"
)

// SSH runs every command block on its own exec channel of a single SSH connection
// and captures the complete standard output of the channel.
type SSH struct {
	cfg    Config
	client *ssh.Client
}

// NewSSH returns an SSH shell for cfg.
func NewSSH(cfg Config) *SSH {
	cfg.setDefaults()
	return &SSH{cfg: cfg}
}

func (s *SSH) clientConfig() *ssh.ClientConfig {
	password := s.cfg.Password

	return &ssh.ClientConfig{
		User: s.cfg.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(password),
			// some firmware releases only offer keyboard-interactive
			ssh.KeyboardInteractive(func(_, _ string, questions []string, _ []bool) ([]string, error) {
				answers := make([]string, len(questions))
				for i := range answers {
					answers[i] = password
				}
				return answers, nil
			}),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), //nolint:gosec // fleet devices are not pinned
		Timeout:         s.cfg.DialTimeout,
	}
}

// Open dials the device, retrying with exponential backoff.
func (s *SSH) Open(ctx context.Context) error {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	config := s.clientConfig()

	op := func() error {
		c, err := dialContext(ctx, addr, config)
		if err != nil {
			log.Debugf("%s: ssh dial failed: %v", addr, err)
			return err
		}
		s.client = c
		return nil
	}

	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), s.cfg.DialAttempts-1), ctx)

	if err := backoff.Retry(op, b); err != nil {
		return fmt.Errorf("%w: %s: ssh: %v", fgerrors.ErrConnection, addr, err)
	}

	return nil
}

func dialContext(ctx context.Context, addr string, config *ssh.ClientConfig) (*ssh.Client, error) {
	type result struct {
		client *ssh.Client
		err    error
	}
	ch := make(chan result, 1)
	go func() {
		client, err := ssh.Dial("tcp", addr, config)
		ch <- result{client: client, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case out := <-ch:
		if out.err != nil && strings.Contains(out.err.Error(), "unable to authenticate") {
			return nil, backoff.Permanent(fmt.Errorf("%w: %v", fgerrors.ErrAuthentication, out.err))
		}
		return out.client, out.err
	}
}

// Run executes command on a new exec channel.
func (s *SSH) Run(ctx context.Context, command string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("%w: %s: ssh session is not open", fgerrors.ErrConnection, s.cfg.Host)
	}

	type result struct {
		out string
		err error
	}
	ch := make(chan result, 1)

	sess, err := s.client.NewSession()
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", fgerrors.ErrConnection, s.cfg.Host, err)
	}
	defer sess.Close()

	go func() {
		var stdout bytes.Buffer
		sess.Stdout = &stdout
		err := sess.Run(command)
		ch <- result{out: stdout.String(), err: err}
	}()

	ctx, cancel := context.WithTimeout(ctx, s.cfg.CommandTimeout)
	defer cancel()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %s: command timeout: %v", fgerrors.ErrConnection, s.cfg.Host, ctx.Err())
	case out := <-ch:
		// the device closes exec channels without an exit status; output is all that matters
		if out.err != nil {
			if _, ok := out.err.(*ssh.ExitMissingError); !ok {
				log.Debugf("%s: command finished with: %v", s.cfg.Host, out.err)
			}
		}
		return out.out, nil
	}
}

// Close closes the SSH connection.
func (s *SSH) Close() error {
	if s.client == nil {
		return nil
	}
	err := s.client.Close()
	s.client = nil
	return err
}
