// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

// Package session pairs the REST and the shell transport of a single device.
package session

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	fgerrors "github.com/fgfleet/fgfleet/errors"
	"github.com/fgfleet/fgfleet/fortios"
	"github.com/fgfleet/fgfleet/shell"
	"github.com/fgfleet/fgfleet/types"
)

// REST is the part of the REST transport used while provisioning credentials.
// It is implemented by *fortios.Client.
type REST interface {
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	SystemGlobal(ctx context.Context) (*fortios.SystemGlobal, error)
	AccessProfile(ctx context.Context, name string) (*fortios.AccessProfile, bool, error)
	APIUser(ctx context.Context, name string) (*fortios.APIUser, bool, error)
}

// Session owns both transports of one device for the duration of its processing.
type Session struct {
	Device *types.Device
	REST   REST
	Shell  shell.Shell

	restOpen  bool
	shellOpen bool
}

// New returns a Session for dev over the given transports. Nothing is opened.
func New(dev *types.Device, rest REST, sh shell.Shell) *Session {
	return &Session{
		Device: dev,
		REST:   rest,
		Shell:  sh,
	}
}

// NewFromConfig builds the transports of dev according to cfg and returns a Session over them.
func NewFromConfig(dev *types.Device, cfg types.RunConfig) (*Session, error) {
	client, err := NewRESTClient(dev, cfg)
	if err != nil {
		return nil, err
	}

	sh, err := shell.New(cfg.ShellDriver, shell.Config{
		Host:     dev.Address,
		Port:     cfg.SSHPort,
		Username: dev.Login,
		Password: dev.Password,
	})
	if err != nil {
		return nil, err
	}

	return New(dev, client, sh), nil
}

// NewRESTClient returns a REST client for dev, authenticated per AuthModeFor.
func NewRESTClient(dev *types.Device, cfg types.RunConfig) (*fortios.Client, error) {
	mode, err := AuthModeFor(dev)
	if err != nil {
		return nil, err
	}

	opts := []fortios.ClientOption{
		fortios.WithPort(cfg.HTTPSPort),
		fortios.WithTimeout(cfg.APITimeout),
		fortios.WithInsecure(cfg.Insecure),
		fortios.WithDebug(cfg.Debug),
	}

	switch mode {
	case types.AuthToken:
		opts = append(opts, fortios.WithToken(dev.Token))
	case types.AuthPassword:
		opts = append(opts, fortios.WithPassword(dev.Login, dev.Password))
	}

	return fortios.NewClient(dev.Address, opts...), nil
}

// AuthModeFor returns the REST authentication mode of dev: token when a token is set,
// password otherwise. A device with neither is an ErrConfiguration.
func AuthModeFor(dev *types.Device) (types.AuthMode, error) {
	return dev.AuthMode()
}

// Open opens the REST session and then the shell session. If either can not be
// established, whatever was opened is closed again and an error is returned.
func (s *Session) Open(ctx context.Context) error {
	if _, err := AuthModeFor(s.Device); err != nil {
		return err
	}

	if !s.Device.HasShellCredentials() {
		return fmt.Errorf("%w: %s: shell transport requires \"login\" and \"password\"",
			fgerrors.ErrConfiguration, s.Device.Key)
	}

	if err := s.REST.Login(ctx); err != nil {
		return transportError(s.Device, "rest", err)
	}
	s.restOpen = true

	if err := s.Shell.Open(ctx); err != nil {
		s.Close(ctx)
		return transportError(s.Device, "shell", err)
	}
	s.shellOpen = true

	log.WithField("device", s.Device.Key).Debug("rest and shell sessions established")

	return nil
}

func transportError(dev *types.Device, transport string, err error) error {
	if errors.Is(err, fgerrors.ErrAuthentication) || errors.Is(err, fgerrors.ErrConnection) {
		return fmt.Errorf("%s: %s: %w", dev.Key, transport, err)
	}

	return fmt.Errorf("%w: %s: %s: %v", fgerrors.ErrConnection, dev.Key, transport, err)
}

// DetectOperatingMode queries the global system settings, stores the resulting
// operating mode on the device and returns it. It must run before any shell
// command is sent, since the mode decides command wrapping.
func (s *Session) DetectOperatingMode(ctx context.Context) (types.OperatingMode, error) {
	g, err := s.REST.SystemGlobal(ctx)
	if err != nil {
		return types.ModeUnknown, err
	}

	mode := types.OperatingModeFromVDOMMode(g.VDOMMode)
	s.Device.OperatingMode = mode

	log.WithField("device", s.Device.Key).Infof("vdom-mode is %q, operating mode %s", g.VDOMMode, mode)

	return mode, nil
}

// Close logs out of the REST session and disconnects the shell. Errors are logged only.
func (s *Session) Close(ctx context.Context) {
	l := log.WithField("device", s.Device.Key)

	if s.restOpen {
		if err := s.REST.Logout(ctx); err != nil {
			l.Debugf("rest logout failed: %v", err)
		}
		s.restOpen = false
	}

	if s.shellOpen {
		if err := s.Shell.Close(); err != nil {
			l.Debugf("shell disconnect failed: %v", err)
		}
		s.shellOpen = false
	}
}
