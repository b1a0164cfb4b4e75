// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package types

import (
	"fmt"
	"strings"

	"github.com/fgfleet/fgfleet/constants"
	fgerrors "github.com/fgfleet/fgfleet/errors"
)

// OperatingMode is the configuration context mode of a device.
// It is discovered over the REST transport and never configured.
type OperatingMode string

const (
	ModeUnknown       OperatingMode = ""
	ModeSingleContext OperatingMode = "single-context"
	ModeMultiContext  OperatingMode = "multi-context"
)

// OperatingModeFromVDOMMode maps the vdom-mode attribute of the global system settings
// to an OperatingMode. Anything other than "no-vdom" runs multiple contexts.
func OperatingModeFromVDOMMode(vdomMode string) OperatingMode {
	if strings.TrimSpace(vdomMode) == "no-vdom" {
		return ModeSingleContext
	}

	return ModeMultiContext
}

// AuthMode is the REST authentication mode of a device session.
type AuthMode string

const (
	AuthPassword AuthMode = "password"
	AuthToken    AuthMode = "token"
)

// DeviceDefinition is the inventory representation of a device.
type DeviceDefinition struct {
	IP       string `yaml:"ip,omitempty" json:"ip,omitempty"`
	Name     string `yaml:"name,omitempty" json:"name,omitempty"`
	Login    string `yaml:"login,omitempty" json:"login,omitempty"`
	Password string `yaml:"password,omitempty" json:"password,omitempty"`
	// APIKey is the attribute name used by existing inventories for the token.
	APIKey string   `yaml:"apikey,omitempty" json:"apikey,omitempty"`
	Token  string   `yaml:"token,omitempty" json:"token,omitempty"`
	VDOMs  []string `yaml:"vdoms,omitempty" json:"vdoms,omitempty"`
}

// Device describes a single managed appliance for the duration of a run.
type Device struct {
	// Key is the inventory key of the device, unique within a run.
	Key string
	// Name is used for artifact naming, defaults to Key.
	Name     string
	Address  string
	Login    string
	Password string
	// Token takes precedence over Password for REST authentication.
	Token         string
	OperatingMode OperatingMode
	VDOMs         []string
}

// NewDevice validates a device definition and returns the Device built from it.
func NewDevice(key string, def *DeviceDefinition) (*Device, error) {
	if def == nil {
		return nil, fmt.Errorf("%w: device %q has no definition", fgerrors.ErrConfiguration, key)
	}

	d := &Device{
		Key:      key,
		Name:     def.Name,
		Address:  strings.TrimSpace(def.IP),
		Login:    def.Login,
		Password: def.Password,
		Token:    strings.TrimSpace(def.APIKey),
		VDOMs:    def.VDOMs,
	}

	if d.Token == "" {
		d.Token = strings.TrimSpace(def.Token)
	}

	if d.Name == "" {
		d.Name = key
	}

	if len(d.VDOMs) == 0 {
		d.VDOMs = []string{constants.DefaultVDOM}
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate checks the invariants of the descriptor.
func (d *Device) Validate() error {
	if d.Key == "" {
		return fmt.Errorf("%w: device key is empty", fgerrors.ErrConfiguration)
	}

	if d.Address == "" {
		return fmt.Errorf("%w: %q: \"ip\" is not defined", fgerrors.ErrConfiguration, d.Key)
	}

	if d.Password == "" && d.Token == "" {
		return fmt.Errorf("%w: %q: neither \"password\" nor \"apikey\" is defined",
			fgerrors.ErrConfiguration, d.Key)
	}

	if d.Password != "" && d.Login == "" {
		return fmt.Errorf("%w: %q: \"password\" is defined without \"login\"",
			fgerrors.ErrConfiguration, d.Key)
	}

	return nil
}

// AuthMode resolves the REST authentication mode. A token always wins.
func (d *Device) AuthMode() (AuthMode, error) {
	switch {
	case d.Token != "":
		return AuthToken, nil
	case d.Password != "":
		return AuthPassword, nil
	}

	return "", fmt.Errorf("%w: %q: no password or token available for REST authentication",
		fgerrors.ErrConfiguration, d.Key)
}

// HasShellCredentials reports whether the device can be reached over the shell transport.
// The shell transport only authenticates with login and password.
func (d *Device) HasShellCredentials() bool {
	return d.Login != "" && d.Password != ""
}

func (d *Device) String() string {
	return fmt.Sprintf("%s (%s)", d.Key, d.Address)
}
