// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package fortios

import (
	"context"
	"fmt"
	"net/url"

	fgerrors "github.com/fgfleet/fgfleet/errors"
)

// API paths relative to /api/v2.
const (
	PathSystemGlobal    = "cmdb/system/global"
	PathAccessProfile   = "cmdb/system/accprofile"
	PathAPIUser         = "cmdb/system/api-user"
	PathSystemStatus    = "monitor/system/status"
	PathConfigBackup    = "monitor/system/config/backup"
	PathConfigRestore   = "monitor/system/config/restore"
	PathFirmware        = "monitor/system/firmware"
	PathFirmwareUpgrade = "monitor/system/firmware/upgrade"
)

// SystemGlobal holds the global system settings relevant to fgfleet.
type SystemGlobal struct {
	Hostname string `json:"hostname"`
	VDOMMode string `json:"vdom-mode"`
}

// AccessProfile is an access profile as returned by the cmdb endpoint.
type AccessProfile struct {
	Name   string `json:"name"`
	Scope  string `json:"scope,omitempty"`
	Sysgrp string `json:"sysgrp,omitempty"`
}

// VDOMRef references a vdom by name.
type VDOMRef struct {
	Name string `json:"name"`
}

// APIUser is an api-user as returned by the cmdb endpoint.
type APIUser struct {
	Name       string    `json:"name"`
	AccProfile string    `json:"accprofile"`
	VDOM       []VDOMRef `json:"vdom"`
}

// FirmwareImage describes a firmware release known to a device.
type FirmwareImage struct {
	ID       string `json:"id,omitempty"`
	Version  string `json:"version"`
	Major    int    `json:"major"`
	Minor    int    `json:"minor"`
	Patch    int    `json:"patch"`
	Build    int    `json:"build,omitempty"`
	Platform string `json:"platform-id,omitempty"`
}

// FirmwareInfo holds the running firmware and the catalog of images available for upgrade.
type FirmwareInfo struct {
	Current   FirmwareImage   `json:"current"`
	Available []FirmwareImage `json:"available"`
}

// SystemGlobal retrieves the global system settings.
func (c *Client) SystemGlobal(ctx context.Context) (*SystemGlobal, error) {
	g := &SystemGlobal{}

	resp, err := c.Get(ctx, PathSystemGlobal, nil, g)
	if err != nil {
		return nil, err
	}

	if !resp.OK() {
		return nil, fmt.Errorf("%w: %s: get %s: %s", fgerrors.ErrRemoteOperation, c.host,
			PathSystemGlobal, resp.Reason())
	}

	return g, nil
}

// AccessProfile looks up an access profile by name. The boolean result is false
// if the profile does not exist.
func (c *Client) AccessProfile(ctx context.Context, name string) (*AccessProfile, bool, error) {
	var profiles []AccessProfile

	resp, err := c.Get(ctx, PathAccessProfile+"/"+url.PathEscape(name), nil, &profiles)
	if err != nil {
		return nil, false, err
	}

	switch {
	case resp.NotFound():
		return nil, false, nil
	case !resp.OK():
		return nil, false, fmt.Errorf("%w: %s: get access profile %q: %s", fgerrors.ErrRemoteOperation,
			c.host, name, resp.Reason())
	}

	for i := range profiles {
		if profiles[i].Name == name {
			return &profiles[i], true, nil
		}
	}

	return nil, false, nil
}

// APIUser looks up an api-user by name. The boolean result is false
// if the user does not exist.
func (c *Client) APIUser(ctx context.Context, name string) (*APIUser, bool, error) {
	var users []APIUser

	resp, err := c.Get(ctx, PathAPIUser+"/"+url.PathEscape(name), nil, &users)
	if err != nil {
		return nil, false, err
	}

	switch {
	case resp.NotFound():
		return nil, false, nil
	case !resp.OK():
		return nil, false, fmt.Errorf("%w: %s: get api-user %q: %s", fgerrors.ErrRemoteOperation,
			c.host, name, resp.Reason())
	}

	for i := range users {
		if users[i].Name == name {
			return &users[i], true, nil
		}
	}

	return nil, false, nil
}

// SystemStatus issues the lightweight authenticated status read.
func (c *Client) SystemStatus(ctx context.Context) (*Response, error) {
	return c.Get(ctx, PathSystemStatus, nil, nil)
}

// Firmware retrieves the running firmware and the images available to the device.
func (c *Client) Firmware(ctx context.Context) (*FirmwareInfo, error) {
	fi := &FirmwareInfo{}

	resp, err := c.Get(ctx, PathFirmware, nil, fi)
	if err != nil {
		return nil, err
	}

	if !resp.OK() {
		return nil, fmt.Errorf("%w: %s: get %s: %s", fgerrors.ErrRemoteOperation, c.host,
			PathFirmware, resp.Reason())
	}

	return fi, nil
}
