// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

// Package fortigate implements the fleet operations carried out over the REST API:
// login, configuration backup and restore, and firmware upgrade.
package fortigate

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"

	"github.com/fgfleet/fgfleet/constants"
	fgerrors "github.com/fgfleet/fgfleet/errors"
	"github.com/fgfleet/fgfleet/fortios"
	"github.com/fgfleet/fgfleet/types"
)

// Adapter performs REST operations on a single device.
type Adapter struct {
	Device *types.Device
	client *fortios.Client
	cfg    types.RunConfig
	logger *log.Entry
}

// NewAdapter returns an Adapter for dev using client for REST calls.
func NewAdapter(dev *types.Device, client *fortios.Client, cfg types.RunConfig) *Adapter {
	return &Adapter{
		Device: dev,
		client: client,
		cfg:    cfg,
		logger: log.WithField("device", dev.Key),
	}
}

// Client returns the REST client of the adapter.
func (a *Adapter) Client() *fortios.Client {
	return a.client
}

// Login opens the REST session. A token session is confirmed with an authenticated
// status read, since attaching a token never fails by itself.
// Rejected credentials are reported in the Result; only transport faults are errors.
func (a *Adapter) Login(ctx context.Context) (types.Result, error) {
	if err := a.client.Login(ctx); err != nil {
		if errors.Is(err, fgerrors.ErrAuthentication) {
			return types.Failure("error logging in to device, check login and password"), nil
		}
		return types.Result{}, err
	}

	if a.client.AuthMode() != types.AuthToken {
		return types.Success("Connected"), nil
	}

	resp, err := a.client.SystemStatus(ctx)
	if err != nil {
		if errors.Is(err, fgerrors.ErrAuthentication) {
			return types.Failure("apikey was not accepted by the device"), nil
		}
		return types.Result{}, err
	}

	if !resp.OK() {
		return types.Failure("apikey was not accepted by the device: " + resp.Reason()), nil
	}

	if resp.Version != "" {
		a.logger.Debugf("running %s build %d", resp.Version, resp.Build)
	}

	return types.Success("Connected"), nil
}

// Logout closes the REST session. Errors are logged and dropped.
func (a *Adapter) Logout(ctx context.Context) {
	if err := a.client.Logout(ctx); err != nil {
		a.logger.Debugf("logout failed, ignoring: %v", err)
	}
}

// BackupToFile exports the global configuration and writes it to
// dir/{dateTag}{device name}{tag}.conf, returning the file path.
// The write is not atomic: a failed write may leave a partial file behind.
func (a *Adapter) BackupToFile(ctx context.Context, dir, dateTag, tag string) (string, error) {
	params := url.Values{"scope": {"global"}}

	content, resp, err := a.client.PostRaw(ctx, fortios.PathConfigBackup, params, nil)
	if err != nil {
		return "", err
	}

	if content == nil {
		return "", fmt.Errorf("%w: %s: configuration backup: %s",
			fgerrors.ErrRemoteOperation, a.Device.Key, resp.Reason())
	}

	if err := types.ValidateConfig(content); err != nil {
		return "", err
	}

	artifact := &types.BackupArtifact{
		Dir:        dir,
		DateTag:    dateTag,
		DeviceName: a.Device.Name,
		Tag:        tag,
	}

	path := artifact.Path()
	if err := os.WriteFile(path, content, constants.PermissionsSecretFile); err != nil {
		return "", fmt.Errorf("error writing backup file %s: %w", path, err)
	}

	a.logger.Infof("configuration backup written to %s (%s)", path, humanize.Bytes(uint64(len(content))))

	return path, nil
}
