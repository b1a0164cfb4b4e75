// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package fortigate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	fgerrors "github.com/fgfleet/fgfleet/errors"
	"github.com/fgfleet/fgfleet/fortios"
	"github.com/fgfleet/fgfleet/types"
	"github.com/fgfleet/fgfleet/utils"
)

// Firmware image sources.
const (
	SourceRemoteCatalog = "remote-catalog"
	SourceFile          = "file"
	// SourceFortiGuard is accepted as an alias of SourceRemoteCatalog.
	SourceFortiGuard = "fortiguard"
)

type upgradeRequest struct {
	Source      string `json:"source"`
	Filename    string `json:"filename,omitempty"`
	Scope       string `json:"scope,omitempty"`
	FileContent string `json:"file_content,omitempty"`
}

type upgradeResult struct {
	Status string `json:"status"`
}

// ErrImageNotFound is returned when the catalog has no image for the requested version.
var ErrImageNotFound = fmt.Errorf("%w: no matching image in firmware catalog", fgerrors.ErrFileNotFound)

// UpgradeImage upgrades the device firmware.
//
// With SourceRemoteCatalog, versionOrPath is a major.minor.patch version looked up
// in the catalog of images available to the device. A device already running that
// version is left alone. With SourceFile, versionOrPath is a local image file
// uploaded under the upload timeout.
func (a *Adapter) UpgradeImage(ctx context.Context, source, versionOrPath string) (types.Result, error) {
	switch source {
	case SourceRemoteCatalog, SourceFortiGuard:
		return a.upgradeFromCatalog(ctx, versionOrPath)
	case SourceFile:
		return a.upgradeFromFile(ctx, versionOrPath)
	}

	return types.Result{}, fmt.Errorf("%w: unknown image source %q, expected %s or %s",
		fgerrors.ErrIncorrectInput, source, SourceRemoteCatalog, SourceFile)
}

func (a *Adapter) upgradeFromCatalog(ctx context.Context, version string) (types.Result, error) {
	want, err := types.ValidateFirmwareVersion(version)
	if err != nil {
		return types.Result{}, err
	}

	fw, err := a.client.Firmware(ctx)
	if err != nil {
		return types.Result{}, err
	}

	if current, err := types.ParseFirmwareVersion(fw.Current.Version); err == nil && current.Equal(want) {
		a.logger.Infof("already running %s", want)
		return types.Success(fmt.Sprintf("version requested %s is same as current version, skipping", want)), nil
	}

	image, ok := findImage(fw.Available, want)
	if !ok {
		return types.Result{}, fmt.Errorf("%w: %s: %s", ErrImageNotFound, a.Device.Key, want)
	}

	a.logger.Infof("upgrading from %s to %s (image id %s)", fw.Current.Version, want, image.ID)

	return a.requestUpgrade(ctx, &upgradeRequest{
		Source:   "fortiguard",
		Filename: image.ID,
	})
}

// findImage scans every catalog entry for an exact version match.
func findImage(images []fortios.FirmwareImage, want types.FirmwareVersion) (*fortios.FirmwareImage, bool) {
	for i := range images {
		if want.Matches(images[i].Major, images[i].Minor, images[i].Patch) {
			return &images[i], true
		}
	}

	return nil, false
}

func (a *Adapter) upgradeFromFile(ctx context.Context, path string) (types.Result, error) {
	b64, err := utils.FileToBase64(path)
	if err != nil {
		return types.Result{}, err
	}

	defaultTimeout := a.client.Timeout()
	a.client.SetTimeout(a.cfg.UploadTimeout)
	defer a.client.SetTimeout(defaultTimeout)

	a.logger.Infof("uploading image %s", path)

	return a.requestUpgrade(ctx, &upgradeRequest{
		Source:      "upload",
		Scope:       "global",
		FileContent: b64,
	})
}

func (a *Adapter) requestUpgrade(ctx context.Context, req *upgradeRequest) (types.Result, error) {
	params := url.Values{"vdom": {"root"}}

	var res upgradeResult
	resp, err := a.client.Post(ctx, fortios.PathFirmwareUpgrade, params, req, &res)
	if err != nil {
		return types.Result{}, err
	}

	if !resp.OK() {
		return types.Failure("upgrade request failed: " + resp.Reason()), nil
	}

	if res.Status != "" && res.Status != "success" {
		raw, _ := json.Marshal(res)
		return types.Failure(fmt.Sprintf("upgrade request failed: %s", raw)), nil
	}

	return types.Success("upgrade requested"), nil
}
