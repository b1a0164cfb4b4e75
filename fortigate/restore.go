// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package fortigate

import (
	"context"
	"fmt"

	fgerrors "github.com/fgfleet/fgfleet/errors"
	"github.com/fgfleet/fgfleet/fortios"
	"github.com/fgfleet/fgfleet/types"
	"github.com/fgfleet/fgfleet/utils"
)

type restoreRequest struct {
	Source      string `json:"source"`
	Scope       string `json:"scope"`
	FileContent string `json:"file_content"`
}

// RestoreConfigFromFile uploads the configuration file at path to the device.
// The device only accepts configuration uploads from token sessions, a password
// session fails with ErrPolicy before any request is made.
func (a *Adapter) RestoreConfigFromFile(ctx context.Context, path string) (types.Result, error) {
	if a.client.AuthMode() != types.AuthToken {
		return types.Result{}, fmt.Errorf("%w: %s: configuration restore requires an apikey",
			fgerrors.ErrPolicy, a.Device.Key)
	}

	b64, err := utils.FileToBase64(path)
	if err != nil {
		return types.Result{}, err
	}

	resp, err := a.client.Post(ctx, fortios.PathConfigRestore, nil, &restoreRequest{
		Source:      "upload",
		Scope:       "global",
		FileContent: b64,
	}, nil)
	if err != nil {
		return types.Result{}, err
	}

	if !resp.OK() {
		return types.Failure("restore rejected: " + resp.Reason()), nil
	}

	a.logger.Infof("configuration restored from %s", path)

	return types.Success("restored from " + path), nil
}
