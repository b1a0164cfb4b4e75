// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	fgerrors "github.com/fgfleet/fgfleet/errors"
	"github.com/fgfleet/fgfleet/fleet"
	"github.com/fgfleet/fgfleet/fortigate"
	"github.com/fgfleet/fgfleet/types"
	"github.com/fgfleet/fgfleet/utils"
)

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "upgrade the firmware of every device",
	Long: "upgrade installs a firmware image on every device, either a version from the\n" +
		"device's remote catalog or an image file uploaded from this host.",
	RunE: upgradeFn,
}

func init() {
	o := GetOptions().Upgrade

	upgradeCmd.Flags().StringVarP(&o.Source, "source", "s", o.Source,
		"where the image comes from; one of [remote-catalog, fortiguard, file]")
	upgradeCmd.Flags().StringVarP(&o.Image, "image", "", "",
		"firmware version (major.minor.patch) or path of the image file")
	_ = upgradeCmd.MarkFlagRequired("image")
}

// validateUpgrade rejects bad input before any device is contacted.
func validateUpgrade(o *UpgradeOptions) error {
	switch o.Source {
	case fortigate.SourceFile:
		p, err := utils.ResolvePath(o.Image)
		if err != nil {
			return err
		}

		if !utils.FileExists(p) {
			return fmt.Errorf("%w: image file %s", fgerrors.ErrFileNotFound, p)
		}

		o.Image = p
	case fortigate.SourceRemoteCatalog, fortigate.SourceFortiGuard:
		if _, err := types.ValidateFirmwareVersion(o.Image); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unknown image source %q", fgerrors.ErrIncorrectInput, o.Source)
	}

	return nil
}

func upgradeFn(cobraCmd *cobra.Command, _ []string) error {
	opts := GetOptions()

	if err := validateUpgrade(opts.Upgrade); err != nil {
		return err
	}

	inv, err := loadInventory(opts.Global, false)
	if err != nil {
		return err
	}

	runner, err := newRunner(fleet.OpUpgrade, opts.Global)
	if err != nil {
		return err
	}

	cfg := opts.RunConfig()
	source, image := opts.Upgrade.Source, opts.Upgrade.Image

	rep := runner.Run(cobraCmd.Context(), inv, func(ctx context.Context, dev *types.Device) (fleet.Outcome, error) {
		return withAdapter(ctx, dev, cfg, func(a *fortigate.Adapter) (fleet.Outcome, error) {
			res, err := a.UpgradeImage(ctx, source, image)
			return fleet.Outcome{Result: res}, err
		})
	})

	return finishRun(rep, opts.Global)
}
