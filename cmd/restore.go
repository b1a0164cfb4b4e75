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
	"github.com/fgfleet/fgfleet/inventory"
	"github.com/fgfleet/fgfleet/session"
	"github.com/fgfleet/fgfleet/types"
)

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "restore the configuration of every device from a backup directory",
	Long: "restore finds the .conf file of each device in --backup-dir and uploads it.\n" +
		"Devices need an apikey in the inventory, password sessions can not restore.",
	RunE: restoreFn,
}

func init() {
	o := GetOptions().Restore

	restoreCmd.Flags().StringVarP(&o.BackupDir, "backup-dir", "b", "", "directory holding the .conf files")
	_ = restoreCmd.MarkFlagRequired("backup-dir")
	_ = restoreCmd.MarkFlagDirname("backup-dir")
}

func restoreFn(cobraCmd *cobra.Command, _ []string) error {
	opts := GetOptions()

	inv, err := loadInventory(opts.Global, false)
	if err != nil {
		return err
	}

	runner, err := newRunner(fleet.OpRestore, opts.Global)
	if err != nil {
		return err
	}

	cfg := opts.RunConfig()
	dir := opts.Restore.BackupDir

	rep := runner.Run(cobraCmd.Context(), inv, func(ctx context.Context, dev *types.Device) (fleet.Outcome, error) {
		return restoreDevice(ctx, dev, cfg, dir, inv.Tags)
	})

	return finishRun(rep, opts.Global)
}

// restoreDevice restores the backup of dev found in dir. The auth mode is checked
// first, a password device fails with ErrPolicy without a lookup or any traffic.
func restoreDevice(ctx context.Context, dev *types.Device, cfg types.RunConfig, dir string,
	tags inventory.Tags,
) (fleet.Outcome, error) {
	mode, err := session.AuthModeFor(dev)
	if err != nil {
		return fleet.Outcome{}, err
	}

	if mode != types.AuthToken {
		return fleet.Outcome{}, fmt.Errorf("%w: configuration restore requires an apikey",
			fgerrors.ErrPolicy)
	}

	p, err := inventory.FindRestoreFile(dir, dev, tags)
	if err != nil {
		return fleet.Outcome{}, err
	}

	out, err := withAdapter(ctx, dev, cfg, func(a *fortigate.Adapter) (fleet.Outcome, error) {
		res, err := a.RestoreConfigFromFile(ctx, p)
		return fleet.Outcome{Result: res}, err
	})
	out.Artifact = p

	return out, err
}
