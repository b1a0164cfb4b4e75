// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	fgerrors "github.com/fgfleet/fgfleet/errors"
	"github.com/fgfleet/fgfleet/fleet"
	"github.com/fgfleet/fgfleet/fortigate"
	"github.com/fgfleet/fgfleet/types"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "back up the configuration of every device",
	Long: "backup downloads the global configuration of every device to --backup-dir.\n" +
		"With --schedule the backup is repeated on a cron schedule until interrupted.",
	RunE: backupFn,
}

func init() {
	o := GetOptions().Backup

	backupCmd.Flags().StringVarP(&o.BackupDir, "backup-dir", "b", "", "existing directory to write the backups to")
	backupCmd.Flags().BoolVarP(&o.CreateNewDir, "create-new-dir", "", o.CreateNewDir,
		"write the backups of a run to a new dated subdirectory")
	backupCmd.Flags().StringVarP(&o.Schedule, "schedule", "", "",
		"repeat the backup on a standard cron schedule, e.g: \"0 2 * * *\"")
	backupCmd.Flags().BoolVarP(&o.Evoke, "evoke", "", false, "the inventory is an evoke lab description (json)")
	_ = backupCmd.MarkFlagRequired("backup-dir")
	_ = backupCmd.MarkFlagDirname("backup-dir")
}

func backupFn(cobraCmd *cobra.Command, _ []string) error {
	opts := GetOptions()

	if opts.Backup.Schedule == "" {
		return backupOnce(cobraCmd.Context(), opts)
	}

	return backupScheduled(cobraCmd.Context(), opts)
}

func backupScheduled(ctx context.Context, opts *Options) error {
	if _, err := cron.ParseStandard(opts.Backup.Schedule); err != nil {
		return fmt.Errorf("%w: schedule %q: %v", fgerrors.ErrIncorrectInput, opts.Backup.Schedule, err)
	}

	c := cron.New()

	_, err := c.AddFunc(opts.Backup.Schedule, func() {
		if err := backupOnce(ctx, opts); err != nil {
			log.Errorf("scheduled backup: %v", err)
		}
	})
	if err != nil {
		return err
	}

	log.Infof("backups scheduled as %q, press Ctrl+C to stop", opts.Backup.Schedule)

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()

	return nil
}

func backupOnce(ctx context.Context, opts *Options) error {
	inv, err := loadInventory(opts.Global, opts.Backup.Evoke)
	if err != nil {
		return err
	}

	plan, err := fleet.PlanBackup(opts.Backup.BackupDir, opts.Backup.CreateNewDir, inv.Tags, time.Now())
	if err != nil {
		return err
	}

	log.Infof("writing backups to %s", plan.Dir)

	runner, err := newRunner(fleet.OpBackup, opts.Global)
	if err != nil {
		return err
	}

	cfg := opts.RunConfig()

	rep := runner.Run(ctx, inv, func(ctx context.Context, dev *types.Device) (fleet.Outcome, error) {
		return withAdapter(ctx, dev, cfg, func(a *fortigate.Adapter) (fleet.Outcome, error) {
			p, err := a.BackupToFile(ctx, plan.Dir, plan.DateTag, plan.Tag)
			if err != nil {
				return fleet.Outcome{}, err
			}

			return fleet.Outcome{Result: types.Success("configuration saved"), Artifact: p}, nil
		})
	})

	return finishRun(rep, opts.Global)
}
