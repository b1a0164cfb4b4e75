// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package cmd

import (
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:               "fgfleet",
	Short:             "provision api keys, back up, restore and upgrade a fleet of FortiGate firewalls",
	PersistentPreRunE: preRunFn,
}

func addSubcommands() {
	RootCmd.AddCommand(keygenCmd)
	RootCmd.AddCommand(backupCmd)
	RootCmd.AddCommand(restoreCmd)
	RootCmd.AddCommand(upgradeCmd)
	RootCmd.AddCommand(versionCmd)
}

func init() {
	o := GetOptions().Global

	RootCmd.SilenceUsage = true
	RootCmd.PersistentFlags().CountVarP(&o.DebugCount, "debug", "d", "enable debug mode")
	RootCmd.PersistentFlags().StringVarP(&o.LogLevel, "log-level", "", o.LogLevel,
		"logging level; one of [trace, debug, info, warning, error, fatal]")
	RootCmd.PersistentFlags().StringVarP(&o.Inventory, "inventory", "i", o.Inventory,
		"path to the inventory file (yaml or json)")
	_ = RootCmd.MarkPersistentFlagFilename("inventory", "*.yaml", "*.yml", "*.json")
	RootCmd.PersistentFlags().StringVarP(&o.YAMLDir, "yaml-dir", "", "",
		"directory with inventory files to pick one from when --inventory is not set")
	RootCmd.PersistentFlags().StringVarP(&o.SkipList, "skip-list", "", "",
		"file with words (one per line); devices whose name contains any of them are skipped")
	RootCmd.PersistentFlags().StringSliceVarP(&o.EnvFiles, "env-file", "", nil,
		"dotenv file(s) loaded before the inventory is expanded")
	RootCmd.PersistentFlags().DurationVarP(&o.Timeout, "timeout", "", o.Timeout,
		"timeout of REST API calls, e.g: 30s, 1m")
	RootCmd.PersistentFlags().DurationVarP(&o.UploadTimeout, "upload-timeout", "", o.UploadTimeout,
		"timeout of the firmware upload call")
	RootCmd.PersistentFlags().StringVarP(&o.ShellDriver, "shell-driver", "", o.ShellDriver,
		"ssh shell implementation; one of [ssh, scrapli]")
	RootCmd.PersistentFlags().IntVarP(&o.SSHPort, "ssh-port", "", o.SSHPort, "ssh port of the devices")
	RootCmd.PersistentFlags().IntVarP(&o.HTTPSPort, "https-port", "", o.HTTPSPort,
		"https port of the devices' REST API")
	RootCmd.PersistentFlags().BoolVarP(&o.Insecure, "insecure", "", o.Insecure,
		"skip verification of the devices' TLS certificates")
	RootCmd.PersistentFlags().StringVarP(&o.SummaryFormat, "summary-format", "f", o.SummaryFormat,
		"format of the run summary; one of [table, json]")
	RootCmd.PersistentFlags().StringVarP(&o.MetricsFile, "metrics-file", "", "",
		"write run results as a prometheus textfile to this path")

	addSubcommands()
}

// Execute runs the root command under a signal handled context.
func Execute() error {
	ctx, cancel := SignalHandledContext()
	defer cancel()

	return RootCmd.ExecuteContext(ctx)
}

func preRunFn(_ *cobra.Command, _ []string) error {
	o := GetOptions().Global

	// setting log level
	switch {
	case o.DebugCount > 0:
		log.SetLevel(log.DebugLevel)
	default:
		l, err := log.ParseLevel(o.LogLevel)
		if err != nil {
			return err
		}

		log.SetLevel(l)
	}

	// setting output to stderr, so that json outputs can be parsed
	log.SetOutput(os.Stderr)

	if len(o.EnvFiles) > 0 {
		if err := godotenv.Load(o.EnvFiles...); err != nil {
			return err
		}
	}

	return nil
}
