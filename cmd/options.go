// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package cmd

import (
	"os"
	"time"

	"github.com/fgfleet/fgfleet/constants"
	"github.com/fgfleet/fgfleet/fortigate"
	"github.com/fgfleet/fgfleet/shell"
	"github.com/fgfleet/fgfleet/types"
)

var optionsInstance *Options //nolint:gochecknoglobals

// GetOptions returns the global options instance if it exists
// or creates a new one with default values for all options.
func GetOptions() *Options {
	if optionsInstance == nil {
		shellDriver := os.Getenv(constants.EnvShellDriver)
		if shellDriver == "" {
			shellDriver = shell.DriverSSH
		}

		optionsInstance = &Options{
			Global: &GlobalOptions{
				LogLevel:      "info",
				Inventory:     os.Getenv(constants.EnvInventory),
				Timeout:       constants.DefaultAPITimeout,
				UploadTimeout: constants.DefaultUploadTimeout,
				ShellDriver:   shellDriver,
				SSHPort:       constants.DefaultSSHPort,
				HTTPSPort:     constants.DefaultHTTPSPort,
				Insecure:      true,
				SummaryFormat: constants.FormatTable,
			},
			Keygen: &KeygenOptions{
				AccProfile: constants.SuperAdminProfile,
				VDOMs:      []string{constants.DefaultVDOM},
			},
			Backup: &BackupOptions{
				CreateNewDir: true,
			},
			Restore: &RestoreOptions{},
			Upgrade: &UpgradeOptions{
				Source: fortigate.SourceRemoteCatalog,
			},
		}
	}

	return optionsInstance
}

// Options holds the values of all command line flags.
type Options struct {
	Global  *GlobalOptions
	Keygen  *KeygenOptions
	Backup  *BackupOptions
	Restore *RestoreOptions
	Upgrade *UpgradeOptions
}

// RunConfig returns the immutable run configuration handed to the components.
func (o *Options) RunConfig() types.RunConfig {
	return types.RunConfig{
		APITimeout:    o.Global.Timeout,
		UploadTimeout: o.Global.UploadTimeout,
		ShellDriver:   o.Global.ShellDriver,
		SSHPort:       o.Global.SSHPort,
		HTTPSPort:     o.Global.HTTPSPort,
		Insecure:      o.Global.Insecure,
		Debug:         o.Global.DebugCount > 0,
	}
}

type GlobalOptions struct {
	DebugCount    int
	LogLevel      string
	Inventory     string
	YAMLDir       string
	SkipList      string
	EnvFiles      []string
	Timeout       time.Duration
	UploadTimeout time.Duration
	ShellDriver   string
	SSHPort       int
	HTTPSPort     int
	Insecure      bool
	SummaryFormat string
	MetricsFile   string
}

type KeygenOptions struct {
	APIUser    string
	AccProfile string
	VDOMs      []string
}

type BackupOptions struct {
	BackupDir    string
	CreateNewDir bool
	Schedule     string
	Evoke        bool
}

type RestoreOptions struct {
	BackupDir string
}

type UpgradeOptions struct {
	Source string
	Image  string
}
