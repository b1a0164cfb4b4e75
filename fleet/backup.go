// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package fleet

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/fgfleet/fgfleet/constants"
	fgerrors "github.com/fgfleet/fgfleet/errors"
	"github.com/fgfleet/fgfleet/inventory"
	"github.com/fgfleet/fgfleet/utils"
)

// BackupPlan is where the backup files of a run are written and how they are tagged.
type BackupPlan struct {
	Dir     string
	DateTag string
	Tag     string
}

// PlanBackup prepares the backup location under baseDir, which must exist.
// With newDir a {date}-{time}[-{lab}[--{note}]] subdirectory is created and the
// file names carry neither date nor tag. Otherwise files go to baseDir and are
// named {date}-{time}_{device}[-{lab}[--{note}]].conf.
func PlanBackup(baseDir string, newDir bool, tags inventory.Tags, now time.Time) (*BackupPlan, error) {
	base, err := utils.ResolvePath(baseDir)
	if err != nil {
		return nil, err
	}

	if !utils.DirExists(base) {
		return nil, fmt.Errorf("%w: backup directory %s does not exist", fgerrors.ErrFileNotFound, base)
	}

	date := now.Format(constants.BackupDateLayout)

	if !newDir {
		return &BackupPlan{
			Dir:     base,
			DateTag: date + "_",
			Tag:     tags.Suffix(),
		}, nil
	}

	dir := filepath.Join(base, date+tags.Suffix())
	if err := os.Mkdir(dir, constants.PermissionsDirDefault); err != nil {
		return nil, fmt.Errorf("unable to create backup directory %s: %w", dir, err)
	}

	log.Infof("backups of this run go to %s", dir)

	return &BackupPlan{Dir: dir}, nil
}
