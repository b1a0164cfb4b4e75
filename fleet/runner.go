// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

// Package fleet runs an operation over every device of an inventory, one device
// at a time, isolating the failure of a device from the rest of the run.
package fleet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	fgerrors "github.com/fgfleet/fgfleet/errors"
	"github.com/fgfleet/fgfleet/inventory"
	"github.com/fgfleet/fgfleet/types"
)

// Operation names.
const (
	OpKeygen  = "keygen"
	OpBackup  = "backup"
	OpRestore = "restore"
	OpUpgrade = "upgrade"
)

// Outcome is what a DeviceFunc reports for one device.
type Outcome struct {
	types.Result
	// Artifact is the file produced or consumed, if any.
	Artifact string
}

// DeviceFunc performs the operation on a single device. Rejections the device is
// expected to produce travel in the Outcome, faults as the error.
type DeviceFunc func(ctx context.Context, dev *types.Device) (Outcome, error)

// Runner processes the devices of an inventory sequentially.
type Runner struct {
	Operation string
	SkipList  inventory.SkipList

	now func() time.Time
}

// NewRunner returns a Runner for operation.
func NewRunner(operation string, skip inventory.SkipList) *Runner {
	return &Runner{
		Operation: operation,
		SkipList:  skip,
		now:       time.Now,
	}
}

// Run calls fn for every valid, non-skipped device of inv and returns the report of
// the run. A failing or panicking device never stops the run.
func (r *Runner) Run(ctx context.Context, inv *inventory.Inventory, fn DeviceFunc) *Report {
	rep := &Report{
		RunID:     uuid.NewString(),
		Operation: r.Operation,
		Started:   r.now(),
	}

	log.WithField("run", rep.RunID).Infof("starting %s of %d devices", r.Operation, len(inv.Entries))

	for _, e := range inv.Entries {
		if err := ctx.Err(); err != nil {
			rep.Canceled = true
			rep.Results = append(rep.Results, r.canceledEntry(e, err))
			continue
		}
		rep.Results = append(rep.Results, r.runEntry(ctx, e, fn))
	}

	rep.Duration = r.now().Sub(rep.Started)

	log.Infof("%s finished for %d devices in %s: %d failed", r.Operation, len(rep.Results),
		rep.Duration.Round(time.Millisecond), rep.Failed())

	return rep
}

func (r *Runner) runEntry(ctx context.Context, e *inventory.Entry, fn DeviceFunc) *types.DeviceResult {
	l := log.WithField("device", e.Key)

	res := &types.DeviceResult{
		Device:    e.Key,
		Operation: r.Operation,
	}

	if e.Device == nil {
		res.Outcome = types.OutcomeFailed
		res.Reason = errString(e.Err)
		l.Errorf("invalid device definition: %v", e.Err)
		return res
	}

	res.Address = e.Device.Address

	if w, ok := r.SkipList.Match(e.Key); ok {
		res.Outcome = types.OutcomeSkipped
		res.Reason = fmt.Sprintf("name contains %q from skip list", w)
		l.Infof("Skipping: %s", res.Reason)
		return res
	}

	start := r.now()
	out, err := safeCall(ctx, e.Device, fn)
	res.Duration = r.now().Sub(start)
	res.Artifact = out.Artifact

	switch {
	case err != nil && errors.Is(err, fgerrors.ErrFileNotFound):
		res.Outcome = types.OutcomeNotFound
		res.Reason = err.Error()
		l.Warnf("%s: Not Found: %v", r.Operation, err)
	case err != nil:
		res.Outcome = types.OutcomeFailed
		res.Reason = err.Error()
		l.Errorf("%s: Failed: %v", r.Operation, err)
	case !out.OK:
		res.Outcome = types.OutcomeFailed
		res.Reason = out.Reason
		l.Errorf("%s: Failed: %s", r.Operation, out.Reason)
	default:
		res.Outcome = types.OutcomeSuccess
		res.Reason = out.Reason
		l.Infof("%s: Success %s", r.Operation, out.Reason)
	}

	return res
}

// canceledEntry records a device that was not attempted because the run was canceled.
func (r *Runner) canceledEntry(e *inventory.Entry, err error) *types.DeviceResult {
	res := &types.DeviceResult{
		Device:    e.Key,
		Operation: r.Operation,
		Outcome:   types.OutcomeSkipped,
		Reason:    "run canceled: " + err.Error(),
	}
	if e.Device != nil {
		res.Address = e.Device.Address
	}

	log.WithField("device", e.Key).Warnf("%s: Skipped, run canceled", r.Operation)

	return res
}

// safeCall runs fn and turns a panic into an error.
func safeCall(ctx context.Context, dev *types.Device, fn DeviceFunc) (out Outcome, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic while processing %s: %v", dev.Key, p)
		}
	}()

	return fn(ctx, dev)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
