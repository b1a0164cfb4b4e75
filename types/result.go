// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package types

import "time"

// Result is the outcome of an expected-to-fail operation, e.g. a login with
// credentials the device may reject. Faults travel as errors instead.
type Result struct {
	OK     bool
	Reason string
}

// Success returns a successful Result.
func Success(reason string) Result {
	return Result{OK: true, Reason: reason}
}

// Failure returns a failed Result.
func Failure(reason string) Result {
	return Result{OK: false, Reason: reason}
}

// Outcome is the terse per-device status reported to an operator.
type Outcome string

const (
	OutcomeSuccess  Outcome = "Success"
	OutcomeFailed   Outcome = "Failed"
	OutcomeNotFound Outcome = "Not Found"
	OutcomeSkipped  Outcome = "Skipped"
)

// DeviceResult is the record of one device in a fleet run.
type DeviceResult struct {
	Device    string        `json:"device"`
	Address   string        `json:"address"`
	Operation string        `json:"operation"`
	Outcome   Outcome       `json:"outcome"`
	Reason    string        `json:"reason,omitempty"`
	Artifact  string        `json:"artifact,omitempty"`
	Duration  time.Duration `json:"duration"`
}

// Succeeded reports whether the device completed its operation.
func (r *DeviceResult) Succeeded() bool {
	return r.Outcome == OutcomeSuccess
}
