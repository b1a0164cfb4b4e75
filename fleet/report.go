// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package fleet

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/fgfleet/fgfleet/constants"
	fgerrors "github.com/fgfleet/fgfleet/errors"
	"github.com/fgfleet/fgfleet/types"
)

// Report aggregates the per-device results of a run.
type Report struct {
	// RunID identifies the run in logs and in the JSON summary.
	RunID     string                `json:"run_id"`
	Operation string                `json:"operation"`
	Started   time.Time             `json:"started"`
	Duration  time.Duration         `json:"duration"`
	Results   []*types.DeviceResult `json:"results"`
	// Canceled is set when the run was interrupted before every device was attempted.
	Canceled  bool                  `json:"canceled,omitempty"`
}

// Failed returns the number of devices that did not complete the operation.
// Skipped devices are not counted.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == types.OutcomeFailed || res.Outcome == types.OutcomeNotFound {
			n++
		}
	}
	return n
}

// Write prints the report to w as a table or as JSON.
func (r *Report) Write(w io.Writer, format string) error {
	switch format {
	case constants.FormatJSON:
		b, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case constants.FormatTable, "":
		r.writeTable(w)
		return nil
	}

	return fmt.Errorf("%w: unknown summary format %q", fgerrors.ErrIncorrectInput, format)
}

func (r *Report) writeTable(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{
		"#",
		"Device",
		"Address",
		"Operation",
		"Outcome",
		"Reason",
	})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	for i, res := range r.Results {
		reason := res.Reason
		if res.Artifact != "" && res.Outcome == types.OutcomeSuccess {
			reason = res.Artifact
		}
		addr := res.Address
		if addr == "" {
			addr = constants.NotApplicable
		}
		table.Append([]string{
			strconv.Itoa(i + 1),
			res.Device,
			addr,
			res.Operation,
			string(res.Outcome),
			reason,
		})
	}

	table.Render()
}
