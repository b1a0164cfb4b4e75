// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package fleet

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/fgfleet/fgfleet/types"
)

// WriteMetrics writes the report as a Prometheus textfile to path, for pickup
// by the node exporter textfile collector.
func (r *Report) WriteMetrics(path string) error {
	reg := prometheus.NewRegistry()

	success := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fgfleet_device_operation_success",
			Help: "Whether the last run of the operation succeeded on the device (1) or not (0).",
		},
		[]string{"device", "operation"},
	)

	duration := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fgfleet_run_duration_seconds",
			Help: "Duration of the last fleet run in seconds.",
		},
		[]string{"operation"},
	)

	lastRun := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fgfleet_run_timestamp_seconds",
			Help: "Unix time the last fleet run started.",
		},
		[]string{"operation"},
	)

	reg.MustRegister(success, duration, lastRun)

	for _, res := range r.Results {
		if res.Outcome == types.OutcomeSkipped {
			continue
		}
		v := 0.0
		if res.Succeeded() {
			v = 1
		}
		success.WithLabelValues(res.Device, res.Operation).Set(v)
	}

	duration.WithLabelValues(r.Operation).Set(r.Duration.Seconds())
	lastRun.WithLabelValues(r.Operation).Set(float64(r.Started.Unix()))

	return prometheus.WriteToTextfile(path, reg)
}
