// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package cmd

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	fgerrors "github.com/fgfleet/fgfleet/errors"
	"github.com/fgfleet/fgfleet/fleet"
	"github.com/fgfleet/fgfleet/fortigate"
	"github.com/fgfleet/fgfleet/inventory"
	"github.com/fgfleet/fgfleet/session"
	"github.com/fgfleet/fgfleet/types"
	"github.com/fgfleet/fgfleet/utils"
)

// inventoryPath returns the inventory file to use. Without --inventory the operator
// picks one of the files found in --yaml-dir.
func inventoryPath(o *GlobalOptions) (string, error) {
	if o.Inventory != "" {
		return o.Inventory, nil
	}

	if o.YAMLDir == "" {
		return "", fmt.Errorf("%w: provide an inventory file with --inventory or a directory with --yaml-dir",
			fgerrors.ErrIncorrectInput)
	}

	if !utils.IsTerminal(os.Stdin.Fd()) {
		return "", fmt.Errorf("%w: --yaml-dir needs an interactive terminal, use --inventory instead",
			fgerrors.ErrIncorrectInput)
	}

	return inventory.SelectFile(o.YAMLDir, os.Stdin, os.Stderr)
}

func loadInventory(o *GlobalOptions, evoke bool) (*inventory.Inventory, error) {
	p, err := inventoryPath(o)
	if err != nil {
		return nil, err
	}

	if evoke {
		return inventory.LoadEvoke(p)
	}

	return inventory.Load(p)
}

func newRunner(operation string, o *GlobalOptions) (*fleet.Runner, error) {
	var skip inventory.SkipList

	if o.SkipList != "" {
		var err error

		skip, err = inventory.LoadSkipList(o.SkipList)
		if err != nil {
			return nil, err
		}
	}

	return fleet.NewRunner(operation, skip), nil
}

// finishRun prints the summary and writes the metrics of a run.
// A run with failed devices makes the command exit non-zero.
func finishRun(rep *fleet.Report, o *GlobalOptions) error {
	if err := rep.Write(os.Stdout, o.SummaryFormat); err != nil {
		return err
	}

	if o.MetricsFile != "" {
		if err := rep.WriteMetrics(o.MetricsFile); err != nil {
			log.Errorf("failed to write metrics to %s: %v", o.MetricsFile, err)
		}
	}

	if rep.Canceled {
		return fmt.Errorf("%s canceled before every device was processed", rep.Operation)
	}

	if n := rep.Failed(); n > 0 {
		return fmt.Errorf("%s failed on %d of %d devices", rep.Operation, n, len(rep.Results))
	}

	return nil
}

// withAdapter opens a REST session to dev, calls fn and closes the session.
// A rejected login ends the device with a failed Outcome.
func withAdapter(ctx context.Context, dev *types.Device, cfg types.RunConfig,
	fn func(a *fortigate.Adapter) (fleet.Outcome, error),
) (fleet.Outcome, error) {
	client, err := session.NewRESTClient(dev, cfg)
	if err != nil {
		return fleet.Outcome{}, err
	}

	a := fortigate.NewAdapter(dev, client, cfg)

	res, err := a.Login(ctx)
	if err != nil {
		return fleet.Outcome{}, err
	}

	if !res.OK {
		return fleet.Outcome{Result: res}, nil
	}

	defer a.Logout(ctx)

	return fn(a)
}
