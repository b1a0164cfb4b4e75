// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package cmd

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fgfleet/fgfleet/fleet"
	"github.com/fgfleet/fgfleet/inventory"
	"github.com/fgfleet/fgfleet/provision"
	"github.com/fgfleet/fgfleet/session"
	"github.com/fgfleet/fgfleet/types"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "create the api user and generate its REST API key on every device",
	Long: "keygen creates the access profile and api-user over ssh and generates a REST API key.\n" +
		"Generated keys are written back to the inventory file, a copy of the original is kept.",
	RunE: keygenFn,
}

func init() {
	o := GetOptions().Keygen

	keygenCmd.Flags().StringVarP(&o.APIUser, "api-user", "u", "", "name of the api-user to create")
	keygenCmd.Flags().StringVarP(&o.AccProfile, "accprof", "", o.AccProfile,
		"access profile bound to the api-user; created when it does not exist")
	keygenCmd.Flags().StringSliceVarP(&o.VDOMs, "vdom", "", o.VDOMs,
		"vdoms the api-user is allowed to access, space or comma separated")
	_ = keygenCmd.MarkFlagRequired("api-user")
}

// newSession builds the session of a device, replaced in tests.
var newSession = session.NewFromConfig //nolint:gochecknoglobals

func keygenFn(cobraCmd *cobra.Command, _ []string) error {
	opts := GetOptions()

	req := provision.Request{
		APIUser: opts.Keygen.APIUser,
		Profile: opts.Keygen.AccProfile,
		VDOMs:   opts.Keygen.VDOMs,
	}
	if err := req.Validate(); err != nil {
		return err
	}

	inv, err := loadInventory(opts.Global, false)
	if err != nil {
		return err
	}

	rep, err := runKeygen(cobraCmd.Context(), opts, inv, req)
	if err != nil {
		return err
	}

	return finishRun(rep, opts.Global)
}

// runKeygen provisions every device of inv and writes the generated keys back to
// the inventory file.
func runKeygen(ctx context.Context, opts *Options, inv *inventory.Inventory,
	req provision.Request,
) (*fleet.Report, error) {
	runner, err := newRunner(fleet.OpKeygen, opts.Global)
	if err != nil {
		return nil, err
	}

	cfg := opts.RunConfig()
	tokens := map[string]string{}

	rep := runner.Run(ctx, inv, func(ctx context.Context, dev *types.Device) (fleet.Outcome, error) {
		token, err := provisionDevice(ctx, dev, cfg, req)
		if err != nil {
			return fleet.Outcome{}, err
		}

		tokens[dev.Key] = token

		return fleet.Outcome{Result: types.Success("api key generated for " + req.APIUser)}, nil
	})

	if err := inv.SaveTokens(tokens); err != nil {
		log.Errorf("failed to save generated keys to %s: %v", inv.Path, err)
		return nil, err
	}

	if len(tokens) > 0 {
		log.Infof("saved %d api keys to %s", len(tokens), inv.Path)
	}

	return rep, nil
}

func provisionDevice(ctx context.Context, dev *types.Device, cfg types.RunConfig,
	req provision.Request,
) (string, error) {
	sess, err := newSession(dev, cfg)
	if err != nil {
		return "", err
	}

	if err := sess.Open(ctx); err != nil {
		return "", err
	}
	defer sess.Close(ctx)

	if _, err := sess.DetectOperatingMode(ctx); err != nil {
		return "", err
	}

	c, err := provision.NewCoordinator(sess, req)
	if err != nil {
		return "", err
	}

	return c.Run(ctx)
}
