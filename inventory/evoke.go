// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package inventory

import (
	"encoding/json"
	"fmt"
	"os"

	fgerrors "github.com/fgfleet/fgfleet/errors"
	"github.com/fgfleet/fgfleet/types"
	"github.com/fgfleet/fgfleet/utils"
)

// evokeImageFortiGate is the image type of FortiGate VMs in an evoke lab export.
const evokeImageFortiGate = "fgt"

type evokeLab struct {
	Template struct {
		Name string `json:"name"`
	} `json:"template"`
	VMs []evokeVM `json:"vms"`
}

type evokeVM struct {
	Name       string `json:"name"`
	ExternalIP string `json:"externalIp"`
	Image      struct {
		ImageType string `json:"imageType"`
		User      string `json:"user"`
		Password  string `json:"password"`
	} `json:"image"`
}

// LoadEvoke reads an evoke lab JSON export and returns an inventory of its FortiGate VMs.
// The lab template name becomes the lab tag. Evoke inventories are never rewritten.
func LoadEvoke(path string) (*Inventory, error) {
	p, err := utils.ResolvePath(path)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("%w: evoke export %s: %v", fgerrors.ErrFileNotFound, p, err)
	}

	lab := &evokeLab{}
	if err := json.Unmarshal(raw, lab); err != nil {
		return nil, fmt.Errorf("%w: evoke export %s: %v", fgerrors.ErrIncorrectInput, p, err)
	}

	inv := &Inventory{
		Path: p,
		Tags: Tags{Lab: lab.Template.Name},
	}

	for _, vm := range lab.VMs {
		if vm.Image.ImageType != evokeImageFortiGate {
			continue
		}

		d, err := types.NewDevice(vm.Name, &types.DeviceDefinition{
			IP:       vm.ExternalIP,
			Login:    vm.Image.User,
			Password: vm.Image.Password,
		})
		inv.Entries = append(inv.Entries, &Entry{Key: vm.Name, Device: d, Err: err})
	}

	if len(inv.Entries) == 0 {
		return nil, fmt.Errorf("%w: evoke export %s has no %q vms", fgerrors.ErrIncorrectInput, p,
			evokeImageFortiGate)
	}

	return inv, nil
}
