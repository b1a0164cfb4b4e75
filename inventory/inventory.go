// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

// Package inventory loads and persists the set of devices a fleet run operates on.
package inventory

import (
	"fmt"
	"os"

	"github.com/a8m/envsubst"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	fgerrors "github.com/fgfleet/fgfleet/errors"
	"github.com/fgfleet/fgfleet/types"
	"github.com/fgfleet/fgfleet/utils"
)

const devicesKey = "fortigates"

// Tags are free-form labels of an inventory used for backup naming.
type Tags struct {
	Lab  string `yaml:"lab,omitempty" json:"lab,omitempty"`
	Note string `yaml:"note,omitempty" json:"note,omitempty"`
}

// Suffix returns the tag appended to backup names: "-{lab}--{note}", "-{lab}" or "".
func (t Tags) Suffix() string {
	switch {
	case t.Lab != "" && t.Note != "":
		return "-" + t.Lab + "--" + t.Note
	case t.Lab != "":
		return "-" + t.Lab
	}
	return ""
}

// Entry is a device of the inventory. Err is set when its definition is invalid,
// in which case Device is nil.
type Entry struct {
	Key    string
	Device *types.Device
	Err    error
}

// Inventory is the ordered set of devices loaded from an inventory file.
type Inventory struct {
	// Path is the file the inventory was loaded from.
	Path    string
	Entries []*Entry
	Tags    Tags
	// raw is the file content before environment expansion.
	raw []byte
	// persistent is false for inventories that can not be rewritten.
	persistent bool
}

type file struct {
	Fortigates yaml.MapSlice `yaml:"fortigates"`
	Tags       Tags          `yaml:"tags,omitempty"`
}

// Load reads the YAML (or JSON) inventory at path. ${VAR} references are expanded
// from the environment. A file that can not be read or parsed is an error; an invalid
// device definition is recorded on its Entry only.
func Load(path string) (*Inventory, error) {
	p, err := utils.ResolvePath(path)
	if err != nil {
		return nil, err
	}

	if !utils.FileExists(p) {
		return nil, fmt.Errorf("%w: inventory %s", fgerrors.ErrFileNotFound, p)
	}

	raw, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory %s: %w", p, err)
	}

	inv, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("inventory %s: %w", p, err)
	}

	inv.Path = p
	inv.persistent = true

	log.Debugf("loaded %d devices from %s", len(inv.Entries), p)

	return inv, nil
}

// Parse parses inventory content, keeping the device order of the document.
func Parse(raw []byte) (*Inventory, error) {
	expanded, err := envsubst.Bytes(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: environment expansion: %v", fgerrors.ErrIncorrectInput, err)
	}

	f := &file{}
	if err := yaml.Unmarshal(expanded, f); err != nil {
		return nil, fmt.Errorf("%w: %v", fgerrors.ErrIncorrectInput, err)
	}

	if len(f.Fortigates) == 0 {
		return nil, fmt.Errorf("%w: no devices defined under %q", fgerrors.ErrIncorrectInput, devicesKey)
	}

	inv := &Inventory{
		Tags: f.Tags,
		raw:  raw,
	}

	seen := map[string]struct{}{}

	for _, item := range f.Fortigates {
		key := fmt.Sprint(item.Key)
		if _, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: duplicate device %q", fgerrors.ErrIncorrectInput, key)
		}
		seen[key] = struct{}{}

		inv.Entries = append(inv.Entries, newEntry(key, item.Value))
	}

	return inv, nil
}

func newEntry(key string, v any) *Entry {
	e := &Entry{Key: key}

	b, err := yaml.Marshal(v)
	if err != nil {
		e.Err = fmt.Errorf("%w: %q: %v", fgerrors.ErrConfiguration, key, err)
		return e
	}

	def := &types.DeviceDefinition{}
	if err := yaml.Unmarshal(b, def); err != nil {
		e.Err = fmt.Errorf("%w: %q: %v", fgerrors.ErrConfiguration, key, err)
		return e
	}

	e.Device, e.Err = types.NewDevice(key, def)

	return e
}

// Devices returns the valid devices in inventory order.
func (inv *Inventory) Devices() []*types.Device {
	var devs []*types.Device
	for _, e := range inv.Entries {
		if e.Device != nil {
			devs = append(devs, e.Device)
		}
	}
	return devs
}
