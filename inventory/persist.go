// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package inventory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/fgfleet/fgfleet/constants"
	fgerrors "github.com/fgfleet/fgfleet/errors"
	"github.com/fgfleet/fgfleet/utils"
)

const apiKeyField = "apikey"

// SaveTokens writes tokens (device key to token) into the inventory file as the
// apikey attribute of each device. The file is first copied to a .orig sibling.
// The rewrite starts from the unexpanded content so ${VAR} references are kept,
// and device order is preserved.
func (inv *Inventory) SaveTokens(tokens map[string]string) error {
	if len(tokens) == 0 {
		return nil
	}

	if !inv.persistent {
		return fmt.Errorf("%w: inventory %s can not be rewritten", fgerrors.ErrIncorrectInput, inv.Path)
	}

	orig := inv.Path + constants.OrigFileSuffix
	if err := utils.CopyFile(inv.Path, orig, constants.PermissionsSecretFile); err != nil {
		return fmt.Errorf("could not copy inventory for safe keeping: %w", err)
	}
	log.Infof("copied inventory %s to %s", inv.Path, orig)

	var (
		out []byte
		err error
	)

	if strings.EqualFold(filepath.Ext(inv.Path), ".json") {
		out, err = setTokensJSON(inv.raw, tokens)
	} else {
		out, err = setTokensYAML(inv.raw, tokens)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(inv.Path, out, constants.PermissionsSecretFile); err != nil {
		return fmt.Errorf("failed to write inventory %s: %w", inv.Path, err)
	}

	inv.raw = out
	log.Infof("inventory %s updated with %d api keys", inv.Path, len(tokens))

	return nil
}

func setTokensYAML(raw []byte, tokens map[string]string) ([]byte, error) {
	var doc yaml.MapSlice
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", fgerrors.ErrIncorrectInput, err)
	}

	for i := range doc {
		if fmt.Sprint(doc[i].Key) != devicesKey {
			continue
		}

		devices, ok := doc[i].Value.(yaml.MapSlice)
		if !ok {
			return nil, fmt.Errorf("%w: %q is not a mapping", fgerrors.ErrIncorrectInput, devicesKey)
		}

		for j := range devices {
			token, ok := tokens[fmt.Sprint(devices[j].Key)]
			if !ok {
				continue
			}

			attrs, _ := devices[j].Value.(yaml.MapSlice)
			devices[j].Value = setMapSliceValue(attrs, apiKeyField, token)
		}

		doc[i].Value = devices
	}

	return yaml.Marshal(doc)
}

func setMapSliceValue(m yaml.MapSlice, key string, value any) yaml.MapSlice {
	for i := range m {
		if fmt.Sprint(m[i].Key) == key {
			m[i].Value = value
			return m
		}
	}

	return append(m, yaml.MapItem{Key: key, Value: value})
}

func setTokensJSON(raw []byte, tokens map[string]string) ([]byte, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", fgerrors.ErrIncorrectInput, err)
	}

	devices, ok := doc[devicesKey].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not an object", fgerrors.ErrIncorrectInput, devicesKey)
	}

	for key, token := range tokens {
		attrs, ok := devices[key].(map[string]any)
		if !ok {
			continue
		}
		attrs[apiKeyField] = token
	}

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(b, '\n'), nil
}
