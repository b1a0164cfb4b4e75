// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package shell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fgerrors "github.com/fgfleet/fgfleet/errors"
	"github.com/fgfleet/fgfleet/types"
)

func TestWrap(t *testing.T) {
	commands := []string{
		"execute api-user generate-key fgfleet\n",
		"config system api-user\nedit \"fgfleet\"\nset accprofile \"super_admin\"\nnext\nend\n",
		"show system global",
	}

	for _, c := range commands {
		assert.Equal(t, c, Wrap(c, types.ModeSingleContext))
		assert.Equal(t, c, Wrap(c, types.ModeUnknown))

		w := Wrap(c, types.ModeMultiContext)
		assert.Regexp(t, `^config global\n`, w)
		assert.Regexp(t, `\nend\n$`, w)
		assert.Contains(t, w, c)
	}

	assert.Equal(t, "config global\nshow system global\nend\n",
		Wrap("show system global", types.ModeMultiContext))
}

func TestNew(t *testing.T) {
	cfg := Config{Host: "192.0.2.1", Username: "admin", Password: "fortinet"}

	s, err := New(DriverSSH, cfg)
	require.NoError(t, err)
	assert.IsType(t, &SSH{}, s)

	s, err = New("", cfg)
	require.NoError(t, err)
	assert.IsType(t, &SSH{}, s)

	s, err = New(DriverScrapli, cfg)
	require.NoError(t, err)
	assert.IsType(t, &Scrapli{}, s)

	_, err = New("telnet", cfg)
	assert.True(t, errors.Is(err, fgerrors.ErrIncorrectInput))

	_, err = New(DriverSSH, Config{Host: "192.0.2.1", Username: "admin"})
	assert.True(t, errors.Is(err, fgerrors.ErrConfiguration))
}

func TestRunBeforeOpen(t *testing.T) {
	_, err := NewSSH(Config{Host: "192.0.2.1"}).Run(testContext(t), "get system status")
	assert.True(t, errors.Is(err, fgerrors.ErrConnection))

	_, err = NewScrapli(Config{Host: "192.0.2.1"}).Run(testContext(t), "get system status")
	assert.True(t, errors.Is(err, fgerrors.ErrConnection))

	assert.NoError(t, NewSSH(Config{}).Close())
	assert.NoError(t, NewScrapli(Config{}).Close())
}
