// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fgerrors "github.com/fgfleet/fgfleet/errors"
	"github.com/fgfleet/fgfleet/fortios"
	"github.com/fgfleet/fgfleet/inventory"
	"github.com/fgfleet/fgfleet/mocks/mocksession"
	"github.com/fgfleet/fgfleet/mocks/mockshell"
	"github.com/fgfleet/fgfleet/provision"
	"github.com/fgfleet/fgfleet/session"
	"github.com/fgfleet/fgfleet/types"
)

const keygenToken = "nGcsNy89z9Q9bGrm8f4Nps5pxnbQN0"

const keygenInventory = `tags:
  lab: fgsp
fortigates:
  fg-1:
    ip: 192.0.2.1
    login: admin
    password: ${FGFLEET_TEST_PASSWORD}
  fg-2:
    ip: 192.0.2.2
    login: admin
    password: ${FGFLEET_TEST_PASSWORD}
`

type deviceMocks struct {
	rest *mocksession.MockREST
	sh   *mockshell.MockShell
}

// stubSessions makes provisionDevice use mocked transports, one pair per device key.
func stubSessions(t *testing.T, keys ...string) map[string]deviceMocks {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := map[string]deviceMocks{}
	for _, k := range keys {
		m[k] = deviceMocks{rest: mocksession.NewMockREST(ctrl), sh: mockshell.NewMockShell(ctrl)}
	}

	saved := newSession
	newSession = func(dev *types.Device, _ types.RunConfig) (*session.Session, error) {
		dm, ok := m[dev.Key]
		if !ok {
			return nil, errors.New("unexpected device " + dev.Key)
		}
		return session.New(dev, dm.rest, dm.sh), nil
	}
	t.Cleanup(func() { newSession = saved })

	return m
}

func TestRunKeygen(t *testing.T) {
	t.Setenv("FGFLEET_TEST_PASSWORD", "fortinet")

	p := filepath.Join(t.TempDir(), "lab.yml")
	require.NoError(t, os.WriteFile(p, []byte(keygenInventory), 0o600))

	inv, err := inventory.Load(p)
	require.NoError(t, err)

	m := stubSessions(t, "fg-1", "fg-2")
	ctx := context.Background()

	// fg-1 is a multi-vdom device and gets a key
	fg1 := m["fg-1"]
	gomock.InOrder(
		fg1.rest.EXPECT().Login(gomock.Any()).Return(nil),
		fg1.sh.EXPECT().Open(gomock.Any()).Return(nil),
		fg1.rest.EXPECT().SystemGlobal(gomock.Any()).Return(&fortios.SystemGlobal{VDOMMode: "multi-vdom"}, nil),
		fg1.sh.EXPECT().Run(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, cmd string) (string, error) {
				assert.True(t, strings.HasPrefix(cmd, "config global\nconfig system api-user\n"), cmd)
				assert.Contains(t, cmd, "set vdom \"root\" \"dmz\"\n")
				return "", nil
			}),
		fg1.rest.EXPECT().APIUser(gomock.Any(), "fgfleet").
			Return(&fortios.APIUser{Name: "fgfleet", AccProfile: "super_admin",
				VDOM: []fortios.VDOMRef{{Name: "root"}, {Name: "dmz"}}}, true, nil),
		fg1.sh.EXPECT().Run(gomock.Any(), "config global\nexecute api-user generate-key \"fgfleet\"\nend\n").
			Return("FGT01 (global) # execute api-user generate-key \"fgfleet\"\nNew API key: \n\n   "+
				keygenToken+"\n", nil),
		fg1.rest.EXPECT().Logout(gomock.Any()).Return(nil),
		fg1.sh.EXPECT().Close().Return(nil),
	)

	// fg-2 can not be reached over ssh, its REST session is closed again
	fg2 := m["fg-2"]
	gomock.InOrder(
		fg2.rest.EXPECT().Login(gomock.Any()).Return(nil),
		fg2.sh.EXPECT().Open(gomock.Any()).Return(errors.New("dial tcp 192.0.2.2:22: i/o timeout")),
		fg2.rest.EXPECT().Logout(gomock.Any()).Return(nil),
	)

	opts := &Options{Global: &GlobalOptions{}}
	req := provision.Request{APIUser: "fgfleet", VDOMs: []string{"root dmz"}}
	require.NoError(t, req.Validate())

	rep, err := runKeygen(ctx, opts, inv, req)
	require.NoError(t, err)

	require.Len(t, rep.Results, 2)
	assert.Equal(t, types.OutcomeSuccess, rep.Results[0].Outcome)
	assert.Equal(t, types.OutcomeFailed, rep.Results[1].Outcome)
	assert.Contains(t, rep.Results[1].Reason, fgerrors.ErrConnection.Error())

	orig, err := os.ReadFile(p + ".orig")
	require.NoError(t, err)
	assert.Equal(t, keygenInventory, string(orig))

	updated, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(updated), "apikey: "+keygenToken)
	assert.Equal(t, 1, strings.Count(string(updated), "apikey:"))
	assert.Contains(t, string(updated), "${FGFLEET_TEST_PASSWORD}")

	reloaded, err := inventory.Load(p)
	require.NoError(t, err)
	assert.Equal(t, keygenToken, reloaded.Entries[0].Device.Token)
	assert.Empty(t, reloaded.Entries[1].Device.Token)
}

func TestRunKeygenNothingGenerated(t *testing.T) {
	t.Setenv("FGFLEET_TEST_PASSWORD", "fortinet")

	p := filepath.Join(t.TempDir(), "lab.yml")
	require.NoError(t, os.WriteFile(p, []byte(keygenInventory), 0o600))

	inv, err := inventory.Load(p)
	require.NoError(t, err)

	m := stubSessions(t, "fg-1", "fg-2")
	for _, dm := range m {
		dm.rest.EXPECT().Login(gomock.Any()).Return(fgerrors.ErrAuthentication)
	}

	rep, err := runKeygen(context.Background(), &Options{Global: &GlobalOptions{}}, inv,
		provision.Request{APIUser: "fgfleet"})
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Failed())

	assert.NoFileExists(t, p+".orig")
	got, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, keygenInventory, string(got))
}
