// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package inventory

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	fgerrors "github.com/fgfleet/fgfleet/errors"
	"github.com/fgfleet/fgfleet/types"
)

const testToken = "nGcsNy89z9Q9bGrm8f4Nps5pxnbQN0"

const testInventory = `tags:
  lab: fgsp
  note: vlans
fortigates:
  fg-2:
    ip: 192.0.2.2
    login: admin
    password: ${FGFLEET_TEST_PASSWORD}
  fg-1:
    ip: 192.0.2.1
    name: branch-1
    apikey: ` + testToken + `
  broken:
    login: admin
    password: fortinet
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoad(t *testing.T) {
	t.Setenv("FGFLEET_TEST_PASSWORD", "s3cret")
	p := writeFile(t, t.TempDir(), "lab.yml", testInventory)

	inv, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, Tags{Lab: "fgsp", Note: "vlans"}, inv.Tags)
	require.Len(t, inv.Entries, 3)

	// document order is kept
	keys := []string{}
	for _, e := range inv.Entries {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"fg-2", "fg-1", "broken"}, keys)

	want := []*types.Device{
		{
			Key: "fg-2", Name: "fg-2", Address: "192.0.2.2",
			Login: "admin", Password: "s3cret", VDOMs: []string{"root"},
		},
		{
			Key: "fg-1", Name: "branch-1", Address: "192.0.2.1",
			Token: testToken, VDOMs: []string{"root"},
		},
	}
	if d := cmp.Diff(want, inv.Devices()); d != "" {
		t.Errorf("devices mismatch (-want +got):\n%s", d)
	}

	assert.True(t, errors.Is(inv.Entries[2].Err, fgerrors.ErrConfiguration))
	assert.Nil(t, inv.Entries[2].Device)
}

func TestLoadJSON(t *testing.T) {
	p := writeFile(t, t.TempDir(), "lab.json",
		`{"fortigates": {"fg-1": {"ip": "192.0.2.1", "token": "`+testToken+`"}}}`)

	inv, err := Load(p)
	require.NoError(t, err)
	require.Len(t, inv.Devices(), 1)
	assert.Equal(t, testToken, inv.Devices()[0].Token)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yml"))
	assert.True(t, errors.Is(err, fgerrors.ErrFileNotFound))

	_, err = Load(writeFile(t, dir, "bad.yml", "fortigates: [a, b\n"))
	assert.True(t, errors.Is(err, fgerrors.ErrIncorrectInput))

	_, err = Load(writeFile(t, dir, "empty.yml", "tags:\n  lab: x\n"))
	assert.True(t, errors.Is(err, fgerrors.ErrIncorrectInput))
}

func TestSaveTokensYAML(t *testing.T) {
	t.Setenv("FGFLEET_TEST_PASSWORD", "s3cret")
	p := writeFile(t, t.TempDir(), "lab.yml", testInventory)

	inv, err := Load(p)
	require.NoError(t, err)

	require.NoError(t, inv.SaveTokens(map[string]string{"fg-2": testToken}))

	orig, err := os.ReadFile(p + ".orig")
	require.NoError(t, err)
	assert.Equal(t, testInventory, string(orig))

	b, err := os.ReadFile(p)
	require.NoError(t, err)

	// secrets stay unexpanded
	assert.Contains(t, string(b), "${FGFLEET_TEST_PASSWORD}")
	assert.NotContains(t, string(b), "s3cret")
	// order is kept
	assert.Less(t, strings.Index(string(b), "fg-2:"), strings.Index(string(b), "fg-1:"))

	var doc struct {
		Fortigates map[string]map[string]string `yaml:"fortigates"`
	}
	require.NoError(t, yaml.Unmarshal(b, &doc))
	assert.Equal(t, testToken, doc.Fortigates["fg-2"]["apikey"])
	assert.Equal(t, "admin", doc.Fortigates["fg-2"]["login"])

	reloaded, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, testToken, reloaded.Devices()[0].Token)
}

func TestSaveTokensReplacesKey(t *testing.T) {
	p := writeFile(t, t.TempDir(), "lab.yml",
		"fortigates:\n  fg-1:\n    ip: 192.0.2.1\n    login: admin\n    password: x\n    apikey: old\n")

	inv, err := Load(p)
	require.NoError(t, err)
	require.NoError(t, inv.SaveTokens(map[string]string{"fg-1": testToken}))

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(b), "apikey"))
	assert.Contains(t, string(b), testToken)
}

func TestSaveTokensJSON(t *testing.T) {
	p := writeFile(t, t.TempDir(), "lab.json",
		`{"fortigates": {"fg-1": {"ip": "192.0.2.1", "login": "admin", "password": "x"}}}`)

	inv, err := Load(p)
	require.NoError(t, err)
	require.NoError(t, inv.SaveTokens(map[string]string{"fg-1": testToken}))

	reloaded, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, testToken, reloaded.Devices()[0].Token)
	assert.FileExists(t, p+".orig")
}

func TestSaveTokensNothingToSave(t *testing.T) {
	p := writeFile(t, t.TempDir(), "lab.yml", "fortigates:\n  fg-1:\n    ip: 192.0.2.1\n    apikey: x\n")

	inv, err := Load(p)
	require.NoError(t, err)
	require.NoError(t, inv.SaveTokens(nil))
	assert.NoFileExists(t, p+".orig")
}

func TestLoadEvoke(t *testing.T) {
	p := writeFile(t, t.TempDir(), "lab.json", `{
  "template": {"name": "sdwan-lab"},
  "vms": [
    {"name": "FGT-A", "externalIp": "192.0.2.11", "image": {"imageType": "fgt", "user": "admin", "password": "pw"}},
    {"name": "ubuntu", "externalIp": "192.0.2.12", "image": {"imageType": "linux", "user": "root", "password": "pw"}},
    {"name": "FGT-B", "externalIp": "192.0.2.13", "image": {"imageType": "fgt", "user": "admin", "password": "pw"}}
  ]
}`)

	inv, err := LoadEvoke(p)
	require.NoError(t, err)
	assert.Equal(t, "sdwan-lab", inv.Tags.Lab)

	devs := inv.Devices()
	require.Len(t, devs, 2)
	assert.Equal(t, "FGT-A", devs[0].Key)
	assert.Equal(t, "192.0.2.13", devs[1].Address)

	assert.Error(t, inv.SaveTokens(map[string]string{"FGT-A": testToken}))
}

func TestSkipList(t *testing.T) {
	p := writeFile(t, t.TempDir(), "skip.txt", "# non fortigate devices\nubuntu\n\n  win \n")

	s, err := LoadSkipList(p)
	require.NoError(t, err)
	assert.Equal(t, SkipList{"ubuntu", "win"}, s)

	w, ok := s.Match("lab-ubuntu-01")
	assert.True(t, ok)
	assert.Equal(t, "ubuntu", w)

	_, ok = s.Match("fg-1")
	assert.False(t, ok)

	s, err = LoadSkipList("")
	require.NoError(t, err)
	assert.Empty(t, s)

	_, err = LoadSkipList(filepath.Join(t.TempDir(), "missing"))
	assert.True(t, errors.Is(err, fgerrors.ErrFileNotFound))
}

func TestSelectFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.yaml", "")
	writeFile(t, dir, "a.yml", "")
	writeFile(t, dir, "notes.txt", "")
	writeFile(t, dir, "c.json", "")

	var out bytes.Buffer
	got, err := SelectFile(dir, strings.NewReader("2\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "b.yaml"), got)
	assert.Contains(t, out.String(), "1. a.yml")
	assert.NotContains(t, out.String(), "notes.txt")

	for _, in := range []string{"0\n", "4\n", "x\n", ""} {
		_, err = SelectFile(dir, strings.NewReader(in), &out)
		assert.True(t, errors.Is(err, fgerrors.ErrIncorrectInput), in)
	}

	_, err = SelectFile(t.TempDir(), strings.NewReader("1\n"), &out)
	assert.True(t, errors.Is(err, fgerrors.ErrFileNotFound))
}

func TestFindRestoreFile(t *testing.T) {
	lab := Tags{Lab: "lab"}

	tests := map[string]struct {
		device  string
		tags    Tags
		files   []string
		want    string
		wantErr error
	}{
		"exact": {
			device: "fg-1",
			files:  []string{"fg-1.conf", "fg-10.conf", "fg-1-old.conf"},
			want:   "fg-1.conf",
		},
		"dated with tag": {
			device: "fg-1",
			tags:   lab,
			files:  []string{"2024-01-02-101500_fg-1-lab.conf", "2024-01-02-101500_fg-10-lab.conf"},
			want:   "2024-01-02-101500_fg-1-lab.conf",
		},
		"dated without tag": {
			device: "fg-1",
			tags:   lab,
			files:  []string{"2024-01-02-101500_fg-1.conf"},
			want:   "2024-01-02-101500_fg-1.conf",
		},
		"shorter name is not chosen": {
			device:  "fg",
			files:   []string{"2024-01-02-101500_fg-1.conf"},
			wantErr: fgerrors.ErrValidation,
		},
		"shorter name with its own backup": {
			device: "fg",
			files:  []string{"2024-01-02-101500_fg-1.conf", "2024-01-02-101500_fg.conf"},
			want:   "2024-01-02-101500_fg.conf",
		},
		"dash suffix is not a tag": {
			device:  "fg-1",
			files:   []string{"fg-1-dr.conf"},
			wantErr: fgerrors.ErrValidation,
		},
		"foreign tag": {
			device:  "fg-1",
			tags:    lab,
			files:   []string{"2024-01-02-101500_fg-1-prod.conf"},
			wantErr: fgerrors.ErrValidation,
		},
		"no prefix collision": {
			device:  "fg-1",
			files:   []string{"fg-10.conf", "xfg-1.conf"},
			wantErr: fgerrors.ErrFileNotFound,
		},
		"ambiguous": {
			device:  "fg-1",
			files:   []string{"2024-01-02-101500_fg-1.conf", "2024-02-02-101500_fg-1.conf"},
			wantErr: fgerrors.ErrValidation,
		},
		"other extensions ignored": {
			device:  "fg-1",
			files:   []string{"fg-1.txt", "fg-1.conf.orig"},
			wantErr: fgerrors.ErrFileNotFound,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			for _, f := range tc.files {
				writeFile(t, dir, f, "#config-version=x\n")
			}

			got, err := FindRestoreFile(dir, &types.Device{Key: tc.device, Name: tc.device}, tc.tags)
			if tc.wantErr != nil {
				assert.True(t, errors.Is(err, tc.wantErr), err)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, tc.want), got)
		})
	}
}

func TestTagsSuffix(t *testing.T) {
	assert.Equal(t, "", Tags{}.Suffix())
	assert.Equal(t, "-lab", Tags{Lab: "lab"}.Suffix())
	assert.Equal(t, "-lab--upgrade", Tags{Lab: "lab", Note: "upgrade"}.Suffix())
	assert.Equal(t, "", Tags{Note: "upgrade"}.Suffix())
}

func TestFindRestoreFileByKey(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "fg-1.conf", "")

	got, err := FindRestoreFile(dir, &types.Device{Key: "fg-1", Name: "branch-1"}, Tags{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "fg-1.conf"), got)
}
