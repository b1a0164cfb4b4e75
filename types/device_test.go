// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package types

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	fgerrors "github.com/fgfleet/fgfleet/errors"
)

func TestNewDevice(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		def     *DeviceDefinition
		want    *Device
		wantErr error
	}{
		{
			name: "token only",
			key:  "fg-1",
			def:  &DeviceDefinition{IP: "192.168.1.1", APIKey: "nGcsNy89z9Q9bGrm8f4Nps5pxnbQN0"},
			want: &Device{
				Key:     "fg-1",
				Name:    "fg-1",
				Address: "192.168.1.1",
				Token:   "nGcsNy89z9Q9bGrm8f4Nps5pxnbQN0",
				VDOMs:   []string{"root"},
			},
		},
		{
			name: "password with name override",
			key:  "fg-2",
			def:  &DeviceDefinition{IP: "192.168.1.2", Name: "branch-2", Login: "admin", Password: "fortinet"},
			want: &Device{
				Key:      "fg-2",
				Name:     "branch-2",
				Address:  "192.168.1.2",
				Login:    "admin",
				Password: "fortinet",
				VDOMs:    []string{"root"},
			},
		},
		{
			name: "token attribute alias",
			key:  "fg-3",
			def:  &DeviceDefinition{IP: "192.168.1.3", Token: "abc", VDOMs: []string{"root", "dmz"}},
			want: &Device{
				Key:     "fg-3",
				Name:    "fg-3",
				Address: "192.168.1.3",
				Token:   "abc",
				VDOMs:   []string{"root", "dmz"},
			},
		},
		{
			name:    "missing ip",
			key:     "fg-4",
			def:     &DeviceDefinition{APIKey: "abc"},
			wantErr: fgerrors.ErrConfiguration,
		},
		{
			name:    "missing credentials",
			key:     "fg-5",
			def:     &DeviceDefinition{IP: "192.168.1.5", Login: "admin"},
			wantErr: fgerrors.ErrConfiguration,
		},
		{
			name:    "password without login",
			key:     "fg-6",
			def:     &DeviceDefinition{IP: "192.168.1.6", Password: "fortinet"},
			wantErr: fgerrors.ErrConfiguration,
		},
		{
			name:    "nil definition",
			key:     "fg-7",
			wantErr: fgerrors.ErrConfiguration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewDevice(tt.key, tt.def)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewDevice() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewDevice() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("NewDevice() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDeviceAuthMode(t *testing.T) {
	tests := []struct {
		name    string
		device  *Device
		want    AuthMode
		wantErr bool
	}{
		{
			name:   "token preferred over password",
			device: &Device{Key: "fg-1", Login: "admin", Password: "fortinet", Token: "tok"},
			want:   AuthToken,
		},
		{
			name:   "password only",
			device: &Device{Key: "fg-2", Login: "admin", Password: "fortinet"},
			want:   AuthPassword,
		},
		{
			name:    "neither password nor token",
			device:  &Device{Key: "fg-3", Login: "admin"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.device.AuthMode()
			if tt.wantErr {
				if !errors.Is(err, fgerrors.ErrConfiguration) {
					t.Fatalf("AuthMode() error = %v, want ErrConfiguration", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("AuthMode() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("AuthMode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOperatingModeFromVDOMMode(t *testing.T) {
	tests := map[string]OperatingMode{
		"no-vdom":    ModeSingleContext,
		"multi-vdom": ModeMultiContext,
		"split-vdom": ModeMultiContext,
	}

	for in, want := range tests {
		if got := OperatingModeFromVDOMMode(in); got != want {
			t.Errorf("OperatingModeFromVDOMMode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestReadWriteProfile(t *testing.T) {
	p := NewReadWriteProfile("fgfleet_rw")
	if p.IsBuiltin() {
		t.Errorf("profile %q reported as built-in", p.Name)
	}
	if len(p.PermissionGrants) != len(ProfileGroups) {
		t.Fatalf("got %d grants, want %d", len(p.PermissionGrants), len(ProfileGroups))
	}
	for g, lvl := range p.PermissionGrants {
		if lvl != AccessReadWrite {
			t.Errorf("group %q has access %q, want %q", g, lvl, AccessReadWrite)
		}
	}
	if !NewReadWriteProfile("super_admin").IsBuiltin() {
		t.Errorf("super_admin not reported as built-in")
	}
}
