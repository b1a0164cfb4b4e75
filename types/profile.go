// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package types

import "github.com/fgfleet/fgfleet/constants"

// AccessReadWrite is the access level granted to every permission group of a created profile.
const AccessReadWrite = "read-write"

// ProfileGroups are the functional groups granted read-write on a created access profile.
var ProfileGroups = []string{
	"secfabgrp",
	"ftviewgrp",
	"authgrp",
	"sysgrp",
	"netgrp",
	"loggrp",
	"fwgrp",
	"vpngrp",
	"utmgrp",
	"wanoptgrp",
	"wifi",
}

// AccessProfile is a named bundle of permission levels.
type AccessProfile struct {
	Name             string
	PermissionGrants map[string]string
}

// NewReadWriteProfile returns a profile granting read-write on all ProfileGroups.
func NewReadWriteProfile(name string) *AccessProfile {
	p := &AccessProfile{
		Name:             name,
		PermissionGrants: make(map[string]string, len(ProfileGroups)),
	}

	for _, g := range ProfileGroups {
		p.PermissionGrants[g] = AccessReadWrite
	}

	return p
}

// IsBuiltin reports whether the profile is the built-in one that always exists.
func (p *AccessProfile) IsBuiltin() bool {
	return p.Name == constants.SuperAdminProfile
}

// APIUser is a REST principal bound to an access profile.
type APIUser struct {
	Name            string
	BoundProfile    string
	AllowedContexts []string
}
