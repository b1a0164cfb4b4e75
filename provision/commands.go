// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package provision

import (
	"fmt"
	"strings"

	"github.com/fgfleet/fgfleet/types"
)

// ProfileCommand returns the CLI block creating (or updating) access profile p.
// Groups are emitted in types.ProfileGroups order.
func ProfileCommand(p *types.AccessProfile) string {
	var sb strings.Builder

	sb.WriteString("config system accprofile\n")
	fmt.Fprintf(&sb, "edit %q\n", p.Name)
	for _, g := range types.ProfileGroups {
		if lvl, ok := p.PermissionGrants[g]; ok {
			fmt.Fprintf(&sb, "set %s %s\n", g, lvl)
		}
	}
	sb.WriteString("next\nend\n")

	return sb.String()
}

// APIUserCommand returns the CLI block binding api-user u to its profile and contexts.
func APIUserCommand(u *types.APIUser) string {
	var sb strings.Builder

	sb.WriteString("config system api-user\n")
	fmt.Fprintf(&sb, "edit %q\n", u.Name)
	fmt.Fprintf(&sb, "set accprofile %q\n", u.BoundProfile)
	if len(u.AllowedContexts) > 0 {
		vdoms := make([]string, 0, len(u.AllowedContexts))
		for _, v := range u.AllowedContexts {
			vdoms = append(vdoms, fmt.Sprintf("%q", v))
		}
		fmt.Fprintf(&sb, "set vdom %s\n", strings.Join(vdoms, " "))
	}
	sb.WriteString("next\nend\n")

	return sb.String()
}

// GenerateKeyCommand returns the command generating a new API key for api-user name.
func GenerateKeyCommand(name string) string {
	return fmt.Sprintf("execute api-user generate-key %q\n", name)
}
