// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

// Package provision creates the access profile and api-user on a device and
// generates its REST API token.
package provision

import (
	"context"
	"fmt"
	"slices"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/fgfleet/fgfleet/constants"
	fgerrors "github.com/fgfleet/fgfleet/errors"
	"github.com/fgfleet/fgfleet/fortios"
	"github.com/fgfleet/fgfleet/session"
	"github.com/fgfleet/fgfleet/shell"
	"github.com/fgfleet/fgfleet/types"
)

// State is a state of the provisioning flow.
type State string

const (
	StateCheckProfile       State = "CheckProfile"
	StateCreateProfile      State = "CreateProfile"
	StateCheckUser          State = "CheckUser"
	StateCreateOrUpdateUser State = "CreateOrUpdateUser"
	StateGenerateKey        State = "GenerateKey"
	StateSuccess            State = "Success"
	StateFailed             State = "Failed"
)

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool {
	return s == StateSuccess || s == StateFailed
}

// Request names the credentials to provision.
type Request struct {
	// APIUser is the name of the api-user to create or update.
	APIUser string
	// Profile is the access profile bound to the api-user.
	Profile string
	// VDOMs are the contexts the api-user may access.
	VDOMs []string
}

// Validate checks r and fills in defaults. VDOMs may be given space separated,
// "root dmz" names two vdoms.
func (r *Request) Validate() error {
	if r.APIUser == "" {
		return fmt.Errorf("%w: api-user name is required", fgerrors.ErrIncorrectInput)
	}
	if r.Profile == "" {
		r.Profile = constants.SuperAdminProfile
	}

	var vdoms []string
	for _, v := range r.VDOMs {
		for _, f := range strings.Fields(v) {
			if !slices.Contains(vdoms, f) {
				vdoms = append(vdoms, f)
			}
		}
	}
	r.VDOMs = vdoms

	if len(r.VDOMs) == 0 {
		r.VDOMs = []string{constants.DefaultVDOM}
	}
	return nil
}

// Step records the outcome of one state.
type Step struct {
	State   State
	Outcome types.Outcome
}

// Coordinator walks one device through the provisioning states.
// REST answers existence checks, the shell creates objects and generates the key.
type Coordinator struct {
	sess  *session.Session
	req   Request
	state State
	steps []Step
	err   error
}

// NewCoordinator returns a Coordinator for the device of sess, in state StateCheckProfile.
func NewCoordinator(sess *session.Session, req Request) (*Coordinator, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return &Coordinator{
		sess:  sess,
		req:   req,
		state: StateCheckProfile,
	}, nil
}

// State returns the current state.
func (c *Coordinator) State() State {
	return c.state
}

// Steps returns the outcome of every state visited so far.
func (c *Coordinator) Steps() []Step {
	return c.steps
}

// Run drives the state machine to a terminal state. On success the generated token
// is recorded on the device and returned. The session must be open.
func (c *Coordinator) Run(ctx context.Context) (string, error) {
	dev := c.sess.Device

	if dev.OperatingMode == types.ModeUnknown {
		if _, err := c.sess.DetectOperatingMode(ctx); err != nil {
			c.state = StateFailed
			return "", err
		}
	}

	var token string
	for !c.state.Terminal() {
		next, t, err := c.step(ctx)
		if err != nil {
			c.record(types.OutcomeFailed)
			log.WithField("device", dev.Key).Errorf("%s: %v", c.state, err)
			c.err = err
			c.state = StateFailed
			break
		}
		if t != "" {
			token = t
		}
		c.state = next
	}

	if c.state != StateSuccess {
		return "", c.err
	}

	dev.Token = token

	return token, nil
}

func (c *Coordinator) step(ctx context.Context) (State, string, error) {
	l := log.WithField("device", c.sess.Device.Key)
	profile := c.profile()

	switch c.state {
	case StateCheckProfile:
		if profile.IsBuiltin() {
			l.Infof("access profile %q is built-in", profile.Name)
			c.record(types.OutcomeSuccess)
			return StateCheckUser, "", nil
		}

		_, found, err := c.sess.REST.AccessProfile(ctx, profile.Name)
		if err != nil {
			return "", "", err
		}
		if found {
			l.Infof("access profile %q: Found", profile.Name)
			c.record(types.OutcomeSuccess)
			return StateCheckUser, "", nil
		}

		l.Infof("access profile %q: Not Found", profile.Name)
		c.record(types.OutcomeNotFound)
		return StateCreateProfile, "", nil

	case StateCreateProfile:
		if _, err := c.run(ctx, ProfileCommand(profile)); err != nil {
			return "", "", err
		}

		_, found, err := c.sess.REST.AccessProfile(ctx, profile.Name)
		if err != nil {
			return "", "", err
		}
		if !found {
			return "", "", fmt.Errorf("%w: access profile %q not present after creation",
				fgerrors.ErrRemoteOperation, profile.Name)
		}

		l.Infof("create access profile %q: Success", profile.Name)
		c.record(types.OutcomeSuccess)
		return StateCheckUser, "", nil

	case StateCheckUser:
		// the binding is re-applied unconditionally to keep the bound profile current
		c.record(types.OutcomeSuccess)
		return StateCreateOrUpdateUser, "", nil

	case StateCreateOrUpdateUser:
		u := c.apiUser()
		if _, err := c.run(ctx, APIUserCommand(u)); err != nil {
			return "", "", err
		}

		got, found, err := c.sess.REST.APIUser(ctx, u.Name)
		if err != nil {
			return "", "", err
		}
		if !found {
			return "", "", fmt.Errorf("%w: api-user %q not present after update",
				fgerrors.ErrRemoteOperation, u.Name)
		}
		if got.AccProfile != u.BoundProfile {
			return "", "", fmt.Errorf("%w: api-user %q is bound to %q instead of %q",
				fgerrors.ErrRemoteOperation, u.Name, got.AccProfile, u.BoundProfile)
		}
		if !sameVDOMs(got.VDOM, u.AllowedContexts) {
			return "", "", fmt.Errorf("%w: api-user %q is bound to vdoms %v instead of %v",
				fgerrors.ErrRemoteOperation, u.Name, vdomNames(got.VDOM), u.AllowedContexts)
		}

		l.Infof("add/update api-user %q: Success", u.Name)
		c.record(types.OutcomeSuccess)
		return StateGenerateKey, "", nil

	case StateGenerateKey:
		out, err := c.run(ctx, GenerateKeyCommand(c.req.APIUser))
		if err != nil {
			return "", "", err
		}

		token, err := shell.ExtractToken(out, c.sess.Device.OperatingMode)
		if err != nil {
			return "", "", err
		}

		l.Infof("generate api key for %q: Success", c.req.APIUser)
		c.record(types.OutcomeSuccess)
		return StateSuccess, token, nil
	}

	return "", "", fmt.Errorf("no transition from state %s", c.state)
}

// run executes command over the shell, wrapped per the device operating mode.
func (c *Coordinator) run(ctx context.Context, command string) (string, error) {
	return c.sess.Shell.Run(ctx, shell.Wrap(command, c.sess.Device.OperatingMode))
}

// sameVDOMs reports whether the vdoms read back match want, in any order.
// A device that does not report vdoms is not checked.
func sameVDOMs(got []fortios.VDOMRef, want []string) bool {
	if len(got) == 0 {
		return true
	}

	names := vdomNames(got)
	if len(names) != len(want) {
		return false
	}

	for _, w := range want {
		if !slices.Contains(names, w) {
			return false
		}
	}

	return true
}

func vdomNames(refs []fortios.VDOMRef) []string {
	names := make([]string, 0, len(refs))
	for _, r := range refs {
		names = append(names, r.Name)
	}
	return names
}

func (c *Coordinator) record(o types.Outcome) {
	c.steps = append(c.steps, Step{State: c.state, Outcome: o})
}

func (c *Coordinator) profile() *types.AccessProfile {
	return types.NewReadWriteProfile(c.req.Profile)
}

func (c *Coordinator) apiUser() *types.APIUser {
	return &types.APIUser{
		Name:            c.req.APIUser,
		BoundProfile:    c.req.Profile,
		AllowedContexts: c.req.VDOMs,
	}
}
