// Copyright (c) 2025 Passgate
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package auth implements the authentication state machine for the CLI.
// It is the single authority over authentication state: commands (login,
// register, logout, restore) are serialized so at most one operation is in
// flight, state reads never block, and every failure path ends in either a
// state transition or a logged observation.
package auth

import (
	"passgate/cli/internal/account"
	"passgate/cli/internal/errs"
)

// Phase enumerates the authentication lifecycle.
type Phase string

const (
	// PhaseUnknown is the initial phase before restore has run. It is never
	// treated as authenticated.
	PhaseUnknown Phase = "unknown"
	// PhaseAuthenticating means a login or register call is in flight.
	PhaseAuthenticating Phase = "authenticating"
	// PhaseAuthenticated means a session is active.
	PhaseAuthenticated Phase = "authenticated"
	// PhaseUnauthenticated means no session exists.
	PhaseUnauthenticated Phase = "unauthenticated"
	// PhaseFailed means the last command failed; Kind and Cause say why.
	PhaseFailed Phase = "failed"
)

// State is a snapshot of the machine. Session is non-nil exactly when Phase
// is PhaseAuthenticated; Kind and Cause are set exactly when Phase is
// PhaseFailed.
type State struct {
	Phase   Phase
	Session *account.Session
	Kind    errs.Kind
	Cause   string
}

// Authenticated reports whether the state carries an active session.
func (s State) Authenticated() bool {
	return s.Phase == PhaseAuthenticated
}

func unknown() State {
	return State{Phase: PhaseUnknown}
}

func authenticating() State {
	return State{Phase: PhaseAuthenticating}
}

func authenticated(sess account.Session) State {
	return State{Phase: PhaseAuthenticated, Session: &sess}
}

func unauthenticated() State {
	return State{Phase: PhaseUnauthenticated}
}

func failed(err error) State {
	return State{
		Phase: PhaseFailed,
		Kind:  errs.KindOf(err),
		Cause: errs.MessageOf(err),
	}
}
