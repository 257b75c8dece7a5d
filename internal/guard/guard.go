// Copyright (c) 2025 Passgate
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package guard gates access to protected commands based on the current
// authentication state. Only a settled Authenticated phase allows access;
// Unknown in particular does not, so protected output is never shown before
// session restore has finished.
package guard

import (
	"context"
	"errors"

	"passgate/cli/internal/auth"
)

// ErrLoginRequired is returned when a protected command runs without an
// authenticated session.
var ErrLoginRequired = errors.New("not logged in; run 'passgate login' first")

// StateReader is the read half of the state machine the guard consumes.
type StateReader interface {
	State() auth.State
}

// StateSource adds change notification, for consumers that track the
// decision over time.
type StateSource interface {
	StateReader
	OnChange(func(auth.State))
}

// Decision is the outcome of evaluating a state.
type Decision struct {
	Allowed bool
	// Reason explains a denial in user-facing terms. Empty when allowed.
	Reason string
}

// Check maps a state to an access decision.
func Check(st auth.State) Decision {
	switch st.Phase {
	case auth.PhaseAuthenticated:
		return Decision{Allowed: true}
	case auth.PhaseAuthenticating:
		return Decision{Allowed: false, Reason: "authentication is still in progress"}
	case auth.PhaseFailed:
		return Decision{Allowed: false, Reason: "the last authentication attempt failed"}
	default:
		// Unknown and Unauthenticated both read as logged out.
		return Decision{Allowed: false, Reason: "you are not logged in"}
	}
}

// Require returns ErrLoginRequired unless the reader's current state allows
// access.
func Require(r StateReader) error {
	if d := Check(r.State()); !d.Allowed {
		return ErrLoginRequired
	}
	return nil
}

// Protect wraps fn so it only runs once the guard admits the current state.
func Protect(r StateReader, fn func(ctx context.Context) error) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if err := Require(r); err != nil {
			return err
		}
		return fn(ctx)
	}
}

// Watch reports the decision for the current state immediately, then again
// after every state change.
func Watch(src StateSource, fn func(Decision)) {
	fn(Check(src.State()))
	src.OnChange(func(s auth.State) {
		fn(Check(s))
	})
}
