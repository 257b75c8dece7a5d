// Copyright (c) 2025 Passgate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"passgate/cli/internal/account"
	"passgate/cli/internal/errs"
	"passgate/cli/internal/logging"
	"passgate/cli/internal/store"
)

// ErrAlreadyAuthenticated rejects login and register while a session is
// active. Log out first.
var ErrAlreadyAuthenticated = errors.New("already authenticated")

// Credentials is the slice of the credential service the machine depends
// on. backend.CredentialService satisfies it; tests provide fakes.
type Credentials interface {
	Login(ctx context.Context, email, password string) (map[string]any, error)
	Register(ctx context.Context, name, email, password string) (map[string]any, error)
	Logout(ctx context.Context, token string) error
}

// Machine owns the authentication state. Login, Register and Restore are
// serialized: a command issued while one is in flight is rejected, not
// queued. Logout is exempt and always proceeds; a logout during an
// in-flight operation wins, and the late result is discarded.
type Machine struct {
	creds       Credentials
	store       store.Store
	log         *slog.Logger
	minPassword int

	mu       sync.Mutex
	state    State
	busy     bool
	gen      uint64 // bumped by Logout so in-flight results go stale
	watchers []func(State)
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the machine's logger. The default drops everything.
func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) { m.log = l }
}

// WithMinPasswordLen overrides the register password length floor.
func WithMinPasswordLen(n int) Option {
	return func(m *Machine) { m.minPassword = n }
}

// New builds a machine in the Unknown phase.
func New(creds Credentials, st store.Store, opts ...Option) *Machine {
	m := &Machine{
		creds:       creds,
		store:       st,
		log:         logging.Nop(),
		minPassword: DefaultMinPasswordLen,
		state:       unknown(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the current snapshot. Never blocks on I/O; safe to call
// from any goroutine, including while a command is in flight.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Machine) snapshotLocked() State {
	s := m.state
	if s.Session != nil {
		copied := *s.Session
		s.Session = &copied
	}
	return s
}

// OnChange registers fn to run after every transition, in transition order.
// Callbacks run outside the machine's lock, so they may read State.
func (m *Machine) OnChange(fn func(State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.watchers = append(m.watchers, fn)
}

func (m *Machine) notify(s State) {
	m.mu.Lock()
	ws := make([]func(State), len(m.watchers))
	copy(ws, m.watchers)
	m.mu.Unlock()
	for _, fn := range ws {
		fn(s)
	}
}

// Restore loads the persisted session. Valid only from Unknown: from any
// other settled phase it is a no-op returning the current state. A missing,
// invalid or unreadable session fails open to Unauthenticated, never to
// Authenticated.
func (m *Machine) Restore(ctx context.Context) (State, error) {
	m.mu.Lock()
	if m.busy {
		cur := m.snapshotLocked()
		m.mu.Unlock()
		return cur, errs.New(errs.KindConcurrentOperation, "another operation is in progress")
	}
	if m.state.Phase != PhaseUnknown {
		cur := m.snapshotLocked()
		m.mu.Unlock()
		return cur, nil
	}
	gen := m.gen
	m.busy = true
	m.mu.Unlock()

	next := unauthenticated()
	sess, err := m.store.Load(ctx)
	switch {
	case err != nil:
		m.log.Warn("session restore failed, treating as logged out", "error", err)
	case sess == nil:
		m.log.Debug("no stored session")
	case !sess.Valid():
		m.log.Warn("stored session is not usable, ignoring it")
	default:
		next = authenticated(*sess)
	}

	return m.commit(gen, next, nil)
}

// Login runs the login command. Valid from Unknown, Unauthenticated and
// Failed. Local validation happens first; the credential service is never
// contacted for input the machine can reject itself.
func (m *Machine) Login(ctx context.Context, req LoginRequest) (State, error) {
	req = req.normalized()

	gen, st, ok, err := m.beginAuth(func() error { return req.Validate() })
	if !ok {
		return st, err
	}

	m.log.Debug("login started")
	raw, callErr := m.creds.Login(ctx, req.Email, req.Password)
	return m.settle(ctx, gen, raw, callErr)
}

// Register runs the register command. Same shape as Login, but a successful
// response creates the account and its first session in one step.
func (m *Machine) Register(ctx context.Context, req RegisterRequest) (State, error) {
	req = req.normalized()

	gen, st, ok, err := m.beginAuth(func() error { return req.Validate(m.minPassword) })
	if !ok {
		return st, err
	}

	m.log.Debug("register started")
	raw, callErr := m.creds.Register(ctx, req.Name, req.Email, req.Password)
	return m.settle(ctx, gen, raw, callErr)
}

// beginAuth applies the shared entry checks for login and register. When
// ok, the machine is marked busy and gen is the generation to settle
// against; otherwise st is the state the caller should report.
func (m *Machine) beginAuth(validate func() error) (gen uint64, st State, ok bool, err error) {
	m.mu.Lock()
	if m.busy {
		cur := m.snapshotLocked()
		m.mu.Unlock()
		return 0, cur, false, errs.New(errs.KindConcurrentOperation, "another operation is in progress")
	}
	if m.state.Phase == PhaseAuthenticated {
		cur := m.snapshotLocked()
		m.mu.Unlock()
		return 0, cur, false, ErrAlreadyAuthenticated
	}
	if verr := validate(); verr != nil {
		wrapped := errs.Wrap(errs.KindValidation, verr.Error(), verr)
		next := failed(wrapped)
		m.state = next
		m.mu.Unlock()
		m.notify(next)
		m.log.Debug("rejected by local validation", "error", verr)
		return 0, next, false, wrapped
	}
	gen = m.gen
	m.busy = true
	next := authenticating()
	m.state = next
	m.mu.Unlock()
	m.notify(next)
	return gen, State{}, true, nil
}

// settle finishes an in-flight login or register: classify failures, map
// the payload, persist the session, transition.
func (m *Machine) settle(ctx context.Context, gen uint64, raw map[string]any, callErr error) (State, error) {
	if callErr != nil {
		return m.failWith(gen, errs.Classify(callErr))
	}

	sess, err := account.MapSession(raw)
	if err != nil {
		return m.failWith(gen, errs.Classify(err))
	}

	if err := m.store.Save(ctx, sess); err != nil {
		// The session is live for this run either way; only restore after
		// a restart is affected.
		m.log.Warn("failed to persist session", "error", err)
	}

	next := authenticated(sess)
	st, cerr := m.commit(gen, next, func() {
		// A logout won the race; its clear must also cover the session
		// saved above.
		_ = m.store.Clear(ctx)
	})
	if cerr == nil && st.Phase == PhaseAuthenticated {
		m.log.Info("authenticated", "user_id", sess.User.ID)
	}
	return st, cerr
}

// failWith settles a failed attempt. The machine transitions to Failed
// unless a logout raced the attempt, in which case the logout's state
// stands and the error is still reported to the caller.
func (m *Machine) failWith(gen uint64, e *errs.E) (State, error) {
	m.mu.Lock()
	m.busy = false
	if gen != m.gen {
		cur := m.snapshotLocked()
		m.mu.Unlock()
		return cur, e
	}
	next := failed(e)
	m.state = next
	m.mu.Unlock()
	m.notify(next)
	m.log.Warn("authentication failed", "kind", string(e.Kind), "error", e)
	return next, e
}

// commit installs next unless the generation moved (a logout raced the
// operation). onStale runs after the lock is released when the result was
// discarded.
func (m *Machine) commit(gen uint64, next State, onStale func()) (State, error) {
	m.mu.Lock()
	m.busy = false
	if gen != m.gen {
		cur := m.snapshotLocked()
		m.mu.Unlock()
		if onStale != nil {
			onStale()
		}
		return cur, nil
	}
	m.state = next
	m.mu.Unlock()
	m.notify(next)
	return next, nil
}

// Logout clears the session. Valid from any state, exempt from the
// serialization rule, and always lands in Unauthenticated: a store failure
// is observed in the log, never surfaced as a failed state.
func (m *Machine) Logout(ctx context.Context) State {
	m.mu.Lock()
	var token string
	if m.state.Session != nil {
		token = m.state.Session.Token
	}
	m.gen++
	m.mu.Unlock()

	if token != "" {
		// Best effort: the local session dies regardless of what the
		// service thinks about the token.
		if err := m.creds.Logout(ctx, token); err != nil {
			m.log.Debug("remote logout failed", "error", err)
		}
	}

	if err := m.store.Clear(ctx); err != nil {
		m.log.Warn("failed to clear stored session", "error", err)
	}

	m.mu.Lock()
	next := unauthenticated()
	m.state = next
	m.mu.Unlock()
	m.notify(next)
	m.log.Info("logged out")
	return next
}
