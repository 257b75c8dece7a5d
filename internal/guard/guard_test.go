package guard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"passgate/cli/internal/account"
	"passgate/cli/internal/auth"
)

type fakeSource struct {
	state    auth.State
	watchers []func(auth.State)
}

func (f *fakeSource) State() auth.State            { return f.state }
func (f *fakeSource) OnChange(fn func(auth.State)) { f.watchers = append(f.watchers, fn) }

func (f *fakeSource) set(st auth.State) {
	f.state = st
	for _, fn := range f.watchers {
		fn(st)
	}
}

func authenticated() auth.State {
	return auth.State{
		Phase: auth.PhaseAuthenticated,
		Session: &account.Session{
			User:  account.User{ID: "u-1", Email: "kim@example.com"},
			Token: "tok-1",
		},
	}
}

func TestCheckAllowsOnlyAuthenticated(t *testing.T) {
	tests := []struct {
		name    string
		state   auth.State
		allowed bool
	}{
		{"unknown", auth.State{Phase: auth.PhaseUnknown}, false},
		{"authenticating", auth.State{Phase: auth.PhaseAuthenticating}, false},
		{"authenticated", authenticated(), true},
		{"unauthenticated", auth.State{Phase: auth.PhaseUnauthenticated}, false},
		{"failed", auth.State{Phase: auth.PhaseFailed}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Check(tt.state)
			require.Equal(t, tt.allowed, d.Allowed)
			if tt.allowed {
				require.Empty(t, d.Reason)
			} else {
				require.NotEmpty(t, d.Reason)
			}
		})
	}
}

func TestRequire(t *testing.T) {
	src := &fakeSource{state: auth.State{Phase: auth.PhaseUnknown}}
	require.ErrorIs(t, Require(src), ErrLoginRequired)

	src.state = authenticated()
	require.NoError(t, Require(src))
}

func TestProtect(t *testing.T) {
	src := &fakeSource{state: auth.State{Phase: auth.PhaseUnauthenticated}}

	ran := false
	fn := Protect(src, func(ctx context.Context) error {
		ran = true
		return errors.New("inner")
	})

	err := fn(context.Background())
	require.ErrorIs(t, err, ErrLoginRequired)
	require.False(t, ran)

	src.state = authenticated()
	err = fn(context.Background())
	require.EqualError(t, err, "inner")
	require.True(t, ran)
}

func TestWatchTracksTransitions(t *testing.T) {
	src := &fakeSource{state: auth.State{Phase: auth.PhaseUnknown}}

	var got []bool
	Watch(src, func(d Decision) { got = append(got, d.Allowed) })

	src.set(auth.State{Phase: auth.PhaseAuthenticating})
	src.set(authenticated())
	src.set(auth.State{Phase: auth.PhaseUnauthenticated})

	require.Equal(t, []bool{false, false, true, false}, got)
}
