package errs

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	e := New(KindValidation, "email is not valid")
	require.Equal(t, "validation: email is not valid", e.Error())

	cause := errors.New("boom")
	wrapped := Wrap(KindServer, "credential service failed", cause)
	require.Equal(t, "server: credential service failed: boom", wrapped.Error())
	require.ErrorIs(t, wrapped, cause)
}

func TestKindOf(t *testing.T) {
	require.Equal(t, KindNetwork, KindOf(New(KindNetwork, "down")))
	require.Equal(t, Kind(""), KindOf(errors.New("plain")))
	require.Equal(t, Kind(""), KindOf(nil))

	// Kind survives further wrapping by callers.
	outer := fmt.Errorf("login: %w", New(KindUnauthorized, "invalid credentials"))
	require.Equal(t, KindUnauthorized, KindOf(outer))
}

func TestMessageOf(t *testing.T) {
	require.Equal(t, "", MessageOf(nil))
	require.Equal(t, "plain", MessageOf(errors.New("plain")))
	require.Equal(t, "request timed out", MessageOf(Wrap(KindNetwork, "request timed out", errors.New("i/o timeout"))))
}

type fakeNetErr struct{ timeout bool }

func (f fakeNetErr) Error() string   { return "fake net failure" }
func (f fakeNetErr) Timeout() bool   { return f.timeout }
func (f fakeNetErr) Temporary() bool { return false }

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind Kind
		wantMsg  string
	}{
		{
			name:     "deadline exceeded",
			err:      context.DeadlineExceeded,
			wantKind: KindNetwork,
			wantMsg:  "request timed out",
		},
		{
			name:     "net timeout",
			err:      fakeNetErr{timeout: true},
			wantKind: KindNetwork,
			wantMsg:  "request timed out",
		},
		{
			name:     "dns failure",
			err:      &net.DNSError{Err: "no such host", Name: "api.passgate.dev", IsNotFound: true},
			wantKind: KindNetwork,
			wantMsg:  "could not resolve host",
		},
		{
			name:     "connection refused",
			err:      fmt.Errorf("dial tcp 127.0.0.1:443: %w", syscall.ECONNREFUSED),
			wantKind: KindNetwork,
			wantMsg:  "connection refused",
		},
		{
			name:     "tls failure",
			err:      errors.New("x509: certificate signed by unknown authority"),
			wantKind: KindNetwork,
			wantMsg:  "TLS handshake failed",
		},
		{
			name:     "canceled",
			err:      context.Canceled,
			wantKind: KindNetwork,
			wantMsg:  "request canceled",
		},
		{
			name:     "generic net error",
			err:      fakeNetErr{},
			wantKind: KindNetwork,
			wantMsg:  "network error",
		},
		{
			name:     "unrecognized",
			err:      errors.New("boom"),
			wantKind: KindServer,
			wantMsg:  "credential service failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			require.NotNil(t, got)
			require.Equal(t, tt.wantKind, got.Kind)
			require.Equal(t, tt.wantMsg, got.Message)
			require.ErrorIs(t, got, tt.err)
		})
	}
}

func TestClassifyNil(t *testing.T) {
	require.Nil(t, Classify(nil))
}

func TestClassifyPassthrough(t *testing.T) {
	typed := New(KindUnauthorized, "invalid credentials")
	require.Same(t, typed, Classify(typed))
	require.Same(t, typed, Classify(fmt.Errorf("wrapped: %w", typed)))
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		remote   string
		wantKind Kind
		wantMsg  string
	}{
		{"unauthorized default", 401, "", KindUnauthorized, "invalid credentials"},
		{"forbidden with message", 403, "account locked", KindUnauthorized, "account locked"},
		{"server error default", 500, "", KindServer, "credential service unavailable (status 500)"},
		{"bad gateway", 502, "upstream down", KindServer, "upstream down (status 502)"},
		{"unexpected status", 404, "", KindServer, "unexpected response (status 404)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyStatus(tt.status, tt.remote)
			require.Equal(t, tt.wantKind, got.Kind)
			require.Equal(t, tt.wantMsg, got.Message)
		})
	}
}
