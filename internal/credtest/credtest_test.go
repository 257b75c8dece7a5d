package credtest

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"passgate/cli/internal/account"
	"passgate/cli/internal/auth"
	"passgate/cli/internal/errs"
	"passgate/cli/internal/store"
)

func TestRegisterMintsVerifiableToken(t *testing.T) {
	ctx := context.Background()
	svc := New()

	raw, err := svc.Register(ctx, "Kim Page", "kim@example.com", "hunter22")
	require.NoError(t, err)

	sess, err := account.MapSession(raw)
	require.NoError(t, err)
	require.NotEmpty(t, sess.User.ID)
	require.Equal(t, "kim@example.com", sess.User.Email)
	require.Equal(t, "Kim Page", sess.User.Name)
	require.False(t, sess.User.CreatedAt.IsZero())

	claims := jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(sess.Token, &claims, func(tok *jwt.Token) (any, error) {
		return svc.secret, nil
	})
	require.NoError(t, err)
	require.Equal(t, sess.User.ID, claims.Subject)
	require.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc := New(WithUser("Kim", "kim@example.com", "hunter22"))

	_, err := svc.Login(ctx, "kim@example.com", "wrongpw")
	require.Equal(t, errs.KindUnauthorized, errs.KindOf(err))

	_, err = svc.Login(ctx, "nobody@example.com", "hunter22")
	require.Equal(t, errs.KindUnauthorized, errs.KindOf(err))
}

func TestLoginIgnoresEmailCase(t *testing.T) {
	ctx := context.Background()
	svc := New(WithUser("Kim", "kim@example.com", "hunter22"))

	raw, err := svc.Login(ctx, "Kim@Example.COM", "hunter22")
	require.NoError(t, err)
	require.NotEmpty(t, raw["token"])
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := New(WithUser("Kim", "kim@example.com", "hunter22"))

	_, err := svc.Register(ctx, "Other Kim", "KIM@example.com", "different8")
	require.Equal(t, errs.KindServer, errs.KindOf(err))
}

func TestMeHonorsRevocationAndExpiry(t *testing.T) {
	ctx := context.Background()
	svc := New(WithUser("Kim", "kim@example.com", "hunter22"))

	raw, err := svc.Login(ctx, "kim@example.com", "hunter22")
	require.NoError(t, err)
	token := raw["token"].(string)

	me, err := svc.Me(ctx, token)
	require.NoError(t, err)
	user := me["user"].(map[string]any)
	require.Equal(t, "kim@example.com", user["email"])

	require.NoError(t, svc.Logout(ctx, token))
	_, err = svc.Me(ctx, token)
	require.Equal(t, errs.KindUnauthorized, errs.KindOf(err))

	expired := New(WithUser("Kim", "kim@example.com", "hunter22"), WithTokenTTL(-time.Minute))
	raw, err = expired.Login(ctx, "kim@example.com", "hunter22")
	require.NoError(t, err)
	_, err = expired.Me(ctx, raw["token"].(string))
	require.Equal(t, errs.KindUnauthorized, errs.KindOf(err))
}

// The service drives the real state machine the same way the HTTP client does.
func TestServiceDrivesStateMachine(t *testing.T) {
	ctx := context.Background()
	svc := New()
	m := auth.New(svc, store.NewMemory())

	st, err := m.Register(ctx, auth.RegisterRequest{Name: "Kim", Email: "kim@example.com", Password: "hunter22"})
	require.NoError(t, err)
	require.Equal(t, auth.PhaseAuthenticated, st.Phase)

	st = m.Logout(ctx)
	require.Equal(t, auth.PhaseUnauthenticated, st.Phase)

	m2 := auth.New(svc, store.NewMemory())
	st, err = m2.Login(ctx, auth.LoginRequest{Email: "kim@example.com", Password: "hunter22"})
	require.NoError(t, err)
	require.Equal(t, auth.PhaseAuthenticated, st.Phase)
	require.Equal(t, "kim@example.com", st.Session.User.Email)
}
