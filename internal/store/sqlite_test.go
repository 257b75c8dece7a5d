package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func setupSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "passgate.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteLoadEmpty(t *testing.T) {
	s := setupSQLite(t)
	ctx := context.Background()

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Nil(t, got)

	present, err := s.Present(ctx)
	require.NoError(t, err)
	require.False(t, present)
}

func TestSQLiteRoundTrip(t *testing.T) {
	s := setupSQLite(t)
	ctx := context.Background()

	sess := testSession()
	require.NoError(t, s.Save(ctx, sess))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, sess.Token, got.Token)
	require.Equal(t, sess.User.ID, got.User.ID)
	require.Equal(t, sess.User.Email, got.User.Email)
	require.True(t, sess.User.CreatedAt.Equal(got.User.CreatedAt))

	present, err := s.Present(ctx)
	require.NoError(t, err)
	require.True(t, present)
}

func TestSQLiteUpsertOverwrites(t *testing.T) {
	s := setupSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, testSession()))

	second := testSession()
	second.Token = "tok-2"
	require.NoError(t, s.Save(ctx, second))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok-2", got.Token)
}

func TestSQLiteClearIsIdempotent(t *testing.T) {
	s := setupSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, testSession()))
	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "passgate.db")

	s, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, testSession()))
	require.NoError(t, s.Close())

	// Reopen: migrations are already applied, the session is still there.
	s, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "tok-1", got.Token)
}

func TestSQLiteErrorAfterClose(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "passgate.db"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	err = s.Save(ctx, testSession())
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to save session")

	_, err = s.Load(ctx)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load session")
}
