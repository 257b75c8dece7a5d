package account

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"passgate/cli/internal/errs"
)

func TestMapUser(t *testing.T) {
	raw := map[string]any{
		"id":         "u-1",
		"name":       "Kim Page",
		"email":      "kim@example.com",
		"avatar":     "https://cdn.example.com/kim.png",
		"created_at": "2024-05-01T10:30:00Z",
		"updated_at": "2024-06-02T08:00:00Z",
	}

	u, err := MapUser(raw)
	require.NoError(t, err)
	require.Equal(t, "u-1", u.ID)
	require.Equal(t, "Kim Page", u.Name)
	require.Equal(t, "kim@example.com", u.Email)
	require.Equal(t, "https://cdn.example.com/kim.png", u.Avatar)
	require.Equal(t, time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC), u.CreatedAt)
	require.Equal(t, time.Date(2024, 6, 2, 8, 0, 0, 0, time.UTC), u.UpdatedAt)
}

func TestMapUserMinimal(t *testing.T) {
	u, err := MapUser(map[string]any{"id": "u-2", "email": "min@example.com"})
	require.NoError(t, err)
	require.Equal(t, "u-2", u.ID)
	require.Empty(t, u.Name)
	require.True(t, u.CreatedAt.IsZero())
	require.True(t, u.UpdatedAt.IsZero())
}

func TestMapUserRenamedFields(t *testing.T) {
	raw := map[string]any{
		"user_id":      "u-3",
		"emailAddress": "renamed@example.com",
		"fullName":     "Renamed User",
		"avatar_url":   "https://cdn.example.com/r.png",
		"createdAt":    "2023-12-24T00:00:00Z",
	}

	u, err := MapUser(raw)
	require.NoError(t, err)
	require.Equal(t, "u-3", u.ID)
	require.Equal(t, "renamed@example.com", u.Email)
	require.Equal(t, "Renamed User", u.Name)
	require.Equal(t, "https://cdn.example.com/r.png", u.Avatar)
	require.Equal(t, 2023, u.CreatedAt.Year())
}

func TestMapUserTimestampLayouts(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Time
	}{
		{"rfc3339", "2024-05-01T10:30:00Z", time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)},
		{"fractional seconds", "2024-05-01T10:30:00.250Z", time.Date(2024, 5, 1, 10, 30, 0, 250_000_000, time.UTC)},
		{"no zone", "2024-05-01T10:30:00", time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)},
		{"date only", "2024-05-01", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := MapUser(map[string]any{
				"id": "u-4", "email": "t@example.com", "created_at": tt.value,
			})
			require.NoError(t, err)
			require.True(t, tt.want.Equal(u.CreatedAt), "got %v want %v", u.CreatedAt, tt.want)
		})
	}
}

func TestMapUserMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
	}{
		{"nil payload", nil},
		{"missing id", map[string]any{"email": "a@b.com"}},
		{"blank id", map[string]any{"id": "   ", "email": "a@b.com"}},
		{"missing email", map[string]any{"id": "u-5"}},
		{"id wrong type", map[string]any{"id": 42, "email": "a@b.com"}},
		{"invalid timestamp", map[string]any{"id": "u-5", "email": "a@b.com", "created_at": "yesterday"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MapUser(tt.raw)
			require.Error(t, err)
			require.Equal(t, errs.KindMalformedData, errs.KindOf(err))
		})
	}
}

func TestMapUserDeterministic(t *testing.T) {
	raw := map[string]any{"id": "u-6", "email": "same@example.com", "created_at": "2024-01-01T00:00:00Z"}

	first, err1 := MapUser(raw)
	second, err2 := MapUser(raw)
	require.NoError(t, err1)
	require.NoError(t, err2)
	require.Equal(t, first, second)
}

func TestMapSession(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
	}{
		{
			name: "token and user",
			raw: map[string]any{
				"token": "tok-1",
				"user":  map[string]any{"id": "u-1", "email": "a@b.com", "name": "A"},
			},
		},
		{
			name: "access_token variant",
			raw: map[string]any{
				"access_token": "tok-1",
				"user":         map[string]any{"id": "u-1", "email": "a@b.com"},
			},
		},
		{
			name: "accessToken variant",
			raw: map[string]any{
				"accessToken": "tok-1",
				"user":        map[string]any{"id": "u-1", "email": "a@b.com"},
			},
		},
		{
			name: "account instead of user",
			raw: map[string]any{
				"token":   "tok-1",
				"account": map[string]any{"id": "u-1", "email": "a@b.com"},
			},
		},
		{
			name: "data envelope",
			raw: map[string]any{
				"data": map[string]any{
					"token": "tok-1",
					"user":  map[string]any{"id": "u-1", "email": "a@b.com"},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := MapSession(tt.raw)
			require.NoError(t, err)
			require.Equal(t, "tok-1", s.Token)
			require.Equal(t, "u-1", s.User.ID)
			require.True(t, s.Valid())
		})
	}
}

func TestMapSessionMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
	}{
		{"nil payload", nil},
		{"missing token", map[string]any{"user": map[string]any{"id": "u-1", "email": "a@b.com"}}},
		{"token wrong type", map[string]any{"token": 7, "user": map[string]any{"id": "u-1", "email": "a@b.com"}}},
		{"missing user", map[string]any{"token": "tok-1"}},
		{"user missing email", map[string]any{"token": "tok-1", "user": map[string]any{"id": "u-1"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MapSession(tt.raw)
			require.Error(t, err)
			require.Equal(t, errs.KindMalformedData, errs.KindOf(err))
		})
	}
}

func TestSessionValid(t *testing.T) {
	require.False(t, Session{}.Valid())
	require.False(t, Session{Token: "tok"}.Valid())
	require.False(t, Session{User: User{ID: "u-1"}}.Valid())
	require.True(t, Session{User: User{ID: "u-1"}, Token: "tok"}.Valid())
}
