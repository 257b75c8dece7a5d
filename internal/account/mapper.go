package account

import (
	"strings"
	"time"

	"passgate/cli/internal/errs"
)

// MapUser converts a raw user payload into a User. It fails with a
// malformed-data error when id or email is missing or empty after coercion.
// Mapping performs type coercion only; business validation happens before a
// request is ever sent. Same input always yields the same output.
func MapUser(raw map[string]any) (User, error) {
	if raw == nil {
		return User{}, errs.New(errs.KindMalformedData, "user payload is empty")
	}

	u := User{
		ID:     stringField(raw, "id", "user_id", "userId", "uid"),
		Name:   stringField(raw, "name", "full_name", "fullName", "username"),
		Email:  stringField(raw, "email", "email_address", "emailAddress"),
		Avatar: stringField(raw, "avatar", "avatar_url", "avatarUrl", "image"),
	}
	if u.ID == "" {
		return User{}, errs.New(errs.KindMalformedData, "user payload missing id")
	}
	if u.Email == "" {
		return User{}, errs.New(errs.KindMalformedData, "user payload missing email")
	}

	var err error
	if u.CreatedAt, err = timeField(raw, "created_at", "createdAt", "created"); err != nil {
		return User{}, err
	}
	if u.UpdatedAt, err = timeField(raw, "updated_at", "updatedAt", "updated"); err != nil {
		return User{}, err
	}
	return u, nil
}

// MapSession converts a raw login or register response into a Session.
// Be liberal in what we accept: the token and the user object are looked up
// under the field names the service has used across versions, and an
// enveloping "data" object is unwrapped first when present.
func MapSession(raw map[string]any) (Session, error) {
	if raw == nil {
		return Session{}, errs.New(errs.KindMalformedData, "session payload is empty")
	}
	if inner, ok := raw["data"].(map[string]any); ok {
		raw = inner
	}

	token := extractToken(raw)
	if token == "" {
		return Session{}, errs.New(errs.KindMalformedData, "session payload missing token")
	}

	userRaw := objectField(raw, "user", "account", "profile")
	if userRaw == nil {
		return Session{}, errs.New(errs.KindMalformedData, "session payload missing user")
	}
	user, err := MapUser(userRaw)
	if err != nil {
		return Session{}, err
	}

	return Session{User: user, Token: token}, nil
}

// extractToken finds the access token under its common field names,
// comparing keys with underscores stripped so access_token and accessToken
// both match.
func extractToken(raw map[string]any) string {
	for k, v := range raw {
		s, ok := v.(string)
		if !ok || strings.TrimSpace(s) == "" {
			continue
		}
		switch normalizeKey(k) {
		case "token", "accesstoken", "access", "bearer", "jwt":
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.ReplaceAll(k, "_", ""))
}

func stringField(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := raw[key].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func objectField(raw map[string]any, keys ...string) map[string]any {
	for _, key := range keys {
		if v, ok := raw[key].(map[string]any); ok {
			return v
		}
	}
	return nil
}

// timestampLayouts are tried in order when coercing string timestamps.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// timeField coerces an ISO-8601 string under one of keys into a time.Time.
// A missing field is not an error and yields the zero time; a present but
// unparseable value is malformed data.
func timeField(raw map[string]any, keys ...string) (time.Time, error) {
	s := stringField(raw, keys...)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errs.Errorf(errs.KindMalformedData, "user payload has invalid timestamp %q", s)
}
