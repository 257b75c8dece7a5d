// Copyright (c) 2025 Passgate
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package account defines the user and session entities and the mapping from
// raw credential-service payloads into them. Mapping is the only place that
// knows remote field names, so upstream renames touch this package alone.
package account

import (
	"time"
)

// User is an authenticated account as reported by the credential service.
// Values are produced by MapUser and never constructed by hand elsewhere.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Session is the unit of persisted login state: the user plus the access
// token the service issued for it.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Valid reports whether the session is structurally usable: a non-empty
// token attached to an identified user. Sessions restored from disk are
// checked with this before they are trusted.
func (s Session) Valid() bool {
	return s.Token != "" && s.User.ID != ""
}
