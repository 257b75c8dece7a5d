// Copyright (c) 2025 Passgate
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend provides the client for the Passgate credential service.
// It defines the API contract for authentication and account operations and
// an HTTP implementation of it. Responses are returned as raw payloads;
// mapping them into entities is the account package's concern.
package backend

import "context"

// CredentialService defines the credential operations the CLI depends on.
// Implementations may call the real HTTP API or provide fakes for tests.
type CredentialService interface {
	// Login exchanges email and password for a raw session payload.
	Login(ctx context.Context, email, password string) (map[string]any, error)
	// Register creates an account and returns a raw session payload.
	Register(ctx context.Context, name, email, password string) (map[string]any, error)
	// Logout invalidates the token on the service. Best effort: local state
	// is cleared regardless of the outcome.
	Logout(ctx context.Context, token string) error
	// Me retrieves the current user's raw payload.
	Me(ctx context.Context, token string) (map[string]any, error)
	// Health checks connectivity to the service.
	Health(ctx context.Context) error
}
