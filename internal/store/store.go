// Copyright (c) 2025 Passgate
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package store persists the authenticated session across CLI runs.
//
// Four backends implement the same contract: the OS keychain (preferred), a
// sqlite database in the XDG state dir, a plain JSON file, and an in-memory
// store for tests. Serialization is this package's concern alone; callers
// only see account.Session values.
package store

import (
	"context"
	"fmt"

	"passgate/cli/internal/account"
	"passgate/cli/internal/config"
	"passgate/cli/internal/keychain"
)

// Store is the session persistence contract. Load returns (nil, nil) when
// no session is stored. All operations may fail; callers decide how much a
// failure matters.
type Store interface {
	Save(ctx context.Context, s account.Session) error
	Load(ctx context.Context) (*account.Session, error)
	Clear(ctx context.Context) error
	Present(ctx context.Context) (bool, error)
}

// New selects a backend per cfg.Store. "auto" prefers the OS keychain and
// falls back to sqlite when no keychain is available.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Store {
	case "keychain":
		mgr, err := keychain.GetManager()
		if err != nil {
			return nil, fmt.Errorf("open keychain: %w", err)
		}
		return NewKeychain(mgr), nil
	case "file":
		return NewFile("")
	case "sqlite":
		return OpenSQLite(ctx, "")
	case "memory":
		return NewMemory(), nil
	default: // auto
		if keychain.Available() {
			return NewKeychain(keychain.MustGetManager()), nil
		}
		return OpenSQLite(ctx, "")
	}
}
