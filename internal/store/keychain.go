// Copyright (c) 2025 Passgate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"passgate/cli/internal/account"
	"passgate/cli/internal/keychain"
)

// Keychain persists the session in the OS keychain via internal/keychain.
type Keychain struct {
	mgr *keychain.Manager
}

func NewKeychain(mgr *keychain.Manager) *Keychain {
	return &Keychain{mgr: mgr}
}

func (k *Keychain) Save(_ context.Context, s account.Session) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := k.mgr.SaveSession(b); err != nil {
		return fmt.Errorf("save session to keychain: %w", err)
	}
	return nil
}

func (k *Keychain) Load(_ context.Context) (*account.Session, error) {
	data, err := k.mgr.LoadSession()
	if err != nil {
		if errors.Is(err, keychain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load session from keychain: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var s account.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse stored session: %w", err)
	}
	return &s, nil
}

func (k *Keychain) Clear(_ context.Context) error {
	if err := k.mgr.ClearSession(); err != nil {
		return fmt.Errorf("clear session from keychain: %w", err)
	}
	return nil
}

func (k *Keychain) Present(_ context.Context) (bool, error) {
	data, err := k.mgr.LoadSession()
	if err != nil {
		if errors.Is(err, keychain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("check session in keychain: %w", err)
	}
	return len(data) > 0, nil
}
