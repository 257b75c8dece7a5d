// Copyright (c) 2025 Passgate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"passgate/cli/internal/config"
)

// New creates a CredentialService talking to the configured endpoints.
func New(cfg *config.Config) CredentialService {
	return newHTTP(cfg.BaseURL, cfg.Endpoints, cfg.HTTPTimeout())
}
