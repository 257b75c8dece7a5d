// Copyright (c) 2025 Passgate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package discovery

import (
	"context"

	"passgate/cli/internal/config"
)

// Resolve overlays the service's published discovery document onto the
// configuration. It is a no-op unless discovery is enabled. The document is
// fetched once per process and cached in memory; a fetch failure leaves the
// configured values untouched and is returned for the caller to log.
func Resolve(ctx context.Context, cfg *config.Config) error {
	if !cfg.Discover {
		return nil
	}

	doc := GetCached()
	if doc == nil {
		fetched, err := fetch(ctx, cfg.BaseURL, cfg.HTTPTimeout())
		if err != nil {
			return err
		}
		SetCached(fetched)
		doc = fetched
	}

	doc.apply(cfg)
	return nil
}
