// Copyright (c) 2025 Passgate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"passgate/cli/internal/errs"
)

// Me calls the me endpoint with Authorization header.
// Results are cached in memory to support offline mode and reduce API calls.
// Returns user data as a raw payload, or an error if the request fails and
// no cached data is available.
func (h *HTTP) Me(ctx context.Context, token string) (map[string]any, error) {
	// Check cache first
	if h.meCache != nil && time.Since(h.meCacheTime) < meCacheTTL {
		return h.meCache, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+h.endpoints.Me, nil)
	if err != nil {
		if h.meCache != nil {
			return h.meCache, nil
		}
		return nil, err
	}
	h.setStandardHeaders(req)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		// Network error - return cached data if available
		if h.meCache != nil {
			return h.meCache, nil
		}
		return nil, errs.Classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if h.meCache != nil {
			return h.meCache, nil
		}
		return nil, errs.ClassifyStatus(resp.StatusCode, remoteMessage(resp.Body))
	}

	var userData map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&userData); err != nil {
		if h.meCache != nil {
			return h.meCache, nil
		}
		return nil, errs.Wrap(errs.KindMalformedData, "could not parse response", err)
	}

	// Update cache
	h.meCache = userData
	h.meCacheTime = time.Now()

	return userData, nil
}
