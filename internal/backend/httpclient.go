package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"passgate/cli/internal/config"
	"passgate/cli/internal/errs"
)

// HTTP implements CredentialService over REST endpoints.
// User data from Me is cached in memory to support offline scenarios and
// reduce API calls.
type HTTP struct {
	// baseURL is the base URL for all HTTP requests (e.g., "https://api.passgate.dev")
	baseURL string
	// endpoints contains the URL paths for the credential API
	endpoints config.Endpoints
	// client is the underlying HTTP client with configured timeout
	client *http.Client
	// deviceID identifies this installation across requests
	deviceID string
	// meCache stores user data from the me endpoint for offline access
	meCache map[string]any
	// meCacheTime tracks when the cache was last updated
	meCacheTime time.Time
}

// meCacheTTL bounds how long a cached Me payload is served.
const meCacheTTL = 10 * time.Minute

// newHTTP creates a new HTTP client with the given base URL and endpoints.
func newHTTP(baseURL string, endpoints config.Endpoints, timeout time.Duration) *HTTP {
	return &HTTP{
		baseURL:   strings.TrimRight(baseURL, "/"),
		endpoints: endpoints,
		client:    &http.Client{Timeout: timeout},
		deviceID:  deviceID(),
	}
}

// setStandardHeaders applies the headers every request carries.
func (h *HTTP) setStandardHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "passgate-cli")
	req.Header.Set("Accept", "application/json, */*")
	if h.deviceID != "" {
		req.Header.Set("X-Passgate-Device", h.deviceID)
	}
}

// Health calls the health endpoint. No authentication required; used to
// check connectivity to the credential service.
func (h *HTTP) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+h.endpoints.Health, nil)
	if err != nil {
		return err
	}
	h.setStandardHeaders(req)

	resp, err := h.client.Do(req)
	if err != nil {
		return errs.Classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var out struct {
			Status string `json:"status"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&out)
		return errs.ClassifyStatus(resp.StatusCode, out.Status)
	}
	return nil
}
