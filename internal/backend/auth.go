package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"passgate/cli/internal/errs"
)

// Login calls the login endpoint with email and password.
// On success the raw session payload is returned as-is; mapping into a
// Session happens in the account package.
func (h *HTTP) Login(ctx context.Context, email, password string) (map[string]any, error) {
	return h.postCredentials(ctx, h.endpoints.Login, map[string]string{
		"email":    email,
		"password": password,
	})
}

// Register calls the register endpoint with name, email and password.
func (h *HTTP) Register(ctx context.Context, name, email, password string) (map[string]any, error) {
	return h.postCredentials(ctx, h.endpoints.Register, map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
}

// postCredentials posts a JSON body and decodes the raw payload response.
// Transport failures and non-2xx statuses come back as classified errors.
func (h *HTTP) postCredentials(ctx context.Context, path string, body map[string]string) (map[string]any, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, err
	}
	h.setStandardHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, errs.Classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, errs.ClassifyStatus(resp.StatusCode, remoteMessage(resp.Body))
	}

	// Be liberal in what we accept: decode into a map first
	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, errs.Wrap(errs.KindMalformedData, "could not parse response", err)
	}

	// Some deployments return the token in a header instead of the body.
	if raw != nil && !hasTokenField(raw) {
		if token := findBearerTokenInHeaders(resp.Header); token != "" {
			raw["token"] = token
		}
	}

	return raw, nil
}

// hasTokenField reports whether the payload already carries a token under
// one of its known names, comparing keys with underscores stripped.
func hasTokenField(raw map[string]any) bool {
	for k, v := range raw {
		s, ok := v.(string)
		if !ok || strings.TrimSpace(s) == "" {
			continue
		}
		switch strings.ToLower(strings.ReplaceAll(k, "_", "")) {
		case "token", "accesstoken", "access", "bearer", "jwt":
			return true
		}
	}
	if inner, ok := raw["data"].(map[string]any); ok {
		return hasTokenField(inner)
	}
	return false
}

// remoteMessage extracts the human-readable message from an error response
// body. It tries the common field names and falls back to the raw text.
func remoteMessage(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(b) == 0 {
		return ""
	}

	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err == nil {
		for _, key := range []string{"message", "error", "detail", "error_description"} {
			if v, ok := raw[key].(string); ok && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		}
		return ""
	}

	return strings.TrimSpace(string(b))
}

// Logout calls the logout endpoint with Authorization header.
// It invalidates the token on the service and clears cached user data.
func (h *HTTP) Logout(ctx context.Context, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+h.endpoints.Logout, nil)
	if err != nil {
		return err
	}
	h.setStandardHeaders(req)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return errs.Classify(err)
	}
	defer resp.Body.Close()

	// Clear cache on logout
	h.meCache = nil
	h.meCacheTime = time.Time{}

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return errs.ClassifyStatus(resp.StatusCode, remoteMessage(resp.Body))
}
