// Copyright (c) 2025 Passgate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"net/http"
	"strings"
)

// parseBearerToken extracts token from a value like "Bearer <token>" case-insensitively.
// Returns the token string without the "Bearer " prefix, or empty string if invalid format.
func parseBearerToken(value string) string {
	v := strings.TrimSpace(value)
	if len(v) < 7 {
		return ""
	}
	if strings.EqualFold(v[0:6], "bearer") {
		rest := strings.TrimSpace(v[6:])
		if rest != "" {
			return rest
		}
	}
	return ""
}

// findBearerTokenInHeaders scans response headers for a Bearer token.
// It checks the Authorization header first, then any header carrying a
// bearer-like value. Returns empty string if not found.
func findBearerTokenInHeaders(h http.Header) string {
	if t := parseBearerToken(h.Get("Authorization")); t != "" {
		return t
	}

	for k, vals := range h {
		if strings.EqualFold(k, "authorization") {
			for _, v := range vals {
				if t := parseBearerToken(v); t != "" {
					return t
				}
			}
		}
		for _, v := range vals {
			lower := strings.ToLower(v)
			idx := strings.Index(lower, "bearer ")
			if idx >= 0 {
				token := strings.TrimSpace(v[idx+len("bearer "):])
				if token != "" {
					return token
				}
			}
		}
	}
	return ""
}
