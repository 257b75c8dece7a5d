// Copyright (c) 2025 Passgate
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package logging provides the process logger plus utilities for secure
// logging and error presentation. It includes functions for masking sensitive
// information in log messages and formatting failures for user-friendly
// display while protecting credentials and secrets.
//
// The package helps ensure that sensitive data like passwords and session
// tokens are not accidentally exposed in logs or error messages shown to users.
package logging

import (
	"regexp"
)

var (
	rePassword   = regexp.MustCompile(`(?i)(password=)([^\s;]+)`)
	reToken      = regexp.MustCompile(`(?i)(token=|bearer\s+)([A-Za-z0-9._-]+)`)
	reJSONSecret = regexp.MustCompile(`(?i)("(?:password|token|access_token|accesstoken|secret)"\s*:\s*")([^"]*)(")`)
	reAPIKey     = regexp.MustCompile(`(?i)(apikey=|api_key=)([^\s;]+)`)
)

// Mask replaces sensitive values in the input string with "*".
// JSON bodies have their password and token fields masked so response
// payloads can be logged at debug level without leaking credentials.
func Mask(s string) string {
	out := s
	out = rePassword.ReplaceAllString(out, "$1***")
	out = reToken.ReplaceAllString(out, "$1***")
	out = reJSONSecret.ReplaceAllString(out, "$1***$3")
	out = reAPIKey.ReplaceAllString(out, "$1***")
	return out
}
