// Copyright (c) 2025 Passgate
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package discovery resolves the credential service's endpoint layout from a
// published discovery document. Deployments that move or version their API
// paths publish the document under /.well-known/passgate.json; clients with
// discovery enabled pick it up instead of the configured defaults.
package discovery

import "passgate/cli/internal/config"

// Document is the service-published endpoint description.
type Document struct {
	Version int `json:"version"`

	// Endpoints carries the API paths. Empty fields keep the client's
	// configured value.
	Endpoints config.Endpoints `json:"endpoints"`

	// MinPasswordLen lets the service raise the password floor for
	// registration. It never lowers the locally configured value.
	MinPasswordLen int `json:"min_password_len,omitempty"`
}

// apply merges the document into the configuration. Only published values
// override; the password floor only ever goes up.
func (d *Document) apply(cfg *config.Config) {
	if d.Endpoints.Login != "" {
		cfg.Endpoints.Login = d.Endpoints.Login
	}
	if d.Endpoints.Register != "" {
		cfg.Endpoints.Register = d.Endpoints.Register
	}
	if d.Endpoints.Logout != "" {
		cfg.Endpoints.Logout = d.Endpoints.Logout
	}
	if d.Endpoints.Me != "" {
		cfg.Endpoints.Me = d.Endpoints.Me
	}
	if d.Endpoints.Health != "" {
		cfg.Endpoints.Health = d.Endpoints.Health
	}
	if d.MinPasswordLen > cfg.MinPasswordLen {
		cfg.MinPasswordLen = d.MinPasswordLen
	}
}
