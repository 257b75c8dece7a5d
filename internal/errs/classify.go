// Copyright (c) 2025 Passgate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package errs

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"strings"
	"syscall"
)

// Classify assigns a Kind to an error coming back from a credential backend.
// Already-typed errors pass through untouched. Transport-level failures map
// to KindNetwork; anything else is treated as a server-side failure so the
// caller never sees an unclassified error.
func Classify(err error) *E {
	if err == nil {
		return nil
	}
	var e *E
	if errors.As(err, &e) {
		return e
	}
	switch {
	case isTimeout(err):
		return Wrap(KindNetwork, "request timed out", err)
	case isDNSFailure(err):
		return Wrap(KindNetwork, "could not resolve host", err)
	case isConnectionRefused(err):
		return Wrap(KindNetwork, "connection refused", err)
	case isTLSFailure(err):
		return Wrap(KindNetwork, "TLS handshake failed", err)
	case errors.Is(err, context.Canceled):
		return Wrap(KindNetwork, "request canceled", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return Wrap(KindNetwork, "network error", err)
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return Wrap(KindNetwork, "network error", err)
	}
	return Wrap(KindServer, "credential service failed", err)
}

// ClassifyStatus maps a non-2xx HTTP status to a typed error. remoteMsg is
// the message extracted from the response body and may be empty.
func ClassifyStatus(status int, remoteMsg string) *E {
	msg := remoteMsg
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		if msg == "" {
			msg = "invalid credentials"
		}
		return New(KindUnauthorized, msg)
	case status >= 500:
		if msg == "" {
			msg = "credential service unavailable"
		}
		return Errorf(KindServer, "%s (status %d)", msg, status)
	default:
		if msg == "" {
			msg = "unexpected response"
		}
		return Errorf(KindServer, "%s (status %d)", msg, status)
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded")
}

func isDNSFailure(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "no such host") || strings.Contains(msg, "dns")
}

func isConnectionRefused(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

func isTLSFailure(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "tls") ||
		strings.Contains(msg, "x509") ||
		strings.Contains(msg, "certificate")
}
