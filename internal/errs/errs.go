// Package errs defines typed errors with kinds for user-friendly reporting.
// It provides a structured approach to error handling with machine-readable error kinds
// and human-friendly messages. This enables better error categorization, logging,
// and user experience by providing context-aware error information.
//
// The package supports wrapping underlying errors while maintaining error kind information,
// making it easier to handle different types of failures appropriately.
package errs

import (
	"errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// KindValidation indicates local input was rejected before any I/O.
	KindValidation Kind = "validation"
	// KindUnauthorized indicates the remote service explicitly rejected the credentials.
	KindUnauthorized Kind = "unauthorized"
	// KindNetwork indicates a transport failure: timeout, DNS, refused connection, TLS.
	KindNetwork Kind = "network"
	// KindServer indicates a remote service failure (5xx-equivalent).
	KindServer Kind = "server"
	// KindMalformedData indicates a remote payload that could not be mapped.
	KindMalformedData Kind = "malformed_data"
	// KindConcurrentOperation indicates a command was rejected because another is in flight.
	KindConcurrentOperation Kind = "operation_in_flight"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is / errors.As chains.
func (e *E) Unwrap() error { return e.Err }

func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }
func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }

// Errorf builds a typed error with a formatted message.
func Errorf(kind Kind, format string, args ...any) *E {
	return &E{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the Kind from err, walking the unwrap chain.
// It returns the empty Kind when err carries no classification.
func KindOf(err error) Kind {
	var e *E
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// MessageOf returns the human-readable message for err: the typed message
// when available, otherwise err.Error(). Empty for nil.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var e *E
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Is and As are passthroughs to the standard library so callers of this
// package rarely need to import both error packages.
func Is(err, target error) bool     { return errors.Is(err, target) }
func As(err error, target any) bool { return errors.As(err, target) }
