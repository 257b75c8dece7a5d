// Copyright (c) 2025 Passgate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
)

// Handler encodings accepted by New.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// New builds the process logger. Text format uses tint for readable terminal
// output; JSON emits machine-readable records for log shippers. Command
// output goes to stdout, so callers normally pass stderr here to keep the
// two streams separate.
func New(w io.Writer, level slog.Level, format string) *slog.Logger {
	var h slog.Handler
	if format == FormatJSON {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	} else {
		h = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	}
	return slog.New(h)
}

// Nop returns a logger that drops every record.
func Nop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
