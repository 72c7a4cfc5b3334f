// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package telemetry provides utilities for setting up and configuring
// application observability, including logging, tracing, and metrics.
// This file handles structured logging in the shape Google Cloud Logging
// parses, with trace correlation taken from OpenTelemetry span contexts.
package telemetry

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/jaycherian/gcp-go-fashion-director/internal/cloud"
	"go.opentelemetry.io/otel/trace"
)

// spanContextLogHandler wraps another handler and adds the trace and span
// IDs of the record's context, so Cloud Logging can link logs to traces.
type spanContextLogHandler struct {
	slog.Handler
}

func handlerWithSpanContext(handler slog.Handler) *spanContextLogHandler {
	return &spanContextLogHandler{Handler: handler}
}

// Handle adds the Cloud Logging trace fields when ctx carries a valid span.
// See: https://cloud.google.com/logging/docs/structured-logging#special-payload-fields
func (t *spanContextLogHandler) Handle(ctx context.Context, record slog.Record) error {
	if s := trace.SpanContextFromContext(ctx); s.IsValid() {
		record.AddAttrs(
			slog.Any("logging.googleapis.com/trace", s.TraceID()),
			slog.Any("logging.googleapis.com/spanId", s.SpanID()),
			slog.Bool("logging.googleapis.com/trace_sampled", s.TraceFlags().IsSampled()),
		)
	}
	return t.Handler.Handle(ctx, record)
}

func (t *spanContextLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return handlerWithSpanContext(t.Handler.WithAttrs(attrs))
}

func (t *spanContextLogHandler) WithGroup(name string) slog.Handler {
	return handlerWithSpanContext(t.Handler.WithGroup(name))
}

// replacer renames the slog keys to the ones Cloud Logging expects and maps
// WARN to the WARNING severity.
// https://cloud.google.com/logging/docs/reference/v2/rest/v2/LogEntry#LogSeverity
func replacer(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}
	switch a.Key {
	case slog.LevelKey:
		a.Key = "severity"
		if level, ok := a.Value.Any().(slog.Level); ok && level == slog.LevelWarn {
			a.Value = slog.StringValue("WARNING")
		}
	case slog.TimeKey:
		a.Key = "timestamp"
	case slog.MessageKey:
		a.Key = "message"
	}
	return a
}

// ParseLevel maps a configured level name onto a slog.Level. Unknown names
// fall back to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewHandler builds the JSON handler used by the application, writing to w
// and dropping records below level.
func NewHandler(w io.Writer, level slog.Leveler) slog.Handler {
	jsonHandler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level, ReplaceAttr: replacer})
	return handlerWithSpanContext(jsonHandler)
}

// SetupLogging installs the application logger as the slog default and
// routes the standard `log` package through it. Output goes to stdout and,
// when logging.file is set, to that file as well.
//
// Outputs:
//   - func() error: Closes the log file. Always non-nil.
//   - error: The log file could not be created.
func SetupLogging(config *cloud.Config) (func() error, error) {
	closer := func() error { return nil }
	var out io.Writer = os.Stdout
	if config.Logging.File != "" {
		file, err := os.Create(config.Logging.File)
		if err != nil {
			return closer, fmt.Errorf("failed to create log file %s: %w", config.Logging.File, err)
		}
		out = io.MultiWriter(os.Stdout, file)
		closer = file.Close
	}

	logger := slog.New(NewHandler(out, ParseLevel(config.Logging.Level)))
	slog.SetDefault(logger)
	log.SetFlags(0)
	return closer, nil
}
