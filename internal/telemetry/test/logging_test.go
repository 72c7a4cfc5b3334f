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

package telemetry_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/jaycherian/gcp-go-fashion-director/internal/cloud"
	"github.com/jaycherian/gcp-go-fashion-director/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestHandlerUsesCloudLoggingKeys(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(telemetry.NewHandler(&buf, slog.LevelInfo))
	logger.Warn("careful", "vault", "locations")

	entry := decode(t, &buf)
	assert.Equal(t, "WARNING", entry["severity"])
	assert.Equal(t, "careful", entry["message"])
	assert.Equal(t, "locations", entry["vault"])
	assert.Contains(t, entry, "timestamp")
}

func TestHandlerAddsTraceFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(telemetry.NewHandler(&buf, slog.LevelInfo)).With("component", "test")

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{1, 2, 3},
		SpanID:     trace.SpanID{4, 5, 6},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)
	logger.InfoContext(ctx, "traced")

	entry := decode(t, &buf)
	assert.Equal(t, sc.TraceID().String(), entry["logging.googleapis.com/trace"])
	assert.Equal(t, sc.SpanID().String(), entry["logging.googleapis.com/spanId"])
	assert.Equal(t, true, entry["logging.googleapis.com/trace_sampled"])
	assert.Equal(t, "test", entry["component"])
}

func TestHandlerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(telemetry.NewHandler(&buf, telemetry.ParseLevel("warn")))
	logger.Info("dropped")
	assert.Zero(t, buf.Len())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, telemetry.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, telemetry.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, telemetry.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, telemetry.ParseLevel("chatty"))
}

func TestSetupOpenTelemetryWithoutProject(t *testing.T) {
	config := cloud.NewConfig()
	shutdown, err := telemetry.SetupOpenTelemetry(context.Background(), config)
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
