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

// Package workflow_test contains tests for the director workflow.
// This file, `base_test.go`, provides the shared setup for the package:
// `TestMain` loads the test configuration, installs logging and the
// (offline) telemetry providers, and shortens the model retry delay.
package workflow_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jaycherian/gcp-go-fashion-director/internal/cloud"
	"github.com/jaycherian/gcp-go-fashion-director/internal/telemetry"
	test "github.com/jaycherian/gcp-go-fashion-director/internal/testutil"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
)

var (
	ctx    context.Context // The root context for all tests in the suite.
	config *cloud.Config   // The application configuration loaded from test files.
)

const tName = "github.com/jaycherian/gcp-go-fashion-director/tests/workflow"

var (
	tracer = otel.Tracer(tName)
	logger = otelslog.NewLogger(tName)
)

func TestMain(m *testing.M) {
	var cancel context.CancelFunc
	ctx, cancel = context.WithCancel(context.Background())

	config = test.GetConfig()

	closeLog, err := telemetry.SetupLogging(config)
	if err != nil {
		panic(err)
	}

	// No project is configured for tests, so this installs no exporters.
	shutdown, err := telemetry.SetupOpenTelemetry(ctx, config)
	if err != nil {
		panic(err)
	}

	cloud.RetryDelay = time.Millisecond

	logger.Info("completed test setup")

	exitCode := m.Run()

	if err := shutdown(ctx); err != nil {
		logger.Error("failed to shutdown telemetry", "error", err)
	}
	_ = closeLog()
	cancel()
	os.Exit(exitCode)
}
