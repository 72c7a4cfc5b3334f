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

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/jaycherian/gcp-go-fashion-director/internal/api"
	"github.com/jaycherian/gcp-go-fashion-director/internal/telemetry"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	config := GetConfig()

	closeLog, err := telemetry.SetupLogging(config)
	if err != nil {
		log.Fatal(err)
	}
	slog.Info("Logging initialized", "level", config.Logging.Level)

	shutdownTelemetry, err := telemetry.SetupOpenTelemetry(ctx, config)
	if err != nil {
		slog.Error("Failed to setup OpenTelemetry", "error", err)
		log.Fatal(err)
	}
	slog.Info("Tracing initialized")

	if err := InitState(ctx); err != nil {
		slog.Error("Failed to initialize state", "error", err)
		_ = CloseState()
		log.Fatal(err)
	}
	slog.Info("Initialized State")

	r := gin.Default()
	r.MaxMultipartMemory = int64(config.Server.MaxUploadMB) << 20

	r.Use(otelgin.Middleware(config.Application.Name))
	r.Use(cors.Default())

	apiV1 := r.Group("/api/v1")
	{
		api.Register(apiV1, state.api)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Server.Port),
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to listen", "error", err)
		}
	}()
	slog.Info("Server Ready", "port", config.Server.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutdown Server ...")

	// Stop the Pub/Sub listener before draining HTTP requests.
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server Shutdown Failed", "error", err)
	}
	if err := CloseState(); err != nil {
		slog.Error("Failed to close clients", "error", err)
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		slog.Error("Failed to flush telemetry", "error", err)
	}
	if err := closeLog(); err != nil {
		log.Printf("failed to close log file: %v\n", err)
	}

	log.Println("Server exiting")
}
