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

// Package main contains the logic for starting the Pub/Sub listener that
// feeds director requests to the director workflow. Requests published to
// the subscription are the JSON form of model.DirectorRequest, with images
// given as gs:// URIs.
//
// Functions:
//   - SetupListeners: Attaches the workflow to the configured subscription and
//     starts receiving.
package main

import (
	"context"
	"log/slog"

	"github.com/jaycherian/gcp-go-fashion-director/internal/cloud"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/workflow"
)

// SetupListeners attaches the director workflow to the request subscription
// named by `director.request_subscription` and starts it. It does nothing
// when cloud services are disabled or no subscription is named.
//
// Inputs:
//   - config: The application's configuration.
//   - cloudClients: The initialized clients, or nil.
//   - director: The workflow run for each message.
//   - ctx: The application's root context; canceling it stops the listener.
func SetupListeners(config *cloud.Config, cloudClients *cloud.ServiceClients, director *workflow.DirectorWorkflow, ctx context.Context) {
	key := config.Director.RequestSubscription
	if cloudClients == nil || key == "" {
		return
	}
	listener, ok := cloudClients.PubSubListeners[key]
	if !ok {
		slog.Warn("request subscription is not configured", "key", key)
		return
	}
	listener.SetCommand(director)
	listener.Listen(ctx)
}
