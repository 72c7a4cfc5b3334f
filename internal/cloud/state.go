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

// Package cloud provides components for interacting with Google Cloud services.
// This file is responsible for initializing and holding all the client objects
// needed to communicate with Google Cloud. It acts as a dependency injection
// container: a single, shared `ServiceClients` struct is passed to the
// workflows, the slot store factory and the API handlers.
//
// Logic Flow:
//  1. `NewCloudServiceClients` is called at startup with the loaded `Config`.
//  2. It initializes clients for Storage, Pub/Sub, GenAI, and BigQuery.
//  3. It creates a Pub/Sub listener per configured subscription (commands are
//     attached later, once the workflows exist).
//  4. It wraps every configured agent model in a rate-limited `QuotaAwareGenerativeAIModel`.
//
// Structs:
//   - ServiceClients: A container struct holding all initialized Google Cloud service clients
//     and service wrappers.
package cloud

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/storage"
	"google.golang.org/genai"
)

// ServiceClients is a struct that acts as a central container for all the clients
// that interact with external Google Cloud services.
type ServiceClients struct {
	StorageClient   *storage.Client                         // Client for Google Cloud Storage (GCS).
	PubsubClient    *pubsub.Client                          // Client for Google Cloud Pub/Sub.
	GenAIClient     *genai.Client                           // Client for Vertex AI generative models.
	BigQueryClient  *bigquery.Client                        // Client for Google Cloud BigQuery.
	PubSubListeners map[string]*PubSubListener              // Pub/Sub listeners, keyed by the logical name from the config.
	AgentModels     map[string]*QuotaAwareGenerativeAIModel // Rate-limited agent (LLM) models, keyed by the logical name from the config.
}

// Close shuts down every client that was opened. It is safe on a nil or
// partially initialized container.
func (c *ServiceClients) Close() error {
	if c == nil {
		return nil
	}
	var err error
	if c.StorageClient != nil {
		err = errors.Join(err, c.StorageClient.Close())
	}
	if c.PubsubClient != nil {
		err = errors.Join(err, c.PubsubClient.Close())
	}
	if c.BigQueryClient != nil {
		err = errors.Join(err, c.BigQueryClient.Close())
	}
	return err
}

// Model returns the agent model registered under name.
func (c *ServiceClients) Model(name string) (*QuotaAwareGenerativeAIModel, error) {
	if c == nil {
		return nil, ErrModelNotConfigured
	}
	m, ok := c.AgentModels[name]
	if !ok || m == nil {
		return nil, fmt.Errorf("%w: %q", ErrModelNotConfigured, name)
	}
	return m, nil
}

// NewGenerateContentConfig maps a model's TOML settings onto a genai config.
func NewGenerateContentConfig(values VertexAiLLMModel) *genai.GenerateContentConfig {
	out := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](values.Temperature),
		TopP:             genai.Ptr[float32](values.TopP),
		TopK:             genai.Ptr[float32](values.TopK),
		MaxOutputTokens:  values.MaxTokens,
		SafetySettings:   DefaultSafetySettings,
		ResponseMIMEType: values.OutputFormat,
	}
	if values.SystemInstructions != "" {
		out.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: values.SystemInstructions}}}
	}
	return out
}

// NewCloudServiceClients is a factory function that initializes all required Google Cloud
// service clients based on the provided configuration.
//
// Inputs:
//   - ctx: The root context.Context for the application, used to manage the lifecycle of the clients.
//   - config: A pointer to the loaded application configuration (`Config`).
//
// Outputs:
//   - *ServiceClients: A pointer to the fully initialized ServiceClients struct.
//   - error: An error if any of the clients fail to initialize. Clients opened
//     before the failure are closed.
func NewCloudServiceClients(ctx context.Context, config *Config) (*ServiceClients, error) {
	if config.Application.GoogleProjectId == "" {
		return nil, errors.New("application.google_project_id is not set")
	}
	clients := &ServiceClients{
		PubSubListeners: make(map[string]*PubSubListener),
		AgentModels:     make(map[string]*QuotaAwareGenerativeAIModel),
	}
	fail := func(err error) (*ServiceClients, error) {
		_ = clients.Close()
		return nil, err
	}

	var err error
	if clients.StorageClient, err = storage.NewClient(ctx); err != nil {
		return fail(fmt.Errorf("failed to create storage client: %w", err))
	}
	if clients.PubsubClient, err = pubsub.NewClient(ctx, config.Application.GoogleProjectId); err != nil {
		return fail(fmt.Errorf("failed to create pubsub client: %w", err))
	}
	if clients.BigQueryClient, err = bigquery.NewClient(ctx, config.Application.GoogleProjectId); err != nil {
		return fail(fmt.Errorf("failed to create bigquery client: %w", err))
	}

	slog.Info("creating genai client", "project", config.Application.GoogleProjectId, "location", config.Application.GoogleLocation)
	clients.GenAIClient, err = genai.NewClient(ctx, &genai.ClientConfig{
		Project:  config.Application.GoogleProjectId,
		Location: config.Application.GoogleLocation,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return fail(fmt.Errorf("failed to create genai client: %w", err))
	}

	// The command is attached later, when the workflows are built.
	for subKey, values := range config.TopicSubscriptions {
		listener, err := NewPubSubListener(clients.PubsubClient, values.Name, nil)
		if err != nil {
			return fail(err)
		}
		clients.PubSubListeners[subKey] = listener
	}

	for amKey, values := range config.AgentModels {
		slog.Debug("configuring agent model", "key", amKey, "model", values.Model)
		clients.AgentModels[amKey] = NewQuotaAwareModel(NewGenerateContentConfig(values), values.Model, clients.GenAIClient.Models, values.RateLimit)
	}

	return clients, nil
}
