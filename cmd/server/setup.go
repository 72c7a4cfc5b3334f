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
	"os"

	gcs "cloud.google.com/go/storage"
	"github.com/jaycherian/gcp-go-fashion-director/internal/api"
	"github.com/jaycherian/gcp-go-fashion-director/internal/cloud"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/novelty"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/services"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/workflow"
	"github.com/jaycherian/gcp-go-fashion-director/internal/storage"
)

// StateManager holds the components that live as long as the process.
type StateManager struct {
	config *cloud.Config
	cloud  *cloud.ServiceClients
	store  storage.Store
	api    *api.State
}

var state = &StateManager{}

// SetupOS defaults the configuration directory and runtime when the
// environment leaves them unset.
func SetupOS() (err error) {
	if os.Getenv(cloud.EnvConfigFilePrefix) == "" {
		if err = os.Setenv(cloud.EnvConfigFilePrefix, "configs"); err != nil {
			return err
		}
	}
	if os.Getenv(cloud.EnvConfigRuntime) == "" {
		err = os.Setenv(cloud.EnvConfigRuntime, "local")
	}
	return err
}

// GetConfig loads the configuration once.
func GetConfig() *cloud.Config {
	if state.config == nil {
		if err := SetupOS(); err != nil {
			log.Fatalf("failed to setup os: %v\n", err)
		}
		config := cloud.NewConfig()
		if err := cloud.LoadConfig(config); err != nil {
			log.Fatalf("failed to load configuration: %v\n", err)
		}
		state.config = config
	}
	return state.config
}

// InitState builds the service clients, the vaults, the director workflow and
// the services behind the API.
//
// Logic Flow:
//  1. Open the Google Cloud clients when a project is configured. Without one
//     the server still serves extraction, vaults and suggestions.
//  2. Open the slot store and hydrate the vaults from it.
//  3. Build the director workflow and attach it to the request subscription.
func InitState(ctx context.Context) error {
	config := GetConfig()

	if config.Application.GoogleProjectId != "" {
		clients, err := cloud.NewCloudServiceClients(ctx, config)
		if err != nil {
			return err
		}
		state.cloud = clients
	} else {
		slog.Warn("no google project configured; models, history and pub/sub are disabled")
	}

	var gcsClient *gcs.Client
	if state.cloud != nil {
		gcsClient = state.cloud.StorageClient
	}
	store, err := storage.New(ctx, config.Vaults.StoreConfig(), gcsClient)
	if err != nil {
		return fmt.Errorf("failed to open vault store: %w", err)
	}
	state.store = store

	journals := novelty.NewJournals(store, config.Vaults.Matchers(), slog.Default())
	journals.Hydrate(ctx)

	deps := workflow.NewDirectorDependencies(config, state.cloud, journals)
	director, err := workflow.NewDirectorWorkflow(config, deps)
	if err != nil {
		return err
	}
	slog.Info("director workflow ready", "steps", director.Steps())

	apiState := &api.State{
		Config:      config,
		Workflow:    director,
		Suggestions: services.NewSuggestionService(journals),
	}
	if deps.BigQuery != nil {
		apiState.History = &services.HistoryService{
			BigqueryClient: deps.BigQuery,
			DatasetName:    config.BigQueryDataSource.DatasetName,
			ShotListTable:  config.BigQueryDataSource.ShotListTable,
		}
	}
	state.api = apiState

	SetupListeners(config, state.cloud, director, ctx)
	return nil
}

// CloseState releases the store and the cloud clients.
func CloseState() error {
	var err error
	if state.store != nil {
		err = errors.Join(err, state.store.Close())
	}
	return errors.Join(err, state.cloud.Close())
}
