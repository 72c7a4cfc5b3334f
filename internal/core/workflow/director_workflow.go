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

// Package workflow defines the high-level business logic orchestrations,
// combining commands into pipelines. This file implements the director
// workflow: a brief and reference images in, a structured shot list out.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"text/template"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/storage"
	"github.com/jaycherian/gcp-go-fashion-director/internal/cloud"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/commands"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/cor"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/model"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/novelty"
)

// DirectorDependencies are the collaborators of a DirectorWorkflow. Only
// Journals is required. A nil Director fails every run with
// cloud.ErrModelNotConfigured; nil Storage and BigQuery disable gs:// images
// and history.
type DirectorDependencies struct {
	Journals *novelty.Journals
	Director cloud.ContentGenerator
	Refiner  cloud.ContentGenerator
	Storage  *storage.Client
	BigQuery *bigquery.Client
}

// NewDirectorDependencies picks the configured models and clients out of
// the service clients. The refinement model falls back to the director
// model. clients may be nil when running without Google Cloud.
func NewDirectorDependencies(config *cloud.Config, clients *cloud.ServiceClients, journals *novelty.Journals) DirectorDependencies {
	deps := DirectorDependencies{Journals: journals}
	if clients == nil {
		return deps
	}
	deps.Storage = clients.StorageClient
	deps.BigQuery = clients.BigQueryClient
	if m, err := clients.Model(config.Director.Model); err == nil {
		deps.Director = m
		deps.Refiner = m
	}
	if config.Director.RefinementModel != "" {
		if m, err := clients.Model(config.Director.RefinementModel); err == nil {
			deps.Refiner = m
		}
	}
	return deps
}

// DirectorWorkflow runs one director request through the command chain:
//
//  1. read and normalize the request
//  2. render the director prompt from the vaults and the catalog
//  3. call the director model
//  4. extract the sections
//  5. refine the scenes (optional, non-fatal)
//  6. split sections into segments
//  7. record the creative choices in the vaults
//  8. persist the shot list to BigQuery (when configured, non-fatal)
type DirectorWorkflow struct {
	cor.BaseCommand
	config             *cloud.Config
	deps               DirectorDependencies
	directorTemplate   *template.Template
	refinementTemplate *template.Template
	chain              cor.Chain
}

// NewDirectorWorkflow is the constructor for DirectorWorkflow. It parses the
// prompt templates and builds the chain.
//
// Inputs:
//   - config: The application's configuration.
//   - deps: Vaults, models and clients.
//
// Outputs:
//   - *DirectorWorkflow: The ready workflow.
//   - error: A missing journal set or an unparsable template.
func NewDirectorWorkflow(config *cloud.Config, deps DirectorDependencies) (*DirectorWorkflow, error) {
	if deps.Journals == nil {
		return nil, errors.New("director workflow needs novelty journals")
	}
	directorTemplate, err := template.New("director-template").Parse(config.PromptTemplates.DirectorPrompt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse director prompt: %w", err)
	}
	refinementTemplate, err := template.New("refinement-template").Parse(config.PromptTemplates.RefinementPrompt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse refinement prompt: %w", err)
	}

	w := &DirectorWorkflow{
		BaseCommand:        *cor.NewBaseCommand("director-workflow"),
		config:             config,
		deps:               deps,
		directorTemplate:   directorTemplate,
		refinementTemplate: refinementTemplate,
	}
	w.initializeChain()
	return w, nil
}

func (w *DirectorWorkflow) initializeChain() {
	out := cor.NewBaseChain(w.GetName())
	out.AddCommand(commands.NewDirectorRequestReader("director-request-reader", w.deps.Storage))
	out.AddCommand(commands.NewDirectorPromptBuilder("director-prompt-builder", w.config.Director, w.deps.Journals, w.directorTemplate))
	out.AddCommand(commands.NewDirectorGenerator("director-generate", w.deps.Director))
	out.AddCommand(commands.NewSectionExtractor("section-extractor"))
	out.AddCommand(commands.NewSceneRefiner("scene-refiner", w.deps.Refiner, w.refinementTemplate))
	out.AddCommand(commands.NewSegmentSplitter("segment-splitter"))
	out.AddCommand(commands.NewNoveltyRecorder("novelty-recorder", w.deps.Journals))
	if w.deps.BigQuery != nil {
		out.AddCommand(commands.NewShotListPersister(
			"shot-list-persister",
			w.deps.BigQuery,
			w.config.BigQueryDataSource.DatasetName,
			w.config.BigQueryDataSource.ShotListTable))
	}
	w.chain = out
}

// Steps returns the command names in execution order.
func (w *DirectorWorkflow) Steps() []string {
	if chain, ok := w.chain.(*cor.BaseChain); ok {
		return chain.Commands()
	}
	return nil
}

// IsExecutable requires a Go context and an input in CtxIn.
func (w *DirectorWorkflow) IsExecutable(context cor.Context) bool {
	return w.BaseCommand.IsExecutable(context)
}

// Execute runs the chain. Pub/Sub listeners call it with the message body in
// CtxIn.
func (w *DirectorWorkflow) Execute(context cor.Context) {
	w.chain.Execute(context)
}

// Run executes the workflow for a single request.
//
// Inputs:
//   - ctx: Bounds the whole run, model calls included.
//   - req: The request. It is copied, not modified.
//
// Outputs:
//   - *model.DirectorResult: The shot list. Also returned, partially filled,
//     alongside an error once the request has been accepted.
//   - error: The failures recorded by the commands; errors.Is matches
//     commands.ErrInvalidRequest and cloud.ErrModelNotConfigured.
func (w *DirectorWorkflow) Run(ctx context.Context, req *model.DirectorRequest) (*model.DirectorResult, error) {
	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(ctx)
	chainCtx.Add(cor.CtxIn, req)
	defer chainCtx.Close()

	w.Execute(chainCtx)

	res, _ := cor.GetAs[*model.DirectorResult](chainCtx, commands.ParamResult)
	if err := cor.Err(chainCtx); err != nil {
		return res, err
	}
	if res == nil {
		return nil, errors.New("director workflow produced no result")
	}
	return res, nil
}
