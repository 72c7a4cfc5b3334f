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

// Package workflow_test contains tests for the director workflow. This file
// runs whole requests through the chain with a scripted model.
package workflow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jaycherian/gcp-go-fashion-director/internal/cloud"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/catalog"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/commands"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/cor"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/model"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/novelty"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/workflow"
	test "github.com/jaycherian/gcp-go-fashion-director/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
)

func newWorkflow(t *testing.T, director, refiner cloud.ContentGenerator) (*workflow.DirectorWorkflow, *novelty.Journals) {
	t.Helper()
	journals := test.NewMemoryJournals()
	w, err := workflow.NewDirectorWorkflow(config, workflow.DirectorDependencies{
		Journals: journals,
		Director: director,
		Refiner:  refiner,
	})
	require.NoError(t, err)
	return w, journals
}

func newRequest() *model.DirectorRequest {
	return &model.DirectorRequest{Brief: "Ivory ao dai by the river", Outfit: test.NewOutfit()}
}

func TestDirectorWorkflow_Steps(t *testing.T) {
	w, _ := newWorkflow(t, nil, nil)
	assert.Equal(t, []string{
		"director-request-reader",
		"director-prompt-builder",
		"director-generate",
		"section-extractor",
		"scene-refiner",
		"segment-splitter",
		"novelty-recorder",
	}, w.Steps())
}

func TestDirectorWorkflow_NeedsJournals(t *testing.T) {
	_, err := workflow.NewDirectorWorkflow(config, workflow.DirectorDependencies{})
	assert.Error(t, err)
}

func TestDirectorWorkflow_BadTemplate(t *testing.T) {
	broken := *config
	broken.PromptTemplates.DirectorPrompt = "{{ .Brief"
	_, err := workflow.NewDirectorWorkflow(&broken, workflow.DirectorDependencies{Journals: test.NewMemoryJournals()})
	assert.Error(t, err)
}

func TestDirectorWorkflow_EndToEnd(t *testing.T) {
	traceCtx, span := tracer.Start(ctx, "director-workflow-test")
	defer span.End()

	director := test.NewFakeGenerator(test.CannedDirectorResponse())
	refiner := test.NewFakeGenerator(test.CannedRefinementResponse())
	w, journals := newWorkflow(t, director, refiner)

	res, err := w.Run(traceCtx, newRequest())
	if err != nil {
		span.SetStatus(codes.Error, "director workflow failed")
	}
	require.NoError(t, err)

	assert.NotEmpty(t, res.ID)
	assert.Equal(t, test.CannedDirectorResponse(), res.FullText)
	require.NotNil(t, res.Sections)
	require.NotNil(t, res.Sections.Payload)
	assert.Contains(t, res.Sections.Master, "Young Vietnamese woman")
	require.Len(t, res.KeyframeItems, 2)
	assert.Equal(t, test.CannedKeyframe1, res.KeyframeItems[0].Content)
	assert.Len(t, res.SceneItems, 2)
	assert.Equal(t, test.CannedRefinementResponse(), res.RefinedScenes)
	assert.Len(t, res.RefinedItems, 2)
	assert.Empty(t, res.Warnings)

	assert.Equal(t, test.CannedLocation, res.Choices[string(model.LocationVault)])
	assert.Len(t, res.Suggestions[string(model.LocationVault)], config.Director.SuggestedLocations)
	assert.Equal(t, 1, journals.Locations().Len())
	assert.Equal(t, res.ID, journals.Locations().Entries()[0].Tag)

	require.Len(t, director.Calls(), 1)
	assert.Contains(t, director.PromptText(0), commands.FreshStart)
	require.Len(t, refiner.Calls(), 1)
}

func TestDirectorWorkflow_SecondRunSeesFirstLocation(t *testing.T) {
	director := test.NewFakeGenerator(test.CannedDirectorResponse())
	w, journals := newWorkflow(t, director, nil)

	_, err := w.Run(ctx, newRequest())
	require.NoError(t, err)
	res, err := w.Run(ctx, newRequest())
	require.NoError(t, err)

	assert.Contains(t, director.PromptText(1), "PREVIOUSLY USED LOCATIONS (COLLISION AVOIDANCE ACTIVATED):\n"+test.CannedLocation)
	assert.Equal(t, 1, journals.Locations().Len())
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "refinement model not configured")
}

func TestDirectorWorkflow_TikTokStudio(t *testing.T) {
	director := test.NewFakeGenerator(test.CannedDirectorResponse())
	w, journals := newWorkflow(t, director, director)
	req := newRequest()
	req.Mode = model.ModeTikTokShop
	req.StudioCategory = catalog.Auto
	req.ProductType = "ao dai"

	res, err := w.Run(ctx, req)
	require.NoError(t, err)

	assert.Contains(t, director.PromptText(0), "Target Duration: 32s (4 scenes).")
	assert.Contains(t, director.PromptText(0), "STUDIO_MODE: ON")
	assert.Len(t, res.Suggestions[string(model.BackdropVault)], config.Director.SuggestedStudios)
	assert.Equal(t, 1, journals.Backdrops().Len())
	require.Equal(t, 1, journals.OpeningLines().Len())
	assert.Equal(t, "ao dai", journals.OpeningLines().Entries()[0].Category)

	_, err = w.Run(ctx, req)
	require.NoError(t, err)
	assert.Contains(t, director.PromptText(2), `- "`+test.CannedOpeningLine+`"`)
}

func TestDirectorWorkflow_Lookbook(t *testing.T) {
	director := test.NewFakeGenerator(test.CannedDirectorResponse())
	refiner := test.NewFakeGenerator("unused")
	w, _ := newWorkflow(t, director, refiner)
	req := newRequest()
	req.Lookbook = true

	res, err := w.Run(ctx, req)
	require.NoError(t, err)

	assert.Contains(t, director.PromptText(0), "LOOKBOOK_MODE: ON")
	assert.Empty(t, refiner.Calls())
	assert.Empty(t, res.RefinedScenes)
}

func TestDirectorWorkflow_InvalidRequest(t *testing.T) {
	director := test.NewFakeGenerator(test.CannedDirectorResponse())
	w, journals := newWorkflow(t, director, nil)

	res, err := w.Run(ctx, &model.DirectorRequest{Brief: "no outfit"})

	assert.ErrorIs(t, err, commands.ErrInvalidRequest)
	assert.Nil(t, res)
	assert.Empty(t, director.Calls())
	assert.Equal(t, 0, journals.Locations().Len())
}

func TestDirectorWorkflow_ModelNotConfigured(t *testing.T) {
	w, _ := newWorkflow(t, nil, nil)

	res, err := w.Run(ctx, newRequest())

	assert.ErrorIs(t, err, cloud.ErrModelNotConfigured)
	require.NotNil(t, res)
	assert.Empty(t, res.FullText)
}

func TestDirectorWorkflow_ModelFailureRetries(t *testing.T) {
	director := test.NewFakeGenerator()
	director.Err = errors.New("rpc error: code = Unavailable desc = backend overloaded")
	w, journals := newWorkflow(t, director, nil)

	res, err := w.Run(ctx, newRequest())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend overloaded")
	assert.Len(t, director.Calls(), cloud.MaxRetries+1)
	require.NotNil(t, res)
	assert.Len(t, res.Suggestions[string(model.LocationVault)], config.Director.SuggestedLocations)
	assert.Equal(t, 0, journals.Locations().Len())
}

func TestDirectorWorkflow_UnstructuredResponse(t *testing.T) {
	director := test.NewFakeGenerator("The model rambled without any structure.")
	w, journals := newWorkflow(t, director, nil)

	res, err := w.Run(ctx, newRequest())
	require.NoError(t, err)

	assert.Nil(t, res.Sections.Payload)
	assert.Equal(t, model.Sentinel(model.FieldKeyframes), res.Sections.Keyframes)
	assert.Empty(t, res.KeyframeItems)
	assert.Empty(t, res.Choices)
	assert.Equal(t, 0, journals.Locations().Len())
}

func TestDirectorWorkflow_ExecuteFromMessage(t *testing.T) {
	director := test.NewFakeGenerator(test.CannedDirectorResponse())
	w, _ := newWorkflow(t, director, nil)

	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(ctx)
	chainCtx.Add(cor.CtxIn, `{"brief": "from pubsub"}`)
	defer chainCtx.Close()

	require.True(t, w.IsExecutable(chainCtx))
	w.Execute(chainCtx)

	assert.ErrorIs(t, cor.Err(chainCtx), commands.ErrInvalidRequest)
}

func TestDirectorWorkflow_Canceled(t *testing.T) {
	director := test.NewFakeGenerator(test.CannedDirectorResponse())
	w, _ := newWorkflow(t, director, nil)
	canceled, cancel := context.WithCancel(ctx)
	cancel()

	_, err := w.Run(canceled, newRequest())

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, director.Calls())
}
