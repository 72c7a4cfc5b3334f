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

// Package commands provides the concrete implementations of the Chain of
// Responsibility (COR) pattern's Command interface. This file defines the
// command that sends the director prompt and the reference images to the
// generative model.
//
// Logic Flow:
//  1. Read the rendered prompt and the request.
//  2. Build one user turn: the prompt, then the face reference (when given)
//     and the outfit reference, each preceded by a label so the model can
//     tell them apart.
//  3. Call the model through GenerateMultiModalResponse, which retries
//     transient failures and counts tokens.
//  4. Store the verbatim text on the result and in CtxOut.
package commands

import (
	"fmt"

	"github.com/jaycherian/gcp-go-fashion-director/internal/cloud"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/cor"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/model"
	"go.opentelemetry.io/otel/metric"
	"google.golang.org/genai"
)

// Image labels placed before the reference images.
const (
	FaceLabel         = "IMAGE 1 - FACE REFERENCE (Use this face):"
	OutfitLabel       = "IMAGE 2 - OUTFIT/PRODUCT REFERENCE (Use this product):"
	OutfitOnlyLabel   = "OUTFIT/PRODUCT REFERENCE:"
	directorModelRole = "user"
)

// DirectorGenerator is a command that asks the model for a shot list.
type DirectorGenerator struct {
	cor.BaseCommand
	generativeAIModel        cloud.ContentGenerator
	geminiInputTokenCounter  metric.Int64Counter
	geminiOutputTokenCounter metric.Int64Counter
	geminiRetryCounter       metric.Int64Counter
}

// NewDirectorGenerator is the constructor for DirectorGenerator.
//
// Inputs:
//   - name: A string name for this command instance.
//   - generativeAIModel: The model to call, normally rate limited.
//
// Outputs:
//   - *DirectorGenerator: The command with its token counters initialized.
func NewDirectorGenerator(name string, generativeAIModel cloud.ContentGenerator) *DirectorGenerator {
	out := &DirectorGenerator{
		BaseCommand:       *cor.NewBaseCommand(name),
		generativeAIModel: generativeAIModel,
	}
	out.geminiInputTokenCounter, _ = out.GetMeter().Int64Counter(fmt.Sprintf("%s.gemini.token.input", out.GetName()))
	out.geminiOutputTokenCounter, _ = out.GetMeter().Int64Counter(fmt.Sprintf("%s.gemini.token.output", out.GetName()))
	out.geminiRetryCounter, _ = out.GetMeter().Int64Counter(fmt.Sprintf("%s.gemini.token.retry", out.GetName()))
	return out
}

func (g *DirectorGenerator) IsExecutable(context cor.Context) bool {
	return hasRun(context) && cor.HasAll(context, ParamPrompt)
}

// BuildContents assembles the multi-modal prompt: text first, then the face
// reference, then the outfit reference.
func BuildContents(prompt string, req *model.DirectorRequest) []*genai.Content {
	parts := []*genai.Part{cloud.NewTextPart(prompt)}
	outfitLabel := OutfitOnlyLabel
	if req.Face != nil {
		parts = append(parts,
			cloud.NewTextPart(FaceLabel),
			cloud.NewImagePart(req.Face.Data, req.Face.MIMEType))
		outfitLabel = OutfitLabel
	}
	if req.Outfit != nil {
		parts = append(parts,
			cloud.NewTextPart(outfitLabel),
			cloud.NewImagePart(req.Outfit.Data, req.Outfit.MIMEType))
	}
	return []*genai.Content{{Role: directorModelRole, Parts: parts}}
}

// Execute calls the model.
func (g *DirectorGenerator) Execute(context cor.Context) {
	prompt, _ := cor.GetAs[string](context, ParamPrompt)
	req := requestOf(context)
	res := resultOf(context)

	out, err := cloud.GenerateMultiModalResponse(
		context.GetContext(),
		g.geminiInputTokenCounter,
		g.geminiOutputTokenCounter,
		g.geminiRetryCounter,
		0,
		g.generativeAIModel,
		BuildContents(prompt, req))
	if err != nil {
		g.Fail(context, fmt.Errorf("gemini request failed: %w", err))
		return
	}

	res.FullText = out
	context.Add(g.GetOutputParam(), out)
	g.Succeed(context)
}
