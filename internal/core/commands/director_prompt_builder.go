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
// command that renders the director prompt.
//
// Logic Flow:
//  1. Read the normalized request.
//  2. Build the location blocklist from the location vault, or "None (Fresh
//     Start)" when it is empty.
//  3. Sample unused locations for the requested region and, in studio mode,
//     unused studio backdrops for the requested category. Each sample is
//     filtered by the matching vault's fuzzy duplicate test.
//  4. In TikTok Shop mode, add the most recent opening lines as a blocklist.
//  5. Embed the example payload (few-shot) and execute the template.
//  6. Store the prompt under ParamPrompt and CtxOut, and the suggestions on
//     the result.
package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/jaycherian/gcp-go-fashion-director/internal/cloud"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/catalog"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/cor"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/model"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/novelty"
)

// FreshStart is the location blocklist sent when nothing has been used yet.
const FreshStart = "None (Fresh Start)"

// KeyframeInterval is the spacing between keyframes, in seconds.
const KeyframeInterval = 8

// PromptData is the value the director template is executed with.
type PromptData struct {
	ModeLabel            string
	Brief                string
	ProductType          string
	Duration             int
	SceneCount           int
	AspectRatio          string
	KeyframeCount        int
	KeyframeTimestamps   string
	Lookbook             bool
	RegionAuto           bool
	RegionLabel          string
	RegionDescription    string
	SuggestedLocations   []string // Numbered, "1. Name".
	StudioMode           bool
	StudioLabel          string
	SuggestedStudios     []string // Numbered, "1. Name | details".
	LocationBlocklist    string
	OpeningLineBlocklist []string
	ExampleJSON          string
	HasFace              bool
}

// DirectorPromptBuilder renders the director prompt for a request.
type DirectorPromptBuilder struct {
	cor.BaseCommand
	config   cloud.Director
	journals *novelty.Journals
	template *template.Template
}

// NewDirectorPromptBuilder is the constructor for DirectorPromptBuilder.
//
// Inputs:
//   - name: A string name for this command instance.
//   - config: Suggestion and blocklist sizes.
//   - journals: The novelty vaults the blocklists and samples come from.
//   - template: The parsed director prompt template.
func NewDirectorPromptBuilder(name string, config cloud.Director, journals *novelty.Journals, template *template.Template) *DirectorPromptBuilder {
	return &DirectorPromptBuilder{
		BaseCommand: *cor.NewBaseCommand(name),
		config:      config,
		journals:    journals,
		template:    template,
	}
}

func (p *DirectorPromptBuilder) IsExecutable(context cor.Context) bool {
	return hasRun(context)
}

// KeyframeTimestamps lists the keyframe times for a duration: one every
// KeyframeInterval seconds, both ends included.
func KeyframeTimestamps(duration int) []string {
	count := duration/KeyframeInterval + 1
	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, fmt.Sprintf("%ds", i*KeyframeInterval))
	}
	return out
}

func nonBlank(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func numbered(items []string) []string {
	out := make([]string, 0, len(items))
	for i, item := range items {
		out = append(out, fmt.Sprintf("%d. %s", i+1, item))
	}
	return out
}

// GenerateParams builds the template data for req and the suggestions it
// offers, keyed by vault name.
func (p *DirectorPromptBuilder) GenerateParams(req *model.DirectorRequest) (*PromptData, map[string][]string) {
	suggestions := make(map[string][]string)
	timestamps := KeyframeTimestamps(req.DurationSec)
	data := &PromptData{
		ModeLabel:          strings.ToUpper(req.Mode),
		Brief:              req.Brief,
		ProductType:        req.ProductType,
		Duration:           req.DurationSec,
		SceneCount:         req.SceneCount(),
		AspectRatio:        req.AspectRatio,
		KeyframeCount:      len(timestamps),
		KeyframeTimestamps: strings.Join(timestamps, ", "),
		Lookbook:           req.Lookbook,
		RegionAuto:         req.Region == "" || req.Region == catalog.Auto,
		LocationBlocklist:  FreshStart,
		HasFace:            req.Face != nil,
	}
	if data.Brief == "" {
		data.Brief = "(none - follow the outfit reference)"
	}

	if region, ok := catalog.FindRegion(req.Region); ok {
		data.RegionLabel = region.Label
		data.RegionDescription = region.Description
	}

	locations := p.journals.Locations()
	if used := nonBlank(locations.Blocklist()); len(used) > 0 {
		data.LocationBlocklist = strings.Join(used, ", ")
	}
	if picked := locations.Sample(catalog.LocationPool(req.Region), p.config.SuggestedLocations); len(picked) > 0 {
		suggestions[string(model.LocationVault)] = picked
		data.SuggestedLocations = numbered(picked)
	}

	if req.StudioCategory != "" {
		data.StudioMode = true
		data.StudioLabel = "AI Auto"
		if category, ok := catalog.FindStudioCategory(req.StudioCategory); ok {
			data.StudioLabel = category.Label
		}
		picked := p.journals.Backdrops().Sample(catalog.StudioPool(req.StudioCategory), p.config.SuggestedStudios)
		if len(picked) > 0 {
			suggestions[string(model.BackdropVault)] = picked
			data.SuggestedStudios = numbered(picked)
		}
	}

	if req.Mode == model.ModeTikTokShop {
		lines := nonBlank(p.journals.OpeningLines().Blocklist())
		if n := p.config.OpeningLineBlocklist; n >= 0 && len(lines) > n {
			lines = lines[:n]
		}
		data.OpeningLineBlocklist = lines
	}

	if example, err := json.MarshalIndent(model.GetExamplePayload(), "", "  "); err == nil {
		data.ExampleJSON = string(example)
	}
	return data, suggestions
}

// Execute renders the prompt.
func (p *DirectorPromptBuilder) Execute(context cor.Context) {
	req := requestOf(context)
	res := resultOf(context)

	data, suggestions := p.GenerateParams(req)
	var buffer bytes.Buffer
	if err := p.template.Execute(&buffer, data); err != nil {
		p.Fail(context, fmt.Errorf("failed to execute prompt template: %w", err))
		return
	}

	for vault, picked := range suggestions {
		res.Suggestions[vault] = picked
	}
	context.Add(ParamPrompt, buffer.String())
	context.Add(p.GetOutputParam(), buffer.String())
	p.Succeed(context)
}
