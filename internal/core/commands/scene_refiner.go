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
// optional second model call that rewrites the scenes so consecutive scenes
// start and end on matching poses and follow the soundtrack's beats.
//
// Logic Flow:
//  1. Skip lookbook requests (images only) and responses without a usable
//     master prompt or keyframe list.
//  2. Collect beat sync info from the structured payload, filling gaps with
//     a typical remix structure.
//  3. Render the refinement template and call the refinement model.
//  4. Store the trimmed text on the result. Any failure only adds a warning:
//     the first pass is already a complete shot list.
package commands

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/jaycherian/gcp-go-fashion-director/internal/cloud"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/cor"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/model"
	"go.opentelemetry.io/otel/metric"
)

// Beat sync defaults used when the response does not carry them.
const (
	DefaultBPM         = "128"
	DefaultBeatPattern = "remix-drop-pattern"
	DefaultMusicMood   = "EDM-remix-high-energy"
	DefaultDrops       = "12.0s, 16.0s, 24.0s, 28.0s"
)

// RefinementData is the value the refinement template is executed with.
type RefinementData struct {
	Master    string
	Keyframes string
	Scenes    string
	BPM       string
	Pattern   string
	Mood      string
	Drops     string
}

// SceneRefiner is a command that runs the scene refinement pass.
type SceneRefiner struct {
	cor.BaseCommand
	generativeAIModel        cloud.ContentGenerator
	template                 *template.Template
	geminiInputTokenCounter  metric.Int64Counter
	geminiOutputTokenCounter metric.Int64Counter
	geminiRetryCounter       metric.Int64Counter
}

// NewSceneRefiner is the constructor for SceneRefiner. A nil model turns the
// step into a warning.
func NewSceneRefiner(name string, generativeAIModel cloud.ContentGenerator, template *template.Template) *SceneRefiner {
	out := &SceneRefiner{
		BaseCommand:       *cor.NewBaseCommand(name),
		generativeAIModel: generativeAIModel,
		template:          template,
	}
	out.geminiInputTokenCounter, _ = out.GetMeter().Int64Counter(fmt.Sprintf("%s.gemini.token.input", out.GetName()))
	out.geminiOutputTokenCounter, _ = out.GetMeter().Int64Counter(fmt.Sprintf("%s.gemini.token.output", out.GetName()))
	out.geminiRetryCounter, _ = out.GetMeter().Int64Counter(fmt.Sprintf("%s.gemini.token.retry", out.GetName()))
	return out
}

func (r *SceneRefiner) IsExecutable(context cor.Context) bool {
	return hasRun(context) && resultOf(context).Sections != nil
}

// ShouldRefine reports whether a run qualifies for refinement.
func ShouldRefine(req *model.DirectorRequest, sections *model.ExtractedSections) bool {
	return req != nil && !req.Lookbook && sections != nil &&
		sections.IsAvailable(model.FieldMaster) && sections.IsAvailable(model.FieldKeyframes)
}

// NewRefinementData collects the template input, applying the beat defaults.
func NewRefinementData(sections *model.ExtractedSections) RefinementData {
	data := RefinementData{
		Master:    sections.Master,
		Keyframes: sections.Keyframes,
		Scenes:    sections.Scenes,
		BPM:       DefaultBPM,
		Pattern:   DefaultBeatPattern,
		Mood:      DefaultMusicMood,
		Drops:     DefaultDrops,
	}
	if sections.Payload != nil && sections.Payload.BeatSync != nil {
		beat := sections.Payload.BeatSync
		data.BPM = beat.BPM.Or(DefaultBPM)
		data.Pattern = beat.BeatPattern.Or(DefaultBeatPattern)
		data.Mood = beat.MusicMood.Or(DefaultMusicMood)
		data.Drops = beat.DropTimestamps.Or(DefaultDrops)
	}
	return data
}

func (r *SceneRefiner) Execute(context cor.Context) {
	ctx := context.GetContext()
	req := requestOf(context)
	res := resultOf(context)

	if !ShouldRefine(req, res.Sections) {
		slog.DebugContext(ctx, "scene refinement skipped", "id", res.ID, "lookbook", req.Lookbook)
		return
	}
	if r.generativeAIModel == nil {
		res.Warn("scene refinement skipped: refinement model not configured")
		return
	}

	var buffer bytes.Buffer
	if err := r.template.Execute(&buffer, NewRefinementData(res.Sections)); err != nil {
		r.GetErrorCounter().Add(ctx, 1)
		res.Warn(fmt.Sprintf("scene refinement skipped: %v", err))
		return
	}

	out, err := cloud.GenerateMultiModalResponse(ctx,
		r.geminiInputTokenCounter,
		r.geminiOutputTokenCounter,
		r.geminiRetryCounter,
		0,
		r.generativeAIModel,
		cloud.NewTextContents(buffer.String()))
	if err != nil {
		r.GetErrorCounter().Add(ctx, 1)
		slog.WarnContext(ctx, "scene refinement failed", "id", res.ID, "error", err)
		res.Warn("scene refinement failed: " + cloud.DescribeModelError(err))
		return
	}

	res.RefinedScenes = strings.TrimSpace(out)
	r.Succeed(context)
}
