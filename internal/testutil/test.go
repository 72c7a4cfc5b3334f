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

// Package test provides utility functions and canned data to support the
// application's test suite. It loads the test configuration once, supplies
// director responses shaped like real model output, and offers a fake
// generator so workflows run without Vertex AI.
package test

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/jaycherian/gcp-go-fashion-director/internal/cloud"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/model"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/novelty"
	"github.com/jaycherian/gcp-go-fashion-director/internal/storage"
	"google.golang.org/genai"
)

// StateManager caches the configuration for the duration of a test run.
type StateManager struct {
	config *cloud.Config
	once   sync.Once
}

var state = &StateManager{}

// Values found in CannedDirectorResponse.
const (
	CannedLocation    = "Hoi An Ancient Town riverside at dusk"
	CannedBackdrop    = "Seamless ivory paper sweep with soft key light"
	CannedOpeningLine = "Ao dai lụa này mặc lên là sang liền!"
	CannedKeyframe1   = "Standing by the lantern-lit river, panels lifted by the breeze"
)

// HandleErr fails the test when err is not nil.
func HandleErr(err error, t *testing.T) {
	t.Helper()
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

// CannedDirectorResponse returns a director response as the model sends it:
// a short preamble followed by the fenced JSON payload.
func CannedDirectorResponse() string {
	return "Here is your shot list.\n\n```json\n" + `{
  "masterPrompt": {
    "subject": "Young Vietnamese woman, long black hair",
    "outfit": "Ivory silk ao dai with lotus panels",
    "environment": "` + CannedBackdrop + `",
    "lighting": "Warm lantern glow",
    "camera": "Full body, 85mm f/1.4, 9:16 vertical"
  },
  "keyframes": [
    {"id": 1, "timestamp": "0s", "imagePrompt": "` + CannedKeyframe1 + `"},
    {"id": 2, "timestamp": "8s", "imagePrompt": "Half turn over the shoulder"}
  ],
  "scenes": [
    {"id": 1, "timeRange": "0s-8s", "shotType": "Full body tracking", "subjectMotion": "Slow walk into a half spin",
     "cameraMotion": "Dolly right", "script": "` + CannedOpeningLine + `"},
    {"id": 2, "timeRange": "8s-16s", "shotType": "Medium close-up", "subjectMotion": "Looks back and smiles",
     "cameraMotion": "Slow push in"}
  ],
  "beatSync": {"bpm": 120, "beatPattern": "four-on-the-floor", "dropTimestamps": ["8.0s"], "musicMood": "Lo-fi house"},
  "metadata": {"location": "` + CannedLocation + `", "duration": "16s", "aspectRatio": "9:16"}
}` + "\n```\n"
}

// CannedRefinementResponse returns a refined scene list in the text layout
// the segment splitter understands.
func CannedRefinementResponse() string {
	return "SCENE 1 (0s-8s): Slow walk timed to the first bar, spin lands on the 8.0s drop.\n\n" +
		"SCENE 2 (8s-16s): Look back on the off-beat, push in through the chorus."
}

// FakeGenerator is a cloud.ContentGenerator that answers from a script.
// Responses are returned in order; the last one repeats. When Err is set
// every call fails with it.
type FakeGenerator struct {
	mu        sync.Mutex
	Responses []string
	Err       error
	calls     [][]*genai.Content
}

// NewFakeGenerator returns a generator answering with responses in order.
func NewFakeGenerator(responses ...string) *FakeGenerator {
	return &FakeGenerator{Responses: responses}
}

// GenerateContent implements cloud.ContentGenerator.
func (f *FakeGenerator) GenerateContent(ctx context.Context, contents []*genai.Content) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, contents)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.Err != nil {
		return nil, f.Err
	}
	text := ""
	if n := len(f.Responses); n > 0 {
		i := len(f.calls) - 1
		if i >= n {
			i = n - 1
		}
		text = f.Responses[i]
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Role: "model", Parts: []*genai.Part{{Text: text}}},
		}},
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{PromptTokenCount: 10, CandidatesTokenCount: 20},
	}, nil
}

// Calls returns the prompts received so far.
func (f *FakeGenerator) Calls() [][]*genai.Content {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]*genai.Content, len(f.calls))
	copy(out, f.calls)
	return out
}

// PromptText concatenates the text parts of call i.
func (f *FakeGenerator) PromptText(i int) string {
	calls := f.Calls()
	if i < 0 || i >= len(calls) {
		return ""
	}
	text := ""
	for _, c := range calls[i] {
		for _, p := range c.Parts {
			text += p.Text
		}
	}
	return text
}

// NewMemoryJournals returns vaults backed by a fresh in-memory store.
func NewMemoryJournals() *novelty.Journals {
	return novelty.NewJournals(storage.NewMemoryStore(), nil, nil)
}

// PNG is the smallest valid PNG image, for upload tests.
var PNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x0a, 0x49, 0x44, 0x41,
	0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00,
	0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}

// NewOutfit returns an outfit reference image.
func NewOutfit() *model.ReferenceImage {
	return &model.ReferenceImage{MIMEType: "image/png", Data: PNG}
}

// configDir returns the repository's configs directory.
func configDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "configs")
}

// SetupOS points the configuration loader at the test configuration files.
func SetupOS() error {
	if err := os.Setenv(cloud.EnvConfigFilePrefix, configDir()); err != nil {
		return err
	}
	return os.Setenv(cloud.EnvConfigRuntime, "test")
}

// GetConfig loads the test configuration once and returns the cached value.
// Tests that modify the configuration should work on a copy.
func GetConfig() *cloud.Config {
	state.once.Do(func() {
		if err := SetupOS(); err != nil {
			log.Fatalf("failed to setup environment for test: %v\n", err)
		}
		config := cloud.NewConfig()
		if err := cloud.LoadConfig(config); err != nil {
			log.Fatalf("failed to load test configuration: %v\n", err)
		}
		state.config = config
	})
	return state.config
}
