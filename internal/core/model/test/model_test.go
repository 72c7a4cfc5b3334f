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

// Package model_test contains unit tests for the data models defined in the
// model package: tolerant decoding of model output and vault entries, and the
// constructors of the persistent records.
package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jaycherian/gcp-go-fashion-director/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScalar checks that any JSON scalar decodes into its text form.
func TestScalar(t *testing.T) {
	var v struct {
		A model.Scalar `json:"a"`
		B model.Scalar `json:"b"`
		C model.Scalar `json:"c"`
		D model.Scalar `json:"d"`
		E model.Scalar `json:"e"`
	}
	err := json.Unmarshal([]byte(`{"a": 24, "b": " 24s ", "c": true, "d": ["12.0s", 16, ""], "e": null}`), &v)
	require.NoError(t, err)

	assert.Equal(t, "24", v.A.String())
	assert.Equal(t, "24s", v.B.String())
	assert.Equal(t, "true", v.C.String())
	assert.Equal(t, "12.0s, 16", v.D.String())
	assert.Equal(t, "", v.E.String())
	assert.Equal(t, "fallback", v.E.Or("fallback"))
}

func TestDecodeDirectorPayload(t *testing.T) {
	p, err := model.DecodeDirectorPayload([]byte(`{"masterPrompt": {"subject": "model"}, "images": []}`))
	require.NoError(t, err)
	assert.True(t, p.IsComplete())
	assert.NotNil(t, p.Frames())

	p, err = model.DecodeDirectorPayload([]byte(`{"masterPrompt": {"subject": "model"}}`))
	require.NoError(t, err)
	assert.False(t, p.IsComplete())

	_, err = model.DecodeDirectorPayload([]byte(`{"masterPrompt": `))
	assert.Error(t, err)
}

// TestDecodeDirectorPayload_WrongTypes checks that a section of the wrong
// JSON type is ignored or kept as a placeholder instead of failing the decode.
func TestDecodeDirectorPayload_WrongTypes(t *testing.T) {
	p, err := model.DecodeDirectorPayload([]byte(`{
		"masterPrompt": "Ivory ao dai",
		"keyframes": ["C", {"id": 2, "imagePrompt": "D"}],
		"scenes": "see above",
		"beatSync": {"bpm": 120, "keyBeats": "on the drop"},
		"metadata": ["Hoi An"]
	}`))
	require.NoError(t, err)

	require.NotNil(t, p.MasterPrompt)
	assert.Equal(t, "Ivory ao dai", p.MasterPrompt.Text.String())
	require.Len(t, p.Keyframes, 2)
	assert.Equal(t, "", p.Keyframes[0].FullPrompt())
	assert.Equal(t, "D", p.Keyframes[1].FullPrompt())
	assert.Nil(t, p.Scenes)
	require.NotNil(t, p.BeatSync)
	assert.Equal(t, "120", p.BeatSync.BPM.String())
	assert.Empty(t, p.BeatSync.KeyBeats)
	assert.Nil(t, p.Metadata)
	assert.True(t, p.IsComplete())

	p, err = model.DecodeDirectorPayload([]byte(`{"masterPrompt": null, "keyframes": []}`))
	require.NoError(t, err)
	assert.False(t, p.IsComplete())

	_, err = model.DecodeDirectorPayload([]byte(`["masterPrompt"]`))
	assert.Error(t, err)
}

// TestVaultEntryLegacyShapes checks that entries written by older clients,
// which used per-vault field names, still load.
func TestVaultEntryLegacyShapes(t *testing.T) {
	var entries []model.VaultEntry
	err := json.Unmarshal([]byte(`[
		{"id": 1700000000001, "location": "Hoi An Ancient Town", "region": "vietnam_central", "timestamp": 1700000000001},
		{"id": "b", "studio": "Seamless ivory paper sweep", "category": "aodai", "timestamp": 1700000000002},
		{"id": "c", "hook": "Mặc lên là sang liền!", "productType": "aodai", "timestamp": 1700000000003},
		{"id": "d", "value": "Dalat pine hills", "category": "vietnam_south", "timestamp": 1700000000004, "tag": "run-1"}
	]`), &entries)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.Equal(t, model.VaultEntry{ID: "1700000000001", Value: "Hoi An Ancient Town", Category: "vietnam_central", Timestamp: 1700000000001}, entries[0])
	assert.Equal(t, "Seamless ivory paper sweep", entries[1].Value)
	assert.Equal(t, "aodai", entries[1].Category)
	assert.Equal(t, "Mặc lên là sang liền!", entries[2].Value)
	assert.Equal(t, "aodai", entries[2].Tag)
	assert.Equal(t, "run-1", entries[3].Tag)
	assert.Equal(t, int64(1700000000004), entries[3].Timestamp)
}

func TestParseVaultName(t *testing.T) {
	name, ok := model.ParseVaultName(" Locations ")
	assert.True(t, ok)
	assert.Equal(t, model.LocationVault, name)

	name, ok = model.ParseVaultName("tiktok_script_vault")
	assert.True(t, ok)
	assert.Equal(t, model.OpeningLineVault, name)
	assert.Equal(t, "studio_vault", model.BackdropVault.Slot())

	_, ok = model.ParseVaultName("moodboards")
	assert.False(t, ok)
}

func TestExtractedSections(t *testing.T) {
	s := &model.ExtractedSections{}
	for _, f := range model.Fields {
		s.Set(f, model.Sentinel(f))
		assert.False(t, s.IsAvailable(f), f)
	}
	s.Set(model.FieldKeyframes, "Image 1 (0s): C")
	assert.True(t, s.IsAvailable(model.FieldKeyframes))
	assert.Equal(t, "Image 1 (0s): C", s.Keyframes)
	assert.Equal(t, "Scenes unavailable - check full output", s.Scenes)
}

func TestSceneCount(t *testing.T) {
	assert.Equal(t, 4, (&model.DirectorRequest{DurationSec: 32}).SceneCount())
	assert.Equal(t, 2, (&model.DirectorRequest{DurationSec: 20}).SceneCount())
	assert.Equal(t, 0, (&model.DirectorRequest{}).SceneCount())
	assert.Equal(t, "Scene", model.SceneKind.Label())
	assert.Equal(t, "Image", model.ImageKind.Label())
}

// TestNewShotListRecord verifies that a record copies the request, the
// recovered sections and the recorded choices, and reuses the result id.
func TestNewShotListRecord(t *testing.T) {
	req := &model.DirectorRequest{Brief: "silk ao dai", Mode: model.ModeTikTokShop}
	res := &model.DirectorResult{
		ID:       "run-42",
		FullText: "raw",
		Sections: &model.ExtractedSections{Master: "M", Keyframes: "K", Payload: &model.DirectorPayload{}},
		Choices:  map[string]string{string(model.LocationVault): "Hoi An", string(model.OpeningLineVault): "Sang liền!"},
	}

	record := model.NewShotListRecord(req, res)
	assert.Equal(t, "run-42", record.ID)
	assert.WithinDuration(t, time.Now(), record.CreateDate, time.Second)
	assert.Equal(t, model.ModeTikTokShop, record.Mode)
	assert.Equal(t, "Hoi An", record.Location)
	assert.Equal(t, "", record.Backdrop)
	assert.Equal(t, "Sang liền!", record.OpeningLine)
	assert.Equal(t, "K", record.Keyframes)
	assert.True(t, record.Structured)

	assert.NotEmpty(t, model.NewShotListRecord(nil, &model.DirectorResult{}).ID)
}
