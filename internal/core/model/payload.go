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

// Package model defines the core data structures for the application.
// This file, `payload.go`, maps the structured JSON document the director
// model is asked to emit. Models are loose with types (ids arrive as numbers
// or strings, durations as 24 or "24s"), so every leaf is a Scalar.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Scalar is a string that decodes from any JSON scalar. Arrays are flattened
// into a comma separated list and objects are kept as compact JSON text.
type Scalar string

// UnmarshalJSON implements json.Unmarshaler.
func (s *Scalar) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	switch b[0] {
	case '"':
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = Scalar(v)
	case '[':
		var items []Scalar
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		parts := make([]string, 0, len(items))
		for _, item := range items {
			if v := item.String(); v != "" {
				parts = append(parts, v)
			}
		}
		*s = Scalar(strings.Join(parts, ", "))
	case '{':
		var buf bytes.Buffer
		if err := json.Compact(&buf, b); err != nil {
			return err
		}
		*s = Scalar(buf.String())
	default:
		*s = Scalar(b)
	}
	return nil
}

// String returns the trimmed value.
func (s Scalar) String() string {
	return strings.TrimSpace(string(s))
}

// Or returns the value, or def when the value is blank.
func (s Scalar) Or(def string) string {
	if v := s.String(); v != "" {
		return v
	}
	return def
}

// MasterPrompt holds the character, outfit and environment invariants shared by
// every keyframe and scene.
type MasterPrompt struct {
	Text             Scalar `json:"text,omitempty"` // Set when the model sent the master prompt as plain text.
	FacePreservation Scalar `json:"facePreservation,omitempty"`
	Subject          Scalar `json:"subject,omitempty"`
	Outfit           Scalar `json:"outfit,omitempty"`
	Pose             Scalar `json:"pose,omitempty"`
	Environment      Scalar `json:"environment,omitempty"`
	Lighting         Scalar `json:"lighting,omitempty"`
	Camera           Scalar `json:"camera,omitempty"`
	Style            Scalar `json:"style,omitempty"`
}

// Keyframe is one static pose. Lookbook responses use the same shape under
// the "images" key.
type Keyframe struct {
	ID          Scalar `json:"id,omitempty"`
	Timestamp   Scalar `json:"timestamp,omitempty"`
	ImagePrompt Scalar `json:"imagePrompt,omitempty"`
	Prompt      Scalar `json:"prompt,omitempty"`
	Description Scalar `json:"description,omitempty"`
	Subject     Scalar `json:"subject,omitempty"`
	Action      Scalar `json:"action,omitempty"`
	Environment Scalar `json:"environment,omitempty"`
	Lighting    Scalar `json:"lighting,omitempty"`
	Camera      Scalar `json:"camera,omitempty"`
	Style       Scalar `json:"style,omitempty"`
}

// FullPrompt returns the single free-text prompt field if the model supplied one.
func (k *Keyframe) FullPrompt() string {
	for _, v := range []Scalar{k.ImagePrompt, k.Prompt, k.Description} {
		if s := v.String(); s != "" {
			return s
		}
	}
	return ""
}

// VoiceConfig describes the voice-over for a scene. Two shapes exist: the
// current one (voice_profile, vocal_tone, sync) and a legacy one (voice,
// accent, speed, pitch).
type VoiceConfig struct {
	VoiceProfile Scalar `json:"voice_profile,omitempty"`
	VocalTone    Scalar `json:"vocal_tone,omitempty"`
	Sync         Scalar `json:"sync,omitempty"`
	Voice        Scalar `json:"voice,omitempty"`
	Accent       Scalar `json:"accent,omitempty"`
	Speed        Scalar `json:"speed,omitempty"`
	Pitch        Scalar `json:"pitch,omitempty"`
}

// IsCurrent reports whether the current shape is present.
func (v *VoiceConfig) IsCurrent() bool {
	return v.VoiceProfile.String() != ""
}

// IsLegacy reports whether the legacy shape is present.
func (v *VoiceConfig) IsLegacy() bool {
	return v.Voice.String() != ""
}

// ScenePrompt is one motion segment between two keyframes.
type ScenePrompt struct {
	ID            Scalar       `json:"id,omitempty"`
	TimeRange     Scalar       `json:"timeRange,omitempty"`
	ShotType      Scalar       `json:"shotType,omitempty"`
	SubjectMotion Scalar       `json:"subjectMotion,omitempty"`
	CameraMotion  Scalar       `json:"cameraMotion,omitempty"`
	Atmosphere    Scalar       `json:"atmosphere,omitempty"`
	StartPose     Scalar       `json:"startPose,omitempty"`
	EndPose       Scalar       `json:"endPose,omitempty"`
	BeatMarkers   Scalar       `json:"beatMarkers,omitempty"`
	BeatActions   Scalar       `json:"beatActions,omitempty"`
	Script        Scalar       `json:"script,omitempty"`
	VoiceConfig   *VoiceConfig `json:"voiceConfig,omitempty"`
}

// KeyBeat is a single accented beat in the music track.
type KeyBeat struct {
	Timestamp Scalar `json:"timestamp,omitempty"`
	Action    Scalar `json:"action,omitempty"`
	Intensity Scalar `json:"intensity,omitempty"`
}

// BeatSync ties scene motion to the soundtrack.
type BeatSync struct {
	BPM             Scalar     `json:"bpm,omitempty"`
	BeatPattern     Scalar     `json:"beatPattern,omitempty"`
	KeyBeats        []*KeyBeat `json:"keyBeats,omitempty"`
	DropTimestamps  Scalar     `json:"dropTimestamps,omitempty"`
	TransitionStyle Scalar     `json:"transitionStyle,omitempty"`
	MusicMood       Scalar     `json:"musicMood,omitempty"`
}

// ShotMetadata carries the production facts of a shot list.
type ShotMetadata struct {
	Location     Scalar `json:"location,omitempty"`
	Duration     Scalar `json:"duration,omitempty"`
	AspectRatio  Scalar `json:"aspectRatio,omitempty"`
	ProductType  Scalar `json:"productType,omitempty"`
	MusicVibe    Scalar `json:"musicVibe,omitempty"`
	AutoCutReady Scalar `json:"autoCutReady,omitempty"`
}

// DirectorPayload is the structured document embedded in a director response.
type DirectorPayload struct {
	MasterPrompt *MasterPrompt  `json:"masterPrompt,omitempty"`
	Keyframes    []*Keyframe    `json:"keyframes,omitempty"`
	Images       []*Keyframe    `json:"images,omitempty"`
	Scenes       []*ScenePrompt `json:"scenes,omitempty"`
	BeatSync     *BeatSync      `json:"beatSync,omitempty"`
	Metadata     *ShotMetadata  `json:"metadata,omitempty"`
}

// IsComplete reports whether the payload carries a master prompt and at
// least a keyframe or image list (an empty list still counts as present).
func (p *DirectorPayload) IsComplete() bool {
	return p != nil && p.MasterPrompt != nil && (p.Keyframes != nil || p.Images != nil)
}

// Frames returns the keyframe list, falling back to the lookbook image list.
func (p *DirectorPayload) Frames() []*Keyframe {
	if p.Keyframes != nil {
		return p.Keyframes
	}
	return p.Images
}

// DecodeDirectorPayload decodes a JSON document into a payload. Only the
// document itself must be a JSON object; each section is decoded on its own
// and a section of the wrong JSON type never fails the whole document.
//
// Logic Flow:
//  1. Split the document into its top-level members.
//  2. masterPrompt: an object is decoded field by field; any other non-blank
//     value becomes MasterPrompt.Text.
//  3. keyframes, images, scenes: arrays are kept item by item; an item that is
//     not an object becomes an empty entry so it still renders a placeholder.
//     A non-array value is ignored.
//  4. beatSync, metadata: objects are decoded field by field; anything else is
//     ignored.
func DecodeDirectorPayload(data []byte) (*DirectorPayload, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode director payload: %w", err)
	}
	out := &DirectorPayload{MasterPrompt: decodeMaster(doc["masterPrompt"])}
	if items, ok := rawArray(doc["keyframes"]); ok {
		out.Keyframes = decodeItems[Keyframe](items)
	}
	if items, ok := rawArray(doc["images"]); ok {
		out.Images = decodeItems[Keyframe](items)
	}
	if items, ok := rawArray(doc["scenes"]); ok {
		out.Scenes = decodeItems[ScenePrompt](items)
	}
	if isObject(doc["beatSync"]) {
		out.BeatSync = &BeatSync{}
		decodeFields(doc["beatSync"], out.BeatSync)
	}
	if isObject(doc["metadata"]) {
		out.Metadata = &ShotMetadata{}
		decodeFields(doc["metadata"], out.Metadata)
	}
	return out, nil
}

func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

// rawArray splits a JSON array into its items. ok is false for anything that
// is not an array.
func rawArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, false
	}
	items := make([]json.RawMessage, 0)
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

// decodeFields decodes an object into dst one member at a time, so a member
// of the wrong type leaves only that field unset.
func decodeFields(raw json.RawMessage, dst interface{}) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(raw, &members); err != nil {
		return
	}
	for key, value := range members {
		one, err := json.Marshal(map[string]json.RawMessage{key: value})
		if err != nil {
			continue
		}
		_ = json.Unmarshal(one, dst)
	}
}

func decodeItems[T any](items []json.RawMessage) []*T {
	out := make([]*T, 0, len(items))
	for _, item := range items {
		v := new(T)
		if isObject(item) {
			decodeFields(item, v)
		}
		out = append(out, v)
	}
	return out
}

func decodeMaster(raw json.RawMessage) *MasterPrompt {
	if isObject(raw) {
		m := &MasterPrompt{}
		decodeFields(raw, m)
		return m
	}
	var text Scalar
	if len(raw) == 0 || json.Unmarshal(raw, &text) != nil || text.String() == "" {
		return nil
	}
	return &MasterPrompt{Text: text}
}
