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
// This file, `transient.go`, contains the structures that live only for the
// duration of a single director run: the sections recovered from a model
// response, the display segments cut from those sections, and the request and
// result envelopes that travel through the director workflow.
package model

// Field names a logical section of a director response.
type Field string

const (
	FieldMaster     Field = "master"
	FieldKeyframes  Field = "keyframes"
	FieldScenes     Field = "scenes"
	FieldProduction Field = "production"
	FieldMetadata   Field = "metadata"
)

// Fields lists every logical section in display order.
var Fields = []Field{FieldMaster, FieldKeyframes, FieldScenes, FieldProduction, FieldMetadata}

var fieldLabels = map[Field]string{
	FieldMaster:     "Master prompt",
	FieldKeyframes:  "Keyframes",
	FieldScenes:     "Scenes",
	FieldProduction: "Production notes",
	FieldMetadata:   "Metadata",
}

// Sentinel returns the placeholder text stored in a field when nothing could
// be recovered for it.
func Sentinel(f Field) string {
	label, ok := fieldLabels[f]
	if !ok {
		label = string(f)
	}
	return label + " unavailable - check full output"
}

// ExtractedSections is the fixed-shape result of interpreting a raw model
// response. Every string field is populated, either with recovered text or
// with the field's Sentinel, so callers never branch on presence.
type ExtractedSections struct {
	Master     string           `json:"master"`
	Keyframes  string           `json:"keyframes"`
	Scenes     string           `json:"scenes"`
	Production string           `json:"production"`
	Metadata   string           `json:"metadata"`
	Payload    *DirectorPayload `json:"structuredPayload,omitempty"` // Set only when structured decoding succeeded.
}

// Get returns the text held for a field.
func (s *ExtractedSections) Get(f Field) string {
	switch f {
	case FieldMaster:
		return s.Master
	case FieldKeyframes:
		return s.Keyframes
	case FieldScenes:
		return s.Scenes
	case FieldProduction:
		return s.Production
	case FieldMetadata:
		return s.Metadata
	}
	return ""
}

// Set replaces the text held for a field.
func (s *ExtractedSections) Set(f Field, value string) {
	switch f {
	case FieldMaster:
		s.Master = value
	case FieldKeyframes:
		s.Keyframes = value
	case FieldScenes:
		s.Scenes = value
	case FieldProduction:
		s.Production = value
	case FieldMetadata:
		s.Metadata = value
	}
}

// IsAvailable reports whether a field holds recovered content rather than
// its sentinel placeholder.
func (s *ExtractedSections) IsAvailable(f Field) bool {
	v := s.Get(f)
	return v != "" && v != Sentinel(f)
}

// SegmentKind selects the boundary patterns used when splitting a section.
type SegmentKind string

const (
	ImageKind SegmentKind = "image" // Static keyframe descriptions anchored to a timestamp.
	SceneKind SegmentKind = "scene" // Motion descriptions spanning a time range.
)

// Label returns the human word used in segment titles for the kind.
func (k SegmentKind) Label() string {
	if k == SceneKind {
		return "Scene"
	}
	return "Image"
}

// Segment is one individually addressable unit cut from a section.
type Segment struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ReferenceImage is an image supplied alongside the brief.
type ReferenceImage struct {
	MIMEType string `json:"mime_type"`
	Data     []byte `json:"-"`
	URI      string `json:"uri,omitempty"` // gs:// location when the request arrived over Pub/Sub.
}

// Director modes.
const (
	ModeCinematic  = "cinematic"
	ModeTikTokShop = "tiktok_shop"
)

// DirectorRequest carries everything the director workflow needs to build a
// prompt and call the model.
type DirectorRequest struct {
	Brief          string          `json:"brief"`
	Mode           string          `json:"mode"`
	DurationSec    int             `json:"duration"`
	AspectRatio    string          `json:"aspect_ratio"`
	Region         string          `json:"region"`
	StudioCategory string          `json:"studio_category"`
	ProductType    string          `json:"product_type"`
	Lookbook       bool            `json:"lookbook"`
	Face           *ReferenceImage `json:"face,omitempty"`
	Outfit         *ReferenceImage `json:"outfit,omitempty"`
}

// SceneCount is the number of eight second scenes the requested duration holds.
func (r *DirectorRequest) SceneCount() int {
	if r.DurationSec <= 0 {
		return 0
	}
	return r.DurationSec / 8
}

// DirectorResult is the output of a director run.
type DirectorResult struct {
	ID            string              `json:"id"`
	FullText      string              `json:"full_text"`
	Sections      *ExtractedSections  `json:"sections"`
	RefinedScenes string              `json:"refined_scenes,omitempty"`
	KeyframeItems []Segment           `json:"keyframe_segments"`
	SceneItems    []Segment           `json:"scene_segments"`
	RefinedItems  []Segment           `json:"refined_segments,omitempty"`
	Choices       map[string]string   `json:"choices,omitempty"`     // Creative choices found in the output, keyed by vault name.
	Suggestions   map[string][]string `json:"suggestions,omitempty"` // Candidates offered to the model, keyed by vault name.
	Warnings      []string            `json:"warnings,omitempty"`
}

// Warn appends a non-fatal warning to the result.
func (r *DirectorResult) Warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}
