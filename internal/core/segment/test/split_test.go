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

package segment_test

import (
	"testing"

	"github.com/jaycherian/gcp-go-fashion-director/internal/core/model"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/segment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_NumberedImages(t *testing.T) {
	text := "Intro line\nImage 1 (0s): standing\nImage 2 (8s): turning\n\nImage 3 (16s): walking away"

	got := segment.Split(text, model.ImageKind)

	assert.Equal(t, []model.Segment{
		{Title: "Image 1 (0s)", Content: "standing"},
		{Title: "Image 2 (8s)", Content: "turning"},
		{Title: "Image 3 (16s)", Content: "walking away"},
	}, got)
}

func TestSplit_BareTimestamps(t *testing.T) {
	got := segment.Split("0s: first\n8s : second", model.ImageKind)

	assert.Equal(t, []model.Segment{
		{Title: "Image 1 (0s)", Content: "first"},
		{Title: "Image 2 (8s)", Content: "second"},
	}, got)
}

func TestSplit_ParenthesizedRanges(t *testing.T) {
	got := segment.Split("(0s-8s): dolly in\n(8s-16s): orbit left", model.SceneKind)

	assert.Equal(t, []model.Segment{
		{Title: "Scene 1 (0s-8s)", Content: "dolly in"},
		{Title: "Scene 2 (8s-16s)", Content: "orbit left"},
	}, got)
}

func TestSplit_SceneHeadingsKeepMultilineContent(t *testing.T) {
	text := "Scene 1 (0s-8s): Wide shot.\nSCRIPT: \"Hello\"\nVOICE: p1\n\nScene 2 (8s-16s): Close up."

	got := segment.Split(text, model.SceneKind)

	require.Len(t, got, 2)
	assert.Equal(t, "Scene 1 (0s-8s)", got[0].Title)
	assert.Equal(t, "Wide shot.\nSCRIPT: \"Hello\"\nVOICE: p1", got[0].Content)
	assert.Equal(t, "Close up.", got[1].Content)
}

func TestSplit_CountMatchesMarkers(t *testing.T) {
	// Empty bodies still count so segment numbering follows the markers.
	got := segment.Split("Keyframe 1: \nKeyframe 2: b\nKeyframe 3:", model.ImageKind)

	require.Len(t, got, 3)
	assert.Equal(t, "Keyframe 1", got[0].Title)
	assert.Empty(t, got[0].Content)
	assert.Equal(t, "b", got[1].Content)
}

func TestSplit_SingleMarkerIsUnsegmented(t *testing.T) {
	got := segment.Split("  Image 1 (0s): only one  ", model.ImageKind)

	assert.Equal(t, []model.Segment{{Title: "All Keyframes", Content: "Image 1 (0s): only one"}}, got)
}

func TestSplit_LineFallback(t *testing.T) {
	got := segment.Split("Image 1 (0s): a\n8s: b", model.ImageKind)

	assert.Equal(t, []model.Segment{
		{Title: "Image 1 (0s)", Content: "a"},
		{Title: "Image 2 (8s)", Content: "b"},
	}, got)
}

func TestSplit_Unsegmented(t *testing.T) {
	got := segment.Split("\nA single flowing paragraph about motion.\n", model.SceneKind)

	assert.Equal(t, []model.Segment{{Title: "All Scenes", Content: "A single flowing paragraph about motion."}}, got)
}

func TestSplit_Totality(t *testing.T) {
	assert.Empty(t, segment.Split("", model.ImageKind))

	for _, in := range []string{" ", "x", ":", "Image", "0s", "\n\n\n"} {
		for _, kind := range []model.SegmentKind{model.ImageKind, model.SceneKind} {
			assert.NotEmpty(t, segment.Split(in, kind), "input %q kind %s", in, kind)
		}
	}
}

func TestSplit_SentinelText(t *testing.T) {
	text := model.Sentinel(model.FieldKeyframes)

	got := segment.Split(text, model.ImageKind)

	assert.Equal(t, []model.Segment{{Title: "All Keyframes", Content: text}}, got)
}
