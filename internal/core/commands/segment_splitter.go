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

package commands

import (
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/cor"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/model"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/segment"
)

// SegmentSplitter cuts the keyframe, scene and refined scene text into
// individually copyable segments. Sections holding only their sentinel are
// left unsplit.
type SegmentSplitter struct {
	cor.BaseCommand
}

// NewSegmentSplitter is the constructor for SegmentSplitter.
func NewSegmentSplitter(name string) *SegmentSplitter {
	return &SegmentSplitter{BaseCommand: *cor.NewBaseCommand(name)}
}

func (s *SegmentSplitter) IsExecutable(context cor.Context) bool {
	return hasRun(context) && resultOf(context).Sections != nil
}

func (s *SegmentSplitter) Execute(context cor.Context) {
	res := resultOf(context)
	sections := res.Sections

	res.KeyframeItems = []model.Segment{}
	if sections.IsAvailable(model.FieldKeyframes) {
		res.KeyframeItems = segment.Split(sections.Keyframes, model.ImageKind)
	}
	res.SceneItems = []model.Segment{}
	if sections.IsAvailable(model.FieldScenes) {
		res.SceneItems = segment.Split(sections.Scenes, model.SceneKind)
	}
	if res.RefinedScenes != "" {
		res.RefinedItems = segment.Split(res.RefinedScenes, model.SceneKind)
	}
	s.Succeed(context)
}
