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
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/extract"
)

// SectionExtractor recovers the fixed set of sections from the model text.
// Extraction never fails; missing sections hold their sentinel text.
type SectionExtractor struct {
	cor.BaseCommand
}

// NewSectionExtractor is the constructor for SectionExtractor.
func NewSectionExtractor(name string) *SectionExtractor {
	return &SectionExtractor{BaseCommand: *cor.NewBaseCommand(name)}
}

func (s *SectionExtractor) IsExecutable(context cor.Context) bool {
	return hasRun(context)
}

func (s *SectionExtractor) Execute(context cor.Context) {
	res := resultOf(context)
	sections := extract.Extract(res.FullText)
	res.Sections = &sections
	context.Add(s.GetOutputParam(), res.Sections)
	s.Succeed(context)
}
