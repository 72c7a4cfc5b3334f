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

// Package segment cuts an extracted section into individually copyable units.
package segment

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jaycherian/gcp-go-fashion-director/internal/core/model"
)

// boundaries lists, per kind, the heading patterns tried in order. The first
// pattern with at least two matches decides where segments start.
var boundaries = map[model.SegmentKind][]*regexp.Regexp{
	model.ImageKind: {
		regexp.MustCompile(`(?i)Image \d+[^:\n]*:`),
		regexp.MustCompile(`(?i)\d+s\s*:`),
		regexp.MustCompile(`(?i)\(\d+s\)\s*:`),
		regexp.MustCompile(`(?i)Keyframe \d+[^:\n]*:`),
	},
	model.SceneKind: {
		regexp.MustCompile(`(?i)Scene \d+[^:\n]*:`),
		regexp.MustCompile(`(?i)\d+s\s*-\s*\d+s\s*:`),
		regexp.MustCompile(`(?i)\(\d+s\s*-\s*\d+s\)\s*:`),
		regexp.MustCompile(`(?i)Shot \d+[^:\n]*:`),
	},
}

// lineShapes match a whole "label: content" line when no boundary pattern
// segments the text.
var lineShapes = map[model.SegmentKind]*regexp.Regexp{
	model.ImageKind: regexp.MustCompile(`(?i)^(\d+s|\d+\.\s*\(?\d+s\)?|Image \d+[^:]*)\s*:\s*(.+)$`),
	model.SceneKind: regexp.MustCompile(`(?i)^(\d+s\s*-\s*\d+s|\d+\.\s*\(?\d+s\s*-\s*\d+s\)?|Scene \d+[^:]*)\s*:\s*(.+)$`),
}

// bareTime matches titles that are only a timestamp or time range, with or
// without parentheses.
var bareTime = regexp.MustCompile(`^\(?(\d+s(?:\s*-\s*\d+s)?)\)?$`)

// wholeTitle is the title of the single segment emitted for unsegmented text.
func wholeTitle(kind model.SegmentKind) string {
	if kind == model.SceneKind {
		return "All Scenes"
	}
	return "All Keyframes"
}

// Split cuts text into ordered segments.
//
// Logic Flow:
//  1. Try each boundary pattern for the kind. The first one matching at least
//     twice wins; each segment runs from the end of its heading to the start
//     of the next heading. Text before the first heading is dropped.
//  2. Otherwise, if at least two lines have a "label: content" shape, emit one
//     segment per matching line.
//  3. Otherwise emit one segment holding the whole trimmed text.
//
// Inputs:
//   - text: The section text.
//   - kind: Selects image or scene boundary patterns.
//
// Outputs:
//   - []model.Segment: Never empty unless text is "".
func Split(text string, kind model.SegmentKind) []model.Segment {
	if text == "" {
		return []model.Segment{}
	}
	if kind != model.SceneKind {
		kind = model.ImageKind
	}

	for _, re := range boundaries[kind] {
		locs := re.FindAllStringIndex(text, -1)
		if len(locs) < 2 {
			continue
		}
		out := make([]model.Segment, 0, len(locs))
		for i, loc := range locs {
			end := len(text)
			if i+1 < len(locs) {
				end = locs[i+1][0]
			}
			out = append(out, model.Segment{
				Title:   headingTitle(text[loc[0]:loc[1]], kind, i),
				Content: strings.TrimSpace(text[loc[1]:end]),
			})
		}
		return out
	}

	if out := splitLines(text, kind); len(out) >= 2 {
		return out
	}
	return []model.Segment{{Title: wholeTitle(kind), Content: strings.TrimSpace(text)}}
}

// headingTitle normalizes a matched heading. Bare timestamps are expanded to
// "Image 2 (8s)" or "Scene 2 (8s-16s)".
func headingTitle(heading string, kind model.SegmentKind, i int) string {
	title := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(heading), ":"))
	if m := bareTime.FindStringSubmatch(title); m != nil {
		return fmt.Sprintf("%s %d (%s)", kind.Label(), i+1, m[1])
	}
	return title
}

func splitLines(text string, kind model.SegmentKind) []model.Segment {
	shape := lineShapes[kind]
	var out []model.Segment
	for _, line := range strings.Split(text, "\n") {
		m := shape.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		label := strings.TrimSpace(m[1])
		title := label
		if !strings.HasPrefix(strings.ToLower(label), strings.ToLower(kind.Label())) {
			title = fmt.Sprintf("%s %d (%s)", kind.Label(), len(out)+1, label)
		}
		out = append(out, model.Segment{Title: title, Content: strings.TrimSpace(m[2])})
	}
	return out
}
