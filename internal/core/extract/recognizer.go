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

package extract

import (
	"regexp"
	"strings"

	"github.com/jaycherian/gcp-go-fashion-director/internal/core/model"
)

// recognizer finds one section in free text. A span starts where heading
// matches and runs to the earliest match of until after the heading, or to the
// end of the text when until is nil or never matches.
type recognizer struct {
	heading *regexp.Regexp
	until   *regexp.Regexp
	// collect gathers every heading span instead of only the first one.
	collect bool
}

func newRecognizer(heading, until string) recognizer {
	r := recognizer{heading: regexp.MustCompile("(?i)" + heading)}
	if until != "" {
		r.until = regexp.MustCompile("(?i)" + until)
	}
	return r
}

func collector(heading, until string) recognizer {
	r := newRecognizer(heading, until)
	r.collect = true
	return r
}

// spanAt returns the span that starts at loc.
func (r recognizer) spanAt(text string, loc []int) string {
	end := len(text)
	if r.until != nil {
		if m := r.until.FindStringIndex(text[loc[1]:]); m != nil {
			end = loc[1] + m[0]
		}
	}
	return text[loc[0]:end]
}

// find returns the recognized span, or "" if the heading never matches.
func (r recognizer) find(text string) string {
	if !r.collect {
		loc := r.heading.FindStringIndex(text)
		if loc == nil {
			return ""
		}
		return r.spanAt(text, loc)
	}
	locs := r.heading.FindAllStringIndex(text, -1)
	parts := make([]string, 0, len(locs))
	for _, loc := range locs {
		if s := strings.TrimSpace(r.spanAt(text, loc)); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

// sectionRecognizer is the ordered cascade for one field plus the heading
// text to strip from whichever span wins.
type sectionRecognizer struct {
	field       model.Field
	recognizers []recognizer
	strip       *regexp.Regexp
}

// cascade lists every field's recognizers from most specific to loosest.
var cascade = []sectionRecognizer{
	{
		field: model.FieldMaster,
		recognizers: []recognizer{
			newRecognizer(`SECTION 1:`, `SECTION 2:|Image 1|SCENE 1`),
			newRecognizer(`(?:COMMON MASTER PROMPT|MASTER PROMPT)[:\s]*`, `KEYFRAME|IMAGE 1|SCENE 1`),
			newRecognizer(`Exact facial features`, `\n\n|Image 1|SCENE 1`),
		},
		strip: regexp.MustCompile(`(?i)SECTION 1:.*?\n?|COMMON MASTER PROMPT:?\s*|MASTER PROMPT:?\s*`),
	},
	{
		field: model.FieldKeyframes,
		recognizers: []recognizer{
			newRecognizer(`SECTION 2:`, `SECTION 3:|SCENE 1`),
			newRecognizer(`(?:KEYFRAME PROMPTS?|IMAGE SEQUENCE)[:\s]*`, `SCENE|VEO`),
			newRecognizer(`Image 1`, `SCENE 1|\*\*\*VOICE`),
			collector(`Image \d+\s*\([^)]+\):`, `Image \d+|SCENE 1|\*\*\*VOICE|SECTION`),
		},
		strip: regexp.MustCompile(`(?i)SECTION 2:.*?\n?|KEYFRAME PROMPTS?:?\s*|IMAGE SEQUENCE:?\s*`),
	},
	{
		field: model.FieldScenes,
		recognizers: []recognizer{
			newRecognizer(`SECTION 3:`, `SECTION 4:|SECTION 5:|PRODUCTION`),
			newRecognizer(`(?:SCENE PROMPTS?|VEO SCENE|SCENES? & SCRIPT)[:\s]*`, `PRODUCTION|METADATA|SECTION 4`),
			newRecognizer(`(?:\*\*\*VOICE SETTING|\bSCENE 1\b)`, `SECTION 4:|PRODUCTION|METADATA`),
			collector(`SCENE \d+\s*\([^)]+\)`, `SCENE \d+\s*\(|SECTION 4|PRODUCTION|METADATA`),
		},
		strip: regexp.MustCompile(`(?i)SECTION 3:.*?\n?|SCENE PROMPTS?.*?:?\s*|VEO SCENE.*?:?\s*`),
	},
	{
		field: model.FieldProduction,
		recognizers: []recognizer{
			newRecognizer(`SECTION 4:`, `SECTION 5:|METADATA`),
			newRecognizer(`(?:PRODUCTION NOTES?|SECTION 4:\s*PRODUCTION)[:\s]*`, `METADATA|SECTION 5`),
		},
		strip: regexp.MustCompile(`(?i)SECTION 4:.*?\n?|PRODUCTION NOTES?:?\s*`),
	},
	{
		field: model.FieldMetadata,
		recognizers: []recognizer{
			newRecognizer(`SECTION 5:`, ``),
			newRecognizer(`SECTION 4:\s*METADATA`, ``),
			newRecognizer(`(?:METADATA|Specific Location:)[:\s]*`, ``),
		},
		strip: regexp.MustCompile(`(?i)SECTION 4:\s*METADATA:?\s*|SECTION 5:.*?\n?|METADATA:?\s*`),
	},
}

// redundantHeaders are sub-headings models repeat inside a section body.
// Each is anchored to the start of the already-stripped span and they are
// applied in order.
var redundantHeaders = compileAll(
	`^SECTION \d+:?\s*[^\n]*\n?`,
	`^Common Master Prompt:?\s*`,
	`^Master Prompt:?\s*`,
	`^Keyframe Prompts?:?\s*`,
	`^Image Sequence:?\s*`,
	`^Veo Scene Prompts?:?\s*`,
	`^Scene Prompts?.*?:?\s*`,
	`^Scenes? & Script.*?:?\s*`,
	`^Production Notes?:?\s*`,
	`^Prompts?:?\s*`,
	`^Output:?\s*`,
	`^\*+[^\n]*\*+\s*`,
	`^---+\s*`,
)

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile("(?i)" + p)
	}
	return out
}

// replaceFirst removes the leftmost match of re from s.
func replaceFirst(re *regexp.Regexp, s string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + s[loc[1]:]
}

// cleanSection removes the section's own heading and any redundant
// sub-headings from a recognized span.
func cleanSection(span string, strip *regexp.Regexp) string {
	out := strings.TrimSpace(span)
	if strip != nil {
		out = strings.TrimSpace(replaceFirst(strip, out))
		// "SECTION 5: METADATA" leaves a second heading word behind.
		for loc := strip.FindStringIndex(out); loc != nil && loc[0] == 0 && loc[1] > 0; loc = strip.FindStringIndex(out) {
			out = strings.TrimSpace(out[loc[1]:])
		}
	}
	for _, re := range redundantHeaders {
		out = replaceFirst(re, out)
	}
	return strings.TrimSpace(out)
}

// run returns the cleaned span of the first recognizer whose span is not
// empty after cleaning.
func (s sectionRecognizer) run(text string) string {
	for _, r := range s.recognizers {
		span := r.find(text)
		if span == "" {
			continue
		}
		if out := cleanSection(span, s.strip); out != "" {
			return out
		}
	}
	return ""
}
