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

var (
	locationLine = regexp.MustCompile(`(?i)Specific Location:\s*(.+)`)
	studioFixed  = regexp.MustCompile(`(?i)([^.]+)\s*-\s*STUDIO FIXED`)
	firstScript  = regexp.MustCompile(`(?is)SCENE 1.*?SCRIPT:\s*["“”]?([^"“”]+)`)
)

func submatch(re *regexp.Regexp, text string) string {
	if m := re.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// LocationOf returns the shooting location named in a response. The payload's
// metadata wins over the "Specific Location:" line of the text.
func LocationOf(p *model.DirectorPayload, text string) string {
	if p != nil && p.Metadata != nil {
		if v := p.Metadata.Location.String(); v != "" {
			return v
		}
	}
	return submatch(locationLine, text)
}

// BackdropOf returns the studio backdrop described in a response.
func BackdropOf(p *model.DirectorPayload, text string) string {
	if p != nil && p.MasterPrompt != nil {
		if v := p.MasterPrompt.Environment.String(); v != "" {
			return v
		}
	}
	return submatch(studioFixed, text)
}

// OpeningLineOf returns the first scene's script line.
func OpeningLineOf(p *model.DirectorPayload, text string) string {
	if p != nil && len(p.Scenes) > 0 && p.Scenes[0] != nil {
		if v := p.Scenes[0].Script.String(); v != "" {
			return v
		}
	}
	return submatch(firstScript, text)
}
