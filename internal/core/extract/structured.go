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

const masterPromptKey = `"masterPrompt"`

var (
	fencedJSON     = regexp.MustCompile("(?is)```json\\s*(.*?)\\s*```")
	trailingCommas = regexp.MustCompile(`,\s*([}\]])`)
)

// structuredCandidates returns the spans of raw that may hold the structured
// payload, most trustworthy first.
func structuredCandidates(raw string) []string {
	out := make([]string, 0, 4)
	if m := fencedJSON.FindStringSubmatch(raw); m != nil {
		out = append(out, m[1])
	}

	if key := strings.Index(raw, masterPromptKey); key >= 0 {
		first := strings.IndexByte(raw[:key], '{')
		// The outermost object enclosing the key wins. An object that closes
		// before the key also contains every brace nested in it, so the scan
		// resumes after it and each byte is visited once.
		for i := first; i >= 0 && i < key; {
			end := balancedEnd(raw, i)
			if end < 0 {
				break
			}
			if end > key {
				out = append(out, raw[i:end])
				break
			}
			next := strings.IndexByte(raw[end:key], '{')
			if next < 0 {
				break
			}
			i = end + next
		}
		if last := strings.LastIndex(raw, "}"); first >= 0 && last > key {
			out = append(out, raw[first:last+1])
		}
	}

	if t := strings.TrimSpace(raw); strings.HasPrefix(t, "{") {
		out = append(out, t)
	}
	return out
}

// balancedEnd returns the index just past the brace that closes the object
// opened at start, or -1. Braces inside JSON string literals are ignored.
func balancedEnd(s string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}

// decodeCandidate decodes one span, retrying once with trailing commas removed.
func decodeCandidate(span string) *model.DirectorPayload {
	span = strings.TrimSpace(strings.TrimPrefix(span, "\uFEFF"))
	if span == "" {
		return nil
	}
	if p, err := model.DecodeDirectorPayload([]byte(span)); err == nil {
		return p
	}
	if p, err := model.DecodeDirectorPayload([]byte(trailingCommas.ReplaceAllString(span, "$1"))); err == nil {
		return p
	}
	return nil
}

// DecodeStructured returns the first candidate span that decodes into a
// complete payload (a master prompt plus a keyframe or image list).
func DecodeStructured(raw string) (*model.DirectorPayload, bool) {
	for _, span := range structuredCandidates(raw) {
		if p := decodeCandidate(span); p.IsComplete() {
			return p, true
		}
	}
	return nil, false
}

// LoosePayload returns the first candidate span that decodes at all, complete
// or not. The novelty recorder falls back to it when the response carried no
// complete payload, so partial documents still yield their choices.
func LoosePayload(raw string) *model.DirectorPayload {
	for _, span := range structuredCandidates(raw) {
		if p := decodeCandidate(span); p != nil {
			return p
		}
	}
	return nil
}
