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

// Package extract recovers the logical sections of a director response from
// the raw text the model returned.
//
// Model output is not reliably shaped. A response may carry a fenced JSON
// document, a bare JSON object wrapped in commentary, free text under
// "SECTION n:" headings, free text under looser headings, or a mix. Extract
// tries a structured decode first and falls back to a cascade of heading
// recognizers. It never fails: anything it cannot recover is replaced by the
// field's sentinel text.
package extract

import (
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/model"
)

// Extract interprets a raw director response.
//
// Logic Flow:
//  1. Search for a structured payload (fenced block, then the object enclosing
//     the "masterPrompt" key, then the whole text). If one decodes and carries
//     a master prompt plus a keyframe or image list, render every field from it
//     and skip text parsing entirely.
//  2. Otherwise run each field's heading cascade over the text.
//  3. Replace every field that is still empty with its sentinel.
//
// Inputs:
//   - raw: The verbatim model response. It is never modified.
//
// Outputs:
//   - model.ExtractedSections: Every field holds a string. Payload is set only
//     when step 1 succeeded.
func Extract(raw string) model.ExtractedSections {
	var out model.ExtractedSections
	if p, ok := DecodeStructured(raw); ok {
		out = render(p)
	} else {
		for _, s := range cascade {
			out.Set(s.field, s.run(raw))
		}
	}

	for _, f := range model.Fields {
		if out.Get(f) == "" {
			out.Set(f, model.Sentinel(f))
		}
	}
	return out
}
