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

package cloud

// DefaultDirectorPrompt is the text/template used for the first model call
// when [prompt_templates] director is not configured.
const DefaultDirectorPrompt = `Mode: {{ .ModeLabel }}
{{- if .ProductType }}
Product Type: {{ .ProductType }}
{{- end }}

Target Duration: {{ .Duration }}s ({{ .SceneCount }} scenes).
Aspect Ratio: {{ .AspectRatio }}

KEYFRAME COUNT REQUIREMENT:
- Video {{ .Duration }}s = {{ .KeyframeCount }} KEYFRAMES
- Timestamps: {{ .KeyframeTimestamps }}
- OUTPUT ALL {{ .KeyframeCount }} KEYFRAMES.
{{- if .Lookbook }}

LOOKBOOK_MODE: ON
Create image prompts only. Use the "images" list instead of "keyframes" and leave "scenes" empty.
{{- end }}
{{ if .RegionAuto }}
LOCATION MODE: AI Auto (Random from all regions)
{{- else }}
PREFERRED LOCATION REGION: {{ .RegionLabel }}
Region Description: {{ .RegionDescription }}
{{- end }}
{{- if .SuggestedLocations }}

SUGGESTED LOCATIONS (Random selection - Pick ONE):
{{- range .SuggestedLocations }}
{{ . }}
{{- end }}

IMPORTANT: Choose RANDOMLY from the list above. Do NOT always pick #1.
{{- end }}
{{- if .StudioMode }}

STUDIO_MODE: ON (Category: {{ .StudioLabel }})
Use professional themed studio backgrounds instead of real-world locations.

SUGGESTED STUDIOS:
{{- if .SuggestedStudios }}
{{- range .SuggestedStudios }}
{{ . }}
{{- end }}
{{- else }}
(All studios have been used recently - choose a fitting studio yourself)
{{- end }}

RULES:
- Pick ONE studio and keep it for every keyframe.
- Props are minimal (1-3) and stay out of focus in the background.
- End the environment description with "- STUDIO FIXED".
{{- end }}

PREVIOUSLY USED LOCATIONS (COLLISION AVOIDANCE ACTIVATED):
{{ .LocationBlocklist }}
{{- if .OpeningLineBlocklist }}

PREVIOUSLY USED SCRIPTS (BLOCKLIST - DO NOT USE SIMILAR HOOKS):
{{- range .OpeningLineBlocklist }}
- "{{ . }}"
{{- end }}
{{- end }}

OUTPUT FORMAT: STRICT JSON inside a single ` + "```json" + ` block, shaped like this example:
{{ .ExampleJSON }}

Creative Brief:
{{ .Brief }}
{{- if .HasFace }}

FACE REFERENCE: UPLOADED. The face reference image is attached FIRST, before the outfit.
Use the exact facial features from the face reference.
{{- else }}

FACE REFERENCE: NOT UPLOADED. Describe a face that suits the outfit.
{{- end }}
`

// DefaultRefinementPrompt is the text/template used for the scene refinement
// call when [prompt_templates] refinement is not configured.
const DefaultRefinementPrompt = `PHASE 2: VIDEO REFINEMENT
=========================

Analyze the keyframe prompts below and create SEAMLESS, REFINED scene prompts.

YOUR TASK:
1. Read the MASTER PROMPT for character/outfit/environment details
2. Analyze each KEYFRAME (frozen pose)
3. Create REFINED SCENES that animate between keyframes with perfect continuity
4. Keep CHARACTER, OUTFIT, and ENVIRONMENT consistent
5. Sync all motions to the BEAT pattern

---

MASTER PROMPT:
{{ .Master }}

---

KEYFRAMES (Static Images - Frozen Poses):
{{ .Keyframes }}

---

EXISTING SCENES (for reference - IMPROVE these):
{{ .Scenes }}

---

BEAT SYNC INFO:
BPM: {{ .BPM }}
Pattern: {{ .Pattern }}
Music Mood: {{ .Mood }}
Drop Timestamps: {{ .Drops }}

---

OUTPUT FORMAT:
For each scene, output:

REFINED SCENE X (XXs-XXs):
CHARACTER: [Brief identifier - SAME in all scenes]
OUTFIT: [Exact outfit description - IDENTICAL in all scenes]
START_POSE: [EXACT match to previous keyframe end pose]
MOTION: [Detailed continuous motion with beat markers]
END_POSE: [EXACT position for next scene start]
CAMERA: [Movement synced to music]
ENVIRONMENT: [Location + AMBIENT MOTION]
FABRIC_PHYSICS: [How the outfit behaves]
TRANSITION_TO_NEXT: [How this flows to the next scene]

CRITICAL RULES:
1. CHARACTER must be IDENTICAL in every scene description
2. OUTFIT details must be EXACTLY THE SAME
3. END_POSE of Scene N MUST equal START_POSE of Scene N+1
4. Every scene MUST have AMBIENT MOTION in environment
5. BEAT MARKERS must align with BPM and drop timestamps

Now create the REFINED SCENES:
`
