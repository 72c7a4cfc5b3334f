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
	"fmt"
	"strings"

	"github.com/jaycherian/gcp-go-fashion-director/internal/core/model"
)

const (
	missingData  = "[Data missing - check Full Output]"
	locationLead = "Shot on location at "
)

// sentence trims a value and drops a single trailing period so parts can be
// re-joined with ". ".
func sentence(v model.Scalar) string {
	return strings.TrimSuffix(v.String(), ".")
}

func joinNonBlank(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

// renderMaster flattens the master prompt into one paragraph.
func renderMaster(m *model.MasterPrompt) string {
	if m == nil {
		return ""
	}
	env := sentence(m.Environment)
	if env != "" && !strings.HasPrefix(strings.ToLower(env), "shot on location") {
		env = locationLead + env
	}
	return joinNonBlank(". ",
		sentence(m.Text),
		sentence(m.FacePreservation),
		sentence(m.Subject),
		sentence(m.Outfit),
		sentence(m.Pose),
		env,
		sentence(m.Lighting),
		sentence(m.Camera),
		sentence(m.Style),
	)
}

// renderKeyframe renders frame i (zero based). Missing ids and timestamps
// default to the frame's position on the eight second grid.
func renderKeyframe(i int, k *model.Keyframe) string {
	if k == nil {
		k = &model.Keyframe{}
	}
	id := k.ID.Or(fmt.Sprint(i + 1))
	ts := k.Timestamp.Or(fmt.Sprintf("%ds", i*8))

	body := k.FullPrompt()
	if body == "" {
		head := joinNonBlank(", ", k.Subject.String(), k.Action.String())
		details := joinNonBlank(". ", k.Environment.String(), k.Lighting.String(), k.Camera.String(), k.Style.String())
		body = joinNonBlank(". ", head, details)
	}
	if body == "" {
		body = missingData
	}
	return fmt.Sprintf("Image %s (%s): %s", id, ts, body)
}

func renderKeyframes(frames []*model.Keyframe) string {
	out := make([]string, 0, len(frames))
	for i, k := range frames {
		out = append(out, renderKeyframe(i, k))
	}
	return strings.Join(out, "\n\n")
}

func withPrefix(prefix string, v model.Scalar) string {
	s := sentence(v)
	if s == "" {
		return ""
	}
	return prefix + s + "."
}

func renderVoice(v *model.VoiceConfig) string {
	switch {
	case v == nil:
		return ""
	case v.IsCurrent():
		parts := []string{v.VoiceProfile.String()}
		if t := v.VocalTone.String(); t != "" {
			parts = append(parts, "Tone: "+t)
		}
		if s := v.Sync.String(); s != "" {
			parts = append(parts, "Sync: "+s)
		}
		return "\nVOICE: " + strings.Join(parts, " | ")
	case v.IsLegacy():
		return "\nVOICE: " + joinNonBlank(" | ",
			v.Voice.String(),
			labelled("Accent", v.Accent.String()),
			labelled("Speed", v.Speed.String()),
			labelled("Pitch", v.Pitch.String()),
		)
	}
	return ""
}

func renderScene(i int, s *model.ScenePrompt) string {
	if s == nil {
		s = &model.ScenePrompt{}
	}
	id := s.ID.Or(fmt.Sprint(i + 1))
	tr := s.TimeRange.Or(fmt.Sprintf("%ds-%ds", i*8, (i+1)*8))

	body := joinNonBlank(" ",
		withPrefix("", s.ShotType),
		withPrefix("", s.SubjectMotion),
		withPrefix("Camera: ", s.CameraMotion),
		withPrefix("Atmosphere: ", s.Atmosphere),
		withPrefix("START_POSE: ", s.StartPose),
		withPrefix("END_POSE: ", s.EndPose),
	)
	if body == "" {
		body = missingData
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Scene %s (%s): %s", id, tr, body)
	if script := s.Script.String(); script != "" {
		fmt.Fprintf(&b, "\nSCRIPT: \"%s\"", script)
	}
	b.WriteString(renderVoice(s.VoiceConfig))
	return b.String()
}

func renderScenes(scenes []*model.ScenePrompt) string {
	out := make([]string, 0, len(scenes))
	for i, s := range scenes {
		out = append(out, renderScene(i, s))
	}
	return strings.Join(out, "\n\n")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func labelled(label, value string) string {
	if value == "" {
		return ""
	}
	return label + ": " + value
}

func renderMetadata(m *model.ShotMetadata, beat *model.BeatSync) string {
	if m == nil {
		return ""
	}
	duration := m.Duration.String()
	if isDigits(duration) {
		duration += "s"
	}
	vibe := m.MusicVibe.String()
	if vibe == "" && beat != nil {
		vibe = beat.MusicMood.String()
	}
	return joinNonBlank("\n",
		labelled("Specific Location", m.Location.String()),
		labelled("Duration", duration),
		labelled("Aspect Ratio", m.AspectRatio.String()),
		labelled("Product Type", m.ProductType.String()),
		labelled("Music Vibe", vibe),
	)
}

func renderProduction(beat *model.BeatSync) string {
	if beat == nil {
		return ""
	}
	lines := []string{
		labelled("BPM", beat.BPM.String()),
		labelled("Beat Pattern", beat.BeatPattern.String()),
		labelled("Drops", beat.DropTimestamps.String()),
		labelled("Transition Style", beat.TransitionStyle.String()),
		labelled("Music Mood", beat.MusicMood.String()),
	}
	for _, kb := range beat.KeyBeats {
		if kb == nil || kb.Action.String() == "" {
			continue
		}
		line := fmt.Sprintf("- %s: %s", kb.Timestamp.Or("?"), kb.Action.String())
		if in := kb.Intensity.String(); in != "" {
			line += " (" + in + ")"
		}
		lines = append(lines, line)
	}
	return joinNonBlank("\n", lines...)
}

// render fills the sections from a decoded payload. Fields the payload does
// not cover stay empty for the caller to resolve.
func render(p *model.DirectorPayload) model.ExtractedSections {
	return model.ExtractedSections{
		Master:     renderMaster(p.MasterPrompt),
		Keyframes:  renderKeyframes(p.Frames()),
		Scenes:     renderScenes(p.Scenes),
		Production: renderProduction(p.BeatSync),
		Metadata:   renderMetadata(p.Metadata, p.BeatSync),
		Payload:    p,
	}
}
