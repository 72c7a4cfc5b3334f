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

// Package model defines the data structures for the application. This file,
// `examples.go`, provides hardcoded example instances used for few-shot
// prompting: the director prompt embeds the example payload so the model
// returns the same JSON shape the extraction pipeline decodes.
package model

// GetExamplePayload returns a small but complete director payload with two
// keyframes and one scene.
//
// Outputs:
//   - *DirectorPayload: A pointer to a hardcoded payload.
func GetExamplePayload() *DirectorPayload {
	return &DirectorPayload{
		MasterPrompt: &MasterPrompt{
			FacePreservation: "Exact facial features of the reference image, photorealistic fidelity",
			Subject:          "Young Vietnamese woman, slender build, long black hair",
			Outfit:           "Ivory silk ao dai with hand-embroidered lotus panels",
			Environment:      "Hoi An Ancient Town riverside at dusk",
			Lighting:         "Warm lantern glow with soft blue-hour fill",
			Camera:           "Full body, 85mm f/1.4, 9:16 vertical",
			Style:            "Cinematic fashion film, natural color grading",
		},
		Keyframes: []*Keyframe{
			{ID: "1", Timestamp: "0s", ImagePrompt: "Standing by the lantern-lit river, panels lifted by the breeze"},
			{ID: "2", Timestamp: "8s", ImagePrompt: "Half turn over the shoulder, one hand brushing hair behind the ear"},
		},
		Scenes: []*ScenePrompt{
			{
				ID:            "1",
				TimeRange:     "0s-8s",
				ShotType:      "Full body tracking shot",
				SubjectMotion: "Slow walk along the quay turning into a half spin",
				CameraMotion:  "Gentle dolly right",
				Atmosphere:    "Lanterns swaying, ripples on the water",
				StartPose:     "Standing, panels lifted",
				EndPose:       "Half turn over the shoulder",
				Script:        "Ao dai lụa này mặc lên là sang liền!",
				VoiceConfig:   &VoiceConfig{VoiceProfile: "female_young_north", VocalTone: "warm", Sync: "lip-sync"},
			},
		},
		BeatSync: &BeatSync{
			BPM:            "128",
			BeatPattern:    "remix-drop-pattern",
			DropTimestamps: "4.0s",
			MusicMood:      "EDM-remix-high-energy",
		},
		Metadata: &ShotMetadata{
			Location:    "Hoi An Ancient Town, Quang Nam",
			Duration:    "16",
			AspectRatio: "9:16",
			MusicVibe:   "Lo-fi remix",
		},
	}
}
