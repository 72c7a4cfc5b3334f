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

package novelty_test

import (
	"math/rand/v2"
	"testing"

	"github.com/jaycherian/gcp-go-fashion-director/internal/core/novelty"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicate(t *testing.T) {
	assert.True(t, novelty.IsDuplicate("Old Quarter in Hanoi, Vietnam", []string{"Hanoi old quarter street"}))
	assert.False(t, novelty.IsDuplicate("Paris", []string{"Old Quarter in Hanoi, Vietnam"}))

	tests := []struct {
		name      string
		candidate string
		existing  []string
		want      bool
	}{
		{"case insensitive", "HOI AN ANCIENT TOWN", []string{"hoi an ancient town"}, true},
		{"candidate inside existing", "Ha Long Bay", []string{"Sunrise cruise across Ha Long Bay"}, true},
		{"existing prefix inside candidate", "Golden Bridge on Ba Na Hills at dawn, Da Nang", []string{"Golden Bridge on Ba Na Hills"}, true},
		{"annotation suffix ignored", "Sa Pa rice terraces | Lao Cai", []string{"sa pa rice terraces in autumn"}, true},
		{"short candidate contained", "Hue", []string{"Imperial City of Hue"}, true},
		{"different places", "Mui Ne sand dunes", []string{"Hoi An lantern street", "Da Lat flower garden"}, false},
		{"empty existing", "Anything", nil, false},
		{"blank candidate", "   ", []string{"Hoi An"}, false},
		{"blank existing entry", "Hoi An", []string{""}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, novelty.IsDuplicate(tt.candidate, tt.existing))
		})
	}
}

func TestMatcher_CompareLengthIsTunable(t *testing.T) {
	existing := []string{"Minimal white studio with a pastel arch"}
	candidate := "Minimal white studio with neon tubes"

	loose := novelty.Matcher{CompareLength: 20}
	strict := novelty.Matcher{CompareLength: 30}

	assert.True(t, loose.IsDuplicate(candidate, existing))
	assert.False(t, strict.IsDuplicate(candidate, existing))
}

func TestMatcher_HeadTokens(t *testing.T) {
	words := novelty.Matcher{CompareLength: 20, HeadTokens: 3}
	prefixOnly := novelty.Matcher{CompareLength: 20}

	candidate := "Quarter old Hanoi at night"
	existing := []string{"Hanoi old quarter street food"}

	assert.True(t, words.IsDuplicate(candidate, existing))
	assert.False(t, prefixOnly.IsDuplicate(candidate, existing))
}

func TestSample(t *testing.T) {
	pool := []string{"Hoi An", "Hue Citadel", "Ha Long Bay", "Mui Ne dunes"}
	rng := rand.New(rand.NewPCG(1, 2))

	t.Run("everything excluded", func(t *testing.T) {
		assert.Empty(t, novelty.Sample(pool, pool, 3, rng))
	})

	t.Run("pool smaller than count", func(t *testing.T) {
		got := novelty.Sample(pool, nil, 10, rng)
		assert.Len(t, got, len(pool))
		assert.ElementsMatch(t, pool, got)
	})

	t.Run("takes count", func(t *testing.T) {
		got := novelty.Sample(pool, nil, 2, rng)
		assert.Len(t, got, 2)
		assert.Subset(t, pool, got)
		assert.NotEqual(t, got[0], got[1])
	})

	t.Run("duplicates in pool collapse", func(t *testing.T) {
		got := novelty.Sample([]string{"Hoi An", "Hoi An", "Hue Citadel"}, nil, 5, rng)
		assert.ElementsMatch(t, []string{"Hoi An", "Hue Citadel"}, got)
	})

	t.Run("filters used", func(t *testing.T) {
		got := novelty.Sample(pool, []string{"Ha Long Bay cruise at sunset"}, 10, rng)
		assert.ElementsMatch(t, []string{"Hoi An", "Hue Citadel", "Mui Ne dunes"}, got)
	})

	t.Run("non-positive count", func(t *testing.T) {
		assert.Empty(t, novelty.Sample(pool, nil, 0, rng))
		assert.Empty(t, novelty.Sample(pool, nil, -1, nil))
	})

	t.Run("pool untouched", func(t *testing.T) {
		before := append([]string(nil), pool...)
		novelty.Sample(pool, nil, 4, nil)
		assert.Equal(t, before, pool)
	})
}
