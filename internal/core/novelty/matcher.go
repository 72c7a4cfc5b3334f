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

// Package novelty keeps the journals of past creative choices (locations,
// studio backdrops, opening lines) and decides whether a new candidate is too
// close to something already used.
//
// Generated descriptions are never byte-identical from run to run, so
// membership is approximate: prefix containment on normalized text, plus a
// check that the leading content words of one value all occur in the other.
package novelty

import (
	"math/rand/v2"
	"strings"
	"unicode"
)

// Matcher decides whether a candidate duplicates previously seen values.
// The zero value compares whole strings and disables the word check.
type Matcher struct {
	// CompareLength is the number of leading runes of each normalized value
	// used for containment. Zero or less compares the whole value.
	CompareLength int
	// HeadTokens is the number of leading content words checked against the
	// other value's words. The check only runs when a value has at least two
	// content words. Zero disables it.
	HeadTokens int
}

// DefaultMatcher is tuned for short place names.
var DefaultMatcher = Matcher{CompareLength: 20, HeadTokens: 3}

var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "at": true,
	"in": true, "of": true, "on": true, "the": true,
}

// normalize lowercases v, drops any " | annotation" suffix and collapses
// whitespace.
func normalize(v string) string {
	if i := strings.Index(v, " | "); i >= 0 {
		v = v[:i]
	}
	return strings.Join(strings.Fields(strings.ToLower(v)), " ")
}

func truncate(v string, n int) string {
	if n <= 0 {
		return v
	}
	r := []rune(v)
	if len(r) <= n {
		return v
	}
	return string(r[:n])
}

func contentWords(v string) []string {
	words := strings.FieldsFunc(v, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := words[:0]
	for _, w := range words {
		if !stopwords[w] {
			out = append(out, w)
		}
	}
	return out
}

// headCovered reports whether the first n content words of a all appear in b.
func headCovered(a, b []string, n int) bool {
	if n <= 0 || len(a) < 2 {
		return false
	}
	if len(a) > n {
		a = a[:n]
	}
	set := make(map[string]bool, len(b))
	for _, w := range b {
		set[w] = true
	}
	for _, w := range a {
		if !set[w] {
			return false
		}
	}
	return true
}

func (m Matcher) matches(c, e string) bool {
	if e == "" {
		return false
	}
	if strings.Contains(e, truncate(c, m.CompareLength)) || strings.Contains(c, truncate(e, m.CompareLength)) {
		return true
	}
	cw, ew := contentWords(c), contentWords(e)
	return headCovered(cw, ew, m.HeadTokens) || headCovered(ew, cw, m.HeadTokens)
}

// IsDuplicate reports whether candidate is close to any of existing. A blank
// candidate is never a duplicate.
func (m Matcher) IsDuplicate(candidate string, existing []string) bool {
	c := normalize(candidate)
	if c == "" {
		return false
	}
	for _, e := range existing {
		if m.matches(c, normalize(e)) {
			return true
		}
	}
	return false
}

// Sample filters pool down to the items that do not duplicate existing, then
// returns up to count of them in random order. Repeated pool items are
// returned at most once. A nil rng uses the package level source.
func (m Matcher) Sample(pool, existing []string, count int, rng *rand.Rand) []string {
	if count <= 0 {
		return []string{}
	}
	seen := make(map[string]bool, len(pool))
	available := make([]string, 0, len(pool))
	for _, item := range pool {
		if strings.TrimSpace(item) == "" || seen[item] {
			continue
		}
		seen[item] = true
		if !m.IsDuplicate(item, existing) {
			available = append(available, item)
		}
	}

	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}
	// Fisher-Yates.
	for i := len(available) - 1; i > 0; i-- {
		j := intN(i + 1)
		available[i], available[j] = available[j], available[i]
	}
	if len(available) > count {
		available = available[:count]
	}
	return available
}

// IsDuplicate checks candidate against existing with DefaultMatcher.
func IsDuplicate(candidate string, existing []string) bool {
	return DefaultMatcher.IsDuplicate(candidate, existing)
}

// Sample draws from pool with DefaultMatcher.
func Sample(pool, existing []string, count int, rng *rand.Rand) []string {
	return DefaultMatcher.Sample(pool, existing, count, rng)
}
