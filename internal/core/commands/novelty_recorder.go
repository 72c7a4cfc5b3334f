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

// Package commands provides the concrete implementations of the Chain of
// Responsibility (COR) pattern's Command interface. This file defines the
// command that journals the creative choices of a finished run so later
// runs avoid them.
//
// Logic Flow:
//  1. Pull the location, the studio backdrop and the opening line out of the
//     response, preferring the structured payload over text scraping.
//  2. Record each one in its vault when the rules for that vault allow it:
//     - location: always looked for; skipped when the vault already holds it
//     (exact, case-insensitive) or a fuzzy duplicate of it.
//     - backdrop: studio mode only; cut to MaxChoiceLen; must be longer
//     than MinChoiceLen and not a fuzzy duplicate.
//     - opening line: TikTok Shop only; same length rules as backdrops.
//  3. Every choice found is reported on the result, recorded or not. A vault
//     that cannot be persisted adds a warning; the run still succeeds.
package commands

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/jaycherian/gcp-go-fashion-director/internal/core/cor"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/extract"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/model"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/novelty"
)

// Length rules for backdrops and opening lines, in runes.
const (
	MaxChoiceLen = 100
	MinChoiceLen = 10
)

// NoveltyRecorder writes a run's creative choices to the novelty vaults.
type NoveltyRecorder struct {
	cor.BaseCommand
	journals *novelty.Journals
}

// NewNoveltyRecorder is the constructor for NoveltyRecorder.
func NewNoveltyRecorder(name string, journals *novelty.Journals) *NoveltyRecorder {
	return &NoveltyRecorder{BaseCommand: *cor.NewBaseCommand(name), journals: journals}
}

func (n *NoveltyRecorder) IsExecutable(context cor.Context) bool {
	return hasRun(context) && resultOf(context).Sections != nil
}

func truncateRunes(v string, n int) string {
	if utf8.RuneCountInString(v) <= n {
		return v
	}
	return string([]rune(v)[:n])
}

// longChoice trims and truncates v, returning "" when it is too short to be
// worth remembering.
func longChoice(v string) string {
	v = strings.TrimSpace(truncateRunes(strings.TrimSpace(v), MaxChoiceLen))
	if utf8.RuneCountInString(v) <= MinChoiceLen {
		return ""
	}
	return v
}

func (n *NoveltyRecorder) Execute(context cor.Context) {
	req := requestOf(context)
	res := resultOf(context)
	payload := res.Sections.Payload
	if payload == nil {
		payload = extract.LoosePayload(res.FullText)
	}

	if location := strings.TrimSpace(extract.LocationOf(payload, res.FullText)); location != "" {
		res.Choices[string(model.LocationVault)] = location
		vault := n.journals.Locations()
		if !vault.Contains(location) && !vault.IsDuplicate(location) {
			n.record(context, vault, location, req.Region, res)
		}
	}

	if req.StudioCategory != "" {
		if backdrop := longChoice(extract.BackdropOf(payload, res.FullText)); backdrop != "" {
			res.Choices[string(model.BackdropVault)] = backdrop
			if vault := n.journals.Backdrops(); !vault.IsDuplicate(backdrop) {
				n.record(context, vault, backdrop, req.StudioCategory, res)
			}
		}
	}

	if req.Mode == model.ModeTikTokShop {
		if line := longChoice(extract.OpeningLineOf(payload, res.FullText)); line != "" {
			res.Choices[string(model.OpeningLineVault)] = line
			if vault := n.journals.OpeningLines(); !vault.IsDuplicate(line) {
				category := req.ProductType
				if category == "" {
					category = req.Mode
				}
				n.record(context, vault, line, category, res)
			}
		}
	}
	n.Succeed(context)
}

func (n *NoveltyRecorder) record(context cor.Context, vault *novelty.Vault, value, category string, res *model.DirectorResult) {
	ctx := context.GetContext()
	entry, err := vault.Record(ctx, value, category, res.ID)
	if err != nil {
		n.GetErrorCounter().Add(ctx, 1)
		res.Warn(fmt.Sprintf("%s vault could not be saved: %v", vault.Name(), err))
		return
	}
	slog.DebugContext(ctx, "recorded creative choice", "vault", vault.Name(), "id", entry.ID)
}
