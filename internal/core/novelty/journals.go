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

package novelty

import (
	"context"
	"log/slog"

	"github.com/jaycherian/gcp-go-fashion-director/internal/core/model"
)

// Journals holds one vault per model.VaultName, all backed by the same store.
type Journals struct {
	vaults map[model.VaultName]*Vault
}

// NewJournals creates the three vaults with their default options. A
// non-zero matcher in matchers overrides a vault's default matcher.
func NewJournals(store SlotStore, matchers map[model.VaultName]Matcher, logger *slog.Logger) *Journals {
	j := &Journals{vaults: make(map[model.VaultName]*Vault, len(model.VaultNames))}
	for _, name := range model.VaultNames {
		opts := DefaultOptions(name)
		opts.Store = store
		opts.Logger = logger
		if m, ok := matchers[name]; ok && m != (Matcher{}) {
			opts.Matcher = m
		}
		j.vaults[name] = NewVault(name, opts)
	}
	return j
}

// Hydrate loads every vault from the store.
func (j *Journals) Hydrate(ctx context.Context) {
	for _, name := range model.VaultNames {
		j.vaults[name].Hydrate(ctx)
	}
}

// Vault returns the named vault.
func (j *Journals) Vault(name model.VaultName) (*Vault, bool) {
	v, ok := j.vaults[name]
	return v, ok
}

func (j *Journals) Locations() *Vault    { return j.vaults[model.LocationVault] }
func (j *Journals) Backdrops() *Vault    { return j.vaults[model.BackdropVault] }
func (j *Journals) OpeningLines() *Vault { return j.vaults[model.OpeningLineVault] }
