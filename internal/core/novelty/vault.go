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
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/model"
)

// ErrSlotNotFound is returned by a SlotStore when a slot has never been
// written or has been cleared.
var ErrSlotNotFound = errors.New("slot not found")

// SlotStore is the durable key-value record a vault is persisted in. Each
// vault owns one slot and always reads and writes it whole.
type SlotStore interface {
	Read(ctx context.Context, slot string) ([]byte, error)
	Write(ctx context.Context, slot string, data []byte) error
	Clear(ctx context.Context, slot string) error
}

// Options configure a Vault.
type Options struct {
	Capacity int
	// MaxValueLen truncates recorded values to this many runes. Zero keeps
	// the whole value.
	MaxValueLen int
	Matcher     Matcher
	Store       SlotStore
	Logger      *slog.Logger
	Clock       func() time.Time
	NewID       func() string
	Rand        *rand.Rand
}

// DefaultOptions returns the retention and matching settings for a vault.
// Locations use short comparisons because place names are short. Backdrops
// and opening lines are long sentences compared on a longer prefix, and only
// the leading part of a backdrop is kept.
func DefaultOptions(name model.VaultName) Options {
	switch name {
	case model.BackdropVault:
		return Options{Capacity: 50, MaxValueLen: 100, Matcher: Matcher{CompareLength: 30, HeadTokens: 3}}
	case model.OpeningLineVault:
		return Options{Capacity: 30, Matcher: Matcher{CompareLength: 30, HeadTokens: 3}}
	default:
		return Options{Capacity: 50, Matcher: DefaultMatcher}
	}
}

// Vault is a capped journal of past creative choices, newest first.
//
// Every mutation rewrites the vault's slot in full. Store failures never lose
// in-memory state: they are logged and returned for the caller to surface as
// a warning.
type Vault struct {
	name    model.VaultName
	opts    Options
	mu      sync.RWMutex
	entries []model.VaultEntry
	randMu  sync.Mutex
}

// NewVault creates an empty vault. Call Hydrate to load its slot.
func NewVault(name model.VaultName, opts Options) *Vault {
	if opts.Capacity <= 0 {
		opts.Capacity = DefaultOptions(name).Capacity
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &Vault{name: name, opts: opts, entries: []model.VaultEntry{}}
}

// Name returns the vault's name.
func (v *Vault) Name() model.VaultName {
	return v.name
}

// Hydrate replaces the in-memory journal with the stored one. An absent,
// unreadable or malformed slot leaves the vault empty.
func (v *Vault) Hydrate(ctx context.Context) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.entries = []model.VaultEntry{}
	if v.opts.Store == nil {
		return
	}

	data, err := v.opts.Store.Read(ctx, v.name.Slot())
	if err != nil {
		if !errors.Is(err, ErrSlotNotFound) {
			v.opts.Logger.WarnContext(ctx, "vault slot unreadable, starting empty", "vault", v.name, "error", err)
		}
		return
	}
	var stored []model.VaultEntry
	if err := json.Unmarshal(data, &stored); err != nil {
		v.opts.Logger.WarnContext(ctx, "vault slot malformed, starting empty", "vault", v.name, "error", err)
		return
	}
	if len(stored) > v.opts.Capacity {
		stored = stored[:v.opts.Capacity]
	}
	if stored != nil {
		v.entries = stored
	}
	v.opts.Logger.DebugContext(ctx, "vault hydrated", "vault", v.name, "entries", len(v.entries))
}

// Record prepends a new entry and evicts the oldest entries beyond capacity.
// The value is trimmed and, when MaxValueLen is set, truncated. Every call
// appends exactly one entry; the returned error only reports that the slot
// could not be rewritten.
func (v *Vault) Record(ctx context.Context, value, category, tag string) (model.VaultEntry, error) {
	value = truncate(strings.TrimSpace(value), v.opts.MaxValueLen)
	entry := model.VaultEntry{
		ID:        v.opts.NewID(),
		Value:     value,
		Category:  category,
		Timestamp: v.opts.Clock().UnixMilli(),
		Tag:       tag,
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	next := make([]model.VaultEntry, 0, min(len(v.entries)+1, v.opts.Capacity))
	next = append(next, entry)
	for _, e := range v.entries {
		if len(next) == v.opts.Capacity {
			break
		}
		next = append(next, e)
	}
	v.entries = next
	return entry, v.persist(ctx)
}

// Remove deletes the entry with the given id. It reports whether an entry
// was removed.
func (v *Vault) Remove(ctx context.Context, id string) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	next := make([]model.VaultEntry, 0, len(v.entries))
	for _, e := range v.entries {
		if e.ID != id {
			next = append(next, e)
		}
	}
	if len(next) == len(v.entries) {
		return false, nil
	}
	v.entries = next
	return true, v.persist(ctx)
}

// Clear empties the vault and its slot.
func (v *Vault) Clear(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.entries = []model.VaultEntry{}
	if v.opts.Store == nil {
		return nil
	}
	if err := v.opts.Store.Clear(ctx, v.name.Slot()); err != nil {
		v.opts.Logger.WarnContext(ctx, "vault slot not cleared", "vault", v.name, "error", err)
		return fmt.Errorf("clear %s vault: %w", v.name, err)
	}
	return nil
}

// persist rewrites the slot. Callers hold the lock.
func (v *Vault) persist(ctx context.Context) error {
	if v.opts.Store == nil {
		return nil
	}
	data, err := json.Marshal(v.entries)
	if err != nil {
		return fmt.Errorf("encode %s vault: %w", v.name, err)
	}
	if err := v.opts.Store.Write(ctx, v.name.Slot(), data); err != nil {
		v.opts.Logger.WarnContext(ctx, "vault slot not written", "vault", v.name, "error", err)
		return fmt.Errorf("write %s vault: %w", v.name, err)
	}
	return nil
}

// Entries returns a copy of the journal, newest first.
func (v *Vault) Entries() []model.VaultEntry {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]model.VaultEntry, len(v.entries))
	copy(out, v.entries)
	return out
}

// Len returns the number of entries.
func (v *Vault) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.entries)
}

// Blocklist returns the stored values, newest first.
func (v *Vault) Blocklist() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]string, len(v.entries))
	for i, e := range v.entries {
		out[i] = e.Value
	}
	return out
}

// Contains reports whether value equals a stored value, ignoring case and
// surrounding space.
func (v *Vault) Contains(value string) bool {
	value = strings.TrimSpace(value)
	for _, e := range v.Blocklist() {
		if strings.EqualFold(strings.TrimSpace(e), value) {
			return true
		}
	}
	return false
}

// IsDuplicate checks candidate against the vault's values with the vault's
// matcher.
func (v *Vault) IsDuplicate(candidate string) bool {
	return v.opts.Matcher.IsDuplicate(candidate, v.Blocklist())
}

// Sample returns up to count pool items that the vault does not consider
// duplicates, in random order.
func (v *Vault) Sample(pool []string, count int) []string {
	existing := v.Blocklist()
	v.randMu.Lock()
	defer v.randMu.Unlock()
	return v.opts.Matcher.Sample(pool, existing, count, v.opts.Rand)
}
