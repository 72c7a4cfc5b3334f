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
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jaycherian/gcp-go-fashion-director/internal/core/model"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/novelty"
	"github.com/jaycherian/gcp-go-fashion-director/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBroken = errors.New("store offline")

// brokenStore fails every call.
type brokenStore struct{}

func (brokenStore) Read(context.Context, string) ([]byte, error) { return nil, errBroken }
func (brokenStore) Write(context.Context, string, []byte) error  { return errBroken }
func (brokenStore) Clear(context.Context, string) error          { return errBroken }

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newVault(name model.VaultName, store novelty.SlotStore) *novelty.Vault {
	opts := novelty.DefaultOptions(name)
	opts.Store = store
	opts.NewID = sequentialIDs()
	opts.Clock = func() time.Time { return time.UnixMilli(1700000000000) }
	return novelty.NewVault(name, opts)
}

func TestVault_CapKeepsMostRecent(t *testing.T) {
	ctx := context.Background()
	v := newVault(model.OpeningLineVault, storage.NewMemoryStore())

	for i := 0; i < 45; i++ {
		_, err := v.Record(ctx, fmt.Sprintf("line %d", i), "fashion", "")
		require.NoError(t, err)
	}

	require.Equal(t, 30, v.Len())
	blocklist := v.Blocklist()
	assert.Equal(t, "line 44", blocklist[0])
	assert.Equal(t, "line 15", blocklist[29])
	for i, value := range blocklist {
		assert.Equal(t, fmt.Sprintf("line %d", 44-i), value)
	}
}

func TestVault_RecordFields(t *testing.T) {
	ctx := context.Background()
	v := newVault(model.BackdropVault, nil)

	long := "  Pastel pink cyclorama with arched mirrors, soft box lighting, glossy floor reflections and floating silk ribbons everywhere  "
	entry, err := v.Record(ctx, long, "luxury", "dress")

	require.NoError(t, err)
	assert.Equal(t, "id-1", entry.ID)
	assert.Equal(t, int64(1700000000000), entry.Timestamp)
	assert.Equal(t, "luxury", entry.Category)
	assert.Equal(t, "dress", entry.Tag)
	assert.Len(t, []rune(entry.Value), 100)
	assert.Equal(t, "Pastel pink cyclorama", entry.Value[:21])
	assert.Equal(t, []model.VaultEntry{entry}, v.Entries())
}

func TestVault_BlankValueStillRecorded(t *testing.T) {
	v := newVault(model.LocationVault, nil)

	_, err := v.Record(context.Background(), "   ", "north", "")

	require.NoError(t, err)
	assert.Equal(t, []string{""}, v.Blocklist())
}

func TestVault_PersistsAndHydrates(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	v := newVault(model.LocationVault, store)
	_, err := v.Record(ctx, "Hoi An Ancient Town", "central", "ao dai")
	require.NoError(t, err)
	_, err = v.Record(ctx, "Ha Long Bay", "north", "")
	require.NoError(t, err)

	restored := newVault(model.LocationVault, store)
	restored.Hydrate(ctx)

	assert.Equal(t, v.Entries(), restored.Entries())
	assert.True(t, restored.IsDuplicate("ha long bay at dawn"))
	assert.True(t, restored.Contains(" HOI AN ANCIENT TOWN "))
	assert.False(t, restored.Contains("Hoi An"))
}

func TestVault_HydrateDegradesToEmpty(t *testing.T) {
	ctx := context.Background()

	t.Run("absent slot", func(t *testing.T) {
		v := newVault(model.LocationVault, storage.NewMemoryStore())
		v.Hydrate(ctx)
		assert.Zero(t, v.Len())
	})

	t.Run("malformed slot", func(t *testing.T) {
		store := storage.NewMemoryStore()
		require.NoError(t, store.Write(ctx, model.LocationVault.Slot(), []byte("{not json")))
		v := newVault(model.LocationVault, store)
		v.Hydrate(ctx)
		assert.Zero(t, v.Len())
	})

	t.Run("unreadable store", func(t *testing.T) {
		v := newVault(model.LocationVault, brokenStore{})
		v.Hydrate(ctx)
		assert.Zero(t, v.Len())
	})
}

func TestVault_HydrateLegacyEntries(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	legacy := `[{"id":"1717000000000","location":"Sa Pa rice terraces","region":"north","timestamp":1717000000000,"productType":"jacket"}]`
	require.NoError(t, store.Write(ctx, model.LocationVault.Slot(), []byte(legacy)))

	v := newVault(model.LocationVault, store)
	v.Hydrate(ctx)

	require.Equal(t, 1, v.Len())
	assert.Equal(t, model.VaultEntry{
		ID:        "1717000000000",
		Value:     "Sa Pa rice terraces",
		Category:  "north",
		Timestamp: 1717000000000,
		Tag:       "jacket",
	}, v.Entries()[0])
}

func TestVault_WriteFailureIsWarningOnly(t *testing.T) {
	v := newVault(model.LocationVault, brokenStore{})

	entry, err := v.Record(context.Background(), "Mui Ne", "south", "")

	assert.ErrorIs(t, err, errBroken)
	assert.Equal(t, "Mui Ne", entry.Value)
	assert.Equal(t, []string{"Mui Ne"}, v.Blocklist())
}

func TestVault_RemoveAndClear(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	v := newVault(model.BackdropVault, store)
	first, _ := v.Record(ctx, "White infinity cove", "minimal", "")
	_, _ = v.Record(ctx, "Neon grid tunnel", "futuristic", "")

	removed, err := v.Remove(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, []string{"Neon grid tunnel"}, v.Blocklist())

	removed, err = v.Remove(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, removed)

	require.NoError(t, v.Clear(ctx))
	assert.Zero(t, v.Len())
	_, err = store.Read(ctx, model.BackdropVault.Slot())
	assert.ErrorIs(t, err, novelty.ErrSlotNotFound)
}

func TestVault_Sample(t *testing.T) {
	ctx := context.Background()
	v := newVault(model.LocationVault, nil)
	_, _ = v.Record(ctx, "Hue Imperial Citadel", "central", "")

	got := v.Sample([]string{"Hue Imperial Citadel at dusk", "Phong Nha cave", "My Son sanctuary"}, 5)

	assert.ElementsMatch(t, []string{"Phong Nha cave", "My Son sanctuary"}, got)
}

func TestJournals(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	j := novelty.NewJournals(store, map[model.VaultName]novelty.Matcher{
		model.LocationVault: {CompareLength: 5},
	}, nil)

	_, err := j.Locations().Record(ctx, "Hanoi West Lake", "north", "")
	require.NoError(t, err)
	assert.True(t, j.Locations().IsDuplicate("Hanoi Train Street"))

	_, err = j.OpeningLines().Record(ctx, "Deal ends tonight, grab it now!", "", "dress")
	require.NoError(t, err)

	again := novelty.NewJournals(store, nil, nil)
	again.Hydrate(ctx)
	assert.Equal(t, 1, again.Locations().Len())
	assert.Equal(t, 1, again.OpeningLines().Len())
	assert.Zero(t, again.Backdrops().Len())

	v, ok := again.Vault(model.BackdropVault)
	require.True(t, ok)
	assert.Equal(t, model.BackdropVault, v.Name())
}
