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

// Package storage_test runs the same slot contract against every store that
// can be opened locally. The redis store runs only when REDIS_ADDR is set.
package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jaycherian/gcp-go-fashion-director/internal/core/model"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/novelty"
	"github.com/jaycherian/gcp-go-fashion-director/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseSlots(t *testing.T, store storage.Store) {
	t.Helper()
	ctx := context.Background()
	slot := model.LocationVault.Slot()

	_, err := store.Read(ctx, slot)
	assert.ErrorIs(t, err, novelty.ErrSlotNotFound)

	require.NoError(t, store.Write(ctx, slot, []byte(`[{"id":"1","value":"Hoi An"}]`)))
	got, err := store.Read(ctx, slot)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1","value":"Hoi An"}]`, string(got))

	require.NoError(t, store.Write(ctx, slot, []byte(`[]`)))
	got, err = store.Read(ctx, slot)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))

	_, err = store.Read(ctx, model.BackdropVault.Slot())
	assert.ErrorIs(t, err, novelty.ErrSlotNotFound)

	require.NoError(t, store.Clear(ctx, slot))
	_, err = store.Read(ctx, slot)
	assert.ErrorIs(t, err, novelty.ErrSlotNotFound)
	require.NoError(t, store.Clear(ctx, slot))
}

func TestMemoryStore(t *testing.T) {
	exerciseSlots(t, storage.NewMemoryStore())
}

func TestMemoryStore_CopiesData(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	data := []byte("abc")
	require.NoError(t, store.Write(ctx, "slot", data))
	data[0] = 'x'

	got, err := store.Read(ctx, "slot")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "vaults")
	store, err := storage.NewFileStore(dir)
	require.NoError(t, err)
	defer store.Close()

	exerciseSlots(t, store)

	require.NoError(t, store.Write(context.Background(), "studio_vault", []byte("[]")))
	_, err = os.Stat(filepath.Join(dir, "studio_vault.json"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "studio_vault.json.tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "vaults.db")
	store, err := storage.NewSQLiteStore(context.Background(), path)
	require.NoError(t, err)
	defer store.Close()

	exerciseSlots(t, store)
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "vaults.db")

	store, err := storage.NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	require.NoError(t, store.Write(ctx, "tiktok_script_vault", []byte(`["x"]`)))
	require.NoError(t, store.Close())

	reopened, err := storage.NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()
	got, err := reopened.Read(ctx, "tiktok_script_vault")
	require.NoError(t, err)
	assert.Equal(t, `["x"]`, string(got))
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	store, err := storage.NewRedisStore(context.Background(), addr, "", 0, "fashion-director-test")
	require.NoError(t, err)
	defer store.Close()

	exerciseSlots(t, store)
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	store, err := storage.New(ctx, storage.Config{}, nil)
	require.NoError(t, err)
	assert.IsType(t, &storage.MemoryStore{}, store)

	store, err = storage.New(ctx, storage.Config{Kind: "FILE", Dir: t.TempDir()}, nil)
	require.NoError(t, err)
	assert.IsType(t, &storage.FileStore{}, store)

	_, err = storage.New(ctx, storage.Config{Kind: storage.KindGCS, Bucket: "b"}, nil)
	assert.Error(t, err)

	_, err = storage.New(ctx, storage.Config{Kind: storage.KindFile}, nil)
	assert.Error(t, err)

	_, err = storage.New(ctx, storage.Config{Kind: "floppy"}, nil)
	assert.Error(t, err)
}
