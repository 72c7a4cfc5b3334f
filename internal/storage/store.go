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

// Package storage provides the durable slot stores the novelty vaults are
// persisted in. Every store keeps one opaque blob per slot name and supports
// whole-slot read, write and clear.
//
// Stores:
//   - memory: process local, used by tests and when persistence is off.
//   - file: one JSON file per slot, written atomically.
//   - sqlite: a vault_slots table in a local database.
//   - redis: one key per slot under a prefix.
//   - gcs: one object per slot in a Cloud Storage bucket.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	gcs "cloud.google.com/go/storage"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/novelty"
)

// Store kinds accepted by New.
const (
	KindMemory = "memory"
	KindFile   = "file"
	KindSQLite = "sqlite"
	KindRedis  = "redis"
	KindGCS    = "gcs"
)

// Config selects and configures a store.
type Config struct {
	Kind          string
	Dir           string // file
	SQLitePath    string // sqlite
	RedisAddr     string // redis
	RedisPassword string
	RedisDB       int
	KeyPrefix     string // redis key prefix and gcs object prefix
	Bucket        string // gcs
}

// Store is a novelty.SlotStore that may hold resources.
type Store interface {
	novelty.SlotStore
	io.Closer
}

// New opens the store named by cfg.Kind. The gcs store needs an initialized
// client; the other kinds ignore it.
func New(ctx context.Context, cfg Config, client *gcs.Client) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Kind)) {
	case "", KindMemory:
		return NewMemoryStore(), nil
	case KindFile:
		return NewFileStore(cfg.Dir)
	case KindSQLite:
		return NewSQLiteStore(ctx, cfg.SQLitePath)
	case KindRedis:
		return NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.KeyPrefix)
	case KindGCS:
		if client == nil {
			return nil, fmt.Errorf("gcs slot store needs a storage client")
		}
		return NewGCSStore(client, cfg.Bucket, cfg.KeyPrefix)
	}
	return nil, fmt.Errorf("unknown slot store kind %q", cfg.Kind)
}
