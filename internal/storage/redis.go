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

package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jaycherian/gcp-go-fashion-director/internal/core/novelty"
	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "fashion-director"

// RedisStore keeps each slot under the key <prefix>:<slot>.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStore connects to addr, falling back to REDIS_ADDR, and pings the
// server before returning.
func NewRedisStore(ctx context.Context, addr, password string, db int, prefix string) (*RedisStore, error) {
	if strings.TrimSpace(addr) == "" {
		addr = strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	}
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	if prefix == "" {
		prefix = defaultKeyPrefix
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisStore{rdb: rdb, prefix: prefix}, nil
}

func (r *RedisStore) key(slot string) string {
	return r.prefix + ":" + slot
}

func (r *RedisStore) Read(ctx context.Context, slot string) ([]byte, error) {
	data, err := r.rdb.Get(ctx, r.key(slot)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, novelty.ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %s: %w", slot, err)
	}
	return data, nil
}

func (r *RedisStore) Write(ctx context.Context, slot string, data []byte) error {
	if err := r.rdb.Set(ctx, r.key(slot), data, 0).Err(); err != nil {
		return fmt.Errorf("write slot %s: %w", slot, err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context, slot string) error {
	if err := r.rdb.Del(ctx, r.key(slot)).Err(); err != nil {
		return fmt.Errorf("clear slot %s: %w", slot, err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.rdb.Close()
}
