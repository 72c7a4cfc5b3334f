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
	"bytes"
	"context"
	"sync"

	"github.com/jaycherian/gcp-go-fashion-director/internal/core/novelty"
)

// MemoryStore keeps slots in a map.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string][]byte)}
}

func (m *MemoryStore) Read(_ context.Context, slot string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.slots[slot]
	if !ok {
		return nil, novelty.ErrSlotNotFound
	}
	return bytes.Clone(data), nil
}

func (m *MemoryStore) Write(_ context.Context, slot string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[slot] = bytes.Clone(data)
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, slot string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, slot)
	return nil
}

func (m *MemoryStore) Close() error { return nil }
