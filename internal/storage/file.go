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
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jaycherian/gcp-go-fashion-director/internal/core/novelty"
)

// FileStore keeps each slot in <dir>/<slot>.json.
type FileStore struct {
	dir   string
	locks sync.Map // path -> *sync.RWMutex
}

// NewFileStore creates dir if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("file slot store needs a directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create slot directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(slot string) string {
	return filepath.Join(f.dir, filepath.Base(slot)+".json")
}

func (f *FileStore) lock(path string) *sync.RWMutex {
	l, _ := f.locks.LoadOrStore(path, &sync.RWMutex{})
	return l.(*sync.RWMutex)
}

func (f *FileStore) Read(_ context.Context, slot string) ([]byte, error) {
	path := f.path(slot)
	l := f.lock(path)
	l.RLock()
	defer l.RUnlock()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, novelty.ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %s: %w", slot, err)
	}
	return data, nil
}

// Write replaces the slot file through a temporary file and a rename so a
// reader never sees a partial journal.
func (f *FileStore) Write(_ context.Context, slot string, data []byte) error {
	path := f.path(slot)
	l := f.lock(path)
	l.Lock()
	defer l.Unlock()

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write slot %s: %w", slot, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil {
			slog.Warn("failed to remove temporary slot file", "path", tmp, "error", rmErr)
		}
		return fmt.Errorf("replace slot %s: %w", slot, err)
	}
	return nil
}

func (f *FileStore) Clear(_ context.Context, slot string) error {
	path := f.path(slot)
	l := f.lock(path)
	l.Lock()
	defer l.Unlock()

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear slot %s: %w", slot, err)
	}
	return nil
}

func (f *FileStore) Close() error { return nil }
