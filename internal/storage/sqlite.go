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
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jaycherian/gcp-go-fashion-director/internal/core/novelty"
	_ "modernc.org/sqlite"
)

const createSlotsTable = `CREATE TABLE IF NOT EXISTS vault_slots (
	slot       TEXT PRIMARY KEY,
	data       BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLiteStore keeps slots as rows of the vault_slots table.
type SQLiteStore struct {
	conn *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path and ensures the
// table exists.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite slot store needs a database path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	for _, stmt := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		createSlotsTable,
	} {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to execute %q: %w", stmt, err)
		}
	}
	return &SQLiteStore{conn: conn}, nil
}

func (s *SQLiteStore) Read(ctx context.Context, slot string) ([]byte, error) {
	var data []byte
	err := s.conn.QueryRowContext(ctx, `SELECT data FROM vault_slots WHERE slot = ?`, slot).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, novelty.ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %s: %w", slot, err)
	}
	return data, nil
}

func (s *SQLiteStore) Write(ctx context.Context, slot string, data []byte) error {
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO vault_slots (slot, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		slot, data, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("write slot %s: %w", slot, err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context, slot string) error {
	if _, err := s.conn.ExecContext(ctx, `DELETE FROM vault_slots WHERE slot = ?`, slot); err != nil {
		return fmt.Errorf("clear slot %s: %w", slot, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}
