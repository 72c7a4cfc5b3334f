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
	"io"
	"log/slog"
	"path"

	gcs "cloud.google.com/go/storage"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/novelty"
)

// GCSStore keeps each slot as the object <prefix>/<slot>.json in a bucket.
type GCSStore struct {
	client *gcs.Client
	bucket string
	prefix string
}

func NewGCSStore(client *gcs.Client, bucket, prefix string) (*GCSStore, error) {
	if bucket == "" {
		return nil, fmt.Errorf("gcs slot store needs a bucket")
	}
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &GCSStore{client: client, bucket: bucket, prefix: prefix}, nil
}

func (g *GCSStore) object(slot string) *gcs.ObjectHandle {
	return g.client.Bucket(g.bucket).Object(path.Join(g.prefix, slot+".json"))
}

func (g *GCSStore) Read(ctx context.Context, slot string) ([]byte, error) {
	reader, err := g.object(slot).NewReader(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil, novelty.ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS reader for slot %s: %w", slot, err)
	}
	defer func(reader *gcs.Reader) {
		if err := reader.Close(); err != nil {
			slog.Warn("failed to close GCS reader", "slot", slot, "error", err)
		}
	}(reader)

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read slot %s: %w", slot, err)
	}
	return data, nil
}

func (g *GCSStore) Write(ctx context.Context, slot string, data []byte) error {
	writer := g.object(slot).NewWriter(ctx)
	writer.ContentType = "application/json"
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("write slot %s: %w", slot, err)
	}
	// The object is only committed on Close.
	if err := writer.Close(); err != nil {
		return fmt.Errorf("commit slot %s: %w", slot, err)
	}
	return nil
}

func (g *GCSStore) Clear(ctx context.Context, slot string) error {
	if err := g.object(slot).Delete(ctx); err != nil && !errors.Is(err, gcs.ErrObjectNotExist) {
		return fmt.Errorf("clear slot %s: %w", slot, err)
	}
	return nil
}

// Close is a no-op; the client is shared and closed by its owner.
func (g *GCSStore) Close() error { return nil }
