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

// Package cloud contains data structures and utilities for interacting with Google Cloud services.
// This file covers Google Cloud Storage: addressing objects by `gs://` URI and
// reading reference images that arrive by reference rather than by upload.
//
// Structs:
//   - GCSObject: A simplified internal model for a GCS object.
//
// Functions:
//   - ParseGCSURI: Splits a `gs://bucket/object` URI.
//   - ReadImage: Downloads an object and sniffs its image type.
//   - SniffImage: Validates raw bytes as an image and returns its MIME type.
package cloud

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/h2non/filetype"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/model"
)

const gcsScheme = "gs://"

// MaxImageBytes caps the size of a reference image read from GCS.
const MaxImageBytes = 20 << 20

// GCSObject is a simplified, internal representation of a Google Cloud Storage (GCS)
// object.
type GCSObject struct {
	Bucket   string // The name of the GCS bucket.
	Name     string // The name of the object.
	MIMEType string // The MIME type of the object (e.g., "image/jpeg").
}

// URI returns the gs:// form of the object.
func (o GCSObject) URI() string {
	return gcsScheme + o.Bucket + "/" + o.Name
}

// ParseGCSURI splits a gs://bucket/object URI into its parts.
func ParseGCSURI(uri string) (GCSObject, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(uri), gcsScheme)
	if !ok {
		return GCSObject{}, fmt.Errorf("not a gs:// uri: %q", uri)
	}
	bucket, name, _ := strings.Cut(rest, "/")
	if bucket == "" || name == "" {
		return GCSObject{}, fmt.Errorf("gs:// uri needs a bucket and an object: %q", uri)
	}
	return GCSObject{Bucket: bucket, Name: name}, nil
}

// SniffImage checks that data starts with a known image signature and
// returns its MIME type.
func SniffImage(data []byte) (string, error) {
	if !filetype.IsImage(data) {
		return "", fmt.Errorf("unsupported or unrecognized image data")
	}
	kind, err := filetype.Match(data)
	if err != nil {
		return "", fmt.Errorf("failed to detect image type: %w", err)
	}
	return kind.MIME.Value, nil
}

// ReadImage downloads the object at uri and returns it as a reference image.
// The MIME type comes from the content, not the object metadata.
//
// Inputs:
//   - ctx: Controls the download.
//   - client: An initialized storage client.
//   - uri: The gs:// location of the image.
//
// Outputs:
//   - *model.ReferenceImage: The image bytes, sniffed MIME type and source uri.
//   - error: A parse, download, size or format failure.
func ReadImage(ctx context.Context, client *storage.Client, uri string) (*model.ReferenceImage, error) {
	if client == nil {
		return nil, fmt.Errorf("reading %s: storage client not configured", uri)
	}
	obj, err := ParseGCSURI(uri)
	if err != nil {
		return nil, err
	}
	reader, err := client.Bucket(obj.Bucket).Object(obj.Name).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", uri, err)
	}
	defer func(reader *storage.Reader) {
		if err := reader.Close(); err != nil {
			slog.Warn("failed to close GCS reader", "uri", uri, "error", err)
		}
	}(reader)

	data, err := io.ReadAll(io.LimitReader(reader, MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", uri, err)
	}
	if len(data) > MaxImageBytes {
		return nil, fmt.Errorf("%s is larger than %d bytes", uri, MaxImageBytes)
	}
	mimeType, err := SniffImage(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", uri, err)
	}
	return &model.ReferenceImage{MIMEType: mimeType, Data: data, URI: uri}, nil
}
