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

// Package commands provides the concrete implementations of the Chain of
// Responsibility (COR) pattern's Command interface. This file defines the
// first step of the director workflow: turning whatever arrived (an HTTP
// form already bound to a struct, or a Pub/Sub message body) into a
// normalized, validated request and an empty result to fill in.
//
// Logic Flow:
//  1. Read CtxIn. A *model.DirectorRequest is used as is; a string or []byte
//     is decoded as JSON.
//  2. Normalize: lower-case mode, TikTok Shop forces a 32 second video and
//     disables lookbook, durations snap down to whole 8 second scenes,
//     aspect ratio and region get their defaults.
//  3. Validate against the catalog and the supported modes and ratios.
//  4. Resolve images given as gs:// URIs, sniffing their MIME types.
//  5. Store the request and a new result (with a fresh id) in the context.
package commands

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/jaycherian/gcp-go-fashion-director/internal/cloud"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/catalog"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/cor"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/model"
)

// Request defaults and limits.
const (
	DefaultDuration    = 16
	TikTokShopDuration = 32
	MaxDuration        = 64
	DefaultAspectRatio = "9:16"
)

// AspectRatios lists the supported output ratios.
var AspectRatios = []string{"9:16", "16:9", "1:1", "4:5", "3:4"}

// DirectorRequestReader decodes, normalizes and validates a director request.
type DirectorRequestReader struct {
	cor.BaseCommand
	storageClient *storage.Client // Used only for images given as gs:// URIs. May be nil.
}

// NewDirectorRequestReader is the constructor for DirectorRequestReader.
func NewDirectorRequestReader(name string, storageClient *storage.Client) *DirectorRequestReader {
	return &DirectorRequestReader{BaseCommand: *cor.NewBaseCommand(name), storageClient: storageClient}
}

// Execute reads CtxIn and stores ParamRequest and ParamResult.
func (r *DirectorRequestReader) Execute(context cor.Context) {
	req, err := decodeRequest(context.Get(r.GetInputParam()))
	if err != nil {
		r.Fail(context, err)
		return
	}
	if err := NormalizeRequest(req); err != nil {
		r.Fail(context, err)
		return
	}
	for _, img := range []*model.ReferenceImage{req.Face, req.Outfit} {
		if err := r.resolveImage(context, img); err != nil {
			r.Fail(context, fmt.Errorf("%w: %w", ErrInvalidRequest, err))
			return
		}
	}

	res := &model.DirectorResult{
		ID:            uuid.NewString(),
		KeyframeItems: []model.Segment{},
		SceneItems:    []model.Segment{},
		Choices:       make(map[string]string),
		Suggestions:   make(map[string][]string),
	}
	context.Add(ParamRequest, req)
	context.Add(ParamResult, res)
	context.Add(r.GetOutputParam(), req)
	r.Succeed(context)
}

func decodeRequest(in interface{}) (*model.DirectorRequest, error) {
	var data []byte
	switch v := in.(type) {
	case *model.DirectorRequest:
		if v == nil {
			return nil, fmt.Errorf("%w: empty request", ErrInvalidRequest)
		}
		copied := *v
		for _, img := range []**model.ReferenceImage{&copied.Face, &copied.Outfit} {
			if *img != nil {
				c := **img
				*img = &c
			}
		}
		return &copied, nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return nil, fmt.Errorf("%w: unsupported input %T", ErrInvalidRequest, in)
	}
	req := &model.DirectorRequest{}
	if err := json.Unmarshal(data, req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return req, nil
}

// NormalizeRequest applies the request defaults in place and validates the
// result. Errors wrap ErrInvalidRequest.
func NormalizeRequest(req *model.DirectorRequest) error {
	req.Brief = strings.TrimSpace(req.Brief)
	req.ProductType = strings.TrimSpace(req.ProductType)

	req.Mode = strings.ToLower(strings.TrimSpace(req.Mode))
	switch req.Mode {
	case "":
		req.Mode = model.ModeCinematic
	case model.ModeCinematic, model.ModeTikTokShop:
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidRequest, req.Mode)
	}

	if req.Mode == model.ModeTikTokShop {
		req.DurationSec = TikTokShopDuration
		req.Lookbook = false
	}
	switch {
	case req.DurationSec <= 0:
		req.DurationSec = DefaultDuration
	case req.DurationSec > MaxDuration:
		return fmt.Errorf("%w: duration %ds exceeds %ds", ErrInvalidRequest, req.DurationSec, MaxDuration)
	case req.DurationSec < 8:
		req.DurationSec = 8
	default:
		req.DurationSec -= req.DurationSec % 8
	}

	req.AspectRatio = strings.TrimSpace(req.AspectRatio)
	if req.AspectRatio == "" {
		req.AspectRatio = DefaultAspectRatio
	}
	if !slices.Contains(AspectRatios, req.AspectRatio) {
		return fmt.Errorf("%w: unsupported aspect ratio %q", ErrInvalidRequest, req.AspectRatio)
	}

	req.Region = strings.ToLower(strings.TrimSpace(req.Region))
	if req.Region == "" {
		req.Region = catalog.Auto
	}
	if _, ok := catalog.FindRegion(req.Region); !ok && req.Region != catalog.Auto {
		return fmt.Errorf("%w: unknown region %q", ErrInvalidRequest, req.Region)
	}

	req.StudioCategory = strings.ToLower(strings.TrimSpace(req.StudioCategory))
	if req.StudioCategory != "" && req.StudioCategory != catalog.Auto {
		if _, ok := catalog.FindStudioCategory(req.StudioCategory); !ok {
			return fmt.Errorf("%w: unknown studio category %q", ErrInvalidRequest, req.StudioCategory)
		}
	}

	if !hasImage(req.Outfit) {
		return fmt.Errorf("%w: an outfit image is required", ErrInvalidRequest)
	}
	if req.Face != nil && !hasImage(req.Face) {
		req.Face = nil
	}
	return nil
}

func hasImage(img *model.ReferenceImage) bool {
	return img != nil && (len(img.Data) > 0 || img.URI != "")
}

func (r *DirectorRequestReader) resolveImage(context cor.Context, img *model.ReferenceImage) error {
	if img == nil {
		return nil
	}
	if len(img.Data) == 0 {
		loaded, err := cloud.ReadImage(context.GetContext(), r.storageClient, img.URI)
		if err != nil {
			return err
		}
		*img = *loaded
		return nil
	}
	if img.MIMEType == "" {
		mimeType, err := cloud.SniffImage(img.Data)
		if err != nil {
			return err
		}
		img.MIMEType = mimeType
	}
	return nil
}
