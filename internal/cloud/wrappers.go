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

// Package cloud provides components for interacting with Google Cloud services.
// This file implements a wrapper around the Generative AI models client.
// The wrapper uses the Decorator design pattern to add rate limiting to an
// existing model handle without altering its code. Vertex AI enforces
// per-minute quotas, so every call waits for a token before it is sent.
//
// Structs:
//   - QuotaAwareGenerativeAIModel: Binds a model name and generation config to
//     a `genai.Models` handle and a rate limiter.
//
// Interfaces:
//   - ContentGenerator: The single method the director commands depend on.
//     Tests substitute a canned implementation.
package cloud

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// ContentGenerator produces a model response for a multi-modal prompt.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, contents []*genai.Content) (*genai.GenerateContentResponse, error)
}

// QuotaAwareGenerativeAIModel is a decorator that pairs a `genai.Models`
// handle with the model name and generation config to call it with, and a
// limiter that keeps calls under the configured rate.
type QuotaAwareGenerativeAIModel struct {
	GenerativeContentConfig *genai.GenerateContentConfig
	ModelName               string
	ModelHandle             *genai.Models
	RateLimit               *rate.Limiter
}

// NewQuotaAwareModel is a constructor function that creates a new
// QuotaAwareGenerativeAIModel.
//
// Inputs:
//   - config: The generation config sent with every request.
//   - name: The Vertex AI model name (e.g., "gemini-2.5-pro").
//   - handle: The `Models` service of an initialized genai client.
//   - requestsPerSecond: The sustained request rate, also used as the burst size.
//     Values below one are treated as one.
//
// Outputs:
//   - *QuotaAwareGenerativeAIModel: A pointer to the newly created wrapper.
func NewQuotaAwareModel(config *genai.GenerateContentConfig, name string, handle *genai.Models, requestsPerSecond int) *QuotaAwareGenerativeAIModel {
	if requestsPerSecond < 1 {
		requestsPerSecond = 1
	}
	return &QuotaAwareGenerativeAIModel{
		GenerativeContentConfig: config,
		ModelName:               name,
		ModelHandle:             handle,
		RateLimit:               rate.NewLimiter(rate.Every(time.Second/time.Duration(requestsPerSecond)), requestsPerSecond),
	}
}

// GenerateContent waits for the limiter and then forwards the request to the
// wrapped model. Retries are the caller's concern (see GenerateMultiModalResponse).
//
// Logic Flow:
//  1. Block on the limiter until a token is available or ctx is done.
//  2. Call the model with the bound name and config.
//
// Inputs:
//   - ctx: Controls both the wait and the request.
//   - contents: The parts of the multi-modal prompt (text, inline images).
//
// Outputs:
//   - *genai.GenerateContentResponse: The response from the model if successful.
//   - error: The limiter's context error or the model's error.
func (q *QuotaAwareGenerativeAIModel) GenerateContent(ctx context.Context, contents []*genai.Content) (*genai.GenerateContentResponse, error) {
	if q == nil || q.ModelHandle == nil {
		return nil, ErrModelNotConfigured
	}
	if err := q.RateLimit.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for model quota: %w", err)
	}
	return q.ModelHandle.GenerateContent(ctx, q.ModelName, contents, q.GenerativeContentConfig)
}
