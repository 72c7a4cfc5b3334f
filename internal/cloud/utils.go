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
// This file contains general-purpose utility functions that support the cloud package.
// These helpers cover hierarchical configuration loading and resilient
// interaction with the Generative AI API.
//
// Functions:
//   - LoadConfig: Implements a hierarchical configuration loader. It loads an
//     optional `.env` file into the process environment, reads a base TOML file
//     and then overwrites values with an environment-specific file
//     (e.g., .env.local.toml, .env.test.toml).
//   - GenerateMultiModalResponse: A wrapper for making calls to the GenAI model. It includes
//     a retry mechanism for transient errors and records token usage and retries
//     with OpenTelemetry counters.
//   - NewTextPart, NewImagePart: Small factories for building prompt parts.
package cloud

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel/metric"
	"google.golang.org/genai"
)

// Cloud Constants define key strings and values used throughout the package,
// primarily for configuration loading and API interaction policies.
const (
	ConfigFileBaseName  = ".env"              // The base name for configuration files (e.g., ".env.toml").
	ConfigFileExtension = ".toml"             // The file extension for configuration files.
	ConfigSeparator     = "."                 // The separator used in config file names (e.g., ".env.local.toml").
	EnvConfigFilePrefix = "GCP_CONFIG_PREFIX" // The environment variable for specifying the config directory.
	EnvConfigRuntime    = "GCP_RUNTIME"       // The environment variable for specifying the runtime context (e.g., "local", "test", "prod").
	MaxRetries          = 3                   // The maximum number of times to retry a failed API call.
)

// RetryDelay is the wait before the first retry of a failed model call. Each
// further retry waits one more multiple of it.
var RetryDelay = 2 * time.Second

// fileExists checks if a file or directory exists at the given path.
func fileExists(in string) bool {
	_, err := os.Stat(in)
	return !errors.Is(err, os.ErrNotExist)
}

// LoadConfig provides a hierarchical configuration loading mechanism. It first
// loads a `.env` file from the working directory when present, so values such
// as GCP_RUNTIME or REDIS_ADDR can be kept out of the shell. It then decodes a
// base configuration file and merges an environment-specific file over it.
// Missing files are skipped.
//
// Inputs:
//   - baseConfig: A pointer to the target configuration struct.
//
// Outputs:
//   - error: A decode failure in either TOML file, or an unreadable `.env`.
func LoadConfig(baseConfig interface{}) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}

	// Read the directory path for config files from an environment variable.
	configurationFilePrefix := os.Getenv(EnvConfigFilePrefix)
	// Ensure the prefix ends with a path separator if it's not empty.
	if len(configurationFilePrefix) > 0 && !strings.HasSuffix(configurationFilePrefix, string(os.PathSeparator)) {
		configurationFilePrefix = configurationFilePrefix + string(os.PathSeparator)
	}

	// Default to "test" if the runtime is not set.
	runtimeEnvironment := os.Getenv(EnvConfigRuntime)
	if runtimeEnvironment == "" {
		runtimeEnvironment = "test"
	}

	baseConfigFileName := configurationFilePrefix + ConfigFileBaseName + ConfigFileExtension
	envConfigFileName := configurationFilePrefix + ConfigFileBaseName + ConfigSeparator + runtimeEnvironment + ConfigFileExtension
	slog.Debug("loading configuration", "base", baseConfigFileName, "override", envConfigFileName)

	if fileExists(baseConfigFileName) {
		if _, err := toml.DecodeFile(baseConfigFileName, baseConfig); err != nil {
			return fmt.Errorf("failed to decode base configuration file %s: %w", baseConfigFileName, err)
		}
	}

	// Any values in this file overwrite the values from the base config.
	if fileExists(envConfigFileName) {
		if _, err := toml.DecodeFile(envConfigFileName, baseConfig); err != nil {
			return fmt.Errorf("failed to decode environment configuration file %s: %w", envConfigFileName, err)
		}
	}
	return nil
}

// GenerateMultiModalResponse is a helper function for executing multi-modal requests
// against a Generative AI model. It includes logic for retries and telemetry.
//
// Logic Flow:
//  1. Send the request.
//  2. On a retryable error, bump the retry counter, wait tryCount+1 delays and recurse.
//  3. On success, record token usage when the response carries it.
//  4. Concatenate the text of every candidate part, skipping thought parts.
//  5. An empty result is an error: ErrBlockedBySafety when the first candidate
//     stopped for safety, ErrEmptyResponse otherwise.
//
// Inputs:
//   - ctx: The context for the request, which controls cancellation and tracing.
//   - inputTokenCounter: An OpenTelemetry counter for prompt tokens used.
//   - outputTokenCounter: An OpenTelemetry counter for response tokens generated.
//   - retryCounter: An OpenTelemetry counter for tracking the number of retries.
//   - tryCount: The current attempt number for this request (starts at 0).
//   - model: The generator to call, normally a QuotaAwareGenerativeAIModel.
//   - contents: The prompt.
//
// Outputs:
//   - string: The concatenated text content from the model's response, verbatim.
//   - error: An error if the request fails after all retries.
func GenerateMultiModalResponse(
	ctx context.Context,
	inputTokenCounter metric.Int64Counter,
	outputTokenCounter metric.Int64Counter,
	retryCounter metric.Int64Counter,
	tryCount int,
	model ContentGenerator,
	contents []*genai.Content) (value string, err error) {
	if model == nil {
		return "", ErrModelNotConfigured
	}

	resp, err := model.GenerateContent(ctx, contents)
	if err != nil {
		if tryCount < MaxRetries && isRetryable(err) {
			retryCounter.Add(ctx, 1)
			slog.WarnContext(ctx, "model request failed, retrying", "attempt", tryCount+1, "error", err)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(tryCount+1) * RetryDelay):
			}
			return GenerateMultiModalResponse(ctx, inputTokenCounter, outputTokenCounter, retryCounter, tryCount+1, model, contents)
		}
		return "", err
	}

	if resp.UsageMetadata != nil {
		inputTokenCounter.Add(ctx, int64(resp.UsageMetadata.PromptTokenCount))
		outputTokenCounter.Add(ctx, int64(resp.UsageMetadata.CandidatesTokenCount))
	}

	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Thought {
				continue
			}
			sb.WriteString(part.Text)
		}
	}
	value = sb.String()

	if strings.TrimSpace(value) == "" {
		if len(resp.Candidates) > 0 && resp.Candidates[0] != nil && resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
			return "", ErrBlockedBySafety
		}
		return "", ErrEmptyResponse
	}
	return value, nil
}

// NewTextPart is a simple factory function for creating a text part.
func NewTextPart(in string) *genai.Part {
	return &genai.Part{Text: in}
}

// NewImagePart creates an inline image part from raw bytes.
func NewImagePart(data []byte, mimeType string) *genai.Part {
	return &genai.Part{InlineData: &genai.Blob{Data: data, MIMEType: mimeType}}
}

// NewTextContents wraps a single text prompt as a user turn.
func NewTextContents(in string) []*genai.Content {
	return []*genai.Content{{Role: "user", Parts: []*genai.Part{NewTextPart(in)}}}
}
