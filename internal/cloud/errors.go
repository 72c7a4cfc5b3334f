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

package cloud

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrModelNotConfigured is returned when a workflow needs a model that the
	// configuration does not define, or when cloud services are disabled.
	ErrModelNotConfigured = errors.New("generative model not configured")
	// ErrEmptyResponse is returned when the model answers without any text.
	ErrEmptyResponse = errors.New("no text response from model; it may be overloaded or the input was blocked")
	// ErrBlockedBySafety is returned when the model stopped for safety reasons.
	ErrBlockedBySafety = errors.New("response blocked by safety filters; try a different image or description")
)

// Human readable messages for the model failures users hit most often.
const (
	QuotaExceededMessage = "API quota exceeded (429). The Gemini usage limit was reached; wait a moment or check the project's quota and billing."
	ModelNotFoundMessage = "Model not found (404). The selected Gemini model is not available in this project or location."
)

var embeddedJSON = regexp.MustCompile(`(?s)\{.*\}`)

func isQuotaError(msg string) bool {
	return strings.Contains(msg, "429") || strings.Contains(msg, "RESOURCE_EXHAUSTED") || strings.Contains(strings.ToLower(msg), "quota")
}

func isNotFoundError(msg string) bool {
	return strings.Contains(msg, "404") || strings.Contains(msg, "NOT_FOUND")
}

// DescribeModelError turns a model failure into a message fit for an API
// response. Quota and not-found failures get fixed messages; otherwise the
// error.message of a JSON body embedded in the error text is surfaced, and
// failing that the error text itself.
func DescribeModelError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case isQuotaError(msg):
		return QuotaExceededMessage
	case isNotFoundError(msg):
		return ModelNotFoundMessage
	}
	if body := embeddedJSON.FindString(msg); body != "" {
		var parsed struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal([]byte(body), &parsed) == nil && parsed.Error.Message != "" {
			return parsed.Error.Message
		}
	}
	return msg
}

// isRetryable reports whether another attempt could succeed.
func isRetryable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	case errors.Is(err, ErrModelNotConfigured), errors.Is(err, ErrBlockedBySafety):
		return false
	case isNotFoundError(err.Error()):
		return false
	}
	return true
}
