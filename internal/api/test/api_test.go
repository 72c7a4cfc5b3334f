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

// Package api_test drives the HTTP routes through gin with httptest and a
// scripted model.
package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jaycherian/gcp-go-fashion-director/internal/api"
	"github.com/jaycherian/gcp-go-fashion-director/internal/cloud"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/model"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/novelty"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/services"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/workflow"
	test "github.com/jaycherian/gcp-go-fashion-director/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	cloud.RetryDelay = time.Millisecond
}

type server struct {
	router   *gin.Engine
	journals *novelty.Journals
	model    *test.FakeGenerator
}

// newServer mounts the API over memory vaults. A nil generator leaves the
// director model unconfigured.
func newServer(t *testing.T, generator *test.FakeGenerator) *server {
	t.Helper()
	config := test.GetConfig()
	journals := test.NewMemoryJournals()
	deps := workflow.DirectorDependencies{Journals: journals}
	if generator != nil {
		deps.Director = generator
		deps.Refiner = generator
	}
	w, err := workflow.NewDirectorWorkflow(config, deps)
	require.NoError(t, err)

	r := gin.New()
	api.Register(r.Group("/api/v1"), &api.State{
		Config:      config,
		Workflow:    w,
		Suggestions: services.NewSuggestionService(journals),
	})
	return &server{router: r, journals: journals, model: generator}
}

func (s *server) do(method, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *server) postJSON(path string, v interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(v)
	return s.do(http.MethodPost, path, bytes.NewBuffer(data), "application/json")
}

func directorForm(t *testing.T, fields map[string]string, withOutfit bool) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if withOutfit {
		part, err := writer.CreateFormFile(api.FormOutfit, "outfit.png")
		require.NoError(t, err)
		_, err = part.Write(test.PNG)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestDirector_Multipart(t *testing.T) {
	s := newServer(t, test.NewFakeGenerator(test.CannedDirectorResponse(), test.CannedRefinementResponse()))
	body, contentType := directorForm(t, map[string]string{
		api.FormBrief:    "Ivory ao dai by the river",
		api.FormDuration: "16",
		api.FormLookbook: "false",
	}, true)

	rec := s.do(http.MethodPost, "/api/v1/director", body, contentType)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res model.DirectorResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Len(t, res.KeyframeItems, 2)
	assert.Equal(t, test.CannedRefinementResponse(), res.RefinedScenes)
	assert.Equal(t, test.CannedLocation, res.Choices[string(model.LocationVault)])
	assert.Equal(t, 1, s.journals.Locations().Len())

	calls := s.model.Calls()
	require.NotEmpty(t, calls)
	parts := calls[0][0].Parts
	require.Len(t, parts, 3)
	assert.Equal(t, "image/png", parts[2].InlineData.MIMEType)
}

func TestDirector_BadForm(t *testing.T) {
	s := newServer(t, test.NewFakeGenerator(test.CannedDirectorResponse()))

	body, contentType := directorForm(t, map[string]string{api.FormDuration: "sixteen"}, true)
	rec := s.do(http.MethodPost, "/api/v1/director", body, contentType)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body, contentType = directorForm(t, map[string]string{api.FormBrief: "no outfit"}, false)
	rec = s.do(http.MethodPost, "/api/v1/director", body, contentType)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "outfit image is required")

	assert.Empty(t, s.model.Calls())
}

func TestDirector_NotAnImage(t *testing.T) {
	s := newServer(t, test.NewFakeGenerator(test.CannedDirectorResponse()))
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(api.FormOutfit, "outfit.txt")
	require.NoError(t, err)
	_, _ = part.Write([]byte("plain text, not an image"))
	require.NoError(t, writer.Close())

	rec := s.do(http.MethodPost, "/api/v1/director", body, writer.FormDataContentType())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDirector_ModelNotConfigured(t *testing.T) {
	s := newServer(t, nil)
	body, contentType := directorForm(t, map[string]string{api.FormBrief: "brief"}, true)

	rec := s.do(http.MethodPost, "/api/v1/director", body, contentType)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestDirector_ModelQuotaError(t *testing.T) {
	generator := test.NewFakeGenerator()
	generator.Err = errors.New("Error 429, Message: Resource exhausted, Status: RESOURCE_EXHAUSTED")
	s := newServer(t, generator)
	body, contentType := directorForm(t, map[string]string{api.FormBrief: "brief"}, true)

	rec := s.do(http.MethodPost, "/api/v1/director", body, contentType)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	var out struct {
		Error  string                `json:"error"`
		Result *model.DirectorResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, cloud.QuotaExceededMessage, out.Error)
	require.NotNil(t, out.Result)
	assert.NotEmpty(t, out.Result.Suggestions)
}

func TestDirector_JSONWithoutStorage(t *testing.T) {
	s := newServer(t, test.NewFakeGenerator(test.CannedDirectorResponse()))

	rec := s.postJSON("/api/v1/director", map[string]interface{}{
		"brief":  "from json",
		"outfit": map[string]string{"uri": "gs://bucket/outfit.png"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "storage client not configured")
}

func TestExtract(t *testing.T) {
	s := newServer(t, nil)

	rec := s.postJSON("/api/v1/extract", map[string]string{"text": test.CannedDirectorResponse()})

	require.Equal(t, http.StatusOK, rec.Code)
	var out api.ExtractResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Contains(t, out.Sections.Master, "Young Vietnamese woman")
	assert.Len(t, out.Keyframe, 2)
	assert.Len(t, out.Scene, 2)

	rec = s.postJSON("/api/v1/extract", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExtract_Unstructured(t *testing.T) {
	s := newServer(t, nil)

	rec := s.postJSON("/api/v1/extract", map[string]string{"text": "no structure at all"})

	require.Equal(t, http.StatusOK, rec.Code)
	var out api.ExtractResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, model.Sentinel(model.FieldMaster), out.Sections.Master)
	assert.NotNil(t, out.Keyframe)
	assert.Empty(t, out.Keyframe)
}

func TestTools_BodyLimit(t *testing.T) {
	s := newServer(t, nil)
	text := strings.Repeat("x", (test.GetConfig().Server.MaxTextKB<<10)+1)

	rec := s.postJSON("/api/v1/extract", map[string]string{"text": text})
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	rec = s.postJSON("/api/v1/split", map[string]string{"text": text})
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestSplit(t *testing.T) {
	s := newServer(t, nil)

	rec := s.postJSON("/api/v1/split", map[string]string{
		"text": "Image 1 (0s): A\n\nImage 2 (8s): B",
		"kind": "image",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Segments []model.Segment `json:"segments"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Segments, 2)
	assert.Equal(t, "Image 2 (8s)", out.Segments[1].Title)
	assert.Equal(t, "B", out.Segments[1].Content)

	rec = s.postJSON("/api/v1/split", map[string]string{"text": "x", "kind": "audio"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVaults(t *testing.T) {
	s := newServer(t, nil)
	ctx := context.Background()
	entry, err := s.journals.Locations().Record(ctx, "Hoi An riverside", "vietnam_central", "run-1")
	require.NoError(t, err)

	rec := s.do(http.MethodGet, "/api/v1/vaults/locations", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Name    string             `json:"name"`
		Slot    string             `json:"slot"`
		Entries []model.VaultEntry `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "locations", out.Name)
	assert.Equal(t, model.LocationVault.Slot(), out.Slot)
	require.Len(t, out.Entries, 1)
	assert.Equal(t, entry.ID, out.Entries[0].ID)

	rec = s.do(http.MethodDelete, "/api/v1/vaults/locations/entries/"+entry.ID, nil, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(http.MethodDelete, "/api/v1/vaults/locations/entries/"+entry.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	_, err = s.journals.Locations().Record(ctx, "Ba Na Hills", "vietnam_central", "run-2")
	require.NoError(t, err)
	rec = s.do(http.MethodDelete, "/api/v1/vaults/locations", nil, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, s.journals.Locations().Len())

	rec = s.do(http.MethodGet, "/api/v1/vaults/moods", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = s.do(http.MethodDelete, "/api/v1/vaults/moods", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSuggestions(t *testing.T) {
	s := newServer(t, nil)

	rec := s.do(http.MethodGet, "/api/v1/suggestions/locations?region=auto&count=3", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var locations struct {
		Locations []string `json:"locations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &locations))
	assert.Len(t, locations.Locations, 3)

	rec = s.do(http.MethodGet, "/api/v1/suggestions/studios?category=auto", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var studios struct {
		Studios []string `json:"studios"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &studios))
	assert.Len(t, studios.Studios, services.DefaultSuggestionCount)

	rec = s.do(http.MethodGet, "/api/v1/suggestions/locations?region=atlantis", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/suggestions/regions", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `"vietnam_north"`))
}

func TestHistory_NotConfigured(t *testing.T) {
	s := newServer(t, nil)

	rec := s.do(http.MethodGet, "/api/v1/history", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	rec = s.do(http.MethodGet, "/api/v1/history/abc", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestStats(t *testing.T) {
	s := newServer(t, nil)
	_, err := s.journals.OpeningLines().Record(context.Background(), "Ao dai that turns heads", "ao dai", "run-1")
	require.NoError(t, err)

	rec := s.do(http.MethodGet, "/api/v1/stats", nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Vaults  map[string]int `json:"vaults"`
		Steps   []string       `json:"steps"`
		History bool           `json:"history"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, 1, out.Vaults["opening_lines"])
	assert.Equal(t, 0, out.Vaults["locations"])
	assert.Contains(t, out.Steps, "director-generate")
	assert.False(t, out.History)
}
