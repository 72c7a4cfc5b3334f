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

// Package api defines the HTTP routes of the fashion director server. Each
// function in this package registers one route group on a *gin.RouterGroup;
// cmd/server mounts them all under `/api/v1`.
//
// Functions:
//   - Register: Mounts every route group.
//   - DirectorRouter: Runs the director workflow for a brief and reference images.
//   - ToolsRouter: Extraction and segment splitting on arbitrary text.
//   - VaultRouter: Lists and prunes the novelty vaults.
//   - SuggestionRouter: Unused locations and studios from the curated catalog.
//   - HistoryRouter: Past shot lists from BigQuery.
//   - Dashboard: Summary counters.
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jaycherian/gcp-go-fashion-director/internal/cloud"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/services"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/workflow"
)

// State holds the shared components the handlers use. History is nil when
// BigQuery is not configured.
type State struct {
	Config      *cloud.Config
	Workflow    *workflow.DirectorWorkflow
	Suggestions *services.SuggestionService
	History     *services.HistoryService
}

// Register mounts every route group on r.
func Register(r *gin.RouterGroup, state *State) {
	DirectorRouter(r, state)
	ToolsRouter(r, state)
	VaultRouter(r, state)
	SuggestionRouter(r, state)
	HistoryRouter(r, state)
	Dashboard(r, state)
}

// abort writes a JSON error body and stops the handler chain.
func abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// intQuery reads an integer query parameter, returning def when it is absent
// or malformed.
func intQuery(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}

// limitBody caps the request body at n bytes. Zero or less leaves it unbounded.
func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if n > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}

// bindStatus maps a body binding error to its status code.
func bindStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}
