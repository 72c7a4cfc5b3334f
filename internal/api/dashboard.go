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

// Package api defines the HTTP routes of the fashion director server. This
// file serves `/stats`, a summary for the dashboard header.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/model"
)

// Dashboard registers `/stats`: the size of every vault, the workflow steps
// and which optional features are enabled.
func Dashboard(r *gin.RouterGroup, state *State) {
	stats := r.Group("/stats")
	{
		stats.GET("", func(c *gin.Context) {
			vaults := make(map[model.VaultName]int, len(model.VaultNames))
			for _, name := range model.VaultNames {
				if v, ok := state.Suggestions.Journals.Vault(name); ok {
					vaults[name] = v.Len()
				}
			}
			c.JSON(http.StatusOK, gin.H{
				"vaults":  vaults,
				"steps":   state.Workflow.Steps(),
				"history": state.History != nil && state.History.BigqueryClient != nil,
			})
		})
	}
}
