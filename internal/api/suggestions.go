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
// file serves the curated catalog and samples of it that no past run used.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/catalog"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/services"
)

// SuggestionRouter registers the `/suggestions` group.
func SuggestionRouter(r *gin.RouterGroup, state *State) {
	suggestions := r.Group("/suggestions")
	{
		suggestions.GET("/regions", func(c *gin.Context) {
			c.JSON(http.StatusOK, catalog.Regions())
		})

		suggestions.GET("/categories", func(c *gin.Context) {
			c.JSON(http.StatusOK, catalog.StudioCategories())
		})

		suggestions.GET("/locations", func(c *gin.Context) {
			out, err := state.Suggestions.Locations(c.Query("region"), intQuery(c, "count", services.DefaultSuggestionCount))
			if err != nil {
				abort(c, http.StatusBadRequest, err.Error())
				return
			}
			c.JSON(http.StatusOK, gin.H{"locations": out})
		})

		suggestions.GET("/studios", func(c *gin.Context) {
			out, err := state.Suggestions.Studios(c.Query("category"), intQuery(c, "count", services.DefaultSuggestionCount))
			if err != nil {
				abort(c, http.StatusBadRequest, err.Error())
				return
			}
			c.JSON(http.StatusOK, gin.H{"studios": out})
		})
	}
}
