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
// file reads past shot lists back from BigQuery.
package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/services"
)

// HistoryRouter registers the `/history` group. Every route answers 503
// when BigQuery is not configured.
func HistoryRouter(r *gin.RouterGroup, state *State) {
	history := r.Group("/history")
	history.Use(func(c *gin.Context) {
		if state.History == nil || state.History.BigqueryClient == nil {
			abort(c, http.StatusServiceUnavailable, "history is not configured")
			return
		}
		c.Next()
	})
	{
		history.GET("", func(c *gin.Context) {
			out, err := state.History.Recent(c.Request.Context(), intQuery(c, "limit", services.DefaultHistoryLimit))
			if err != nil {
				slog.ErrorContext(c.Request.Context(), "failed to read history", "error", err)
				abort(c, http.StatusInternalServerError, "failed to read history")
				return
			}
			c.JSON(http.StatusOK, out)
		})

		history.GET("/:id", func(c *gin.Context) {
			out, err := state.History.Get(c.Request.Context(), c.Param("id"))
			if errors.Is(err, services.ErrShotListNotFound) {
				abort(c, http.StatusNotFound, err.Error())
				return
			}
			if err != nil {
				slog.ErrorContext(c.Request.Context(), "failed to read shot list", "id", c.Param("id"), "error", err)
				abort(c, http.StatusInternalServerError, "failed to read shot list")
				return
			}
			c.JSON(http.StatusOK, out)
		})
	}
}
