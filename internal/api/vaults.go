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
// file lets an operator inspect and prune the novelty vaults.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/model"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/services"
)

// VaultRouter registers the `/vaults` group.
func VaultRouter(r *gin.RouterGroup, state *State) {
	vaults := r.Group("/vaults")
	{
		vaults.GET("/:name", func(c *gin.Context) {
			name := c.Param("name")
			entries, err := state.Suggestions.Entries(name)
			if err != nil {
				abort(c, http.StatusNotFound, err.Error())
				return
			}
			vaultName, _ := model.ParseVaultName(name)
			c.JSON(http.StatusOK, gin.H{
				"name":    vaultName,
				"slot":    vaultName.Slot(),
				"entries": entries,
			})
		})

		vaults.DELETE("/:name", func(c *gin.Context) {
			if err := state.Suggestions.Clear(c.Request.Context(), c.Param("name")); err != nil {
				vaultError(c, err)
				return
			}
			c.Status(http.StatusNoContent)
		})

		vaults.DELETE("/:name/entries/:id", func(c *gin.Context) {
			removed, err := state.Suggestions.Remove(c.Request.Context(), c.Param("name"), c.Param("id"))
			if err != nil {
				vaultError(c, err)
				return
			}
			if !removed {
				abort(c, http.StatusNotFound, "entry not found")
				return
			}
			c.Status(http.StatusNoContent)
		})
	}
}

// vaultError maps an unknown vault to 404. Store failures are 500: the
// in-memory change has been made but was not persisted.
func vaultError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrUnknownVault) {
		abort(c, http.StatusNotFound, err.Error())
		return
	}
	abort(c, http.StatusInternalServerError, err.Error())
}
