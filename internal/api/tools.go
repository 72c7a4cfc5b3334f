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
// file exposes the extraction pipeline and the segment splitter on their
// own, for responses produced outside the director workflow.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/extract"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/model"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/segment"
)

// ExtractRequest is the body of `POST /extract`.
type ExtractRequest struct {
	Text string `json:"text" binding:"required"`
}

// ExtractResponse holds the sections of a response and the keyframe and
// scene segments cut from them.
type ExtractResponse struct {
	Sections model.ExtractedSections `json:"sections"`
	Keyframe []model.Segment         `json:"keyframe_segments"`
	Scene    []model.Segment         `json:"scene_segments"`
}

// SplitRequest is the body of `POST /split`.
type SplitRequest struct {
	Text string            `json:"text" binding:"required"`
	Kind model.SegmentKind `json:"kind"`
}

// ToolsRouter registers `/extract` and `/split`. Bodies larger than
// server.max_text_kb are answered with 413.
func ToolsRouter(r *gin.RouterGroup, state *State) {
	tools := r.Group("", limitBody(int64(state.Config.Server.MaxTextKB)<<10))
	tools.POST("/extract", func(c *gin.Context) {
		var in ExtractRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			abort(c, bindStatus(err), err.Error())
			return
		}
		sections := extract.Extract(in.Text)
		out := ExtractResponse{
			Sections: sections,
			Keyframe: []model.Segment{},
			Scene:    []model.Segment{},
		}
		if sections.IsAvailable(model.FieldKeyframes) {
			out.Keyframe = segment.Split(sections.Keyframes, model.ImageKind)
		}
		if sections.IsAvailable(model.FieldScenes) {
			out.Scene = segment.Split(sections.Scenes, model.SceneKind)
		}
		c.JSON(http.StatusOK, out)
	})

	tools.POST("/split", func(c *gin.Context) {
		var in SplitRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			abort(c, bindStatus(err), err.Error())
			return
		}
		switch in.Kind {
		case "":
			in.Kind = model.SceneKind
		case model.ImageKind, model.SceneKind:
		default:
			abort(c, http.StatusBadRequest, "kind must be image or scene")
			return
		}
		c.JSON(http.StatusOK, gin.H{"segments": segment.Split(in.Text, in.Kind)})
	})
}
