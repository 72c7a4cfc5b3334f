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
// file handles `POST /director`, which accepts either a multipart form with
// image uploads or a JSON body whose images are gs:// references.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jaycherian/gcp-go-fashion-director/internal/cloud"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/commands"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/model"
)

// Form field names of the multipart director request.
const (
	FormBrief          = "brief"
	FormMode           = "mode"
	FormDuration       = "duration"
	FormAspectRatio    = "aspect_ratio"
	FormRegion         = "region"
	FormStudioCategory = "studio_category"
	FormProductType    = "product_type"
	FormLookbook       = "lookbook"
	FormFace           = "face"
	FormOutfit         = "outfit"
)

// DirectorRouter registers the director endpoint.
//
// Status codes:
//   - 200: The shot list, with any non-fatal warnings.
//   - 400: A malformed form or a request the director cannot run.
//   - 503: No director model is configured.
//   - 502: The model call or another step failed; the body carries a
//     readable message and the partial result.
func DirectorRouter(r *gin.RouterGroup, state *State) {
	director := r.Group("/director")
	{
		director.POST("", func(c *gin.Context) {
			maxBytes := int64(state.Config.Server.MaxUploadMB) << 20
			if maxBytes > 0 {
				c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
			}

			var req *model.DirectorRequest
			var err error
			if strings.HasPrefix(c.ContentType(), "multipart/") {
				req, err = readDirectorForm(c)
			} else {
				req = &model.DirectorRequest{}
				err = c.ShouldBindJSON(req)
			}
			if err != nil {
				abort(c, http.StatusBadRequest, err.Error())
				return
			}

			ctx := c.Request.Context()
			if limit := state.Config.Server.WorkflowLimit; limit > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, time.Duration(limit)*time.Second)
				defer cancel()
			}

			res, err := state.Workflow.Run(ctx, req)
			switch {
			case err == nil:
				c.JSON(http.StatusOK, res)
			case errors.Is(err, commands.ErrInvalidRequest):
				abort(c, http.StatusBadRequest, err.Error())
			case errors.Is(err, cloud.ErrModelNotConfigured):
				abort(c, http.StatusServiceUnavailable, cloud.ErrModelNotConfigured.Error())
			default:
				slog.ErrorContext(ctx, "director workflow failed", "error", err)
				c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{
					"error":  cloud.DescribeModelError(err),
					"result": res,
				})
			}
		})
	}
}

// readDirectorForm builds a request from the multipart form. The outfit
// upload is left to the workflow to require; a face upload is optional.
func readDirectorForm(c *gin.Context) (*model.DirectorRequest, error) {
	req := &model.DirectorRequest{
		Brief:          c.PostForm(FormBrief),
		Mode:           c.PostForm(FormMode),
		AspectRatio:    c.PostForm(FormAspectRatio),
		Region:         c.PostForm(FormRegion),
		StudioCategory: c.PostForm(FormStudioCategory),
		ProductType:    c.PostForm(FormProductType),
	}
	if v := strings.TrimSpace(c.PostForm(FormDuration)); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s must be a whole number of seconds: %q", FormDuration, v)
		}
		req.DurationSec = d
	}
	if v := strings.TrimSpace(c.PostForm(FormLookbook)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%s must be true or false: %q", FormLookbook, v)
		}
		req.Lookbook = b
	}

	var err error
	if req.Face, err = readImageFile(c, FormFace); err != nil {
		return nil, err
	}
	if req.Outfit, err = readImageFile(c, FormOutfit); err != nil {
		return nil, err
	}
	return req, nil
}

// readImageFile returns the uploaded image under field, or nil when the
// field is absent.
func readImageFile(c *gin.Context, field string) (*model.ReferenceImage, error) {
	header, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s upload: %w", field, err)
	}
	data, err := readUpload(header)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s upload: %w", field, err)
	}
	mimeType, err := cloud.SniffImage(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return &model.ReferenceImage{MIMEType: mimeType, Data: data}, nil
}

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer func(f multipart.File) {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close upload", "file", header.Filename, "error", err)
		}
	}(f)
	return io.ReadAll(f)
}
