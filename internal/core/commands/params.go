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

// Package commands provides the concrete implementations of the Chain of
// Responsibility (COR) pattern's Command interface used by the director
// workflow. The commands share state through the keys below rather than
// through CtxIn/CtxOut alone, because several later steps need the request
// and the result at the same time.
package commands

import (
	"errors"

	"github.com/jaycherian/gcp-go-fashion-director/internal/core/cor"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/model"
)

// Context keys shared by the director commands.
const (
	ParamRequest = "__DIRECTOR_REQUEST__" // *model.DirectorRequest, normalized.
	ParamResult  = "__DIRECTOR_RESULT__"  // *model.DirectorResult, filled in step by step.
	ParamPrompt  = "__DIRECTOR_PROMPT__"  // string, the rendered director prompt.
)

// ErrInvalidRequest marks a request the director cannot run. The HTTP layer
// maps it to 400.
var ErrInvalidRequest = errors.New("invalid director request")

func requestOf(context cor.Context) *model.DirectorRequest {
	req, _ := cor.GetAs[*model.DirectorRequest](context, ParamRequest)
	return req
}

func resultOf(context cor.Context) *model.DirectorResult {
	res, _ := cor.GetAs[*model.DirectorResult](context, ParamResult)
	return res
}

// hasRun reports whether the Go context, the request and the result are all
// present.
func hasRun(context cor.Context) bool {
	return context != nil && context.GetContext() != nil && requestOf(context) != nil && resultOf(context) != nil
}
