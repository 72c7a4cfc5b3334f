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

// Package cor (Chain of Responsibility) holds the pieces every director
// workflow is assembled from. A workflow is a chain of commands sharing one
// Context; each command reads what earlier steps left behind, does one job
// (build a prompt, call a model, extract sections, record novelty) and
// writes its result back.
package cor

import (
	"context"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// CtxIn and CtxOut are the keys a BaseChain pipes between adjacent commands.
const (
	// CtxIn holds the primary input of the running command. The chain fills it
	// with the previous command's CtxOut.
	CtxIn = "__IN__"
	// CtxOut is where a command leaves its primary output.
	CtxOut = "__OUT__"
)

// Context is the shared state of one workflow run.
type Context interface {
	// SetContext sets the Go context used for cancellation and tracing.
	SetContext(context context.Context)

	// GetContext returns the current Go context.
	GetContext() context.Context

	// Add stores a value under key and returns the Context for chaining.
	Add(key string, value interface{}) Context

	// AddError records a failure under the name of the command that hit it.
	AddError(key string, err error)

	// GetErrors returns every recorded failure keyed by command name.
	GetErrors() map[string]error

	// Get returns the value stored under key, or nil.
	Get(key string) interface{}

	// Remove deletes key.
	Remove(key string)

	// HasErrors reports whether any command failed.
	HasErrors() bool

	// Close releases what the run acquired. Defer it right after creation.
	Close()
}

// Executable is anything with a unit of work to run against a Context.
type Executable interface {
	Execute(context Context)
}

// Command is one step of a workflow.
type Command interface {
	Executable

	// GetName returns the name used in spans, metrics and error keys.
	GetName() string

	// GetInputParam returns the key of the command's primary input.
	GetInputParam() string

	// GetOutputParam returns the key of the command's primary output.
	GetOutputParam() string

	// IsExecutable is the precondition checked before Execute.
	IsExecutable(context Context) bool

	GetTracer() trace.Tracer
	GetMeter() metric.Meter
	GetSuccessCounter() metric.Int64Counter
	GetErrorCounter() metric.Int64Counter
}

// Chain is an ordered list of commands that is itself a Command, so chains
// nest.
type Chain interface {
	Command

	// ContinueOnFailure makes the chain run the remaining commands after one
	// of them records an error.
	ContinueOnFailure(bool) Chain

	// AddCommand appends a command.
	AddCommand(command Command) Chain
}
