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

// Package cor (Chain of Responsibility) provides the building blocks of the
// director workflows. This file defines `BaseCommand`, which every concrete
// command embeds to get:
//   - A name for spans, metrics and error keys.
//   - A tracer, a meter and success/error counters.
//   - Default input and output keys so a `BaseChain` can pipe values through.
package cor

import (
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// MeterName is the instrumentation scope of every command metric.
const MeterName = "github.com/jaycherian/gcp-go-fashion-director"

// BaseCommand is the default implementation of the Command interface.
type BaseCommand struct {
	Name            string              // Unique name, used for tracing and metrics.
	InputParamName  string              // Key of the primary input; CtxIn when empty.
	OutputParamName string              // Key of the primary output; CtxOut when empty.
	Tracer          trace.Tracer        // Tracer for the command's spans.
	Meter           metric.Meter        // Meter for command specific instruments.
	SuccessCounter  metric.Int64Counter // Incremented on success.
	ErrorCounter    metric.Int64Counter // Incremented on failure.
}

// NewBaseCommand creates a command named name with its telemetry wired to the
// global OpenTelemetry providers.
//
// Inputs:
//   - name: The command name, also the prefix of its counters.
//
// Outputs:
//   - *BaseCommand: The initialized command.
func NewBaseCommand(name string) *BaseCommand {
	meter := otel.Meter(MeterName)

	successCounter, err := meter.Int64Counter(fmt.Sprintf("%s.counter.success", name))
	if err != nil {
		slog.Warn("failed to create success counter", "command", name, "error", err)
	}
	errorCounter, err := meter.Int64Counter(fmt.Sprintf("%s.counter.error", name))
	if err != nil {
		slog.Warn("failed to create error counter", "command", name, "error", err)
	}

	return &BaseCommand{
		Name:           name,
		Tracer:         otel.Tracer(name),
		Meter:          meter,
		SuccessCounter: successCounter,
		ErrorCounter:   errorCounter,
	}
}

// GetName returns the name of the command.
func (c *BaseCommand) GetName() string {
	return c.Name
}

// IsExecutable reports whether the Go context is set and the input key holds
// a value. Commands that read named keys instead override it.
func (c *BaseCommand) IsExecutable(context Context) bool {
	return context != nil && context.Get(c.GetInputParam()) != nil && context.GetContext() != nil
}

// GetInputParam returns InputParamName, or CtxIn when it is unset.
func (c *BaseCommand) GetInputParam() string {
	if len(c.InputParamName) == 0 {
		return CtxIn
	}
	return c.InputParamName
}

// GetOutputParam returns OutputParamName, or CtxOut when it is unset.
func (c *BaseCommand) GetOutputParam() string {
	if len(c.OutputParamName) == 0 {
		return CtxOut
	}
	return c.OutputParamName
}

func (c *BaseCommand) GetTracer() trace.Tracer {
	return c.Tracer
}

func (c *BaseCommand) GetMeter() metric.Meter {
	return c.Meter
}

func (c *BaseCommand) GetSuccessCounter() metric.Int64Counter {
	return c.SuccessCounter
}

func (c *BaseCommand) GetErrorCounter() metric.Int64Counter {
	return c.ErrorCounter
}

// Fail counts a failure and records err on the context under the command name.
func (c *BaseCommand) Fail(context Context, err error) {
	c.ErrorCounter.Add(context.GetContext(), 1)
	context.AddError(c.GetName(), err)
}

// Succeed counts a success.
func (c *BaseCommand) Succeed(context Context) {
	c.SuccessCounter.Add(context.GetContext(), 1)
}
