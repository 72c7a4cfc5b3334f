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
// director workflows. This file defines `BaseChain`, the default `Chain`.
//
// Logic Flow:
//  1. `Execute` opens a span for the whole chain.
//  2. Before each command the chain stops if the Go context is done (the
//     cancellation is recorded as the chain's error) or if an earlier command
//     failed and `continueOnFailure` is false.
//  3. An executable command runs under its own child span. A command that is
//     not executable is skipped and its span marked as such.
//  4. After each command its `CtxOut` value is moved to `CtxIn`, so one
//     command's output is the next one's input. A nil output clears `CtxIn`.
//  5. The chain span ends with an Ok or Error status.
package cor

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// BaseChain runs its commands in order.
type BaseChain struct {
	BaseCommand
	continueOnFailure bool
	commands          []Command
}

// NewBaseChain creates an empty chain named name.
func NewBaseChain(name string) *BaseChain {
	return &BaseChain{BaseCommand: *NewBaseCommand(name)}
}

// ContinueOnFailure sets whether later commands still run after a failure.
func (c *BaseChain) ContinueOnFailure(continueOnFailure bool) Chain {
	c.continueOnFailure = continueOnFailure
	return c
}

// AddCommand appends command to the chain.
func (c *BaseChain) AddCommand(command Command) Chain {
	c.commands = append(c.commands, command)
	return c
}

// Commands returns the names of the commands in execution order.
func (c *BaseChain) Commands() []string {
	names := make([]string, 0, len(c.commands))
	for _, command := range c.commands {
		names = append(names, command.GetName())
	}
	return names
}

// IsExecutable only needs a Go context; commands check their own inputs.
func (c *BaseChain) IsExecutable(context Context) bool {
	return context != nil && context.GetContext() != nil
}

// Execute runs the commands against chCtx.
func (c *BaseChain) Execute(chCtx Context) {
	parentCtx := chCtx.GetContext()
	outerCtx, chainSpan := c.Tracer.Start(parentCtx, fmt.Sprintf("%s_execute", c.GetName()))
	defer chainSpan.End()
	defer chCtx.SetContext(parentCtx)

	for _, command := range c.commands {
		if err := outerCtx.Err(); err != nil {
			chCtx.AddError(c.GetName(), fmt.Errorf("canceled before %s: %w", command.GetName(), err))
			break
		}

		commandContext, commandSpan := c.Tracer.Start(outerCtx, command.GetName())
		if chCtx.HasErrors() && !c.continueOnFailure {
			commandSpan.SetStatus(codes.Error, "previous error on chain; skipping execution")
			commandSpan.End()
			break
		}

		if command.IsExecutable(chCtx) {
			chCtx.SetContext(commandContext)
			command.Execute(chCtx)
			chCtx.SetContext(outerCtx)
		} else {
			commandSpan.SetAttributes(attribute.Bool("command.skipped", true))
		}

		if _, failed := chCtx.GetErrors()[command.GetName()]; failed {
			commandSpan.SetStatus(codes.Error, "command failed")
		} else {
			commandSpan.SetStatus(codes.Ok, "command completed")
		}
		commandSpan.End()

		outputValue := chCtx.Get(CtxOut)
		chCtx.Remove(CtxIn)
		if outputValue != nil {
			chCtx.Add(CtxIn, outputValue)
		}
		chCtx.Remove(CtxOut)
	}

	if chCtx.HasErrors() {
		chainSpan.SetStatus(codes.Error, "chain failed to execute")
		c.ErrorCounter.Add(parentCtx, 1)
	} else {
		chainSpan.SetStatus(codes.Ok, "chain completed successfully")
		c.SuccessCounter.Add(parentCtx, 1)
	}
}
