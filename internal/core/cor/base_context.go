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
// director workflows. This file defines `BaseContext`, the property bag that
// travels through a chain: the request, the prompt, the model text and the
// result all live here between steps, next to the errors collected on the
// way.
package cor

import (
	"context"
)

// BaseContext is the default implementation of the Context interface. It is
// owned by a single run and is not safe for concurrent use.
type BaseContext struct {
	data    map[string]interface{} // Values shared between commands.
	errors  map[string]error       // Failures keyed by command name.
	context context.Context        // Cancellation and span propagation.
}

// NewBaseContext returns an empty context.
func NewBaseContext() Context {
	return &BaseContext{
		data:   make(map[string]interface{}),
		errors: make(map[string]error),
	}
}

func (c *BaseContext) SetContext(context context.Context) {
	c.context = context
}

func (c *BaseContext) GetContext() context.Context {
	return c.context
}

// Close drops the stored values, reference image bytes included, so a
// finished run does not pin them. Recorded errors are kept.
func (c *BaseContext) Close() {
	clear(c.data)
}

func (c *BaseContext) Add(key string, value interface{}) Context {
	c.data[key] = value
	return c
}

// AddError records err under key. A later error for the same key replaces
// the earlier one.
func (c *BaseContext) AddError(key string, err error) {
	c.errors[key] = err
}

func (c *BaseContext) GetErrors() map[string]error {
	return c.errors
}

func (c *BaseContext) Get(key string) interface{} {
	return c.data[key]
}

func (c *BaseContext) Remove(key string) {
	delete(c.data, key)
}

func (c *BaseContext) HasErrors() bool {
	return len(c.errors) > 0
}
