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

package cor

import (
	"errors"
	"fmt"
	"sort"
)

// GetAs returns the value under key when it holds a T.
func GetAs[T any](context Context, key string) (T, bool) {
	var zero T
	if context == nil {
		return zero, false
	}
	value, ok := context.Get(key).(T)
	if !ok {
		return zero, false
	}
	return value, true
}

// HasAll reports whether every key holds a non-nil value.
func HasAll(context Context, keys ...string) bool {
	if context == nil {
		return false
	}
	for _, key := range keys {
		if context.Get(key) == nil {
			return false
		}
	}
	return true
}

// Err folds the recorded errors into one, ordered by command name so the
// message is stable. It returns nil when the run succeeded.
func Err(context Context) error {
	if context == nil || !context.HasErrors() {
		return nil
	}
	recorded := context.GetErrors()
	names := make([]string, 0, len(recorded))
	for name := range recorded {
		names = append(names, name)
	}
	sort.Strings(names)
	errs := make([]error, 0, len(names))
	for _, name := range names {
		errs = append(errs, fmt.Errorf("%s: %w", name, recorded[name]))
	}
	return errors.Join(errs...)
}
