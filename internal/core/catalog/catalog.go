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

// Package catalog holds the curated pools the director draws suggestions
// from: real-world shooting locations grouped by region and themed studio
// backdrops grouped by product category. Pools are static; novelty filtering
// against past runs happens in the novelty package.
//
// Studio entries follow the "<name> | <details>" convention. The part before
// the separator is what past backdrops are compared against.
package catalog

import (
	"slices"
	"strings"
)

// Auto selects every region or every studio category.
const Auto = "auto"

// Region is a named group of shooting locations.
type Region struct {
	Key         string   `json:"key"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
	Locations   []string `json:"locations"`
}

// StudioCategory is a named group of studio backdrops suited to one kind of
// product.
type StudioCategory struct {
	Key         string   `json:"key"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
	Studios     []string `json:"studios"`
}

// Regions returns a copy of every region in display order.
func Regions() []Region {
	out := make([]Region, len(regions))
	for i, r := range regions {
		r.Locations = slices.Clone(r.Locations)
		out[i] = r
	}
	return out
}

// StudioCategories returns a copy of every studio category in display order.
func StudioCategories() []StudioCategory {
	out := make([]StudioCategory, len(studioCategories))
	for i, c := range studioCategories {
		c.Studios = slices.Clone(c.Studios)
		out[i] = c
	}
	return out
}

// FindRegion looks a region up by key, ignoring case.
func FindRegion(key string) (Region, bool) {
	key = normalizeKey(key)
	for _, r := range regions {
		if r.Key == key {
			r.Locations = slices.Clone(r.Locations)
			return r, true
		}
	}
	return Region{}, false
}

// FindStudioCategory looks a studio category up by key, ignoring case.
func FindStudioCategory(key string) (StudioCategory, bool) {
	key = normalizeKey(key)
	for _, c := range studioCategories {
		if c.Key == key {
			c.Studios = slices.Clone(c.Studios)
			return c, true
		}
	}
	return StudioCategory{}, false
}

// LocationPool returns the locations of a region. A blank key or Auto
// returns the locations of every region; an unknown key returns nil.
func LocationPool(region string) []string {
	key := normalizeKey(region)
	if key == "" || key == Auto {
		var all []string
		for _, r := range regions {
			all = append(all, r.Locations...)
		}
		return all
	}
	if r, ok := FindRegion(key); ok {
		return r.Locations
	}
	return nil
}

// StudioPool returns the backdrops of a studio category. A blank key or Auto
// returns every backdrop; an unknown key returns nil.
func StudioPool(category string) []string {
	key := normalizeKey(category)
	if key == "" || key == Auto {
		var all []string
		for _, c := range studioCategories {
			all = append(all, c.Studios...)
		}
		return all
	}
	if c, ok := FindStudioCategory(key); ok {
		return c.Studios
	}
	return nil
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
