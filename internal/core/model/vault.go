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

package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// VaultName identifies one of the novelty vaults.
type VaultName string

const (
	LocationVault    VaultName = "locations"
	BackdropVault    VaultName = "backdrops"
	OpeningLineVault VaultName = "opening_lines"
)

// VaultNames lists every vault.
var VaultNames = []VaultName{LocationVault, BackdropVault, OpeningLineVault}

// Slot returns the durable slot a vault is persisted under. The names are
// shared with existing browser-side stores so exported journals load as-is.
func (n VaultName) Slot() string {
	switch n {
	case LocationVault:
		return "cinematic_location_vault_v2"
	case BackdropVault:
		return "studio_vault"
	case OpeningLineVault:
		return "tiktok_script_vault"
	}
	return string(n)
}

// ParseVaultName resolves a vault from its name or slot.
func ParseVaultName(in string) (VaultName, bool) {
	in = strings.ToLower(strings.TrimSpace(in))
	for _, n := range VaultNames {
		if in == string(n) || in == n.Slot() {
			return n, true
		}
	}
	return "", false
}

// VaultEntry is one past creative choice. Entries are never mutated after
// creation.
type VaultEntry struct {
	ID        string `json:"id"`
	Value     string `json:"value"`
	Category  string `json:"category"`
	Timestamp int64  `json:"timestamp"` // Unix milliseconds.
	Tag       string `json:"tag,omitempty"`
}

// UnmarshalJSON accepts the current shape as well as the per-vault legacy
// shapes ({location, region}, {studio, category}, {hook, productType}).
func (e *VaultEntry) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID          Scalar `json:"id"`
		Value       string `json:"value"`
		Location    string `json:"location"`
		Studio      string `json:"studio"`
		Hook        string `json:"hook"`
		Category    string `json:"category"`
		Region      string `json:"region"`
		Timestamp   Scalar `json:"timestamp"`
		Tag         string `json:"tag"`
		ProductType string `json:"productType"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	ts, _ := strconv.ParseFloat(raw.Timestamp.String(), 64)
	*e = VaultEntry{
		ID:        raw.ID.String(),
		Value:     firstNonBlank(raw.Value, raw.Location, raw.Studio, raw.Hook),
		Category:  firstNonBlank(raw.Category, raw.Region),
		Timestamp: int64(ts),
		Tag:       firstNonBlank(raw.Tag, raw.ProductType),
	}
	return nil
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
