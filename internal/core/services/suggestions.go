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

// Package services contains the business logic behind the read side of the
// API. This file, `suggestions.go`, offers fresh candidates from the curated
// catalog and manages the novelty vaults on behalf of the HTTP handlers.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jaycherian/gcp-go-fashion-director/internal/core/catalog"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/model"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/novelty"
)

// DefaultSuggestionCount is used when a caller asks for zero or fewer items.
const DefaultSuggestionCount = 5

var (
	// ErrUnknownVault is returned for a vault name that is not one of model.VaultNames.
	ErrUnknownVault = errors.New("unknown vault")
	// ErrUnknownPool is returned for a region or studio category not in the catalog.
	ErrUnknownPool = errors.New("unknown region or category")
)

// SuggestionService pairs the curated catalog with the novelty vaults.
type SuggestionService struct {
	Journals *novelty.Journals
}

// NewSuggestionService is the constructor for SuggestionService.
func NewSuggestionService(journals *novelty.Journals) *SuggestionService {
	return &SuggestionService{Journals: journals}
}

func suggestionCount(count int) int {
	if count <= 0 {
		return DefaultSuggestionCount
	}
	return count
}

// Locations samples up to count locations of region that the location vault
// has not seen. An empty region or "auto" samples every region.
func (s *SuggestionService) Locations(region string, count int) ([]string, error) {
	pool := catalog.LocationPool(region)
	if pool == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPool, region)
	}
	return s.Journals.Locations().Sample(pool, suggestionCount(count)), nil
}

// Studios samples up to count studio backdrops of category that the
// backdrop vault has not seen.
func (s *SuggestionService) Studios(category string, count int) ([]string, error) {
	pool := catalog.StudioPool(category)
	if pool == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPool, category)
	}
	return s.Journals.Backdrops().Sample(pool, suggestionCount(count)), nil
}

func (s *SuggestionService) vault(name string) (*novelty.Vault, error) {
	vaultName, ok := model.ParseVaultName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVault, name)
	}
	v, ok := s.Journals.Vault(vaultName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVault, name)
	}
	return v, nil
}

// Entries lists a vault, newest first.
func (s *SuggestionService) Entries(name string) ([]model.VaultEntry, error) {
	v, err := s.vault(name)
	if err != nil {
		return nil, err
	}
	return v.Entries(), nil
}

// Clear empties a vault.
func (s *SuggestionService) Clear(ctx context.Context, name string) error {
	v, err := s.vault(name)
	if err != nil {
		return err
	}
	return v.Clear(ctx)
}

// Remove deletes one entry from a vault and reports whether it existed.
func (s *SuggestionService) Remove(ctx context.Context, name, id string) (bool, error) {
	v, err := s.vault(name)
	if err != nil {
		return false, err
	}
	return v.Remove(ctx, id)
}
