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
// Responsibility (COR) pattern's Command interface. This file defines the
// command that streams a finished shot list into BigQuery.
//
// Logic Flow:
//  1. Build a model.ShotListRecord from the request and the result.
//  2. Put it through the table's Inserter; the `bigquery` struct tags map
//     the fields onto columns.
//  3. A failed insert is a warning on the result. The shot list has already
//     been produced and the vaults updated, so the run is not failed for it.
package commands

import (
	"log/slog"

	"cloud.google.com/go/bigquery"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/cor"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/model"
)

// ShotListPersister is a command that saves a finished run to BigQuery.
type ShotListPersister struct {
	cor.BaseCommand
	client  *bigquery.Client
	dataset string
	table   string
}

// NewShotListPersister is the constructor for ShotListPersister.
//
// Inputs:
//   - name: A string name for this command instance.
//   - client: An initialized *bigquery.Client.
//   - dataset: The name of the BigQuery dataset.
//   - table: The name of the target table.
func NewShotListPersister(name string, client *bigquery.Client, dataset string, table string) *ShotListPersister {
	return &ShotListPersister{BaseCommand: *cor.NewBaseCommand(name), client: client, dataset: dataset, table: table}
}

func (s *ShotListPersister) IsExecutable(context cor.Context) bool {
	return s.client != nil && hasRun(context) && resultOf(context).Sections != nil
}

func (s *ShotListPersister) Execute(context cor.Context) {
	ctx := context.GetContext()
	res := resultOf(context)
	record := model.NewShotListRecord(requestOf(context), res)

	inserter := s.client.Dataset(s.dataset).Table(s.table).Inserter()
	if err := inserter.Put(ctx, record); err != nil {
		slog.ErrorContext(ctx, "failed to write shot list to bigquery", "id", record.ID, "error", err)
		s.GetErrorCounter().Add(ctx, 1)
		res.Warn("shot list was not saved to history")
		return
	}
	s.Succeed(context)
	slog.InfoContext(ctx, "persisted shot list", "id", record.ID, "table", s.table)
}
