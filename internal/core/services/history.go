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
// API. This file, `history.go`, defines the HistoryService, which reads past
// director runs back from the BigQuery table the ShotListPersister writes.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/bigquery"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/model"
	"google.golang.org/api/iterator"
)

// History limits.
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// ErrShotListNotFound is returned by Get when no row has the id.
var ErrShotListNotFound = errors.New("shot list not found")

// HistoryService is the data access layer for persisted shot lists.
type HistoryService struct {
	BigqueryClient *bigquery.Client // Client for interacting with Google BigQuery.
	DatasetName    string           // The name of the BigQuery dataset.
	ShotListTable  string           // The table written by the director workflow.
}

// GetFQN returns the table name in the `project.dataset.table` form used in
// standard SQL.
func (s *HistoryService) GetFQN() string {
	fqn := s.BigqueryClient.Dataset(s.DatasetName).Table(s.ShotListTable).FullyQualifiedName()
	return strings.Replace(fqn, ":", ".", -1)
}

// ClampLimit maps a requested page size into [1, MaxHistoryLimit], using
// DefaultHistoryLimit for values below one.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		return MaxHistoryLimit
	}
	return limit
}

// Recent returns up to limit shot lists, newest first.
//
// Inputs:
//   - ctx: The context for the query.
//   - limit: Requested page size, clamped with ClampLimit.
//
// Outputs:
//   - []*model.ShotListRecord: The rows, possibly empty.
//   - error: A query or row decoding failure.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]*model.ShotListRecord, error) {
	q := s.BigqueryClient.Query(fmt.Sprintf(QryRecentShotLists, s.GetFQN()))
	q.Parameters = []bigquery.QueryParameter{{Name: "limit", Value: ClampLimit(limit)}}
	itr, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query shot lists: %w", err)
	}

	out := make([]*model.ShotListRecord, 0)
	for {
		record := &model.ShotListRecord{}
		err := itr.Next(record)
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return out, fmt.Errorf("failed to read shot list row: %w", err)
		}
		out = append(out, record)
	}
	return out, nil
}

// Get returns the shot list with the given id.
func (s *HistoryService) Get(ctx context.Context, id string) (*model.ShotListRecord, error) {
	q := s.BigqueryClient.Query(fmt.Sprintf(QryFindShotListById, s.GetFQN()))
	q.Parameters = []bigquery.QueryParameter{{Name: "id", Value: id}}
	itr, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query shot list %s: %w", id, err)
	}
	record := &model.ShotListRecord{}
	if err := itr.Next(record); err != nil {
		if errors.Is(err, iterator.Done) {
			return nil, ErrShotListNotFound
		}
		return nil, err
	}
	return record, nil
}
