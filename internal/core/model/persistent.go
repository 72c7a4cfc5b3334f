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

// Package model defines the core data structures for the application.
// This file, `persistent.go`, holds the structures written to BigQuery. Field
// tags map struct fields onto table columns for the streaming inserter and for
// row scans in the history service.
package model

import (
	"time"

	"github.com/google/uuid"
)

// ShotListRecord is one completed director run as stored in BigQuery.
type ShotListRecord struct {
	ID            string    `json:"id" bigquery:"id"`
	CreateDate    time.Time `json:"create_date" bigquery:"create_date"`
	Mode          string    `json:"mode" bigquery:"mode"`
	Brief         string    `json:"brief" bigquery:"brief"`
	Location      string    `json:"location" bigquery:"location"`
	Backdrop      string    `json:"backdrop" bigquery:"backdrop"`
	OpeningLine   string    `json:"opening_line" bigquery:"opening_line"`
	Master        string    `json:"master" bigquery:"master"`
	Keyframes     string    `json:"keyframes" bigquery:"keyframes"`
	Scenes        string    `json:"scenes" bigquery:"scenes"`
	RefinedScenes string    `json:"refined_scenes" bigquery:"refined_scenes"`
	Metadata      string    `json:"metadata" bigquery:"metadata"`
	Structured    bool      `json:"structured" bigquery:"structured"`
	FullText      string    `json:"full_text" bigquery:"full_text"`
}

// NewShotListRecord builds a record from a finished run. The record reuses the
// result id so API responses and warehouse rows can be joined.
func NewShotListRecord(req *DirectorRequest, res *DirectorResult) *ShotListRecord {
	id := res.ID
	if id == "" {
		id = uuid.NewString()
	}
	out := &ShotListRecord{
		ID:            id,
		CreateDate:    time.Now(),
		FullText:      res.FullText,
		RefinedScenes: res.RefinedScenes,
	}
	if req != nil {
		out.Mode = req.Mode
		out.Brief = req.Brief
	}
	if res.Choices != nil {
		out.Location = res.Choices[string(LocationVault)]
		out.Backdrop = res.Choices[string(BackdropVault)]
		out.OpeningLine = res.Choices[string(OpeningLineVault)]
	}
	if s := res.Sections; s != nil {
		out.Master = s.Master
		out.Keyframes = s.Keyframes
		out.Scenes = s.Scenes
		out.Metadata = s.Metadata
		out.Structured = s.Payload != nil
	}
	return out
}
