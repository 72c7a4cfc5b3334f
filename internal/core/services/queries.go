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
// API. This file, `queries.go`, holds the BigQuery SQL used by the history
// service. The table name is formatted in with fmt.Sprintf; every value
// supplied by a caller travels as a named query parameter.
package services

const (
	// QryRecentShotLists returns the newest shot lists first.
	//
	// Placeholders:
	// - `%s`: The fully qualified name of the shot list table.
	// Parameters:
	// - `@limit`: The maximum number of rows.
	QryRecentShotLists = "SELECT * FROM `%s` ORDER BY create_date DESC LIMIT @limit"

	// QryFindShotListById looks up a single run by its result id.
	//
	// Placeholders:
	// - `%s`: The fully qualified name of the shot list table.
	// Parameters:
	// - `@id`: The result id.
	QryFindShotListById = "SELECT * FROM `%s` WHERE id = @id LIMIT 1"
)
