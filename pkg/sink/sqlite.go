// Copyright (c) 2025, pmflow authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sink

import (
	"context"
	"database/sql"
	"log/slog"

	// Registers the cgo-free "sqlite" database/sql driver.
	_ "modernc.org/sqlite"

	"github.com/pmflow/pmflow/pkg/errors"
	"github.com/pmflow/pmflow/pkg/measurement"
)

const (
	sqliteSchema = `
CREATE TABLE IF NOT EXISTS measData (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    endTime TIMESTAMP,
    measInfoId VARCHAR,
    measObjLdn VARCHAR,
    p INTEGER,
    value,
    measType VARCHAR,
    UNIQUE(endTime, measInfoId, measObjLdn, p)
);
CREATE INDEX IF NOT EXISTS idx_measData_time ON measData(endTime);
CREATE INDEX IF NOT EXISTS idx_measData_info ON measData(measInfoId);`

	sqliteInsert = `
INSERT OR REPLACE INTO measData (endTime, measInfoId, measObjLdn, p, value, measType)
VALUES (?, ?, ?, ?, ?, ?)`
)

// SQLiteSink writes the aggregate into a SQLite database file. Re-running
// against the same file upserts on the (endTime, measInfoId, measObjLdn, p)
// key rather than duplicating rows.
type SQLiteSink struct {
	path string
}

// NewSQLiteSink creates a SQLite sink writing to the given database file.
func NewSQLiteSink(path string) *SQLiteSink {
	return &SQLiteSink{path: path}
}

// Write opens (creating if needed) the database and inserts all records in
// one transaction. An empty batch leaves the database untouched.
func (s *SQLiteSink) Write(ctx context.Context, records []measurement.Record) error {
	if len(records) == 0 {
		slog.Warn("no data to write to SQLite")
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeSink, "failed to open SQLite database", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return errors.Wrap(errors.ErrCodeSink, "failed to create SQLite schema", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(errors.ErrCodeSink, "failed to begin transaction", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, sqliteInsert)
	if err != nil {
		return errors.Wrap(errors.ErrCodeSink, "failed to prepare insert", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx,
			rec.EndTime,
			rec.MeasInfoID,
			rec.MeasObjLdn,
			rec.CounterID,
			rec.Value.Any(),
			nullable(rec.MeasType),
		); err != nil {
			return errors.Wrap(errors.ErrCodeSink, "failed to insert record", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(errors.ErrCodeSink, "failed to commit transaction", err)
	}

	slog.Info("data written to SQLite database", "path", s.path, "records", len(records))
	return nil
}

// nullable maps an absent measType to SQL NULL instead of an empty string.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
