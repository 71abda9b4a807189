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
	"encoding/csv"
	"log/slog"
	"os"
	"strconv"

	"github.com/pmflow/pmflow/pkg/errors"
	"github.com/pmflow/pmflow/pkg/measurement"
)

// csvHeader matches the column layout of the other tabular sinks.
var csvHeader = []string{"endTime", "measInfoId", "measObjLdn", "p", "value", "measType"}

// CSVSink writes the aggregate as a delimited text file.
type CSVSink struct {
	path string
}

// NewCSVSink creates a CSV sink writing to the given path.
func NewCSVSink(path string) *CSVSink {
	return &CSVSink{path: path}
}

// Write creates the CSV file and writes one row per record. An empty batch
// produces no file.
func (s *CSVSink) Write(ctx context.Context, records []measurement.Record) error {
	if len(records) == 0 {
		slog.Warn("no data to write to CSV")
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Create(s.path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeSink, "failed to create CSV file", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return errors.Wrap(errors.ErrCodeSink, "failed to write CSV header", err)
	}
	for _, rec := range records {
		row := []string{
			rec.EndTime,
			rec.MeasInfoID,
			rec.MeasObjLdn,
			strconv.Itoa(rec.CounterID),
			rec.Value.String(),
			rec.MeasType,
		}
		if err := w.Write(row); err != nil {
			return errors.Wrap(errors.ErrCodeSink, "failed to write CSV row", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrap(errors.ErrCodeSink, "failed to flush CSV", err)
	}

	slog.Info("data written to CSV file", "path", s.path, "records", len(records))
	return nil
}
