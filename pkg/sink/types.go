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
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pmflow/pmflow/pkg/measurement"
)

// Sink accepts the full aggregated record sequence of one run. The runner
// calls Write exactly once per run, with a possibly empty slice.
type Sink interface {
	Write(ctx context.Context, records []measurement.Record) error
}

// Closer is an optional interface that Sinks can implement if they need to
// release resources (e.g., close file handles).
type Closer interface {
	Close() error
}

// Kind identifies an output sink implementation.
type Kind string

const (
	// KindCSV writes a delimited text file.
	KindCSV Kind = "csv"
	// KindSQLite writes a SQLite database file.
	KindSQLite Kind = "sqlite"
	// KindExcel writes an xlsx workbook.
	KindExcel Kind = "excel"
	// KindJSON streams JSON to a file or stdout.
	KindJSON Kind = "json"
	// KindYAML streams YAML to a file or stdout.
	KindYAML Kind = "yaml"
)

func (k Kind) IsUnknown() bool {
	switch k {
	case KindCSV, KindSQLite, KindExcel, KindJSON, KindYAML:
		return false
	default:
		return true
	}
}

// SupportedKinds returns a list of all supported sink kinds.
func SupportedKinds() []string {
	return []string{
		string(KindCSV),
		string(KindSQLite),
		string(KindExcel),
		string(KindJSON),
		string(KindYAML),
	}
}

// New creates a sink of the given kind writing to path. An empty path selects
// a timestamped default filename, except for the stream kinds which then
// write to stdout.
func New(kind Kind, path string) (Sink, error) {
	switch kind {
	case KindCSV:
		return NewCSVSink(orDefault(path, "csv")), nil
	case KindSQLite:
		return NewSQLiteSink(orDefault(path, "db")), nil
	case KindExcel:
		return NewExcelSink(orDefault(path, "xlsx")), nil
	case KindJSON:
		return NewFileStreamSinkOrStdout(FormatJSON, path), nil
	case KindYAML:
		return NewFileStreamSinkOrStdout(FormatYAML, path), nil
	default:
		return nil, fmt.Errorf("unsupported sink kind: %q", kind)
	}
}

// orDefault returns path, or a collision-resistant default filename like
// pm_data_20240101_120000_1a2b3c4d.csv when path is empty.
func orDefault(path, ext string) string {
	if path != "" {
		return path
	}
	return fmt.Sprintf("pm_data_%s_%s.%s",
		time.Now().Format("20060102_150405"), uuid.NewString()[:8], ext)
}
