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

// Package sink provides the output implementations that receive the
// aggregated record batch of one extraction run.
//
// The runner hands the full aggregate to a Sink exactly once per run.
// Available kinds:
//   - csv: delimited text file
//   - sqlite: SQLite database file with an upsert on the record identity
//   - excel: xlsx workbook with a styled header row
//   - json/yaml: stream to a file or stdout
//
// Usage:
//
//	s, err := sink.New(sink.KindCSV, "counters.csv")
//	if err != nil {
//	    return err
//	}
//	if err := s.Write(ctx, records); err != nil {
//	    return err
//	}
//	if c, ok := s.(sink.Closer); ok {
//	    defer c.Close()
//	}
package sink
