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
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/pmflow/pmflow/pkg/measurement"
)

func sampleRecords() []measurement.Record {
	return []measurement.Record{
		{
			EndTime:    "2024-01-01T00:00:00",
			MeasInfoID: "A",
			MeasObjLdn: "Cell1",
			CounterID:  10,
			Value:      measurement.Float64(42),
			MeasType:   "attTCHSeizures",
		},
		{
			EndTime:    "2024-01-01T00:00:00",
			MeasInfoID: "A",
			MeasObjLdn: "Cell2",
			CounterID:  11,
			Value:      measurement.Str("NIL"),
		},
	}
}

func TestStreamSinkJSON(t *testing.T) {
	var buf bytes.Buffer
	s := NewStreamSink(FormatJSON, &buf)

	if err := s.Write(context.Background(), sampleRecords()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var back []measurement.Record
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("failed to unmarshal JSON output: %v", err)
	}
	if len(back) != 2 {
		t.Fatalf("expected 2 records, got %d", len(back))
	}
	if v, ok := back[0].Value.Any().(float64); !ok || v != 42 {
		t.Errorf("expected numeric 42, got %v", back[0].Value.Any())
	}
	if back[1].Value.Any() != "NIL" {
		t.Errorf("expected verbatim NIL, got %v", back[1].Value.Any())
	}
}

func TestStreamSinkYAML(t *testing.T) {
	var buf bytes.Buffer
	s := NewStreamSink(FormatYAML, &buf)

	if err := s.Write(context.Background(), sampleRecords()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var back []measurement.Record
	if err := yaml.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("failed to unmarshal YAML output: %v", err)
	}
	if len(back) != 2 {
		t.Fatalf("expected 2 records, got %d", len(back))
	}
}

func TestStreamSinkEmptyBatch(t *testing.T) {
	var buf bytes.Buffer
	s := NewStreamSink(FormatJSON, &buf)

	if err := s.Write(context.Background(), nil); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("expected empty array, got %q", buf.String())
	}
}

func TestStreamSinkUnknownFormatDefaultsToJSON(t *testing.T) {
	var buf bytes.Buffer
	s := NewStreamSink(Format("xml"), &buf)

	if err := s.Write(context.Background(), sampleRecords()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !json.Valid(buf.Bytes()) {
		t.Error("expected valid JSON output for unknown format")
	}
}

func TestFileStreamSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	s := NewFileStreamSinkOrStdout(FormatJSON, path)

	if err := s.Write(context.Background(), sampleRecords()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}
	if !json.Valid(b) {
		t.Error("expected valid JSON in output file")
	}
}

func TestStreamSinkCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	s := NewStreamSink(FormatJSON, &buf)
	if err := s.Write(ctx, sampleRecords()); err == nil {
		t.Fatal("expected error for canceled context")
	}
	if buf.Len() != 0 {
		t.Error("expected no output after canceled context")
	}
}
