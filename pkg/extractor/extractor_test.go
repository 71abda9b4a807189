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

package extractor

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pmflow/pmflow/pkg/errors"
	"github.com/pmflow/pmflow/pkg/measurement"
)

const ns = Namespace

// doc wraps measInfo markup into a minimal measurement collection document.
func doc(body string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<measCollecFile xmlns=%q><measData>%s</measData></measCollecFile>`, ns, body)
}

const blockA = `
<measInfo measInfoId="A">
  <granPeriod duration="PT3600S" endTime="2024-01-01T00:00:00"/>
  <measType p="10">attTCHSeizures</measType>
  <measValue measObjLdn="Cell1">
    <r p="10">42</r>
  </measValue>
</measInfo>`

func TestExtractSingleRecordScenario(t *testing.T) {
	records, err := extract(strings.NewReader(doc(blockA)), measurement.Filter{})
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected exactly 1 record, got %d", len(records))
	}

	rec := records[0]
	if rec.EndTime != "2024-01-01T00:00:00" {
		t.Errorf("unexpected endTime: %q", rec.EndTime)
	}
	if rec.MeasInfoID != "A" {
		t.Errorf("unexpected measInfoId: %q", rec.MeasInfoID)
	}
	if rec.MeasObjLdn != "Cell1" {
		t.Errorf("unexpected measObjLdn: %q", rec.MeasObjLdn)
	}
	if rec.CounterID != 10 {
		t.Errorf("unexpected counterId: %d", rec.CounterID)
	}
	if v, ok := rec.Value.Any().(float64); !ok || v != 42.0 {
		t.Errorf("expected numeric value 42.0, got %v", rec.Value.Any())
	}
	if rec.MeasType != "attTCHSeizures" {
		t.Errorf("unexpected measType: %q", rec.MeasType)
	}
}

func TestExtractFilters(t *testing.T) {
	body := `
<measInfo measInfoId="A">
  <granPeriod duration="PT3600S" endTime="2024-01-01T00:00:00"/>
  <measType p="10">attTCHSeizures</measType>
  <measType p="11">succTCHSeizures</measType>
  <measValue measObjLdn="Cell1">
    <r p="10">1</r>
    <r p="11">2</r>
  </measValue>
  <measValue measObjLdn="Cell2">
    <r p="10">3</r>
    <r p="11">4</r>
  </measValue>
</measInfo>
<measInfo measInfoId="B">
  <granPeriod duration="PT3600S" endTime="2024-01-01T00:00:00"/>
  <measValue measObjLdn="Cell1">
    <r p="10">5</r>
  </measValue>
</measInfo>`

	tests := []struct {
		name   string
		filter measurement.Filter
		want   int
	}{
		{name: "no filter", filter: measurement.Filter{}, want: 5},
		{name: "info filter restricts blocks", filter: measurement.Filter{MeasInfoID: "A"}, want: 4},
		{name: "info filter no match", filter: measurement.Filter{MeasInfoID: "Z"}, want: 0},
		{name: "obj filter restricts groups", filter: measurement.Filter{ObjLdns: []string{"Cell2"}}, want: 2},
		{name: "counter filter restricts readings", filter: measurement.Filter{}.Counter(10), want: 3},
		{name: "counter filter no match", filter: measurement.Filter{}.Counter(99), want: 0},
		{
			name:   "conjunction is intersection",
			filter: measurement.Filter{MeasInfoID: "A", ObjLdns: []string{"Cell2"}}.Counter(11),
			want:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := extract(strings.NewReader(doc(body)), tt.filter)
			if err != nil {
				t.Fatalf("extract failed: %v", err)
			}
			if len(records) != tt.want {
				t.Errorf("expected %d records, got %d", tt.want, len(records))
			}
		})
	}
}

func TestExtractNonNumericValuePreserved(t *testing.T) {
	body := `
<measInfo measInfoId="A">
  <granPeriod duration="PT3600S" endTime="2024-01-01T00:00:00"/>
  <measValue measObjLdn="Cell1">
    <r p="10">NIL</r>
    <r p="11">3.14</r>
    <r p="12"></r>
  </measValue>
</measInfo>`

	records, err := extract(strings.NewReader(doc(body)), measurement.Filter{})
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	if records[0].Value.Any() != "NIL" {
		t.Errorf("expected raw text NIL, got %v", records[0].Value.Any())
	}
	if v, ok := records[1].Value.Any().(float64); !ok || v != 3.14 {
		t.Errorf("expected numeric 3.14, got %v", records[1].Value.Any())
	}
	if records[2].Value.Any() != "" {
		t.Errorf("expected empty raw text, got %v", records[2].Value.Any())
	}
}

func TestExtractMeasTypeLookup(t *testing.T) {
	body := `
<measInfo measInfoId="A">
  <granPeriod duration="PT3600S" endTime="2024-01-01T00:00:00"/>
  <measType p="1">first</measType>
  <measType p="1">last</measType>
  <measValue measObjLdn="Cell1">
    <r p="1">10</r>
    <r p="2">20</r>
  </measValue>
</measInfo>`

	records, err := extract(strings.NewReader(doc(body)), measurement.Filter{})
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	// Duplicate counter indices: the last declaration wins.
	if records[0].MeasType != "last" {
		t.Errorf("expected duplicate index to resolve to last name, got %q", records[0].MeasType)
	}
	// Unregistered index: measType is absent, not an error.
	if records[1].MeasType != "" {
		t.Errorf("expected absent measType, got %q", records[1].MeasType)
	}
}

func TestExtractMissingGranPeriod(t *testing.T) {
	body := `
<measInfo measInfoId="A">
  <measValue measObjLdn="Cell1">
    <r p="1">10</r>
  </measValue>
</measInfo>`

	// Missing granPeriod fails the whole file.
	if _, err := extract(strings.NewReader(doc(body)), measurement.Filter{}); err == nil {
		t.Fatal("expected error for missing granPeriod")
	}

	// Unless the block is filtered out before it is ever projected.
	records, err := extract(strings.NewReader(doc(body)), measurement.Filter{MeasInfoID: "B"})
	if err != nil {
		t.Fatalf("expected filtered-out malformed block to be skipped, got %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

func TestExtractMissingEndTime(t *testing.T) {
	body := `
<measInfo measInfoId="A">
  <granPeriod duration="PT3600S"/>
  <measValue measObjLdn="Cell1">
    <r p="1">10</r>
  </measValue>
</measInfo>`

	if _, err := extract(strings.NewReader(doc(body)), measurement.Filter{}); err == nil {
		t.Fatal("expected error for granPeriod without endTime")
	}
}

func TestExtractNonIntegerCounterIndex(t *testing.T) {
	body := `
<measInfo measInfoId="A">
  <granPeriod duration="PT3600S" endTime="2024-01-01T00:00:00"/>
  <measValue measObjLdn="Cell1">
    <r p="x1">10</r>
  </measValue>
</measInfo>`

	if _, err := extract(strings.NewReader(doc(body)), measurement.Filter{}); err == nil {
		t.Fatal("expected error for non-integer p attribute")
	}
}

func TestExtractEmptyDocument(t *testing.T) {
	records, err := extract(strings.NewReader(doc("")), measurement.Filter{})
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected empty result, got %d records", len(records))
	}
}

func TestExtractIgnoresForeignNamespace(t *testing.T) {
	input := `<?xml version="1.0"?>
<measCollecFile xmlns="urn:example:other">
  <measData>
    <measInfo measInfoId="A">
      <granPeriod endTime="2024-01-01T00:00:00"/>
      <measValue measObjLdn="Cell1"><r p="1">1</r></measValue>
    </measInfo>
  </measData>
</measCollecFile>`

	records, err := extract(strings.NewReader(input), measurement.Filter{})
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected foreign-namespace blocks to be ignored, got %d records", len(records))
	}
}

func TestExtractDocumentOrder(t *testing.T) {
	records, err := Extract(filepath.Join("testdata", "A20240101.0000-0100.xml"), measurement.Filter{})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	want := []struct {
		info    string
		obj     string
		counter int
	}{
		{"A", "Cell1", 10},
		{"A", "Cell1", 11},
		{"A", "Cell2", 10},
		{"A", "Cell2", 11},
		{"B", "Cell1", 1},
	}
	if len(records) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(records))
	}
	for i, w := range want {
		if records[i].MeasInfoID != w.info || records[i].MeasObjLdn != w.obj || records[i].CounterID != w.counter {
			t.Errorf("record %d out of order: got {%s %s %d}, want {%s %s %d}",
				i, records[i].MeasInfoID, records[i].MeasObjLdn, records[i].CounterID, w.info, w.obj, w.counter)
		}
	}
}

func TestExtractMalformedFile(t *testing.T) {
	_, err := Extract(filepath.Join("testdata", "A20240101.malformed.xml"), measurement.Filter{})
	if err == nil {
		t.Fatal("expected error for malformed XML")
	}
	if !errors.IsCode(err, errors.ErrCodeExtraction) {
		t.Errorf("expected EXTRACTION_FAILED code, got %v", err)
	}
}

func TestExtractMissingFile(t *testing.T) {
	_, err := Extract(filepath.Join("testdata", "no-such-file.xml"), measurement.Filter{})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.IsCode(err, errors.ErrCodeExtraction) {
		t.Errorf("expected EXTRACTION_FAILED code, got %v", err)
	}
}
