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
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/pmflow/pmflow/pkg/errors"
	"github.com/pmflow/pmflow/pkg/measurement"
)

// Namespace is the 3GPP TS 32.435 measurement collection namespace. Only
// measInfo elements in this namespace are considered.
const Namespace = "http://www.3gpp.org/ftp/specs/archive/32_series/32.435#measCollec"

// Wire-format element shapes. The "p" attributes are kept as strings here:
// the counter-name table is keyed by the opaque attribute text, and only the
// r element's index is parsed into an integer counterId.
type measInfo struct {
	ID         string      `xml:"measInfoId,attr"`
	GranPeriod *granPeriod `xml:"http://www.3gpp.org/ftp/specs/archive/32_series/32.435#measCollec granPeriod"`
	Types      []measType  `xml:"http://www.3gpp.org/ftp/specs/archive/32_series/32.435#measCollec measType"`
	Values     []measValue `xml:"http://www.3gpp.org/ftp/specs/archive/32_series/32.435#measCollec measValue"`
}

type granPeriod struct {
	Duration string `xml:"duration,attr"`
	EndTime  string `xml:"endTime,attr"`
}

type measType struct {
	P    string `xml:"p,attr"`
	Name string `xml:",chardata"`
}

type measValue struct {
	ObjLdn   string   `xml:"measObjLdn,attr"`
	Readings []rValue `xml:"http://www.3gpp.org/ftp/specs/archive/32_series/32.435#measCollec r"`
}

type rValue struct {
	P    string `xml:"p,attr"`
	Text string `xml:",chardata"`
}

// Extract parses one PM measurement file and projects it into flat records
// satisfying the filter. The returned slice mirrors document order: block,
// then value group, then reading.
//
// Extraction is all-or-nothing per file: any parse or structural failure is
// surfaced as a single EXTRACTION_FAILED error carrying the path, and partial
// results are discarded. A well-formed file with no matching blocks, groups,
// or readings yields an empty slice and no error.
func Extract(path string, filter measurement.Filter) ([]measurement.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, extractionError(path, "failed to open measurement file", err)
	}
	defer f.Close()

	records, err := extract(f, filter)
	if err != nil {
		return nil, extractionError(path, "failed to process measurement file", err)
	}
	return records, nil
}

// extract runs the projection against an already-open document stream.
// Split out so tests can feed documents without touching the file system.
func extract(r io.Reader, filter measurement.Filter) ([]measurement.Record, error) {
	d := xml.NewDecoder(r)
	// PM files in the field are frequently ISO-8859-1 or UTF-16; honor the
	// document's encoding declaration instead of assuming UTF-8.
	d.CharsetReader = charset.NewReaderLabel

	var records []measurement.Record
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Space != Namespace || start.Name.Local != "measInfo" {
			continue
		}

		var mi measInfo
		if err := d.DecodeElement(&mi, &start); err != nil {
			return nil, err
		}

		block, err := project(mi, filter)
		if err != nil {
			return nil, err
		}
		records = append(records, block...)
	}

	return records, nil
}

// project flattens one measInfo block into records. The block's counter-name
// table and granularity-period end time scope every record it contributes.
func project(mi measInfo, filter measurement.Filter) ([]measurement.Record, error) {
	// A filtered-out block is skipped before structural validation, so an
	// irrelevant malformed block never fails the file.
	if !filter.MatchInfo(mi.ID) {
		return nil, nil
	}

	if mi.GranPeriod == nil {
		return nil, fmt.Errorf("measInfo %q has no granPeriod element", mi.ID)
	}
	if mi.GranPeriod.EndTime == "" {
		return nil, fmt.Errorf("measInfo %q granPeriod has no endTime", mi.ID)
	}
	endTime := mi.GranPeriod.EndTime

	// Counter-name table keyed by the opaque "p" text; last occurrence wins.
	names := make(map[string]string, len(mi.Types))
	for _, mt := range mi.Types {
		names[mt.P] = strings.TrimSpace(mt.Name)
	}

	var records []measurement.Record
	for _, mv := range mi.Values {
		if !filter.MatchObj(mv.ObjLdn) {
			continue
		}

		for _, rv := range mv.Readings {
			p, err := strconv.Atoi(strings.TrimSpace(rv.P))
			if err != nil {
				return nil, fmt.Errorf("measInfo %q: reading has non-integer p attribute %q", mi.ID, rv.P)
			}
			if !filter.MatchCounter(p) {
				continue
			}

			records = append(records, measurement.Record{
				EndTime:    endTime,
				MeasInfoID: mi.ID,
				MeasObjLdn: mv.ObjLdn,
				CounterID:  p,
				Value:      parseValue(rv.Text),
				MeasType:   names[rv.P],
			})
		}
	}

	return records, nil
}

// parseValue applies the numeric-or-verbatim rule. Surrounding whitespace is
// ignored for the numeric parse but the original text is kept untouched when
// the reading is not a number.
func parseValue(text string) measurement.Reading {
	if _, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err == nil {
		return measurement.ParseReading(strings.TrimSpace(text))
	}
	return measurement.Str(text)
}

func extractionError(path, msg string, cause error) error {
	return errors.WrapWithContext(errors.ErrCodeExtraction, msg, cause, map[string]any{
		"path": path,
	})
}
