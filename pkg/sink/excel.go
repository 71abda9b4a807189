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
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/pmflow/pmflow/pkg/errors"
	"github.com/pmflow/pmflow/pkg/measurement"
)

const excelSheet = "PM Data"

var excelHeader = []string{"Time", "MeasInfoId", "MeasObjLdn", "P", "Value", "MeasType"}

// ExcelSink writes the aggregate as an xlsx workbook with a single sheet.
type ExcelSink struct {
	path string
}

// NewExcelSink creates an Excel sink writing to the given workbook path.
func NewExcelSink(path string) *ExcelSink {
	return &ExcelSink{path: path}
}

// Write builds the workbook in memory and saves it. Numeric readings are
// written as numbers so spreadsheet formulas work on them; raw text readings
// stay text. An empty batch produces no file.
func (s *ExcelSink) Write(ctx context.Context, records []measurement.Record) error {
	if len(records) == 0 {
		slog.Warn("no data to write to Excel")
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck // in-memory workbook

	if err := f.SetSheetName("Sheet1", excelSheet); err != nil {
		return errors.Wrap(errors.ErrCodeSink, "failed to name sheet", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"CCCCCC"}},
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeSink, "failed to create header style", err)
	}

	for col, name := range excelHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return errors.Wrap(errors.ErrCodeSink, "failed to compute header cell", err)
		}
		if err := f.SetCellValue(excelSheet, cell, name); err != nil {
			return errors.Wrap(errors.ErrCodeSink, "failed to write header cell", err)
		}
		if err := f.SetCellStyle(excelSheet, cell, cell, headerStyle); err != nil {
			return errors.Wrap(errors.ErrCodeSink, "failed to style header cell", err)
		}
	}

	for i, rec := range records {
		row := i + 2
		values := []any{
			rec.EndTime,
			rec.MeasInfoID,
			rec.MeasObjLdn,
			rec.CounterID,
			rec.Value.Any(),
			rec.MeasType,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return errors.Wrap(errors.ErrCodeSink, "failed to compute cell", err)
			}
			if err := f.SetCellValue(excelSheet, cell, v); err != nil {
				return errors.Wrap(errors.ErrCodeSink, fmt.Sprintf("failed to write cell %s", cell), err)
			}
		}
	}

	if err := f.SaveAs(s.path); err != nil {
		return errors.Wrap(errors.ErrCodeSink, "failed to save workbook", err)
	}

	slog.Info("data written to Excel file", "path", s.path, "records", len(records))
	return nil
}
