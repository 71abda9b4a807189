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

package runner

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pmflow/pmflow/pkg/errors"
	"github.com/pmflow/pmflow/pkg/extractor"
	"github.com/pmflow/pmflow/pkg/measurement"
	"github.com/pmflow/pmflow/pkg/sink"
)

// Runner coordinates one extraction run: it resolves the file selection,
// fans the files out across a bounded worker pool, collects the per-file
// results, and hands the aggregate to the sink exactly once.
type Runner struct {
	// Selection describes the input files.
	Selection Selection

	// Filter is applied during extraction. The zero value matches everything.
	Filter measurement.Filter

	// Workers bounds the number of files processed in parallel.
	// Zero or negative means the number of available CPUs. A width of 1
	// produces identical output to any other width.
	Workers int

	// Sink receives the aggregated records. If nil, a stdout JSON stream
	// sink is used.
	Sink sink.Sink

	// Log is the reporting destination for per-file outcomes. If nil,
	// slog.Default() is used.
	Log *slog.Logger
}

// Run executes the batch and returns the number of records handed to the
// sink. A file that fails to parse is logged and excluded from the aggregate
// without aborting the rest of the batch; an aggregate of zero records from
// files that all failed is still a successful (empty) run. Run fails only on
// configuration errors, an empty file resolution, context cancellation, or a
// sink error.
func (r *Runner) Run(ctx context.Context) (int, error) {
	log := r.Log
	if log == nil {
		log = slog.Default()
	}

	files, err := r.Selection.Resolve()
	if err != nil {
		return 0, err
	}

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	log.Info("processing measurement files", "files", len(files), "workers", workers)

	start := time.Now()
	defer func() {
		runDuration.Observe(time.Since(start).Seconds())
	}()

	var (
		mu      sync.Mutex
		records []measurement.Record
		failed  int
	)

	// Workers never return extraction errors: a failed file is accounted for
	// and the rest of the batch keeps going. The only error that stops the
	// pool is context cancellation.
	g := new(errgroup.Group)
	g.SetLimit(workers)

	for _, path := range files {
		path := path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			recs, err := r.extractOne(path)
			if err != nil {
				log.Error("failed to process file", "path", path, "error", err)
				filesProcessed.WithLabelValues("error").Inc()
				mu.Lock()
				failed++
				mu.Unlock()
				return nil
			}

			filesProcessed.WithLabelValues("success").Inc()
			mu.Lock()
			records = append(records, recs...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, errors.Wrap(errors.ErrCodeInternal, "run canceled", err)
	}

	recordsLastRun.Set(float64(len(records)))
	log.Info("extraction complete",
		"files", len(files),
		"failed", failed,
		"records", len(records))

	out := r.Sink
	if out == nil {
		out = sink.NewStreamSink(sink.FormatJSON, nil)
	}
	if err := out.Write(ctx, records); err != nil {
		return 0, errors.Wrap(errors.ErrCodeSink, "failed to write records", err)
	}

	return len(records), nil
}

// extractOne shields the pool from a single file's failure modes: both
// extraction errors and panics surface as an error scoped to that file.
func (r *Runner) extractOne(path string) (recs []measurement.Record, err error) {
	defer func() {
		if p := recover(); p != nil {
			recs = nil
			err = errors.NewWithContext(errors.ErrCodeExtraction,
				fmt.Sprintf("panic while processing file: %v", p),
				map[string]any{"path": path})
		}
	}()
	return extractor.Extract(path, r.Filter)
}
