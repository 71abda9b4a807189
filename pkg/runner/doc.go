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

// Package runner orchestrates multi-file extraction runs.
//
// # Flow
//
// A run resolves its Selection into concrete file paths, dispatches each file
// to the extractor on a bounded errgroup pool, and merges results as workers
// finish. Workers share no mutable state: the filter is passed by value and
// each worker's output is merged under the runner's lock, so the aggregate
// order across files follows completion order while record order within one
// file's contribution is preserved.
//
// # Partial failure
//
// One file failing to parse never aborts the batch: the failure is logged
// with its path and cause, counted in metrics, and excluded from the
// aggregate. A run where every file failed still hands an empty aggregate to
// the sink and reports zero records. Only configuration problems (no input
// mode, nonexistent path, zero matched files), context cancellation, and
// sink errors fail the run itself.
package runner
