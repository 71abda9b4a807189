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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pmflow_run_duration_seconds",
			Help:    "Time taken to process a complete batch of measurement files",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120},
		},
	)

	filesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pmflow_files_processed_total",
			Help: "Total number of measurement files processed",
		},
		[]string{"status"}, // success or error
	)

	recordsLastRun = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pmflow_records_last_run",
			Help: "Number of records produced by the last completed run",
		},
	)
)
