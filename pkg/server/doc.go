// Package server exposes run metrics and a health probe over HTTP.
//
// A batch over a large directory tree can run for a long time; starting the
// server alongside the run (pmflow extract --metrics-addr :9090) lets
// Prometheus scrape the run counters from /metrics and lets supervisors
// probe /healthz. The /metrics endpoint is rate limited to keep scrape
// storms from competing with the extraction workers.
package server
