// Package logging provides structured logging utilities for pmflow components.
//
// # Overview
//
// This package wraps the standard library slog package with pmflow-specific
// defaults and conventions for consistent logging across all components. It
// supports environment-based log level configuration, module/version context
// injection, and automatic source location tracking for debug logs.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("pmflow", "v1.0.0")
//
//	    slog.Info("processing batch", "files", 12)
//	    slog.Error("extraction failed", "error", err, "path", path)
//	}
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls logging verbosity:
//
//	LOG_LEVEL=debug pmflow extract -d ./data
//
// The LOG_FORMAT environment variable selects the output format. The default
// is JSON to stderr; LOG_FORMAT=text switches to a colorized terminal handler
// suited for interactive use.
package logging
