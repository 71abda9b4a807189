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

package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

const (
	// EnvLogLevel is the environment variable used to configure log verbosity.
	EnvLogLevel = "LOG_LEVEL"
	// EnvLogFormat is the environment variable used to select the output
	// format: "json" (default) or "text" for terminal-friendly output.
	EnvLogFormat = "LOG_FORMAT"
)

// ParseLevel converts a level string into a slog.Level.
// Accepts debug, info, warn/warning, and error (case-insensitive).
// Unknown or empty strings default to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LevelFromEnv returns the log level configured via LOG_LEVEL,
// defaulting to info when unset.
func LevelFromEnv() slog.Level {
	return ParseLevel(os.Getenv(EnvLogLevel))
}

// NewStructuredLogger creates a logger writing structured records to stderr
// with module and version attached to every record. The format is JSON unless
// LOG_FORMAT=text, in which case a colorized terminal handler is used.
// Debug level enables source location tracking.
func NewStructuredLogger(module, version, level string) *slog.Logger {
	return newLogger(os.Stderr, module, version, ParseLevel(level))
}

// SetDefaultStructuredLogger configures the process-wide default slog logger
// with the level taken from the LOG_LEVEL environment variable.
func SetDefaultStructuredLogger(module, version string) {
	slog.SetDefault(newLogger(os.Stderr, module, version, LevelFromEnv()))
}

// SetDefaultStructuredLoggerWithLevel configures the process-wide default
// slog logger with an explicit level, overriding LOG_LEVEL.
func SetDefaultStructuredLoggerWithLevel(module, version, level string) {
	slog.SetDefault(newLogger(os.Stderr, module, version, ParseLevel(level)))
}

// NewLogLogger returns a standard library *log.Logger that forwards to the
// default slog logger at the given level. Useful for libraries that only
// accept a *log.Logger.
func NewLogLogger(level slog.Level, addSource bool) *log.Logger {
	opts := &slog.HandlerOptions{Level: level, AddSource: addSource}
	return slog.NewLogLogger(slog.NewJSONHandler(os.Stderr, opts), level)
}

func newLogger(w io.Writer, module, version string, level slog.Level) *slog.Logger {
	var h slog.Handler
	if strings.EqualFold(os.Getenv(EnvLogFormat), "text") {
		h = tint.NewHandler(w, &tint.Options{
			Level:      level,
			AddSource:  level <= slog.LevelDebug,
			TimeFormat: time.RFC3339,
		})
	} else {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     level,
			AddSource: level <= slog.LevelDebug,
		})
	}

	return slog.New(h).With(
		slog.String("module", module),
		slog.String("version", version),
	)
}
