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
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pmflow/pmflow/pkg/errors"
	"github.com/pmflow/pmflow/pkg/measurement"
)

// Format represents a stream sink encoding.
type Format string

const (
	// FormatJSON outputs records in JSON format.
	FormatJSON Format = "json"
	// FormatYAML outputs records in YAML format.
	FormatYAML Format = "yaml"
)

// StreamSink encodes the aggregate onto an io.Writer, typically stdout or a
// file. Unlike the tabular sinks it always emits output, so an empty run is
// visible as an empty document. Close must be called when the sink was
// created with NewFileStreamSinkOrStdout to release the file handle.
type StreamSink struct {
	format Format
	output io.Writer
	closer io.Closer
}

// NewStreamSink creates a stream sink with the specified format and output
// destination. If output is nil, os.Stdout will be used. An unknown format
// defaults to JSON.
func NewStreamSink(format Format, output io.Writer) *StreamSink {
	if output == nil {
		output = os.Stdout
	}
	if format != FormatJSON && format != FormatYAML {
		slog.Warn("unknown stream format, defaulting to JSON", "format", format)
		format = FormatJSON
	}
	return &StreamSink{
		format: format,
		output: output,
	}
}

// NewFileStreamSinkOrStdout creates a stream sink writing to the given file
// path, falling back to stdout when the path is empty or the file cannot be
// created. Remember to call Close() on the returned sink.
func NewFileStreamSinkOrStdout(format Format, path string) *StreamSink {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return NewStreamSink(format, nil)
	}

	file, err := os.Create(trimmed)
	if err != nil {
		slog.Error("failed to create output file, falling back to stdout", "error", err, "path", trimmed)
		return NewStreamSink(format, nil)
	}

	s := NewStreamSink(format, file)
	s.closer = file
	return s
}

// Close releases any resources associated with the sink. It is safe to call
// multiple times or on stdout-based sinks.
func (s *StreamSink) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

// Write encodes the records in the configured format. The context is checked
// once up front; the encode itself is a fast, blocking write.
func (s *StreamSink) Write(ctx context.Context, records []measurement.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Encode a concrete empty array rather than null for a nil batch.
	if records == nil {
		records = []measurement.Record{}
	}

	switch s.format {
	case FormatJSON:
		enc := json.NewEncoder(s.output)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			return errors.Wrap(errors.ErrCodeSink, "failed to serialize to JSON", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(s.output)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return errors.Wrap(errors.ErrCodeSink, "failed to serialize to YAML", err)
		}
		if err := enc.Close(); err != nil {
			return errors.Wrap(errors.ErrCodeSink, "failed to flush YAML", err)
		}
	default:
		return fmt.Errorf("unsupported format: %s", s.format)
	}

	return nil
}
