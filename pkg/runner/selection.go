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
	"os"
	"path/filepath"
	"regexp"

	"github.com/pmflow/pmflow/pkg/errors"
)

// DefaultPattern matches the standard 3GPP PM file naming convention:
// filenames beginning with "A" and ending in ".xml".
const DefaultPattern = `^A.*\.xml$`

// Selection describes which measurement files a run covers: either one
// explicit file, or a directory whose immediate entries are filtered by a
// filename pattern. Exactly one of File and Dir must be set.
type Selection struct {
	// File is the path of a single measurement file.
	File string
	// Dir is a directory whose entries are matched against Pattern.
	// Subdirectories are not descended into.
	Dir string
	// Pattern is a regular expression matched against the full filename.
	// Empty means DefaultPattern. Only used in directory mode.
	Pattern string
}

// Resolve expands the selection into a concrete list of file paths.
// It fails with INVALID_CONFIG when the selection is ambiguous or names a
// nonexistent path, and with NO_INPUT when directory mode matches nothing.
func (s Selection) Resolve() ([]string, error) {
	switch {
	case s.File == "" && s.Dir == "":
		return nil, errors.New(errors.ErrCodeInvalidConfig, "no input file or directory specified")
	case s.File != "" && s.Dir != "":
		return nil, errors.New(errors.ErrCodeInvalidConfig, "input file and directory are mutually exclusive")
	}

	if s.File != "" {
		if _, err := os.Stat(s.File); err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeInvalidConfig, "input file not found", err,
				map[string]any{"path": s.File})
		}
		return []string{s.File}, nil
	}

	if _, err := os.Stat(s.Dir); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidConfig, "input directory not found", err,
			map[string]any{"path": s.Dir})
	}

	pattern := s.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	// Full-string match, not substring search.
	re, err := regexp.Compile(`\A(?:` + pattern + `)\z`)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidConfig, "invalid filename pattern", err,
			map[string]any{"pattern": pattern})
	}

	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidConfig, "failed to list input directory", err,
			map[string]any{"path": s.Dir})
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !re.MatchString(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(s.Dir, entry.Name()))
	}

	if len(files) == 0 {
		return nil, errors.NewWithContext(errors.ErrCodeNoInput, "no files matched the filename pattern",
			map[string]any{"path": s.Dir, "pattern": pattern})
	}
	return files, nil
}
