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

// Package extractor projects 3GPP TS 32.435 PM measurement files into flat
// measurement records.
//
// # Projection
//
// For every measInfo block in document order, the extractor reads the block's
// granularity-period end time, builds the block-scoped counter-name table
// from its measType declarations (duplicate indices: last one wins), and
// emits one record per r reading inside each measValue group. Filtering is
// applied at the narrowest possible scope: the measInfoId filter skips whole
// blocks, the object-LDN filter skips value groups, and the counter filter
// skips individual readings. Skipped content is pure filtering, never an
// error.
//
// # Failure semantics
//
// Extraction is all-or-nothing per file. Malformed XML, a block without a
// granPeriod element or endTime attribute, and a reading with a non-integer
// "p" index all fail the whole file with a single EXTRACTION_FAILED error;
// absence of the granularity period indicates malformed input rather than an
// empty block, so the file is rejected instead of silently skipping it.
//
// Reading text that does not parse as a float is not an error: the original
// text is preserved verbatim as the record value.
package extractor
