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

// Package measurement defines the flattened PM record model and the filter
// configuration applied during extraction.
//
// A Record is one (object, counter, time) observation. Its Value is a Reading,
// a small runtime interface over the two shapes the 3GPP PM wire format
// produces: floats, and text that does not parse as a float (preserved
// verbatim, never coerced). JSON and YAML marshaling emit the underlying
// scalar directly, so numeric readings serialize as numbers and raw text
// round-trips byte for byte.
//
// A Filter holds the optional measInfoId, counter index, and object-LDN
// restrictions. Absent dimensions match everything; set dimensions combine
// conjunctively.
package measurement
