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

package measurement

import "slices"

// Filter restricts which readings the extractor projects into records.
// Each dimension is independently optional: the zero value for a dimension
// means match-all, and the dimensions combine conjunctively. Filters are
// passed by value and never mutated, so one Filter can be shared across
// parallel workers.
type Filter struct {
	// MeasInfoID restricts extraction to measInfo blocks with this id.
	// Empty means all blocks.
	MeasInfoID string
	// CounterID restricts extraction to readings with this counter index.
	// Nil means all counters; note a pointer is used so index 0 remains a
	// valid filter value.
	CounterID *int
	// ObjLdns restricts extraction to measValue groups whose measObjLdn is
	// in the set. Empty means all objects.
	ObjLdns []string
}

// Counter returns a Filter with the counter dimension set. Convenience for
// building filters from non-pointer values.
func (f Filter) Counter(p int) Filter {
	f.CounterID = &p
	return f
}

// MatchInfo reports whether a measInfo block with the given id passes the
// measInfoId dimension.
func (f Filter) MatchInfo(id string) bool {
	return f.MeasInfoID == "" || f.MeasInfoID == id
}

// MatchCounter reports whether a reading with the given parsed counter index
// passes the counter dimension.
func (f Filter) MatchCounter(p int) bool {
	return f.CounterID == nil || *f.CounterID == p
}

// MatchObj reports whether a measValue group with the given object LDN passes
// the object dimension.
func (f Filter) MatchObj(ldn string) bool {
	return len(f.ObjLdns) == 0 || slices.Contains(f.ObjLdns, ldn)
}
