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

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Record is one (object, counter, time) observation projected out of a 3GPP
// PM measurement file. Records are produced by the extractor, collected into
// a batch, and handed to a sink; they are never mutated after creation.
type Record struct {
	// EndTime is the granularity-period end time of the enclosing measInfo
	// block, kept as the raw attribute text.
	EndTime string `json:"endTime" yaml:"endTime"`
	// MeasInfoID identifies the measurement info block the reading came from.
	MeasInfoID string `json:"measInfoId" yaml:"measInfoId"`
	// MeasObjLdn is the local distinguished name of the measured object.
	MeasObjLdn string `json:"measObjLdn" yaml:"measObjLdn"`
	// CounterID is the integer counter index (the "p" attribute).
	CounterID int `json:"p" yaml:"p"`
	// Value is the reported reading: numeric when the raw text parses as a
	// float, otherwise the original text preserved verbatim.
	Value Reading `json:"value" yaml:"value"`
	// MeasType is the human-readable counter name registered for CounterID
	// within the same block. Empty when the block declares no such counter.
	MeasType string `json:"measType,omitempty" yaml:"measType,omitempty"`
}

// UnmarshalJSON decodes a record, restoring the numeric-or-string Value.
func (r *Record) UnmarshalJSON(data []byte) error {
	var tmp struct {
		EndTime    string `json:"endTime"`
		MeasInfoID string `json:"measInfoId"`
		MeasObjLdn string `json:"measObjLdn"`
		CounterID  int    `json:"p"`
		Value      any    `json:"value"`
		MeasType   string `json:"measType"`
	}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}

	r.EndTime = tmp.EndTime
	r.MeasInfoID = tmp.MeasInfoID
	r.MeasObjLdn = tmp.MeasObjLdn
	r.CounterID = tmp.CounterID
	r.Value = ToReading(tmp.Value)
	r.MeasType = tmp.MeasType
	return nil
}

// UnmarshalYAML decodes a record, restoring the numeric-or-string Value.
func (r *Record) UnmarshalYAML(node *yaml.Node) error {
	var tmp struct {
		EndTime    string `yaml:"endTime"`
		MeasInfoID string `yaml:"measInfoId"`
		MeasObjLdn string `yaml:"measObjLdn"`
		CounterID  int    `yaml:"p"`
		Value      any    `yaml:"value"`
		MeasType   string `yaml:"measType"`
	}
	if err := node.Decode(&tmp); err != nil {
		return err
	}

	r.EndTime = tmp.EndTime
	r.MeasInfoID = tmp.MeasInfoID
	r.MeasObjLdn = tmp.MeasObjLdn
	r.CounterID = tmp.CounterID
	r.Value = ToReading(tmp.Value)
	r.MeasType = tmp.MeasType
	return nil
}

// AllowedScalar is a constraint (compile-time) for what we allow as readings.
// The PM wire format only produces two shapes: parsed floats and raw text.
type AllowedScalar interface {
	~float64 | ~string
}

// Reading is a *runtime* interface for reported values so numeric and
// non-numeric readings can live in the same record slice.
type Reading interface {
	isReading()
	Any() any
	String() string

	json.Marshaler
	yaml.Marshaler
}

// Scalar wraps an allowed scalar type.
// This is how we keep compile-time constraints while still using a runtime interface.
type Scalar[T AllowedScalar] struct {
	V T
}

func (Scalar[T]) isReading() {}

func (s Scalar[T]) Any() any { return s.V }

// String returns the string representation of the underlying scalar value.
func (s Scalar[T]) String() string {
	switch v := any(s.V).(type) {
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", s.V)
	}
}

// MarshalJSON makes the JSON value be the underlying scalar (not an object wrapper).
func (s Scalar[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.V)
}

// MarshalYAML makes the YAML value be the underlying scalar (not an object wrapper).
func (s Scalar[T]) MarshalYAML() (any, error) {
	return s.V, nil
}

// Convenience constructors for the allowed scalar types.
func Float64(v float64) Reading { return Scalar[float64]{V: v} }
func Str(v string) Reading      { return Scalar[string]{V: v} }

// ParseReading converts raw reading text into a Reading: numeric when the
// text parses as a float, otherwise the original text verbatim. It never
// fails and never coerces unparseable text to zero.
func ParseReading(text string) Reading {
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return Float64(f)
	}
	return Str(text)
}

// ToReading creates a Reading from a decoded scalar. Non-float, non-string
// values fall back to their string representation.
func ToReading(v any) Reading {
	switch val := v.(type) {
	case float64:
		return Float64(val)
	case int:
		return Float64(float64(val))
	case string:
		return Str(val)
	case nil:
		return Str("")
	default:
		return Str(fmt.Sprintf("%v", val))
	}
}
