// Copyright 2026 The quadmesh/ldp Authors. All rights reserved.
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

package quad

// Dataset is a multiset of quads. It is the unit of input the resource
// service accepts from callers (spec §3 "Dataset: multiset of quads") and
// the unit a Resource hands back from a projection-graph stream.
//
// Duplicates are preserved: spec §4.2 "Ordering and tie-breaks" tolerates
// duplicates within a projection graph iff the backing quads are
// duplicates, so Dataset never silently dedupes on Add.
type Dataset struct {
	quads []Quad
}

// NewDataset builds a Dataset from zero or more quads.
func NewDataset(qs ...Quad) *Dataset {
	d := &Dataset{quads: make([]Quad, 0, len(qs))}
	for _, q := range qs {
		d.Add(q)
	}
	return d
}

// Add appends a quad to the dataset.
func (d *Dataset) Add(q Quad) { d.quads = append(d.quads, q) }

// AddAll appends every quad in other to the dataset.
func (d *Dataset) AddAll(other *Dataset) {
	if other == nil {
		return
	}
	d.quads = append(d.quads, other.quads...)
}

// Remove deletes the first occurrence of a quad equal to q, if any.
func (d *Dataset) Remove(q Quad) {
	for i, existing := range d.quads {
		if existing.Equal(q) {
			d.quads = append(d.quads[:i], d.quads[i+1:]...)
			return
		}
	}
}

// Len reports the number of quads in the dataset.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.quads)
}

// Quads returns a snapshot slice of every quad in the dataset. Callers must
// not mutate the returned slice's backing array.
func (d *Dataset) Quads() []Quad {
	if d == nil {
		return nil
	}
	out := make([]Quad, len(d.quads))
	copy(out, d.quads)
	return out
}

// Each calls fn for every quad matching the pattern. Any of graph, subject,
// predicate or object may be nil to mean "unconstrained". This mirrors the
// pattern-iteration contract spec §4.1 requires of a backend, but operates
// purely in memory over an already-materialized Dataset.
func (d *Dataset) Each(graph *IRI, subject Subject, predicate *IRI, object Term, fn func(Quad)) {
	if d == nil {
		return
	}
	for _, q := range d.quads {
		if graph != nil && !q.Graph.Equal(*graph) {
			continue
		}
		if subject != nil && !q.Subject.Equal(subject) {
			continue
		}
		if predicate != nil && !q.Predicate.Equal(*predicate) {
			continue
		}
		if object != nil && !q.Object.Equal(object) {
			continue
		}
		fn(q)
	}
}
