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

// Package memstore is the in-memory Store backend: the default deployment
// target and the one every other backend's conformance suite (package
// resourcetest) is written against first. It is grounded in the teacher's
// graph/memstore package, adapted from a single global quad index to one
// quad set per named graph, since every query this spec's projection
// component issues is graph-scoped first (spec §4.1 "Named-graph selection
// per pattern element").
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/quadmesh/ldp/graph"
	"github.com/quadmesh/ldp/graph/eval"
	"github.com/quadmesh/ldp/internal/clog"
	"github.com/quadmesh/ldp/quad"
)

// Store is a concurrency-safe, in-memory implementation of graph.Store.
// The zero value is not usable; construct with New.
type Store struct {
	mu     sync.RWMutex
	byName map[quad.IRI]map[quad.Quad]struct{}
	size   int64

	metrics *storeMetrics
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		byName:  make(map[quad.IRI]map[quad.Quad]struct{}),
		metrics: newStoreMetrics("memstore"),
	}
}

var _ graph.Store = (*Store)(nil)
var _ eval.Index = (*snapshot)(nil)

func (s *Store) Insert(_ context.Context, q quad.Quad) error {
	if !q.IsValid() {
		return graph.ErrInvalidQuad
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.byName[q.Graph]
	if !ok {
		g = make(map[quad.Quad]struct{})
		s.byName[q.Graph] = g
	}
	if _, exists := g[q]; !exists {
		g[q] = struct{}{}
		s.size++
	}
	s.metrics.inserts.Inc()
	return nil
}

func (s *Store) Remove(_ context.Context, q quad.Quad) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.byName[q.Graph]
	if !ok {
		return nil
	}
	if _, exists := g[q]; exists {
		delete(g, q)
		s.size--
	}
	s.metrics.removes.Inc()
	return nil
}

func (s *Store) RemoveGraph(_ context.Context, name quad.IRI) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g, ok := s.byName[name]; ok {
		s.size -= int64(len(g))
		delete(s.byName, name)
	}
	clog.Infof("memstore: cleared graph %s", name)
	return nil
}

func (s *Store) Query(_ context.Context, p graph.Pattern) (graph.BindingIter, error) {
	s.mu.RLock()
	snap := s.snapshot()
	s.mu.RUnlock()

	timer := s.metrics.queryLatency()
	defer timer()
	s.metrics.queries.Inc()

	solutions := eval.Solve(snap, p)
	return &sliceIter{solutions: solutions, pos: -1}, nil
}

func (s *Store) Exists(_ context.Context, p graph.Pattern) (bool, error) {
	s.mu.RLock()
	snap := s.snapshot()
	s.mu.RUnlock()
	return eval.Exists(snap, p), nil
}

func (s *Store) Size(context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.size, nil
}

func (s *Store) Close() error { return nil }

// snapshot is an immutable copy-on-read view used by eval.Solve so query
// evaluation never holds the store's lock while running potentially
// expensive backtracking joins.
type snapshot struct {
	byName map[quad.IRI][]quad.Quad
	names  []quad.IRI
}

func (s *Store) snapshot() *snapshot {
	snap := &snapshot{byName: make(map[quad.IRI][]quad.Quad, len(s.byName))}
	for g, qs := range s.byName {
		list := make([]quad.Quad, 0, len(qs))
		for q := range qs {
			list = append(list, q)
		}
		// Map iteration order is random; sort so that the same store state
		// always yields solutions in the same order.
		sort.Slice(list, func(i, j int) bool { return list[i].String() < list[j].String() })
		snap.byName[g] = list
		snap.names = append(snap.names, g)
	}
	sort.Slice(snap.names, func(i, j int) bool { return snap.names[i] < snap.names[j] })
	return snap
}

func (s *snapshot) GraphNames() []quad.IRI     { return s.names }
func (s *snapshot) Quads(g quad.IRI) []quad.Quad { return s.byName[g] }

type sliceIter struct {
	solutions []graph.Binding
	pos       int
}

func (it *sliceIter) Next(context.Context) bool {
	it.pos++
	return it.pos < len(it.solutions)
}

func (it *sliceIter) Binding() graph.Binding {
	if it.pos < 0 || it.pos >= len(it.solutions) {
		return nil
	}
	return it.solutions[it.pos]
}

func (it *sliceIter) Err() error   { return nil }
func (it *sliceIter) Close() error { return nil }
