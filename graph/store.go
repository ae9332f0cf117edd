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

package graph

import (
	"context"
	"errors"

	"github.com/quadmesh/ldp/quad"
)

// Sentinel errors a Store implementation may return, mirroring the
// teacher's graph/quadstore.go sentinel-error convention
// (ErrDatabaseExists, ErrNotInitialized).
var (
	ErrClosed      = errors.New("graph: store is closed")
	ErrInvalidQuad = errors.New("graph: quad is missing a required term")
)

// BindingIter enumerates the solutions to a pattern query one at a time.
// It follows the same Next/Err/Close shape as the teacher's graph.Iterator
// (graph/iterator.go's Next(ctx)/Err()/Close() trio), narrowed to the one
// thing callers of this engine need: a stream of variable bindings rather
// than opaque backend value references.
type BindingIter interface {
	// Next advances the iterator. It returns false at end of stream or on
	// error; callers must check Err() to distinguish the two.
	Next(ctx context.Context) bool

	// Binding returns the current solution. Valid only after a call to
	// Next that returned true.
	Binding() Binding

	// Err returns the first error encountered, if any.
	Err() error

	// Close releases resources associated with the iterator.
	Close() error
}

// Store is the minimal capability interface every quad-store backend must
// implement (spec §4.1). The resource projection and service layers never
// depend on anything beyond this interface, so switching between the
// in-memory backend and the remote backend is transparent to callers above,
// exactly as spec §4.1 requires.
type Store interface {
	// Insert adds a quad to the store. Inserting a quad already present in
	// the same named graph is a no-op success: every backend implementing
	// this interface stores quads as a set keyed on (graph, subject,
	// predicate, object), not a multiset. This narrows spec invariant 6's
	// multiset-union wording for the one case where it can bite — two Add
	// calls to the same audit graph carrying a bit-for-bit identical quad
	// collapse to one stored copy rather than two. Dataset above the
	// backend still preserves duplicates on the way in; only physically
	// identical quads landing in the same graph are affected. See
	// resourcetest's audit-duplicate scenario for the behavior this
	// pins down.
	Insert(ctx context.Context, q quad.Quad) error

	// Remove deletes a quad from the store, if present.
	Remove(ctx context.Context, q quad.Quad) error

	// RemoveGraph deletes every quad in the named graph. Used by replace
	// (clear <id> before rewriting user-managed triples) — never used on
	// the audit graph, which is append-only (spec invariant 7).
	RemoveGraph(ctx context.Context, graph quad.IRI) error

	// Query evaluates a conjunctive pattern and returns an iterator over
	// its solutions. Iteration order is unspecified beyond determinism for
	// a fixed transaction state (spec §4.1 "Ordering and tie-breaks").
	Query(ctx context.Context, p Pattern) (BindingIter, error)

	// Exists reports whether the pattern has at least one solution,
	// without materializing bindings.
	Exists(ctx context.Context, p Pattern) (bool, error)

	// Size returns the number of quads currently stored, across all
	// graphs.
	Size(ctx context.Context) (int64, error)

	// Close releases any resources held by the store.
	Close() error
}
