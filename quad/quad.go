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

import "fmt"

// Direction identifies one field of a quad. It plays the same role as
// github.com/cayleygraph/quad's Direction type, extended with a graph
// position in place of that package's Label — in this model the fourth
// quad field names the projection/named graph the triple belongs to, not
// an arbitrary provenance label.
type Direction byte

const (
	Any Direction = iota
	GraphDir
	SubjectDir
	PredicateDir
	ObjectDir
)

func (d Direction) String() string {
	switch d {
	case Any:
		return "any"
	case GraphDir:
		return "graph"
	case SubjectDir:
		return "subject"
	case PredicateDir:
		return "predicate"
	case ObjectDir:
		return "object"
	default:
		return fmt.Sprintf("direction(%d)", byte(d))
	}
}

// Quad is a tuple (graph, subject, predicate, object). Graph is always an
// IRI naming a named graph; Subject may be an IRI or a BlankNode; Predicate
// is always an IRI; Object may be any Term.
type Quad struct {
	Graph     IRI
	Subject   Subject
	Predicate IRI
	Object    Term
}

// New builds a quad from its four terms.
func New(graph IRI, subject Subject, predicate IRI, object Term) Quad {
	return Quad{Graph: graph, Subject: subject, Predicate: predicate, Object: object}
}

// IsValid reports whether every required field of the quad is populated.
func (q Quad) IsValid() bool {
	return q.Graph != "" && q.Subject != nil && q.Predicate != "" && q.Object != nil
}

// Get returns the term occupying the given direction of the quad.
func (q Quad) Get(d Direction) Term {
	switch d {
	case GraphDir:
		return q.Graph
	case SubjectDir:
		return q.Subject
	case PredicateDir:
		return q.Predicate
	case ObjectDir:
		return q.Object
	default:
		panic("quad: invalid direction " + d.String())
	}
}

// Equal reports whether two quads have pairwise-equal terms in every
// position.
func (q Quad) Equal(o Quad) bool {
	return q.Graph.Equal(o.Graph) &&
		q.Subject.Equal(o.Subject) &&
		q.Predicate.Equal(o.Predicate) &&
		q.Object.Equal(o.Object)
}

func (q Quad) String() string {
	return fmt.Sprintf("%s { %s %s %s }", q.Graph, q.Subject, q.Predicate, q.Object)
}

// WithGraph returns a copy of the quad reassigned to the given named graph.
// Used when the projection layer re-groups a stored quad under a synthetic
// projection graph such as PreferMembership.
func (q Quad) WithGraph(g IRI) Quad {
	q.Graph = g
	return q
}
