// Package graph defines the quad-store backend capability interface (spec
// §4.1): insert/remove/remove-all plus a conjunctive-pattern query engine
// with named-graph selection, optional sub-patterns and variable
// projection. It plays the role of the teacher's graph.QuadStore interface
// (graph/quadstore.go), generalized from cayley's iterator/optimizer stack
// down to the narrower set of operations this spec's projection component
// actually needs: named-graph-scoped basic graph patterns with left-outer
// joins, not an arbitrary SPARQL algebra.
package graph

import "github.com/quadmesh/ldp/quad"

// Var names a pattern variable, conventionally written "?name" at call
// sites for readability though the leading "?" carries no meaning to the
// engine.
type Var string

// Term is one slot of a triple or graph pattern: either a bound constant
// RDF term, or an unbound variable to be solved for.
type Term struct {
	Const quad.Term
	Var   Var
}

// C builds a constant pattern term.
func C(t quad.Term) Term { return Term{Const: t} }

// V builds a variable pattern term.
func V(name Var) Term { return Term{Var: name} }

// IsVar reports whether the term is unbound.
func (t Term) IsVar() bool { return t.Const == nil }

// TriplePattern is a (subject, predicate, object) pattern within one named
// graph block.
type TriplePattern struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// TP is a convenience constructor for a TriplePattern.
func TP(s, p, o Term) TriplePattern { return TriplePattern{Subject: s, Predicate: p, Object: o} }

// Block is a basic graph pattern scoped to one named graph. Graph may be a
// constant (query a known named graph) or a variable (bind the graph name
// itself, as spec §4.2's indirect-membership derivation does when it joins
// across each child's own named graph). When Optional is true, a block that
// matches nothing does not eliminate the enclosing solution — it is spec
// §4.1's "left-outer sub-pattern" requirement, used by the metadata fetch
// to left-join the binary descriptor triples.
type Block struct {
	Graph    Term
	Triples  []TriplePattern
	Optional bool
}

// Pattern is a conjunction of blocks plus the list of variables the caller
// wants projected out of each solution.
type Pattern struct {
	Blocks  []Block
	Project []Var
}

// Binding maps each projected variable to the term it was solved to. A
// variable that was only ever inside an unmatched optional block is absent
// from the map, not present with a nil value.
type Binding map[Var]quad.Term

// Get returns the term bound to v, and whether it was bound at all.
func (b Binding) Get(v Var) (quad.Term, bool) {
	t, ok := b[v]
	return t, ok
}
