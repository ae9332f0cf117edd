// Package eval implements the conjunctive-pattern join used by every Store
// backend: given a snapshot of quads grouped by named graph, solve a
// graph.Pattern by backtracking block-by-block and triple-by-triple.
//
// It is intentionally a plain nested-loop join rather than the teacher's
// cost-based iterator optimizer (graph/and_iterator_optimize.go): the
// patterns this engine ever evaluates are the small, fixed set spec §4.2
// names (at most a handful of triples per block), so optimizing join order
// buys nothing and would only obscure the one property that matters here —
// producing exactly the solutions the spec's derivation rules describe.
package eval

import "github.com/quadmesh/ldp/quad"
import "github.com/quadmesh/ldp/graph"

// Index is a read-only view of a quad store's contents, grouped by named
// graph, sufficient to evaluate any graph.Pattern against it.
type Index interface {
	// GraphNames returns every named graph currently holding at least one
	// quad.
	GraphNames() []quad.IRI

	// Quads returns every quad in the named graph.
	Quads(g quad.IRI) []quad.Quad
}

// Solve evaluates p against idx and returns every solution as a
// graph.Binding restricted to p.Project.
func Solve(idx Index, p graph.Pattern) []graph.Binding {
	solutions := []graph.Binding{{}}
	for _, block := range p.Blocks {
		solutions = solveBlock(idx, block, solutions)
		if len(solutions) == 0 {
			break
		}
	}
	out := make([]graph.Binding, 0, len(solutions))
	for _, sol := range solutions {
		out = append(out, project(sol, p.Project))
	}
	return out
}

// Exists reports whether p has at least one solution. Each block is solved
// in full; evaluation stops early only when a block leaves no solutions.
func Exists(idx Index, p graph.Pattern) bool {
	solutions := []graph.Binding{{}}
	for _, block := range p.Blocks {
		solutions = solveBlock(idx, block, solutions)
		if len(solutions) == 0 {
			return false
		}
	}
	return len(solutions) > 0
}

func project(sol graph.Binding, vars []graph.Var) graph.Binding {
	out := make(graph.Binding, len(vars))
	for _, v := range vars {
		if t, ok := sol[v]; ok {
			out[v] = t
		}
	}
	return out
}

func solveBlock(idx Index, block graph.Block, in []graph.Binding) []graph.Binding {
	var out []graph.Binding
	for _, sol := range in {
		graphNames := candidateGraphs(idx, block.Graph, sol)
		var matches []graph.Binding
		for _, g := range graphNames {
			base := cloneBinding(sol)
			if block.Graph.IsVar() {
				if bound, ok := base[block.Graph.Var]; ok && !bound.Equal(g) {
					continue
				}
				base[block.Graph.Var] = g
			}
			matches = append(matches, matchTriples(idx.Quads(g), block.Triples, 0, base)...)
		}
		switch {
		case len(matches) > 0:
			out = append(out, matches...)
		case block.Optional:
			out = append(out, sol)
		}
	}
	return out
}

func candidateGraphs(idx Index, g graph.Term, sol graph.Binding) []quad.IRI {
	if !g.IsVar() {
		return []quad.IRI{g.Const.(quad.IRI)}
	}
	if bound, ok := sol[g.Var]; ok {
		if iri, ok := bound.(quad.IRI); ok {
			return []quad.IRI{iri}
		}
		return nil
	}
	return idx.GraphNames()
}

func matchTriples(quads []quad.Quad, triples []graph.TriplePattern, i int, sol graph.Binding) []graph.Binding {
	if i == len(triples) {
		return []graph.Binding{sol}
	}
	pat := triples[i]
	var out []graph.Binding
	for _, q := range quads {
		next, ok := unify(pat, q, sol)
		if !ok {
			continue
		}
		out = append(out, matchTriples(quads, triples, i+1, next)...)
	}
	return out
}

func unify(pat graph.TriplePattern, q quad.Quad, sol graph.Binding) (graph.Binding, bool) {
	next := cloneBinding(sol)
	if !bindTerm(pat.Subject, q.Subject, next) {
		return nil, false
	}
	if !bindTerm(pat.Predicate, q.Predicate, next) {
		return nil, false
	}
	if !bindTerm(pat.Object, q.Object, next) {
		return nil, false
	}
	return next, true
}

func bindTerm(pat graph.Term, val quad.Term, sol graph.Binding) bool {
	if !pat.IsVar() {
		return pat.Const.Equal(val)
	}
	if bound, ok := sol[pat.Var]; ok {
		return bound.Equal(val)
	}
	sol[pat.Var] = val
	return true
}

func cloneBinding(sol graph.Binding) graph.Binding {
	next := make(graph.Binding, len(sol)+1)
	for k, v := range sol {
		next[k] = v
	}
	return next
}
