package memstore_test

import (
	"context"
	"testing"

	"github.com/quadmesh/ldp/graph"
	"github.com/quadmesh/ldp/graph/memstore"
	"github.com/quadmesh/ldp/quad"
	"github.com/stretchr/testify/require"
)

func TestInsertQueryRemove(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()

	g := quad.IRI("urn:g1")
	q1 := quad.New(g, quad.IRI("urn:s1"), quad.IRI("urn:p"), quad.NewLiteral("v1"))
	q2 := quad.New(g, quad.IRI("urn:s2"), quad.IRI("urn:p"), quad.NewLiteral("v2"))

	require.NoError(t, s.Insert(ctx, q1))
	require.NoError(t, s.Insert(ctx, q2))

	size, err := s.Size(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, size)

	pat := graph.Pattern{
		Blocks: []graph.Block{{
			Graph:   graph.C(g),
			Triples: []graph.TriplePattern{graph.TP(graph.V("s"), graph.C(quad.IRI("urn:p")), graph.V("o"))},
		}},
		Project: []graph.Var{"s", "o"},
	}
	it, err := s.Query(ctx, pat)
	require.NoError(t, err)
	var got []graph.Binding
	for it.Next(ctx) {
		got = append(got, it.Binding())
	}
	require.NoError(t, it.Err())
	require.Len(t, got, 2)

	ok, err := s.Exists(ctx, pat)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, s.Remove(ctx, q1))
	size, err = s.Size(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, size)

	require.NoError(t, s.RemoveGraph(ctx, g))
	size, err = s.Size(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 0, size)
}

func TestOptionalBlockLeavesUnboundOnMiss(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	g := quad.IRI("urn:g")
	sub := quad.IRI("urn:main")
	require.NoError(t, s.Insert(ctx, quad.New(g, sub, quad.IRI("urn:p"), quad.NewLiteral("v"))))

	pat := graph.Pattern{
		Blocks: []graph.Block{
			{
				Graph:   graph.C(g),
				Triples: []graph.TriplePattern{graph.TP(graph.C(sub), graph.V("p"), graph.V("o"))},
			},
			{
				Graph:    graph.C(g),
				Optional: true,
				Triples:  []graph.TriplePattern{graph.TP(graph.C(sub), graph.C(quad.IRI("urn:hasPart")), graph.V("bin"))},
			},
		},
		Project: []graph.Var{"p", "o", "bin"},
	}
	it, err := s.Query(ctx, pat)
	require.NoError(t, err)
	require.True(t, it.Next(ctx))
	b := it.Binding()
	_, hasBin := b.Get("bin")
	require.False(t, hasBin)
	require.False(t, it.Next(ctx))
}
