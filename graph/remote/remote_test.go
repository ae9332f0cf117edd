package remote_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quadmesh/ldp/graph"
	"github.com/quadmesh/ldp/graph/memstore"
	"github.com/quadmesh/ldp/graph/remote"
	"github.com/quadmesh/ldp/quad"
)

func TestClientServerRoundTrip(t *testing.T) {
	backing := memstore.New()
	srv := httptest.NewServer(remote.NewServer(backing))
	defer srv.Close()

	client := remote.Dial(remote.ClientConfig{Addr: srv.URL})
	defer client.Close()

	ctx := context.Background()
	g := quad.IRI("urn:g")
	q := quad.New(g, quad.IRI("urn:s"), quad.IRI("urn:p"), quad.NewLiteral("v"))
	require.NoError(t, client.Insert(ctx, q))

	size, err := client.Size(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, size)

	pat := graph.Pattern{
		Blocks:  []graph.Block{{Graph: graph.C(g), Triples: []graph.TriplePattern{graph.TP(graph.V("s"), graph.V("p"), graph.V("o"))}}},
		Project: []graph.Var{"s", "p", "o"},
	}
	ok, err := client.Exists(ctx, pat)
	require.NoError(t, err)
	require.True(t, ok)

	it, err := client.Query(ctx, pat)
	require.NoError(t, err)
	require.True(t, it.Next(ctx))
	b := it.Binding()
	s, ok := b.Get("s")
	require.True(t, ok)
	require.Equal(t, quad.IRI("urn:s"), s)
	require.False(t, it.Next(ctx))

	require.NoError(t, client.Remove(ctx, q))
	size, err = client.Size(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 0, size)
}

func TestRemoveGraph(t *testing.T) {
	backing := memstore.New()
	srv := httptest.NewServer(remote.NewServer(backing))
	defer srv.Close()
	client := remote.Dial(remote.ClientConfig{Addr: srv.URL})
	defer client.Close()

	ctx := context.Background()
	g := quad.IRI("urn:g")
	require.NoError(t, client.Insert(ctx, quad.New(g, quad.IRI("urn:s"), quad.IRI("urn:p"), quad.NewLiteral("v"))))
	require.NoError(t, client.RemoveGraph(ctx, g))
	size, err := client.Size(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 0, size)
}
