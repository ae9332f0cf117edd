package memstore_test

import (
	"testing"

	"github.com/quadmesh/ldp/graph"
	"github.com/quadmesh/ldp/graph/memstore"
	"github.com/quadmesh/ldp/resourcetest"
)

func TestResourceServiceConformance(t *testing.T) {
	resourcetest.TestAll(t, func(t *testing.T) graph.Store { return memstore.New() })
}
