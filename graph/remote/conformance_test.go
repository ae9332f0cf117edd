package remote_test

import (
	"net/http/httptest"
	"testing"

	"github.com/quadmesh/ldp/graph"
	"github.com/quadmesh/ldp/graph/memstore"
	"github.com/quadmesh/ldp/graph/remote"
	"github.com/quadmesh/ldp/resourcetest"
)

// remoteStore wraps a client and the httptest server it talks to, so Close
// tears down both ends of the round trip.
type remoteStore struct {
	*remote.Store
	srv *httptest.Server
}

func (s *remoteStore) Close() error {
	err := s.Store.Close()
	s.srv.Close()
	return err
}

func TestResourceServiceConformance(t *testing.T) {
	resourcetest.TestAll(t, func(t *testing.T) graph.Store {
		srv := httptest.NewServer(remote.NewServer(memstore.New()))
		client := remote.Dial(remote.ClientConfig{Addr: srv.URL})
		return &remoteStore{Store: client, srv: srv}
	})
}
