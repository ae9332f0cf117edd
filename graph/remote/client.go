package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/quadmesh/ldp/graph"
	"github.com/quadmesh/ldp/internal/clog"
	"github.com/quadmesh/ldp/ldperror"
	"github.com/quadmesh/ldp/quad"
)

var remoteRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ldp", Subsystem: "remote_store", Name: "requests_total",
	Help: "Number of requests the remote store client issued, by outcome.",
}, []string{"method", "outcome"})

func init() {
	_ = prometheus.Register(remoteRequests)
}

// errRequestFailed mirrors the teacher's client.errRequestFailed: a typed
// error carrying the HTTP status of a failed remote call.
type errRequestFailed struct {
	Method     string
	Path       string
	StatusCode int
	Status     string
}

func (e *errRequestFailed) Error() string {
	return fmt.Sprintf("remote: %s %s: %s", e.Method, e.Path, e.Status)
}

// Store is a graph.Store that delegates every operation to a remote server
// over HTTP, grounded in the teacher's client.Client (client/client.go).
type Store struct {
	addr string
	cli  *http.Client
}

// Dial connects to a remote quad-store server described by cfg. It does not
// perform a handshake; connectivity is only proven on first use.
func Dial(cfg ClientConfig) *Store {
	return &Store{
		addr: cfg.Addr,
		cli:  &http.Client{Timeout: cfg.timeout()},
	}
}

var _ graph.Store = (*Store)(nil)

func (s *Store) url(path string) string { return s.addr + path }

func (s *Store) do(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(marshal(body))
	}
	req, err := http.NewRequestWithContext(ctx, method, s.url(path), reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.cli.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			remoteRequests.WithLabelValues(method, "cancelled").Inc()
			return nil, ldperror.Cancelled(ctx.Err())
		}
		remoteRequests.WithLabelValues(method, "error").Inc()
		return nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		remoteRequests.WithLabelValues(method, "error").Inc()
		return nil, err
	}
	if resp.StatusCode/100 != 2 {
		remoteRequests.WithLabelValues(method, "failed").Inc()
		return nil, &errRequestFailed{Method: method, Path: path, StatusCode: resp.StatusCode, Status: resp.Status}
	}
	remoteRequests.WithLabelValues(method, "ok").Inc()
	return data, nil
}

func (s *Store) Insert(ctx context.Context, q quad.Quad) error {
	_, err := s.do(ctx, http.MethodPost, "/quads", encodeQuad(q))
	return err
}

func (s *Store) Remove(ctx context.Context, q quad.Quad) error {
	_, err := s.do(ctx, http.MethodDelete, "/quads", encodeQuad(q))
	return err
}

func (s *Store) RemoveGraph(ctx context.Context, name quad.IRI) error {
	_, err := s.do(ctx, http.MethodDelete, "/graphs/"+string(name), nil)
	return err
}

func (s *Store) Query(ctx context.Context, p graph.Pattern) (graph.BindingIter, error) {
	data, err := s.do(ctx, http.MethodPost, "/query", encodePattern(p))
	if err != nil {
		return nil, err
	}
	var wireBindings []wireBinding
	if err := json.Unmarshal(data, &wireBindings); err != nil {
		return nil, err
	}
	bindings := make([]graph.Binding, 0, len(wireBindings))
	for _, wb := range wireBindings {
		b, err := decodeBinding(wb)
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, b)
	}
	return &sliceIter{solutions: bindings, pos: -1}, nil
}

func (s *Store) Exists(ctx context.Context, p graph.Pattern) (bool, error) {
	data, err := s.do(ctx, http.MethodPost, "/exists", encodePattern(p))
	if err != nil {
		return false, err
	}
	var out struct {
		Exists bool `json:"exists"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return false, err
	}
	return out.Exists, nil
}

func (s *Store) Size(ctx context.Context) (int64, error) {
	data, err := s.do(ctx, http.MethodGet, "/size", nil)
	if err != nil {
		return 0, err
	}
	var out struct {
		Size int64 `json:"size"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return 0, err
	}
	return out.Size, nil
}

func (s *Store) Close() error {
	clog.Infof("remote: closing connection to %s", s.addr)
	s.cli.CloseIdleConnections()
	return nil
}

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
