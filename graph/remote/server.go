package remote

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/quadmesh/ldp/graph"
	"github.com/quadmesh/ldp/internal/clog"
	"github.com/quadmesh/ldp/quad"
)

// Server exposes a graph.Store over HTTP, grounded in the teacher's
// server/http (httprouter.Router wired to store operations) and
// internal/http packages. It is the reference implementation of the "remote
// query/update protocol" spec §4.1 requires of the external-triplestore
// backend variant; any store satisfying graph.Store — including another
// remote.Store, for a chained deployment — can sit behind it.
type Server struct {
	router *httprouter.Router
	store  graph.Store
}

// NewServer builds an HTTP handler fronting store.
func NewServer(store graph.Store) *Server {
	s := &Server{router: httprouter.New(), store: store}
	s.router.POST("/quads", s.handleInsert)
	s.router.DELETE("/quads", s.handleRemove)
	// Graph names are IRIs that may contain '/', so they are captured with a
	// catch-all parameter rather than a single path segment.
	s.router.DELETE("/graphs/*graph", s.handleRemoveGraph)
	s.router.POST("/query", s.handleQuery)
	s.router.POST("/exists", s.handleExists)
	s.router.GET("/size", s.handleSize)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.router.ServeHTTP(w, r) }

func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var wq wireQuad
	if !decodeBody(w, r, &wq) {
		return
	}
	q, err := decodeQuad(wq)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.store.Insert(r.Context(), q); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var wq wireQuad
	if !decodeBody(w, r, &wq) {
		return
	}
	q, err := decodeQuad(wq)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.store.Remove(r.Context(), q); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveGraph(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	name := quad.IRI(strings.TrimPrefix(ps.ByName("graph"), "/"))
	if err := s.store.RemoveGraph(r.Context(), name); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var wp wirePattern
	if !decodeBody(w, r, &wp) {
		return
	}
	p, err := decodePattern(wp)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	it, err := s.store.Query(r.Context(), p)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	defer it.Close()
	out := make([]wireBinding, 0)
	for it.Next(r.Context()) {
		out = append(out, encodeBinding(it.Binding()))
	}
	if err := it.Err(); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleExists(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var wp wirePattern
	if !decodeBody(w, r, &wp) {
		return
	}
	p, err := decodePattern(wp)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	exists, err := s.store.Exists(r.Context(), p)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Exists bool `json:"exists"`
	}{exists})
}

func (s *Server) handleSize(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	size, err := s.store.Size(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Size int64 `json:"size"`
	}{size})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	clog.Errorf("remote: request failed: %v", err)
	writeJSON(w, status, struct {
		Error string `json:"error"`
	}{err.Error()})
}
