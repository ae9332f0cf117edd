// Package service implements the resource lifecycle operations of spec
// §4.3: create, replace, delete, add, touch, generateIdentifier and
// supportedInteractionModels. It is grounded on InMemoryResourceService.java
// (identifier scheme: a service-instance counter plus a per-instance atomic
// id counter) but backed by a graph.Store instead of a raw
// ConcurrentHashMap, since the spec promotes the map to a full quad store.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/quadmesh/ldp/event"
	"github.com/quadmesh/ldp/graph"
	"github.com/quadmesh/ldp/internal/clog"
	"github.com/quadmesh/ldp/ldperror"
	"github.com/quadmesh/ldp/quad"
	"github.com/quadmesh/ldp/resource"
	"github.com/quadmesh/ldp/session"
	"github.com/quadmesh/ldp/vocab/as"
	"github.com/quadmesh/ldp/vocab/dc"
	"github.com/quadmesh/ldp/vocab/ldp"
	"github.com/quadmesh/ldp/vocab/rdf"
	"github.com/quadmesh/ldp/vocab/trellis"
)

// serviceCounter assigns each ResourceService instance a distinct number,
// mirroring InMemoryResourceService's static AtomicLong serviceCounter.
var serviceCounter int64

// Binary describes the binary payload supplied to create/replace for a
// NonRDFSource resource (spec invariant 4).
type Binary struct {
	Location quad.IRI
	Modified time.Time
	MimeType string // empty means absent
	HasSize  bool
	Size     int64
}

// ResourceService implements spec §4.3's lifecycle operations against a
// graph.Store. The zero value is not usable; construct with New.
type ResourceService struct {
	store      graph.Store
	serializer event.EventSerializer

	idPrefix string
	idSeq    int64

	supported map[quad.IRI]bool
}

// New builds a ResourceService over store, advertising models as its
// supported interaction models. If serializer is nil, events are dropped
// via event.NoopSerializer, matching spec §7's "serializer failures never
// propagate" requirement taken to its natural default.
func New(store graph.Store, serializer event.EventSerializer, models ...quad.IRI) *ResourceService {
	if serializer == nil {
		serializer = event.NoopSerializer{}
	}
	n := atomic.AddInt64(&serviceCounter, 1) - 1
	supported := make(map[quad.IRI]bool, len(models))
	for _, m := range models {
		supported[m] = true
	}
	return &ResourceService{
		store:      store,
		serializer: serializer,
		idPrefix:   fmt.Sprintf("ResourceService-%d:", n),
		supported:  supported,
	}
}

// checkCancelled reports ctx's cancellation as ldperror.Cancelled, the
// classification spec §5's cancellation-at-suspension-points requirement
// names but that a backend ignoring ctx (graph/memstore does) can never
// surface on its own.
func checkCancelled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return ldperror.Cancelled(err)
	}
	return nil
}

// classifyStoreErr turns a graph.Store error into the spec §7 taxonomy. A
// backend that already classifies its own errors (graph/remote wraps
// cancellation as ldperror.Cancelled itself) is passed through unchanged;
// otherwise ctx's cancellation, if any, takes priority over a generic
// BackendFailure, since a failure racing a cancelled context is usually a
// symptom of the cancellation, not an independent backend fault.
func classifyStoreErr(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ldperror.ErrCancelled) || errors.Is(err, ldperror.ErrNotFound) ||
		errors.Is(err, ldperror.ErrConstraintViolation) || errors.Is(err, ldperror.ErrBackendFailure) {
		return err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ldperror.Cancelled(ctxErr)
	}
	return ldperror.BackendFailure(err)
}

// SupportedInteractionModels returns the set of interaction models this
// instance was configured to accept.
func (s *ResourceService) SupportedInteractionModels() []quad.IRI {
	out := make([]quad.IRI, 0, len(s.supported))
	for m := range s.supported {
		out = append(out, m)
	}
	return out
}

// GenerateIdentifier returns a fresh opaque string, unique within this
// service instance (spec invariant 8), formed as instance-prefix plus a
// monotonic per-instance counter — the identifier scheme
// InMemoryResourceService.generateIdentifier uses. The uuid suffix guards
// against reuse if the counter is ever reset by a caller-supplied restart,
// which the counter-only Java scheme does not need to defend against but a
// long-lived Go service restarted in-process might.
func (s *ResourceService) GenerateIdentifier() string {
	n := atomic.AddInt64(&s.idSeq, 1) - 1
	return fmt.Sprintf("%s%d-%s", s.idPrefix, n, uuid.NewString())
}

// Get returns the current Resource view for id: a live resource,
// resource.Missing, or resource.Deleted. Get fails only when ctx is
// cancelled or the backing store reports an error.
//
// includeTypeTriple is false here: TriplestoreResource.java lets its caller
// (the HTTP layer, driven by the request's Prefer header) decide whether to
// splice the interaction-model triple into the user-managed projection.
// This service has no such caller, so the user-managed graph always
// reflects exactly what was written — matching universal invariant 2 and
// scenario S1's exact quad-count assertion.
func (s *ResourceService) Get(ctx context.Context, id quad.IRI) (*resource.Resource, error) {
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	r, err := resource.FindResource(ctx, s.store, id, false)
	if err != nil {
		return nil, classifyStoreErr(ctx, err)
	}
	return r, nil
}

// Create writes a brand new resource. It fails with ConstraintViolation if
// the interaction model is unsupported or invariants 4–6 are violated; the
// caller is responsible for having checked Get(id) currently yields
// resource.Missing (spec §4.3 lifecycle: "requires get(id) currently yields
// MISSING").
func (s *ResourceService) Create(ctx context.Context, id quad.IRI, sess session.Session, ixnModel quad.IRI, data *quad.Dataset, parent quad.IRI, binary *Binary) error {
	return s.write(ctx, id, sess, ixnModel, data, parent, binary, as.Create)
}

// Replace overwrites the user-managed and server-managed graphs of an
// existing resource, preserving the audit graph (spec §4.3). It fails like
// Create.
func (s *ResourceService) Replace(ctx context.Context, id quad.IRI, sess session.Session, ixnModel quad.IRI, data *quad.Dataset, parent quad.IRI, binary *Binary) error {
	return s.write(ctx, id, sess, ixnModel, data, parent, binary, as.Update)
}

// write implements the create/replace algorithm of spec §4.3 steps 1–4. The
// two public entry points differ only in the activity type recorded to the
// audit trail (as:Create vs as:Update), so both funnel through here — the
// clear-then-rewrite step is a no-op for a fresh identifier and a real
// replacement for an existing one.
func (s *ResourceService) write(ctx context.Context, id quad.IRI, sess session.Session, ixnModel quad.IRI, data *quad.Dataset, parent quad.IRI, binary *Binary, activity quad.IRI) error {
	if err := checkCancelled(ctx); err != nil {
		return err
	}
	if !s.supported[ixnModel] {
		return ldperror.ConstraintViolation(id, "unsupported interaction model "+string(ixnModel))
	}
	if err := validateContainerConfig(id, ixnModel, data); err != nil {
		return err
	}
	if ixnModel == ldp.NonRDFSource && binary == nil {
		return ldperror.ConstraintViolation(id, "NonRDFSource requires binary metadata")
	}

	if err := s.store.RemoveGraph(ctx, id); err != nil {
		return classifyStoreErr(ctx, err)
	}
	for _, q := range data.Quads() {
		if err := s.store.Insert(ctx, q.WithGraph(id)); err != nil {
			return classifyStoreErr(ctx, err)
		}
	}

	if err := s.writeServerManaged(ctx, id, ixnModel, parent, binary, data); err != nil {
		return err
	}

	if clog.V(2) {
		clog.Infof("service: wrote resource %s (%s)", id, ixnModel)
	}
	s.emit(id, sess, ixnModel, activity)
	return nil
}

// writeServerManaged replaces the server-managed metadata row for id: type,
// modification instant, parent link, container membership configuration,
// and (for NonRDFSource) the binary descriptor triples, per spec §4.3
// step 3.
func (s *ResourceService) writeServerManaged(ctx context.Context, id quad.IRI, ixnModel quad.IRI, parent quad.IRI, binary *Binary, data *quad.Dataset) error {
	sm := trellis.PreferServerManaged
	if err := s.removeMetadataTriples(ctx, id); err != nil {
		return err
	}
	writes := []quad.Quad{
		quad.New(sm, id, rdf.Type, ixnModel),
		quad.New(sm, id, dc.Modified, quad.NewLiteral(nowRFC3339())),
	}
	if parent != "" {
		writes = append(writes, quad.New(sm, id, dc.IsPartOf, parent))
	}
	if ixnModel == ldp.DirectContainer || ixnModel == ldp.IndirectContainer {
		for _, pred := range []quad.IRI{
			ldp.MembershipResource, ldp.HasMemberRelation, ldp.IsMemberOfRelation, ldp.InsertedContentRelation,
		} {
			if v, ok := predicateValue(id, data, pred); ok {
				writes = append(writes, quad.New(sm, id, pred, v))
			}
		}
		if ixnModel == ldp.DirectContainer {
			if _, ok := predicateValue(id, data, ldp.InsertedContentRelation); !ok {
				writes = append(writes, quad.New(sm, id, ldp.InsertedContentRelation, ldp.MemberSubject))
			}
		}
		// The membership graph mappers (resource/projection.go) locate a
		// container by its own metadata row via `s ldp:member id`; a
		// container is always its own such s, so it indexes itself.
		writes = append(writes, quad.New(sm, id, ldp.Member, id))
	}
	if binary != nil {
		writes = append(writes, quad.New(sm, id, dc.HasPart, binary.Location))
		bsub := binary.Location
		writes = append(writes, quad.New(sm, bsub, dc.Modified, quad.NewLiteral(formatInstant(binary.Modified))))
		if binary.MimeType != "" {
			writes = append(writes, quad.New(sm, bsub, dc.Format, quad.NewLiteral(binary.MimeType)))
		}
		if binary.HasSize {
			writes = append(writes, quad.New(sm, bsub, dc.Extent, quad.NewLiteral(fmt.Sprintf("%d", binary.Size))))
		}
	}
	for _, q := range writes {
		if err := s.store.Insert(ctx, q); err != nil {
			return classifyStoreErr(ctx, err)
		}
	}
	return nil
}

// removeMetadataTriples clears any pre-existing server-managed row for id
// (and its binary descriptor row, if any) ahead of a rewrite. It never
// touches the audit graph.
func (s *ResourceService) removeMetadataTriples(ctx context.Context, id quad.IRI) error {
	prior, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if prior.Kind() == resource.KindMissing {
		return nil
	}
	sm := trellis.PreferServerManaged
	if bm, ok := prior.Binary(); ok {
		removeAll(ctx, s.store, sm, bm.Location)
	}
	removeAll(ctx, s.store, sm, id)
	return nil
}

// removeAll deletes every quad in graphName whose subject is subj. Backend
// failures are logged, not surfaced: this is best-effort cleanup ahead of a
// rewrite that will overwrite the same triples anyway.
func removeAll(ctx context.Context, store graph.Store, graphName quad.IRI, subj quad.IRI) {
	pat := graph.Pattern{
		Blocks: []graph.Block{{
			Graph:   graph.C(graphName),
			Triples: []graph.TriplePattern{graph.TP(graph.C(subj), graph.V("p"), graph.V("o"))},
		}},
		Project: []graph.Var{"p", "o"},
	}
	it, err := store.Query(ctx, pat)
	if err != nil {
		clog.Warningf("service: metadata cleanup query failed: %v", err)
		return
	}
	defer it.Close()
	var toRemove []quad.Quad
	for it.Next(ctx) {
		b := it.Binding()
		p, ok1 := b.Get("p")
		o, ok2 := b.Get("o")
		if !ok1 || !ok2 {
			continue
		}
		pred, ok := p.(quad.IRI)
		if !ok {
			continue
		}
		toRemove = append(toRemove, quad.New(graphName, subj, pred, o))
	}
	for _, q := range toRemove {
		if err := store.Remove(ctx, q); err != nil {
			clog.Warningf("service: metadata cleanup remove failed: %v", err)
		}
	}
}

// validateContainerConfig enforces spec invariants 5 and 6 by scanning data
// for the container-flavor-specific required predicates.
func validateContainerConfig(id quad.IRI, ixnModel quad.IRI, data *quad.Dataset) error {
	switch ixnModel {
	case ldp.DirectContainer:
		has := scanPredicates(id, data, ldp.MembershipResource, ldp.HasMemberRelation, ldp.IsMemberOfRelation)
		if !has[ldp.MembershipResource] {
			return ldperror.ConstraintViolation(id, "DirectContainer requires ldp:membershipResource")
		}
		if has[ldp.HasMemberRelation] == has[ldp.IsMemberOfRelation] {
			return ldperror.ConstraintViolation(id, "DirectContainer requires exactly one of hasMemberRelation/isMemberOfRelation")
		}
	case ldp.IndirectContainer:
		has := scanPredicates(id, data, ldp.MembershipResource, ldp.HasMemberRelation, ldp.InsertedContentRelation)
		if !has[ldp.MembershipResource] || !has[ldp.HasMemberRelation] {
			return ldperror.ConstraintViolation(id, "IndirectContainer requires membershipResource and hasMemberRelation")
		}
		if insertedContentRelationValue(id, data) == ldp.MemberSubject {
			return ldperror.ConstraintViolation(id, "IndirectContainer's insertedContentRelation must not be ldp:MemberSubject")
		}
	}
	return nil
}

func scanPredicates(id quad.IRI, data *quad.Dataset, preds ...quad.IRI) map[quad.IRI]bool {
	want := make(map[quad.IRI]bool, len(preds))
	for _, p := range preds {
		want[p] = false
	}
	for _, q := range data.Quads() {
		if q.Subject.Equal(id) {
			if _, tracked := want[q.Predicate]; tracked {
				want[q.Predicate] = true
			}
		}
	}
	return want
}

func insertedContentRelationValue(id quad.IRI, data *quad.Dataset) quad.Term {
	v, _ := predicateValue(id, data, ldp.InsertedContentRelation)
	return v
}

// predicateValue returns the object of the first quad in data with subject
// id and predicate pred, and whether one was found.
func predicateValue(id quad.IRI, data *quad.Dataset, pred quad.IRI) (quad.Term, bool) {
	for _, q := range data.Quads() {
		if q.Subject.Equal(id) && q.Predicate == pred {
			return q.Object, true
		}
	}
	return nil, false
}

// Delete writes a tombstone: get(id) thereafter yields resource.Deleted.
// It replaces id's server-managed row with the tombstone row and clears
// id's user-managed graph; the audit graph is kept. The dataset argument,
// when non-empty, is appended to the audit graph exactly as Add would —
// ResourceServiceTests.java always passes an empty dataset here, but the
// signature carries one to let a caller record the deletion's provenance in
// the same call as the tombstone. The writes are issued one by one and are
// not atomic.
func (s *ResourceService) Delete(ctx context.Context, id quad.IRI, sess session.Session, ixnType quad.IRI, data *quad.Dataset) error {
	if err := checkCancelled(ctx); err != nil {
		return err
	}
	sm := trellis.PreferServerManaged
	removeAll(ctx, s.store, sm, id)
	if err := s.store.Insert(ctx, quad.New(sm, id, rdf.Type, ixnType)); err != nil {
		return classifyStoreErr(ctx, err)
	}
	if err := s.store.Insert(ctx, quad.New(sm, id, dc.Modified, quad.NewLiteral(nowRFC3339()))); err != nil {
		return classifyStoreErr(ctx, err)
	}
	if err := s.store.Insert(ctx, quad.New(sm, id, dc.Type, trellis.DeletedResource)); err != nil {
		return classifyStoreErr(ctx, err)
	}
	if err := s.store.RemoveGraph(ctx, id); err != nil {
		return classifyStoreErr(ctx, err)
	}
	if err := s.Add(ctx, id, sess, data); err != nil {
		return err
	}
	s.emit(id, sess, ixnType, as.Delete)
	return nil
}

// Add appends dataset to the append-only audit graph; it never replaces
// (spec invariant 7).
func (s *ResourceService) Add(ctx context.Context, id quad.IRI, sess session.Session, data *quad.Dataset) error {
	if err := checkCancelled(ctx); err != nil {
		return err
	}
	auditGraph := quad.IRI(string(id) + "?ext=audit")
	for _, q := range data.Quads() {
		if err := s.store.Insert(ctx, q.WithGraph(auditGraph)); err != nil {
			return classifyStoreErr(ctx, err)
		}
	}
	return nil
}

// Touch updates a live resource's modification timestamp. It fails with
// NotFound if the resource is missing or deleted.
func (s *ResourceService) Touch(ctx context.Context, id quad.IRI) error {
	if err := checkCancelled(ctx); err != nil {
		return err
	}
	r, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if r.Kind() != resource.KindLive {
		return ldperror.NotFound(id, "cannot touch a "+r.Kind().String()+" resource")
	}
	sm := trellis.PreferServerManaged
	if err := s.store.Remove(ctx, quad.New(sm, id, dc.Modified, quad.NewLiteral(formatInstant(r.Modified())))); err != nil {
		return classifyStoreErr(ctx, err)
	}
	if err := s.store.Insert(ctx, quad.New(sm, id, dc.Modified, quad.NewLiteral(nowRFC3339()))); err != nil {
		return classifyStoreErr(ctx, err)
	}
	return nil
}

// emit builds an Event for a state transition and hands it to the
// configured serializer. Serialization failures are swallowed per spec §7;
// the boolean result is ignored deliberately.
func (s *ResourceService) emit(id quad.IRI, sess session.Session, targetType quad.IRI, activityType quad.IRI) {
	e := event.Event{
		Identifier:    quad.IRI(string(id) + "?ext=event"),
		Agents:        []quad.IRI{sess.Agent()},
		Target:        id,
		TargetTypes:   []quad.IRI{targetType},
		ActivityTypes: []quad.IRI{activityType},
		Created:       sess.Created(),
	}
	if _, ok := s.serializer.Serialize(e); !ok {
		if clog.V(3) {
			clog.Infof("service: no event emitted for %s", id)
		}
	}
}

func nowRFC3339() string { return formatInstant(time.Now()) }

func formatInstant(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }
