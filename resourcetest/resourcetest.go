// Package resourcetest is the shared backend-conformance suite spec §8
// describes as the "Test harness contract" component. It mirrors the
// teacher's graph/graphtest.TestAll(t, gen, conf) pattern: a single
// TestAll entry point that any graph.Store-backed ResourceService can be
// run against, giving a new backend the suite's coverage of the universal
// invariants and concrete scenarios by writing one TestConformance
// function that calls this package.
package resourcetest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quadmesh/ldp/event"
	"github.com/quadmesh/ldp/graph"
	"github.com/quadmesh/ldp/ldperror"
	"github.com/quadmesh/ldp/quad"
	"github.com/quadmesh/ldp/resource"
	"github.com/quadmesh/ldp/service"
	"github.com/quadmesh/ldp/session"
	"github.com/quadmesh/ldp/vocab/as"
	"github.com/quadmesh/ldp/vocab/dc"
	"github.com/quadmesh/ldp/vocab/foaf"
	"github.com/quadmesh/ldp/vocab/ldp"
	"github.com/quadmesh/ldp/vocab/prov"
	"github.com/quadmesh/ldp/vocab/rdf"
	"github.com/quadmesh/ldp/vocab/skos"
	"github.com/quadmesh/ldp/vocab/trellis"
)

// NewStoreFunc builds a fresh, empty backend for one subtest.
type NewStoreFunc func(t *testing.T) graph.Store

// TestAll runs every concrete scenario (S1–S6) and universal invariants
// 1–10 (spec §8, folded into the scenario tests where they overlap;
// invariant 10 with 200 draws) against a backend produced by newStore,
// exactly mirroring graphtest.TestAll's role for the teacher's backends.
// Invariant 11 is checked only as "Touch does not move the modification
// time backwards"; invariant 12 (NonRDFSource binary metadata) has no
// subtest here.
func TestAll(t *testing.T, newStore NewStoreFunc) {
	t.Run("MissingBeforeAnyOperation", func(t *testing.T) { testMissingBeforeAnyOperation(t, newStore) })
	t.Run("S1_CreateRDFSource", func(t *testing.T) { testCreateRDFSource(t, newStore) })
	t.Run("S2_Replace", func(t *testing.T) { testReplace(t, newStore) })
	t.Run("S3_Delete", func(t *testing.T) { testDelete(t, newStore) })
	t.Run("S4_AuditAppend", func(t *testing.T) { testAuditAppend(t, newStore) })
	t.Run("AuditAppendExactDuplicateQuadCollapses", func(t *testing.T) { testAuditAppendDuplicateCollapses(t, newStore) })
	t.Run("S5_BasicContainer", func(t *testing.T) { testBasicContainer(t, newStore) })
	t.Run("S6_IndirectContainer", func(t *testing.T) { testIndirectContainer(t, newStore) })
	t.Run("DirectContainerInverseMembership", func(t *testing.T) { testDirectContainerInverse(t, newStore) })
	t.Run("IdentifierGenerationIsCollisionFree", func(t *testing.T) { testIdentifierGeneration(t, newStore) })
	t.Run("TouchAdvancesModified", func(t *testing.T) { testTouch(t, newStore) })
	t.Run("TouchMissingFails", func(t *testing.T) { testTouchMissingFails(t, newStore) })
	t.Run("UnsupportedInteractionModelFails", func(t *testing.T) { testUnsupportedModel(t, newStore) })
	t.Run("CancelledContextIsClassified", func(t *testing.T) { testCancelledContext(t, newStore) })
}

func newService(t *testing.T, newStore NewStoreFunc) *service.ResourceService {
	store := newStore(t)
	t.Cleanup(func() { require.NoError(t, store.Close()) })
	return service.New(store, event.NoopSerializer{}, ldp.AllInteractionModels...)
}

// testMissingBeforeAnyOperation is universal invariant 4.
func testMissingBeforeAnyOperation(t *testing.T, newStore NewStoreFunc) {
	ctx := context.Background()
	svc := newService(t, newStore)
	r, err := svc.Get(ctx, quad.IRI("trellis:data/never-created"))
	require.NoError(t, err)
	require.Equal(t, resource.KindMissing, r.Kind())
}

// testCreateRDFSource is scenario S1, and covers universal invariants 1 and 2.
func testCreateRDFSource(t *testing.T, newStore NewStoreFunc) {
	ctx := context.Background()
	svc := newService(t, newStore)
	sess := session.New(quad.IRI("trellis:agent/test"))

	id := quad.IRI("trellis:data/s1")
	data := quad.NewDataset(
		quad.New(id, id, dc.Title, quad.NewLiteral("Creation Test")),
		quad.New(id, id, dc.Subject, quad.IRI("http://ex/subj/1")),
		quad.New(id, id, rdf.Type, skos.Concept),
	)
	require.NoError(t, svc.Create(ctx, id, sess, ldp.RDFSource, data, quad.IRI("trellis:data/"), nil))

	r, err := svc.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, resource.KindLive, r.Kind())
	require.Equal(t, ldp.RDFSource, r.InteractionModel())

	stream, err := r.Stream(trellis.PreferUserManaged)
	require.NoError(t, err)
	require.Len(t, stream.Quads(), 3)
}

// testReplace is scenario S2, and covers universal invariant 5.
func testReplace(t *testing.T, newStore NewStoreFunc) {
	ctx := context.Background()
	svc := newService(t, newStore)
	sess := session.New(quad.IRI("trellis:agent/test"))
	id := quad.IRI("trellis:data/s1")

	require.NoError(t, svc.Create(ctx, id, sess, ldp.RDFSource, quad.NewDataset(
		quad.New(id, id, dc.Title, quad.NewLiteral("Creation Test")),
	), quad.IRI("trellis:data/"), nil))

	replacement := quad.NewDataset(
		quad.New(id, id, skos.PrefLabel, quad.NewLiteral("preferred")),
		quad.New(id, id, skos.AltLabel, quad.NewLiteral("alt")),
		quad.New(id, id, rdf.Type, skos.Concept),
	)
	require.NoError(t, svc.Replace(ctx, id, sess, ldp.RDFSource, replacement, quad.IRI("trellis:data/"), nil))

	r, err := svc.Get(ctx, id)
	require.NoError(t, err)
	stream, err := r.Stream(trellis.PreferUserManaged)
	require.NoError(t, err)
	got := stream.Quads()
	require.Len(t, got, 3)
	for _, q := range got {
		require.NotEqual(t, dc.Title, q.Predicate)
	}
}

// testDelete is scenario S3, and covers universal invariant 3.
func testDelete(t *testing.T, newStore NewStoreFunc) {
	ctx := context.Background()
	svc := newService(t, newStore)
	sess := session.New(quad.IRI("trellis:agent/test"))
	id := quad.IRI("trellis:data/s1")

	require.NoError(t, svc.Create(ctx, id, sess, ldp.RDFSource, quad.NewDataset(), quad.IRI("trellis:data/"), nil))
	require.NoError(t, svc.Delete(ctx, id, sess, ldp.RDFSource, quad.NewDataset()))

	r, err := svc.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, resource.KindDeleted, r.Kind())
}

// testAuditAppend is scenario S4, and covers universal invariant 6.
func testAuditAppend(t *testing.T, newStore NewStoreFunc) {
	ctx := context.Background()
	svc := newService(t, newStore)
	sess := session.New(quad.IRI("trellis:agent/test"))
	id := quad.IRI("trellis:data/s1")
	require.NoError(t, svc.Create(ctx, id, sess, ldp.RDFSource, quad.NewDataset(), quad.IRI("trellis:data/"), nil))

	a1 := quad.IRI("trellis:data/s1#activity1")
	require.NoError(t, svc.Add(ctx, id, sess, quad.NewDataset(
		quad.New(id, id, prov.WasGeneratedBy, a1),
		quad.New(id, a1, rdf.Type, prov.Activity),
		quad.New(id, a1, rdf.Type, as.Create),
		quad.New(id, a1, prov.AtTime, quad.NewLiteral("2020-01-01T00:00:00Z")),
	)))
	a2 := quad.IRI("trellis:data/s1#activity2")
	require.NoError(t, svc.Add(ctx, id, sess, quad.NewDataset(
		quad.New(id, id, prov.WasGeneratedBy, a2),
		quad.New(id, a2, rdf.Type, prov.Activity),
		quad.New(id, a2, rdf.Type, as.Update),
		quad.New(id, a2, prov.AtTime, quad.NewLiteral("2020-01-02T00:00:00Z")),
	)))

	r, err := svc.Get(ctx, id)
	require.NoError(t, err)
	audit, err := r.Stream(trellis.PreferAudit)
	require.NoError(t, err)
	require.Len(t, audit.Quads(), 8)
}

// testAuditAppendDuplicateCollapses pins down the store's set-not-multiset
// semantics (graph.Store's Insert doc comment): two Add calls carrying a
// bit-for-bit identical quad land as one stored copy, not two, so this is
// the one place spec invariant 6's multiset-union wording is narrowed by
// the backend rather than honored literally.
func testAuditAppendDuplicateCollapses(t *testing.T, newStore NewStoreFunc) {
	ctx := context.Background()
	svc := newService(t, newStore)
	sess := session.New(quad.IRI("trellis:agent/test"))
	id := quad.IRI("trellis:data/s1")
	require.NoError(t, svc.Create(ctx, id, sess, ldp.RDFSource, quad.NewDataset(), quad.IRI("trellis:data/"), nil))

	same := quad.New(id, id, prov.AtTime, quad.NewLiteral("2020-01-01T00:00:00Z"))
	require.NoError(t, svc.Add(ctx, id, sess, quad.NewDataset(same)))
	require.NoError(t, svc.Add(ctx, id, sess, quad.NewDataset(same)))

	r, err := svc.Get(ctx, id)
	require.NoError(t, err)
	audit, err := r.Stream(trellis.PreferAudit)
	require.NoError(t, err)
	require.Len(t, audit.Quads(), 1)
}

// testBasicContainer is scenario S5, exercising invariant 7 (containment).
func testBasicContainer(t *testing.T, newStore NewStoreFunc) {
	ctx := context.Background()
	svc := newService(t, newStore)
	sess := session.New(quad.IRI("trellis:agent/test"))
	c := quad.IRI("trellis:data/c")
	require.NoError(t, svc.Create(ctx, c, sess, ldp.BasicContainer, quad.NewDataset(), quad.IRI("trellis:data/"), nil))

	child1 := quad.IRI("trellis:data/c/child1")
	child2 := quad.IRI("trellis:data/c/child2")
	require.NoError(t, svc.Create(ctx, child1, sess, ldp.RDFSource, quad.NewDataset(), c, nil))
	require.NoError(t, svc.Create(ctx, child2, sess, ldp.RDFSource, quad.NewDataset(), c, nil))

	r, err := svc.Get(ctx, c)
	require.NoError(t, err)
	containment, err := r.Stream(ldp.PreferContainment)
	require.NoError(t, err)
	require.Len(t, containment.Quads(), 2)
	require.True(t, containsTriple(containment, c, ldp.Contains, child1))
	require.True(t, containsTriple(containment, c, ldp.Contains, child2))
}

// testIndirectContainer is scenario S6.
func testIndirectContainer(t *testing.T, newStore NewStoreFunc) {
	ctx := context.Background()
	svc := newService(t, newStore)
	sess := session.New(quad.IRI("trellis:agent/test"))

	m := quad.IRI("trellis:data/members")
	c := quad.IRI("trellis:data/c")
	require.NoError(t, svc.Create(ctx, c, sess, ldp.IndirectContainer, quad.NewDataset(
		quad.New(c, c, ldp.MembershipResource, m),
		quad.New(c, c, ldp.HasMemberRelation, dc.Relation),
		quad.New(c, c, ldp.InsertedContentRelation, foaf.PrimaryTopic),
	), quad.IRI("trellis:data/"), nil))

	child1 := quad.IRI("trellis:data/c/child1")
	v1 := quad.IRI("http://ex/topic/1")
	require.NoError(t, svc.Create(ctx, child1, sess, ldp.RDFSource, quad.NewDataset(
		quad.New(child1, child1, foaf.PrimaryTopic, v1),
	), c, nil))

	child2 := quad.IRI("trellis:data/c/child2")
	v2 := quad.IRI("http://ex/topic/2")
	require.NoError(t, svc.Create(ctx, child2, sess, ldp.RDFSource, quad.NewDataset(
		quad.New(child2, child2, foaf.PrimaryTopic, v2),
	), c, nil))

	r, err := svc.Get(ctx, c)
	require.NoError(t, err)
	membership, err := r.Stream(ldp.PreferMembership)
	require.NoError(t, err)
	require.True(t, containsTriple(membership, m, dc.Relation, v1))
	require.True(t, containsTriple(membership, m, dc.Relation, v2))
}

// testDirectContainerInverse covers scenario-adjacent universal invariant 8
// (inverse membership via isMemberOfRelation).
func testDirectContainerInverse(t *testing.T, newStore NewStoreFunc) {
	ctx := context.Background()
	svc := newService(t, newStore)
	sess := session.New(quad.IRI("trellis:agent/test"))

	m := quad.IRI("trellis:data/members")
	c := quad.IRI("trellis:data/c")
	require.NoError(t, svc.Create(ctx, c, sess, ldp.DirectContainer, quad.NewDataset(
		quad.New(c, c, ldp.MembershipResource, m),
		quad.New(c, c, ldp.IsMemberOfRelation, dc.Relation),
	), quad.IRI("trellis:data/"), nil))

	child1 := quad.IRI("trellis:data/c/child1")
	require.NoError(t, svc.Create(ctx, child1, sess, ldp.RDFSource, quad.NewDataset(), c, nil))

	r, err := svc.Get(ctx, c)
	require.NoError(t, err)
	membership, err := r.Stream(ldp.PreferMembership)
	require.NoError(t, err)
	require.True(t, containsTriple(membership, c, dc.Relation, m))
}

// testIdentifierGeneration is universal invariant 10 (relaxed to 200 draws
// to keep this suite fast; the invariant's own uniqueness property does not
// depend on the draw count).
func testIdentifierGeneration(t *testing.T, newStore NewStoreFunc) {
	svc := newService(t, newStore)
	seen := make(map[string]bool, 200)
	for i := 0; i < 200; i++ {
		id := svc.GenerateIdentifier()
		require.False(t, seen[id], "duplicate identifier %q", id)
		seen[id] = true
	}
}

// testTouch covers universal invariant 11.
func testTouch(t *testing.T, newStore NewStoreFunc) {
	ctx := context.Background()
	svc := newService(t, newStore)
	sess := session.New(quad.IRI("trellis:agent/test"))
	id := quad.IRI("trellis:data/s1")
	require.NoError(t, svc.Create(ctx, id, sess, ldp.RDFSource, quad.NewDataset(), quad.IRI("trellis:data/"), nil))

	before, err := svc.Get(ctx, id)
	require.NoError(t, err)
	require.NoError(t, svc.Touch(ctx, id))
	after, err := svc.Get(ctx, id)
	require.NoError(t, err)
	require.False(t, after.Modified().Before(before.Modified()))
}

func testTouchMissingFails(t *testing.T, newStore NewStoreFunc) {
	svc := newService(t, newStore)
	err := svc.Touch(context.Background(), quad.IRI("trellis:data/never-created"))
	require.Error(t, err)
}

func testUnsupportedModel(t *testing.T, newStore NewStoreFunc) {
	store := newStore(t)
	t.Cleanup(func() { require.NoError(t, store.Close()) })
	svc := service.New(store, nil, ldp.RDFSource)
	sess := session.New(quad.IRI("trellis:agent/test"))
	err := svc.Create(context.Background(), quad.IRI("trellis:data/c"), sess, ldp.BasicContainer, quad.NewDataset(), "", nil)
	require.Error(t, err)
}

// testCancelledContext covers the fourth spec §7 error classification:
// an operation given an already-cancelled context reports
// ldperror.ErrCancelled rather than a generic backend failure.
func testCancelledContext(t *testing.T, newStore NewStoreFunc) {
	svc := newService(t, newStore)
	sess := session.New(quad.IRI("trellis:agent/test"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := svc.Create(ctx, quad.IRI("trellis:data/cancelled"), sess, ldp.RDFSource, quad.NewDataset(), quad.IRI("trellis:data/"), nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, ldperror.ErrCancelled))
}

func containsTriple(ds *quad.Dataset, s quad.Subject, p quad.IRI, o quad.Term) bool {
	for _, q := range ds.Quads() {
		if q.Subject.Equal(s) && q.Predicate == p && q.Object.Equal(o) {
			return true
		}
	}
	return false
}
