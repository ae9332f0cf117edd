package resource

import (
	"context"
	"strconv"
	"time"

	"github.com/quadmesh/ldp/graph"
	"github.com/quadmesh/ldp/internal/clog"
	"github.com/quadmesh/ldp/quad"
	"github.com/quadmesh/ldp/vocab/dc"
	"github.com/quadmesh/ldp/vocab/ldp"
	"github.com/quadmesh/ldp/vocab/rdf"
	"github.com/quadmesh/ldp/vocab/trellis"
)

// projector is the live implementation of streamer, holding just enough
// state (a store handle and an identifier) to answer any projection-graph
// query on demand, exactly as TriplestoreResource's graphMapper closures
// close over `this.identifier` and `this.rdfConnection`.
type projector struct {
	ctx              context.Context
	store            graph.Store
	identifier       quad.IRI
	interactionModel quad.IRI
	includeTypeTriple bool
}

// FindResource loads a Resource, per spec §4.2: fetch metadata, classify
// the sentinel state, and if live, hand back a Resource whose Stream
// method lazily executes the fixed graph-mapper queries.
func FindResource(ctx context.Context, store graph.Store, id quad.IRI, includeTypeTriple bool) (*Resource, error) {
	meta, binary, err := fetchMetadata(ctx, store, id)
	if err != nil {
		return nil, err
	}
	interactionModel, hasModel := asIRI(meta, rdf.Type)
	modifiedLit, hasModified := asLiteral(meta, dc.Modified)
	if !hasModel || !hasModified {
		clog.Infof("resource: %s not found", id)
		return Missing, nil
	}
	if deletedType, ok := asIRI(meta, dc.Type); ok && deletedType == trellis.DeletedResource {
		clog.Infof("resource: %s is deleted", id)
		return Deleted, nil
	}

	modified, err := parseInstant(modifiedLit)
	if err != nil {
		return nil, err
	}

	r := &Resource{
		kind:             KindLive,
		identifier:       id,
		interactionModel: interactionModel,
		modified:         modified,
		streamer: &projector{
			ctx: ctx, store: store, identifier: id,
			interactionModel: interactionModel, includeTypeTriple: includeTypeTriple,
		},
	}
	if v, ok := asIRI(meta, dc.IsPartOf); ok {
		r.container, r.hasContainer = v, true
	}
	if v, ok := asIRI(meta, ldp.MembershipResource); ok {
		r.membershipResource, r.hasMembershipResource = v, true
	}
	if v, ok := asIRI(meta, ldp.HasMemberRelation); ok {
		r.memberRelation, r.hasMemberRelation = v, true
	}
	if v, ok := asIRI(meta, ldp.IsMemberOfRelation); ok {
		r.isMemberOfRelation, r.hasIsMemberOfRelation = v, true
	}
	if v, ok := asIRI(meta, ldp.InsertedContentRelation); ok {
		r.insertedContentRelation, r.hasInsertedContentRelation = v, true
	}
	if loc, ok := asIRI(meta, dc.HasPart); ok {
		bm := &BinaryMetadata{Location: loc}
		if lit, ok := asLiteral(binary, dc.Modified); ok {
			if t, err := parseInstant(lit); err == nil {
				bm.Modified = t
			}
		}
		if lit, ok := asLiteral(binary, dc.Format); ok {
			bm.MimeType = lit.Lexical
		}
		if lit, ok := asLiteral(binary, dc.Extent); ok {
			if n, err := strconv.ParseInt(lit.Lexical, 10, 64); err == nil {
				bm.HasSize, bm.Size = true, n
			}
		}
		r.binary = bm
	}
	return r, nil
}

// fetchMetadata executes the metadata-fetch query from spec §4.2 step 1:
// SELECT ?predicate ?object [OPTIONAL binary triples] FROM
// trellis:PreferServerManaged WHERE { id ?predicate ?object }.
func fetchMetadata(ctx context.Context, store graph.Store, id quad.IRI) (predicates, binary map[quad.IRI]quad.Term, err error) {
	const (
		p   = graph.Var("p")
		o   = graph.Var("o")
		bp  = graph.Var("bp")
		bo  = graph.Var("bo")
		bs  = graph.Var("bs")
	)
	pattern := graph.Pattern{
		Blocks: []graph.Block{
			{
				Graph:   graph.C(trellis.PreferServerManaged),
				Triples: []graph.TriplePattern{graph.TP(graph.C(id), graph.V(p), graph.V(o))},
			},
			{
				Graph:    graph.C(trellis.PreferServerManaged),
				Optional: true,
				Triples: []graph.TriplePattern{
					graph.TP(graph.C(id), graph.C(dc.HasPart), graph.V(bs)),
					graph.TP(graph.C(id), graph.C(rdf.Type), graph.C(ldp.NonRDFSource)),
					graph.TP(graph.V(bs), graph.V(bp), graph.V(bo)),
				},
			},
		},
		Project: []graph.Var{p, o, bp, bo},
	}
	it, err := store.Query(ctx, pattern)
	if err != nil {
		return nil, nil, err
	}
	defer it.Close()

	predicates = make(map[quad.IRI]quad.Term)
	binary = make(map[quad.IRI]quad.Term)
	for it.Next(ctx) {
		b := it.Binding()
		if pred, ok := b.Get(p); ok {
			if obj, ok := b.Get(o); ok {
				if iri, ok := pred.(quad.IRI); ok {
					predicates[iri] = obj
				}
			}
		}
		if bpred, ok := b.Get(bp); ok {
			if bobj, ok := b.Get(bo); ok {
				if iri, ok := bpred.(quad.IRI); ok {
					binary[iri] = bobj
				}
			}
		}
	}
	return predicates, binary, it.Err()
}

func asIRI(m map[quad.IRI]quad.Term, pred quad.IRI) (quad.IRI, bool) {
	t, ok := m[pred]
	if !ok {
		return "", false
	}
	iri, ok := t.(quad.IRI)
	return iri, ok
}

func asLiteral(m map[quad.IRI]quad.Term, pred quad.IRI) (quad.Literal, bool) {
	t, ok := m[pred]
	if !ok {
		return quad.Literal{}, false
	}
	lit, ok := t.(quad.Literal)
	return lit, ok
}

func parseInstant(lit quad.Literal) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, lit.Lexical)
}

// stream dispatches to the fixed graph mapper spec §4.2 defines. Five
// projection graphs are dispatched; any other name, PreferServerManaged
// included, yields an empty dataset. User-managed, audit and ACL share one
// code path (fetchAllFromGraph) parameterized by the actual backing named
// graph.
func (p *projector) stream(graphName quad.IRI) (*quad.Dataset, error) {
	switch graphName {
	case trellis.PreferUserManaged:
		return p.fetchUserQuads()
	case trellis.PreferAudit:
		return p.fetchAllFromGraph(auditGraphName(p.identifier), trellis.PreferAudit)
	case trellis.PreferAccessControl:
		return p.fetchAllFromGraph(aclGraphName(p.identifier), trellis.PreferAccessControl)
	case ldp.PreferContainment:
		return p.fetchContainmentQuads()
	case ldp.PreferMembership:
		return p.fetchMembershipQuads()
	default:
		return quad.NewDataset(), nil
	}
}

func (p *projector) streamAll() (*quad.Dataset, error) {
	out := quad.NewDataset()
	for _, g := range []quad.IRI{
		trellis.PreferUserManaged, trellis.PreferAudit, trellis.PreferAccessControl,
		ldp.PreferContainment, ldp.PreferMembership,
	} {
		ds, err := p.stream(g)
		if err != nil {
			return nil, err
		}
		out.AddAll(ds)
	}
	return out, nil
}

// auditGraphName and aclGraphName realize spec §6's persisted-state layout:
// <id>?ext=audit and <id>?ext=acl.
func auditGraphName(id quad.IRI) quad.IRI { return quad.IRI(string(id) + "?ext=audit") }
func aclGraphName(id quad.IRI) quad.IRI   { return quad.IRI(string(id) + "?ext=acl") }

// fetchAllFromGraph is the direct equivalent of
// TriplestoreResource.fetchAllFromGraph: SELECT ?s ?p ?o WHERE { GRAPH
// fromGraphName { ?s ?p ?o } }, re-emitted under toGraphName.
func (p *projector) fetchAllFromGraph(fromGraphName, toGraphName quad.IRI) (*quad.Dataset, error) {
	const s, pr, o = graph.Var("s"), graph.Var("p"), graph.Var("o")
	pattern := graph.Pattern{
		Blocks: []graph.Block{{
			Graph:   graph.C(fromGraphName),
			Triples: []graph.TriplePattern{graph.TP(graph.V(s), graph.V(pr), graph.V(o))},
		}},
		Project: []graph.Var{s, pr, o},
	}
	out := quad.NewDataset()
	err := p.eachBinding(pattern, func(b graph.Binding) error {
		subj, pred, obj, ok := tripleFromBinding(b, s, pr, o)
		if !ok {
			return nil
		}
		out.Add(quad.New(toGraphName, subj, pred, obj))
		return nil
	})
	return out, err
}

func (p *projector) fetchUserQuads() (*quad.Dataset, error) {
	out := quad.NewDataset()
	if p.includeTypeTriple {
		out.Add(quad.New(trellis.PreferUserManaged, p.identifier, rdf.Type, p.interactionModel))
	}
	ds, err := p.fetchAllFromGraph(p.identifier, trellis.PreferUserManaged)
	if err != nil {
		return nil, err
	}
	out.AddAll(ds)
	return out, nil
}

// fetchContainmentQuads is TriplestoreResource.fetchContainmentQuads:
// active only for container interaction models, one (id, ldp:contains,
// child) quad per child with `child dc:isPartOf id`.
func (p *projector) fetchContainmentQuads() (*quad.Dataset, error) {
	out := quad.NewDataset()
	if !ldp.IsContainer(p.interactionModel) {
		return out, nil
	}
	const child = graph.Var("child")
	pattern := graph.Pattern{
		Blocks: []graph.Block{{
			Graph:   graph.C(trellis.PreferServerManaged),
			Triples: []graph.TriplePattern{graph.TP(graph.V(child), graph.C(dc.IsPartOf), graph.C(p.identifier))},
		}},
		Project: []graph.Var{child},
	}
	err := p.eachBinding(pattern, func(b graph.Binding) error {
		c, ok := b.Get(child)
		if !ok {
			return nil
		}
		sub, ok := c.(quad.Subject)
		if !ok {
			return nil
		}
		out.Add(quad.New(ldp.PreferContainment, p.identifier, ldp.Contains, sub))
		return nil
	})
	return out, err
}

func (p *projector) fetchMembershipQuads() (*quad.Dataset, error) {
	out := quad.NewDataset()
	for _, fn := range []func() (*quad.Dataset, error){
		p.fetchIndirectMemberQuads,
		p.fetchDirectMemberQuads,
		p.fetchDirectMemberQuadsInverse,
	} {
		ds, err := fn()
		if err != nil {
			return nil, err
		}
		out.AddAll(ds)
	}
	return out, nil
}

// fetchIndirectMemberQuads is TriplestoreResource.fetchIndirectMemberQuads.
func (p *projector) fetchIndirectMemberQuads() (*quad.Dataset, error) {
	const (
		s    = graph.Var("s")
		res  = graph.Var("res")
		subj = graph.Var("subj")
		pred = graph.Var("pred")
		ocp  = graph.Var("o")
		objv = graph.Var("obj")
	)
	pattern := graph.Pattern{
		Blocks: []graph.Block{
			{
				Graph: graph.C(trellis.PreferServerManaged),
				Triples: []graph.TriplePattern{
					graph.TP(graph.V(s), graph.C(ldp.Member), graph.C(p.identifier)),
					graph.TP(graph.V(s), graph.C(ldp.MembershipResource), graph.V(subj)),
					graph.TP(graph.V(s), graph.C(rdf.Type), graph.C(ldp.IndirectContainer)),
					graph.TP(graph.V(s), graph.C(ldp.HasMemberRelation), graph.V(pred)),
					graph.TP(graph.V(s), graph.C(ldp.InsertedContentRelation), graph.V(ocp)),
					graph.TP(graph.V(res), graph.C(dc.IsPartOf), graph.V(s)),
				},
			},
			{
				Graph:   graph.V(res),
				Triples: []graph.TriplePattern{graph.TP(graph.V(res), graph.V(ocp), graph.V(objv))},
			},
		},
		Project: []graph.Var{subj, pred, objv},
	}
	out := quad.NewDataset()
	err := p.eachBinding(pattern, func(b graph.Binding) error {
		subject, predicate, object, ok := tripleFromBinding(b, subj, pred, objv)
		if !ok {
			return nil
		}
		out.Add(quad.New(ldp.PreferMembership, subject, predicate, object))
		return nil
	})
	return out, err
}

// fetchDirectMemberQuads is TriplestoreResource.fetchDirectMemberQuads
// (the forward direction: has-member-relation, insertedContentRelation ==
// ldp:MemberSubject).
func (p *projector) fetchDirectMemberQuads() (*quad.Dataset, error) {
	const (
		s    = graph.Var("s")
		subj = graph.Var("subj")
		pred = graph.Var("pred")
		objv = graph.Var("obj")
	)
	pattern := graph.Pattern{
		Blocks: []graph.Block{{
			Graph: graph.C(trellis.PreferServerManaged),
			Triples: []graph.TriplePattern{
				graph.TP(graph.V(s), graph.C(ldp.Member), graph.C(p.identifier)),
				graph.TP(graph.V(s), graph.C(ldp.MembershipResource), graph.V(subj)),
				graph.TP(graph.V(s), graph.C(ldp.HasMemberRelation), graph.V(pred)),
				graph.TP(graph.V(s), graph.C(ldp.InsertedContentRelation), graph.C(ldp.MemberSubject)),
				graph.TP(graph.V(objv), graph.C(dc.IsPartOf), graph.V(s)),
			},
		}},
		Project: []graph.Var{subj, pred, objv},
	}
	out := quad.NewDataset()
	err := p.eachBinding(pattern, func(b graph.Binding) error {
		subject, predicate, object, ok := tripleFromBinding(b, subj, pred, objv)
		if !ok {
			return nil
		}
		out.Add(quad.New(ldp.PreferMembership, subject, predicate, object))
		return nil
	})
	return out, err
}

// fetchDirectMemberQuadsInverse is
// TriplestoreResource.fetchDirectMemberQuadsInverse (the isMemberOfRelation
// path): the emitted subject is always this resource's own identifier.
func (p *projector) fetchDirectMemberQuadsInverse() (*quad.Dataset, error) {
	const (
		subject = graph.Var("subject")
		pred    = graph.Var("pred")
		objv    = graph.Var("obj")
	)
	pattern := graph.Pattern{
		Blocks: []graph.Block{{
			Graph: graph.C(trellis.PreferServerManaged),
			Triples: []graph.TriplePattern{
				graph.TP(graph.C(p.identifier), graph.C(dc.IsPartOf), graph.V(subject)),
				graph.TP(graph.V(subject), graph.C(ldp.IsMemberOfRelation), graph.V(pred)),
				graph.TP(graph.V(subject), graph.C(ldp.MembershipResource), graph.V(objv)),
				graph.TP(graph.V(subject), graph.C(ldp.InsertedContentRelation), graph.C(ldp.MemberSubject)),
			},
		}},
		Project: []graph.Var{pred, objv},
	}
	out := quad.NewDataset()
	err := p.eachBinding(pattern, func(b graph.Binding) error {
		predicate, ok := b.Get(pred)
		if !ok {
			return nil
		}
		predIRI, ok := predicate.(quad.IRI)
		if !ok {
			return nil
		}
		object, ok := b.Get(objv)
		if !ok {
			return nil
		}
		out.Add(quad.New(ldp.PreferMembership, p.identifier, predIRI, object))
		return nil
	})
	return out, err
}

func (p *projector) eachBinding(pattern graph.Pattern, fn func(graph.Binding) error) error {
	it, err := p.store.Query(p.ctx, pattern)
	if err != nil {
		return err
	}
	defer it.Close()
	for it.Next(p.ctx) {
		if err := fn(it.Binding()); err != nil {
			return err
		}
	}
	return it.Err()
}

func tripleFromBinding(b graph.Binding, s, pr, o graph.Var) (quad.Subject, quad.IRI, quad.Term, bool) {
	sv, ok := b.Get(s)
	if !ok {
		return nil, "", nil, false
	}
	subj, ok := sv.(quad.Subject)
	if !ok {
		return nil, "", nil, false
	}
	pv, ok := b.Get(pr)
	if !ok {
		return nil, "", nil, false
	}
	predIRI, ok := pv.(quad.IRI)
	if !ok {
		return nil, "", nil, false
	}
	ov, ok := b.Get(o)
	if !ok {
		return nil, "", nil, false
	}
	return subj, predIRI, ov, true
}
