// Package resource implements the resource projection component (spec
// §4.2): given an identifier, derive a Resource view by executing a fixed
// set of graph patterns against a graph.Store. It is grounded directly on
// the teacher-adjacent reference implementation
// (TriplestoreResource.java): the metadata fetch with its left-outer
// binary join, the sentinel detection (exists/isDeleted), and the
// five-entry graph-name dispatch table (fetchUserQuads, fetchAuditQuads,
// fetchAclQuads, fetchContainmentQuads, fetchMembershipQuads) all follow
// that file's structure line for line, translated from Jena/SPARQL
// elements into this module's graph.Pattern vocabulary.
package resource

import (
	"time"

	"github.com/quadmesh/ldp/quad"
)

// Kind distinguishes a live resource from the two sentinel states. It
// realizes spec §9's "Dynamic dispatch → tagged variants" design note:
// ResourceView = Live(...) | Missing | Deleted.
type Kind int

const (
	KindLive Kind = iota
	KindMissing
	KindDeleted
)

func (k Kind) String() string {
	switch k {
	case KindLive:
		return "live"
	case KindMissing:
		return "missing"
	case KindDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// BinaryMetadata describes the binary payload of a NonRDFSource resource
// (spec §3, invariant 4).
type BinaryMetadata struct {
	Location quad.IRI
	Modified time.Time
	MimeType string // empty means absent
	HasSize  bool
	Size     int64
}

// Resource is the immutable, derived snapshot spec §3 defines. Missing and
// Deleted are only ever populated with Kind; every other field is
// meaningful only when Kind == KindLive.
type Resource struct {
	kind Kind

	identifier       quad.IRI
	interactionModel quad.IRI
	modified         time.Time

	hasContainer bool
	container    quad.IRI

	binary *BinaryMetadata

	hasMembershipResource bool
	membershipResource    quad.IRI

	hasMemberRelation bool
	memberRelation    quad.IRI

	hasIsMemberOfRelation bool
	isMemberOfRelation    quad.IRI

	hasInsertedContentRelation bool
	insertedContentRelation    quad.IRI

	streamer streamer
}

// streamer is the seam a live Resource uses to answer Stream calls lazily;
// it is satisfied by *projector (projection.go). Kept as an interface so
// tests can substitute a fixed set of quads without a backing store.
type streamer interface {
	stream(graphName quad.IRI) (*quad.Dataset, error)
	streamAll() (*quad.Dataset, error)
}

// Missing is the sentinel returned when no record exists for an
// identifier (spec §3, §4.4).
var Missing = &Resource{kind: KindMissing}

// Deleted is the sentinel returned when a tombstone marker is present for
// an identifier (spec §3, §4.4).
var Deleted = &Resource{kind: KindDeleted}

func (r *Resource) Kind() Kind { return r.kind }

func (r *Resource) Identifier() quad.IRI { return r.identifier }

func (r *Resource) InteractionModel() quad.IRI { return r.interactionModel }

func (r *Resource) Modified() time.Time { return r.modified }

func (r *Resource) Container() (quad.IRI, bool) { return r.container, r.hasContainer }

func (r *Resource) Binary() (*BinaryMetadata, bool) { return r.binary, r.binary != nil }

func (r *Resource) MembershipResource() (quad.IRI, bool) {
	return r.membershipResource, r.hasMembershipResource
}

func (r *Resource) MemberRelation() (quad.IRI, bool) {
	return r.memberRelation, r.hasMemberRelation
}

func (r *Resource) IsMemberOfRelation() (quad.IRI, bool) {
	return r.isMemberOfRelation, r.hasIsMemberOfRelation
}

func (r *Resource) InsertedContentRelation() (quad.IRI, bool) {
	return r.insertedContentRelation, r.hasInsertedContentRelation
}

// Stream returns the quads belonging to one projection graph. Per spec §5,
// projection streams are read-only and may be consumed at most once:
// re-issuing Stream for the same graph name always runs a fresh query
// against the backend rather than replaying a cached result.
func (r *Resource) Stream(graphName quad.IRI) (*quad.Dataset, error) {
	if r.kind != KindLive {
		return quad.NewDataset(), nil
	}
	return r.streamer.stream(graphName)
}

// StreamAll concatenates every projection graph's quads, mirroring the
// teacher's no-argument stream() overload.
func (r *Resource) StreamAll() (*quad.Dataset, error) {
	if r.kind != KindLive {
		return quad.NewDataset(), nil
	}
	return r.streamer.streamAll()
}
