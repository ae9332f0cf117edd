// Package ldp defines the Linked Data Platform vocabulary terms this engine
// needs: interaction models, containment, and membership predicates.
package ldp

import (
	"github.com/quadmesh/ldp/quad"
	"github.com/quadmesh/ldp/vocab"
)

const NS = "http://www.w3.org/ns/ldp#"

func init() { vocab.RegisterPrefix("ldp:", NS) }

// Interaction models.
const (
	RDFSource        quad.IRI = NS + "RDFSource"
	NonRDFSource     quad.IRI = NS + "NonRDFSource"
	Container        quad.IRI = NS + "Container"
	BasicContainer   quad.IRI = NS + "BasicContainer"
	DirectContainer  quad.IRI = NS + "DirectContainer"
	IndirectContainer quad.IRI = NS + "IndirectContainer"
)

// Containment and membership predicates.
const (
	Contains               quad.IRI = NS + "contains"
	Member                 quad.IRI = NS + "member"
	MembershipResource     quad.IRI = NS + "membershipResource"
	HasMemberRelation      quad.IRI = NS + "hasMemberRelation"
	IsMemberOfRelation     quad.IRI = NS + "isMemberOfRelation"
	InsertedContentRelation quad.IRI = NS + "insertedContentRelation"
	MemberSubject          quad.IRI = NS + "MemberSubject"
)

// Synthetic projection graph names for containment and membership, matching
// spec §3's projection-graph table (PreferContainment, PreferMembership).
const (
	PreferContainment quad.IRI = NS + "PreferContainment"
	PreferMembership  quad.IRI = NS + "PreferMembership"
)

// AllInteractionModels lists every interaction model this vocabulary knows
// about, in the order spec §3 introduces them.
var AllInteractionModels = []quad.IRI{
	RDFSource, NonRDFSource, Container, BasicContainer, DirectContainer, IndirectContainer,
}

// IsContainer reports whether model is a container flavor. Per spec §4.4,
// "is container" is true iff the IRI's lexical form ends with "Container" —
// equality comparison only, no ontological reasoning.
func IsContainer(model quad.IRI) bool {
	return model.EndsWith("Container")
}
