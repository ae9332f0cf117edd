// Package foaf defines the FOAF terms used to link a resource to the
// non-RDF entity it describes, exercised by indirect containment's
// insertedContentRelation.
package foaf

import (
	"github.com/quadmesh/ldp/quad"
	"github.com/quadmesh/ldp/vocab"
)

const NS = "http://xmlns.com/foaf/0.1/"

func init() { vocab.RegisterPrefix("foaf:", NS) }

const (
	PrimaryTopic quad.IRI = NS + "primaryTopic"
)
