// Package rdf defines the core RDF vocabulary term(s) the engine needs.
package rdf

import (
	"github.com/quadmesh/ldp/quad"
	"github.com/quadmesh/ldp/vocab"
)

const NS = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

func init() { vocab.RegisterPrefix("rdf:", NS) }

const Type quad.IRI = NS + "type"
