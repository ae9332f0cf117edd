// Package skos defines the SKOS terms used by tests and consumers that
// model a resource's user-managed graph as a concept.
package skos

import (
	"github.com/quadmesh/ldp/quad"
	"github.com/quadmesh/ldp/vocab"
)

const NS = "http://www.w3.org/2004/02/skos/core#"

func init() { vocab.RegisterPrefix("skos:", NS) }

const (
	Concept   quad.IRI = NS + "Concept"
	PrefLabel quad.IRI = NS + "prefLabel"
	AltLabel  quad.IRI = NS + "altLabel"
)
