// Package prov defines the PROV-O terms used in audit-graph provenance
// entries (spec §8 scenario S4).
package prov

import (
	"github.com/quadmesh/ldp/quad"
	"github.com/quadmesh/ldp/vocab"
)

const NS = "http://www.w3.org/ns/prov#"

func init() { vocab.RegisterPrefix("prov:", NS) }

const (
	Activity       quad.IRI = NS + "Activity"
	WasGeneratedBy quad.IRI = NS + "wasGeneratedBy"
	AtTime         quad.IRI = NS + "atTime"
)
