// Package dc defines the Dublin Core terms the resource engine's
// server-managed metadata is written and read against.
package dc

import (
	"github.com/quadmesh/ldp/quad"
	"github.com/quadmesh/ldp/vocab"
)

const NS = "http://purl.org/dc/terms/"

func init() { vocab.RegisterPrefix("dc:", NS) }

const (
	Type       quad.IRI = NS + "type"
	Modified   quad.IRI = NS + "modified"
	IsPartOf   quad.IRI = NS + "isPartOf"
	HasPart    quad.IRI = NS + "hasPart"
	Format     quad.IRI = NS + "format"
	Extent     quad.IRI = NS + "extent"
	Title      quad.IRI = NS + "title"
	Subject    quad.IRI = NS + "subject"
	Relation   quad.IRI = NS + "relation"
)
