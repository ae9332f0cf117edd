// Package as defines the small slice of the W3C Activity Streams 2.0
// vocabulary the default event serializer emits activity types from.
package as

import (
	"github.com/quadmesh/ldp/quad"
	"github.com/quadmesh/ldp/vocab"
)

const NS = "https://www.w3.org/ns/activitystreams#"

func init() { vocab.RegisterPrefix("as:", NS) }

const (
	Create quad.IRI = NS + "Create"
	Update quad.IRI = NS + "Update"
	Delete quad.IRI = NS + "Delete"
)
