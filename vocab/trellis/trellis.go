// Package trellis defines the engine's own server-managed namespace: the
// projection graph names and sentinel markers that spec §3 and §6 name
// literally (PreferUserManaged, PreferServerManaged, PreferAudit,
// PreferAccessControl, DeletedResource).
package trellis

import (
	"github.com/quadmesh/ldp/quad"
	"github.com/quadmesh/ldp/vocab"
)

const NS = "http://www.trellisldp.org/ns/trellis#"

func init() { vocab.RegisterPrefix("trellis:", NS) }

const (
	PreferUserManaged    quad.IRI = NS + "PreferUserManaged"
	PreferServerManaged  quad.IRI = NS + "PreferServerManaged"
	PreferAudit          quad.IRI = NS + "PreferAudit"
	PreferAccessControl  quad.IRI = NS + "PreferAccessControl"

	// DeletedResource is the tombstone marker: its presence as the object of
	// (id, dc:type, DeletedResource) in the server-managed graph is what
	// distinguishes a DELETED resource from a live one (spec §4.4).
	DeletedResource quad.IRI = NS + "DeletedResource"
)
