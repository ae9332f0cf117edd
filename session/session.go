// Package session defines the narrow contract the resource service consumes
// from its caller on every mutating operation (spec §6): the acting agent's
// identity and when the interaction began. It carries no other capability —
// authentication and authorization are external collaborators' concerns.
package session

import (
	"time"

	"github.com/quadmesh/ldp/quad"
)

// Session supplies the acting agent IRI and creation timestamp that
// create/replace/delete/add record into the audit graph.
type Session interface {
	Agent() quad.IRI
	Created() time.Time
}

// simple is the reference Session, grounded on the spec's one-paragraph
// description: no example in the pack implements an analogous type, so this
// stays a plain immutable struct in the teacher's small-interface style.
type simple struct {
	agent   quad.IRI
	created time.Time
}

// New builds a Session for agent, stamped with the current time.
func New(agent quad.IRI) Session {
	return simple{agent: agent, created: time.Now()}
}

func (s simple) Agent() quad.IRI     { return s.agent }
func (s simple) Created() time.Time  { return s.created }
