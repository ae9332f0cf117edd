// Copyright 2026 The quadmesh/ldp Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package quad defines the RDF term and quad vocabulary shared by every
// component of the resource engine: IRIs, literals, blank nodes, quads and
// the in-memory dataset that groups them.
//
// The shapes here are deliberately close to github.com/cayleygraph/quad's
// Value/Quad split (a narrow marker interface plus a handful of concrete
// term types), adapted to a graph-first quad instead of a labeled triple.
package quad

import "strings"

// Term is any RDF term that may appear as a quad's subject, predicate or
// object: an IRI, a Literal, or a BlankNode.
type Term interface {
	// String renders the term in a debug-friendly, not necessarily
	// standards-compliant, textual form.
	String() string

	// Equal reports whether two terms denote the same RDF value. Two IRIs
	// are equal iff their lexical forms are equal; literals compare lexical
	// form, datatype and language tag; blank nodes compare their process
	// local identifier.
	Equal(Term) bool

	isTerm()
}

// IRI is an absolute web-style identifier. Two IRIs are equal iff their
// lexical forms are equal.
type IRI string

func (i IRI) String() string { return string(i) }

func (i IRI) Equal(t Term) bool {
	o, ok := t.(IRI)
	return ok && i == o
}

func (IRI) isTerm() {}

// EndsWith reports whether the IRI's lexical form ends with suffix. Used to
// classify container interaction models per spec §4.4 ("is container" is
// true iff the IRI ends with "Container").
func (i IRI) EndsWith(suffix string) bool {
	return strings.HasSuffix(string(i), suffix)
}

// BlankNode is an opaque, process-local identifier with no meaning outside
// the dataset that mentions it.
type BlankNode string

func (b BlankNode) String() string { return "_:" + string(b) }

func (b BlankNode) Equal(t Term) bool {
	o, ok := t.(BlankNode)
	return ok && b == o
}

func (BlankNode) isTerm() {}

// Literal is a lexical form plus an optional datatype IRI and an optional
// language tag. A literal never carries both a datatype and a language tag.
type Literal struct {
	Lexical  string
	Datatype IRI    // zero value means the RDF-implicit xsd:string / plain literal
	Lang     string // zero value means no language tag
}

// NewLiteral builds a plain (untyped, unlocalized) literal.
func NewLiteral(lexical string) Literal { return Literal{Lexical: lexical} }

// NewTypedLiteral builds a literal carrying an explicit datatype IRI.
func NewTypedLiteral(lexical string, datatype IRI) Literal {
	return Literal{Lexical: lexical, Datatype: datatype}
}

// NewLangLiteral builds a language-tagged literal.
func NewLangLiteral(lexical, lang string) Literal {
	return Literal{Lexical: lexical, Lang: lang}
}

func (l Literal) String() string {
	switch {
	case l.Lang != "":
		return `"` + l.Lexical + `"@` + l.Lang
	case l.Datatype != "":
		return `"` + l.Lexical + `"^^` + l.Datatype.String()
	default:
		return `"` + l.Lexical + `"`
	}
}

func (l Literal) Equal(t Term) bool {
	o, ok := t.(Literal)
	return ok && l.Lexical == o.Lexical && l.Datatype == o.Datatype && l.Lang == o.Lang
}

func (Literal) isTerm() {}

// Subject is any term valid in subject position: an IRI or a BlankNode.
type Subject interface {
	Term
	isSubject()
}

func (IRI) isSubject()       {}
func (BlankNode) isSubject() {}
