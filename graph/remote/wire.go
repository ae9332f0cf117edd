// Package remote implements the "external triplestore backend speaking a
// remote query/update protocol" half of spec §4.1, grounded in the
// teacher's client/client.go (an *http.Client hitting a Cayley server over
// HTTP) and server/http + internal/http (httprouter-based endpoint
// muxing). The wire protocol here is this module's own quad/pattern JSON
// encoding rather than SPARQL — no SPARQL client or server library appears
// anywhere in the retrieval pack — but the client/server split, the
// connection-options struct, and the HTTP error-translation convention all
// follow the teacher directly.
package remote

import (
	"encoding/json"
	"fmt"

	"github.com/quadmesh/ldp/graph"
	"github.com/quadmesh/ldp/quad"
)

type wireTerm struct {
	Kind     string `json:"kind"` // "iri" | "literal" | "bnode"
	Value    string `json:"value,omitempty"`
	Datatype string `json:"datatype,omitempty"`
	Lang     string `json:"lang,omitempty"`
}

func encodeTerm(t quad.Term) wireTerm {
	switch v := t.(type) {
	case quad.IRI:
		return wireTerm{Kind: "iri", Value: string(v)}
	case quad.BlankNode:
		return wireTerm{Kind: "bnode", Value: string(v)}
	case quad.Literal:
		return wireTerm{Kind: "literal", Value: v.Lexical, Datatype: string(v.Datatype), Lang: v.Lang}
	default:
		panic(fmt.Sprintf("remote: unsupported term type %T", t))
	}
}

func decodeTerm(w wireTerm) (quad.Term, error) {
	switch w.Kind {
	case "iri":
		return quad.IRI(w.Value), nil
	case "bnode":
		return quad.BlankNode(w.Value), nil
	case "literal":
		return quad.Literal{Lexical: w.Value, Datatype: quad.IRI(w.Datatype), Lang: w.Lang}, nil
	default:
		return nil, fmt.Errorf("remote: unknown term kind %q", w.Kind)
	}
}

func decodeSubject(w wireTerm) (quad.Subject, error) {
	t, err := decodeTerm(w)
	if err != nil {
		return nil, err
	}
	s, ok := t.(quad.Subject)
	if !ok {
		return nil, fmt.Errorf("remote: term %v is not valid in subject position", t)
	}
	return s, nil
}

type wireQuad struct {
	Graph     wireTerm `json:"graph"`
	Subject   wireTerm `json:"subject"`
	Predicate wireTerm `json:"predicate"`
	Object    wireTerm `json:"object"`
}

func encodeQuad(q quad.Quad) wireQuad {
	return wireQuad{
		Graph:     encodeTerm(q.Graph),
		Subject:   encodeTerm(q.Subject),
		Predicate: encodeTerm(q.Predicate),
		Object:    encodeTerm(q.Object),
	}
}

func decodeQuad(w wireQuad) (quad.Quad, error) {
	g, err := decodeTerm(w.Graph)
	if err != nil {
		return quad.Quad{}, err
	}
	gi, ok := g.(quad.IRI)
	if !ok {
		return quad.Quad{}, fmt.Errorf("remote: graph term must be an IRI")
	}
	s, err := decodeSubject(w.Subject)
	if err != nil {
		return quad.Quad{}, err
	}
	p, err := decodeTerm(w.Predicate)
	if err != nil {
		return quad.Quad{}, err
	}
	pi, ok := p.(quad.IRI)
	if !ok {
		return quad.Quad{}, fmt.Errorf("remote: predicate term must be an IRI")
	}
	o, err := decodeTerm(w.Object)
	if err != nil {
		return quad.Quad{}, err
	}
	return quad.New(gi, s, pi, o), nil
}

type wirePatternTerm struct {
	Var   string    `json:"var,omitempty"`
	Const *wireTerm `json:"const,omitempty"`
}

func encodePatternTerm(t graph.Term) wirePatternTerm {
	if t.IsVar() {
		return wirePatternTerm{Var: string(t.Var)}
	}
	c := encodeTerm(t.Const)
	return wirePatternTerm{Const: &c}
}

func decodePatternTerm(w wirePatternTerm) (graph.Term, error) {
	if w.Const == nil {
		return graph.V(graph.Var(w.Var)), nil
	}
	t, err := decodeTerm(*w.Const)
	if err != nil {
		return graph.Term{}, err
	}
	return graph.C(t), nil
}

type wireTriplePattern struct {
	Subject   wirePatternTerm `json:"subject"`
	Predicate wirePatternTerm `json:"predicate"`
	Object    wirePatternTerm `json:"object"`
}

type wireBlock struct {
	Graph    wirePatternTerm     `json:"graph"`
	Triples  []wireTriplePattern `json:"triples"`
	Optional bool                `json:"optional,omitempty"`
}

type wirePattern struct {
	Blocks  []wireBlock `json:"blocks"`
	Project []string    `json:"project"`
}

func encodePattern(p graph.Pattern) wirePattern {
	out := wirePattern{Project: make([]string, len(p.Project))}
	for i, v := range p.Project {
		out.Project[i] = string(v)
	}
	for _, b := range p.Blocks {
		wb := wireBlock{Graph: encodePatternTerm(b.Graph), Optional: b.Optional}
		for _, tp := range b.Triples {
			wb.Triples = append(wb.Triples, wireTriplePattern{
				Subject:   encodePatternTerm(tp.Subject),
				Predicate: encodePatternTerm(tp.Predicate),
				Object:    encodePatternTerm(tp.Object),
			})
		}
		out.Blocks = append(out.Blocks, wb)
	}
	return out
}

func decodePattern(w wirePattern) (graph.Pattern, error) {
	p := graph.Pattern{Project: make([]graph.Var, len(w.Project))}
	for i, v := range w.Project {
		p.Project[i] = graph.Var(v)
	}
	for _, wb := range w.Blocks {
		gt, err := decodePatternTerm(wb.Graph)
		if err != nil {
			return graph.Pattern{}, err
		}
		block := graph.Block{Graph: gt, Optional: wb.Optional}
		for _, wt := range wb.Triples {
			s, err := decodePatternTerm(wt.Subject)
			if err != nil {
				return graph.Pattern{}, err
			}
			pr, err := decodePatternTerm(wt.Predicate)
			if err != nil {
				return graph.Pattern{}, err
			}
			o, err := decodePatternTerm(wt.Object)
			if err != nil {
				return graph.Pattern{}, err
			}
			block.Triples = append(block.Triples, graph.TP(s, pr, o))
		}
		p.Blocks = append(p.Blocks, block)
	}
	return p, nil
}

type wireBinding map[string]wireTerm

func encodeBinding(b graph.Binding) wireBinding {
	out := make(wireBinding, len(b))
	for v, t := range b {
		out[string(v)] = encodeTerm(t)
	}
	return out
}

func decodeBinding(w wireBinding) (graph.Binding, error) {
	out := make(graph.Binding, len(w))
	for v, wt := range w {
		t, err := decodeTerm(wt)
		if err != nil {
			return nil, err
		}
		out[graph.Var(v)] = t
	}
	return out, nil
}

func marshal(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err) // programmer error: every wire type round-trips cleanly
	}
	return b
}
