// Package vocab implements an RDF namespace (vocabulary) registry, grounded
// on the teacher's own voc.RegisterPrefix convention. Each well-known
// vocabulary used by the resource engine (LDP, Dublin Core, RDF, the
// engine's own Trellis-style server-managed namespace, Activity Streams,
// PROV) registers its prefix here from an init() in its own subpackage,
// exactly as the teacher's voc/rdf, voc/rdfs and voc/schema packages do.
package vocab

import "sync"

var (
	mu       sync.RWMutex
	prefixes map[string]string
)

// RegisterPrefix associates a given prefix with a base vocabulary IRI.
func RegisterPrefix(pref, ns string) {
	mu.Lock()
	defer mu.Unlock()
	if prefixes == nil {
		prefixes = make(map[string]string)
	}
	prefixes[pref] = ns
}
