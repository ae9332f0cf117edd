// Package event defines the notification contract the resource service
// emits on create/replace/delete (spec §6): an EventSerializer turns an
// Event into an optional wire-format string. Serialization failures never
// propagate to the service — per spec §7, the operation succeeds even if
// the serializer yields nothing.
package event

import (
	"encoding/json"
	"time"

	"github.com/quadmesh/ldp/internal/clog"
	"github.com/quadmesh/ldp/quad"
)

// Event describes one state transition, exactly per spec §6.
type Event struct {
	Identifier    quad.IRI
	Agents        []quad.IRI
	Target        quad.IRI
	TargetTypes   []quad.IRI
	ActivityTypes []quad.IRI
	Inbox         quad.IRI
	Created       time.Time
}

// EventSerializer turns an Event into a wire-format string. The boolean
// result reports whether serialization succeeded; a false result is not an
// error the service will surface, it is a legitimate "nothing to emit".
type EventSerializer interface {
	Serialize(Event) (string, bool)
}

// NoopSerializer never emits anything, grounded on the teacher-adjacent
// NoopImplementation.java no-op-implementation convention. It is the
// zero-value default a ResourceService uses when constructed without an
// explicit serializer.
type NoopSerializer struct{}

func (NoopSerializer) Serialize(Event) (string, bool) { return "", false }

// DefaultActivityStreamSerializer emits an ActivityStreams-flavored JSON
// object built by hand with encoding/json, grounded on
// DefaultActivityStreamServiceTest.java's expectation that the payload
// carries an "inbox" field naming the event's inbox IRI. The pack carries no
// ActivityStreams library, so this mirrors the Java service's own
// hand-built ObjectMapper payload rather than reaching for one.
type DefaultActivityStreamSerializer struct{}

type activityStreamPayload struct {
	ID            string    `json:"id,omitempty"`
	Type          []string  `json:"type,omitempty"`
	Actor         []string  `json:"actor,omitempty"`
	Object        string    `json:"object,omitempty"`
	ObjectType    []string  `json:"object_type,omitempty"`
	Inbox         string    `json:"inbox,omitempty"`
	Published     time.Time `json:"published"`
}

func (DefaultActivityStreamSerializer) Serialize(e Event) (string, bool) {
	payload := activityStreamPayload{
		ID:         string(e.Identifier),
		Type:       irisToStrings(e.ActivityTypes),
		Actor:      irisToStrings(e.Agents),
		Object:     string(e.Target),
		ObjectType: irisToStrings(e.TargetTypes),
		Inbox:      string(e.Inbox),
		Published:  e.Created,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		clog.Warningf("event: failed to serialize %s: %v", e.Identifier, err)
		return "", false
	}
	return string(data), true
}

func irisToStrings(iris []quad.IRI) []string {
	if len(iris) == 0 {
		return nil
	}
	out := make([]string, len(iris))
	for i, iri := range iris {
		out[i] = string(iri)
	}
	return out
}
