package event

import (
	"github.com/nats-io/nats.go"

	"github.com/quadmesh/ldp/internal/clog"
)

// NATSPublisher wraps an EventSerializer with a publish-side transport,
// grounded in the semstreams pack's use of nats.go for pub/sub. Event
// *transport* is explicitly an external collaborator's concern (spec §6);
// this type lives beside the core rather than inside service so a caller
// who wants no transport at all can use NoopSerializer directly.
type NATSPublisher struct {
	conn       *nats.Conn
	subject    string
	serializer EventSerializer
}

// NewNATSPublisher builds a publisher that serializes with serializer and
// publishes non-empty results on subject over conn.
func NewNATSPublisher(conn *nats.Conn, subject string, serializer EventSerializer) *NATSPublisher {
	return &NATSPublisher{conn: conn, subject: subject, serializer: serializer}
}

// Serialize satisfies EventSerializer: it delegates to the wrapped
// serializer, and on success also publishes the result. A publish failure
// is logged, not returned — per spec §7, adjacent-collaborator failures
// must never surface as a failed service operation.
func (p *NATSPublisher) Serialize(e Event) (string, bool) {
	payload, ok := p.serializer.Serialize(e)
	if !ok {
		return "", false
	}
	if err := p.conn.Publish(p.subject, []byte(payload)); err != nil {
		clog.Warningf("event: nats publish on %s failed: %v", p.subject, err)
	}
	return payload, true
}
