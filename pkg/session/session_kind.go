package session

// Kind discriminates the three logical transfer categories a session can
// carry.
type Kind uint8

const (
	KindMessage Kind = iota
	KindRequest
	KindResponse
)

// SessionKind is the routing tuple a transfer targets. It carries no
// priority; priority is a transmit-time attribute, orthogonal to the
// session. Equality is structural: two SessionKind values built from the
// same fields compare equal with ==.
type SessionKind struct {
	Kind        Kind
	Source      NodeID
	Destination NodeID    // Request, Response only
	Subject     SubjectID // Message only
	Service     ServiceID // Request, Response only
}

// NewMessageKind builds a message session kind.
func NewMessageKind(source NodeID, subject SubjectID) SessionKind {
	return SessionKind{Kind: KindMessage, Source: source, Subject: subject}
}

// NewRequestKind builds a service request session kind.
func NewRequestKind(source, destination NodeID, service ServiceID) SessionKind {
	return SessionKind{Kind: KindRequest, Source: source, Destination: destination, Service: service}
}

// NewResponseKind builds a service response session kind.
func NewResponseKind(source, destination NodeID, service ServiceID) SessionKind {
	return SessionKind{Kind: KindResponse, Source: source, Destination: destination, Service: service}
}

// Encode produces the 29-bit CAN identifier for a session kind at a given
// priority.
//
// A response session swaps source and destination on the wire: the kind's
// Destination is encoded in the wire's source_node_id field and the kind's
// Source in the wire's destination_node_id field. This mirrors the two historical
// implementations of the source protocol disagreeing on whether that swap
// happens on encode, decode, or both; this codec performs it symmetrically
// on both sides so that kind -> id -> kind round-trips (see DESIGN.md).
func Encode(kind SessionKind, priority Priority) uint32 {
	switch kind.Kind {
	case KindMessage:
		return uint32(EncodeMessageID(kind.Source, kind.Subject, priority))
	case KindRequest:
		return uint32(EncodeRequestID(kind.Source, kind.Destination, kind.Service, priority))
	case KindResponse:
		return uint32(EncodeResponseID(kind.Destination, kind.Source, kind.Service, priority))
	default:
		panic("session: unknown session kind")
	}
}

// KindFromID reconstructs a SessionKind from a decoded session identifier.
// It performs no validity check; callers must check SessionID.Valid first.
func KindFromID(id SessionID) SessionKind {
	if !id.IsService() {
		m := id.Message()
		return NewMessageKind(m.SourceNodeID(), m.SubjectID())
	}
	s := id.Service()
	if s.IsRequest() {
		return NewRequestKind(s.SourceNodeID(), s.DestinationNodeID(), s.ServiceID())
	}
	return NewResponseKind(s.DestinationNodeID(), s.SourceNodeID(), s.ServiceID())
}
