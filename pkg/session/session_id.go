package session

// SessionID is a decoded 29-bit CAN identifier, holding either a message or
// a service layout. The discriminant is bit 25 of the original word.
type SessionID struct {
	isService bool
	message   MessageSessionID
	service   ServiceSessionID
}

// DecodeSessionID dispatches on bit 25 of a raw CAN identifier without
// validating reserved bits; use Valid for that.
func DecodeSessionID(raw uint32) SessionID {
	if (raw>>25)&1 == 0 {
		return SessionID{message: MessageSessionID(raw)}
	}
	return SessionID{isService: true, service: ServiceSessionID(raw)}
}

func (s SessionID) IsService() bool {
	return s.isService
}

// Message returns the decoded message layout. Only meaningful when
// IsService() is false.
func (s SessionID) Message() MessageSessionID {
	return s.message
}

// Service returns the decoded service layout. Only meaningful when
// IsService() is true.
func (s SessionID) Service() ServiceSessionID {
	return s.service
}

// Valid reports whether the session identifier's reserved bits hold their
// fixed values.
func (s SessionID) Valid() bool {
	if s.isService {
		return s.service.Valid()
	}
	return s.message.Valid()
}
