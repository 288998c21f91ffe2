package session

import "testing"

func TestMessageIDBitPositions(t *testing.T) {
	source, _ := NewNodeID(4)
	subject, _ := NewSubjectID(8)

	for p := PriorityExceptional; p <= PriorityOptional; p++ {
		id := uint32(EncodeMessageID(source, subject, p))

		if got := Priority((id >> 26) & 0x7); got != p {
			t.Errorf("priority bits = %v, want %v", got, p)
		}
		if (id>>25)&1 != 0 {
			t.Error("bit 25 should be clear for a message")
		}
		if (id>>24)&1 != 0 {
			t.Error("bit 24 should be clear for a message")
		}
		if (id>>23)&1 != 0 {
			t.Error("reserved23 should be clear")
		}
		if (id>>22)&1 != 1 {
			t.Error("reserved22 should be set")
		}
		if (id>>21)&1 != 1 {
			t.Error("reserved21 should be set")
		}
		if (id>>7)&1 != 0 {
			t.Error("reserved7 should be clear")
		}
		if got := SubjectID((id >> 8) & 0x1FFF); got != subject {
			t.Errorf("subject bits = %v, want %v", got, subject)
		}
		if got := NodeID(id & 0x7F); got != source {
			t.Errorf("source bits = %v, want %v", got, source)
		}
	}
}

func TestServiceIDBitPositions(t *testing.T) {
	source, _ := NewNodeID(4)
	destination, _ := NewNodeID(7)
	service, _ := NewServiceID(10)

	for p := PriorityExceptional; p <= PriorityOptional; p++ {
		request := uint32(EncodeRequestID(source, destination, service, p))
		response := uint32(EncodeResponseID(source, destination, service, p))

		for _, id := range []uint32{request, response} {
			if got := Priority((id >> 26) & 0x7); got != p {
				t.Errorf("priority bits = %v, want %v", got, p)
			}
			if (id>>25)&1 != 1 {
				t.Error("bit 25 should be set for a service")
			}
			if (id>>23)&1 != 0 {
				t.Error("reserved23 should be clear")
			}
			if got := ServiceID((id >> 14) & 0x1FF); got != service {
				t.Errorf("service bits = %v, want %v", got, service)
			}
			if got := NodeID((id >> 7) & 0x7F); got != destination {
				t.Errorf("destination bits = %v, want %v", got, destination)
			}
			if got := NodeID(id & 0x7F); got != source {
				t.Errorf("source bits = %v, want %v", got, source)
			}
		}
		if (request>>24)&1 != 1 {
			t.Error("a request should set bit 24")
		}
		if (response>>24)&1 != 0 {
			t.Error("a response should clear bit 24")
		}
	}
}

func TestSessionKindRoundTrip(t *testing.T) {
	source, _ := NewNodeID(1)
	destination, _ := NewNodeID(2)
	subject, _ := NewSubjectID(100)
	service, _ := NewServiceID(5)

	kinds := []SessionKind{
		NewMessageKind(source, subject),
		NewRequestKind(source, destination, service),
		NewResponseKind(source, destination, service),
	}

	for _, kind := range kinds {
		raw := Encode(kind, PriorityHigh)
		id := DecodeSessionID(raw)
		if !id.Valid() {
			t.Fatalf("encoded id %x is not valid", raw)
		}
		if got := KindFromID(id); got != kind {
			t.Errorf("round trip of %+v produced %+v", kind, got)
		}
	}
}

func TestDecodeDispatchesOnBit25(t *testing.T) {
	source, _ := NewNodeID(1)
	subject, _ := NewSubjectID(2)

	id := DecodeSessionID(Encode(NewMessageKind(source, subject), PriorityNominal))
	if id.IsService() {
		t.Error("expected a message session id")
	}

	destination, _ := NewNodeID(3)
	service, _ := NewServiceID(4)
	id = DecodeSessionID(Encode(NewRequestKind(source, destination, service), PriorityNominal))
	if !id.IsService() {
		t.Error("expected a service session id")
	}
}
