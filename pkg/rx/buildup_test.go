package rx

import (
	"errors"
	"testing"

	"github.com/k0kubun/govcan/pkg/session"
	"github.com/k0kubun/govcan/pkg/tailbyte"
	"github.com/k0kubun/govcan/pkg/tx"
)

func frames(t *testing.T, payload []byte, canID uint32, mtu int) [][]byte {
	t.Helper()
	tid, _ := session.NewTransferID(0)
	b := tx.NewBreakdown(payload, canID, mtu, tid)
	var out [][]byte
	for {
		data, ok := b.Next()
		if !ok {
			return out
		}
		out = append(out, data)
	}
}

func messageCANID(t *testing.T) uint32 {
	t.Helper()
	source, _ := session.NewNodeID(1)
	subject, _ := session.NewSubjectID(2)
	return session.Encode(session.NewMessageKind(source, subject), session.PriorityHigh)
}

func TestBuildupSingleFrame(t *testing.T) {
	canID := messageCANID(t)
	fs := frames(t, []byte{0x2A}, canID, 8)

	b := NewBuildup(64)
	for _, f := range fs {
		if err := b.Feed(canID, f); err != nil {
			t.Fatalf("Feed: %v", err)
		}
	}
	if b.State() != Closed {
		t.Fatalf("state = %v, want Closed", b.State())
	}
	tr := b.Transfer()
	if len(tr.Payload) != 1 || tr.Payload[0] != 0x2A {
		t.Errorf("payload = %v, want [0x2A]", tr.Payload)
	}
}

func TestBuildupMultiFrameRoundTrip(t *testing.T) {
	canID := messageCANID(t)
	payload := make([]byte, 14)
	for i := range payload {
		payload[i] = byte(i)
	}
	fs := frames(t, payload, canID, 8)

	b := NewBuildup(64)
	var lastErr error
	for _, f := range fs {
		lastErr = b.Feed(canID, f)
		if lastErr != nil {
			break
		}
	}
	if lastErr != nil {
		t.Fatalf("Feed: %v", lastErr)
	}
	if b.State() != Closed {
		t.Fatalf("state = %v, want Closed", b.State())
	}
	tr := b.Transfer()
	if len(tr.Payload) != len(payload) {
		t.Fatalf("payload length = %d, want %d", len(tr.Payload), len(payload))
	}
	for i, want := range payload {
		if tr.Payload[i] != want {
			t.Fatalf("payload[%d] = %d, want %d", i, tr.Payload[i], want)
		}
	}
}

func TestBuildupRejectsCorruptedID(t *testing.T) {
	b := NewBuildup(64)
	// bit 7 set violates the message layout's reserved7 == 0 requirement.
	badID := uint32(1 << 7)
	tail := tailbyte.SingleFrameTailByte(mustTID(t, 0))
	err := b.Feed(badID, []byte{0xAA, tail.Byte()})
	if !errors.Is(err, ErrCorruptedID) {
		t.Fatalf("err = %v, want ErrCorruptedID", err)
	}
	if b.State() != Errored {
		t.Fatalf("state = %v, want Errored", b.State())
	}
}

func TestBuildupRejectsCorruptedToggle(t *testing.T) {
	canID := messageCANID(t)
	payload := make([]byte, 14)
	for i := range payload {
		payload[i] = byte(i)
	}
	fs := frames(t, payload, canID, 8)
	if len(fs) < 2 {
		t.Fatalf("expected at least 2 frames, got %d", len(fs))
	}

	// Flip the toggle bit of the second frame's tail byte.
	fs[1][len(fs[1])-1] ^= 1 << 5

	b := NewBuildup(64)
	var lastErr error
	for _, f := range fs {
		lastErr = b.Feed(canID, f)
		if lastErr != nil {
			break
		}
	}

	var corrupted *CorruptedTailByteError
	if !errors.As(lastErr, &corrupted) {
		t.Fatalf("err = %v, want *CorruptedTailByteError", lastErr)
	}
	if b.State() != Errored {
		t.Fatalf("state = %v, want Errored", b.State())
	}
}

func TestBuildupRejectsMissingFrames(t *testing.T) {
	canID := messageCANID(t)
	payload := make([]byte, 14)
	fs := frames(t, payload, canID, 8)
	if len(fs) < 2 {
		t.Fatalf("expected at least 2 frames, got %d", len(fs))
	}

	b := NewBuildup(64)
	if err := b.Feed(canID, fs[0]); err != nil {
		t.Fatalf("Feed(0): %v", err)
	}

	// Corrupt the transfer id of the second frame.
	fs[1][len(fs[1])-1] ^= 0x03

	err := b.Feed(canID, fs[1])
	var missing *MissingFramesError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want *MissingFramesError", err)
	}
}

func TestBuildupRejectsZeroLengthViaNetwork(t *testing.T) {
	n := NewRxNetwork(4, 64)
	producer, _ := n.Split()
	err := producer.Receive(genericFrame{id: 0, data: nil})
	if !errors.Is(err, ErrZeroLengthFrame) {
		t.Fatalf("err = %v, want ErrZeroLengthFrame", err)
	}
}

type genericFrame struct {
	id   uint32
	data []byte
}

func (f genericFrame) ID() uint32   { return f.id }
func (f genericFrame) Data() []byte { return f.data }

func mustTID(t *testing.T, v uint8) session.TransferID {
	t.Helper()
	tid, err := session.NewTransferID(v)
	if err != nil {
		t.Fatal(err)
	}
	return tid
}
