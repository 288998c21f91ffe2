// Package tailbyte implements the per-frame trailing metadata byte shared by
// every frame of the transport: framing flags, a toggle bit, and a
// modulo-32 transfer id.
package tailbyte

import "github.com/k0kubun/govcan/pkg/session"

// PayloadKind classifies a frame by its start/end flags.
type PayloadKind uint8

const (
	SingleFrame PayloadKind = iota
	StartOfMultiFrame
	EndOfMultiFrame
	MiddleOfMultiFrame
)

func (k PayloadKind) String() string {
	switch k {
	case SingleFrame:
		return "single-frame"
	case StartOfMultiFrame:
		return "start-of-multi-frame"
	case EndOfMultiFrame:
		return "end-of-multi-frame"
	case MiddleOfMultiFrame:
		return "middle-of-multi-frame"
	default:
		return "unknown"
	}
}

// TailByte is the 8-bit layout:
//
//	bits [0..4] transfer id
//	bit  5      toggle
//	bit  6      is_end_of_transfer
//	bit  7      is_start_of_transfer
type TailByte struct {
	TransferID session.TransferID
	Toggle     uint8
	Start      bool
	End        bool
}

// SingleFrameTailByte builds the tail byte for a transfer that fits in one frame.
func SingleFrameTailByte(tid session.TransferID) TailByte {
	return TailByte{TransferID: tid, Toggle: 1, Start: true, End: true}
}

// StartOfMultiFrameTailByte builds the tail byte for the first frame of a
// multi-frame transfer.
func StartOfMultiFrameTailByte(tid session.TransferID) TailByte {
	return TailByte{TransferID: tid, Toggle: 1, Start: true, End: false}
}

// PayloadKind classifies this tail byte by its start/end flags.
func (t TailByte) PayloadKind() PayloadKind {
	switch {
	case t.Start && t.End:
		return SingleFrame
	case t.Start && !t.End:
		return StartOfMultiFrame
	case !t.Start && t.End:
		return EndOfMultiFrame
	default:
		return MiddleOfMultiFrame
	}
}

// Advance mutates the tail byte into the one expected for the next frame of
// the transfer: flags are cleared, the toggle flips, and the transfer id is
// unchanged.
func (t *TailByte) Advance() {
	t.Toggle ^= 1
	t.Start = false
	t.End = false
}

// EndOfMultiTransfer returns a copy marked as the final frame, preserving
// toggle and transfer id.
func (t TailByte) EndOfMultiTransfer() TailByte {
	t.Start = false
	t.End = true
	return t
}

// Byte serializes the tail byte into its wire representation.
func (t TailByte) Byte() byte {
	b := byte(t.TransferID) & 0x1F
	b |= (t.Toggle & 1) << 5
	if t.End {
		b |= 1 << 6
	}
	if t.Start {
		b |= 1 << 7
	}
	return b
}

// FromByte deserializes a tail byte from its wire representation.
func FromByte(b byte) TailByte {
	tid, _ := session.NewTransferID(b & 0x1F)
	return TailByte{
		TransferID: tid,
		Toggle:     (b >> 5) & 1,
		End:        (b>>6)&1 == 1,
		Start:      (b>>7)&1 == 1,
	}
}

// Split separates a frame's significant bytes into its data prefix and tail
// byte. significantLength must be at least 1.
func Split(payload []byte, significantLength int) (data []byte, tail TailByte) {
	return payload[:significantLength-1], FromByte(payload[significantLength-1])
}
