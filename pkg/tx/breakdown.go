// Package tx implements the transmit half of the codec: turning a payload,
// a session kind and a priority into an ordered sequence of frames, and
// driving that sequence into a sink. It walks a payload in chunks of MTU-1
// bytes (one byte per frame is the tail byte), independent of any
// particular application protocol. Each frame's bytes are returned in a
// newly allocated slice.
package tx

import (
	"github.com/k0kubun/govcan/internal/crc"
	"github.com/k0kubun/govcan/pkg/frame"
	"github.com/k0kubun/govcan/pkg/session"
	"github.com/k0kubun/govcan/pkg/tailbyte"
)

type state uint8

const (
	stateSingleFrame state = iota
	stateMultiFrame
	stateMultiFrameHalfCRC
	stateClosed
)

// CRCKind classifies where the trailing CRC bytes of a multi-frame transfer
// land, as a function of how many payload bytes remain after the last full
// chunk.
type CRCKind uint8

const (
	Embedded CRCKind = iota
	HalfEmbedded
	Isolated
)

// CRCKindFor returns the CRC placement for a remainder of rem bytes left
// after consuming full chunkSize-byte chunks of a payload, where chunkSize
// is MTU-1.
func CRCKindFor(rem, chunkSize int) CRCKind {
	free := chunkSize - rem
	switch {
	case free >= 2 && rem > 0:
		return Embedded
	case free == 1:
		return HalfEmbedded
	default:
		return Isolated
	}
}

// Breakdown is a lazy, finite producer of frames for one transfer. It lives
// for the duration of a single send call.
type Breakdown struct {
	payload  []byte
	canID    uint32
	mtu      int
	crc      uint16
	totalRem int

	state      state
	pos        int
	tail       tailbyte.TailByte
	lowCRCByte byte
}

// NewBreakdown constructs a breakdown for one transfer. tid is the transfer
// id this send uses for every frame it emits.
func NewBreakdown(payload []byte, canID uint32, mtu int, tid session.TransferID) *Breakdown {
	b := &Breakdown{
		payload: payload,
		canID:   canID,
		mtu:     mtu,
		crc:     crc.Compute(payload),
	}
	if len(payload) < mtu-1 {
		b.state = stateSingleFrame
		b.tail = tailbyte.SingleFrameTailByte(tid)
	} else {
		b.state = stateMultiFrame
		b.tail = tailbyte.StartOfMultiFrameTailByte(tid)
		b.totalRem = len(payload) % (mtu - 1)
	}
	return b
}

// FramesCount returns a lower-bound hint of how many frames this breakdown
// will emit, for sinks that want to reserve capacity up front.
func (b *Breakdown) FramesCount() int {
	if len(b.payload) < b.mtu-1 {
		return 1
	}
	chunkSize := b.mtu - 1
	return (len(b.payload) + chunkSize - 1) / chunkSize
}

// Next produces the next frame's significant bytes (payload data followed by
// the tail byte) and reports whether a frame was produced. It returns
// ok == false once the breakdown is exhausted.
func (b *Breakdown) Next() (data []byte, ok bool) {
	chunkSize := b.mtu - 1

	switch b.state {
	case stateSingleFrame:
		b.state = stateClosed
		return append(append([]byte{}, b.payload...), b.tail.Byte()), true

	case stateMultiFrame:
		remaining := len(b.payload) - b.pos
		if remaining > b.totalRem {
			chunk := b.payload[b.pos : b.pos+chunkSize]
			b.pos += chunkSize
			out := append(append([]byte{}, chunk...), b.tail.Byte())
			b.tail.Advance()
			return out, true
		}

		rem := remaining
		switch CRCKindFor(rem, chunkSize) {
		case Embedded:
			crcHi, crcLo := byte(b.crc>>8), byte(b.crc)
			chunk := b.payload[b.pos : b.pos+rem]
			b.pos += rem
			out := append(append([]byte{}, chunk...), crcHi, crcLo)
			end := b.tail.EndOfMultiTransfer()
			out = append(out, end.Byte())
			b.state = stateClosed
			return out, true
		case HalfEmbedded:
			crcHi, crcLo := byte(b.crc>>8), byte(b.crc)
			chunk := b.payload[b.pos : b.pos+rem]
			b.pos += rem
			mid := b.tail
			out := append(append([]byte{}, chunk...), crcHi, mid.Byte())
			b.lowCRCByte = crcLo
			b.tail.Advance()
			b.state = stateMultiFrameHalfCRC
			return out, true
		default: // Isolated
			crcHi, crcLo := byte(b.crc>>8), byte(b.crc)
			end := b.tail.EndOfMultiTransfer()
			b.state = stateClosed
			return []byte{crcHi, crcLo, end.Byte()}, true
		}

	case stateMultiFrameHalfCRC:
		end := b.tail.EndOfMultiTransfer()
		b.state = stateClosed
		return []byte{b.lowCRCByte, end.Byte()}, true

	default:
		return nil, false
	}
}

// Send drives a full breakdown into sink, stopping at and returning the
// first sink error.
func Send(sink frame.Sink, payload []byte, kind session.SessionKind, priority session.Priority, mtu int) error {
	canID := session.Encode(kind, priority)
	tid, _ := session.NewTransferID(0) // see DESIGN.md: transfer id resets per send

	b := NewBreakdown(payload, canID, mtu, tid)
	if hinter, ok := sink.(frame.CapacityHinter); ok {
		hinter.ReserveCapacity(b.FramesCount())
	}

	for {
		data, ok := b.Next()
		if !ok {
			return nil
		}
		if err := sink.Send(canID, data); err != nil {
			return err
		}
	}
}
