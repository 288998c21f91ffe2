// Package rx implements the receive half of the codec: a per-transfer
// buildup state machine and the bounded single-producer/single-consumer
// queue of completed transfers built on top of it.
//
// The buildup accumulates each frame's data bytes into a bounded buffer and
// checks the CRC of the accumulated payload when the final frame arrives,
// independent of any particular application protocol.
package rx

import (
	"github.com/k0kubun/govcan/internal/crc"
	"github.com/k0kubun/govcan/internal/payload"
	"github.com/k0kubun/govcan/pkg/session"
	"github.com/k0kubun/govcan/pkg/tailbyte"
	"github.com/k0kubun/govcan/pkg/transfer"
)

// State is one of a buildup's four lifecycle states.
type State uint8

const (
	Initializing State = iota
	MultiFrame
	Closed
	Errored
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case MultiFrame:
		return "multi-frame"
	case Closed:
		return "closed"
	case Errored:
		return "errored"
	default:
		return "unknown"
	}
}

// Buildup reassembles the frames of one transfer. It is created lazily on
// the first frame of a fresh transfer and is discarded on either successful
// completion or any error; the owner starts a fresh Buildup for the next
// frame in either case.
type Buildup struct {
	state State

	sessionID session.SessionID
	expected  tailbyte.TailByte
	buf       *payload.Buffer
}

// NewBuildup constructs an empty buildup with the given payload capacity.
// The expected transfer id of the first frame defaults to 0, matching a
// fresh Breakdown's starting transfer id.
func NewBuildup(capacity int) *Buildup {
	tid, _ := session.NewTransferID(0)
	return &Buildup{
		buf:      payload.New(capacity),
		expected: tailbyte.TailByte{TransferID: tid, Toggle: 1, Start: true, End: true},
	}
}

// State reports the buildup's current state.
func (b *Buildup) State() State { return b.state }

// Feed advances the buildup with one frame's raw CAN identifier and
// significant bytes (payload data followed by the tail byte).
func (b *Buildup) Feed(canID uint32, significant []byte) error {
	if b.state == Closed || b.state == Errored {
		return &CannotAcceptNewFramesError{}
	}

	id := session.DecodeSessionID(canID)
	if !id.Valid() {
		b.state = Errored
		return ErrCorruptedID
	}

	data, tail := tailbyte.Split(significant, len(significant))

	switch b.state {
	case Initializing:
		return b.feedInitializing(id, data, tail)
	case MultiFrame:
		return b.feedMultiFrame(data, tail)
	}
	return nil
}

func (b *Buildup) feedInitializing(id session.SessionID, data []byte, tail tailbyte.TailByte) error {
	switch tail.PayloadKind() {
	case tailbyte.SingleFrame:
		if tail.TransferID != b.expected.TransferID {
			b.state = Errored
			return &MissingFramesError{N: b.expected.TransferID.Difference(tail.TransferID)}
		}
		if err := b.buf.Append(data); err != nil {
			b.state = Errored
			return err
		}
		b.sessionID = id
		b.state = Closed
		return nil

	case tailbyte.StartOfMultiFrame:
		if err := b.buf.Append(data); err != nil {
			b.state = Errored
			return err
		}
		b.sessionID = id
		b.expected = tail
		b.expected.Advance()
		b.state = MultiFrame
		return nil

	default:
		b.state = Errored
		return &WrongTypeOfFrameError{State: Initializing, Kind: tail.PayloadKind()}
	}
}

func (b *Buildup) feedMultiFrame(data []byte, tail tailbyte.TailByte) error {
	switch tail.PayloadKind() {
	case tailbyte.MiddleOfMultiFrame:
		if err := b.checkExpected(tail); err != nil {
			return err
		}
		if err := b.buf.Append(data); err != nil {
			b.state = Errored
			return err
		}
		b.expected.Advance()
		return nil

	case tailbyte.EndOfMultiFrame:
		end := b.expected
		end.End = true
		if err := b.checkExpected2(tail, end); err != nil {
			return err
		}
		return b.finishMultiFrame(data)

	default:
		b.state = Errored
		return &WrongTypeOfFrameError{State: MultiFrame, Kind: tail.PayloadKind()}
	}
}

func (b *Buildup) checkExpected(tail tailbyte.TailByte) error {
	return b.checkExpected2(tail, b.expected)
}

func (b *Buildup) checkExpected2(got, want tailbyte.TailByte) error {
	if got.TransferID != want.TransferID {
		b.state = Errored
		return &MissingFramesError{N: want.TransferID.Difference(got.TransferID)}
	}
	if got != want {
		b.state = Errored
		return &CorruptedTailByteError{Got: got, Want: want}
	}
	return nil
}

func (b *Buildup) finishMultiFrame(data []byte) error {
	var want uint16
	switch {
	case len(data) == 1:
		// HalfEmbedded: the high CRC byte is already the last payload byte.
		hi, ok := b.buf.PopLast()
		if !ok {
			b.state = Errored
			return ErrOutOfSpace
		}
		want = uint16(hi)<<8 | uint16(data[0])

	case len(data) == 2:
		// Isolated: no payload bytes in this frame.
		want = uint16(data[0])<<8 | uint16(data[1])

	default:
		// Embedded: the final two bytes of data are the CRC.
		crcAt := len(data) - 2
		if err := b.buf.Append(data[:crcAt]); err != nil {
			b.state = Errored
			return err
		}
		want = uint16(data[crcAt])<<8 | uint16(data[crcAt+1])
	}

	got := crc.Compute(b.buf.Bytes())
	if got != want {
		b.state = Errored
		return &WrongCRCError{Want: want, Got: got}
	}

	b.state = Closed
	return nil
}

// Transfer converts a Closed buildup into a Transfer. It panics if the
// buildup is not Closed; callers must check State first.
func (b *Buildup) Transfer() transfer.Transfer {
	if b.state != Closed {
		panic("rx: Transfer called on a buildup that is not closed")
	}
	return transfer.Transfer{
		Kind:    session.KindFromID(b.sessionID),
		Payload: b.buf.Take(),
	}
}
