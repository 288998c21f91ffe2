package rx

import (
	"errors"
	"fmt"

	"github.com/k0kubun/govcan/pkg/tailbyte"
)

// ErrCorruptedID is returned when a frame's CAN identifier fails session
// validity (a reserved bit holds the wrong value).
var ErrCorruptedID = errors.New("rx: corrupted session id")

// ErrOutOfSpace is returned when a buildup's payload buffer cannot hold any
// more bytes.
var ErrOutOfSpace = errors.New("rx: payload buffer exhausted")

// ErrZeroLengthFrame is returned by a producer when handed a frame with no
// significant bytes at all; the tail byte split requires at least one.
var ErrZeroLengthFrame = errors.New("rx: zero-length frame")

// MissingFramesError reports that an incoming frame's transfer id is not the
// one a buildup expected, implying one or more frames were lost.
type MissingFramesError struct {
	N uint8
}

func (e *MissingFramesError) Error() string {
	return fmt.Sprintf("rx: missing %d frame(s)", e.N)
}

// CannotAcceptNewFramesError reports that a frame arrived for a buildup that
// already closed or errored.
type CannotAcceptNewFramesError struct{}

func (e *CannotAcceptNewFramesError) Error() string {
	return "rx: buildup cannot accept new frames"
}

// WrongTypeOfFrameError reports an illegal (state, payload kind) transition.
type WrongTypeOfFrameError struct {
	State State
	Kind  tailbyte.PayloadKind
}

func (e *WrongTypeOfFrameError) Error() string {
	return fmt.Sprintf("rx: unexpected %v frame in state %v", e.Kind, e.State)
}

// CorruptedTailByteError reports that a frame's tail byte diverged from the
// one the buildup expected (wrong toggle or framing flags).
type CorruptedTailByteError struct {
	Got, Want tailbyte.TailByte
}

func (e *CorruptedTailByteError) Error() string {
	return fmt.Sprintf("rx: corrupted tail byte: got %+v, want %+v", e.Got, e.Want)
}

// WrongCRCError reports that the CRC carried by the final frame(s) of a
// transfer did not match the accumulated payload.
type WrongCRCError struct {
	Want, Got uint16
}

func (e *WrongCRCError) Error() string {
	return fmt.Sprintf("rx: wrong crc: got %#04x, want %#04x", e.Got, e.Want)
}

// BuildupError wraps an error produced while feeding a frame to a buildup,
// surfaced by RxProducer.Receive.
type BuildupError struct {
	Err error
}

func (e *BuildupError) Error() string { return e.Err.Error() }
func (e *BuildupError) Unwrap() error { return e.Err }
