package can

import "github.com/k0kubun/govcan/pkg/frame"

// Sink adapts a Bus into a frame.Sink, so tx.Send can drive a breakdown
// straight onto a driver. Classic CAN DLC is capped at 8 bytes; data longer
// than that (a CAN FD MTU) does not fit this adapter.
type Sink struct {
	Bus Bus
}

// Send implements frame.Sink.
func (s Sink) Send(id uint32, data []byte) error {
	var payload [8]byte
	copy(payload[:], data)
	return s.Bus.Send(Frame{ID: id, DLC: uint8(len(data)), Data: payload})
}

var _ frame.Sink = Sink{}

// Listener adapts a frame.Frame receiver (typically an rx.RxProducer) into a
// Bus FrameListener, feeding every inbound bus frame's significant bytes to
// it.
type Listener struct {
	Receive func(frame.Frame) error
	OnError func(error)
}

// Handle implements FrameListener.
func (l Listener) Handle(f Frame) {
	err := l.Receive(frame.Generic{Identifier: f.ID, Payload: f.Data[:f.DLC]})
	if err != nil && l.OnError != nil {
		l.OnError(err)
	}
}
