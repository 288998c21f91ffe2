package rx

import (
	"sync/atomic"

	"github.com/k0kubun/govcan/pkg/frame"
	"github.com/k0kubun/govcan/pkg/transfer"
)

// ring is a bounded lock-free single-producer/single-consumer queue of
// completed transfers. head is written only by the consumer and read by the
// producer; tail is written only by the producer and read by the consumer.
// The capacity is fixed at construction; the queue never grows.
type ring struct {
	data     []transfer.Transfer
	capacity uint64
	head     atomic.Uint64
	tail     atomic.Uint64
}

func newRing(capacity int) *ring {
	return &ring{
		data:     make([]transfer.Transfer, capacity),
		capacity: uint64(capacity),
	}
}

func (r *ring) push(t transfer.Transfer) bool {
	tail := r.tail.Load()
	head := r.head.Load()
	if tail-head >= r.capacity {
		return false
	}
	r.data[tail%r.capacity] = t
	r.tail.Store(tail + 1)
	return true
}

func (r *ring) pop() (transfer.Transfer, bool) {
	head := r.head.Load()
	tail := r.tail.Load()
	if head == tail {
		return transfer.Transfer{}, false
	}
	t := r.data[head%r.capacity]
	r.data[head%r.capacity] = transfer.Transfer{}
	r.head.Store(head + 1)
	return t, true
}

// RxNetwork owns the bounded transfer queue. Split it into a producer and a
// consumer handle before use; the two halves may then be driven from
// independent contexts (for example an interrupt handler and a main loop).
type RxNetwork struct {
	ring            *ring
	payloadCapacity int
}

// NewRxNetwork constructs a network whose completed-transfer queue holds up
// to queueCapacity transfers, each with a payload bounded by
// payloadCapacity bytes.
func NewRxNetwork(queueCapacity, payloadCapacity int) *RxNetwork {
	return &RxNetwork{
		ring:            newRing(queueCapacity),
		payloadCapacity: payloadCapacity,
	}
}

// Split returns the producer and consumer handles for this network. Their
// lifetimes must not exceed the network's.
func (n *RxNetwork) Split() (*RxProducer, *RxConsumer) {
	return &RxProducer{ring: n.ring, payloadCapacity: n.payloadCapacity},
		&RxConsumer{ring: n.ring}
}

// RxProducer feeds incoming frames into the network's single in-flight
// buildup, enqueueing completed transfers for the consumer.
type RxProducer struct {
	ring            *ring
	payloadCapacity int
	buildup         *Buildup
}

// Receive advances the in-flight buildup with one frame. A fresh buildup is
// created lazily if none is in flight. On completion the resulting transfer
// is enqueued; on any buildup error the buildup is discarded so the next
// frame starts fresh.
func (p *RxProducer) Receive(f frame.Frame) error {
	data := f.Data()
	if len(data) == 0 {
		return ErrZeroLengthFrame
	}

	if p.buildup == nil {
		p.buildup = NewBuildup(p.payloadCapacity)
	}

	if err := p.buildup.Feed(f.ID(), data); err != nil {
		p.buildup = nil
		return &BuildupError{Err: err}
	}

	if p.buildup.State() == Closed {
		t := p.buildup.Transfer()
		p.buildup = nil
		if !p.ring.push(t) {
			return ErrOutOfSpace
		}
	}
	return nil
}

// RxConsumer dequeues completed transfers in FIFO order.
type RxConsumer struct {
	ring *ring
}

// Next pops one completed transfer, or reports false if the queue is empty.
func (c *RxConsumer) Next() (transfer.Transfer, bool) {
	return c.ring.pop()
}
