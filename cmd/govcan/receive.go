package main

import (
	log "github.com/sirupsen/logrus"

	"github.com/k0kubun/govcan/pkg/can"
	"github.com/k0kubun/govcan/pkg/rx"
)

const (
	transferQueueCapacity = 16
	transferPayloadBytes  = 256
)

// receiveLoop owns the rx network's producer side, fed from the bus as a
// can.FrameListener, and exposes the consumer side for the main loop to
// drain.
type receiveLoop struct {
	consumer *rx.RxConsumer
}

func newReceiveLoop(bus can.Bus) *receiveLoop {
	network := rx.NewRxNetwork(transferQueueCapacity, transferPayloadBytes)
	producer, consumer := network.Split()

	listener := can.Listener{
		Receive: producer.Receive,
		OnError: func(err error) {
			log.Warnf("[RX] dropped a frame: %v", err)
		},
	}
	if err := bus.Subscribe(listener); err != nil {
		log.Fatalf("[BUS] subscribe: %v", err)
	}

	return &receiveLoop{consumer: consumer}
}
