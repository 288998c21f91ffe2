// Command govcan is a minimal send/receive endpoint: it opens a bus driver
// named in an ini config file, transmits one message-session payload given
// on the command line, and logs every transfer it reassembles off the bus.
package main

import (
	"flag"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/k0kubun/govcan/internal/config"
	"github.com/k0kubun/govcan/pkg/can"
	_ "github.com/k0kubun/govcan/pkg/can/socketcan"
	_ "github.com/k0kubun/govcan/pkg/can/socketcanv3"
	_ "github.com/k0kubun/govcan/pkg/can/virtual"
	"github.com/k0kubun/govcan/pkg/frame"
	"github.com/k0kubun/govcan/pkg/session"
	"github.com/k0kubun/govcan/pkg/tx"
)

func main() {
	log.SetLevel(log.DebugLevel)

	configPath := flag.String("c", "govcan.ini", "path to the bus/session config file")
	payloadArg := flag.String("send", "", "bytes to send as a message transfer, e.g. '2a,2b,2c'")
	flag.Parse()

	endpoint, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[CONFIG] %v", err)
	}

	bus, err := can.NewBus(endpoint.Interface, endpoint.Channel, endpoint.Bitrate)
	if err != nil {
		log.Fatalf("[BUS] could not open %v/%v : %v", endpoint.Interface, endpoint.Channel, err)
	}

	rxLoop := newReceiveLoop(bus)

	source, err := session.NewNodeID(endpoint.NodeID)
	if err != nil {
		log.Fatalf("[CONFIG] %v", err)
	}
	subject, err := session.NewSubjectID(endpoint.Subject)
	if err != nil {
		log.Fatalf("[CONFIG] %v", err)
	}

	if err := bus.Connect(); err != nil {
		log.Fatalf("[BUS] connect: %v", err)
	}
	log.Infof("[BUS] connected to %v on %v", endpoint.Interface, endpoint.Channel)

	if *payloadArg != "" {
		payload := parsePayload(*payloadArg)
		kind := session.NewMessageKind(source, subject)
		sink := can.Sink{Bus: bus}
		if err := tx.Send(sink, payload, kind, session.PriorityNominal, frame.ClassicMTU); err != nil {
			log.Fatalf("[TX] send: %v", err)
		}
		log.Infof("[TX] sent %d byte(s) on subject %v", len(payload), subject)
	}

	for range time.Tick(50 * time.Millisecond) {
		for {
			tr, ok := rxLoop.consumer.Next()
			if !ok {
				break
			}
			log.Infof("[RX] transfer kind=%+v payload=%v", tr.Kind, tr.Payload)
		}
	}
}

func parsePayload(arg string) []byte {
	var out []byte
	var b byte
	var n int
	for _, r := range arg {
		switch {
		case r >= '0' && r <= '9':
			b = b<<4 | byte(r-'0')
			n++
		case r >= 'a' && r <= 'f':
			b = b<<4 | byte(r-'a'+10)
			n++
		case r == ',':
			if n > 0 {
				out = append(out, b)
			}
			b, n = 0, 0
		}
	}
	if n > 0 {
		out = append(out, b)
	}
	if len(out) == 0 {
		log.Fatal("[TX] -send expects comma-separated hex bytes, e.g. '2a,2b'")
	}
	return out
}
