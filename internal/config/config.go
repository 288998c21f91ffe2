// Package config loads the bus and session parameters a standalone
// transmit/receive endpoint needs to start, from a [Section] / Key style
// ini file.
package config

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// Endpoint describes one side of a transport: which bus driver to open and
// the session identity it transmits as.
type Endpoint struct {
	Interface string // "socketcan", "socketcanv3", "virtual"
	Channel   string // e.g. "can0" or "localhost:18000"
	Bitrate   int

	NodeID  uint8
	Subject uint16
}

// Load reads an Endpoint from the [Bus] and [Session] sections of path.
func Load(path string) (*Endpoint, error) {
	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	bus := file.Section("Bus")
	session := file.Section("Session")

	nodeID, err := session.Key("NodeID").Uint()
	if err != nil {
		return nil, fmt.Errorf("config: Session.NodeID: %w", err)
	}
	subject, err := session.Key("Subject").Uint()
	if err != nil {
		return nil, fmt.Errorf("config: Session.Subject: %w", err)
	}

	return &Endpoint{
		Interface: bus.Key("Interface").MustString("socketcan"),
		Channel:   bus.Key("Channel").MustString("can0"),
		Bitrate:   bus.Key("Bitrate").MustInt(500_000),
		NodeID:    uint8(nodeID),
		Subject:   uint16(subject),
	}, nil
}
