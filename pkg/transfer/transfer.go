// Package transfer defines the result of a successful reassembly.
package transfer

import "github.com/k0kubun/govcan/pkg/session"

// Transfer is one complete logical unit recovered from one or more frames.
// It does not carry priority: priority is a transmit-time attribute, not
// persisted on reassembly.
type Transfer struct {
	Kind    session.SessionKind
	Payload []byte
}
