package session

// NodeID identifies a node on the bus, in [0,127].
type NodeID uint8

// MaxNodeID is the highest value a NodeID may hold.
const MaxNodeID = 127

// NewNodeID constructs a bounded NodeID, failing on overflow.
func NewNodeID(value uint8) (NodeID, error) {
	if value > MaxNodeID {
		return 0, &OutOfRangeError{Field: "node id", Value: int(value), Max: MaxNodeID}
	}
	return NodeID(value), nil
}
