package session

// TransferID is a modulo-32 counter used to detect lost frames, both within
// a multi-frame transfer and across transfers on the same session.
type TransferID uint8

// MaxTransferID is the highest value a TransferID may hold.
const MaxTransferID = 31

// NewTransferID constructs a bounded TransferID, failing on overflow.
func NewTransferID(value uint8) (TransferID, error) {
	if value > MaxTransferID {
		return 0, &OutOfRangeError{Field: "transfer id", Value: int(value), Max: MaxTransferID}
	}
	return TransferID(value), nil
}

// Successor returns the next transfer id, wrapping from 31 back to 0.
func (t TransferID) Successor() TransferID {
	if t == MaxTransferID {
		return 0
	}
	return t + 1
}

// Difference returns the number of successor steps from t to other, modulo 32.
func (t TransferID) Difference(other TransferID) uint8 {
	diff := int16(other) - int16(t)
	if diff < 0 {
		diff += 32
	}
	return uint8(diff)
}
