package session

// ServiceID identifies a service (request/response pair), in [0,511].
type ServiceID uint16

// MaxServiceID is the highest value a ServiceID may hold.
const MaxServiceID = 511

// NewServiceID constructs a bounded ServiceID, failing on overflow.
func NewServiceID(value uint16) (ServiceID, error) {
	if value > MaxServiceID {
		return 0, &OutOfRangeError{Field: "service id", Value: int(value), Max: MaxServiceID}
	}
	return ServiceID(value), nil
}
