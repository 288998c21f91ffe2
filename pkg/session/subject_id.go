package session

// SubjectID identifies a message subject, in [0,8191].
type SubjectID uint16

// MaxSubjectID is the highest value a SubjectID may hold.
const MaxSubjectID = 8191

// NewSubjectID constructs a bounded SubjectID, failing on overflow.
func NewSubjectID(value uint16) (SubjectID, error) {
	if value > MaxSubjectID {
		return 0, &OutOfRangeError{Field: "subject id", Value: int(value), Max: MaxSubjectID}
	}
	return SubjectID(value), nil
}
