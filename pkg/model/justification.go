package model

// Justification records a CHARACTER variable's display justification
// as carried in the NAMESTR nfj field.
type Justification int

const (
	// JustificationUnknown means the source encoded neither 0 nor 1;
	// XPORT readers treat this as non-fatal metadata and pass it
	// through rather than rejecting the file.
	JustificationUnknown Justification = iota
	// JustificationLeft is nfj == 0.
	JustificationLeft
	// JustificationRight is nfj == 1.
	JustificationRight
)

func (j Justification) String() string {
	switch j {
	case JustificationLeft:
		return "Left"
	case JustificationRight:
		return "Right"
	default:
		return "Unknown"
	}
}
