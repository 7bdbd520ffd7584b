package core

// Status is the lifecycle state of a game. Transitions only move forward:
// active is the sole non-terminal state.
type Status int

const (
	StatusActive Status = iota
	StatusWon           // human connected four
	StatusLost          // computer connected four
	StatusDrawn         // board full, no winner
	StatusCanceled
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	case StatusDrawn:
		return "drawn"
	case StatusCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further moves or cancellation are accepted.
func (s Status) Terminal() bool {
	return s != StatusActive
}

// ParseStatus converts a stored status string back to a Status.
func ParseStatus(s string) Status {
	switch s {
	case "won":
		return StatusWon
	case "lost":
		return StatusLost
	case "drawn":
		return StatusDrawn
	case "canceled":
		return StatusCanceled
	default:
		return StatusActive
	}
}
