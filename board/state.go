package board

type State uint8

const (
	StateUnknown State = iota
	StateRunning
	StateCheckWhite
	StateCheckBlack
	StateCheckmateWhite
	StateCheckmateBlack
	StateStalemate
	StateFiftyMoveViolated
	StateTwofoldRepetition
)

// IsRunning reports whether the game continues from this state.
func (s State) IsRunning() bool {
	switch s {
	case StateRunning, StateCheckWhite, StateCheckBlack:
		return true
	default:
		return false
	}
}

// IsDraw reports whether this state ends the game without a winner.
func (s State) IsDraw() bool {
	switch s {
	case StateStalemate, StateFiftyMoveViolated, StateTwofoldRepetition:
		return true
	default:
		return false
	}
}

// Winner returns the winning side for checkmate states, SideUnknown otherwise.
func (s State) Winner() Side {
	switch s {
	case StateCheckmateWhite:
		return SideBlack
	case StateCheckmateBlack:
		return SideWhite
	default:
		return SideUnknown
	}
}

func (s State) String() string {
	switch s {
	case StateRunning:
		return "Running"
	case StateCheckWhite:
		return "White checked"
	case StateCheckBlack:
		return "Black checked"
	case StateCheckmateWhite:
		return "White checkmated"
	case StateCheckmateBlack:
		return "Black checkmated"
	case StateStalemate:
		return "Stalemate"
	case StateFiftyMoveViolated:
		return "Fifty-move rule violated"
	case StateTwofoldRepetition:
		return "Twofold repetition"
	default:
		return "Unknown"
	}
}
