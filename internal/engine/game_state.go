package engine

// Status is the state a player is in on a given board.
type Status int

const (
	StatusNormal Status = iota
	StatusCheck
	StatusCheckmate
	StatusStalemate
)

// String returns the name of a status.
func (s Status) String() string {
	switch s {
	case StatusNormal:
		return "normal"
	case StatusCheck:
		return "check"
	case StatusCheckmate:
		return "checkmate"
	case StatusStalemate:
		return "stalemate"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether the game is over for the player.
func (s Status) IsTerminal() bool {
	return s == StatusCheckmate || s == StatusStalemate
}
