package engine

import (
	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/errors"
)

// MoveStatus is the outcome of MakeMove.
type MoveStatus int

const (
	MoveDone MoveStatus = iota
	MoveIllegal
	MoveLeavesKingInCheck
)

// String returns the name of a move status.
func (s MoveStatus) String() string {
	switch s {
	case MoveDone:
		return "done"
	case MoveIllegal:
		return "illegal move"
	case MoveLeavesKingInCheck:
		return "leaves king in check"
	default:
		return "unknown"
	}
}

// Transition is the result of MakeMove. On success Board is the new board
// and Move the stored legal move; on rejection Board is the unchanged
// original.
type Transition struct {
	Board  *Board
	Move   chess.Move
	Status MoveStatus
}

// IsDone reports whether the move was accepted.
func (t Transition) IsDone() bool { return t.Status == MoveDone }

// Err returns nil for an accepted move and the matching sentinel otherwise.
func (t Transition) Err() error {
	switch t.Status {
	case MoveDone:
		return nil
	case MoveLeavesKingInCheck:
		return errors.ErrLeavesKingInCheck
	default:
		return errors.ErrIllegalMove
	}
}

// MakeMove plays m for the side to move. A move that is not among the
// side's moves is rejected as illegal; one that is but would leave the
// king attacked is rejected as such. Rejections leave the board unchanged.
func (b *Board) MakeMove(m chess.Move) Transition {
	if m.IsNull() || m.Piece.Alliance != b.SideToMove() {
		return Transition{Board: b, Move: m, Status: MoveIllegal}
	}

	stored, known, legal := b.CurrentPlayer().lookup(m)
	switch {
	case !known:
		return Transition{Board: b, Move: m, Status: MoveIllegal}
	case !legal:
		return Transition{Board: b, Move: stored, Status: MoveLeavesKingInCheck}
	}

	return Transition{
		Board:  NewBoard(b.pos.Execute(stored)),
		Move:   stored,
		Status: MoveDone,
	}
}
