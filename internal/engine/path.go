package engine

import "github.com/lgbarn/chess-engine-go/internal/chess"

// Flat-index deltas of one sliding step.
var (
	diagonalSteps = [4]int{-9, -7, 7, 9}
	straightSteps = [4]int{-8, -1, 1, 8}
)

// validStep reports whether from→to lies on a diagonal (|Δrow| == |Δcol|)
// or on a straight line (exactly one of Δrow, Δcol is zero). Raw index
// arithmetic does not notice running off the left or right edge onto the
// neighbouring row, so every step of a ray must pass this check.
func validStep(from, to int, diagonal bool) bool {
	if !chess.ValidCell(from) || !chess.ValidCell(to) || from == to {
		return false
	}
	dr := abs(chess.Row(to) - chess.Row(from))
	dc := abs(chess.Col(to) - chess.Col(from))
	if diagonal {
		return dr == dc
	}
	return (dr == 0) != (dc == 0)
}

// slidingMoves walks every ray of a bishop, rook or queen. A ray ends at the
// board edge, after an invalid step, or on the first occupied cell, which is
// included as a capture when it holds an opponent piece.
func slidingMoves(pos *chess.Position, piece chess.Piece, diagonal, straight bool) []chess.Move {
	var moves []chess.Move
	walk := func(step int, diag bool) {
		prev := piece.Cell
		for {
			next := prev + step
			if !validStep(prev, next, diag) {
				return
			}
			m, ok, stop := stepOnto(pos, piece, next)
			if ok {
				moves = append(moves, m)
			}
			if stop {
				return
			}
			prev = next
		}
	}
	if diagonal {
		for _, step := range diagonalSteps {
			walk(step, true)
		}
	}
	if straight {
		for _, step := range straightSteps {
			walk(step, false)
		}
	}
	return moves
}

// stepOnto builds the move of piece onto cell. ok is false when the cell
// holds a piece of the same side; stop is true when the cell is occupied.
func stepOnto(pos *chess.Position, piece chess.Piece, cell int) (m chess.Move, ok, stop bool) {
	target, occupied := pos.Cell(cell)
	if !occupied {
		return chess.Move{Kind: chess.QuietMove, Piece: piece, To: cell}, true, false
	}
	if target.Alliance == piece.Alliance {
		return chess.Move{}, false, true
	}
	return chess.Move{Kind: chess.CaptureMove, Piece: piece, To: cell, Captured: target}, true, true
}
