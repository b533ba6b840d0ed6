package engine

import "github.com/lgbarn/chess-engine-go/internal/chess"

// Row/column offsets of the non-sliding pieces.
var (
	knightOffsets = [8][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
)

// PseudoLegalMoves returns the moves piece can make on pos according to its
// movement rules, ignoring whether the mover's own king is left attacked.
// Castles are not included.
func PseudoLegalMoves(pos *chess.Position, piece chess.Piece) []chess.Move {
	switch piece.Kind {
	case chess.Pawn:
		return pawnMoves(pos, piece)
	case chess.Knight:
		return offsetMoves(pos, piece, knightOffsets[:])
	case chess.Bishop:
		return slidingMoves(pos, piece, true, false)
	case chess.Rook:
		return slidingMoves(pos, piece, false, true)
	case chess.Queen:
		return slidingMoves(pos, piece, true, true)
	case chess.King:
		return offsetMoves(pos, piece, kingOffsets[:])
	}
	return nil
}

// SideMoves concatenates the pseudo-legal moves of every active piece of
// side, in active piece order.
func SideMoves(pos *chess.Position, side chess.Alliance) []chess.Move {
	var moves []chess.Move
	for _, piece := range pos.ActivePieces(side) {
		moves = append(moves, PseudoLegalMoves(pos, piece)...)
	}
	return moves
}

// offsetMoves generates single-jump moves for knights and kings.
func offsetMoves(pos *chess.Position, piece chess.Piece, offsets [][2]int) []chess.Move {
	var moves []chess.Move
	row, col := chess.Row(piece.Cell), chess.Col(piece.Cell)
	for _, off := range offsets {
		r, c := row+off[0], col+off[1]
		if !chess.OnBoard(r, c) {
			continue
		}
		if m, ok, _ := stepOnto(pos, piece, chess.CellAt(r, c)); ok {
			moves = append(moves, m)
		}
	}
	return moves
}
