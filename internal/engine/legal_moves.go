package engine

import "github.com/lgbarn/chess-engine-go/internal/chess"

// legalMoves filters candidate moves of one side down to those that do not
// leave that side's king attacked. Each move is simulated on a scratch copy
// of the cells which is restored afterwards.
func legalMoves(pos *chess.Position, side chess.Alliance, candidates []chess.Move) []chess.Move {
	cells := pos.Cells()
	king := pos.King(side).Cell

	legal := make([]chess.Move, 0, len(candidates))
	for _, m := range candidates {
		kingCell := king
		if m.Piece.Kind == chess.King {
			kingCell = m.To
		}
		if !exposesKing(&cells, m, kingCell) {
			legal = append(legal, m)
		}
	}
	return legal
}

// exposesKing plays m on cells, tests whether kingCell is attacked by the
// opponent of the mover, and undoes the move.
func exposesKing(cells *[chess.NumCells]chess.Piece, m chess.Move, kingCell int) bool {
	touched := [5]int{m.Piece.Cell, m.To, m.Piece.Cell, m.Piece.Cell, m.Piece.Cell}
	if m.Kind == chess.EnPassantMove {
		touched[2] = m.Captured.Cell
	}
	if m.IsCastle() {
		touched[3] = m.Rook.Cell
		touched[4] = m.RookTo
	}
	var saved [5]chess.Piece
	for i, c := range touched {
		saved[i] = cells[c]
	}

	chess.SimulateCells(cells, m)
	attacked := cellAttacked(cells, kingCell, m.Piece.Alliance.Opposite())

	for i, c := range touched {
		cells[c] = saved[i]
	}
	return attacked
}
