package engine

import "github.com/lgbarn/chess-engine-go/internal/chess"

// castleMoves returns the castles side may make on pos. The king and the
// rook must be unmoved on their original cells, the king must not be in
// check, and every cell from the rook up to the king's destination must be
// free of attack, with the cells strictly between king and rook empty.
func castleMoves(pos *chess.Position, side chess.Alliance, inCheck bool) []chess.Move {
	if inCheck {
		return nil
	}
	rights := pos.CastlingRights(side)
	row := side.BackRow()
	king, _ := pos.Cell(chess.CellAt(row, 4))

	var moves []chess.Move
	if rights.KingSide && castlePathSafe(pos, side, row, 5, 7) {
		rook, _ := pos.Cell(chess.CellAt(row, 7))
		moves = append(moves, chess.Move{
			Kind:   chess.KingSideCastle,
			Piece:  king,
			To:     chess.CellAt(row, 6),
			Rook:   rook,
			RookTo: chess.CellAt(row, 5),
		})
	}
	if rights.QueenSide && castlePathSafe(pos, side, row, 0, 3) {
		rook, _ := pos.Cell(chess.CellAt(row, 0))
		moves = append(moves, chess.Move{
			Kind:   chess.QueenSideCastle,
			Piece:  king,
			To:     chess.CellAt(row, 2),
			Rook:   rook,
			RookTo: chess.CellAt(row, 3),
		})
	}
	return moves
}

// castlePathSafe checks columns from..to on row: none may be attacked by the
// opponent, and all except the rook's own column must be empty.
func castlePathSafe(pos *chess.Position, side chess.Alliance, row, from, to int) bool {
	opp := side.Opposite()
	for col := from; col <= to; col++ {
		cell := chess.CellAt(row, col)
		rookCol := col == 0 || col == 7
		if !rookCol && pos.IsOccupied(cell) {
			return false
		}
		if IsCellAttacked(pos, cell, opp) {
			return false
		}
	}
	return true
}
