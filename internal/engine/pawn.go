package engine

import "github.com/lgbarn/chess-engine-go/internal/chess"

// pawnMoves generates pushes, the double advance, diagonal captures and the
// en-passant capture of a pawn. A push or capture onto the far row is
// wrapped as a queen promotion.
func pawnMoves(pos *chess.Position, pawn chess.Piece) []chess.Move {
	side := pawn.Alliance
	dir := side.Direction()
	row, col := chess.Row(pawn.Cell), chess.Col(pawn.Cell)
	ahead := row + dir
	if !chess.OnBoard(ahead, col) {
		return nil
	}

	var moves []chess.Move
	one := chess.CellAt(ahead, col)
	if !pos.IsOccupied(one) {
		moves = append(moves, promote(chess.Move{Kind: chess.QuietMove, Piece: pawn, To: one}))

		if !pawn.Moved && row == side.PawnStartRow() {
			two := chess.CellAt(row+2*dir, col)
			if !pos.IsOccupied(two) {
				moves = append(moves, chess.Move{Kind: chess.PawnJump, Piece: pawn, To: two})
			}
		}
	}

	ep, hasEP := pos.EnPassantPawn()
	for _, dc := range [2]int{-1, 1} {
		c := col + dc
		if !chess.OnBoard(ahead, c) {
			continue
		}
		to := chess.CellAt(ahead, c)
		if target, ok := pos.Cell(to); ok {
			if target.Alliance != side {
				moves = append(moves, promote(chess.Move{
					Kind:     chess.PawnCaptureMove,
					Piece:    pawn,
					To:       to,
					Captured: target,
				}))
			}
			continue
		}
		// The jumped pawn stands beside us, one row behind the destination.
		if hasEP && ep.Alliance != side && ep.Cell == chess.CellAt(row, c) {
			moves = append(moves, chess.Move{
				Kind:     chess.EnPassantMove,
				Piece:    pawn,
				To:       to,
				Captured: ep,
			})
		}
	}
	return moves
}

// promote marks a pawn move landing on the far row as a queen promotion.
func promote(m chess.Move) chess.Move {
	if m.Piece.Alliance.IsPromotionSquare(m.To) {
		m.Promotion = chess.Queen
	}
	return m
}
