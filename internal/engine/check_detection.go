package engine

import "github.com/lgbarn/chess-engine-go/internal/chess"

// Row/column ray directions of the sliding pieces.
var (
	diagonalDirs = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
)

// IsCellAttacked reports whether any piece of side by could capture on cell
// with a pseudo-legal move. Pawn pushes never attack.
func IsCellAttacked(pos *chess.Position, cell int, by chess.Alliance) bool {
	cells := pos.Cells()
	return cellAttacked(&cells, cell, by)
}

// cellAttacked is IsCellAttacked over a raw cell array, so the legality
// filter can query simulated boards without building a Position.
func cellAttacked(cells *[chess.NumCells]chess.Piece, cell int, by chess.Alliance) bool {
	row, col := chess.Row(cell), chess.Col(cell)

	is := func(r, c int, kinds ...chess.Kind) bool {
		p := cells[chess.CellAt(r, c)]
		if p.IsEmpty() || p.Alliance != by {
			return false
		}
		for _, k := range kinds {
			if p.Kind == k {
				return true
			}
		}
		return false
	}

	// An attacking pawn stands one row behind the cell, seen from its side.
	pr := row - by.Direction()
	for _, dc := range [2]int{-1, 1} {
		if chess.OnBoard(pr, col+dc) && is(pr, col+dc, chess.Pawn) {
			return true
		}
	}

	for _, off := range knightOffsets {
		r, c := row+off[0], col+off[1]
		if chess.OnBoard(r, c) && is(r, c, chess.Knight) {
			return true
		}
	}

	for _, off := range kingOffsets {
		r, c := row+off[0], col+off[1]
		if chess.OnBoard(r, c) && is(r, c, chess.King) {
			return true
		}
	}

	ray := func(dirs [4][2]int, kinds ...chess.Kind) bool {
		for _, d := range dirs {
			r, c := row+d[0], col+d[1]
			for chess.OnBoard(r, c) {
				if !cells[chess.CellAt(r, c)].IsEmpty() {
					if is(r, c, kinds...) {
						return true
					}
					break // Blocked
				}
				r, c = r+d[0], c+d[1]
			}
		}
		return false
	}

	return ray(diagonalDirs, chess.Bishop, chess.Queen) ||
		ray(straightDirs, chess.Rook, chess.Queen)
}
