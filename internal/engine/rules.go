package engine

import (
	"github.com/lgbarn/chess-engine-go/internal/chess"
)

// Perft counts the leaf nodes of the legal move tree below b to the given
// depth. The counts are comparable with published perft tables for
// positions that do not involve under-promotion.
func Perft(b *Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := b.CurrentPlayer().legal
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		t := b.MakeMove(m)
		if !t.IsDone() {
			continue
		}
		nodes += Perft(t.Board, depth-1)
	}
	return nodes
}

// Divide returns the perft count below each legal root move, keyed by the
// move's UCI text.
func Divide(b *Board, depth int) map[string]uint64 {
	result := make(map[string]uint64)
	if depth <= 0 {
		return result
	}
	for _, m := range b.CurrentPlayer().legal {
		t := b.MakeMove(m)
		if t.IsDone() {
			result[m.UCI()] = Perft(t.Board, depth-1)
		}
	}
	return result
}

// HasInsufficientMaterial reports whether neither side can possibly mate:
// K vs K, K+minor vs K, or K+B vs K+B with both bishops on one colour.
func (b *Board) HasInsufficientMaterial() bool {
	var minors [2][]chess.Piece
	for _, side := range []chess.Alliance{chess.White, chess.Black} {
		for _, piece := range b.pos.ActivePieces(side) {
			switch piece.Kind {
			case chess.King:
				continue
			case chess.Pawn, chess.Rook, chess.Queen:
				return false
			}
			minors[side] = append(minors[side], piece)
		}
	}

	w, bl := minors[chess.White], minors[chess.Black]
	switch {
	case len(w) == 0 && len(bl) == 0:
		return true
	case len(w)+len(bl) == 1:
		return true
	case len(w) == 1 && len(bl) == 1:
		return w[0].Kind == chess.Bishop && bl[0].Kind == chess.Bishop &&
			isLightCell(w[0].Cell) == isLightCell(bl[0].Cell)
	}
	return false
}

// isLightCell returns true if the cell is a light square (a8 is light).
func isLightCell(cell int) bool {
	return (chess.Row(cell)+chess.Col(cell))%2 == 0
}
