package chess

// Execute derives the Position that results from playing m. The receiver is
// left untouched. Executing the null move is a programming error and panics.
//
// The mover's pieces are carried over with the moved piece replaced by its
// post-move form, the opponent's pieces are carried over minus the captured
// one, and the side to move flips.
func (p *Position) Execute(m Move) *Position {
	if m.IsNull() {
		panic("chess: null move cannot be executed")
	}

	cells := p.cells
	SimulateCells(&cells, m)

	var ep Piece
	if m.Kind == PawnJump {
		ep = cells[m.To]
	}

	castled := p.castled
	if m.IsCastle() {
		castled[m.Piece.Alliance] = true
	}

	return fromCells(cells, p.side.Opposite(), ep, castled)
}

// SimulateCells applies the piece relocation of m to a raw cell array.
// It is the placement half of Execute, shared with the legality filter so
// both see exactly the same resulting board.
func SimulateCells(cells *[NumCells]Piece, m Move) {
	if m.IsNull() {
		panic("chess: null move cannot be executed")
	}

	cells[m.Piece.Cell] = Piece{}
	if m.Kind == EnPassantMove {
		cells[m.Captured.Cell] = Piece{}
	}

	moved := m.Piece.MovedTo(m.To)
	if m.IsPromotion() {
		moved.Kind = m.Promotion
	}
	cells[m.To] = moved

	if m.IsCastle() {
		cells[m.Rook.Cell] = Piece{}
		cells[m.RookTo] = m.Rook.MovedTo(m.RookTo)
	}
}

// fromCells builds a Position from cells known to be consistent; the
// active piece sets are derived by scanning.
func fromCells(cells [NumCells]Piece, side Alliance, ep Piece, castled [2]bool) *Position {
	p := &Position{
		cells:     cells,
		side:      side,
		enPassant: ep,
		castled:   castled,
	}
	for _, piece := range p.cells {
		if !piece.IsEmpty() {
			p.active[piece.Alliance] = append(p.active[piece.Alliance], piece)
		}
	}
	return p
}
