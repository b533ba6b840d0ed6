package chess

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/lgbarn/chess-engine-go/internal/errors"
)

// Placement is the configuration record a Position is built from.
// It is consumed once by Build; the resulting Position does not alias it.
type Placement struct {
	// Pieces to place; each Piece carries its own cell.
	Pieces []Piece

	// Who has the next move.
	SideToMove Alliance

	// The pawn that just advanced two cells, if any (zero value for none).
	EnPassantPawn Piece

	// Whether each side has castled earlier in the game, indexed by Alliance.
	Castled [2]bool
}

// Position is an immutable snapshot of a chess game: piece placement,
// side to move, en-passant target and castled flags.
type Position struct {
	cells     [NumCells]Piece
	active    [2][]Piece
	side      Alliance
	enPassant Piece
	castled   [2]bool
}

// Build validates a placement and constructs a Position from it.
// Every side must have exactly one king and no two pieces may share a cell.
func Build(pl Placement) (*Position, error) {
	if pl.SideToMove != White && pl.SideToMove != Black {
		return nil, fmt.Errorf("side to move %d: %w", pl.SideToMove, errors.ErrInvalidPosition)
	}

	p := &Position{
		side:    pl.SideToMove,
		castled: pl.Castled,
	}

	for _, piece := range pl.Pieces {
		if !ValidCell(piece.Cell) {
			return nil, fmt.Errorf("%s: cell %d out of range: %w", piece.Kind, piece.Cell, errors.ErrInvalidPosition)
		}
		if piece.Kind < Pawn || piece.Kind > King {
			return nil, fmt.Errorf("piece kind %d on %s: %w", piece.Kind, SquareName(piece.Cell), errors.ErrInvalidPosition)
		}
		if piece.Alliance != White && piece.Alliance != Black {
			return nil, fmt.Errorf("alliance %d on %s: %w", piece.Alliance, SquareName(piece.Cell), errors.ErrInvalidPosition)
		}
		if !p.cells[piece.Cell].IsEmpty() {
			return nil, fmt.Errorf("two pieces on %s: %w", SquareName(piece.Cell), errors.ErrInvalidPosition)
		}
		p.cells[piece.Cell] = piece
	}

	var kings [2]int
	for _, piece := range p.cells {
		if piece.IsEmpty() {
			continue
		}
		p.active[piece.Alliance] = append(p.active[piece.Alliance], piece)
		if piece.Kind == King {
			kings[piece.Alliance]++
		}
	}
	for _, side := range []Alliance{White, Black} {
		if kings[side] != 1 {
			return nil, fmt.Errorf("%s has %d kings: %w", side, kings[side], errors.ErrInvalidPosition)
		}
	}

	if !pl.EnPassantPawn.IsEmpty() {
		ep := pl.EnPassantPawn
		if !ValidCell(ep.Cell) || ep.Kind != Pawn || !p.cells[ep.Cell].Same(ep) {
			return nil, fmt.Errorf("en-passant pawn %s not on board: %w", ep, errors.ErrInvalidPosition)
		}
		if ep.Alliance == pl.SideToMove {
			return nil, fmt.Errorf("en-passant pawn %s belongs to side to move: %w", ep, errors.ErrInvalidPosition)
		}
		p.enPassant = p.cells[ep.Cell]
	}

	return p, nil
}

// MustBuild is like Build but panics if the placement is invalid.
func MustBuild(pl Placement) *Position {
	p, err := Build(pl)
	if err != nil {
		panic(err)
	}
	return p
}

// InitialPosition returns the standard chess starting position, White to move.
func InitialPosition() *Position {
	backRank := []Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	pieces := make([]Piece, 0, 32)
	for col := 0; col < BoardSize; col++ {
		pieces = append(pieces,
			NewPiece(backRank[col], Black, CellAt(0, col)),
			NewPiece(Pawn, Black, CellAt(1, col)),
			NewPiece(Pawn, White, CellAt(6, col)),
			NewPiece(backRank[col], White, CellAt(7, col)),
		)
	}
	return MustBuild(Placement{Pieces: pieces, SideToMove: White})
}

// Cell returns the piece on a cell and whether the cell is occupied.
// An index outside [0, 64) is a programming error and panics.
func (p *Position) Cell(i int) (Piece, bool) {
	if !ValidCell(i) {
		panic(fmt.Sprintf("chess: cell index %d out of range", i))
	}
	piece := p.cells[i]
	return piece, !piece.IsEmpty()
}

// IsOccupied reports whether a cell holds a piece.
func (p *Position) IsOccupied(i int) bool {
	_, ok := p.Cell(i)
	return ok
}

// Cells returns a copy of the 64 cells.
func (p *Position) Cells() [NumCells]Piece {
	return p.cells
}

// ActivePieces returns the pieces of one side in cell order.
// The returned slice is a copy.
func (p *Position) ActivePieces(side Alliance) []Piece {
	return slices.Clone(p.active[side])
}

// SideToMove returns the alliance whose turn it is.
func (p *Position) SideToMove() Alliance {
	return p.side
}

// EnPassantPawn returns the pawn that just advanced two cells, if any.
func (p *Position) EnPassantPawn() (Piece, bool) {
	return p.enPassant, !p.enPassant.IsEmpty()
}

// HasCastled reports whether a side has castled earlier in the game.
func (p *Position) HasCastled(side Alliance) bool {
	return p.castled[side]
}

// King returns the king of a side. Build guarantees it exists.
func (p *Position) King(side Alliance) Piece {
	for _, piece := range p.active[side] {
		if piece.Kind == King {
			return piece
		}
	}
	panic("chess: position without king")
}

// CastlingRights reports, per wing, whether the king and that rook still
// stand unmoved on their original cells. Attacks are not considered.
func (p *Position) CastlingRights(side Alliance) CastlingRights {
	row := side.BackRow()
	king := p.cells[CellAt(row, 4)]
	if king.Kind != King || king.Alliance != side || king.Moved {
		return CastlingRights{}
	}
	unmovedRook := func(col int) bool {
		r := p.cells[CellAt(row, col)]
		return r.Kind == Rook && r.Alliance == side && !r.Moved
	}
	return CastlingRights{
		KingSide:  unmovedRook(7),
		QueenSide: unmovedRook(0),
	}
}

// Placement returns the configuration record that rebuilds this position.
func (p *Position) Placement() Placement {
	pieces := make([]Piece, 0, len(p.active[White])+len(p.active[Black]))
	pieces = append(pieces, p.active[White]...)
	pieces = append(pieces, p.active[Black]...)
	return Placement{
		Pieces:        pieces,
		SideToMove:    p.side,
		EnPassantPawn: p.enPassant,
		Castled:       p.castled,
	}
}

// String renders the board as eight lines of FEN letters, '-' for empty cells.
func (p *Position) String() string {
	var sb strings.Builder
	for i, piece := range p.cells {
		if piece.IsEmpty() {
			sb.WriteString("  -")
		} else {
			sb.WriteString("  ")
			sb.WriteByte(piece.Letter())
		}
		if (i+1)%BoardSize == 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
