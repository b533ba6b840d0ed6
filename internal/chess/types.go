// Package chess provides the core chess value types: alliances, pieces,
// moves and the immutable Position they act on.
package chess

import (
	"fmt"

	"github.com/lgbarn/chess-engine-go/internal/errors"
)

// Alliance represents the side a piece or player belongs to.
type Alliance uint8

const (
	White Alliance = iota
	Black
)

// String returns the string representation of an alliance.
func (a Alliance) String() string {
	if a == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite alliance.
func (a Alliance) Opposite() Alliance {
	if a == White {
		return Black
	}
	return White
}

// Direction returns the row delta of a forward pawn step.
// White advances towards row 0 (rank 8), Black towards row 7.
func (a Alliance) Direction() int {
	if a == White {
		return -1
	}
	return 1
}

// PawnStartRow returns the row on which this side's pawns start.
func (a Alliance) PawnStartRow() int {
	if a == White {
		return 6
	}
	return 1
}

// BackRow returns the row holding this side's king and rooks at the start.
func (a Alliance) BackRow() int {
	if a == White {
		return 7
	}
	return 0
}

// IsPromotionSquare reports whether a pawn of this side promotes on cell.
func (a Alliance) IsPromotionSquare(cell int) bool {
	if a == White {
		return Row(cell) == 0
	}
	return Row(cell) == 7
}

// Kind represents a chess piece type.
type Kind uint8

const (
	NoKind Kind = iota // Empty cell
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the string representation of a piece kind.
func (k Kind) String() string {
	names := []string{"Empty", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a piece kind (uppercase).
func (k Kind) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// Value returns the material value of a piece kind in centipawns.
func (k Kind) Value() int {
	switch k {
	case Pawn:
		return 100
	case Knight, Bishop:
		return 300
	case Rook:
		return 500
	case Queen:
		return 900
	case King:
		return 10000
	default:
		return 0
	}
}

// Board dimensions.
const (
	BoardSize = 8
	NumCells  = BoardSize * BoardSize
)

// Row returns the row (0 = rank 8) of a cell index.
func Row(cell int) int {
	return cell / BoardSize
}

// Col returns the column (0 = file a) of a cell index.
func Col(cell int) int {
	return cell % BoardSize
}

// OnBoard reports whether (row, col) lies on the board.
func OnBoard(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

// CellAt converts a row and column into a cell index.
func CellAt(row, col int) int {
	return row*BoardSize + col
}

// ValidCell reports whether cell is a board index.
func ValidCell(cell int) bool {
	return cell >= 0 && cell < NumCells
}

// SquareName returns the algebraic name of a cell ("a8" for 0, "h1" for 63).
func SquareName(cell int) string {
	if !ValidCell(cell) {
		return "-"
	}
	return string([]byte{byte('a' + Col(cell)), byte('8' - Row(cell))})
}

// ParseSquare converts an algebraic square name into a cell index.
func ParseSquare(name string) (int, error) {
	if len(name) != 2 {
		return 0, fmt.Errorf("square %q: %w", name, errors.ErrInvalidSquare)
	}
	file, rank := name[0], name[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return 0, fmt.Errorf("square %q: %w", name, errors.ErrInvalidSquare)
	}
	return CellAt(int('8'-rank), int(file-'a')), nil
}

// MustSquare is like ParseSquare but panics on a malformed name.
// Intended for fixed square names in tables.
func MustSquare(name string) int {
	cell, err := ParseSquare(name)
	if err != nil {
		panic(err)
	}
	return cell
}

// Piece is a piece standing on a cell. The zero value is an empty cell.
type Piece struct {
	Kind     Kind
	Alliance Alliance
	Moved    bool
	Cell     int
}

// NewPiece creates an unmoved piece.
func NewPiece(kind Kind, alliance Alliance, cell int) Piece {
	return Piece{Kind: kind, Alliance: alliance, Cell: cell}
}

// IsEmpty reports whether the value denotes an empty cell.
func (p Piece) IsEmpty() bool {
	return p.Kind == NoKind
}

// Same reports whether two pieces are the same piece: identical kind,
// alliance and cell. The moved flag does not take part.
func (p Piece) Same(other Piece) bool {
	return p.Kind == other.Kind && p.Alliance == other.Alliance && p.Cell == other.Cell
}

// MovedTo returns the post-move form of the piece.
func (p Piece) MovedTo(cell int) Piece {
	return Piece{Kind: p.Kind, Alliance: p.Alliance, Cell: cell, Moved: true}
}

// Letter returns the FEN letter of the piece (uppercase for White).
func (p Piece) Letter() byte {
	l := p.Kind.Letter()
	if p.Alliance == Black && l >= 'A' && l <= 'Z' {
		l += 'a' - 'A'
	}
	return l
}

// String returns e.g. "White Knight@g1".
func (p Piece) String() string {
	if p.IsEmpty() {
		return "Empty"
	}
	return fmt.Sprintf("%s %s@%s", p.Alliance, p.Kind, SquareName(p.Cell))
}

// CastlingRights records which castles a side may still make.
type CastlingRights struct {
	KingSide  bool
	QueenSide bool
}
