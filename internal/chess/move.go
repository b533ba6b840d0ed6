package chess

import "strings"

// MoveKind categorizes the different move variants.
type MoveKind int

const (
	NullMove        MoveKind = iota // "Move not found" sentinel; never executable
	QuietMove                       // Simple advance onto an empty cell
	PawnJump                        // Pawn double advance from its start row
	CaptureMove                     // Non-pawn capture
	PawnCaptureMove                 // Diagonal pawn capture
	EnPassantMove                   // Pawn capture of a pawn that just jumped
	KingSideCastle
	QueenSideCastle
)

// String returns the name of a move kind.
func (k MoveKind) String() string {
	names := []string{"NullMove", "QuietMove", "PawnJump", "CaptureMove",
		"PawnCaptureMove", "EnPassantMove", "KingSideCastle", "QueenSideCastle"}
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// NullMoveString is the text representation of the null move.
const NullMoveString = "--"

// Move is a pure value describing one move variant. A promotion is the
// wrapped variant (QuietMove or PawnCaptureMove) with Promotion set.
// The zero Move is the null move.
type Move struct {
	// Kind of move.
	Kind MoveKind

	// The moving piece in its pre-move form. The origin is Piece.Cell.
	Piece Piece

	// Destination cell.
	To int

	// The captured piece (empty if no capture). For en passant this is the
	// pawn behind the destination.
	Captured Piece

	// The kind a pawn is promoted to (NoKind if not a promotion).
	Promotion Kind

	// For castles, the participating rook and its destination cell.
	Rook   Piece
	RookTo int
}

// NullMoveSentinel is returned by move lookup when no move matches.
var NullMoveSentinel = Move{Kind: NullMove, To: -1}

// From returns the origin cell, or -1 for the null move.
func (m Move) From() int {
	if m.IsNull() {
		return -1
	}
	return m.Piece.Cell
}

// IsNull returns true if this is the null move.
func (m Move) IsNull() bool {
	return m.Kind == NullMove
}

// IsCapture returns true if this move removes an opponent piece.
func (m Move) IsCapture() bool {
	switch m.Kind {
	case CaptureMove, PawnCaptureMove, EnPassantMove:
		return true
	default:
		return false
	}
}

// IsCastle returns true if this move is a castling move.
func (m Move) IsCastle() bool {
	return m.Kind == KingSideCastle || m.Kind == QueenSideCastle
}

// IsPromotion returns true if this move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.Promotion != NoKind
}

// Equal reports whether two moves have the same origin, destination and
// moving piece.
func (m Move) Equal(other Move) bool {
	if m.IsNull() || other.IsNull() {
		return m.IsNull() && other.IsNull()
	}
	return m.To == other.To && m.Piece.Same(other.Piece)
}

// String returns short algebraic text: e4, Nf3, exd5, Qxh1, e8=Q, O-O.
func (m Move) String() string {
	switch m.Kind {
	case NullMove:
		return NullMoveString
	case KingSideCastle:
		return "O-O"
	case QueenSideCastle:
		return "O-O-O"
	}

	var sb strings.Builder
	if m.Piece.Kind == Pawn {
		if m.IsCapture() {
			sb.WriteByte(SquareName(m.From())[0])
			sb.WriteByte('x')
		}
	} else {
		sb.WriteByte(m.Piece.Kind.Letter())
		if m.IsCapture() {
			sb.WriteByte('x')
		}
	}
	sb.WriteString(SquareName(m.To))
	if m.IsPromotion() {
		sb.WriteByte('=')
		sb.WriteByte(m.Promotion.Letter())
	}
	return sb.String()
}

// UCI returns long algebraic text: e2e4, e1g1, e7e8q.
func (m Move) UCI() string {
	if m.IsNull() {
		return "0000"
	}
	s := SquareName(m.From()) + SquareName(m.To)
	if m.IsPromotion() {
		s += strings.ToLower(string(m.Promotion.Letter()))
	}
	return s
}
