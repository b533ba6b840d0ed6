// Package fen converts between positions and Forsyth-Edwards Notation.
//
// Positions carry no clocks, so parsed halfmove and fullmove counters are
// ignored and encoding writes the counters it is given.
package fen

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// kindFromLetter converts a FEN character to a piece kind.
func kindFromLetter(c byte) chess.Kind {
	switch c {
	case 'K', 'k':
		return chess.King
	case 'Q', 'q':
		return chess.Queen
	case 'R', 'r':
		return chess.Rook
	case 'N', 'n':
		return chess.Knight
	case 'B', 'b':
		return chess.Bishop
	case 'P', 'p':
		return chess.Pawn
	default:
		return chess.NoKind
	}
}

// Parse builds a position from a FEN string. Missing trailing fields
// default to White to move, no castling and no en-passant target.
//
// Has-moved flags are reconstructed: a king or rook is unmoved only when the
// castling field grants the matching right, a pawn only when it stands on
// its start row.
func Parse(s string) (*chess.Position, error) {
	parts := strings.Fields(s)
	if len(parts) < 1 {
		return nil, &errors.ParseError{Err: errors.ErrInvalidFEN, Input: s, Field: "piece placement"}
	}

	pieces, err := parsePlacement(s, parts[0])
	if err != nil {
		return nil, err
	}

	side := chess.White
	if len(parts) >= 2 {
		switch parts[1] {
		case "w":
		case "b":
			side = chess.Black
		default:
			return nil, &errors.ParseError{Err: errors.ErrInvalidFEN, Input: s, Field: "side to move", Got: parts[1]}
		}
	}

	castling := "-"
	if len(parts) >= 3 {
		castling = parts[2]
	}
	if err := applyCastling(s, castling, pieces); err != nil {
		return nil, err
	}

	pl := chess.Placement{Pieces: pieces, SideToMove: side}
	if len(parts) >= 4 && parts[3] != "-" {
		ep, err := parseEnPassant(s, parts[3], side, pieces)
		if err != nil {
			return nil, err
		}
		pl.EnPassantPawn = ep
	}

	pos, err := chess.Build(pl)
	if err != nil {
		return nil, fmt.Errorf("fen %q: %w: %w", s, errors.ErrInvalidFEN, err)
	}
	return pos, nil
}

// MustParse is like Parse but panics on a malformed string.
func MustParse(s string) *chess.Position {
	pos, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return pos
}

// parsePlacement parses the piece placement field.
func parsePlacement(input, field string) ([]chess.Piece, error) {
	rows := strings.Split(field, "/")
	if len(rows) != chess.BoardSize {
		return nil, &errors.ParseError{
			Err:   errors.ErrInvalidFEN,
			Input: input,
			Field: "piece placement",
			Got:   fmt.Sprintf("%d ranks", len(rows)),
		}
	}

	var pieces []chess.Piece
	for row, text := range rows {
		col := 0
		for i := 0; i < len(text); i++ {
			c := text[i]
			if c >= '1' && c <= '8' {
				col += int(c - '0')
				continue
			}
			kind := kindFromLetter(c)
			if kind == chess.NoKind {
				return nil, &errors.ParseError{Err: errors.ErrInvalidFEN, Input: input, Field: "piece placement", Got: string(c)}
			}
			if col >= chess.BoardSize {
				return nil, &errors.ParseError{Err: errors.ErrInvalidFEN, Input: input, Field: "piece placement", Got: text}
			}
			alliance := chess.White
			if unicode.IsLower(rune(c)) {
				alliance = chess.Black
			}
			piece := chess.NewPiece(kind, alliance, chess.CellAt(row, col))
			piece.Moved = kind != chess.Knight && kind != chess.Bishop && kind != chess.Queen
			if kind == chess.Pawn && row == alliance.PawnStartRow() {
				piece.Moved = false
			}
			pieces = append(pieces, piece)
			col++
		}
		if col != chess.BoardSize {
			return nil, &errors.ParseError{Err: errors.ErrInvalidFEN, Input: input, Field: "piece placement", Got: text}
		}
	}
	return pieces, nil
}

// applyCastling marks the kings and rooks named by the castling field as
// unmoved.
func applyCastling(input, field string, pieces []chess.Piece) error {
	if field == "-" {
		return nil
	}
	unmove := func(kind chess.Kind, side chess.Alliance, col int) {
		cell := chess.CellAt(side.BackRow(), col)
		for i := range pieces {
			if pieces[i].Cell == cell && pieces[i].Kind == kind && pieces[i].Alliance == side {
				pieces[i].Moved = false
			}
		}
	}
	for i := 0; i < len(field); i++ {
		side := chess.White
		if unicode.IsLower(rune(field[i])) {
			side = chess.Black
		}
		switch field[i] {
		case 'K', 'k':
			unmove(chess.Rook, side, 7)
		case 'Q', 'q':
			unmove(chess.Rook, side, 0)
		default:
			return &errors.ParseError{Err: errors.ErrInvalidFEN, Input: input, Field: "castling", Got: field}
		}
		unmove(chess.King, side, 4)
	}
	return nil
}

// parseEnPassant resolves the target square to the pawn that just jumped
// over it.
func parseEnPassant(input, field string, side chess.Alliance, pieces []chess.Piece) (chess.Piece, error) {
	target, err := chess.ParseSquare(field)
	if err != nil {
		return chess.Piece{}, &errors.ParseError{Err: errors.ErrInvalidFEN, Input: input, Field: "en passant", Got: field}
	}
	jumper := side.Opposite()
	row := chess.Row(target) + jumper.Direction()
	if !chess.OnBoard(row, chess.Col(target)) {
		return chess.Piece{}, &errors.ParseError{Err: errors.ErrInvalidFEN, Input: input, Field: "en passant", Got: field}
	}
	cell := chess.CellAt(row, chess.Col(target))
	for _, p := range pieces {
		if p.Cell == cell && p.Kind == chess.Pawn && p.Alliance == jumper {
			return p, nil
		}
	}
	return chess.Piece{}, &errors.ParseError{Err: errors.ErrInvalidFEN, Input: input, Field: "en passant", Got: field}
}

// Encode writes pos as a FEN string with the given move counters. The
// castling field reports structural rights: king and rook unmoved on their
// original cells.
func Encode(pos *chess.Position, halfmove, fullmove int) string {
	var sb strings.Builder

	writePlacement(&sb, pos)
	sb.WriteByte(' ')
	if pos.SideToMove() == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	writeCastling(&sb, pos)
	sb.WriteByte(' ')
	writeEnPassant(&sb, pos)
	fmt.Fprintf(&sb, " %d %d", halfmove, fullmove)

	return sb.String()
}

// writePlacement writes the piece placement to the builder.
func writePlacement(sb *strings.Builder, pos *chess.Position) {
	for row := 0; row < chess.BoardSize; row++ {
		empty := 0
		for col := 0; col < chess.BoardSize; col++ {
			piece, ok := pos.Cell(chess.CellAt(row, col))
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(piece.Letter())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if row < chess.BoardSize-1 {
			sb.WriteByte('/')
		}
	}
}

// writeCastling writes the castling availability to the builder.
func writeCastling(sb *strings.Builder, pos *chess.Position) {
	w, b := pos.CastlingRights(chess.White), pos.CastlingRights(chess.Black)
	n := sb.Len()
	if w.KingSide {
		sb.WriteByte('K')
	}
	if w.QueenSide {
		sb.WriteByte('Q')
	}
	if b.KingSide {
		sb.WriteByte('k')
	}
	if b.QueenSide {
		sb.WriteByte('q')
	}
	if sb.Len() == n {
		sb.WriteByte('-')
	}
}

// writeEnPassant writes the square behind the pawn that just jumped.
func writeEnPassant(sb *strings.Builder, pos *chess.Position) {
	ep, ok := pos.EnPassantPawn()
	if !ok {
		sb.WriteByte('-')
		return
	}
	behind := chess.CellAt(chess.Row(ep.Cell)-ep.Alliance.Direction(), chess.Col(ep.Cell))
	sb.WriteString(chess.SquareName(behind))
}
