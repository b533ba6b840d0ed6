package engine

import (
	"golang.org/x/exp/slices"

	"github.com/lgbarn/chess-engine-go/internal/chess"
)

// Player is the view of one side over a position: its pieces, its
// pseudo-legal and legal moves, and its check state. Players hold no
// reference to their opponent; the owning Board provides it.
type Player struct {
	alliance   chess.Alliance
	pos        *chess.Position
	king       chess.Piece
	pseudo     []chess.Move
	candidates []chess.Move
	legal      []chess.Move
	inCheck    bool
}

func newPlayer(pos *chess.Position, side chess.Alliance) *Player {
	p := &Player{
		alliance: side,
		pos:      pos,
		king:     pos.King(side),
		pseudo:   SideMoves(pos, side),
	}
	p.inCheck = IsCellAttacked(pos, p.king.Cell, side.Opposite())

	p.candidates = make([]chess.Move, 0, len(p.pseudo)+2)
	for _, m := range p.pseudo {
		// Kings are never captured; a position where that is possible was
		// reached by an illegal move.
		if m.Captured.Kind != chess.King {
			p.candidates = append(p.candidates, m)
		}
	}
	p.candidates = append(p.candidates, castleMoves(pos, side, p.inCheck)...)
	p.legal = legalMoves(pos, side, p.candidates)
	return p
}

// Alliance returns the side this player plays.
func (p *Player) Alliance() chess.Alliance { return p.alliance }

// ActivePieces returns the player's pieces on the board.
func (p *Player) ActivePieces() []chess.Piece { return p.pos.ActivePieces(p.alliance) }

// King returns the player's king.
func (p *Player) King() chess.Piece { return p.king }

// LegalMoves returns the moves this player may make, castles included.
func (p *Player) LegalMoves() []chess.Move { return slices.Clone(p.legal) }

// PseudoLegalMoves returns the moves of the player's pieces before the
// king safety filter, castles excluded.
func (p *Player) PseudoLegalMoves() []chess.Move { return slices.Clone(p.pseudo) }

// MoveCount returns the number of legal moves without copying them.
func (p *Player) MoveCount() int { return len(p.legal) }

// InCheck reports whether the king is attacked, mate included.
func (p *Player) InCheck() bool { return p.inCheck }

// Status returns exactly one of normal, check, checkmate or stalemate.
func (p *Player) Status() Status {
	hasMoves := len(p.legal) > 0
	switch {
	case p.inCheck && !hasMoves:
		return StatusCheckmate
	case p.inCheck:
		return StatusCheck
	case !hasMoves:
		return StatusStalemate
	default:
		return StatusNormal
	}
}

// IsInCheck reports a check that still has an escape; it is false under mate.
func (p *Player) IsInCheck() bool { return p.Status() == StatusCheck }

// IsInCheckmate reports whether the player is checkmated.
func (p *Player) IsInCheckmate() bool { return p.Status() == StatusCheckmate }

// IsInStalemate reports whether the player is stalemated.
func (p *Player) IsInStalemate() bool { return p.Status() == StatusStalemate }

// HasCastled reports whether the player castled earlier in the game.
func (p *Player) HasCastled() bool { return p.pos.HasCastled(p.alliance) }

// CastlingRights reports which castles the player can make right now.
func (p *Player) CastlingRights() chess.CastlingRights {
	_, ks := p.KingSideCastle()
	_, qs := p.QueenSideCastle()
	return chess.CastlingRights{KingSide: ks, QueenSide: qs}
}

// KingSideCastle returns the king-side castle if it is currently legal.
func (p *Player) KingSideCastle() (chess.Move, bool) {
	return p.findKind(chess.KingSideCastle)
}

// QueenSideCastle returns the queen-side castle if it is currently legal.
func (p *Player) QueenSideCastle() (chess.Move, bool) {
	return p.findKind(chess.QueenSideCastle)
}

func (p *Player) findKind(kind chess.MoveKind) (chess.Move, bool) {
	for _, m := range p.legal {
		if m.Kind == kind {
			return m, true
		}
	}
	return chess.NullMoveSentinel, false
}

// lookup finds m among the player's candidate moves. It returns the stored
// move, whether it is a candidate at all, and whether it is legal.
func (p *Player) lookup(m chess.Move) (chess.Move, bool, bool) {
	for _, l := range p.legal {
		if l.Equal(m) {
			return l, true, true
		}
	}
	for _, c := range p.candidates {
		if c.Equal(m) {
			return c, true, false
		}
	}
	return m, false, false
}

// candidateMove returns the move from one cell to another before the king
// safety filter, or NullMoveSentinel.
func (p *Player) candidateMove(from, to int) chess.Move {
	for _, m := range p.candidates {
		if m.From() == from && m.To == to {
			return m
		}
	}
	return chess.NullMoveSentinel
}
