// Package engine implements the chess rules on top of package chess:
// move generation, the legality filter, check detection and the Board that
// ties a position to its two players.
package engine

import (
	"github.com/lgbarn/chess-engine-go/internal/chess"
)

// Board is a position together with its white and black players. Both
// players are built with the board and never change afterwards; a move
// produces a new Board.
type Board struct {
	pos     *chess.Position
	players [2]*Player
}

// NewBoard builds the players of pos.
func NewBoard(pos *chess.Position) *Board {
	return &Board{
		pos: pos,
		players: [2]*Player{
			chess.White: newPlayer(pos, chess.White),
			chess.Black: newPlayer(pos, chess.Black),
		},
	}
}

// NewInitialBoard returns the standard starting board.
func NewInitialBoard() *Board {
	return NewBoard(chess.InitialPosition())
}

// BuildBoard validates a placement and builds a board from it.
func BuildBoard(pl chess.Placement) (*Board, error) {
	pos, err := chess.Build(pl)
	if err != nil {
		return nil, err
	}
	return NewBoard(pos), nil
}

// MustBoard is like BuildBoard but panics on an invalid placement.
func MustBoard(pl chess.Placement) *Board {
	return NewBoard(chess.MustBuild(pl))
}

// Position returns the underlying position.
func (b *Board) Position() *chess.Position { return b.pos }

// SideToMove returns the alliance whose turn it is.
func (b *Board) SideToMove() chess.Alliance { return b.pos.SideToMove() }

// CurrentPlayer returns the player whose turn it is.
func (b *Board) CurrentPlayer() *Player { return b.players[b.pos.SideToMove()] }

// Player returns the player of side.
func (b *Board) Player(side chess.Alliance) *Player { return b.players[side] }

// Opponent returns the opponent of side.
func (b *Board) Opponent(side chess.Alliance) *Player { return b.players[side.Opposite()] }

// LegalMoves returns the legal moves of side.
func (b *Board) LegalMoves(side chess.Alliance) []chess.Move {
	return b.players[side].LegalMoves()
}

// LegalMovesFrom returns the legal moves of the piece on cell, or nil if the
// cell is empty.
func (b *Board) LegalMovesFrom(cell int) []chess.Move {
	piece, ok := b.pos.Cell(cell)
	if !ok {
		return nil
	}
	var moves []chess.Move
	for _, m := range b.players[piece.Alliance].legal {
		if m.From() == cell {
			moves = append(moves, m)
		}
	}
	return moves
}

// FindMove returns the legal move of the side to move going from one cell
// to another, or NullMoveSentinel when there is none.
func (b *Board) FindMove(from, to int) chess.Move {
	for _, m := range b.CurrentPlayer().legal {
		if m.From() == from && m.To == to {
			return m
		}
	}
	return chess.NullMoveSentinel
}

// IsInCheck reports whether side is in check but not mated.
func (b *Board) IsInCheck(side chess.Alliance) bool { return b.players[side].IsInCheck() }

// IsCheckmate reports whether side is checkmated.
func (b *Board) IsCheckmate(side chess.Alliance) bool { return b.players[side].IsInCheckmate() }

// IsStalemate reports whether side is stalemated.
func (b *Board) IsStalemate(side chess.Alliance) bool { return b.players[side].IsInStalemate() }

// CastlingRights reports which castles side can make right now.
func (b *Board) CastlingRights(side chess.Alliance) chess.CastlingRights {
	return b.players[side].CastlingRights()
}

// Status returns the status of the side to move.
func (b *Board) Status() Status { return b.CurrentPlayer().Status() }

// String renders the position.
func (b *Board) String() string { return b.pos.String() }
