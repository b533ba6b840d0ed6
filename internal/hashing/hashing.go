// Package hashing provides position hashing and repetition counting for
// chess games.
package hashing

import (
	"math/rand"

	"github.com/lgbarn/chess-engine-go/internal/chess"
)

// Zobrist keys. The seed is fixed so hashes are stable across runs.
var (
	pieceKeys     [2][chess.King + 1][chess.NumCells]uint64
	castlingKeys  [2][2]uint64 // [side][king side, queen side]
	enPassantKeys [8]uint64    // by file of the jumped pawn
	blackToMove   uint64
)

func init() {
	rnd := rand.New(rand.NewSource(0xC0DE))
	for side := range pieceKeys {
		for kind := range pieceKeys[side] {
			for cell := range pieceKeys[side][kind] {
				pieceKeys[side][kind][cell] = rnd.Uint64()
			}
		}
	}
	for side := range castlingKeys {
		castlingKeys[side][0] = rnd.Uint64()
		castlingKeys[side][1] = rnd.Uint64()
	}
	for file := range enPassantKeys {
		enPassantKeys[file] = rnd.Uint64()
	}
	blackToMove = rnd.Uint64()
}

// Zobrist returns the hash of everything that decides which moves are
// available: placement, side to move, castling rights and the en-passant
// pawn. Whether a side has castled is not part of the hash.
func Zobrist(pos *chess.Position) uint64 {
	var key uint64
	for _, side := range []chess.Alliance{chess.White, chess.Black} {
		for _, p := range pos.ActivePieces(side) {
			key ^= pieceKeys[side][p.Kind][p.Cell]
		}
		rights := pos.CastlingRights(side)
		if rights.KingSide {
			key ^= castlingKeys[side][0]
		}
		if rights.QueenSide {
			key ^= castlingKeys[side][1]
		}
	}
	if pos.SideToMove() == chess.Black {
		key ^= blackToMove
	}
	if ep, ok := pos.EnPassantPawn(); ok {
		key ^= enPassantKeys[chess.Col(ep.Cell)]
	}
	return key
}

// RepetitionTable counts how often each position occurred in a game.
type RepetitionTable struct {
	counts map[uint64]int
	// maxCount is the highest count of any position
	maxCount int
}

// NewRepetitionTable creates an empty table.
func NewRepetitionTable() *RepetitionTable {
	return &RepetitionTable{counts: make(map[uint64]int)}
}

// Add records an occurrence of pos and returns how often it has now
// occurred.
func (t *RepetitionTable) Add(pos *chess.Position) int {
	h := Zobrist(pos)
	t.counts[h]++
	if t.counts[h] > t.maxCount {
		t.maxCount = t.counts[h]
	}
	return t.counts[h]
}

// Count returns how often pos has occurred.
func (t *RepetitionTable) Count(pos *chess.Position) int {
	return t.counts[Zobrist(pos)]
}

// MaxCount returns the highest repetition count of any position.
func (t *RepetitionTable) MaxCount() int {
	return t.maxCount
}

// UniqueCount returns the number of distinct positions seen.
func (t *RepetitionTable) UniqueCount() int {
	return len(t.counts)
}

// Reset clears the table.
func (t *RepetitionTable) Reset() {
	t.counts = make(map[uint64]int)
	t.maxCount = 0
}
