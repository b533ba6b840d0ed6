// Package search picks moves by fixed-depth game-tree search over
// engine boards. White maximises the evaluation and Black minimises it.
package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/engine"
	"github.com/lgbarn/chess-engine-go/internal/errors"
)

// Registered strategy names.
const (
	NameMinimax   = "minimax"
	NameAlphaBeta = "alphabeta"
)

// Names lists the strategies New accepts.
func Names() []string { return []string{NameMinimax, NameAlphaBeta} }

// Strategy chooses a move for the side to move on a board.
//
// A Strategy keeps the statistics of its last search and is therefore not
// safe for concurrent use; create one per goroutine.
type Strategy interface {
	// ChooseMove searches depth plies ahead and returns the best move.
	// When ctx is cancelled between root moves the best move found so far
	// is returned together with ctx.Err().
	ChooseMove(ctx context.Context, b *engine.Board, depth int) (chess.Move, error)

	// Name returns the registered name of the strategy.
	Name() string

	// Stats returns the counters of the most recent search.
	Stats() Stats
}

// New returns the strategy registered under name, using the standard
// evaluator. Names are matched case-insensitively.
func New(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameMinimax:
		return NewMinimax(nil), nil
	case NameAlphaBeta, "alpha-beta":
		return NewAlphaBeta(nil), nil
	default:
		return nil, fmt.Errorf("%q: %w", name, errors.ErrUnknownStrategy)
	}
}

// ChooseMove runs the named strategy to depth on b without a deadline.
func ChooseMove(b *engine.Board, name string, depth int) (chess.Move, error) {
	s, err := New(name)
	if err != nil {
		return chess.NullMoveSentinel, err
	}
	return s.ChooseMove(context.Background(), b, depth)
}

// valueFunc scores a board searched to the remaining depth.
type valueFunc func(b *engine.Board, depth int) int

// searchRoot tries every legal move of the side to move in generation order
// and keeps the best by value. A later move replaces the best only when its
// value is strictly better, so the first of equal moves wins.
func searchRoot(ctx context.Context, b *engine.Board, depth int, stats *Stats, value valueFunc) (chess.Move, error) {
	if depth < 1 {
		return chess.NullMoveSentinel, fmt.Errorf("search depth %d: %w", depth, errors.ErrInvalidConfig)
	}

	start := time.Now()
	defer func() { stats.Elapsed = time.Since(start) }()

	moves := b.CurrentPlayer().LegalMoves()
	if len(moves) == 0 {
		return chess.NullMoveSentinel, fmt.Errorf("%s to move: %v: %w", b.SideToMove(), b.Status(), errors.ErrNoMove)
	}

	maximizing := b.SideToMove() == chess.White
	best := chess.NullMoveSentinel
	var bestScore int
	for _, m := range moves {
		if err := ctx.Err(); err != nil {
			return best, err
		}
		tr := b.MakeMove(m)
		if !tr.IsDone() {
			continue
		}
		score := value(tr.Board, depth-1)
		if best.IsNull() || better(maximizing, score, bestScore) {
			best, bestScore = m, score
			stats.Score = score
		}
	}
	if best.IsNull() {
		return best, errors.ErrNoMove
	}
	return best, nil
}

func better(maximizing bool, score, than int) bool {
	if maximizing {
		return score > than
	}
	return score < than
}
