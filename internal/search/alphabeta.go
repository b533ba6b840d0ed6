package search

import (
	"context"
	"math"

	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/engine"
)

// AlphaBeta is Minimax with an [alpha, beta] window. Every root move is
// searched with the full window, so root values, and therefore the chosen
// move, equal those of Minimax.
type AlphaBeta struct {
	eval  Evaluator
	stats Stats
}

// NewAlphaBeta returns an AlphaBeta strategy. A nil evaluator selects
// StandardEvaluator.
func NewAlphaBeta(eval Evaluator) *AlphaBeta {
	if eval == nil {
		eval = StandardEvaluator{}
	}
	return &AlphaBeta{eval: eval}
}

// Name implements Strategy.
func (a *AlphaBeta) Name() string { return NameAlphaBeta }

// Stats implements Strategy.
func (a *AlphaBeta) Stats() Stats { return a.stats }

// ChooseMove implements Strategy.
func (a *AlphaBeta) ChooseMove(ctx context.Context, b *engine.Board, depth int) (chess.Move, error) {
	a.stats = Stats{}
	return searchRoot(ctx, b, depth, &a.stats, func(b *engine.Board, depth int) int {
		return a.value(b, depth, math.MinInt, math.MaxInt)
	})
}

func (a *AlphaBeta) value(b *engine.Board, depth, alpha, beta int) int {
	a.stats.Nodes++
	moves := b.CurrentPlayer().LegalMoves()
	if depth <= 0 || len(moves) == 0 {
		return a.eval.Score(b, depth)
	}

	if b.SideToMove() == chess.White {
		best := math.MinInt
		for _, mv := range moves {
			tr := b.MakeMove(mv)
			if !tr.IsDone() {
				continue
			}
			score := a.value(tr.Board, depth-1, alpha, beta)
			best = max(best, score)
			alpha = max(alpha, score)
			if beta <= alpha {
				a.stats.Cutoffs++
				break
			}
		}
		return best
	}

	best := math.MaxInt
	for _, mv := range moves {
		tr := b.MakeMove(mv)
		if !tr.IsDone() {
			continue
		}
		score := a.value(tr.Board, depth-1, alpha, beta)
		best = min(best, score)
		beta = min(beta, score)
		if beta <= alpha {
			a.stats.Cutoffs++
			break
		}
	}
	return best
}
