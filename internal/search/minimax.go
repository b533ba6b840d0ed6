package search

import (
	"context"
	"math"

	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/engine"
)

// Minimax searches the full game tree to a fixed depth.
type Minimax struct {
	eval  Evaluator
	stats Stats
}

// NewMinimax returns a Minimax strategy. A nil evaluator selects
// StandardEvaluator.
func NewMinimax(eval Evaluator) *Minimax {
	if eval == nil {
		eval = StandardEvaluator{}
	}
	return &Minimax{eval: eval}
}

// Name implements Strategy.
func (m *Minimax) Name() string { return NameMinimax }

// Stats implements Strategy.
func (m *Minimax) Stats() Stats { return m.stats }

// ChooseMove implements Strategy.
func (m *Minimax) ChooseMove(ctx context.Context, b *engine.Board, depth int) (chess.Move, error) {
	m.stats = Stats{}
	return searchRoot(ctx, b, depth, &m.stats, m.value)
}

func (m *Minimax) value(b *engine.Board, depth int) int {
	m.stats.Nodes++
	moves := b.CurrentPlayer().LegalMoves()
	if depth <= 0 || len(moves) == 0 {
		return m.eval.Score(b, depth)
	}

	maximizing := b.SideToMove() == chess.White
	best := math.MaxInt
	if maximizing {
		best = math.MinInt
	}
	for _, mv := range moves {
		tr := b.MakeMove(mv)
		if !tr.IsDone() {
			continue
		}
		if score := m.value(tr.Board, depth-1); better(maximizing, score, best) {
			best = score
		}
	}
	return best
}
