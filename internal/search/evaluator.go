package search

import (
	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/engine"
)

// Evaluation weights.
const (
	MobilityWeight      = 4
	CheckBonus          = 50
	CastleBonus         = 50
	CheckmateBonus      = 1_000_000
	DepthBonusAmplifier = 100
)

// Evaluator scores a board from White's point of view. depth is the search
// depth still remaining when the board was reached.
type Evaluator interface {
	Score(b *engine.Board, depth int) int
}

// StandardEvaluator adds material, mobility, check, castling and mate terms
// for each side and returns White's total minus Black's.
type StandardEvaluator struct{}

// Score implements Evaluator.
func (StandardEvaluator) Score(b *engine.Board, depth int) int {
	return scoreSide(b, chess.White, depth) - scoreSide(b, chess.Black, depth)
}

func scoreSide(b *engine.Board, side chess.Alliance, depth int) int {
	p, opp := b.Player(side), b.Opponent(side)
	return material(p) + mobility(p) + check(opp) + checkmate(opp, depth) + castled(p)
}

func material(p *engine.Player) int {
	total := 0
	for _, piece := range p.ActivePieces() {
		total += piece.Kind.Value()
	}
	return total
}

func mobility(p *engine.Player) int { return MobilityWeight * p.MoveCount() }

func check(opp *engine.Player) int {
	if opp.IsInCheck() {
		return CheckBonus
	}
	return 0
}

// A mate found with more depth remaining is nearer the root and scores
// higher.
func checkmate(opp *engine.Player, depth int) int {
	if opp.IsInCheckmate() {
		return CheckmateBonus * depthBonus(depth)
	}
	return 0
}

func depthBonus(depth int) int {
	if depth == 0 {
		return 1
	}
	return DepthBonusAmplifier * depth
}

func castled(p *engine.Player) int {
	if p.HasCastled() {
		return CastleBonus
	}
	return 0
}
