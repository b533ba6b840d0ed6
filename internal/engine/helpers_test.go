package engine

import (
	"sort"
	"testing"

	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/fen"
)

func boardFromFEN(t testing.TB, s string) *Board {
	t.Helper()
	pos, err := fen.Parse(s)
	if err != nil {
		t.Fatalf("fen.Parse(%q) error: %v", s, err)
	}
	return NewBoard(pos)
}

func play(t testing.TB, b *Board, moves ...string) *Board {
	t.Helper()
	for i, text := range moves {
		m, err := ParseUCI(b, text)
		if err != nil {
			t.Fatalf("move %d %q: %v", i+1, text, err)
		}
		tr := b.MakeMove(m)
		if !tr.IsDone() {
			t.Fatalf("move %d %q: %v", i+1, text, tr.Err())
		}
		b = tr.Board
	}
	return b
}

func uciSet(moves []chess.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.UCI()
	}
	sort.Strings(out)
	return out
}

func sq(name string) int { return chess.MustSquare(name) }
