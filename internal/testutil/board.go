package testutil

import (
	"sort"
	"testing"

	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/engine"
	"github.com/lgbarn/chess-engine-go/internal/fen"
)

// MustFEN parses a FEN string into a board, failing the test on error.
func MustFEN(t testing.TB, s string) *engine.Board {
	t.Helper()
	pos, err := fen.Parse(s)
	if err != nil {
		t.Fatalf("fen.Parse(%q) error: %v", s, err)
	}
	return engine.NewBoard(pos)
}

// Play makes a sequence of UCI moves from b and returns the final board.
// Any rejected move fails the test.
func Play(t testing.TB, b *engine.Board, moves ...string) *engine.Board {
	t.Helper()
	for i, text := range moves {
		m, err := engine.ParseUCI(b, text)
		if err != nil {
			t.Fatalf("move %d %q: %v", i+1, text, err)
		}
		tr := b.MakeMove(m)
		if err := tr.Err(); err != nil {
			t.Fatalf("move %d %q: %v", i+1, text, err)
		}
		b = tr.Board
	}
	return b
}

// UCIs returns the UCI text of moves, sorted.
func UCIs(moves []chess.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.UCI()
	}
	sort.Strings(out)
	return out
}

// FromTo returns the distinct origin-destination pairs of moves as sorted
// four-letter UCI strings, dropping promotion suffixes.
func FromTo(moves []string) []string {
	seen := make(map[string]bool, len(moves))
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		if len(m) > 4 {
			m = m[:4]
		}
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out
}
