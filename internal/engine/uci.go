package engine

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/errors"
)

// ParseUCI resolves long algebraic text such as "e2e4" or "e7e8q" into the
// matching move of the side to move. Moves that would expose the king are
// still resolved, so MakeMove can report them as such. Only queen
// promotions exist, so a promotion suffix other than "q" is rejected.
func ParseUCI(b *Board, text string) (chess.Move, error) {
	text = strings.TrimSpace(strings.ToLower(text))
	if len(text) != 4 && len(text) != 5 {
		return chess.NullMoveSentinel, &errors.ParseError{Err: errors.ErrIllegalMove, Input: text, Field: "uci move"}
	}
	from, err := chess.ParseSquare(text[0:2])
	if err != nil {
		return chess.NullMoveSentinel, &errors.ParseError{Err: err, Input: text, Field: "origin", Got: text[0:2]}
	}
	to, err := chess.ParseSquare(text[2:4])
	if err != nil {
		return chess.NullMoveSentinel, &errors.ParseError{Err: err, Input: text, Field: "destination", Got: text[2:4]}
	}

	m := b.CurrentPlayer().candidateMove(from, to)
	if m.IsNull() {
		return m, fmt.Errorf("%s: %w", text, errors.ErrIllegalMove)
	}
	if len(text) == 5 && (!m.IsPromotion() || text[4] != 'q') {
		return chess.NullMoveSentinel, fmt.Errorf("%s: unsupported promotion: %w", text, errors.ErrIllegalMove)
	}
	return m, nil
}
