package engine

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/chess-engine-go/internal/chess"
	chesserrors "github.com/lgbarn/chess-engine-go/internal/errors"
)

// After 1.e4 e6 2.Nh3 Qh4 3.g3 Qxe4+ 4.Be2 Qxh1+ 5.Bf1 the black queen on h1
// must not be able to jump to a1 across the bishop.
func TestQueenWraparoundRegression(t *testing.T) {
	b := play(t, NewInitialBoard(),
		"e2e4", "e7e6", "g1h3", "d8h4", "g2g3", "h4e4", "f1e2", "e4h1", "e2f1")

	if b.SideToMove() != chess.Black {
		t.Fatalf("SideToMove() = %v, want Black", b.SideToMove())
	}
	if m := b.FindMove(sq("h1"), sq("a1")); !m.IsNull() {
		t.Errorf("FindMove(h1, a1) = %v, want null move", m)
	}

	queen, _ := b.Position().Cell(sq("h1"))
	forged := chess.Move{Kind: chess.QuietMove, Piece: queen, To: sq("a1")}
	tr := b.MakeMove(forged)
	if tr.Status != MoveIllegal {
		t.Errorf("MakeMove(h1a1).Status = %v, want %v", tr.Status, MoveIllegal)
	}
	if tr.Board != b {
		t.Error("rejected MakeMove() returned a different board")
	}

	got := uciSet(b.LegalMovesFrom(sq("h1")))
	want := []string{"h1c6", "h1d5", "h1e4", "h1f1", "h1f3", "h1g1", "h1g2", "h1h2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LegalMovesFrom(h1) mismatch (-want +got):\n%s", diff)
	}
}

func TestMakeMove(t *testing.T) {
	t.Run("accepted move flips side", func(t *testing.T) {
		b := NewInitialBoard()
		tr := b.MakeMove(b.FindMove(sq("e2"), sq("e4")))
		if !tr.IsDone() || tr.Err() != nil {
			t.Fatalf("MakeMove(e2e4) = %v, %v", tr.Status, tr.Err())
		}
		if tr.Board.SideToMove() != chess.Black {
			t.Errorf("SideToMove() = %v, want Black", tr.Board.SideToMove())
		}
		if b.Position().IsOccupied(sq("e4")) {
			t.Error("MakeMove() modified the original board")
		}
	})

	t.Run("unknown move is illegal", func(t *testing.T) {
		b := NewInitialBoard()
		pawn, _ := b.Position().Cell(sq("e2"))
		tr := b.MakeMove(chess.Move{Kind: chess.QuietMove, Piece: pawn, To: sq("e5")})
		if tr.Status != MoveIllegal {
			t.Errorf("Status = %v, want %v", tr.Status, MoveIllegal)
		}
		if !errors.Is(tr.Err(), chesserrors.ErrIllegalMove) {
			t.Errorf("Err() = %v, want ErrIllegalMove", tr.Err())
		}
	})

	t.Run("null move is illegal", func(t *testing.T) {
		b := NewInitialBoard()
		if tr := b.MakeMove(chess.NullMoveSentinel); tr.Status != MoveIllegal {
			t.Errorf("Status = %v, want %v", tr.Status, MoveIllegal)
		}
	})

	t.Run("moving out of turn is illegal", func(t *testing.T) {
		b := NewInitialBoard()
		pawn, _ := b.Position().Cell(sq("e7"))
		tr := b.MakeMove(chess.Move{Kind: chess.QuietMove, Piece: pawn, To: sq("e6")})
		if tr.Status != MoveIllegal {
			t.Errorf("Status = %v, want %v", tr.Status, MoveIllegal)
		}
	})

	t.Run("pinned piece leaves king in check", func(t *testing.T) {
		b := boardFromFEN(t, "4r1k1/8/8/8/8/8/4N3/4K3 w - - 0 1")
		knight, _ := b.Position().Cell(sq("e2"))
		tr := b.MakeMove(chess.Move{Kind: chess.QuietMove, Piece: knight, To: sq("c3")})
		if tr.Status != MoveLeavesKingInCheck {
			t.Errorf("Status = %v, want %v", tr.Status, MoveLeavesKingInCheck)
		}
		if !errors.Is(tr.Err(), chesserrors.ErrLeavesKingInCheck) {
			t.Errorf("Err() = %v, want ErrLeavesKingInCheck", tr.Err())
		}
		if len(b.LegalMovesFrom(sq("e2"))) != 0 {
			t.Errorf("LegalMovesFrom(e2) = %v, want none", b.LegalMovesFrom(sq("e2")))
		}
	})

	t.Run("king may not step into attack", func(t *testing.T) {
		b := boardFromFEN(t, "3rk3/8/8/8/8/8/8/4K3 w - - 0 1")
		king, _ := b.Position().Cell(sq("e1"))
		tr := b.MakeMove(chess.Move{Kind: chess.QuietMove, Piece: king, To: sq("d1")})
		if tr.Status != MoveLeavesKingInCheck {
			t.Errorf("Status = %v, want %v", tr.Status, MoveLeavesKingInCheck)
		}
	})
}

// Every accepted move hands the turn over and leaves the mover's king safe.
func TestMakeMove_ResultInvariant(t *testing.T) {
	fens := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	}
	for _, s := range fens {
		t.Run(s, func(t *testing.T) {
			b := boardFromFEN(t, s)
			mover := b.SideToMove()
			for _, m := range b.LegalMoves(mover) {
				tr := b.MakeMove(m)
				if !tr.IsDone() {
					t.Fatalf("MakeMove(%s) = %v for a legal move", m.UCI(), tr.Status)
				}
				next := tr.Board
				if next.SideToMove() != mover.Opposite() {
					t.Errorf("%s: SideToMove() = %v, want %v", m.UCI(), next.SideToMove(), mover.Opposite())
				}
				king := next.Position().King(mover)
				if IsCellAttacked(next.Position(), king.Cell, mover.Opposite()) {
					t.Errorf("%s: own king on %s attacked after move", m.UCI(), chess.SquareName(king.Cell))
				}
			}
		})
	}
}

func TestEnPassant(t *testing.T) {
	t.Run("capture removes the jumped pawn", func(t *testing.T) {
		b := play(t, boardFromFEN(t, "4k3/3p4/8/4P3/8/8/8/4K3 b - - 0 1"), "d7d5", "e5d6")
		if b.Position().IsOccupied(sq("d5")) {
			t.Error("d5 still occupied after en passant")
		}
		if p, _ := b.Position().Cell(sq("d6")); p.Kind != chess.Pawn || p.Alliance != chess.White {
			t.Errorf("Cell(d6) = %v, want White Pawn", p)
		}
	})

	t.Run("right expires after one move", func(t *testing.T) {
		b := play(t, boardFromFEN(t, "4k3/3p4/8/4P3/8/8/8/4K3 b - - 0 1"), "d7d5", "e1e2", "e8e7")
		if m := b.FindMove(sq("e5"), sq("d6")); !m.IsNull() {
			t.Errorf("FindMove(e5, d6) = %v, want null move", m)
		}
	})

	t.Run("pinned along the rank", func(t *testing.T) {
		b := boardFromFEN(t, "8/8/8/KPp4r/8/8/8/4k3 w - c6 0 1")
		pawn, _ := b.Position().Cell(sq("b5"))
		captured, _ := b.Position().Cell(sq("c5"))
		tr := b.MakeMove(chess.Move{Kind: chess.EnPassantMove, Piece: pawn, To: sq("c6"), Captured: captured})
		if tr.Status != MoveLeavesKingInCheck {
			t.Errorf("Status = %v, want %v", tr.Status, MoveLeavesKingInCheck)
		}
	})
}

func TestCastling(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want chess.CastlingRights
	}{
		{"both wings free", "r3k2r/pppppppp/8/8/8/8/8/R3K2R w KQkq - 0 1", chess.CastlingRights{KingSide: true, QueenSide: true}},
		{"initial position blocked", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", chess.CastlingRights{}},
		{"king in check", "4k3/8/8/8/8/8/4r3/R3K2R w KQ - 0 1", chess.CastlingRights{}},
		{"king path attacked", "4k3/8/8/8/8/8/5r2/R3K2R w KQ - 0 1", chess.CastlingRights{QueenSide: true}},
		{"destination attacked", "4k3/8/8/8/8/8/2r5/R3K2R w KQ - 0 1", chess.CastlingRights{KingSide: true}},
		{"rook passage attacked", "4k3/8/8/8/8/8/1r6/R3K2R w KQ - 0 1", chess.CastlingRights{KingSide: true}},
		{"rook cell attacked", "4k2r/8/8/8/8/8/8/R3K2R w KQ - 0 1", chess.CastlingRights{QueenSide: true}},
		{"piece between", "4k3/8/8/8/8/8/8/RN2K1NR w KQ - 0 1", chess.CastlingRights{}},
		{"rook moved", "4k3/8/8/8/8/8/8/R3K2R w Q - 0 1", chess.CastlingRights{QueenSide: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := boardFromFEN(t, tt.fen)
			if got := b.CastlingRights(chess.White); got != tt.want {
				t.Errorf("CastlingRights(White) = %+v, want %+v", got, tt.want)
			}
			_, ks := b.Player(chess.White).KingSideCastle()
			_, qs := b.Player(chess.White).QueenSideCastle()
			if ks != tt.want.KingSide || qs != tt.want.QueenSide {
				t.Errorf("KingSideCastle/QueenSideCastle = %v/%v, want %v/%v", ks, qs, tt.want.KingSide, tt.want.QueenSide)
			}
		})
	}
}

func TestCastling_Execute(t *testing.T) {
	b := boardFromFEN(t, "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1")

	b = play(t, b, "e1g1")
	if p, _ := b.Position().Cell(sq("f1")); p.Kind != chess.Rook {
		t.Errorf("Cell(f1) = %v, want Rook", p)
	}
	if !b.Player(chess.White).HasCastled() {
		t.Error("HasCastled() = false after O-O")
	}
	if b.CastlingRights(chess.White) != (chess.CastlingRights{}) {
		t.Errorf("CastlingRights(White) = %+v after O-O, want none", b.CastlingRights(chess.White))
	}

	b = play(t, b, "e8c8")
	if p, _ := b.Position().Cell(sq("d8")); p.Kind != chess.Rook {
		t.Errorf("Cell(d8) = %v, want Rook", p)
	}
	if !b.Player(chess.Black).HasCastled() || !b.Player(chess.White).HasCastled() {
		t.Error("HasCastled() not kept for both sides")
	}
	if m := b.Player(chess.Black).LegalMoves(); len(m) == 0 {
		t.Error("Black has no moves after castling")
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name      string
		fen       string
		moves     []string
		side      chess.Alliance
		want      Status
		inCheck   bool
		checkmate bool
		stalemate bool
	}{
		{
			name:      "fool's mate",
			fen:       "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
			moves:     []string{"f2f3", "e7e5", "g2g4", "d8h4"},
			side:      chess.White,
			want:      StatusCheckmate,
			checkmate: true,
		},
		{
			name:    "check with escape",
			fen:     "4k3/8/8/8/8/8/8/4R1K1 b - - 0 1",
			side:    chess.Black,
			want:    StatusCheck,
			inCheck: true,
		},
		{
			name:      "stalemate",
			fen:       "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1",
			side:      chess.Black,
			want:      StatusStalemate,
			stalemate: true,
		},
		{
			name: "normal",
			fen:  "4k3/8/8/8/8/8/8/4K3 w - - 0 1",
			side: chess.White,
			want: StatusNormal,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := play(t, boardFromFEN(t, tt.fen), tt.moves...)
			if got := b.Player(tt.side).Status(); got != tt.want {
				t.Errorf("Status() = %v, want %v", got, tt.want)
			}
			if got := b.IsInCheck(tt.side); got != tt.inCheck {
				t.Errorf("IsInCheck() = %v, want %v", got, tt.inCheck)
			}
			if got := b.IsCheckmate(tt.side); got != tt.checkmate {
				t.Errorf("IsCheckmate() = %v, want %v", got, tt.checkmate)
			}
			if got := b.IsStalemate(tt.side); got != tt.stalemate {
				t.Errorf("IsStalemate() = %v, want %v", got, tt.stalemate)
			}
			if got := b.Player(tt.side).InCheck(); got != (tt.inCheck || tt.checkmate) {
				t.Errorf("InCheck() = %v, want %v", got, tt.inCheck || tt.checkmate)
			}
		})
	}
}

func TestFindMove(t *testing.T) {
	b := NewInitialBoard()
	tests := []struct {
		from, to string
		wantNull bool
	}{
		{"g1", "f3", false},
		{"e2", "e4", false},
		{"e2", "e5", true},
		{"e7", "e5", true}, // not Black's turn
		{"e4", "e5", true}, // empty origin
	}
	for _, tt := range tests {
		t.Run(tt.from+tt.to, func(t *testing.T) {
			m := b.FindMove(sq(tt.from), sq(tt.to))
			if m.IsNull() != tt.wantNull {
				t.Errorf("FindMove(%s, %s) = %v, wantNull %v", tt.from, tt.to, m, tt.wantNull)
			}
			if !m.IsNull() && (m.From() != sq(tt.from) || m.To != sq(tt.to)) {
				t.Errorf("FindMove(%s, %s) = %s", tt.from, tt.to, m.UCI())
			}
		})
	}
}

func TestLegalMovesFrom(t *testing.T) {
	b := NewInitialBoard()
	if got, want := uciSet(b.LegalMovesFrom(sq("b8"))), []string{"b8a6", "b8c6"}; !cmp.Equal(got, want) {
		t.Errorf("LegalMovesFrom(b8) = %v, want %v", got, want)
	}
	if got := b.LegalMovesFrom(sq("e4")); got != nil {
		t.Errorf("LegalMovesFrom(e4) = %v, want nil", got)
	}
}

func TestParseUCI(t *testing.T) {
	b := boardFromFEN(t, "4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	tests := []struct {
		text    string
		wantErr bool
	}{
		{"a7a8q", false},
		{"a7a8", false},
		{"A7A8Q", false},
		{"a7a8n", true},
		{"e1e3", true},
		{"z9a8", true},
		{"e1", true},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			_, err := ParseUCI(b, tt.text)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseUCI(%q) error = %v, wantErr %v", tt.text, err, tt.wantErr)
			}
		})
	}

	t.Run("pinned piece resolves", func(t *testing.T) {
		b := boardFromFEN(t, "4r1k1/8/8/8/8/8/4N3/4K3 w - - 0 1")
		m, err := ParseUCI(b, "e2c3")
		if err != nil {
			t.Fatalf("ParseUCI(e2c3) error: %v", err)
		}
		if got := b.MakeMove(m).Status; got != MoveLeavesKingInCheck {
			t.Errorf("MakeMove(e2c3).Status = %v, want %v", got, MoveLeavesKingInCheck)
		}
	})
}

func TestHasInsufficientMaterial(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want bool
	}{
		{"K vs K", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", true},
		{"K+B vs K", "4k3/8/8/8/8/8/8/4KB2 w - - 0 1", true},
		{"K vs K+n", "4k1n1/8/8/8/8/8/8/4K3 w - - 0 1", true},
		{"K+B vs K+B same colour", "4kb2/8/8/8/8/8/8/2B1K3 w - - 0 1", true},
		{"K+B vs K+B opposite colour", "4kb2/8/8/8/8/8/8/3BK3 w - - 0 1", false},
		{"K+R vs K", "4k3/8/8/8/8/8/8/4KR2 w - - 0 1", false},
		{"K+P vs K", "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1", false},
		{"K+N+N vs K", "4k3/8/8/8/8/8/8/1N2K1N1 w - - 0 1", false},
		{"initial position", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := boardFromFEN(t, tt.fen).HasInsufficientMaterial(); got != tt.want {
				t.Errorf("HasInsufficientMaterial() = %v, want %v", got, tt.want)
			}
		})
	}
}
