package chess

import "testing"

func TestExecute(t *testing.T) {
	t.Run("pawn jump sets en-passant pawn", func(t *testing.T) {
		p := InitialPosition()
		next := p.Execute(Move{
			Kind:  PawnJump,
			Piece: NewPiece(Pawn, White, MustSquare("e2")),
			To:    MustSquare("e4"),
		})

		if next.IsOccupied(MustSquare("e2")) {
			t.Error("e2 still occupied after e2e4")
		}
		got, ok := next.Cell(MustSquare("e4"))
		if !ok || got.Kind != Pawn || !got.Moved {
			t.Errorf("Cell(e4) = %v; want moved White Pawn", got)
		}
		ep, ok := next.EnPassantPawn()
		if !ok || ep.Cell != MustSquare("e4") {
			t.Errorf("EnPassantPawn() = %v, %v; want pawn on e4", ep, ok)
		}
		if next.SideToMove() != Black {
			t.Errorf("SideToMove() = %v; want Black", next.SideToMove())
		}
		if p.IsOccupied(MustSquare("e4")) || !p.IsOccupied(MustSquare("e2")) {
			t.Error("Execute() modified the receiver")
		}
	})

	t.Run("quiet move clears en-passant pawn", func(t *testing.T) {
		p := InitialPosition().Execute(Move{
			Kind:  PawnJump,
			Piece: NewPiece(Pawn, White, MustSquare("e2")),
			To:    MustSquare("e4"),
		})
		next := p.Execute(Move{
			Kind:  QuietMove,
			Piece: NewPiece(Knight, Black, MustSquare("g8")),
			To:    MustSquare("f6"),
		})
		if _, ok := next.EnPassantPawn(); ok {
			t.Error("EnPassantPawn() ok = true after a quiet move")
		}
	})

	t.Run("en passant removes the jumped pawn", func(t *testing.T) {
		jumped := Piece{Kind: Pawn, Alliance: Black, Cell: MustSquare("d5"), Moved: true}
		p := MustBuild(Placement{
			Pieces: []Piece{
				NewPiece(King, White, MustSquare("e1")),
				NewPiece(King, Black, MustSquare("e8")),
				{Kind: Pawn, Alliance: White, Cell: MustSquare("e5"), Moved: true},
				jumped,
			},
			SideToMove:    White,
			EnPassantPawn: jumped,
		})

		next := p.Execute(Move{
			Kind:     EnPassantMove,
			Piece:    Piece{Kind: Pawn, Alliance: White, Cell: MustSquare("e5"), Moved: true},
			To:       MustSquare("d6"),
			Captured: jumped,
		})

		if next.IsOccupied(MustSquare("d5")) {
			t.Error("captured pawn still on d5")
		}
		if got, ok := next.Cell(MustSquare("d6")); !ok || got.Alliance != White {
			t.Errorf("Cell(d6) = %v; want White Pawn", got)
		}
		if n := len(next.ActivePieces(Black)); n != 1 {
			t.Errorf("len(ActivePieces(Black)) = %d; want 1", n)
		}
	})

	t.Run("castle relocates rook and records flag", func(t *testing.T) {
		p := MustBuild(Placement{
			Pieces: []Piece{
				NewPiece(King, White, MustSquare("e1")),
				NewPiece(Rook, White, MustSquare("h1")),
				NewPiece(King, Black, MustSquare("e8")),
			},
		})
		next := p.Execute(Move{
			Kind:   KingSideCastle,
			Piece:  NewPiece(King, White, MustSquare("e1")),
			To:     MustSquare("g1"),
			Rook:   NewPiece(Rook, White, MustSquare("h1")),
			RookTo: MustSquare("f1"),
		})

		if got, _ := next.Cell(MustSquare("g1")); got.Kind != King {
			t.Errorf("Cell(g1) = %v; want King", got)
		}
		if got, _ := next.Cell(MustSquare("f1")); got.Kind != Rook || !got.Moved {
			t.Errorf("Cell(f1) = %v; want moved Rook", got)
		}
		if next.IsOccupied(MustSquare("h1")) || next.IsOccupied(MustSquare("e1")) {
			t.Error("origin cells still occupied after castling")
		}
		if !next.HasCastled(White) {
			t.Error("HasCastled(White) = false after castling")
		}
		if next.HasCastled(Black) {
			t.Error("HasCastled(Black) = true")
		}
		if next.CastlingRights(White) != (CastlingRights{}) {
			t.Errorf("CastlingRights(White) = %+v after castling; want none", next.CastlingRights(White))
		}

		later := next.Execute(Move{
			Kind:  QuietMove,
			Piece: NewPiece(King, Black, MustSquare("e8")),
			To:    MustSquare("d8"),
		})
		if !later.HasCastled(White) {
			t.Error("HasCastled(White) lost after a later move")
		}
	})

	t.Run("promotion retypes the pawn", func(t *testing.T) {
		pawn := Piece{Kind: Pawn, Alliance: White, Cell: MustSquare("a7"), Moved: true}
		p := MustBuild(Placement{
			Pieces: []Piece{
				NewPiece(King, White, MustSquare("e1")),
				NewPiece(King, Black, MustSquare("h8")),
				pawn,
			},
		})
		next := p.Execute(Move{
			Kind:      QuietMove,
			Piece:     pawn,
			To:        MustSquare("a8"),
			Promotion: Queen,
		})
		got, ok := next.Cell(MustSquare("a8"))
		if !ok || got.Kind != Queen || got.Alliance != White {
			t.Errorf("Cell(a8) = %v; want White Queen", got)
		}
	})

	t.Run("null move panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("Execute(NullMoveSentinel) did not panic")
			}
		}()
		InitialPosition().Execute(NullMoveSentinel)
	})
}

func TestMoveNotation(t *testing.T) {
	tests := []struct {
		name     string
		move     Move
		wantSAN  string
		wantUCI  string
		wantFrom int
	}{
		{
			name:     "null move",
			move:     NullMoveSentinel,
			wantSAN:  NullMoveString,
			wantUCI:  "0000",
			wantFrom: -1,
		},
		{
			name:     "pawn jump",
			move:     Move{Kind: PawnJump, Piece: NewPiece(Pawn, White, MustSquare("e2")), To: MustSquare("e4")},
			wantSAN:  "e4",
			wantUCI:  "e2e4",
			wantFrom: MustSquare("e2"),
		},
		{
			name:     "knight move",
			move:     Move{Kind: QuietMove, Piece: NewPiece(Knight, White, MustSquare("g1")), To: MustSquare("f3")},
			wantSAN:  "Nf3",
			wantUCI:  "g1f3",
			wantFrom: MustSquare("g1"),
		},
		{
			name: "queen capture",
			move: Move{
				Kind:     CaptureMove,
				Piece:    NewPiece(Queen, Black, MustSquare("e4")),
				To:       MustSquare("h1"),
				Captured: NewPiece(Rook, White, MustSquare("h1")),
			},
			wantSAN:  "Qxh1",
			wantUCI:  "e4h1",
			wantFrom: MustSquare("e4"),
		},
		{
			name: "pawn capture",
			move: Move{
				Kind:     PawnCaptureMove,
				Piece:    NewPiece(Pawn, White, MustSquare("e4")),
				To:       MustSquare("d5"),
				Captured: NewPiece(Pawn, Black, MustSquare("d5")),
			},
			wantSAN:  "exd5",
			wantUCI:  "e4d5",
			wantFrom: MustSquare("e4"),
		},
		{
			name:     "promotion",
			move:     Move{Kind: QuietMove, Piece: NewPiece(Pawn, Black, MustSquare("b2")), To: MustSquare("b1"), Promotion: Queen},
			wantSAN:  "b1=Q",
			wantUCI:  "b2b1q",
			wantFrom: MustSquare("b2"),
		},
		{
			name:     "queen side castle",
			move:     Move{Kind: QueenSideCastle, Piece: NewPiece(King, Black, MustSquare("e8")), To: MustSquare("c8")},
			wantSAN:  "O-O-O",
			wantUCI:  "e8c8",
			wantFrom: MustSquare("e8"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.move.String(); got != tt.wantSAN {
				t.Errorf("String() = %q; want %q", got, tt.wantSAN)
			}
			if got := tt.move.UCI(); got != tt.wantUCI {
				t.Errorf("UCI() = %q; want %q", got, tt.wantUCI)
			}
			if got := tt.move.From(); got != tt.wantFrom {
				t.Errorf("From() = %d; want %d", got, tt.wantFrom)
			}
		})
	}
}

func TestMoveEqual(t *testing.T) {
	a := Move{Kind: QuietMove, Piece: NewPiece(Knight, White, MustSquare("g1")), To: MustSquare("f3")}
	b := a
	b.Piece.Moved = true

	if !a.Equal(b) {
		t.Error("Equal() = false for same origin, destination and piece")
	}
	if a.Equal(NullMoveSentinel) {
		t.Error("Equal(NullMoveSentinel) = true for a real move")
	}
	if !NullMoveSentinel.Equal(Move{}) {
		t.Error("null moves are not equal to each other")
	}

	c := a
	c.To = MustSquare("h3")
	if a.Equal(c) {
		t.Error("Equal() = true for different destinations")
	}
}

func TestMoveKindPredicates(t *testing.T) {
	tests := []struct {
		kind    MoveKind
		capture bool
		castle  bool
	}{
		{NullMove, false, false},
		{QuietMove, false, false},
		{PawnJump, false, false},
		{CaptureMove, true, false},
		{PawnCaptureMove, true, false},
		{EnPassantMove, true, false},
		{KingSideCastle, false, true},
		{QueenSideCastle, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			m := Move{Kind: tt.kind}
			if got := m.IsCapture(); got != tt.capture {
				t.Errorf("IsCapture() = %v; want %v", got, tt.capture)
			}
			if got := m.IsCastle(); got != tt.castle {
				t.Errorf("IsCastle() = %v; want %v", got, tt.castle)
			}
		})
	}
}
