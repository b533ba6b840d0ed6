package service

import (
	"strings"
	"sync"
	"time"

	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/engine"
	"github.com/lgbarn/chess-engine-go/internal/errors"
	"github.com/lgbarn/chess-engine-go/internal/fen"
	"github.com/lgbarn/chess-engine-go/internal/hashing"
	"github.com/lgbarn/chess-engine-go/internal/output"
)

// Game results.
const (
	ResultOngoing   = "*"
	ResultWhiteWins = "1-0"
	ResultBlackWins = "0-1"
	ResultDraw      = "1/2-1/2"
)

// Draw rules beyond stalemate.
const (
	RepetitionLimit = 3   // occurrences of one position
	FiftyMoveLimit  = 100 // half-moves without a capture or pawn move
)

// Ply is one played move of a game.
type Ply = output.Ply

// GameState is a snapshot of a game sent to clients.
type GameState struct {
	ID         string   `json:"id"`
	FEN        string   `json:"fen"`
	SideToMove string   `json:"sideToMove"`
	Status     string   `json:"status"`
	Result     string   `json:"result"`
	Reason     string   `json:"reason,omitempty"`
	Engine     string   `json:"engine,omitempty"`
	LegalMoves []string `json:"legalMoves"`
	History    []Ply    `json:"history"`
}

// NewGame describes a game to create.
type NewGame struct {
	// FEN of the start position; empty means the initial position.
	FEN string `json:"fen"`

	// Engine is the side the engine plays: "white", "black" or empty.
	Engine string `json:"engine"`
}

// game is one session. Its mutex serialises moves, engine searches
// included, so two requests never race on the same board.
type game struct {
	mu sync.Mutex

	id       string
	created  time.Time
	startFEN string // empty for the initial position
	board    *engine.Board
	engine   *chess.Alliance
	history  []Ply
	halfmove int
	fullmove int

	positions *hashing.RepetitionTable

	subscribers map[chan GameState]struct{}
}

func parseSide(s string) (*chess.Alliance, error) {
	var side chess.Alliance
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return nil, nil
	case "white", "w":
		side = chess.White
	case "black", "b":
		side = chess.Black
	default:
		return nil, &errors.ParseError{Err: errors.ErrInvalidConfig, Field: "engine side", Got: s}
	}
	return &side, nil
}

func newGame(id string, opts NewGame) (*game, error) {
	engineSide, err := parseSide(opts.Engine)
	if err != nil {
		return nil, err
	}
	board := engine.NewInitialBoard()
	startFEN := strings.TrimSpace(opts.FEN)
	if startFEN != "" {
		pos, err := fen.Parse(startFEN)
		if err != nil {
			return nil, err
		}
		board = engine.NewBoard(pos)
		startFEN = fen.Encode(pos, 0, 1)
	}
	positions := hashing.NewRepetitionTable()
	positions.Add(board.Position())
	return &game{
		id:          id,
		created:     time.Now(),
		startFEN:    startFEN,
		board:       board,
		engine:      engineSide,
		fullmove:    1,
		positions:   positions,
		subscribers: make(map[chan GameState]struct{}),
	}, nil
}

// result returns the game result and what decided it. Besides mate and
// stalemate, insufficient material, threefold repetition and the
// fifty-move rule end the game as a draw.
func (g *game) result() (string, string) {
	switch g.board.Status() {
	case engine.StatusCheckmate:
		if g.board.SideToMove() == chess.White {
			return ResultBlackWins, "checkmate"
		}
		return ResultWhiteWins, "checkmate"
	case engine.StatusStalemate:
		return ResultDraw, "stalemate"
	}
	switch {
	case g.board.HasInsufficientMaterial():
		return ResultDraw, "insufficient material"
	case g.positions.Count(g.board.Position()) >= RepetitionLimit:
		return ResultDraw, "threefold repetition"
	case g.halfmove >= FiftyMoveLimit:
		return ResultDraw, "fifty-move rule"
	}
	return ResultOngoing, ""
}

func (g *game) over() bool {
	r, _ := g.result()
	return r != ResultOngoing
}

// engineToMove reports whether the engine plays the side to move.
func (g *game) engineToMove() bool {
	return g.engine != nil && *g.engine == g.board.SideToMove()
}

// apply records an accepted transition.
func (g *game) apply(tr engine.Transition, byEngine bool) {
	m := tr.Move
	g.history = append(g.history, Ply{
		Number: g.fullmove,
		Side:   strings.ToLower(m.Piece.Alliance.String()),
		SAN:    m.String(),
		UCI:    m.UCI(),
		Engine: byEngine,
	})
	if m.Piece.Kind == chess.Pawn || m.IsCapture() {
		g.halfmove = 0
	} else {
		g.halfmove++
	}
	if m.Piece.Alliance == chess.Black {
		g.fullmove++
	}
	g.board = tr.Board
	g.positions.Add(g.board.Position())
}

func (g *game) state() GameState {
	s := GameState{
		ID:         g.id,
		FEN:        fen.Encode(g.board.Position(), g.halfmove, g.fullmove),
		SideToMove: strings.ToLower(g.board.SideToMove().String()),
		Status:     g.board.Status().String(),
		LegalMoves: []string{},
		History:    append([]Ply{}, g.history...),
	}
	s.Result, s.Reason = g.result()
	if g.engine != nil {
		s.Engine = strings.ToLower(g.engine.String())
	}
	if !g.over() {
		for _, m := range g.board.CurrentPlayer().LegalMoves() {
			s.LegalMoves = append(s.LegalMoves, m.UCI())
		}
	}
	return s
}

// record returns the game record. engineName labels the side the engine
// plays.
func (g *game) record(engineName string) *output.Game {
	players := map[chess.Alliance]string{chess.White: "Player", chess.Black: "Player"}
	if g.engine != nil {
		players[*g.engine] = engineName
	}
	result, _ := g.result()
	return &output.Game{
		Tags: map[string]string{
			"Event": "chess-engine game",
			"Site":  g.id,
			"Date":  g.created.Format("2006.01.02"),
			"Round": "-",
			"White": players[chess.White],
			"Black": players[chess.Black],
		},
		StartFEN: g.startFEN,
		Plies:    append([]Ply{}, g.history...),
		Result:   result,
		FinalFEN: fen.Encode(g.board.Position(), g.halfmove, g.fullmove),
	}
}

// publish sends the current state to every subscriber without blocking;
// a subscriber that is not keeping up misses intermediate states.
func (g *game) publish() {
	if len(g.subscribers) == 0 {
		return
	}
	s := g.state()
	for ch := range g.subscribers {
		select {
		case ch <- s:
		default:
		}
	}
}
