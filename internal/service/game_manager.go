// Package service manages chess game sessions: players' moves, engine
// replies and state snapshots for the HTTP layer.
package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/lgbarn/chess-engine-go/internal/config"
	"github.com/lgbarn/chess-engine-go/internal/engine"
	"github.com/lgbarn/chess-engine-go/internal/errors"
	"github.com/lgbarn/chess-engine-go/internal/output"
	"github.com/lgbarn/chess-engine-go/internal/worker"
)

// GameManager owns every game session and the search pool that plays the
// engine's moves.
type GameManager struct {
	mu    sync.RWMutex
	games map[string]*game

	search config.SearchConfig
	server config.ServerConfig
	log    *config.Logger

	searcher *searcher
}

// NewGameManager creates a manager and starts its search workers. Close
// releases them.
func NewGameManager(cfg *config.Config) *GameManager {
	pool := worker.NewPoolWithOptions(
		worker.WithWorkers(cfg.Search.Workers),
		worker.WithBufferSize(cfg.Search.BufferSize),
	)
	return &GameManager{
		games:    make(map[string]*game),
		search:   cfg.Search,
		server:   cfg.Server,
		log:      cfg.Logger(),
		searcher: newSearcher(pool),
	}
}

// Close stops the search workers. Pending engine requests fail with
// ErrPoolStopped.
func (gm *GameManager) Close() {
	gm.searcher.close()
}

// CreateGame starts a new session and returns its first state. When engine
// replies are enabled and the engine plays the side to move, its move is
// made before returning.
func (gm *GameManager) CreateGame(ctx context.Context, opts NewGame) (GameState, error) {
	id := uuid.New().String()
	g, err := newGame(id, opts)
	if err != nil {
		return GameState{}, fmt.Errorf("failed to create game: %w", err)
	}

	gm.mu.Lock()
	gm.games[id] = g
	gm.mu.Unlock()
	gm.log.Logf(config.Normal, "game %s created (engine: %s)", id, orNone(opts.Engine))

	g.mu.Lock()
	defer g.mu.Unlock()
	if gm.server.EngineReplies && g.engineToMove() && !g.over() {
		if err := gm.playEngine(ctx, g); err != nil {
			return g.state(), err
		}
	}
	return g.state(), nil
}

// GetGameState returns the current state of a game.
func (gm *GameManager) GetGameState(gameID string) (GameState, error) {
	g, err := gm.game(gameID)
	if err != nil {
		return GameState{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state(), nil
}

// ListGames returns the ids of all sessions, sorted.
func (gm *GameManager) ListGames() []string {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	ids := make([]string, 0, len(gm.games))
	for id := range gm.games {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DeleteGame ends a session and closes its subscriptions.
func (gm *GameManager) DeleteGame(gameID string) error {
	gm.mu.Lock()
	g, ok := gm.games[gameID]
	delete(gm.games, gameID)
	gm.mu.Unlock()
	if !ok {
		return fmt.Errorf("game %s: %w", gameID, errors.ErrGameNotFound)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	for ch := range g.subscribers {
		delete(g.subscribers, ch)
		close(ch)
	}
	gm.log.Logf(config.Normal, "game %s deleted", gameID)
	return nil
}

// MakeMove plays a player's move given in UCI text. Rejected moves return
// a *errors.MoveError wrapping the reason. When engine replies are enabled
// and the engine plays the side now to move, it answers before returning.
func (gm *GameManager) MakeMove(ctx context.Context, gameID, uci string) (GameState, error) {
	g, err := gm.game(gameID)
	if err != nil {
		return GameState{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	moveErr := func(err error) error {
		return &errors.MoveError{Err: err, GameID: gameID, Ply: len(g.history) + 1, Move: uci}
	}
	if g.over() {
		return g.state(), moveErr(errors.ErrGameOver)
	}
	if g.engineToMove() {
		return g.state(), moveErr(errors.ErrNotYourTurn)
	}

	m, err := engine.ParseUCI(g.board, uci)
	if err != nil {
		return g.state(), moveErr(err)
	}
	tr := g.board.MakeMove(m)
	if err := tr.Err(); err != nil {
		return g.state(), moveErr(err)
	}
	g.apply(tr, false)
	gm.log.Logf(config.Normal, "game %s: %s played %s", gameID, m.Piece.Alliance, tr.Move)
	g.publish()

	if gm.server.EngineReplies && g.engineToMove() && !g.over() {
		if err := gm.playEngine(ctx, g); err != nil {
			return g.state(), err
		}
	}
	return g.state(), nil
}

// EngineMove makes the engine play the side to move, whichever side that
// is.
func (gm *GameManager) EngineMove(ctx context.Context, gameID string) (GameState, error) {
	g, err := gm.game(gameID)
	if err != nil {
		return GameState{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.over() {
		return g.state(), &errors.MoveError{Err: errors.ErrGameOver, GameID: gameID, Ply: len(g.history) + 1}
	}
	if err := gm.playEngine(ctx, g); err != nil {
		return g.state(), err
	}
	return g.state(), nil
}

// ExportGame returns the record of a game for PGN or JSON output.
func (gm *GameManager) ExportGame(gameID string) (*output.Game, error) {
	g, err := gm.game(gameID)
	if err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.record(fmt.Sprintf("chess-engine (%s, depth %d)", gm.search.Strategy, gm.search.Depth)), nil
}

// Subscribe returns a channel receiving the game state after every move.
// The returned function cancels the subscription.
func (gm *GameManager) Subscribe(gameID string) (<-chan GameState, func(), error) {
	g, err := gm.game(gameID)
	if err != nil {
		return nil, nil, err
	}
	ch := make(chan GameState, 4)
	g.mu.Lock()
	g.subscribers[ch] = struct{}{}
	g.mu.Unlock()

	cancel := func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if _, ok := g.subscribers[ch]; ok {
			delete(g.subscribers, ch)
			close(ch)
		}
	}
	return ch, cancel, nil
}

func (gm *GameManager) game(gameID string) (*game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	g, ok := gm.games[gameID]
	if !ok {
		return nil, fmt.Errorf("game %s: %w", gameID, errors.ErrGameNotFound)
	}
	return g, nil
}

// playEngine searches for and plays a move of the side to move. The
// caller holds g.mu.
func (gm *GameManager) playEngine(ctx context.Context, g *game) error {
	side := g.board.SideToMove()
	res, err := gm.searcher.search(ctx, worker.Job{
		Ctx:      ctx,
		Board:    g.board,
		Strategy: gm.search.Strategy,
		Depth:    gm.search.Depth,
	})
	if err == nil {
		err = res.Err
	}
	if err != nil {
		return &errors.MoveError{Err: err, GameID: g.id, Ply: len(g.history) + 1}
	}

	tr := g.board.MakeMove(res.Move)
	if err := tr.Err(); err != nil {
		return &errors.MoveError{Err: err, GameID: g.id, Ply: len(g.history) + 1, Move: res.Move.UCI()}
	}
	g.apply(tr, true)
	gm.log.Logf(config.Normal, "game %s: engine (%s) played %s", g.id, side, tr.Move)
	gm.log.Logf(config.Verbose, "game %s: %s %s", g.id, gm.search.Strategy, res.Stats)
	g.publish()
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
