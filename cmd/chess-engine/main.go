// chess-engine plays, searches and serves chess games.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/config"
	"github.com/lgbarn/chess-engine-go/internal/controller"
	"github.com/lgbarn/chess-engine-go/internal/engine"
	"github.com/lgbarn/chess-engine-go/internal/fen"
	"github.com/lgbarn/chess-engine-go/internal/hashing"
	"github.com/lgbarn/chess-engine-go/internal/output"
	"github.com/lgbarn/chess-engine-go/internal/search"
	"github.com/lgbarn/chess-engine-go/internal/service"
	"github.com/lgbarn/chess-engine-go/internal/worker"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chess-engine version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	setupLogFile(cfg)
	setupOutputFile(cfg)

	if *serve {
		runServer(cfg)
		return
	}

	board, err := startBoard(*fenString)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch {
	case *perft > 0:
		runPerft(cfg.OutputFile, board, *perft)
	case *divide > 0:
		runDivide(cfg.OutputFile, board, *divide)
	case *playPlies > 0:
		err = selfPlay(cfg, board, *playPlies)
	default:
		err = bestMove(cfg, board)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile == "" {
		return
	}
	file, err := os.Create(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
		os.Exit(1)
	}
	cfg.LogFile = file
}

// setupOutputFile configures the output file based on command-line flags.
func setupOutputFile(cfg *config.Config) {
	if *outputFile == "" {
		return
	}
	file, err := os.Create(*outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	cfg.SetOutput(file)
}

// startBoard returns the board for a FEN, or the initial board when s is
// blank.
func startBoard(s string) (*engine.Board, error) {
	if strings.TrimSpace(s) == "" {
		return engine.NewInitialBoard(), nil
	}
	pos, err := fen.Parse(s)
	if err != nil {
		return nil, err
	}
	return engine.NewBoard(pos), nil
}

// bestMove searches the start position and prints the chosen move.
func bestMove(cfg *config.Config, board *engine.Board) error {
	s, err := search.New(cfg.Search.Strategy)
	if err != nil {
		return err
	}
	m, err := s.ChooseMove(context.Background(), board, cfg.Search.Depth)
	if err != nil {
		return err
	}
	fmt.Fprintf(cfg.OutputFile, "bestmove %s (%s)\n", m.UCI(), m)
	cfg.Logger().Logf(config.Verbose, "%s depth %d: %s", s.Name(), cfg.Search.Depth, s.Stats())
	return nil
}

// runPerft prints the leaf node count to the given depth.
func runPerft(w io.Writer, board *engine.Board, depth int) {
	fmt.Fprintf(w, "perft(%d) = %d\n", depth, engine.Perft(board, depth))
}

// runDivide prints the perft count below each root move, sorted by move.
func runDivide(w io.Writer, board *engine.Board, depth int) {
	counts := engine.Divide(board, depth)
	moves := make([]string, 0, len(counts))
	for m := range counts {
		moves = append(moves, m)
	}
	sort.Strings(moves)

	var total uint64
	for _, m := range moves {
		fmt.Fprintf(w, "%s: %d\n", m, counts[m])
		total += counts[m]
	}
	fmt.Fprintf(w, "\nmoves %d nodes %d\n", len(moves), total)
}

// selfPlay lets the engine play both sides for up to plies moves, running
// each search on the worker pool, and writes the game record. Play also
// stops as soon as a draw rule applies.
func selfPlay(cfg *config.Config, board *engine.Board, plies int) error {
	log := cfg.Logger()
	pool := worker.NewPoolWithOptions(
		worker.WithWorkers(cfg.Search.Workers),
		worker.WithBufferSize(cfg.Search.BufferSize),
	)
	pool.Start()
	defer pool.Close()

	rec := &output.Game{
		Tags: map[string]string{
			"Event": "chess-engine self-play",
			"Date":  time.Now().Format("2006.01.02"),
			"Round": "-",
			"White": engineName(cfg),
			"Black": engineName(cfg),
		},
	}
	if start := fen.Encode(board.Position(), 0, 1); start != fen.Encode(chess.InitialPosition(), 0, 1) {
		rec.StartFEN = start
	}

	positions := hashing.NewRepetitionTable()
	repetitions := positions.Add(board.Position())
	halfmove, number := 0, 1
	draw := selfPlayDraw(board, repetitions, halfmove)

	for ply := 0; ply < plies && draw == "" && !board.Status().IsTerminal(); ply++ {
		pool.Submit(worker.Job{
			ID:       fmt.Sprintf("ply-%d", ply+1),
			Board:    board,
			Strategy: cfg.Search.Strategy,
			Depth:    cfg.Search.Depth,
		})
		res := <-pool.Results()
		if res.Err != nil {
			return fmt.Errorf("%s: %w", res.ID, res.Err)
		}
		tr := board.MakeMove(res.Move)
		if err := tr.Err(); err != nil {
			return fmt.Errorf("%s: %s: %w", res.ID, res.Move.UCI(), err)
		}
		log.Logf(config.Verbose, "%s %s: %s", res.ID, res.Move, res.Stats)

		side := board.SideToMove()
		rec.Plies = append(rec.Plies, output.Ply{
			Number: number,
			Side:   strings.ToLower(side.String()),
			SAN:    res.Move.String(),
			UCI:    res.Move.UCI(),
			Engine: true,
		})
		if side == chess.Black {
			number++
		}
		if res.Move.Piece.Kind == chess.Pawn || res.Move.IsCapture() {
			halfmove = 0
		} else {
			halfmove++
		}
		board = tr.Board
		repetitions = positions.Add(board.Position())
		draw = selfPlayDraw(board, repetitions, halfmove)
	}

	rec.Result = selfPlayResult(board, draw)
	rec.FinalFEN = fen.Encode(board.Position(), halfmove, number)
	if draw != "" {
		log.Logf(config.Normal, "self-play ended after %d plies: %s (%s)", len(rec.Plies), rec.Result, draw)
	} else {
		log.Logf(config.Normal, "self-play ended after %d plies: %s", len(rec.Plies), rec.Result)
	}

	w := output.NewGameWriter(cfg.OutputFile, cfg.Output.JSONFormat, cfg.Output.MaxLineLength)
	if err := w.WriteGame(rec); err != nil {
		return err
	}
	return w.Close()
}

// selfPlayDraw names the draw rule that ends the game, or returns "" while
// play may continue. The limits are the ones the game server applies.
func selfPlayDraw(board *engine.Board, repetitions, halfmove int) string {
	switch {
	case board.Status() == engine.StatusStalemate:
		return "stalemate"
	case board.HasInsufficientMaterial():
		return "insufficient material"
	case repetitions >= service.RepetitionLimit:
		return "threefold repetition"
	case halfmove >= service.FiftyMoveLimit:
		return "fifty-move rule"
	}
	return ""
}

// selfPlayResult scores a finished or interrupted self-play game.
func selfPlayResult(board *engine.Board, draw string) string {
	switch {
	case board.Status() == engine.StatusCheckmate && board.SideToMove() == chess.White:
		return "0-1"
	case board.Status() == engine.StatusCheckmate:
		return "1-0"
	case draw != "":
		return "1/2-1/2"
	default:
		return "*"
	}
}

func engineName(cfg *config.Config) string {
	return fmt.Sprintf("chess-engine (%s, depth %d)", cfg.Search.Strategy, cfg.Search.Depth)
}

// runServer serves games over HTTP until the listener fails.
func runServer(cfg *config.Config) {
	log := cfg.Logger()
	games := service.NewGameManager(cfg)
	defer games.Close()

	app := controller.NewApp(cfg, games)
	log.Logf(config.Normal, "listening on %s (%s depth %d)", cfg.Server.Addr, cfg.Search.Strategy, cfg.Search.Depth)
	if err := app.Listen(cfg.Server.Addr); err != nil {
		log.Logf(config.Quiet, "server stopped: %v", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chess-engine [options]\n\n")
	fmt.Fprintf(os.Stderr, "Chess rules engine with minimax and alpha-beta search.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nModes (default: print the best move):\n")
	fmt.Fprintf(os.Stderr, "  -play N    engine plays both sides for N plies\n")
	fmt.Fprintf(os.Stderr, "  -perft N   count leaf nodes to depth N\n")
	fmt.Fprintf(os.Stderr, "  -divide N  perft split by root move\n")
	fmt.Fprintf(os.Stderr, "  -serve     REST and websocket game server\n")
	fmt.Fprintf(os.Stderr, "\nStrategies: %s\n", strings.Join(search.Names(), ", "))
}
