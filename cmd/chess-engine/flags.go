// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/chess-engine-go/internal/config"
)

var (
	// Position
	fenString = flag.String("fen", "", "Start position in FEN (default: initial position)")

	// Search options
	strategy = flag.String("strategy", config.DefaultStrategy, "Search strategy: minimax, alphabeta")
	depth    = flag.Int("depth", config.DefaultDepth, "Search depth in plies")
	workers  = flag.Int("workers", 1, "Number of search workers")

	// Modes
	playPlies = flag.Int("play", 0, "Self-play N plies from the start position")
	perft     = flag.Int("perft", 0, "Count leaf nodes to depth N")
	divide    = flag.Int("divide", 0, "Perft to depth N split by root move")
	serve     = flag.Bool("serve", false, "Run the game server")

	// Server options
	addr          = flag.String("addr", ":3000", "Server listen address")
	allowOrigins  = flag.String("origins", "*", "CORS allowed origins")
	noEngineReply = flag.Bool("noreply", false, "Server: don't answer player moves with engine moves")

	// Output and logging
	outputFile = flag.String("o", "", "Output file (default: stdout)")
	jsonOutput = flag.Bool("J", false, "Write self-play games as JSON instead of PGN")
	lineLength = flag.Int("w", 80, "Maximum PGN line length")
	logFile    = flag.String("l", "", "Write diagnostics to log file")
	verbose    = flag.Bool("v", false, "Verbose output (search statistics)")
	quiet      = flag.Bool("s", false, "Silent mode (errors only)")

	// Other options
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) {
	applySearchFlags(cfg)
	applyServerFlags(cfg)
	applyOutputFlags(cfg)

	switch {
	case *quiet:
		cfg.Verbosity = config.Quiet
	case *verbose:
		cfg.Verbosity = config.Verbose
	}
}

// applySearchFlags configures the search settings.
func applySearchFlags(cfg *config.Config) {
	cfg.Search.Strategy = *strategy
	cfg.Search.Depth = *depth
	cfg.Search.Workers = *workers
}

// applyServerFlags configures the server settings.
func applyServerFlags(cfg *config.Config) {
	cfg.Server.Addr = *addr
	cfg.Server.AllowOrigins = *allowOrigins
	cfg.Server.EngineReplies = !*noEngineReply
}

// applyOutputFlags configures game record output.
func applyOutputFlags(cfg *config.Config) {
	cfg.Output.JSONFormat = *jsonOutput
	cfg.Output.MaxLineLength = *lineLength
}
