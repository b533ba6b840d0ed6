// Package config provides configuration for the chess engine commands and
// server.
package config

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Verbosity levels.
const (
	Quiet   = 0 // errors only
	Normal  = 1 // one line per game event
	Verbose = 2 // search statistics for every engine move
)

// Config holds all program configuration.
type Config struct {
	Search SearchConfig
	Server ServerConfig
	Output OutputConfig

	Verbosity int // Quiet, Normal or Verbose

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Search:     *NewSearchConfig(),
		Server:     *NewServerConfig(),
		Output:     *NewOutputConfig(),
		Verbosity:  Normal,
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the output writer.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// Validate checks every section of the configuration.
func (c *Config) Validate() error {
	if c.Verbosity < Quiet || c.Verbosity > Verbose {
		return fmt.Errorf("verbosity %d outside %d..%d: %w", c.Verbosity, Quiet, Verbose, errInvalid)
	}
	if err := c.Search.Validate(); err != nil {
		return err
	}
	if err := c.Output.Validate(); err != nil {
		return err
	}
	return c.Server.Validate()
}

// Logger returns a logger writing to LogFile. Messages above the configured
// verbosity are discarded.
func (c *Config) Logger() *Logger {
	w := c.LogFile
	if w == nil {
		w = io.Discard
	}
	return &Logger{
		Logger:    log.New(w, "chess-engine: ", log.LstdFlags),
		verbosity: c.Verbosity,
	}
}

// Logger is a *log.Logger gated by a verbosity level.
type Logger struct {
	*log.Logger
	verbosity int
}

// Logf logs when level is at or below the configured verbosity.
func (l *Logger) Logf(level int, format string, args ...interface{}) {
	if l == nil || level > l.verbosity {
		return
	}
	l.Printf(format, args...)
}

// Enabled reports whether messages at level are written.
func (l *Logger) Enabled(level int) bool {
	return l != nil && level <= l.verbosity
}
