package config

import (
	"fmt"

	"github.com/lgbarn/chess-engine-go/internal/errors"
	"github.com/lgbarn/chess-engine-go/internal/search"
)

var errInvalid = errors.ErrInvalidConfig

// Search limits.
const (
	DefaultStrategy = search.NameAlphaBeta
	DefaultDepth    = 3
	MaxDepth        = 8
)

// SearchConfig holds settings for engine move selection.
type SearchConfig struct {
	// Strategy names the search; see search.Names.
	Strategy string

	// Depth is the fixed search depth in plies.
	Depth int

	// Workers is the number of background search goroutines.
	Workers int

	// BufferSize is the capacity of the job and result queues.
	BufferSize int
}

// NewSearchConfig creates a SearchConfig with default values.
func NewSearchConfig() *SearchConfig {
	return &SearchConfig{
		Strategy:   DefaultStrategy,
		Depth:      DefaultDepth,
		Workers:    1,
		BufferSize: 8,
	}
}

// Validate checks that the search configuration is usable.
func (s *SearchConfig) Validate() error {
	if _, err := search.New(s.Strategy); err != nil {
		return err
	}
	if s.Depth < 1 || s.Depth > MaxDepth {
		return fmt.Errorf("depth %d outside 1..%d: %w", s.Depth, MaxDepth, errInvalid)
	}
	if s.Workers < 1 {
		return fmt.Errorf("workers %d < 1: %w", s.Workers, errInvalid)
	}
	if s.BufferSize < 1 {
		return fmt.Errorf("buffer size %d < 1: %w", s.BufferSize, errInvalid)
	}
	return nil
}
