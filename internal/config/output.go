package config

import "fmt"

// OutputConfig holds game record output settings.
type OutputConfig struct {
	// Maximum movetext line length for PGN.
	MaxLineLength int

	// Write game records as JSON instead of PGN.
	JSONFormat bool
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		MaxLineLength: 80,
	}
}

// Validate rejects a line length too short to hold a move.
func (c *OutputConfig) Validate() error {
	if c.MaxLineLength < 10 {
		return fmt.Errorf("line length %d below 10: %w", c.MaxLineLength, errInvalid)
	}
	return nil
}
