package config

import (
	"fmt"
	"strings"
)

// ServerConfig holds settings for the HTTP game server.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":3000".
	Addr string

	// AllowOrigins is the comma-separated CORS origin list.
	AllowOrigins string

	// EngineReplies makes the server answer every accepted player move
	// with an engine move.
	EngineReplies bool
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Addr:          ":3000",
		AllowOrigins:  "*",
		EngineReplies: true,
	}
}

// Validate checks that the server configuration is usable.
func (s *ServerConfig) Validate() error {
	if strings.TrimSpace(s.Addr) == "" {
		return fmt.Errorf("empty listen address: %w", errInvalid)
	}
	return nil
}
