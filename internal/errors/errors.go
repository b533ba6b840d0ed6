// Package errors provides sentinel errors and error types for the chess engine.
// It defines common error conditions and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidPosition indicates a placement that cannot form a position,
	// e.g. a side without exactly one king.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrIllegalMove indicates a move that is not in the legal move set.
	ErrIllegalMove = errors.New("illegal move")

	// ErrLeavesKingInCheck indicates a move that would leave the mover's king attacked.
	ErrLeavesKingInCheck = errors.New("move leaves king in check")

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrInvalidSquare indicates a malformed square name.
	ErrInvalidSquare = errors.New("invalid square")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnknownStrategy indicates a search strategy name that is not registered.
	ErrUnknownStrategy = errors.New("unknown search strategy")

	// ErrGameNotFound indicates an unknown game session id.
	ErrGameNotFound = errors.New("game not found")

	// ErrGameOver indicates a move request on a finished game.
	ErrGameOver = errors.New("game is over")

	// ErrNotYourTurn indicates a move submitted for the side not on move.
	ErrNotYourTurn = errors.New("not your turn")

	// ErrNoMove indicates a search that found no move to play.
	ErrNoMove = errors.New("no move available")

	// ErrPoolStopped indicates a search job dropped by a stopped worker pool.
	ErrPoolStopped = errors.New("worker pool stopped")
)

// MoveError wraps errors with game context, including session id,
// ply position, and move information. It implements the error interface
// and supports unwrapping via errors.Is() and errors.As().
type MoveError struct {
	Err    error  // The underlying error
	GameID string // Session id (if known)
	Ply    int    // Ply number where error occurred (0 if not applicable)
	Move   string // The move text that caused the error (if applicable)
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.GameID != "" {
		parts = append(parts, fmt.Sprintf("game %s", e.GameID))
	}
	if e.Ply > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.Ply))
	}
	if e.Move != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.Move))
	}

	context := strings.Join(parts, ", ")
	if e.Err == nil {
		return context
	}
	if context == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", context, e.Err)
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// ParseError represents a text parsing error (FEN, square or move text).
type ParseError struct {
	Err   error  // The underlying error
	Input string // The text being parsed
	Field string // Which part of the input was wrong
	Got   string // What was found instead
}

// Error returns a formatted error message with location and context.
func (e *ParseError) Error() string {
	var parts []string

	if e.Input != "" {
		parts = append(parts, fmt.Sprintf("%q", e.Input))
	}
	if e.Field != "" && e.Got != "" {
		parts = append(parts, fmt.Sprintf("%s: unexpected %q", e.Field, e.Got))
	} else if e.Field != "" {
		parts = append(parts, e.Field)
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, ": "), e.Err)
		}
		return e.Err.Error()
	}

	if len(parts) > 0 {
		return strings.Join(parts, ": ")
	}
	return "parse error"
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
