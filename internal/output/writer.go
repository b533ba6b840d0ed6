package output

import "io"

// GameWriter is the interface for writing games to output.
// Different implementations handle different output formats (PGN, JSON).
type GameWriter interface {
	// WriteGame writes a single game to the output.
	WriteGame(g *Game) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources.
	// For batch writers (like JSON), this also writes any pending output.
	Close() error
}

// NewGameWriter returns a JSON writer when asJSON is set and a PGN writer
// otherwise.
func NewGameWriter(w io.Writer, asJSON bool, lineLength int) GameWriter {
	if asJSON {
		return NewJSONWriter(w)
	}
	return NewPGNWriter(w, lineLength)
}

// PGNWriter writes games in PGN format.
type PGNWriter struct {
	w          io.Writer
	lineLength int
}

// NewPGNWriter creates a new PGN writer.
func NewPGNWriter(w io.Writer, lineLength int) *PGNWriter {
	return &PGNWriter{
		w:          w,
		lineLength: lineLength,
	}
}

// WriteGame writes a game in PGN format.
func (pw *PGNWriter) WriteGame(g *Game) error {
	return WritePGN(pw.w, g, pw.lineLength)
}

// Flush is a no-op; PGN is written immediately.
func (pw *PGNWriter) Flush() error {
	return nil
}

// Close closes the PGN writer.
func (pw *PGNWriter) Close() error {
	return nil
}

// JSONWriter writes games in JSON format.
// It buffers games and writes them as a JSON array on Close or Flush.
type JSONWriter struct {
	w      io.Writer
	games  []*Game
	single bool // If true, write each game immediately instead of batching
}

// NewJSONWriter creates a new JSON writer.
// By default, it batches games and writes them as an array on Close().
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:     w,
		games: make([]*Game, 0),
	}
}

// NewJSONWriterSingle creates a JSON writer that writes each game immediately.
func NewJSONWriterSingle(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:      w,
		single: true,
	}
}

// WriteGame buffers a game for JSON output (or writes immediately in single mode).
func (jw *JSONWriter) WriteGame(g *Game) error {
	if jw.single {
		return encodeJSON(jw.w, GameToJSON(g))
	}
	jw.games = append(jw.games, g)
	return nil
}

// Flush writes all buffered games as a JSON array.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.games) == 0 {
		return nil
	}

	out := &JSONOutput{
		Games: make([]*JSONGame, 0, len(jw.games)),
	}
	for _, g := range jw.games {
		out.Games = append(out.Games, GameToJSON(g))
	}
	err := encodeJSON(jw.w, out)

	// Clear buffer after writing
	jw.games = jw.games[:0]
	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}
