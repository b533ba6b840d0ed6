package output

import (
	"fmt"
	"io"
	"strings"
)

// DefaultLineLength is the movetext width used when none is configured.
const DefaultLineLength = 80

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = DefaultLineLength
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a string, adding a space separator or a line break if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		if o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			o.lineLength = 0
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}

	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	fmt.Fprintln(o.w)
	o.lineLength = 0
	o.needsSpace = false
}

// WritePGN writes a game in PGN: the tags, a blank line, the movetext
// ending in the result, and a blank line.
func WritePGN(w io.Writer, g *Game, lineLength int) error {
	var sb strings.Builder
	writeTags(&sb, g)
	sb.WriteByte('\n')
	writeMoves(&sb, g, lineLength)
	sb.WriteByte('\n')
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeTags(w io.Writer, g *Game) {
	for _, tag := range SevenTagRoster {
		value := g.GetTag(tag)
		if value == "" {
			value = "?"
		}
		fmt.Fprintf(w, "[%s \"%s\"]\n", tag, escapeTagValue(value))
	}
	if g.StartFEN != "" {
		fmt.Fprintf(w, "[SetUp \"1\"]\n[FEN \"%s\"]\n", g.StartFEN)
	}
	for _, tag := range g.extraTags() {
		fmt.Fprintf(w, "[%s \"%s\"]\n", tag, escapeTagValue(g.Tags[tag]))
	}
}

// escapeTagValue escapes special characters in tag values.
func escapeTagValue(s string) string {
	if !strings.ContainsAny(s, "\\\"") {
		return s
	}
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}

// writeMoves writes numbered movetext. A record starting with Black opens
// with "N...".
func writeMoves(w io.Writer, g *Game, lineLength int) {
	ow := NewOutputWriter(w, lineLength)
	for i, p := range g.Plies {
		switch {
		case p.Side == "white":
			ow.Write(fmt.Sprintf("%d.", p.Number))
		case i == 0:
			ow.Write(fmt.Sprintf("%d...", p.Number))
		}
		ow.Write(p.SAN)
	}
	ow.Write(g.result())
	ow.NewLine()
}
