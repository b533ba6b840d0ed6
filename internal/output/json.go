package output

import (
	"encoding/json"
	"io"
)

// JSONGame represents a game in JSON format.
type JSONGame struct {
	Tags       map[string]string `json:"tags"`
	Moves      []Ply             `json:"moves,omitempty"`
	Result     string            `json:"result"`
	PlyCount   int               `json:"plyCount"`
	InitialFEN string            `json:"initialFEN,omitempty"`
	FinalFEN   string            `json:"finalFEN,omitempty"`
}

// JSONOutput holds multiple games for array output.
type JSONOutput struct {
	Games []*JSONGame `json:"games"`
}

// GameToJSON converts a game record to JSON format.
func GameToJSON(g *Game) *JSONGame {
	tags := make(map[string]string, len(g.Tags))
	for k, v := range g.Tags {
		tags[k] = v
	}
	return &JSONGame{
		Tags:       tags,
		Moves:      g.Plies,
		Result:     g.result(),
		PlyCount:   len(g.Plies),
		InitialFEN: g.StartFEN,
		FinalFEN:   g.FinalFEN,
	}
}

func encodeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
