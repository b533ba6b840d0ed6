// Package output writes game records as PGN or JSON.
package output

import "sort"

// Ply is one played move of a game record.
type Ply struct {
	Number int    `json:"number"`
	Side   string `json:"side"` // "white" or "black"
	SAN    string `json:"san"`
	UCI    string `json:"uci"`
	Engine bool   `json:"engine"`
}

// Game is the record of one game: its tags, start position and moves.
type Game struct {
	Tags     map[string]string
	StartFEN string // empty for the initial position
	Plies    []Ply
	Result   string // "1-0", "0-1", "1/2-1/2" or "*"
	FinalFEN string
}

// SevenTagRoster lists the tags every PGN game carries, in order.
var SevenTagRoster = []string{"Event", "Site", "Date", "Round", "White", "Black", "Result"}

// IsSevenTagRosterTag reports whether tag belongs to the seven tag roster.
func IsSevenTagRosterTag(tag string) bool {
	for _, t := range SevenTagRoster {
		if t == tag {
			return true
		}
	}
	return false
}

// GetTag returns a tag value. Result falls back to the game result.
func (g *Game) GetTag(name string) string {
	if v, ok := g.Tags[name]; ok {
		return v
	}
	if name == "Result" {
		return g.result()
	}
	return ""
}

func (g *Game) result() string {
	if g.Result == "" {
		return "*"
	}
	return g.Result
}

// extraTags returns the tags outside the seven tag roster, sorted.
func (g *Game) extraTags() []string {
	var names []string
	for name := range g.Tags {
		if !IsSevenTagRosterTag(name) && name != "SetUp" && name != "FEN" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
