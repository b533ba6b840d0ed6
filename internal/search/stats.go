package search

import (
	"fmt"
	"time"
)

// Stats counts the work of one search.
type Stats struct {
	Nodes   uint64        // boards visited below the root
	Cutoffs uint64        // subtrees pruned by the alpha-beta window
	Score   int           // value of the chosen move
	Elapsed time.Duration // wall time of the search
}

// NodesPerSecond returns the search speed, or 0 before any search.
func (s Stats) NodesPerSecond() uint64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return uint64(float64(s.Nodes) / s.Elapsed.Seconds())
}

func (s Stats) String() string {
	return fmt.Sprintf("score %s nodes %d cutoffs %d time %s nps %d",
		FormatScore(s.Score), s.Nodes, s.Cutoffs, s.Elapsed.Round(time.Millisecond), s.NodesPerSecond())
}
