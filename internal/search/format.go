package search

import (
	"fmt"
	"math"
)

// FormatScore renders an evaluation in pawns from White's point of view:
// "+1.25", "-0.40", "0.00". Scores carrying a checkmate bonus render as
// "+M" or "-M" for the side delivering mate.
func FormatScore(score int) string {
	switch {
	case score >= CheckmateBonus:
		return "+M"
	case score <= -CheckmateBonus:
		return "-M"
	case score == 0:
		return "0.00"
	}
	sign := "+"
	if score < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%.2f", sign, math.Abs(float64(score))/100)
}
