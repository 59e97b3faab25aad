package analysis

import (
	"math"

	"parlay-fair-value/internal/odds"
)

// ExpectedValue calculates the expected net profit of a one-unit stake
// EV = p * b - (1 - p), where b = decimal odds - 1
func ExpectedValue(trueProb, decimalOdds float64) (float64, bool) {
	if !validProb(trueProb) || !validDecimal(decimalOdds) {
		return 0, false
	}

	b := decimalOdds - 1.0
	return trueProb*b - (1.0 - trueProb), true
}

// Edge is how far our probability sits above the offered implied probability,
// as a ratio: p / (1/decimal) - 1. Equal to EV for a one-unit stake.
func Edge(trueProb, decimalOdds float64) (float64, bool) {
	if !validProb(trueProb) || !validDecimal(decimalOdds) {
		return 0, false
	}

	implied, ok := odds.ImpliedFromDecimal(decimalOdds)
	if !ok {
		return 0, false
	}
	return trueProb/implied - 1.0, true
}

func validProb(p float64) bool {
	return p >= 0 && p <= 1
}

func validDecimal(d float64) bool {
	return d > 1 && !math.IsInf(d, 0)
}
