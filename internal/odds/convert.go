package odds

import "math"

// minAmericanMagnitude is the smallest valid |American| price.
// Anything between -100 and +100 has no decimal equivalent.
const minAmericanMagnitude = 100.0

// AmericanToDecimal converts American odds to decimal odds
// Example: +150 → 2.50, -150 → 1.667
//
// Returns false for 0, |odds| < 100 and non-finite input.
func AmericanToDecimal(american float64) (float64, bool) {
	if !isFinite(american) || math.Abs(american) < minAmericanMagnitude {
		return 0, false
	}

	if american > 0 {
		// Underdog: profit per 100 staked
		return 1.0 + american/100.0, true
	}
	// Favorite: dividing by a negative number yields decimal > 1
	return 1.0 - 100.0/american, true
}

// DecimalToAmerican converts decimal odds to American odds
// Example: 2.50 → +150, 1.667 → -150
//
// Rounds half away from zero (math.Round), so 2.125 → +113.
// Returns false for decimal <= 1.0.
func DecimalToAmerican(decimal float64) (int, bool) {
	if !isFinite(decimal) || decimal <= 1.0 {
		return 0, false
	}

	if decimal >= 2.0 {
		return int(math.Round((decimal - 1.0) * 100.0)), true
	}
	return int(math.Round(-100.0 / (decimal - 1.0))), true
}

// ImpliedFromAmerican converts American odds to implied probability
// Example: -150 → 0.6 (60%), +150 → 0.4 (40%)
func ImpliedFromAmerican(american float64) (float64, bool) {
	dec, ok := AmericanToDecimal(american)
	if !ok || dec <= 0 {
		return 0, false
	}
	return 1.0 / dec, true
}

// ImpliedFromDecimal converts decimal odds to implied probability
// Example: 2.00 → 0.50, 1.50 → 0.667
func ImpliedFromDecimal(decimal float64) (float64, bool) {
	if !isFinite(decimal) || decimal <= 1.0 {
		return 0, false
	}
	return 1.0 / decimal, true
}

// ProbabilityToDecimal converts a probability to fair decimal odds.
// p must be in (0, 1].
func ProbabilityToDecimal(p float64) (float64, bool) {
	if !isFinite(p) || p <= 0 || p > 1 {
		return 0, false
	}
	return 1.0 / p, true
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
