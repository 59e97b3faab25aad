package analysis

import (
	"math"

	"parlay-fair-value/internal/odds"
)

// DefaultKellyFraction is quarter Kelly
const DefaultKellyFraction = 0.25

// Config holds staking configuration
type Config struct {
	KellyFraction float64 // Fraction of Kelly to use (e.g., 0.25 = quarter Kelly)
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		KellyFraction: DefaultKellyFraction,
	}
}

// fraction returns the configured multiplier, falling back to the default
// when unset or non-positive.
func (c Config) fraction() float64 {
	if !(c.KellyFraction > 0) || math.IsInf(c.KellyFraction, 0) {
		return DefaultKellyFraction
	}
	return c.KellyFraction
}

// StakeRecommendation is the sizing for one wager at an offered price
type StakeRecommendation struct {
	FairProb        float64 // Our win probability
	OfferedDecimal  float64
	OfferedAmerican int     // Display only
	FullKelly       float64 // Can be negative (no edge) or above 1
	Fraction        float64 // Multiplier applied to FullKelly
	FractionalKelly float64 // max(0, FullKelly * Fraction)
	EV              float64 // Expected net profit per unit staked
	Edge            float64 // FairProb / offered implied - 1
}

// HasEdge reports whether the offered price beats the fair price
func (r StakeRecommendation) HasEdge() bool {
	return r.FullKelly > 0
}

// KellyFraction computes the full Kelly criterion bet size for a binary bet
// Kelly formula: f* = (b * p - q) / b
// where: p = probability of winning, q = 1-p, b = decimal odds - 1
//
// The result is not clamped: negative means no edge, above 1 means the
// formula wants more than the whole bankroll.
func KellyFraction(trueProb, decimalOdds float64) (float64, bool) {
	if !validProb(trueProb) || !validDecimal(decimalOdds) {
		return 0, false
	}

	p := trueProb
	q := 1.0 - p
	b := decimalOdds - 1.0

	return (b*p - q) / b, true
}

// Recommend sizes a wager at the offered decimal price.
// The fractional stake is floored at zero: a negative edge is never staked.
func Recommend(trueProb, offeredDecimal float64, cfg Config) (StakeRecommendation, bool) {
	full, ok := KellyFraction(trueProb, offeredDecimal)
	if !ok {
		return StakeRecommendation{}, false
	}
	ev, _ := ExpectedValue(trueProb, offeredDecimal)

	fraction := cfg.fraction()
	american, _ := odds.DecimalToAmerican(offeredDecimal)
	edge, _ := Edge(trueProb, offeredDecimal)

	return StakeRecommendation{
		FairProb:        trueProb,
		OfferedDecimal:  offeredDecimal,
		OfferedAmerican: american,
		FullKelly:       full,
		Fraction:        fraction,
		FractionalKelly: math.Max(0, full*fraction),
		EV:              ev,
		Edge:            edge,
	}, true
}

// BetSize returns the dollar amount to bet given a bankroll
// Capped at maxBet if provided (0 = no cap)
func (r StakeRecommendation) BetSize(bankroll, maxBet float64) float64 {
	if r.FractionalKelly <= 0 || bankroll <= 0 {
		return 0
	}

	betSize := bankroll * r.FractionalKelly

	if maxBet > 0 && betSize > maxBet {
		betSize = maxBet
	}

	return betSize
}
