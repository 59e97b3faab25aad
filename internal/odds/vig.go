package odds

// DevigTwoWay removes the vig/juice from a two-way market
// Returns the fair probabilities that sum to 1.0
//
// Method: Multiplicative vig removal (proportional)
// fairA = impliedA / (impliedA + impliedB)
// fairB = impliedB / (impliedA + impliedB)
//
// Returns false when either input is negative or non-finite, or when the
// pair sums to zero.
func DevigTwoWay(impliedA, impliedB float64) (float64, float64, bool) {
	if !isFinite(impliedA) || !isFinite(impliedB) || impliedA < 0 || impliedB < 0 {
		return 0, 0, false
	}

	total := impliedA + impliedB
	if total <= 0 {
		return 0, 0, false
	}

	return impliedA / total, impliedB / total, true
}

// Overround returns the bookmaker margin of a two-way market:
// how far the implied probabilities sum above 1.0.
// -110/-110 → 0.0476
func Overround(impliedA, impliedB float64) (float64, bool) {
	if !isFinite(impliedA) || !isFinite(impliedB) || impliedA <= 0 || impliedB <= 0 {
		return 0, false
	}
	return impliedA + impliedB - 1.0, true
}

// DevigAmerican converts a pair of American prices to vig-free probabilities
func DevigAmerican(americanA, americanB float64) (float64, float64, bool) {
	impliedA, okA := ImpliedFromAmerican(americanA)
	impliedB, okB := ImpliedFromAmerican(americanB)
	if !okA || !okB {
		return 0, 0, false
	}
	return DevigTwoWay(impliedA, impliedB)
}
