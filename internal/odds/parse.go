package odds

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	numberRe     = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)$`)
)

// ParsePrice parses a free-form price string such as "+450", "-110",
// "5.50" or "450".
//
// A leading sign, or any bare value >= 100, is read as American odds:
// "150.0" means +150, not decimal 150. Everything else is decimal.
//
// The parsed price must be convertible (|American| >= 100, decimal > 1.0).
func ParsePrice(s string) (Price, bool) {
	s = strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
	if s == "" || !numberRe.MatchString(s) {
		return Price{}, false
	}

	val, err := strconv.ParseFloat(s, 64)
	if err != nil || !isFinite(val) {
		return Price{}, false
	}

	var p Price
	switch {
	case s[0] == '+' || s[0] == '-':
		p = American(val)
	case val >= minAmericanMagnitude:
		// bare "450" and "450.0" alike
		p = American(val)
	default:
		p = Decimal(val)
	}

	if _, ok := p.Decimal(); !ok {
		return Price{}, false
	}
	return p, true
}

// ParseOffered parses a boosted/offered price string into decimal odds
func ParseOffered(s string) (float64, bool) {
	p, ok := ParsePrice(s)
	if !ok {
		return 0, false
	}
	return p.Decimal()
}
