package odds

import (
	"fmt"
	"math"
	"strconv"
)

// Format identifies how a Price is quoted
type Format int

const (
	FormatAmerican Format = iota
	FormatDecimal
)

func (f Format) String() string {
	switch f {
	case FormatAmerican:
		return "american"
	case FormatDecimal:
		return "decimal"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// Price is a single quote in either American or decimal form.
// The zero Price means the side was not quoted.
type Price struct {
	Value  float64
	Format Format
}

// American builds a Price from American odds (e.g. -150, +130)
func American(a float64) Price {
	return Price{Value: a, Format: FormatAmerican}
}

// Decimal builds a Price from decimal odds (e.g. 1.91, 5.50)
func Decimal(d float64) Price {
	return Price{Value: d, Format: FormatDecimal}
}

// IsZero reports whether the price is missing
func (p Price) IsZero() bool {
	return p.Value == 0
}

// Decimal returns the price in decimal odds
func (p Price) Decimal() (float64, bool) {
	switch p.Format {
	case FormatAmerican:
		return AmericanToDecimal(p.Value)
	case FormatDecimal:
		if !isFinite(p.Value) || p.Value <= 1.0 {
			return 0, false
		}
		return p.Value, true
	default:
		return 0, false
	}
}

// American returns the price in American odds
func (p Price) American() (int, bool) {
	dec, ok := p.Decimal()
	if !ok {
		return 0, false
	}
	if p.Format == FormatAmerican {
		return int(math.Round(p.Value)), true
	}
	return DecimalToAmerican(dec)
}

// Implied returns the implied probability of the price (vig included)
func (p Price) Implied() (float64, bool) {
	dec, ok := p.Decimal()
	if !ok {
		return 0, false
	}
	return ImpliedFromDecimal(dec)
}

func (p Price) String() string {
	if p.IsZero() {
		return "-"
	}
	if p.Format == FormatAmerican {
		return fmt.Sprintf("%+d", int(math.Round(p.Value)))
	}
	return strconv.FormatFloat(p.Value, 'f', -1, 64)
}
