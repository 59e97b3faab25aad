// Package report renders parlay evaluations for people: percentages with
// three decimals, decimal odds to three places, American odds signed.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"parlay-fair-value/internal/analysis"
	"parlay-fair-value/internal/parlay"
)

// Percent formats a probability or fraction as a percentage, e.g. 0.33 → "33.000%"
func Percent(p float64) string {
	if !isFinite(p) {
		return strconv.FormatFloat(p, 'f', -1, 64) + "%"
	}
	return decimal.NewFromFloat(p).Shift(2).StringFixed(3) + "%"
}

// Decimal formats decimal odds to three places, e.g. 3.030303 → "3.030"
func Decimal(d float64) string {
	return fixed(d, 3)
}

// American formats American odds with an explicit sign, e.g. 203 → "+203"
func American(a int) string {
	return fmt.Sprintf("%+d", a)
}

// Money formats a dollar amount, e.g. 12.5 → "$12.50"
func Money(v float64) string {
	return "$" + fixed(v, 2)
}

// fixed rounds half away from zero; decimal cannot represent NaN or Inf,
// so those print as strconv does
func fixed(v float64, places int32) string {
	if !isFinite(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// WriteLegs writes one line per evaluated leg
func WriteLegs(w io.Writer, legs []parlay.FairLeg) {
	fmt.Fprintln(w, "Legs")
	for i, l := range legs {
		label := l.Label
		if label == "" {
			label = fmt.Sprintf("leg %d", i+1)
		}
		fmt.Fprintf(w, "  %d. %s (%s %s) home=%s away=%s vig=%s -> fair %s (dec %s, %s)\n",
			i+1, label, l.Side, l.SelectedPrice(),
			l.Market.Home, l.Market.Away, Percent(l.Overround),
			Percent(l.FairProb), Decimal(l.FairDecimal), American(l.FairAmerican))
	}
}

// WriteParlay writes the combined fair value
func WriteParlay(w io.Writer, p parlay.Parlay) {
	fmt.Fprintln(w, "Parlay fair value")
	fmt.Fprintf(w, "  legs:          %d\n", len(p.Legs))
	fmt.Fprintf(w, "  fair prob:     %s\n", Percent(p.FairProb))
	fmt.Fprintf(w, "  fair decimal:  %s\n", Decimal(p.FairDecimal))
	fmt.Fprintf(w, "  fair American: %s\n", American(p.FairAmerican))
}

// WriteStake writes the Kelly sizing. betSize is skipped when zero.
func WriteStake(w io.Writer, rec analysis.StakeRecommendation, betSize float64) {
	fmt.Fprintln(w, "Kelly staking")
	fmt.Fprintf(w, "  offered:       %s (%s)\n", Decimal(rec.OfferedDecimal), American(rec.OfferedAmerican))
	fmt.Fprintf(w, "  fair prob:     %s\n", Percent(rec.FairProb))
	fmt.Fprintf(w, "  edge:          %s\n", Percent(rec.Edge))
	fmt.Fprintf(w, "  full Kelly:    %s\n", Percent(rec.FullKelly))
	fmt.Fprintf(w, "  stake (%sx): %s of bankroll\n", strconv.FormatFloat(rec.Fraction, 'f', -1, 64), Percent(rec.FractionalKelly))
	if betSize > 0 {
		fmt.Fprintf(w, "  bet size:      %s\n", Money(betSize))
	}
	fmt.Fprintf(w, "  EV per $1:     %s\n", fixed(rec.EV, 4))
	if !rec.HasEdge() {
		fmt.Fprintln(w, "  no edge at the offered price: do not stake")
	}
}

// Summary is a one-line log form of an evaluation
func Summary(p parlay.Parlay, rec analysis.StakeRecommendation) string {
	return fmt.Sprintf("legs=%d fair=%s dec=%s offered=%s kelly=%s stake=%s ev=%s",
		len(p.Legs), Percent(p.FairProb), Decimal(p.FairDecimal),
		Decimal(rec.OfferedDecimal), Percent(rec.FullKelly), Percent(rec.FractionalKelly),
		fixed(rec.EV, 4))
}
