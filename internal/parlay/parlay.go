package parlay

import (
	"context"
	"errors"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"parlay-fair-value/internal/odds"
)

// ErrEmptyParlay is returned when there are no legs to combine
var ErrEmptyParlay = errors.New("parlay has no legs")

// Parlay is the fair value of independent legs combined
//
// Legs are assumed independent, so probabilities and prices multiply.
// Same-game legs are correlated and will be mispriced by this.
type Parlay struct {
	Legs         []FairLeg
	FairProb     float64 // Π leg fair probabilities
	FairDecimal  float64 // Π leg fair decimals
	FairAmerican int     // Display only
}

// Aggregate combines evaluated legs into a parlay. A single leg is a valid
// parlay equal to the leg itself.
func Aggregate(legs []FairLeg) (Parlay, error) {
	if len(legs) == 0 {
		return Parlay{}, ErrEmptyParlay
	}

	prob := 1.0
	dec := 1.0
	for i, leg := range legs {
		if !(leg.FairProb > 0 && leg.FairProb < 1) || !(leg.FairDecimal > 1) {
			return Parlay{}, fmt.Errorf("leg %d (%s): %w: fair prob %v, fair decimal %v",
				i+1, leg.Label, ErrLegUnusable, leg.FairProb, leg.FairDecimal)
		}
		prob *= leg.FairProb
		dec *= leg.FairDecimal
	}

	// long shots can multiply past the float range even when each leg is valid
	if !(prob > 0) || math.IsInf(dec, 0) || math.IsNaN(dec) || !(dec > 1) {
		return Parlay{}, fmt.Errorf("%w: combined fair prob %v, fair decimal %v out of range",
			ErrLegUnusable, prob, dec)
	}

	american, _ := odds.DecimalToAmerican(dec)

	out := make([]FairLeg, len(legs))
	copy(out, legs)

	return Parlay{
		Legs:         out,
		FairProb:     prob,
		FairDecimal:  dec,
		FairAmerican: american,
	}, nil
}

// EvaluateLegs evaluates every selection concurrently, keeping input order.
// One unusable leg fails the whole set.
func EvaluateLegs(ctx context.Context, sels []Selection) ([]FairLeg, error) {
	if len(sels) == 0 {
		return nil, ErrEmptyParlay
	}

	legs := make([]FairLeg, len(sels))
	g, ctx := errgroup.WithContext(ctx)

	for i, sel := range sels {
		i, sel := i, sel
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			leg, err := EvaluateLeg(sel)
			if err != nil {
				return fmt.Errorf("leg %d: %w", i+1, err)
			}
			legs[i] = leg
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return legs, nil
}

// Evaluate evaluates the selections and combines them into a parlay
func Evaluate(ctx context.Context, sels []Selection) (Parlay, error) {
	legs, err := EvaluateLegs(ctx, sels)
	if err != nil {
		return Parlay{}, err
	}
	return Aggregate(legs)
}
