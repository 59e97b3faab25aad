package parlay

import (
	"errors"
	"fmt"
	"strings"

	"parlay-fair-value/internal/odds"
)

var (
	// ErrLegUnusable means a leg's market could not be priced on both sides
	ErrLegUnusable = errors.New("leg unusable")
	// ErrInvalidSide means the selected side is neither home nor away
	ErrInvalidSide = errors.New("invalid side")
)

// Side is the outcome picked in a two-way market
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// ParseSide accepts "home"/"away" (and "h"/"a")
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "home", "h":
		return SideHome, nil
	case "away", "a":
		return SideAway, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSide, s)
}

// Market is a two-way moneyline quote from a single source
type Market struct {
	Home odds.Price
	Away odds.Price
}

// Implied returns the raw (vig-included) implied probabilities of both sides
func (m Market) Implied() (home, away float64, ok bool) {
	home, okHome := m.Home.Implied()
	away, okAway := m.Away.Implied()
	if !okHome || !okAway {
		return 0, 0, false
	}
	return home, away, true
}

// Selection is a leg before evaluation: a market and the side being backed
type Selection struct {
	Label  string // Team or event name, display only
	Market Market
	Side   Side
}

// FairLeg is a leg with the vig removed
type FairLeg struct {
	Label  string
	Market Market
	Side   Side

	HomeImplied float64 // Raw implied, vig included
	AwayImplied float64
	Overround   float64

	FairHome     float64 // Vig-removed, FairHome + FairAway == 1
	FairAway     float64
	FairProb     float64 // Fair probability of the selected side
	FairDecimal  float64 // 1 / FairProb
	FairAmerican int     // Display only
}

// SelectedPrice returns the raw quote for the side being backed
func (l FairLeg) SelectedPrice() odds.Price {
	if l.Side == SideHome {
		return l.Market.Home
	}
	return l.Market.Away
}

// EvaluateLeg devigs a leg's market and returns the fair values of the
// selected side. A market missing either side is unusable; it is never
// treated as a coin flip.
func EvaluateLeg(sel Selection) (FairLeg, error) {
	if sel.Side != SideHome && sel.Side != SideAway {
		return FairLeg{}, fmt.Errorf("%s: %w: %q", sel.Label, ErrInvalidSide, sel.Side)
	}

	homeImplied, ok := sel.Market.Home.Implied()
	if !ok {
		return FairLeg{}, fmt.Errorf("%s: %w: home price %s", sel.Label, ErrLegUnusable, sel.Market.Home)
	}
	awayImplied, ok := sel.Market.Away.Implied()
	if !ok {
		return FairLeg{}, fmt.Errorf("%s: %w: away price %s", sel.Label, ErrLegUnusable, sel.Market.Away)
	}

	fairHome, fairAway, ok := odds.DevigTwoWay(homeImplied, awayImplied)
	if !ok {
		return FairLeg{}, fmt.Errorf("%s: %w: cannot devig", sel.Label, ErrLegUnusable)
	}

	fair := fairHome
	if sel.Side == SideAway {
		fair = fairAway
	}

	fairDec, ok := odds.ProbabilityToDecimal(fair)
	if !ok {
		return FairLeg{}, fmt.Errorf("%s: %w: fair probability %v", sel.Label, ErrLegUnusable, fair)
	}
	// fairDec > 1 whenever the other side carries any probability
	fairAm, _ := odds.DecimalToAmerican(fairDec)
	overround, _ := odds.Overround(homeImplied, awayImplied)

	return FairLeg{
		Label:        sel.Label,
		Market:       sel.Market,
		Side:         sel.Side,
		HomeImplied:  homeImplied,
		AwayImplied:  awayImplied,
		Overround:    overround,
		FairHome:     fairHome,
		FairAway:     fairAway,
		FairProb:     fair,
		FairDecimal:  fairDec,
		FairAmerican: fairAm,
	}, nil
}

// SelectMarket picks the sharpest of several candidate quotes for the same
// matchup: the usable market with the smallest positive overround. If no
// candidate carries a positive overround the first usable one is returned.
func SelectMarket(candidates []Market) (Market, bool) {
	var (
		best      Market
		bestOver  float64
		found     bool
		fallback  Market
		hasUsable bool
	)

	for _, m := range candidates {
		home, away, ok := m.Implied()
		if !ok {
			continue
		}
		if !hasUsable {
			fallback = m
			hasUsable = true
		}

		over, ok := odds.Overround(home, away)
		if !ok || over <= 0 {
			continue
		}
		if !found || over < bestOver {
			best, bestOver, found = m, over, true
		}
	}

	if found {
		return best, true
	}
	return fallback, hasUsable
}
