package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"parlay-fair-value/internal/odds"
	"parlay-fair-value/internal/parlay"
)

// legFile is one leg in a --file JSON document. Either Home/Away or a list
// of Quotes (one per book) must be present; with Quotes the lowest-vig
// market is used.
type legFile struct {
	Label  string      `json:"label"`
	Side   string      `json:"side"`
	Home   string      `json:"home"`
	Away   string      `json:"away"`
	Quotes []quoteFile `json:"quotes,omitempty"`
}

type quoteFile struct {
	Book string `json:"book,omitempty"`
	Home string `json:"home"`
	Away string `json:"away"`
}

// parseLegFlag parses "HOME,AWAY,SIDE[,LABEL]", e.g. "-150,+130,home,NYY"
func parseLegFlag(s string) (parlay.Selection, error) {
	parts := strings.Split(s, ",")
	if len(parts) < 3 || len(parts) > 4 {
		return parlay.Selection{}, fmt.Errorf("leg %q: want HOME,AWAY,SIDE[,LABEL]", s)
	}

	side, err := parlay.ParseSide(parts[2])
	if err != nil {
		return parlay.Selection{}, fmt.Errorf("leg %q: %w", s, err)
	}

	label := ""
	if len(parts) == 4 {
		label = strings.TrimSpace(parts[3])
	}

	market, err := parseMarket(parts[0], parts[1])
	if err != nil {
		return parlay.Selection{}, fmt.Errorf("leg %q: %w", s, err)
	}

	return parlay.Selection{Label: label, Market: market, Side: side}, nil
}

// parseMarket parses both sides of a quote. An empty side stays the zero
// price, which the leg evaluator reports as unusable; text that is not a
// price is an error naming the text.
func parseMarket(home, away string) (parlay.Market, error) {
	h, err := parseQuote("home", home)
	if err != nil {
		return parlay.Market{}, err
	}
	a, err := parseQuote("away", away)
	if err != nil {
		return parlay.Market{}, err
	}
	return parlay.Market{Home: h, Away: a}, nil
}

func parseQuote(side, raw string) (odds.Price, error) {
	if strings.TrimSpace(raw) == "" {
		return odds.Price{}, nil
	}
	p, ok := odds.ParsePrice(raw)
	if !ok {
		return odds.Price{}, fmt.Errorf("%w: %s price %q is not American (+130, -150) or decimal (2.30)",
			parlay.ErrLegUnusable, side, raw)
	}
	return p, nil
}

// loadLegFile reads selections from a JSON array of legs
func loadLegFile(path string) ([]parlay.Selection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading legs file: %w", err)
	}

	var legs []legFile
	if err := json.Unmarshal(data, &legs); err != nil {
		return nil, fmt.Errorf("parsing legs file: %w", err)
	}

	sels := make([]parlay.Selection, 0, len(legs))
	for i, l := range legs {
		side, err := parlay.ParseSide(l.Side)
		if err != nil {
			return nil, fmt.Errorf("leg %d (%s): %w", i+1, l.Label, err)
		}

		market, err := parseMarket(l.Home, l.Away)
		if err != nil {
			return nil, fmt.Errorf("leg %d (%s): %w", i+1, l.Label, err)
		}
		if len(l.Quotes) > 0 {
			candidates := make([]parlay.Market, len(l.Quotes))
			for j, q := range l.Quotes {
				if candidates[j], err = parseMarket(q.Home, q.Away); err != nil {
					return nil, fmt.Errorf("leg %d (%s) quote %q: %w", i+1, l.Label, q.Book, err)
				}
			}
			// no usable quote leaves the zero market, which evaluates as unusable
			market, _ = parlay.SelectMarket(candidates)
		}

		sels = append(sels, parlay.Selection{Label: l.Label, Market: market, Side: side})
	}

	return sels, nil
}
