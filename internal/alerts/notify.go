package alerts

import (
	"log"

	"parlay-fair-value/internal/analysis"
	"parlay-fair-value/internal/config"
	"parlay-fair-value/internal/parlay"
	"parlay-fair-value/internal/report"
)

// Notifier writes one-line evaluation logs
type Notifier struct {
	logger *log.Logger
}

// NewNotifier creates a new notifier. A nil logger uses the standard logger.
func NewNotifier(logger *log.Logger) *Notifier {
	if logger == nil {
		logger = log.Default()
	}
	return &Notifier{logger: logger}
}

// AlertParlay logs an evaluated parlay, flagged +EV when the offered price
// beats fair value
func (n *Notifier) AlertParlay(p parlay.Parlay, rec analysis.StakeRecommendation, betSize float64) {
	tag := "NO EDGE"
	if rec.HasEdge() {
		tag = "+EV PARLAY"
	}

	stake := "-"
	if betSize > 0 {
		stake = report.Money(betSize)
	}

	n.logger.Printf("%s: %s | bet=%s", tag, report.Summary(p, rec), stake)
}

// LogSaved logs a journaled evaluation
func (n *Notifier) LogSaved(id string) {
	n.logger.Printf("Saved evaluation %s", id)
}

// LogJournalDisabled logs a --save request that had nowhere to go
func (n *Notifier) LogJournalDisabled() {
	n.logger.Printf("Journal disabled: DB_PATH not set, evaluation not saved")
}

// LogError logs an error
func (n *Notifier) LogError(context string, err error) {
	n.logger.Printf("ERROR [%s]: %v", context, err)
}

// LogStartup logs the effective staking configuration
func (n *Notifier) LogStartup(cfg config.Config) {
	journal := cfg.DBPath
	if journal == "" {
		journal = "off"
	}
	n.logger.Printf("Config | kelly=%.2fx bankroll=%s maxBet=%s journal=%s",
		cfg.KellyFraction, report.Money(cfg.Bankroll), config.FormatMaxBet(cfg.MaxBetDollars), journal)
}
