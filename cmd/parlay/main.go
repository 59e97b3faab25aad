package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"parlay-fair-value/internal/alerts"
	"parlay-fair-value/internal/analysis"
	"parlay-fair-value/internal/config"
	"parlay-fair-value/internal/history"
	"parlay-fair-value/internal/odds"
	"parlay-fair-value/internal/parlay"
	"parlay-fair-value/internal/report"
)

func main() {
	// Ctrl-C cancels an in-flight evaluation
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:   "parlay",
		Short: "Fair value and Kelly staking for moneyline parlays",
		Long: `parlay removes the bookmaker margin from two-way moneyline markets,
multiplies the fair legs into a parlay price and sizes a stake against an
offered (boosted) price with fractional Kelly.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.Validate(cfg)
		},
	}

	rootCmd.AddCommand(newEvalCmd(&cfg))
	rootCmd.AddCommand(newConvertCmd())
	rootCmd.AddCommand(newHistoryCmd(&cfg))

	return rootCmd
}

func newEvalCmd(cfg *config.Config) *cobra.Command {
	var (
		legFlags []string
		legsFile string
		offered  string
		save     bool
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate a parlay against an offered price",
		Long: `Evaluate a parlay of independent moneyline legs.
Example: parlay eval --leg=-150,+130,home,NYY --leg=+120,-140,away,LAD --offered=+450`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd.Context(), cmd.OutOrStdout(), cfg, legFlags, legsFile, offered, save)
		},
	}

	cmd.Flags().StringArrayVar(&legFlags, "leg", nil, "leg as HOME,AWAY,SIDE[,LABEL] (repeatable)")
	cmd.Flags().StringVar(&legsFile, "file", "", "JSON file of legs")
	cmd.Flags().StringVar(&offered, "offered", "", "offered parlay price, American (+450) or decimal (5.50)")
	cmd.Flags().Float64Var(&cfg.KellyFraction, "fraction", cfg.KellyFraction, "Kelly multiplier (0.25 = quarter Kelly)")
	cmd.Flags().Float64Var(&cfg.Bankroll, "bankroll", cfg.Bankroll, "bankroll in dollars (0 = fractions only)")
	cmd.Flags().Float64Var(&cfg.MaxBetDollars, "max-bet", cfg.MaxBetDollars, "cap on the bet size in dollars (0 = no cap)")
	cmd.Flags().BoolVar(&save, "save", false, "record the evaluation in the journal at DB_PATH")
	_ = cmd.MarkFlagRequired("offered")

	return cmd
}

func runEval(ctx context.Context, out io.Writer, cfg *config.Config, legFlags []string, legsFile, offered string, save bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	notifier := alerts.NewNotifier(nil)
	notifier.LogStartup(*cfg)

	var sels []parlay.Selection
	if legsFile != "" {
		fromFile, err := loadLegFile(legsFile)
		if err != nil {
			return err
		}
		sels = append(sels, fromFile...)
	}
	for _, s := range legFlags {
		sel, err := parseLegFlag(s)
		if err != nil {
			return err
		}
		sels = append(sels, sel)
	}

	// Parse the offered price before any math: a bad price means no stake
	offeredDec, ok := odds.ParseOffered(offered)
	if !ok {
		return fmt.Errorf("couldn't parse offered odds %q: enter like +450 or 5.50", offered)
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.EvalTimeout)
	defer cancel()

	p, err := parlay.Evaluate(ctx, sels)
	if err != nil {
		if errors.Is(err, parlay.ErrEmptyParlay) {
			return fmt.Errorf("pick at least one leg (--leg or --file)")
		}
		return fmt.Errorf("evaluating parlay: %w", err)
	}

	rec, ok := analysis.Recommend(p.FairProb, offeredDec, analysis.Config{KellyFraction: cfg.KellyFraction})
	if !ok {
		return fmt.Errorf("kelly fraction could not be computed for offered odds %q", offered)
	}
	betSize := rec.BetSize(cfg.Bankroll, cfg.MaxBetDollars)

	report.WriteLegs(out, p.Legs)
	fmt.Fprintln(out)
	report.WriteParlay(out, p)
	fmt.Fprintln(out)
	report.WriteStake(out, rec, betSize)

	notifier.AlertParlay(p, rec, betSize)

	if !save {
		return nil
	}
	if cfg.DBPath == "" {
		notifier.LogJournalDisabled()
		return nil
	}

	db, err := history.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	defer db.Close()

	id, err := db.SaveEvaluation(history.NewEvaluation(p, rec, offered, betSize))
	if err != nil {
		return fmt.Errorf("saving evaluation: %w", err)
	}
	notifier.LogSaved(id)
	return nil
}

func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert [PRICE]",
		Short: "Show a price as decimal, American and implied probability",
		Long: `Convert a single price.
Example: parlay convert -- -150`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := odds.ParsePrice(args[0])
			if !ok {
				return fmt.Errorf("couldn't parse price %q", args[0])
			}
			dec, _ := p.Decimal()
			am, _ := p.American()
			implied, _ := p.Implied()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "input:    %s (%s)\n", args[0], p.Format)
			fmt.Fprintf(out, "decimal:  %s\n", report.Decimal(dec))
			fmt.Fprintf(out, "American: %s\n", report.American(am))
			fmt.Fprintf(out, "implied:  %s\n", report.Percent(implied))
			return nil
		},
	}
}

func newHistoryCmd(cfg *config.Config) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent journaled evaluations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive, got %d", limit)
			}
			if cfg.DBPath == "" {
				return fmt.Errorf("DB_PATH is required for history")
			}
			db, err := history.NewDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("opening journal: %w", err)
			}
			defer db.Close()

			evals, err := db.RecentEvaluations(limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(evals) == 0 {
				fmt.Fprintln(out, "no evaluations recorded")
				return nil
			}
			for _, e := range evals {
				fmt.Fprintf(out, "%s  %s  offered=%s fair=%s dec=%s kelly=%s stake=%s\n",
					e.CreatedAt.Format("2006-01-02 15:04:05"), e.ID, e.Offered,
					report.Percent(e.FairProb), report.Decimal(e.FairDecimal),
					report.Percent(e.FullKelly), report.Percent(e.FractionalKelly))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", cfg.HistoryLimit, "number of evaluations to show")
	return cmd
}
