package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/nboul/networth"
)

type historyCmd struct {
	timeRange string
	days      int
	save      bool
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the portfolio value history" }
func (*historyCmd) Usage() string {
	return `nwt history [-r <range>] [-days <n>] [-save]

  Replays all transactions into a daily portfolio value series and renders
  it as a table. -r selects a named range (1W, 1M, 3M, 6M, 1Y, 2Y, 5Y);
  -days selects a custom day count and overrides -r; with neither, the full
  horizon from the earliest transaction is used. -save writes the series
  into the local history store.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.timeRange, "r", "", "Named time range (1W, 1M, 3M, 6M, 1Y, 2Y, 5Y).")
	f.IntVar(&c.days, "days", 0, "Custom day count ending today. Overrides -r.")
	f.BoolVar(&c.save, "save", false, "Persist the computed series into the history store.")
}

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defs, err := loadAssets()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	txs, err := loadTransactions()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var history []networth.HistoryPoint
	switch {
	case c.days > 0:
		history = networth.CalculatePortfolioHistoryForDays(txs, defs, c.days)
	case c.timeRange != "":
		r, err := networth.ParseTimeRange(c.timeRange)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		history = networth.CalculatePortfolioHistoryForRange(txs, defs, r)
	default:
		history = networth.CalculatePortfolioHistory(txs, defs)
	}

	if len(history) == 0 {
		fmt.Println("no portfolio history available")
		return subcommands.ExitSuccess
	}

	printMarkdown(historyMarkdown(history, cfg.Currency))

	if c.save {
		if err := saveHistory(cfg, history); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving history: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "Saved %d points to %s\n", len(history), cfg.StorePath)
	}
	return subcommands.ExitSuccess
}

// historyMarkdown renders a history series as a markdown table.
func historyMarkdown(history []networth.HistoryPoint, currency string) string {
	var b strings.Builder
	b.WriteString("# Portfolio History\n\n")
	b.WriteString("| Date | Value | Activity |\n")
	b.WriteString("|------|-------|----------|\n")
	for _, p := range networth.FormatForChart(history, currency) {
		activity := ""
		if p.HasTransactions {
			activity = fmt.Sprintf("%d transaction(s)", len(p.Transactions))
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", p.Date, p.FormattedValue, activity)
	}
	return b.String()
}

// saveHistory bulk-upserts a computed series into the history store.
func saveHistory(cfg Config, history []networth.HistoryPoint) error {
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	return networth.SaveDaily(s, history)
}
