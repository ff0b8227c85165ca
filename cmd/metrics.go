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

type metricsCmd struct {
	timeRange  string
	investment float64
}

func (*metricsCmd) Name() string     { return "metrics" }
func (*metricsCmd) Synopsis() string { return "display portfolio performance metrics" }
func (*metricsCmd) Usage() string {
	return `nwt metrics [-r <range>] [-investment <amount>]

  Computes total return, return percentage, and peak/trough values over the
  selected range (default: the configured one). The return baseline is the
  net invested capital derived from the transactions, unless -investment
  overrides it.
`
}

func (c *metricsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.timeRange, "r", "", "Named time range (1W, 1M, 3M, 6M, 1Y, 2Y, 5Y).")
	f.Float64Var(&c.investment, "investment", 0, "Total invested capital baseline. Overrides the derived one.")
}

func (c *metricsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	name := c.timeRange
	if name == "" {
		name = cfg.DefaultRange
	}
	r, err := networth.ParseTimeRange(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	history := networth.CalculatePortfolioHistoryForRange(txs, defs, r)
	if len(history) == 0 {
		fmt.Println("no portfolio history available")
		return subcommands.ExitSuccess
	}

	investment := c.investment
	if investment == 0 {
		investment = networth.InvestedCapital(txs, networth.Today())
	}
	m := networth.CalculatePerformanceMetrics(history, investment)

	printMarkdown(metricsMarkdown(m, r, cfg.Currency))
	return subcommands.ExitSuccess
}

// metricsMarkdown renders performance metrics as a markdown table.
func metricsMarkdown(m networth.PerformanceMetrics, r networth.TimeRange, currency string) string {
	money := func(v float64) string { return networth.M(v, currency).String() }
	var b strings.Builder
	fmt.Fprintf(&b, "# Performance (%s)\n\n", r)
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(&b, "| Start value | %s |\n", money(m.StartValue))
	fmt.Fprintf(&b, "| End value | %s |\n", money(m.EndValue))
	fmt.Fprintf(&b, "| Peak value | %s |\n", money(m.PeakValue))
	fmt.Fprintf(&b, "| Lowest value | %s |\n", money(m.LowestValue))
	fmt.Fprintf(&b, "| Total return | %s |\n", networth.M(m.TotalReturn, currency).SignedString())
	fmt.Fprintf(&b, "| Total return %% | %s |\n", m.TotalReturnPercentage.SignedString())
	return b.String()
}
