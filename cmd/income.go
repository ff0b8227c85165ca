package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/google/subcommands"

	"github.com/nboul/networth"
)

type incomeCmd struct{}

func (*incomeCmd) Name() string     { return "income" }
func (*incomeCmd) Synopsis() string { return "project passive income from current holdings" }
func (*incomeCmd) Usage() string {
	return `nwt income

  Projects the dividend, rental, and interest income the currently held
  positions are expected to produce, per asset and in total.
`
}

func (*incomeCmd) SetFlags(f *flag.FlagSet) {}

func (c *incomeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	proj := networth.ProjectIncome(txs, defs)
	printMarkdown(incomeMarkdown(proj, defs, cfg.Currency))
	return subcommands.ExitSuccess
}

// incomeMarkdown renders an income projection as a markdown table, assets
// sorted by ticker for a stable layout.
func incomeMarkdown(proj networth.IncomeProjection, defs []*networth.AssetDefinition, currency string) string {
	byID := make(map[string]*networth.AssetDefinition, len(defs))
	for _, def := range defs {
		byID[def.ID] = def
	}
	ids := make([]string, 0, len(proj.ByAsset))
	for id := range proj.ByAsset {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := ids[i], ids[j]
		if da, ok := byID[a]; ok {
			a = da.Ticker
		}
		if db, ok := byID[b]; ok {
			b = db.Ticker
		}
		return a < b
	})

	money := func(v float64) string { return networth.M(v, currency).String() }
	var b strings.Builder
	b.WriteString("# Passive Income Projection\n\n")
	b.WriteString("| Asset | Annual |\n")
	b.WriteString("|-------|--------|\n")
	for _, id := range ids {
		name := id
		if def, ok := byID[id]; ok {
			name = def.Ticker
		}
		fmt.Fprintf(&b, "| %s | %s |\n", name, money(proj.ByAsset[id]))
	}
	fmt.Fprintf(&b, "\nMonthly: %s, Annual: %s\n", money(proj.Monthly), money(proj.Annual))
	return b.String()
}
