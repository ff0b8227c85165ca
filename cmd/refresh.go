package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/nboul/networth"
	"github.com/nboul/networth/advisor"
)

type refreshCmd struct {
	advisor bool
}

func (*refreshCmd) Name() string     { return "refresh" }
func (*refreshCmd) Synopsis() string { return "recompute and persist the portfolio history" }
func (*refreshCmd) Usage() string {
	return `nwt refresh [-advisor]

  Re-reads the asset and transaction files, replays the full history and
  every named range, and replaces the stored series. -advisor additionally
  initializes the recommendation engine (requires Gemini credentials in
  the environment).
`
}

func (c *refreshCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.advisor, "advisor", false, "Also initialize the recommendation engine.")
}

func (c *refreshCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	s, err := openStore(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	w := networth.NewWorker()
	defer w.Close()

	r := networth.Refresher{
		Entities: fileEntityStore{},
		Store:    s,
		Worker:   w,
	}
	if c.advisor {
		r.Advisor = advisor.New(cfg.AdvisorModel)
	}

	if err := r.RefreshAll(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Refresh finished with errors: %v\n", err)
		return subcommands.ExitFailure
	}

	info, err := s.SizeInfo()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Refreshed %d daily points in %s\n", info.DailyRows, cfg.StorePath)
	return subcommands.ExitSuccess
}

// fileEntityStore serves base entities from the JSONL files named on the
// command line. The secondary entities have no file representation yet and
// read back empty.
type fileEntityStore struct{}

func (fileEntityStore) Transactions(ctx context.Context) ([]networth.Transaction, error) {
	return loadTransactions()
}

func (fileEntityStore) AssetDefinitions(ctx context.Context) ([]*networth.AssetDefinition, error) {
	return loadAssets()
}

func (fileEntityStore) Categories(ctx context.Context) ([]networth.Category, error) {
	return nil, nil
}

func (fileEntityStore) Liabilities(ctx context.Context) ([]networth.Liability, error) {
	return nil, nil
}

func (fileEntityStore) Expenses(ctx context.Context) ([]networth.Expense, error) {
	return nil, nil
}

func (fileEntityStore) IncomeSources(ctx context.Context) ([]networth.IncomeSource, error) {
	return nil, nil
}
