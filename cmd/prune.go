package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/nboul/networth"
)

type pruneCmd struct {
	before string
}

func (*pruneCmd) Name() string     { return "prune" }
func (*pruneCmd) Synopsis() string { return "delete stored history older than a date" }
func (*pruneCmd) Usage() string {
	return `nwt prune -before <date>

  Deletes all daily and intraday rows dated strictly before the given
  date (YYYY-MM-DD).
`
}

func (c *pruneCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.before, "before", "", "Cutoff date. Rows strictly before it are deleted.")
}

func (c *pruneCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.before == "" {
		fmt.Fprintln(os.Stderr, "prune requires -before")
		return subcommands.ExitUsageError
	}
	cutoff, err := networth.ParseDate(c.before)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

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

	if err := s.Prune(cutoff.String()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Pruned rows before %s\n", cutoff)
	return subcommands.ExitSuccess
}
