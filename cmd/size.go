package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

type sizeCmd struct{}

func (*sizeCmd) Name() string     { return "size" }
func (*sizeCmd) Synopsis() string { return "report how much data the history store holds" }
func (*sizeCmd) Usage() string {
	return `nwt size

  Reports row counts for both tables and the date span the store covers.
`
}

func (*sizeCmd) SetFlags(f *flag.FlagSet) {}

func (c *sizeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	info, err := s.SizeInfo()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	b.WriteString("# Store Size\n\n")
	b.WriteString("| | |\n")
	b.WriteString("|---|---|\n")
	fmt.Fprintf(&b, "| Daily rows | %d |\n", info.DailyRows)
	fmt.Fprintf(&b, "| Intraday rows | %d |\n", info.IntradayRows)
	fmt.Fprintf(&b, "| Total rows | %d |\n", info.TotalRows)
	if info.OldestDate != "" {
		fmt.Fprintf(&b, "| Oldest date | %s |\n", info.OldestDate)
		fmt.Fprintf(&b, "| Newest date | %s |\n", info.NewestDate)
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
