package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type formatLedgerCmd struct{}

func (*formatLedgerCmd) Name() string     { return "format-ledger" }
func (*formatLedgerCmd) Synopsis() string { return "formats the ledger file into a canonical form" }
func (*formatLedgerCmd) Usage() string {
	return `fin format-ledger

  Rewrites the ledger file in its canonical form: amounts with two decimals,
  minute precision timestamps, and malformed lines dropped.
`
}

func (c *formatLedgerCmd) SetFlags(f *flag.FlagSet) {}

func (c *formatLedgerCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := OpenStore("")
	if err != nil {
		fmt.Fprintf(stderr, "Error opening ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	// Close rewrites the whole file.
	if err := store.Close(); err != nil {
		fmt.Fprintf(stderr, "Error encoding ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(stdout, "Ledger file '%s' has been formatted.\n", ledgerFile)
	return subcommands.ExitSuccess
}
