package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/finance/renderer"
	"github.com/google/subcommands"
)

type checkCmd struct{}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "verify that the balance matches the transactions" }
func (*checkCmd) Usage() string {
	return `fin check

  Recomputes the balance from all transactions and compares it to the
  recorded one. Exits with a failure status when they differ.
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {}

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := OpenStore("")
	if err != nil {
		fmt.Fprintf(stderr, "Error opening ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer store.Discard()

	verr := store.Verify()
	printMarkdown(stdout, renderer.Check(verr, store.Totals(), currency))
	if verr != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
