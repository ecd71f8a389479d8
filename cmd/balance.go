package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/finance/renderer"
	"github.com/google/subcommands"
)

type balanceCmd struct{}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "display the current balance" }
func (*balanceCmd) Usage() string {
	return `fin balance

  Displays the current balance and when it was last updated.
`
}

func (c *balanceCmd) SetFlags(f *flag.FlagSet) {}

func (c *balanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := OpenStore("")
	if err != nil {
		fmt.Fprintf(stderr, "Error opening ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer store.Discard()

	balance, err := store.CurrentBalance()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(stdout, renderer.Balance(balance, currency))
	return subcommands.ExitSuccess
}
