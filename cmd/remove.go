package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/finance"
	"github.com/google/subcommands"
)

type removeCmd struct {
	kind  string
	index int
}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "remove a transaction by its index" }
func (*removeCmd) Usage() string {
	return `fin remove -kind <expense|income> -index <n>

  Removes the transaction at index n. The index is the one displayed by
  'fin list', and must designate a transaction of the given kind.
`
}

func (c *removeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "kind", "expense", "Kind of the transaction to remove (expense or income)")
	f.IntVar(&c.index, "index", -1, "Index of the transaction to remove")
}

func (c *removeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	kind, err := finance.ParseKind(c.kind)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	store, err := OpenStore("")
	if err != nil {
		fmt.Fprintf(stderr, "Error opening ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	e, err := store.Remove(c.index, kind)
	if err != nil {
		fmt.Fprintf(stderr, "Error removing transaction: %v\n", err)
		store.Discard()
		return subcommands.ExitFailure
	}
	if err := store.Close(); err != nil {
		fmt.Fprintf(stderr, "Error saving ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(stdout, "Removed %s %s of %s\n", e.Kind, e.Label, finance.FormatAmount(e.Amount, currency))
	return subcommands.ExitSuccess
}
