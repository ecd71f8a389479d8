package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/finance"
	"github.com/etnz/finance/renderer"
	"github.com/google/subcommands"
)

type listCmd struct {
	kind  string
	label string
	head  int
	tail  int
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list transactions in the ledger" }
func (*listCmd) Usage() string {
	return `fin list [-kind <all|expense|income>] [-label <category>] [-head <n>] [-tail <n>]

  Lists transactions from the ledger, with their index, in chronological order.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "kind", "all", "Kind of transactions to list (all, expense or income)")
	f.StringVar(&c.label, "label", "", "Only list transactions of this category, case insensitive")
	f.IntVar(&c.head, "head", 0, "Show only the first N transactions.")
	f.IntVar(&c.tail, "tail", 0, "Show only the last N transactions.")
}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.head > 0 && c.tail > 0 {
		fmt.Fprintln(stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}
	kind, err := finance.ParseKind(c.kind)
	if err != nil || kind == finance.Balance {
		fmt.Fprintf(stderr, "Error: invalid kind %q\n", c.kind)
		return subcommands.ExitUsageError
	}

	store, err := OpenStore("")
	if err != nil {
		fmt.Fprintf(stderr, "Error opening ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer store.Discard()

	var preds []func(finance.Entry) bool
	if c.label != "" {
		preds = append(preds, finance.ByLabel(c.label))
	}
	rows := renderer.Rows(store.Select(kind, preds...))

	if c.head > 0 && len(rows) > c.head {
		rows = rows[:c.head]
	}
	if c.tail > 0 && len(rows) > c.tail {
		rows = rows[len(rows)-c.tail:]
	}

	printMarkdown(stdout, renderer.Transactions("Transactions", rows, currency))
	return subcommands.ExitSuccess
}
