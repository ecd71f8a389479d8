package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/finance"
	"github.com/etnz/finance/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	label string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display income and expense totals" }
func (*summaryCmd) Usage() string {
	return `fin summary [-label <category>]

  Displays the total income, total expenses and net amount of the ledger.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.label, "label", "", "Only sum up transactions of this category, case insensitive")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	// The balance is meaningless for a single category.
	var balance *finance.Entry
	if c.label == "" {
		if b, err := store.CurrentBalance(); err == nil {
			balance = &b
		}
	}

	printMarkdown(stdout, renderer.Summary(store.Totals(preds...), balance, currency))
	return subcommands.ExitSuccess
}
