package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/finance"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// addCmd adds an expense or an income, depending on kind.
type addCmd struct {
	kind   finance.Kind
	label  string
	amount string
}

func (c *addCmd) Name() string     { return "add-" + c.kind.String() }
func (c *addCmd) Synopsis() string { return "record a new " + c.kind.String() }
func (c *addCmd) Usage() string {
	return fmt.Sprintf(`fin %s -label <category> -amount <amount>

  Records a new %s at the current time. The amount is positive, and rounded
  down to the cent. An expense may be given with its minus sign.
`, c.Name(), c.kind)
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.label, "label", "", "Category of the "+c.kind.String())
	f.StringVar(&c.amount, "amount", "", "Amount of the "+c.kind.String())
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	amount, err := decimal.NewFromString(c.amount)
	if err != nil {
		fmt.Fprintf(stderr, "Error: invalid amount %q\n", c.amount)
		return subcommands.ExitUsageError
	}
	if c.kind == finance.Expense {
		amount = amount.Abs()
	}

	store, err := OpenStore("")
	if err != nil {
		fmt.Fprintf(stderr, "Error opening ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	e, err := store.Add(c.kind, c.label, amount)
	if err != nil {
		fmt.Fprintf(stderr, "Error adding %s: %v\n", c.kind, err)
		store.Discard()
		return subcommands.ExitFailure
	}
	if err := store.Close(); err != nil {
		fmt.Fprintf(stderr, "Error saving ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(stdout, "Added %s %s on %s: %s\n", c.kind, e.Label, e.Time.Format(finance.TimeLayout), finance.FormatAmount(e.Amount, currency))
	return subcommands.ExitSuccess
}
