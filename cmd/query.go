package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/etnz/finance"
	"github.com/google/subcommands"
)

type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "evaluate a JSONPath expression on the ledger" }
func (*queryCmd) Usage() string {
	return `fin query <jsonpath>

  Evaluates a JSONPath expression on the document produced by 'fin export'
  and prints the result as JSON. For instance:

    fin query '$.entries[?(@.kind == "expense")].amount'
`
}

func (c *queryCmd) SetFlags(f *flag.FlagSet) {}

func (c *queryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: query takes exactly one JSONPath expression")
		return subcommands.ExitUsageError
	}

	store, err := OpenStore("")
	if err != nil {
		fmt.Fprintf(stderr, "Error opening ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer store.Discard()

	v, err := finance.Query(store.Ledger, f.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	out, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(stderr, "Error encoding result: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(stdout, string(out))
	return subcommands.ExitSuccess
}
