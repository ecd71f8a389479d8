package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/finance"
	"github.com/google/subcommands"
)

type exportCmd struct {
	format string
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the ledger as JSON or YAML" }
func (*exportCmd) Usage() string {
	return `fin export [-format <json|yaml>] [-o <file>]

  Exports all transactions, with their index, and the current balance.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "json", "Output format (json or yaml)")
	f.StringVar(&c.output, "o", "", "Output file. Defaults to the standard output.")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var export func(io.Writer, *finance.Ledger) error
	switch c.format {
	case "json":
		export = finance.ExportJSON
	case "yaml":
		export = finance.ExportYAML
	default:
		fmt.Fprintf(stderr, "Error: unknown format %q\n", c.format)
		return subcommands.ExitUsageError
	}

	store, err := OpenStore("")
	if err != nil {
		fmt.Fprintf(stderr, "Error opening ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer store.Discard()

	if c.output == "" {
		if err := export(stdout, store.Ledger); err != nil {
			fmt.Fprintf(stderr, "Error exporting ledger: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	if err := exportFile(c.output, store.Ledger, export); err != nil {
		fmt.Fprintf(stderr, "Error exporting ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// exportFile writes the export of l to the file at path. Closing the file is
// part of the export, its failure is reported.
func exportFile(path string, l *finance.Ledger, export func(io.Writer, *finance.Ledger) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create output file %q: %w", path, err)
	}
	err = export(file, l)
	if cerr := file.Close(); cerr != nil {
		err = errors.Join(err, fmt.Errorf("cannot close output file %q: %w", path, cerr))
	}
	return err
}
