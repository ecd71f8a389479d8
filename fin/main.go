// Command fin manages a personal finance ledger.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/etnz/finance/cmd"
	"github.com/google/subcommands"
)

func main() {
	cmd.Completion().Complete("fin")

	if err := cmd.LoadEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(int(subcommands.ExitFailure))
	}

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cmd.SetFlags(flag.CommandLine)
	cmd.Register(commander)
	flag.Parse()
	cmd.SetupLogging(os.Stderr)

	args := flag.Args()
	switch {
	case len(args) == 0:
		os.Exit(int(cmd.RunShell("")))
	case !cmd.IsCommand(args[0]):
		if found, code := cmd.RunExtension(args[0], args[1:]); found {
			os.Exit(code)
		}
		// fin <file> runs the shell on that file.
		if len(args) == 1 {
			os.Exit(int(cmd.RunShell(args[0])))
		}
	}

	os.Exit(int(commander.Execute(context.Background())))
}
