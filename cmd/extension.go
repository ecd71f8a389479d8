package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/rs/zerolog/log"
)

const (
	EnvLedgerFile = "FINANCE_LEDGER_FILE"
	EnvCurrency   = "FINANCE_CURRENCY"
	EnvVerbose    = "FINANCE_VERBOSE"
	EnvLogFormat  = "FINANCE_LOG_FORMAT"
	EnvTestingNow = "FINANCE_TESTING_NOW"
)

// RunExtension attempts to find and execute an external fin-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := "fin-" + subcommand

	lp, err := exec.LookPath(name)
	if err != nil {
		log.Debug().Err(err).Str("command", name).Msg("external command not found in PATH")
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	// Pass global flags as environment variables
	cmd.Env = append(os.Environ(),
		EnvLedgerFile+"="+ledgerFile,
		EnvCurrency+"="+currency,
		EnvVerbose+"="+strconv.FormatBool(verbose),
	)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
