package cmd

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/require"
)

// setupLedger points the application at a ledger file in a temporary
// directory, holding content, with a frozen clock.
func setupLedger(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transactions.csv")
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	t.Setenv(EnvTestingNow, "2024-01-01 09:00")

	oldLedgerFile, oldCurrency := ledgerFile, currency
	ledgerFile, currency = path, "USD"
	t.Cleanup(func() { ledgerFile, currency = oldLedgerFile, oldCurrency })
	return path
}

// run executes c with args and returns its status and outputs.
func run(t *testing.T, c subcommands.Command, args ...string) (subcommands.ExitStatus, string, string) {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	require.NoError(t, f.Parse(args))

	var out, errOut bytes.Buffer
	oldStdout, oldStderr := stdout, stderr
	stdout, stderr = &out, &errOut
	defer func() { stdout, stderr = oldStdout, oldStderr }()

	status := c.Execute(context.Background(), f)
	return status, out.String(), errOut.String()
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}
