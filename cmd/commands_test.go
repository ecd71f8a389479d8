package cmd

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/etnz/finance"
	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLedger = `income,2024-01-01 09:00,work,100.00
expense,2024-01-01 09:00,food,12.50
balance,2024-01-01 09:00,balance,87.50
`

func TestAddCommands(t *testing.T) {
	path := setupLedger(t, "")

	status, out, _ := run(t, &addCmd{kind: finance.Income}, "-label", "work", "-amount", "100")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Equal(t, "Added income work on 2024-01-01 09:00: $100.00\n", out)

	status, out, _ = run(t, &addCmd{kind: finance.Expense}, "-label", "food", "-amount", "12.509")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Equal(t, "Added expense food on 2024-01-01 09:00: $12.50\n", out)

	assert.Equal(t, sampleLedger, readFile(t, path))
}

func TestAddCommand_Errors(t *testing.T) {
	path := setupLedger(t, sampleLedger)

	testCases := []struct {
		name   string
		args   []string
		status subcommands.ExitStatus
		errMsg string
	}{
		{"not a number", []string{"-label", "food", "-amount", "abc"}, subcommands.ExitUsageError, `invalid amount "abc"`},
		{"zero", []string{"-label", "food", "-amount", "0"}, subcommands.ExitFailure, "must be positive"},
		{"comma in label", []string{"-label", "food,drinks", "-amount", "3"}, subcommands.ExitFailure, "cannot contain a comma"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, _, errOut := run(t, &addCmd{kind: finance.Expense}, tc.args...)
			assert.Equal(t, tc.status, status)
			assert.Contains(t, errOut, tc.errMsg)
		})
	}

	assert.Equal(t, sampleLedger, readFile(t, path), "failed additions must not modify the ledger")
}

func TestAddCommand_Sign(t *testing.T) {
	setupLedger(t, "")

	status, out, _ := run(t, &addCmd{kind: finance.Expense}, "-label", "food", "-amount", "-12.50")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Equal(t, "Added expense food on 2024-01-01 09:00: $12.50\n", out)

	status, _, errOut := run(t, &addCmd{kind: finance.Income}, "-label", "work", "-amount", "-100")
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, errOut, "must be positive")
}

func TestRemoveCommand(t *testing.T) {
	path := setupLedger(t, sampleLedger)

	status, _, errOut := run(t, &removeCmd{}, "-kind", "expense", "-index", "0")
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, errOut, "invalid index 0")

	status, _, _ = run(t, &removeCmd{}, "-kind", "balance", "-index", "2")
	assert.Equal(t, subcommands.ExitFailure, status)

	status, _, _ = run(t, &removeCmd{}, "-kind", "savings")
	assert.Equal(t, subcommands.ExitUsageError, status)

	status, out, _ := run(t, &removeCmd{}, "-kind", "income", "-index", "0")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Equal(t, "Removed income work of $100.00\n", out)

	want := `expense,2024-01-01 09:00,food,12.50
balance,2024-01-01 09:00,balance,-12.50
`
	assert.Equal(t, want, readFile(t, path))
}

func TestBalanceCommand(t *testing.T) {
	setupLedger(t, sampleLedger)

	status, out, _ := run(t, &balanceCmd{})
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "Last updated: 2024-01-01 09:00")
	assert.Contains(t, out, "Balance: **$87.50**")
}

func TestBalanceCommand_NewLedger(t *testing.T) {
	setupLedger(t, "")

	status, out, _ := run(t, &balanceCmd{})
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "Balance: **$0.00**")
}

func TestListCommand(t *testing.T) {
	setupLedger(t, sampleLedger)

	status, out, _ := run(t, &listCmd{})
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "| 0 | INCOME | 2024-01-01 09:00 | WORK | $100.00 |")
	assert.Contains(t, out, "| 1 | EXPENSE | 2024-01-01 09:00 | FOOD | $12.50 |")
	assert.NotContains(t, out, "BALANCE")

	status, out, _ = run(t, &listCmd{}, "-kind", "expense")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.NotContains(t, out, "WORK")
	assert.Contains(t, out, "| 1 | EXPENSE |")

	status, out, _ = run(t, &listCmd{}, "-label", "FOOD")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.NotContains(t, out, "WORK")

	status, out, _ = run(t, &listCmd{}, "-tail", "1")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.NotContains(t, out, "WORK")
	assert.Contains(t, out, "FOOD")

	status, out, _ = run(t, &listCmd{}, "-label", "rent")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "No transactions.")
}

func TestListCommand_UsageErrors(t *testing.T) {
	setupLedger(t, sampleLedger)

	status, _, _ := run(t, &listCmd{}, "-head", "1", "-tail", "1")
	assert.Equal(t, subcommands.ExitUsageError, status)

	status, _, _ = run(t, &listCmd{}, "-kind", "balance")
	assert.Equal(t, subcommands.ExitUsageError, status)
}

func TestSummaryCommand(t *testing.T) {
	setupLedger(t, sampleLedger)

	status, out, _ := run(t, &summaryCmd{})
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "| Income | 1 | $100.00 |")
	assert.Contains(t, out, "| Expense | 1 | $12.50 |")
	assert.Contains(t, out, "| **Net** | | **$87.50** |")
	assert.Contains(t, out, "Balance: **$87.50**")

	status, out, _ = run(t, &summaryCmd{}, "-label", "food")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "| Income | 0 | $0.00 |")
	assert.NotContains(t, out, "Balance:")
}

func TestCheckCommand(t *testing.T) {
	setupLedger(t, sampleLedger)
	status, out, _ := run(t, &checkCmd{})
	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "Ledger is consistent")

	setupLedger(t, "expense,2024-01-01 09:00,food,12.50\nbalance,2024-01-01 09:00,balance,-10.00\n")
	status, out, _ = run(t, &checkCmd{})
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, out, "Ledger is **inconsistent**")
}

func TestFormatLedgerCommand(t *testing.T) {
	path := setupLedger(t, ` Expense ,2024-01-01 09:00, food ,12.5

bad line
balance,2024-01-01 09:00,balance,-12.5
`)

	status, out, _ := run(t, &formatLedgerCmd{})
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "has been formatted")

	want := `expense,2024-01-01 09:00,food,12.50
balance,2024-01-01 09:00,balance,-12.50
`
	assert.Equal(t, want, readFile(t, path))
}

func TestExportCommand(t *testing.T) {
	setupLedger(t, sampleLedger)

	status, out, _ := run(t, &exportCmd{})
	require.Equal(t, subcommands.ExitSuccess, status)
	want := `{"entries":[` +
		`{"index":0,"kind":"income","time":"2024-01-01 09:00","label":"work","amount":100.00},` +
		`{"index":1,"kind":"expense","time":"2024-01-01 09:00","label":"food","amount":12.50}],` +
		`"balance":{"time":"2024-01-01 09:00","amount":87.50}}` + "\n"
	assert.Equal(t, want, out)

	output := filepath.Join(t.TempDir(), "ledger.yaml")
	status, out, _ = run(t, &exportCmd{}, "-format", "yaml", "-o", output)
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Empty(t, out)
	assert.Contains(t, readFile(t, output), "label: food")

	status, _, _ = run(t, &exportCmd{}, "-format", "xml")
	assert.Equal(t, subcommands.ExitUsageError, status)
}

func TestExportFile_CloseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	l := finance.NewLedger()

	// closing the file early makes the final close fail.
	early := func(w io.Writer, l *finance.Ledger) error {
		if err := finance.ExportJSON(w, l); err != nil {
			return err
		}
		return w.(io.Closer).Close()
	}
	err := exportFile(path, l, early)
	assert.ErrorContains(t, err, "cannot close output file")

	require.NoError(t, exportFile(path, l, finance.ExportJSON))
	assert.Contains(t, readFile(t, path), `"balance"`)

	err = exportFile(filepath.Join(t.TempDir(), "missing", "ledger.json"), l, finance.ExportJSON)
	assert.ErrorContains(t, err, "cannot create output file")
}

func TestQueryCommand(t *testing.T) {
	setupLedger(t, sampleLedger)

	status, out, _ := run(t, &queryCmd{}, "$.balance.amount")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Equal(t, "87.5\n", out)

	status, out, _ = run(t, &queryCmd{}, `$.entries[?(@.kind == "income")].label`)
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Equal(t, "\"work\"\n", out)

	status, _, _ = run(t, &queryCmd{})
	assert.Equal(t, subcommands.ExitUsageError, status)

	status, _, errOut := run(t, &queryCmd{}, "$.entries[?(")
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, errOut, "invalid argument")
}

func TestTopicCommand(t *testing.T) {
	status, out, _ := run(t, &topicCmd{})
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "# fin")

	status, _, _ = run(t, &topicCmd{}, "no-such-topic")
	assert.Equal(t, subcommands.ExitFailure, status)
}
