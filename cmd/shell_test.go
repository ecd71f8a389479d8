package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/etnz/finance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(s string) time.Time {
	t, err := time.ParseInLocation(finance.TimeLayout, s, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

// runShell plays script on a shell over a ledger holding content.
func runShell(t *testing.T, content, script string) (*finance.Store, string) {
	t.Helper()
	now := at("2024-01-01 09:00")
	store := finance.Open(finance.NewMemoryBackend(content), finance.WithClock(func() time.Time { return now }))

	var out bytes.Buffer
	sh := NewShell(store, strings.NewReader(script), &out, "USD")
	require.NoError(t, sh.Run())
	return store, out.String()
}

func TestShell_Session(t *testing.T) {
	script := strings.Join([]string{
		"1", "food", "12.50", // add expense
		"5",                  // balance
		"6",                  // list
		"3", "0",             // remove expense 0
		"5", // balance
		"7", // exit
	}, "\n") + "\n"

	store, out := runShell(t, "", script)

	assert.Contains(t, out, "Expense added successfully")
	assert.Contains(t, out, "Balance: **-$12.50**")
	assert.Contains(t, out, "| 0 | EXPENSE | 2024-01-01 09:00 | FOOD | $12.50 |")
	assert.Contains(t, out, "# Expenses")
	assert.Contains(t, out, "Transaction removed.")
	assert.Contains(t, out, "Balance: **$0.00**")
	assert.NotContains(t, out, "\033[H\033[2J", "a non interactive shell must not clear the screen")

	assert.Equal(t, 1, store.Len())
	balance, err := store.CurrentBalance()
	require.NoError(t, err)
	assert.True(t, balance.Amount.IsZero())
}

func TestShell_AddIncome(t *testing.T) {
	store, out := runShell(t, "", "2\nwork\n100\n7\n")

	assert.Contains(t, out, "Income added successfully")
	balance, err := store.CurrentBalance()
	require.NoError(t, err)
	assert.Equal(t, "100.00", balance.Amount.StringFixed(2))
}

func TestShell_NegativeAmounts(t *testing.T) {
	store, out := runShell(t, "", "1\nfood\n-12.50\n2\nwork\n-100\n7\n")

	assert.Contains(t, out, "Expense added successfully")
	assert.Contains(t, out, "income must be positive")
	balance, err := store.CurrentBalance()
	require.NoError(t, err)
	assert.Equal(t, "-12.50", balance.Amount.StringFixed(2))
	assert.Equal(t, 2, store.Len())
}

func TestShell_InvalidInputs(t *testing.T) {
	testCases := []struct {
		name   string
		script string
		want   string
	}{
		{"choice not a number", "abc\n7\n", "Input must be an integer."},
		{"choice out of range", "9\n7\n", "Choice must be between 1-7"},
		{"amount not a number", "1\nfood\nabc\n7\n", "Amount must be a number."},
		{"amount not positive", "2\nwork\n0\n7\n", "must be positive"},
		{"comma in category", "1\nfood,drinks\n3\n7\n", "cannot contain a comma"},
		{"index not a number", "3\nfirst\n7\n", "Index must be a number."},
		{"nothing to remove", "4\n0\n7\n", "no entries of kind income"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store, out := runShell(t, "", tc.script)
			assert.Contains(t, out, tc.want)
			assert.Equal(t, 1, store.Len(), "the ledger must be left untouched")
		})
	}
}

func TestShell_RemoveIndexOfOtherKind(t *testing.T) {
	content := `income,2024-01-01 08:00,work,100.00
expense,2024-01-01 08:30,food,12.50
balance,2024-01-01 08:30,balance,87.50
`
	store, out := runShell(t, content, "3\n0\n3\n1\n7\n")

	assert.Contains(t, out, "invalid index 0")
	assert.Contains(t, out, "Transaction removed.")
	assert.Equal(t, 2, store.Len())
}

func TestShell_InvalidStateDisablesChanges(t *testing.T) {
	// no trailing balance row.
	content := "expense,2024-01-01 08:00,food,12.50\n"
	store, out := runShell(t, content, "1\nfood\n5\n2\n6\n7\n")

	assert.Contains(t, out, "invalid ledger state")
	assert.Contains(t, out, "Changes are disabled")
	assert.Contains(t, out, "| 0 | EXPENSE |", "viewing is still allowed")
	assert.Equal(t, 1, store.Len())
}

func TestShell_EndOfInput(t *testing.T) {
	store, out := runShell(t, "", "1\nfood\n")

	assert.Contains(t, out, "Enter amount: ")
	assert.Equal(t, 1, store.Len())
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestShell_ReadError(t *testing.T) {
	store := finance.Open(finance.NewMemoryBackend(""))
	var out bytes.Buffer
	err := NewShell(store, failingReader{}, &out, "USD").Run()
	assert.ErrorContains(t, err, "broken pipe")
}

func TestShell_Interactive(t *testing.T) {
	store := finance.Open(finance.NewMemoryBackend(""))
	var out bytes.Buffer
	sh := NewShell(store, strings.NewReader("5\n\n7\n"), &out, "USD")
	sh.Interactive = true
	require.NoError(t, sh.Run())

	assert.Contains(t, out.String(), "\033[H\033[2J")
	assert.Contains(t, out.String(), "Press [ENTER] to continue...")
}
