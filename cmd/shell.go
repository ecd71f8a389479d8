package cmd

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/finance"
	"github.com/etnz/finance/renderer"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const menu = `***********MENU***********
1. Add Expense
2. Add Income
3. Remove Expense
4. Remove Income
5. Check Balance
6. View Transactions
7. Exit
**************************
`

// Shell is the interactive menu over a ledger store.
type Shell struct {
	store    *finance.Store
	in       *bufio.Scanner
	out      io.Writer
	currency string

	// Interactive clears the screen before each menu and waits for [ENTER] after each action.
	Interactive bool

	// broken is the invalid state error that disabled changes.
	broken error
}

// NewShell returns a shell reading choices from in and writing to out.
func NewShell(store *finance.Store, in io.Reader, out io.Writer, currency string) *Shell {
	return &Shell{
		store:    store,
		in:       bufio.NewScanner(in),
		out:      out,
		currency: currency,
	}
}

// Run loops over the menu until the user exits or the input ends.
// It does not save the store.
func (s *Shell) Run() error {
	for {
		s.clear()
		choice, ok := s.choice()
		if !ok {
			return s.in.Err()
		}

		switch choice {
		case 1:
			s.add(finance.Expense)
		case 2:
			s.add(finance.Income)
		case 3:
			s.remove(finance.Expense)
		case 4:
			s.remove(finance.Income)
		case 5:
			s.clear()
			s.balance()
		case 6:
			s.clear()
			printMarkdown(s.out, renderer.Transactions("Transactions", renderer.Rows(s.store.Entries(finance.All)), s.currency))
		case 7:
			return nil
		}

		if s.Interactive {
			if _, ok := s.prompt("Press [ENTER] to continue..."); !ok {
				return s.in.Err()
			}
		}
	}
}

// choice reads a menu choice until it is valid. It returns false at the end of input.
func (s *Shell) choice() (int, bool) {
	for {
		fmt.Fprintln(s.out, menu)
		line, ok := s.prompt("Enter your choice: ")
		if !ok {
			return 0, false
		}
		choice, err := strconv.Atoi(strings.TrimSpace(line))
		switch {
		case err != nil:
			s.clear()
			fmt.Fprintln(s.out, "Input must be an integer.")
		case choice < 1 || choice > 7:
			s.clear()
			fmt.Fprintln(s.out, "Choice must be between 1-7")
		default:
			return choice, true
		}
	}
}

func (s *Shell) add(kind finance.Kind) {
	s.clear()
	if s.disabled() {
		return
	}
	label, ok := s.prompt("Enter category: ")
	if !ok {
		return
	}
	raw, ok := s.prompt("Enter amount: ")
	if !ok {
		return
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		fmt.Fprintln(s.out, "Amount must be a number.")
		return
	}
	if kind == finance.Expense {
		// expenses may be typed with their sign.
		amount = amount.Abs()
	}

	if _, err := s.store.Add(kind, label, amount); err != nil {
		s.fail(err)
		return
	}
	fmt.Fprintf(s.out, "%s added successfully\n", cases.Title(language.English).String(kind.String()))
}

func (s *Shell) remove(kind finance.Kind) {
	s.clear()
	if s.disabled() {
		return
	}
	// the listing is fetched right before the removal so that indices are current.
	title := "Expenses"
	if kind == finance.Income {
		title = "Income"
	}
	printMarkdown(s.out, renderer.Transactions(title, renderer.Rows(s.store.Entries(kind)), s.currency))

	raw, ok := s.prompt("Enter transaction index to remove: ")
	if !ok {
		return
	}
	index, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		fmt.Fprintln(s.out, "Index must be a number.")
		return
	}

	if _, err := s.store.Remove(index, kind); err != nil {
		s.fail(err)
		return
	}
	fmt.Fprintln(s.out, "Transaction removed.")
}

func (s *Shell) balance() {
	b, err := s.store.CurrentBalance()
	if err != nil {
		s.fail(err)
		return
	}
	printMarkdown(s.out, renderer.Balance(b, s.currency))
}

// fail reports err. An invalid state disables further changes.
func (s *Shell) fail(err error) {
	fmt.Fprintf(s.out, "Error: %v\n", err)
	if errors.Is(err, finance.ErrInvalidState) && s.broken == nil {
		log.Warn().Err(err).Msg("ledger is in an invalid state, changes are disabled")
		s.broken = err
	}
}

func (s *Shell) disabled() bool {
	if s.broken != nil {
		fmt.Fprintf(s.out, "Changes are disabled: %v\n", s.broken)
		return true
	}
	return false
}

// prompt prints msg and reads a line. It returns false at the end of input.
func (s *Shell) prompt(msg string) (string, bool) {
	fmt.Fprint(s.out, msg)
	if !s.in.Scan() {
		fmt.Fprintln(s.out)
		return "", false
	}
	return strings.TrimSuffix(s.in.Text(), "\r"), true
}

func (s *Shell) clear() {
	if s.Interactive {
		fmt.Fprint(s.out, "\033[H\033[2J")
	}
}

// RunShell runs the interactive shell on path, or on the application ledger file if path is empty.
// The ledger is saved when the shell exits.
func RunShell(path string) subcommands.ExitStatus {
	store, err := OpenStore(path)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading file: %v\n", err)
		return subcommands.ExitFailure
	}

	sh := NewShell(store, os.Stdin, stdout, currency)
	sh.Interactive = isTerminal(os.Stdin) && isTerminal(stdout)
	runErr := sh.Run()

	if err := errors.Join(runErr, store.Close()); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type shellCmd struct{}

func (*shellCmd) Name() string     { return "shell" }
func (*shellCmd) Synopsis() string { return "run the interactive menu" }
func (*shellCmd) Usage() string {
	return `fin shell [<file>]

  Runs the interactive menu on the ledger file. This is also what 'fin' does
  when called without a subcommand.
`
}

func (c *shellCmd) SetFlags(f *flag.FlagSet) {}

func (c *shellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 {
		fmt.Fprintln(stderr, "Error: shell takes at most one ledger file")
		return subcommands.ExitUsageError
	}
	return RunShell(f.Arg(0))
}
