// Package cmd implements the CLI application to manage a personal finance ledger.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/finance"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

// DefaultLedgerFile is the ledger used when neither a flag nor the environment names one.
const DefaultLedgerFile = "transactions.csv"

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(subcommands.HelpCommand(), "")
	c.Register(subcommands.FlagsCommand(), "")
	c.Register(subcommands.CommandsCommand(), "")

	for _, g := range commands() {
		for _, cmd := range g.cmds {
			c.Register(cmd, g.name)
		}
	}
}

type group struct {
	name string
	cmds []subcommands.Command
}

func commands() []group {
	return []group{
		{"ledger", []subcommands.Command{
			&shellCmd{},
			&addCmd{kind: finance.Expense},
			&addCmd{kind: finance.Income},
			&removeCmd{},
			&formatLedgerCmd{},
		}},
		{"reports", []subcommands.Command{
			&balanceCmd{},
			&listCmd{},
			&summaryCmd{},
			&checkCmd{},
		}},
		{"data", []subcommands.Command{
			&exportCmd{},
			&queryCmd{},
		}},
		{"help", []subcommands.Command{
			&topicCmd{},
		}},
	}
}

// IsCommand reports whether name is a registered subcommand.
func IsCommand(name string) bool {
	switch name {
	case "help", "flags", "commands":
		return true
	}
	for _, g := range commands() {
		for _, cmd := range g.cmds {
			if cmd.Name() == name {
				return true
			}
		}
	}
	return false
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr

	ledgerFile string
	currency   string
	verbose    bool
)

// SetFlags registers the global flags, their defaults coming from the environment.
// It must be called after LoadEnv.
func SetFlags(f *flag.FlagSet) {
	f.StringVar(&ledgerFile, "ledger-file", envOr(EnvLedgerFile, DefaultLedgerFile), "Path to the ledger file containing transactions (CSV format)")
	f.StringVar(&currency, "currency", envOr(EnvCurrency, finance.DefaultCurrency), "Currency code used to display amounts")
	f.BoolVar(&verbose, "v", envBool(EnvVerbose), "Enable debug logging")
}

// LoadEnv loads the given .env files into the environment, without overriding
// variables already set. Missing files are ignored. With no argument it loads ".env".
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("error loading %q: %w", file, err)
		}
	}
	return nil
}

// SetupLogging configures the global logger to write on w.
// Logs are human readable unless FINANCE_LOG_FORMAT is "json".
func SetupLogging(w io.Writer) {
	output := w
	if os.Getenv(EnvLogFormat) != "json" {
		output = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// OpenStore opens path, or the application ledger file if path is empty.
func OpenStore(path string) (*finance.Store, error) {
	if path == "" {
		path = ledgerFile
	}
	log.Debug().Str("file", path).Msg("opening ledger")
	return finance.OpenFile(path, options()...)
}

// options returns the ledger options derived from the environment.
func options() []finance.Option {
	now := os.Getenv(EnvTestingNow)
	if now == "" {
		return nil
	}
	t, err := time.ParseInLocation(finance.TimeLayout, now, time.Local)
	if err != nil {
		log.Warn().Err(err).Str(EnvTestingNow, now).Msg("ignoring invalid testing time")
		return nil
	}
	return []finance.Option{finance.WithClock(func() time.Time { return t })}
}

// printMarkdown writes md to w, rendered for the terminal when w is one.
func printMarkdown(w io.Writer, md string) {
	if isTerminal(w) {
		out, err := glamour.Render(md, "auto")
		if err == nil {
			fmt.Fprint(w, out)
			return
		}
		log.Debug().Err(err).Msg("cannot render markdown")
	}
	fmt.Fprint(w, md)
}

func isTerminal(w any) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}
