package finance

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// separator separates the fields of a persisted entry. Labels are written as
// is, which is why Ledger.Add refuses labels containing it.
const separator = ","

// EncodeEntry writes a single entry as one line:
//
//	kind,YYYY-MM-DD HH:MM,label,amount
//
// The amount is written with exactly two fractional digits.
func EncodeEntry(w io.Writer, e Entry) error {
	line := strings.Join([]string{
		e.Kind.String(),
		e.Time.Format(TimeLayout),
		e.Label,
		e.Amount.StringFixed(2),
	}, separator)
	if _, err := io.WriteString(w, line+"\n"); err != nil {
		return fmt.Errorf("failed to write entry: %w", err)
	}
	return nil
}

// EncodeLedger writes entries one per line, in order.
func EncodeLedger(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if err := EncodeEntry(bw, e); err != nil {
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write ledger: %w", err)
	}
	return nil
}

// DecodeEntry decodes a line written by EncodeEntry.
//
// Kinds are matched ignoring case, fields are trimmed, and the amount is
// floored to cents. Any failure wraps ErrMalformedLine.
func DecodeEntry(line string) (Entry, error) {
	fields := strings.Split(line, separator)
	if len(fields) != 4 {
		return Entry{}, fmt.Errorf("%w: got %d fields, want 4", ErrMalformedLine, len(fields))
	}

	var kind Kind
	switch strings.ToLower(strings.TrimSpace(fields[0])) {
	case "expense":
		kind = Expense
	case "income":
		kind = Income
	case "balance":
		kind = Balance
	default:
		return Entry{}, fmt.Errorf("%w: unknown type %q", ErrMalformedLine, fields[0])
	}

	when, err := time.ParseInLocation(TimeLayout, strings.TrimSpace(fields[1]), time.Local)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: invalid time %q: %w", ErrMalformedLine, fields[1], err)
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(fields[3]))
	if err != nil {
		return Entry{}, fmt.Errorf("%w: invalid amount %q: %w", ErrMalformedLine, fields[3], err)
	}

	return NewEntry(kind, when, strings.TrimSpace(fields[2]), amount), nil
}

// maxLoggedLine bounds the content of a malformed line in warnings.
const maxLoggedLine = 200

// DecodeLedger reads all the entries persisted in r.
//
// An empty input yields a single zero balance stamped with now. Lines that
// cannot be decoded are logged and skipped, they never abort the load,
// whatever their length. Only a failure to read r is returned, wrapped in
// ErrIO, along with the entries decoded so far.
func DecodeLedger(r io.Reader, now time.Time) ([]Entry, error) {
	br := bufio.NewReader(r)
	if _, err := br.Peek(1); err == io.EOF {
		return []Entry{newBalance(now, decimal.Zero)}, nil
	} else if err != nil {
		return nil, fmt.Errorf("%w: error reading ledger: %w", ErrIO, err)
	}

	var entries []Entry
	for n := 1; ; n++ {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return entries, fmt.Errorf("%w: error reading ledger: %w", ErrIO, err)
		}
		if line = strings.TrimRight(line, "\r\n"); strings.TrimSpace(line) != "" {
			e, decodeErr := DecodeEntry(line)
			if decodeErr != nil {
				log.Warn().Int("line", n).Str("content", truncate(line, maxLoggedLine)).Err(decodeErr).Msg("skipping malformed line")
			} else {
				entries = append(entries, e)
			}
		}
		if err == io.EOF {
			return entries, nil
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
