package finance

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// Kind discriminates the entries of a ledger.
type Kind int

const (
	// All matches every income and expense entry. It is only meaningful as a
	// filter and is never stored in a ledger.
	All Kind = iota
	Income
	Expense
	// Balance marks the running-total row that closes a ledger.
	Balance
)

func (k Kind) String() string {
	switch k {
	case All:
		return "all"
	case Income:
		return "income"
	case Expense:
		return "expense"
	case Balance:
		return "balance"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind parses a kind name, ignoring case and surrounding spaces.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all":
		return All, nil
	case "income":
		return Income, nil
	case "expense":
		return Expense, nil
	case "balance":
		return Balance, nil
	default:
		return All, fmt.Errorf("%w: unknown kind %q", ErrInvalidArgument, s)
	}
}

// IsTransaction reports whether k is a kind that can be added or removed.
func (k Kind) IsTransaction() bool { return k == Income || k == Expense }

// TimeLayout is the layout used to persist entry times.
const TimeLayout = "2006-01-02 15:04"

// balanceLabel is the label given to balance rows.
const balanceLabel = "balance"

// Entry is a single record of a ledger. Entries are values: a ledger never
// modifies one in place, it replaces it.
type Entry struct {
	Kind   Kind
	Time   time.Time
	Label  string
	Amount decimal.Decimal
}

// NewEntry creates an entry with its time truncated to the minute and its
// amount floored to cents.
func NewEntry(kind Kind, t time.Time, label string, amount decimal.Decimal) Entry {
	return Entry{
		Kind:   kind,
		Time:   truncateTime(t),
		Label:  label,
		Amount: amount.RoundFloor(2),
	}
}

// newBalance creates a balance row.
func newBalance(t time.Time, amount decimal.Decimal) Entry {
	return NewEntry(Balance, t, balanceLabel, amount)
}

// truncateTime drops seconds and below, and the monotonic clock reading.
func truncateTime(t time.Time) time.Time {
	return t.Truncate(time.Minute)
}

// Signed returns the contribution of the entry to the running balance.
// Balance rows do not contribute.
func (e Entry) Signed() decimal.Decimal {
	switch e.Kind {
	case Income:
		return e.Amount
	case Expense:
		return e.Amount.Neg()
	default:
		return decimal.Zero
	}
}

// HasLabel reports whether the entry label matches label, ignoring case.
func (e Entry) HasLabel(label string) bool {
	fold := cases.Fold()
	return fold.String(strings.TrimSpace(e.Label)) == fold.String(strings.TrimSpace(label))
}

// Equal reports whether both entries hold the same values.
func (e Entry) Equal(o Entry) bool {
	return e.Kind == o.Kind && e.Time.Equal(o.Time) && e.Label == o.Label && e.Amount.Equal(o.Amount)
}

func (e Entry) String() string {
	return fmt.Sprintf("%s %s %s %s", e.Kind, e.Time.Format(TimeLayout), e.Label, e.Amount.StringFixed(2))
}
