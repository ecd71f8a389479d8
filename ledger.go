package finance

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Ledger is an ordered list of entries closed by a balance row.
//
// The last entry of a Ledger is always a Balance entry whose amount is the
// sum of incomes minus the sum of expenses recorded before it. The balance is
// maintained incrementally: Add and Remove adjust it, a replayed ledger trusts
// the balance row it was given.
type Ledger struct {
	entries []Entry
	now     func() time.Time
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock sets the clock used to timestamp new entries.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// NewLedger creates a ledger holding a single zero balance.
func NewLedger(opts ...Option) *Ledger {
	l := newLedger(opts)
	l.entries = []Entry{newBalance(l.now(), decimal.Zero)}
	return l
}

// Replay creates a ledger from previously persisted entries, in order.
// The trailing balance row is trusted and not recomputed; use Verify to check it.
// An empty list yields the same ledger as NewLedger.
func Replay(entries []Entry, opts ...Option) *Ledger {
	if len(entries) == 0 {
		return NewLedger(opts...)
	}
	l := newLedger(opts)
	l.entries = slices.Clone(entries)
	return l
}

func newLedger(opts []Option) *Ledger {
	l := &Ledger{now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Len returns the number of entries, balance rows included.
func (l *Ledger) Len() int { return len(l.entries) }

// Snapshot returns a copy of all entries in ledger order.
func (l *Ledger) Snapshot() []Entry { return slices.Clone(l.entries) }

// lastBalance returns the index of the trailing balance row.
func (l *Ledger) lastBalance() (int, error) {
	last := len(l.entries) - 1
	if last < 0 || l.entries[last].Kind != Balance {
		return -1, fmt.Errorf("%w: no balance transaction found", ErrInvalidState)
	}
	return last, nil
}

// Add records a new income or expense.
//
// The amount is a positive magnitude, its sign comes from kind. It is floored
// to cents. The label cannot contain the field separator or a line break.
// Add returns the recorded entry.
func (l *Ledger) Add(kind Kind, label string, amount decimal.Decimal) (Entry, error) {
	if !kind.IsTransaction() {
		return Entry{}, fmt.Errorf("%w: invalid type: %v", ErrInvalidArgument, kind)
	}
	if strings.ContainsAny(label, ",\r\n") {
		return Entry{}, fmt.Errorf("%w: label %q cannot contain a comma or a line break", ErrInvalidArgument, label)
	}
	amount = amount.RoundFloor(2)
	if !amount.IsPositive() {
		return Entry{}, fmt.Errorf("%w: %s must be positive, got %s", ErrInvalidArgument, kind, amount.StringFixed(2))
	}
	index, err := l.lastBalance()
	if err != nil {
		return Entry{}, err
	}

	now := l.now()
	tx := NewEntry(kind, now, label, amount)
	balance := newBalance(now, l.entries[index].Amount.Add(tx.Signed()))

	// replace the balance, then insert the transaction right before it.
	l.entries[index] = tx
	l.entries = append(l.entries, balance)
	return tx, nil
}

// Remove deletes the entry at index, which must be of the given kind, and
// reverts its effect on the balance. It returns the removed entry.
//
// Indexes are positions in the ledger as yielded by Entries. They shift after
// every Add or Remove, so callers must list entries again before removing.
func (l *Ledger) Remove(index int, kind Kind) (Entry, error) {
	if !kind.IsTransaction() {
		return Entry{}, fmt.Errorf("%w: invalid type: %v", ErrInvalidArgument, kind)
	}
	if !l.has(kind) {
		return Entry{}, fmt.Errorf("%w: no entries of kind %s", ErrInvalidArgument, kind)
	}
	if index < 0 || index > len(l.entries)-2 || l.entries[index].Kind != kind {
		return Entry{}, fmt.Errorf("%w: invalid index %d", ErrInvalidArgument, index)
	}
	// index never addresses the last row, so the balance row survives the removal.
	last, err := l.lastBalance()
	if err != nil {
		return Entry{}, err
	}

	removed := l.entries[index]
	balance := newBalance(l.now(), l.entries[last].Amount.Sub(removed.Signed()))

	l.entries = slices.Delete(l.entries, index, index+1)
	l.entries[len(l.entries)-1] = balance
	return removed, nil
}

// has reports whether at least one entry is of kind.
func (l *Ledger) has(kind Kind) bool {
	return slices.ContainsFunc(l.entries, func(e Entry) bool { return e.Kind == kind })
}

// CurrentBalance returns the trailing balance row.
func (l *Ledger) CurrentBalance() (Entry, error) {
	if len(l.entries) == 0 || l.entries[len(l.entries)-1].Kind != Balance {
		return Entry{}, fmt.Errorf("%w: no balance found", ErrNotFound)
	}
	return l.entries[len(l.entries)-1], nil
}

// Entries iterates over entries matching filter, in ledger order, along with
// their position in the ledger. All yields every entry but balance rows.
func (l *Ledger) Entries(filter Kind) iter.Seq2[int, Entry] {
	return func(yield func(int, Entry) bool) {
		for i, e := range l.entries {
			if !filter.matches(e) {
				continue
			}
			if !yield(i, e) {
				return
			}
		}
	}
}

func (k Kind) matches(e Entry) bool {
	if k == All {
		return e.Kind != Balance
	}
	return e.Kind == k
}

// Select iterates over entries matching filter and every predicate.
func (l *Ledger) Select(filter Kind, preds ...func(Entry) bool) iter.Seq2[int, Entry] {
	return func(yield func(int, Entry) bool) {
	next:
		for i, e := range l.Entries(filter) {
			for _, pred := range preds {
				if !pred(e) {
					continue next
				}
			}
			if !yield(i, e) {
				return
			}
		}
	}
}

// ByLabel returns a predicate that accepts entries with that label, ignoring case.
func ByLabel(label string) func(Entry) bool {
	return func(e Entry) bool { return e.HasLabel(label) }
}

// Totals summarizes the incomes and expenses of a ledger.
type Totals struct {
	Income       decimal.Decimal
	Expense      decimal.Decimal
	IncomeCount  int
	ExpenseCount int
}

// Net returns incomes minus expenses.
func (t Totals) Net() decimal.Decimal { return t.Income.Sub(t.Expense) }

// Totals sums up entries accepted by every predicate.
func (l *Ledger) Totals(preds ...func(Entry) bool) Totals {
	var t Totals
	for _, e := range l.Select(All, preds...) {
		switch e.Kind {
		case Income:
			t.Income = t.Income.Add(e.Amount)
			t.IncomeCount++
		case Expense:
			t.Expense = t.Expense.Add(e.Amount)
			t.ExpenseCount++
		}
	}
	return t
}

// Verify recomputes the balance from the ledger history and checks it against
// the trailing balance row. It never modifies the ledger.
func (l *Ledger) Verify() error {
	last, err := l.lastBalance()
	if err != nil {
		return err
	}
	want := l.Totals().Net()
	if got := l.entries[last].Amount; !got.Equal(want) {
		return fmt.Errorf("%w: balance is %s but entries sum up to %s", ErrInvalidState, got.StringFixed(2), want.StringFixed(2))
	}
	return nil
}
