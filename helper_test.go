package finance

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

// D is a helper for test to create decimals from const strings.
func D(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// T is a helper for test to create local times from a persisted timestamp.
func T(s string) time.Time {
	t, err := time.ParseInLocation(TimeLayout, s, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

// fixedClock always returns the same time.
func fixedClock(s string) func() time.Time {
	t := T(s)
	return func() time.Time { return t }
}

// tickingClock returns a time one minute later at each call.
func tickingClock(s string) func() time.Time {
	t := T(s)
	return func() time.Time {
		now := t
		t = t.Add(time.Minute)
		return now
	}
}

// entryComparer compares entries on their values, whatever their internal representation.
var entryComparer = cmp.Comparer(func(a, b Entry) bool { return a.Equal(b) })

// assertEntries fails if got differs from want.
func assertEntries(t *testing.T, got, want []Entry) {
	t.Helper()
	if diff := cmp.Diff(want, got, entryComparer); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

// collect gathers the positions and entries yielded by a ledger listing.
func collect(l *Ledger, filter Kind) ([]int, []Entry) {
	var idx []int
	var entries []Entry
	for i, e := range l.Entries(filter) {
		idx = append(idx, i)
		entries = append(entries, e)
	}
	return idx, entries
}
