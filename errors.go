package finance

import "errors"

// Errors reported by the ledger. Callers test them with errors.Is, the
// returned errors wrap them with details.
var (
	// ErrInvalidArgument reports a bad kind, index, label or amount. The
	// ledger is left untouched.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidState reports a ledger without its trailing balance row, or
	// with a balance that does not match its history.
	ErrInvalidState = errors.New("invalid ledger state")
	// ErrNotFound reports that no balance is available.
	ErrNotFound = errors.New("not found")
	// ErrIO reports a failure to read or write the backing store.
	ErrIO = errors.New("i/o failure")
	// ErrMalformedLine reports a persisted line that cannot be decoded.
	ErrMalformedLine = errors.New("malformed line")
)
