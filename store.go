package finance

import (
	"bytes"
	"errors"
	"io"

	"github.com/rs/zerolog/log"
)

// Store is a Ledger bound to its Backend.
//
// The ledger is loaded when the Store is opened, and written back by Save and
// Close. A Store must be closed, typically with a defer right after Open.
type Store struct {
	*Ledger
	backend Backend
}

// Open loads the ledger persisted in backend.
//
// A backend that cannot be read is not fatal: the failure is logged and the
// store starts from a fresh ledger, which the next Save writes over the
// backend content.
func Open(backend Backend, opts ...Option) *Store {
	l := newLedger(opts)
	s := &Store{Ledger: l, backend: backend}

	data, err := backend.ReadAll()
	if err != nil {
		log.Warn().Err(err).Msg("could not load ledger, starting from an empty one")
		*l = *NewLedger(opts...)
		return s
	}

	entries, err := DecodeLedger(bytes.NewReader(data), l.now())
	if err != nil {
		log.Warn().Err(err).Msg("ledger partially loaded")
	}
	*l = *Replay(entries, opts...)
	return s
}

// OpenFile opens the ledger stored in the file at path, creating the file if
// it does not exist.
func OpenFile(path string, opts ...Option) (*Store, error) {
	b, err := OpenFileBackend(path)
	if err != nil {
		return nil, err
	}
	return Open(b, opts...), nil
}

// Save writes the whole ledger to the backend, replacing its content.
func (s *Store) Save() error {
	var buf bytes.Buffer
	if err := EncodeLedger(&buf, s.entries); err != nil {
		return err
	}
	return s.backend.WriteAll(buf.Bytes())
}

// Close saves the ledger and releases the backend if it needs to be.
func (s *Store) Close() error {
	err := s.Save()
	if c, ok := s.backend.(io.Closer); ok {
		err = errors.Join(err, c.Close())
	}
	return err
}

// Discard releases the backend without saving the ledger.
func (s *Store) Discard() error {
	if c, ok := s.backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
