package finance

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
)

// Backend is the durable storage of a ledger. It reads and writes the
// whole persisted content at once.
type Backend interface {
	// ReadAll returns the full persisted content.
	ReadAll() ([]byte, error)
	// WriteAll replaces the persisted content with data.
	WriteAll(data []byte) error
}

// FileBackend stores a ledger in a file it keeps open until Close.
type FileBackend struct {
	f *os.File
}

// OpenFileBackend opens, and creates if needed, the file at path.
func OpenFileBackend(path string) (*FileBackend, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("%w: error opening ledger file %q: %w", ErrIO, path, err)
	}
	return &FileBackend{f: f}, nil
}

// Name returns the file name.
func (b *FileBackend) Name() string { return b.f.Name() }

func (b *FileBackend) ReadAll() ([]byte, error) {
	if _, err := b.f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: error reading ledger file %q: %w", ErrIO, b.f.Name(), err)
	}
	data, err := io.ReadAll(b.f)
	if err != nil {
		return nil, fmt.Errorf("%w: error reading ledger file %q: %w", ErrIO, b.f.Name(), err)
	}
	return data, nil
}

// WriteAll truncates the file, writes data and syncs it to disk.
func (b *FileBackend) WriteAll(data []byte) error {
	if err := b.f.Truncate(0); err != nil {
		return fmt.Errorf("%w: error truncating ledger file %q: %w", ErrIO, b.f.Name(), err)
	}
	if _, err := b.f.WriteAt(data, 0); err != nil {
		return fmt.Errorf("%w: error writing ledger file %q: %w", ErrIO, b.f.Name(), err)
	}
	if err := b.f.Sync(); err != nil {
		return fmt.Errorf("%w: error syncing ledger file %q: %w", ErrIO, b.f.Name(), err)
	}
	return nil
}

func (b *FileBackend) Close() error {
	if err := b.f.Close(); err != nil {
		return fmt.Errorf("%w: error closing ledger file %q: %w", ErrIO, b.f.Name(), err)
	}
	return nil
}

// MemoryBackend keeps the persisted content in memory.
// Its zero value is an empty store ready to use.
type MemoryBackend struct {
	mu   sync.Mutex
	data []byte

	// ReadErr and WriteErr, when set, are returned by ReadAll and WriteAll.
	ReadErr  error
	WriteErr error
}

// NewMemoryBackend creates a backend holding content.
func NewMemoryBackend(content string) *MemoryBackend {
	return &MemoryBackend{data: []byte(content)}
}

func (m *MemoryBackend) ReadAll() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, m.ReadErr)
	}
	return bytes.Clone(m.data), nil
}

func (m *MemoryBackend) WriteAll(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return fmt.Errorf("%w: %w", ErrIO, m.WriteErr)
	}
	m.data = bytes.Clone(data)
	return nil
}

// String returns the persisted content.
func (m *MemoryBackend) String() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.data)
}

var (
	_ Backend = (*FileBackend)(nil)
	_ Backend = (*MemoryBackend)(nil)
)
