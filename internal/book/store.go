package book

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// FileStore persists a Book as a plain text file, rewriting the whole file on
// every save.
type FileStore struct {
	path string
	log  *zap.Logger
}

// StoreOption configures a FileStore.
type StoreOption func(*FileStore)

// WithLogger sets the logger used for load and save diagnostics.
func WithLogger(l *zap.Logger) StoreOption {
	return func(s *FileStore) {
		if l != nil {
			s.log = l
		}
	}
}

// NewFileStore creates a FileStore that reads and writes path.
func NewFileStore(path string, opts ...StoreOption) *FileStore {
	s := &FileStore{path: path, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the file the store reads and writes.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the contacts file. When the file cannot be opened, Load returns
// an empty Book together with the error so callers can continue with an empty
// store. A read failure part way through keeps the contacts decoded before it.
func (s *FileStore) Load() (*Book, error) {
	f, err := os.Open(s.path)
	if err != nil {
		s.log.Warn("contacts file not loaded", zap.String("path", s.path), zap.Error(err))
		return New(), fmt.Errorf("book: opening %s: %w", s.path, err)
	}
	defer f.Close()

	res, err := Decode(f)
	if err != nil {
		s.log.Warn("contacts file partially loaded", zap.String("path", s.path),
			zap.Int("contacts", res.Book.Len()), zap.Error(err))
		return res.Book, fmt.Errorf("book: reading %s: %w", s.path, err)
	}

	if res.Skipped > 0 {
		s.log.Debug("skipped malformed lines", zap.String("path", s.path), zap.Int("skipped", res.Skipped))
	}
	s.log.Info("contacts loaded", zap.String("path", s.path), zap.Int("contacts", res.Book.Len()))
	return res.Book, nil
}

// Save overwrites the contacts file with every contact in b.
func (s *FileStore) Save(b *Book) error {
	var buf bytes.Buffer
	if err := Encode(&buf, b); err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			s.log.Error("contacts not saved", zap.String("path", s.path), zap.Error(err))
			return fmt.Errorf("book: creating directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		s.log.Error("contacts not saved", zap.String("path", s.path), zap.Error(err))
		return fmt.Errorf("book: writing %s: %w", s.path, err)
	}

	s.log.Debug("contacts saved", zap.String("path", s.path), zap.Int("contacts", b.Len()))
	return nil
}
