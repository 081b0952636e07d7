package imaging

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// PreviewSlot holds the one staged copy of the current selection on disk.
// Replacing the selection removes the previous file; Close removes the current
// one. Releasing twice is a no-op.
type PreviewSlot struct {
	Dir string

	mu   sync.Mutex
	path string
}

// Replace stages r and releases whatever was staged before.
func (s *PreviewSlot) Replace(r io.Reader) (string, error) {
	f, err := os.CreateTemp(s.Dir, "avatar-preview-*")
	if err != nil {
		return "", fmt.Errorf("preview: create: %w", err)
	}
	if _, err := io.Copy(f, io.LimitReader(r, MaxSelectionBytes+1)); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("preview: write: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("preview: close: %w", err)
	}

	s.mu.Lock()
	prev := s.path
	s.path = f.Name()
	s.mu.Unlock()
	if prev != "" {
		os.Remove(prev)
	}
	return f.Name(), nil
}

func (s *PreviewSlot) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// Open reads the staged file back.
func (s *PreviewSlot) Open() (*os.File, error) {
	p := s.Path()
	if p == "" {
		return nil, os.ErrNotExist
	}
	return os.Open(p)
}

func (s *PreviewSlot) Close() error {
	s.mu.Lock()
	p := s.path
	s.path = ""
	s.mu.Unlock()
	if p == "" {
		return nil
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
