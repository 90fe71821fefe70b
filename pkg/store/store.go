package store

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/stefanpenner/quest/pkg/tracker"
)

// DefaultGoalsFile is the goals file name inside the data directory.
const DefaultGoalsFile = "goals.txt"

// Store manages the goals file in a data directory.
type Store struct {
	Root string // e.g., ~/.local/share/quest

	goalsFile string
	log       *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithGoalsFile overrides the goals file name.
func WithGoalsFile(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.goalsFile = name
		}
	}
}

// WithLogger sets the logger used for file operations.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// NewStore creates a Store rooted at the given directory.
// It creates the directory if it doesn't exist.
func NewStore(root string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	s := &Store{Root: root, goalsFile: DefaultGoalsFile, log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// GoalsPath returns the path to the goals file.
func (s *Store) GoalsPath() string {
	if filepath.IsAbs(s.goalsFile) {
		return s.goalsFile
	}
	return filepath.Join(s.Root, s.goalsFile)
}

// Exists reports whether the goals file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.GoalsPath())
	return err == nil
}

// Save writes the tracker to the goals file. The previous file stays intact
// if the write fails.
func (s *Store) Save(t *tracker.Tracker) error {
	var buf bytes.Buffer
	if err := t.Save(&buf); err != nil {
		return err
	}

	path := s.GoalsPath()
	if err := writeFileAtomic(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("%w: writing %s: %w", tracker.ErrIO, path, err)
	}
	s.log.Debug("goals saved", "path", path, "goals", t.Len(), "score", t.TotalScore())
	return nil
}

// Load replaces the tracker's contents with the goals file.
func (s *Store) Load(t *tracker.Tracker) error {
	path := s.GoalsPath()
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", tracker.ErrNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("%w: opening %s: %w", tracker.ErrIO, path, err)
	}
	defer f.Close()

	if err := t.Load(f); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	s.log.Debug("goals file read", "path", path)
	return nil
}

// LoadOrNew loads the goals file into a new tracker. A missing file yields an
// empty tracker.
func (s *Store) LoadOrNew(opts ...tracker.Option) (*tracker.Tracker, error) {
	t := tracker.New(opts...)
	err := s.Load(t)
	if errors.Is(err, tracker.ErrNotFound) {
		return t, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// writeFileAtomic writes data to a temp file in the target directory, syncs
// it and renames it over path.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return nil
}
