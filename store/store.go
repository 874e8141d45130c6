package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jsphweid/hummingbird/errs"
	"github.com/pkg/errors"
)

// Store is the directory that generated MIDI and WAV files are written to and served from.
type Store struct {
	dir string
	now func() time.Time
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "could not create output dir %s", dir)
	}
	return &Store{dir: dir, now: time.Now}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// Save writes data as prefix_<uuid>.ext and returns the file name.
func (s *Store) Save(prefix, ext string, data []byte) (string, error) {
	name := fmt.Sprintf("%s_%s.%s", prefix, uuid.New().String(), strings.TrimPrefix(ext, "."))
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0644); err != nil {
		return "", errors.Wrapf(err, "could not save %s", name)
	}
	return name, nil
}

// Path resolves a stored file name. Anything that is not a plain existing file in the
// output directory is reported as not found.
func (s *Store) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", errors.Wrapf(errs.ErrNotFound, "file %q", name)
	}
	p := filepath.Join(s.dir, name)
	info, err := os.Stat(p)
	if err != nil || !info.Mode().IsRegular() {
		return "", errors.Wrapf(errs.ErrNotFound, "file %q", name)
	}
	return p, nil
}

// Cleanup deletes regular files older than maxAge and returns how many were removed.
func (s *Store) Cleanup(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, errors.Wrap(err, "could not list output dir")
	}
	cutoff := s.now().Add(-maxAge)
	deleted := 0
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
				return deleted, errors.Wrapf(err, "could not delete %s", e.Name())
			}
			deleted++
		}
	}
	return deleted, nil
}
