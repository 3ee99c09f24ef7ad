package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// File keeps all entries in one JSON object on disk. Writes replace the file
// atomically while holding an exclusive lock on path + ".lock".
type File struct {
	path string
	flk  *flock.Flock
}

func NewFile(path string) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &File{path: path, flk: flock.New(path + ".lock")}, nil
}

func (s *File) Path() string { return s.path }

func (s *File) Get(key string) (string, bool, error) {
	if err := s.flk.RLock(); err != nil {
		return "", false, fmt.Errorf("lock store: %w", err)
	}
	defer s.flk.Unlock()

	entries, err := s.readAll()
	if err != nil {
		return "", false, err
	}
	v, ok := entries[key]
	return v, ok, nil
}

// Set rewrites the file with key updated. A file that cannot be parsed is
// replaced rather than merged.
func (s *File) Set(key, value string) error {
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("lock store: %w", err)
	}
	defer s.flk.Unlock()

	entries, err := s.readAll()
	if err != nil {
		entries = map[string]string{}
	}
	entries[key] = value

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return s.replace(data)
}

func (s *File) Close() error {
	return s.flk.Close()
}

func (s *File) readAll() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}

	entries := map[string]string{}
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse store %s: %w", s.path, err)
	}
	return entries, nil
}

func (s *File) replace(data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".todobi-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}
