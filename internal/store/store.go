// Package store provides the key-value string stores the task engine
// persists into.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store is a flat string key-value store.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Close() error
}

type Kind string

const (
	KindFile   Kind = "file"
	KindSQLite Kind = "sqlite"
	KindMemory Kind = "memory"
)

var ErrUnknownKind = errors.New("unknown store kind")

// DefaultPath returns the default data path for kind inside the home directory.
func DefaultPath(kind Kind) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	switch kind {
	case KindSQLite:
		return filepath.Join(home, ".todobi.db"), nil
	default:
		return filepath.Join(home, ".todobi.json"), nil
	}
}

// Open opens the store of the given kind. An empty path selects DefaultPath.
func Open(kind Kind, path string) (Store, error) {
	kind = Kind(strings.ToLower(strings.TrimSpace(string(kind))))
	if kind == "" {
		kind = KindFile
	}
	if kind == KindMemory {
		return NewMemory(), nil
	}

	if path == "" {
		p, err := DefaultPath(kind)
		if err != nil {
			return nil, fmt.Errorf("resolve store path: %w", err)
		}
		path = p
	}

	switch kind {
	case KindFile:
		return NewFile(path)
	case KindSQLite:
		return OpenSQLite(path)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}
