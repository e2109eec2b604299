// Package backend picks the key-value slot that holds the daily logs and
// opens it behind a persistence adapter.
package backend

import (
	"errors"
	"fmt"
	"strings"

	"discipline/internal/config"
)

// Kind names a slot implementation.
type Kind string

const (
	Memory Kind = "memory"
	File   Kind = "file"
	SQLite Kind = "sqlite"
)

// Kinds lists every supported slot kind.
func Kinds() []Kind {
	return []Kind{Memory, File, SQLite}
}

func (k Kind) String() string {
	return string(k)
}

// Valid reports whether k is one of Kinds.
func (k Kind) Valid() bool {
	switch k {
	case Memory, File, SQLite:
		return true
	}
	return false
}

// Settings selects a slot and where it keeps its data.
type Settings struct {
	Kind Kind

	// Dir holds one JSON file per key (file kind).
	Dir string

	// DBPath is the SQLite database file (sqlite kind).
	DBPath string
}

// SettingsFrom extracts slot settings from the application config.
func SettingsFrom(cfg *config.Config) (Settings, error) {
	if cfg == nil {
		return Settings{}, errors.New("app config is nil")
	}

	s := Settings{
		Kind:   Kind(cfg.DataBackend),
		Dir:    cfg.DataDir,
		DBPath: cfg.SQLiteDBPath,
	}
	if !s.Kind.Valid() {
		return Settings{}, fmt.Errorf("unknown data backend %q, want one of %v", cfg.DataBackend, Kinds())
	}
	return s, nil
}

// Validate checks that the selected kind has what it needs.
func (s Settings) Validate() error {
	switch s.Kind {
	case Memory:
		return nil
	case File:
		if strings.TrimSpace(s.Dir) == "" {
			return errors.New("file backend needs a data directory")
		}
	case SQLite:
		if strings.TrimSpace(s.DBPath) == "" {
			return errors.New("sqlite backend needs a database path")
		}
	default:
		return fmt.Errorf("unknown data backend %q", s.Kind)
	}
	return nil
}
