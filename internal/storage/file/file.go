// Package file stores each key as a JSON file in a data directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"discipline/internal/storage"
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Slot writes one file per key. Writes go to a temporary file in the same
// directory which is synced and renamed over the target, so a crash leaves
// either the old or the new content.
type Slot struct {
	dir     string
	syncDir func(dir string) error
}

// New creates dir if needed and returns a slot rooted there.
func New(dir string) (*Slot, error) {
	if dir == "" {
		return nil, errors.New("data directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Slot{dir: dir, syncDir: syncDir}, nil
}

// Path returns the file backing key.
func (s *Slot) Path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *Slot) Get(ctx context.Context, key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

func (s *Slot) Put(ctx context.Context, key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	// Removing after a successful rename is a no-op error we ignore.
	defer os.Remove(tmpName)

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.Path(key)); err != nil {
		return fmt.Errorf("replace %s: %w", key, err)
	}
	// The rename is only durable once the directory entry is flushed.
	if err := s.syncDir(s.dir); err != nil {
		return fmt.Errorf("sync data directory: %w", err)
	}
	return nil
}

func (s *Slot) Delete(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(s.Path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	if err := d.Sync(); err != nil {
		d.Close()
		return err
	}
	return d.Close()
}

func checkKey(key string) error {
	if !validKey.MatchString(key) {
		return fmt.Errorf("invalid key %q", key)
	}
	return nil
}
