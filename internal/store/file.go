package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"passgate/cli/internal/account"
	"passgate/cli/internal/xdg"
)

// File persists the session as a JSON file with 0600 permissions. It exists
// for systems without a keychain or sqlite-capable environment and for
// debugging; "auto" never selects it.
type File struct {
	path string
}

// NewFile creates a file store at path; an empty path places session.json
// in the XDG state dir.
func NewFile(path string) (*File, error) {
	if path == "" {
		dir, err := xdg.StateDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "session.json")
	}
	return &File{path: path}, nil
}

func (f *File) Save(_ context.Context, s account.Session) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.WriteFile(f.path, b, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	return nil
}

func (f *File) Load(_ context.Context) (*account.Session, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}

	var s account.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.path, err)
	}
	return &s, nil
}

func (f *File) Clear(_ context.Context) error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", f.path, err)
	}
	return nil
}

func (f *File) Present(_ context.Context) (bool, error) {
	_, err := os.Stat(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
