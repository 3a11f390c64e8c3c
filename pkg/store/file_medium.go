package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// FileMedium persists each key as a JSON file inside a data directory.
// Writes are atomic (temp file plus rename), so a failed write never leaves
// a half-written value behind.
type FileMedium struct {
	dir string
}

func NewFileMedium(dir string) (*FileMedium, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileMedium{dir: dir}, nil
}

func (m *FileMedium) Read(ctx context.Context, key string) (string, bool, error) {
	data, err := os.ReadFile(m.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}

func (m *FileMedium) Write(ctx context.Context, key string, value string) error {
	path := m.path(key)

	tmp, err := os.CreateTemp(m.dir, "."+key+"-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

func (m *FileMedium) path(key string) string {
	return filepath.Join(m.dir, key+".json")
}
