package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/Mostafa3001hamdy/ELEX-Main/pkg/storage"
)

const fileExt = ".json"

// KV stores each key as one file under dir. Writes go through a temp file and rename so a
// crash never leaves a half-written cart behind.
type KV struct {
	dir string
}

// New creates dir if needed and returns a file-backed KV.
func New(dir string) (*KV, error) {
	if dir == "" {
		return nil, errors.New("storage dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %q: %w", dir, err)
	}
	return &KV{dir: dir}, nil
}

func (k *KV) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(k.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("read %q: %w", key, err)
	}
	return data, nil
}

func (k *KV) Set(_ context.Context, key string, value []byte) error {
	if err := atomic.WriteFile(k.path(key), bytes.NewReader(value)); err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	return nil
}

func (k *KV) Delete(_ context.Context, key string) error {
	if err := os.Remove(k.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}

// path escapes the key so separators and dots cannot leave dir.
func (k *KV) path(key string) string {
	return filepath.Join(k.dir, url.PathEscape(key)+fileExt)
}
