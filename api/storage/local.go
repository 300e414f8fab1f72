package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/spf13/afero"
)

// LocalStore writes images below a root directory served at URLPrefix.
type LocalStore struct {
	fs        afero.Fs
	urlPrefix string
}

// NewLocalStore roots the store at dir on disk.
func NewLocalStore(dir, urlPrefix string) *LocalStore {
	return NewLocalStoreFs(afero.NewBasePathFs(afero.NewOsFs(), dir), urlPrefix)
}

func NewLocalStoreFs(fs afero.Fs, urlPrefix string) *LocalStore {
	if !strings.HasSuffix(urlPrefix, "/") {
		urlPrefix += "/"
	}
	return &LocalStore{fs: fs, urlPrefix: urlPrefix}
}

// Fs exposes the underlying filesystem for serving media.
func (s *LocalStore) Fs() afero.Fs {
	return s.fs
}

func (s *LocalStore) Save(_ context.Context, img *Image) error {
	if err := s.fs.MkdirAll(path.Dir(img.Key), 0o755); err != nil {
		return fmt.Errorf("storage: mkdir for %s: %w", img.Key, err)
	}
	if err := afero.WriteFile(s.fs, img.Key, img.Data, 0o644); err != nil {
		return fmt.Errorf("storage: write %s: %w", img.Key, err)
	}
	return nil
}

func (s *LocalStore) Delete(_ context.Context, key string) error {
	if key == "" {
		return nil
	}
	if err := s.fs.Remove(key); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: remove %s: %w", key, err)
	}
	return nil
}

func (s *LocalStore) URL(key string) string {
	if key == "" {
		return ""
	}
	return s.urlPrefix + strings.TrimPrefix(key, "/")
}
