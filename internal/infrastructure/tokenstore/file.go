// Package tokenstore implements the durable single-key storage holding the
// session's bearer token. The file store is the default; the redis store
// suits shared environments where several CLI hosts reuse one session.
package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/teslo-shop/storefront-go/internal/core/domain"
)

// FileStore persists the token as a single 0600 file.
type FileStore struct {
	path string
}

// NewFileStore returns a store writing to path. Parent directories are
// created lazily on the first Set.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Get(_ context.Context) (string, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", domain.ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("token file read: %w", err)
	}
	token := strings.TrimSpace(string(raw))
	if token == "" {
		return "", domain.ErrNoToken
	}
	return token, nil
}

func (s *FileStore) Set(_ context.Context, token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("token dir create: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("token file write: %w", err)
	}
	return nil
}

func (s *FileStore) Clear(_ context.Context) error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("token file remove: %w", err)
	}
	return nil
}
