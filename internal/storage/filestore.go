package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps one directory per tenant under a root directory, with one
// <key>.json file per record. The tenant directory is created on first write.
type FileStore struct {
	root string
}

func NewFileStore(root string) (*FileStore, error) {
	if root == "" {
		return nil, fmt.Errorf("filestore: root directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("filestore: create root dir: %w", err)
	}
	return &FileStore{root: root}, nil
}

func (s *FileStore) Get(ctx context.Context, tenantID, key string) ([]byte, error) {
	path, err := s.recordPath(tenantID, key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("filestore: read %s: %w", key, err)
	}
	return data, nil
}

func (s *FileStore) Set(ctx context.Context, tenantID, key string, value []byte) error {
	path, err := s.recordPath(tenantID, key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("filestore: create tenant dir: %w", err)
	}

	// Write to a temp file and rename so a failed write never leaves a
	// partially persisted record behind.
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("filestore: create temp file: %w", err)
	}
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("filestore: write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("filestore: close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("filestore: commit %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) Remove(ctx context.Context, tenantID, key string) error {
	path, err := s.recordPath(tenantID, key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("filestore: remove %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) recordPath(tenantID, key string) (string, error) {
	if err := validateComponent(tenantID); err != nil {
		return "", fmt.Errorf("filestore: tenant id: %w", err)
	}
	if err := validateComponent(key); err != nil {
		return "", fmt.Errorf("filestore: key: %w", err)
	}
	return filepath.Join(s.root, tenantID, key+".json"), nil
}

// validateComponent rejects path components that could escape the root.
func validateComponent(c string) error {
	if c == "" {
		return fmt.Errorf("must not be empty")
	}
	if strings.ContainsAny(c, `/\`) || c == "." || c == ".." {
		return fmt.Errorf("%q contains path separators", c)
	}
	return nil
}
