package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps operational records on the local filesystem. Its one
// consumer is the reconciliation journal; deployments point the root at a
// durable mount so unbilled-success records survive the process.
type FileStore struct {
	root string
}

// NewFileStore initializes a FileStore rooted at root, creating it if needed.
func NewFileStore(root string) (*FileStore, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, errors.New("storage: root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage: ensure root: %w", err)
	}
	return &FileStore{root: root}, nil
}

// Root returns the configured root directory.
func (s *FileStore) Root() string {
	if s == nil {
		return ""
	}
	return s.root
}

// WriteJSON marshals v and persists it at the given relative key. Records are
// written whole; a re-write of the same key replaces the previous record.
func (s *FileStore) WriteJSON(ctx context.Context, key string, v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("storage: encode record: %w", err)
	}
	return s.Write(ctx, key, data)
}

// Write persists raw bytes at the given relative key and returns the
// canonicalized key. Keys are cleaned so a record can never land outside the
// root.
func (s *FileStore) Write(ctx context.Context, key string, data []byte) (string, error) {
	if s == nil {
		return "", errors.New("storage: no store configured")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	cleaned, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	path := filepath.Join(s.root, filepath.FromSlash(cleaned))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("storage: ensure directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: write record: %w", err)
	}
	return cleaned, nil
}

func cleanKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("storage: key is required")
	}
	key = strings.ReplaceAll(key, "\\", "/")
	key = strings.TrimPrefix(key, "./")
	key = strings.TrimLeft(key, "/")
	cleaned := strings.ReplaceAll(filepath.Clean(key), "\\", "/")
	if cleaned == "." || strings.HasPrefix(cleaned, "../") {
		return "", errors.New("storage: key escapes the root")
	}
	return cleaned, nil
}
