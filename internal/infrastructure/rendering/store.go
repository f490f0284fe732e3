package rendering

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// LocalStore persists export artifacts on the local filesystem under a
// configured output directory
type LocalStore struct {
	dir    string
	logger *zap.Logger
}

// NewLocalStore creates the output directory if needed and returns the store
func NewLocalStore(dir string, logger *zap.Logger) (*LocalStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("artifact output directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact directory: %w", err)
	}
	return &LocalStore{dir: dir, logger: logger}, nil
}

// Write stores artifact bytes and returns the file reference. File names
// are flattened to their base so a crafted name cannot escape the
// directory.
func (s *LocalStore) Write(_ context.Context, fileName string, data []byte) (string, error) {
	path := filepath.Join(s.dir, filepath.Base(fileName))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write artifact %s: %w", fileName, err)
	}

	s.logger.Debug("artifact written",
		zap.String("path", path),
		zap.Int("bytes", len(data)))

	return path, nil
}

// Exists reports whether the referenced artifact is present
func (s *LocalStore) Exists(_ context.Context, fileRef string) bool {
	info, err := os.Stat(fileRef)
	return err == nil && !info.IsDir()
}

// Read loads artifact bytes for delivery (email attachment, cloud upload)
func (s *LocalStore) Read(_ context.Context, fileRef string) ([]byte, error) {
	data, err := os.ReadFile(fileRef)
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", fileRef, err)
	}
	return data, nil
}
