package staging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalStore stages documents as files under a scratch directory.
type LocalStore struct {
	baseDir string
}

// NewLocal creates a local staging store rooted at baseDir. An empty baseDir
// falls back to a directory under the system temp dir.
func NewLocal(baseDir string) *LocalStore {
	if baseDir == "" {
		baseDir = filepath.Join(os.TempDir(), "cvsec-staging")
	}
	return &LocalStore{baseDir: baseDir}
}

// Stage writes data to a uniquely named file and returns its handle.
func (s *LocalStore) Stage(ctx context.Context, data []byte) (*Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("staging mkdir: %w", err)
	}

	key := uuid.NewString() + ".pdf"
	fullPath := filepath.Join(s.baseDir, key)
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("staging write: %w", err)
	}

	return &Handle{
		Key:   key,
		Size:  int64(len(data)),
		store: s,
	}, nil
}

func (s *LocalStore) open(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(filepath.Join(s.baseDir, key))
}

func (s *LocalStore) remove(_ context.Context, key string) error {
	return os.Remove(filepath.Join(s.baseDir, key))
}

var _ Store = (*LocalStore)(nil)
