package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalStore keeps blobs as flat files under a single directory, one file
// per blob, named by a random UUID. The reference handed back to callers is
// the absolute path.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the storage directory if needed and returns a store
// rooted there.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Write(ctx context.Context, data []byte) (string, error) {
	path := filepath.Join(s.dir, uuid.NewString())
	if err := os.WriteFile(path, data, 0o640); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}
	return path, nil
}

func (s *LocalStore) Read(ctx context.Context, ref string) ([]byte, error) {
	data, err := os.ReadFile(ref)
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}
	return data, nil
}

func (s *LocalStore) Remove(ctx context.Context, ref string) error {
	if err := os.Remove(ref); err != nil {
		return fmt.Errorf("remove blob: %w", err)
	}
	return nil
}
