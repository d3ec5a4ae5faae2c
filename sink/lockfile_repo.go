package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/reglet-dev/reglet-entities/entities"
	"github.com/reglet-dev/reglet-entities/ports"
)

// DefaultLockfileName is the lock written next to the output document.
const DefaultLockfileName = "entities.lock.yaml"

// FileLockRepository implements ports.LockRepository using the local filesystem.
type FileLockRepository struct{}

var _ ports.LockRepository = (*FileLockRepository)(nil)

// NewFileLockRepository creates a new FileLockRepository.
func NewFileLockRepository() *FileLockRepository {
	return &FileLockRepository{}
}

// Load reads a lock from the given path. A missing lock yields (nil, nil).
func (r *FileLockRepository) Load(ctx context.Context, path string) (*entities.ExtractionLock, error) {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	root, err := os.OpenRoot(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open directory %q: %w", dir, err)
	}
	defer func() { _ = root.Close() }()

	file, err := root.Open(base)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open lockfile %q: %w", base, err)
	}
	defer func() { _ = file.Close() }()

	var out Lockfile
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding lockfile YAML: %w", err)
	}

	lock := out.ToEntity()
	if err := lock.Validate(); err != nil {
		return nil, fmt.Errorf("invalid lockfile: %w", err)
	}
	return lock, nil
}

// Save writes a lock to the given path, creating its directory.
func (r *FileLockRepository) Save(ctx context.Context, lock *entities.ExtractionLock, path string) error {
	if lock == nil {
		return fmt.Errorf("no lock to save")
	}
	if err := lock.Validate(); err != nil {
		return fmt.Errorf("invalid lockfile: %w", err)
	}

	data, err := yaml.Marshal(FromEntity(lock))
	if err != nil {
		return fmt.Errorf("encoding lockfile: %w", err)
	}
	return writeFile(path, data)
}

// Exists checks if a lock exists at the given path.
func (r *FileLockRepository) Exists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
