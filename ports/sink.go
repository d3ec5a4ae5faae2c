package ports

import (
	"context"

	"github.com/reglet-dev/reglet-entities/entities"
)

// OutputSink receives the finished registry.
type OutputSink interface {
	Write(ctx context.Context, registry *entities.Registry) error
}

// LockRepository manages extraction lock persistence.
type LockRepository interface {
	Load(ctx context.Context, path string) (*entities.ExtractionLock, error)
	Save(ctx context.Context, lock *entities.ExtractionLock, path string) error
	Exists(ctx context.Context, path string) (bool, error)
}
